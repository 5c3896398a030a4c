package service

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/store"
)

const countryConflict = "Country name already exists."

func (s *Service) ListCountries(ctx context.Context) ([]models.Country, error) {
	var out []models.Country
	err := s.tx(ctx, selectError, func(tx *store.Tx) error {
		var err error
		out, err = tx.Countries.List(ctx)
		return err
	})
	return out, err
}

func (s *Service) GetCountry(ctx context.Context, id int64) (*models.Country, error) {
	var out *models.Country
	err := s.tx(ctx, selectError, func(tx *store.Tx) error {
		var err error
		out, err = tx.Countries.Get(ctx, id)
		return notFoundAs(err, "No Country with id='%d'", id)
	})
	return out, err
}

func (s *Service) CreateCountry(ctx context.Context, actor int64, name string) (*models.Country, error) {
	country, err := models.NewCountry(name)
	if err != nil {
		return nil, err
	}
	err = s.tx(ctx, insertError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		return conflictAs(tx.Countries.Insert(ctx, country), countryConflict)
	})
	if err != nil {
		return nil, err
	}
	return country, nil
}

func (s *Service) UpdateCountry(ctx context.Context, actor, id int64, name string) (*models.Country, error) {
	patch, err := models.NewCountry(name)
	if err != nil {
		return nil, err
	}
	var out *models.Country
	err = s.tx(ctx, updateError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		country, err := tx.Countries.Get(ctx, id)
		if err != nil {
			return notFoundAs(err, "No Country with id='%d'", id)
		}
		country.CountryName = patch.CountryName
		if err := tx.Countries.Update(ctx, country); err != nil {
			return conflictAs(err, countryConflict)
		}
		out = country
		return nil
	})
	return out, err
}

// DeleteCountry removes the country together with its addresses and their
// user links.
func (s *Service) DeleteCountry(ctx context.Context, actor, id int64) (*models.Country, error) {
	var out *models.Country
	err := s.tx(ctx, deleteError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		country, err := tx.Countries.Get(ctx, id)
		if err != nil {
			return notFoundAs(err, "No Country with id='%d'", id)
		}
		addresses, err := tx.Addresses.List(ctx, store.Eq("country_id", id))
		if err != nil {
			return err
		}
		for _, a := range addresses {
			if err := deleteAddress(ctx, tx, a.ID); err != nil {
				return err
			}
		}
		if err := tx.Countries.Delete(ctx, id); err != nil {
			return err
		}
		out = country
		return nil
	})
	return out, err
}
