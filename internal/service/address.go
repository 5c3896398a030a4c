package service

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/store"
)

func (s *Service) ListAddresses(ctx context.Context) ([]AddressView, error) {
	var out []AddressView
	err := s.tx(ctx, selectError, func(tx *store.Tx) error {
		addresses, err := tx.Addresses.List(ctx)
		if err != nil {
			return err
		}
		out = make([]AddressView, 0, len(addresses))
		for _, a := range addresses {
			view, err := addressView(ctx, tx, a)
			if err != nil {
				return err
			}
			out = append(out, view)
		}
		return nil
	})
	return out, err
}

func (s *Service) GetAddress(ctx context.Context, id int64) (*AddressView, error) {
	var out *AddressView
	err := s.tx(ctx, selectError, func(tx *store.Tx) error {
		a, err := tx.Addresses.Get(ctx, id)
		if err != nil {
			return notFoundAs(err, "Address not exist.")
		}
		view, err := addressView(ctx, tx, *a)
		out = &view
		return err
	})
	return out, err
}

func (s *Service) CreateAddress(ctx context.Context, fields models.Address) (*models.Address, error) {
	address, err := models.NewAddress(fields)
	if err != nil {
		return nil, err
	}
	err = s.tx(ctx, insertError, func(tx *store.Tx) error {
		if _, err := tx.Countries.Get(ctx, address.CountryID); err != nil {
			return notFoundAs(err, "No Country with id='%d'", address.CountryID)
		}
		return tx.Addresses.Insert(ctx, address)
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

func (s *Service) UpdateAddress(ctx context.Context, id int64, fields models.Address) (*models.Address, error) {
	patch, err := models.NewAddress(fields)
	if err != nil {
		return nil, err
	}
	patch.ID = id
	err = s.tx(ctx, updateError, func(tx *store.Tx) error {
		if _, err := tx.Addresses.Get(ctx, id); err != nil {
			return notFoundAs(err, "Address not exist.")
		}
		if _, err := tx.Countries.Get(ctx, patch.CountryID); err != nil {
			return notFoundAs(err, "No Country with id='%d'", patch.CountryID)
		}
		return tx.Addresses.Update(ctx, patch)
	})
	if err != nil {
		return nil, err
	}
	return patch, nil
}

func (s *Service) DeleteAddress(ctx context.Context, actor, id int64) error {
	return s.tx(ctx, deleteError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		if _, err := tx.Addresses.Get(ctx, id); err != nil {
			return notFoundAs(err, "Address not exist.")
		}
		return deleteAddress(ctx, tx, id)
	})
}

// deleteAddress removes the address and its user links. Users that lose
// their default address get their lowest remaining link promoted.
func deleteAddress(ctx context.Context, tx *store.Tx, id int64) error {
	links, err := tx.UserAddresses.List(ctx, store.Eq("address_id", id))
	if err != nil {
		return err
	}
	for _, l := range links {
		if err := removeUserAddressLink(ctx, tx, l); err != nil {
			return err
		}
	}
	return tx.Addresses.Delete(ctx, id)
}

func addressView(ctx context.Context, tx *store.Tx, a models.Address) (AddressView, error) {
	country, err := tx.Countries.Get(ctx, a.CountryID)
	if err != nil {
		return AddressView{}, err
	}
	return AddressView{Address: a, Country: country}, nil
}
