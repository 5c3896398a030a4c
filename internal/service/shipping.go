package service

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/store"
)

const shippingConflict = "Shipping method already exists."

func (s *Service) ListShippingMethods(ctx context.Context) ([]models.ShippingMethod, error) {
	var out []models.ShippingMethod
	err := s.tx(ctx, selectError, func(tx *store.Tx) error {
		var err error
		out, err = tx.ShippingMethods.List(ctx)
		return err
	})
	return out, err
}

func (s *Service) GetShippingMethod(ctx context.Context, id int64) (*models.ShippingMethod, error) {
	var out *models.ShippingMethod
	err := s.tx(ctx, selectError, func(tx *store.Tx) error {
		var err error
		out, err = tx.ShippingMethods.Get(ctx, id)
		return notFoundAs(err, "Invalid Shipping Method ID.")
	})
	return out, err
}

func (s *Service) CreateShippingMethod(ctx context.Context, actor int64, name string, price float64) (*models.ShippingMethod, error) {
	m, err := models.NewShippingMethod(name, price)
	if err != nil {
		return nil, err
	}
	err = s.tx(ctx, insertError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		return conflictAs(tx.ShippingMethods.Insert(ctx, m), shippingConflict)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) UpdateShippingMethod(ctx context.Context, actor, id int64, name string, price float64) (*models.ShippingMethod, error) {
	patch, err := models.NewShippingMethod(name, price)
	if err != nil {
		return nil, err
	}
	patch.ID = id
	err = s.tx(ctx, updateError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		if err := tx.ShippingMethods.Update(ctx, patch); err != nil {
			return conflictAs(notFoundAs(err, "Invalid Shipping Method ID."), shippingConflict)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return patch, nil
}

func (s *Service) DeleteShippingMethod(ctx context.Context, actor, id int64) error {
	return s.tx(ctx, deleteError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		return notFoundAs(tx.ShippingMethods.Delete(ctx, id), "Invalid Shipping Method ID.")
	})
}
