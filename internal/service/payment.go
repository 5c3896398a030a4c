package service

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/store"
)

const paymentTypeConflict = "Payment Type already exist."

func (s *Service) ListPaymentTypes(ctx context.Context) ([]models.PaymentType, error) {
	var out []models.PaymentType
	err := s.tx(ctx, selectError, func(tx *store.Tx) error {
		var err error
		out, err = tx.PaymentTypes.List(ctx)
		return err
	})
	return out, err
}

func (s *Service) GetPaymentType(ctx context.Context, id int64) (*models.PaymentType, error) {
	var out *models.PaymentType
	err := s.tx(ctx, selectError, func(tx *store.Tx) error {
		var err error
		out, err = tx.PaymentTypes.Get(ctx, id)
		return notFoundAs(err, "Invalid PaymentType ID")
	})
	return out, err
}

func (s *Service) CreatePaymentType(ctx context.Context, actor int64, name string) (*models.PaymentType, error) {
	pt, err := models.NewPaymentType(name)
	if err != nil {
		return nil, err
	}
	err = s.tx(ctx, insertError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		return conflictAs(tx.PaymentTypes.Insert(ctx, pt), paymentTypeConflict)
	})
	if err != nil {
		return nil, err
	}
	return pt, nil
}

// DeletePaymentType removes the type and every user payment method of it.
func (s *Service) DeletePaymentType(ctx context.Context, actor, id int64) error {
	return s.tx(ctx, deleteError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		if _, err := tx.PaymentTypes.Get(ctx, id); err != nil {
			return notFoundAs(err, "Invalid PaymentType ID")
		}
		methods, err := tx.PaymentMethods.List(ctx, store.Eq("payment_type_id", id))
		if err != nil {
			return err
		}
		for _, m := range methods {
			if err := tx.PaymentMethods.Delete(ctx, m.ID); err != nil {
				return err
			}
		}
		return tx.PaymentTypes.Delete(ctx, id)
	})
}

func (s *Service) ListPaymentMethods(ctx context.Context, actor, userID int64) ([]models.UserPaymentMethod, error) {
	var out []models.UserPaymentMethod
	err := s.tx(ctx, selectError, func(tx *store.Tx) error {
		if err := s.requireSelfOrAdmin(ctx, tx, actor, userID); err != nil {
			return err
		}
		var err error
		out, err = tx.PaymentMethods.List(ctx, store.Eq("user_id", userID))
		return err
	})
	return out, err
}

// CreatePaymentMethod stores a payment method for userID. The first method
// of a user, or one flagged as default, becomes the only default.
func (s *Service) CreatePaymentMethod(ctx context.Context, actor, userID int64, fields models.UserPaymentMethod) (*models.UserPaymentMethod, error) {
	fields.UserID = userID
	method, err := models.NewUserPaymentMethod(fields)
	if err != nil {
		return nil, err
	}
	err = s.tx(ctx, insertError, func(tx *store.Tx) error {
		if err := s.requireSelfOrAdmin(ctx, tx, actor, userID); err != nil {
			return err
		}
		if _, err := tx.Users.Get(ctx, userID); err != nil {
			return notFoundAs(err, invalidUserID)
		}
		if _, err := tx.PaymentTypes.Get(ctx, method.PaymentTypeID); err != nil {
			return notFoundAs(err, "Invalid PaymentType ID")
		}
		existing, err := tx.PaymentMethods.List(ctx, store.Eq("user_id", userID))
		if err != nil {
			return err
		}
		if len(existing) == 0 {
			method.IsDefault = true
		}
		if method.IsDefault {
			for _, m := range existing {
				if !m.IsDefault {
					continue
				}
				m.IsDefault = false
				if err := tx.PaymentMethods.Update(ctx, &m); err != nil {
					return err
				}
			}
		}
		return tx.PaymentMethods.Insert(ctx, method)
	})
	if err != nil {
		return nil, err
	}
	return method, nil
}
