package service

import (
	"context"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/store"
)

// LinkUserAddress associates an existing user with an existing address.
// The first address linked to a user becomes its default.
func (s *Service) LinkUserAddress(ctx context.Context, actor, userID, addressID int64) (*UserAddressLink, error) {
	var out *UserAddressLink
	err := s.tx(ctx, insertError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		user, err := tx.Users.Get(ctx, userID)
		if err != nil {
			return notFoundAs(err, invalidUserID)
		}
		address, err := tx.Addresses.Get(ctx, addressID)
		if err != nil {
			return notFoundAs(err, "Invalid Address ID.")
		}

		links, err := tx.UserAddresses.List(ctx, store.Eq("user_id", userID))
		if err != nil {
			return err
		}
		for _, l := range links {
			if l.AddressID == addressID {
				return apperr.AlreadyLinked("User is already linked to the corresponding address.")
			}
		}

		link := &models.UserAddress{UserID: userID, AddressID: addressID, IsDefault: len(links) == 0}
		if err := tx.UserAddresses.Insert(ctx, link); err != nil {
			if apperr.IsConflict(err) {
				return apperr.AlreadyLinked("User is already linked to the corresponding address.")
			}
			return err
		}
		out = &UserAddressLink{User: *user, Address: *address, IsDefault: link.IsDefault}
		return nil
	})
	return out, err
}

// UnlinkUserAddress removes the association. When it was the default, the
// lowest remaining link of the user becomes the default.
func (s *Service) UnlinkUserAddress(ctx context.Context, actor, userID, addressID int64) error {
	return s.tx(ctx, deleteError, func(tx *store.Tx) error {
		if err := s.requireSelfOrAdmin(ctx, tx, actor, userID); err != nil {
			return err
		}
		link, err := findUserAddress(ctx, tx, userID, addressID)
		if err != nil {
			return err
		}
		return removeUserAddressLink(ctx, tx, *link)
	})
}

// SetDefaultAddress marks one linked address as the user's default and
// clears the flag on the others.
func (s *Service) SetDefaultAddress(ctx context.Context, actor, userID, addressID int64) error {
	return s.tx(ctx, updateError, func(tx *store.Tx) error {
		if err := s.requireSelfOrAdmin(ctx, tx, actor, userID); err != nil {
			return err
		}
		if _, err := findUserAddress(ctx, tx, userID, addressID); err != nil {
			return err
		}
		links, err := tx.UserAddresses.List(ctx, store.Eq("user_id", userID))
		if err != nil {
			return err
		}
		for _, l := range links {
			want := l.AddressID == addressID
			if l.IsDefault == want {
				continue
			}
			l.IsDefault = want
			if err := tx.UserAddresses.Update(ctx, &l); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Service) ListUserAddresses(ctx context.Context, actor, userID int64) ([]LinkedAddress, error) {
	var out []LinkedAddress
	err := s.tx(ctx, selectError, func(tx *store.Tx) error {
		if err := s.requireSelfOrAdmin(ctx, tx, actor, userID); err != nil {
			return err
		}
		if _, err := tx.Users.Get(ctx, userID); err != nil {
			return notFoundAs(err, invalidUserID)
		}
		var err error
		out, err = linkedAddresses(ctx, tx, userID)
		return err
	})
	return out, err
}

func findUserAddress(ctx context.Context, tx *store.Tx, userID, addressID int64) (*models.UserAddress, error) {
	links, err := tx.UserAddresses.List(ctx, store.Eq("user_id", userID), store.Eq("address_id", addressID))
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, apperr.NotFound("User %d is not linked to address %d.", userID, addressID)
	}
	return &links[0], nil
}

func removeUserAddressLink(ctx context.Context, tx *store.Tx, link models.UserAddress) error {
	if err := tx.UserAddresses.Delete(ctx, link.ID); err != nil {
		return err
	}
	if !link.IsDefault {
		return nil
	}
	rest, err := tx.UserAddresses.List(ctx, store.Eq("user_id", link.UserID))
	if err != nil || len(rest) == 0 {
		return err
	}
	next := rest[0]
	next.IsDefault = true
	return tx.UserAddresses.Update(ctx, &next)
}

func linkedAddresses(ctx context.Context, tx *store.Tx, userID int64) ([]LinkedAddress, error) {
	links, err := tx.UserAddresses.List(ctx, store.Eq("user_id", userID))
	if err != nil {
		return nil, err
	}
	out := make([]LinkedAddress, 0, len(links))
	for _, l := range links {
		a, err := tx.Addresses.Get(ctx, l.AddressID)
		if err != nil {
			return nil, err
		}
		view, err := addressView(ctx, tx, *a)
		if err != nil {
			return nil, err
		}
		out = append(out, LinkedAddress{AddressView: view, IsDefault: l.IsDefault})
	}
	return out, nil
}

// AttachVariation gives a product item a variation value. The value must
// belong to a variation of the item's product category.
func (s *Service) AttachVariation(ctx context.Context, actor, itemID, lineID int64) (*models.ProductVariation, error) {
	var out *models.ProductVariation
	err := s.tx(ctx, insertError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		item, err := tx.ProductItems.Get(ctx, itemID)
		if err != nil {
			return notFoundAs(err, "Invalid Product Item ID.")
		}
		line, err := tx.VariationLines.Get(ctx, lineID)
		if err != nil {
			return notFoundAs(err, "Invalid Variation Line ID.")
		}
		product, err := tx.Products.Get(ctx, item.ProductID)
		if err != nil {
			return err
		}
		variation, err := tx.Variations.Get(ctx, line.VariationID)
		if err != nil {
			return err
		}
		if variation.CategoryID != product.CategoryID {
			return apperr.IncompatibleVariation(
				"Variation '%s' belongs to category %d but the product item is in category %d.",
				variation.Name, variation.CategoryID, product.CategoryID)
		}

		existing, err := tx.ProductVariations.List(ctx, store.Eq("product_item_id", itemID), store.Eq("variation_line_id", lineID))
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return apperr.AlreadyLinked("Product item is already linked to the corresponding variation line.")
		}
		pv := &models.ProductVariation{ProductItemID: itemID, VariationLineID: lineID}
		if err := tx.ProductVariations.Insert(ctx, pv); err != nil {
			if apperr.IsConflict(err) {
				return apperr.AlreadyLinked("Product item is already linked to the corresponding variation line.")
			}
			return err
		}
		out = pv
		return nil
	})
	return out, err
}

func (s *Service) DetachVariation(ctx context.Context, actor, itemID, lineID int64) error {
	return s.tx(ctx, deleteError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		links, err := tx.ProductVariations.List(ctx, store.Eq("product_item_id", itemID), store.Eq("variation_line_id", lineID))
		if err != nil {
			return err
		}
		if len(links) == 0 {
			return apperr.NotFound("Product item %d is not linked to variation line %d.", itemID, lineID)
		}
		return tx.ProductVariations.Delete(ctx, links[0].ID)
	})
}
