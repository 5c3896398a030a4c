package service

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/store"
)

func (s *Service) ListProducts(ctx context.Context, categoryID *int64) ([]models.Product, error) {
	var out []models.Product
	err := s.tx(ctx, selectError, func(tx *store.Tx) error {
		var filters []store.Filter
		if categoryID != nil {
			filters = append(filters, store.Eq("category_id", *categoryID))
		}
		var err error
		out, err = tx.Products.List(ctx, filters...)
		return err
	})
	return out, err
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*ProductView, error) {
	var out *ProductView
	err := s.tx(ctx, selectError, func(tx *store.Tx) error {
		p, err := tx.Products.Get(ctx, id)
		if err != nil {
			return notFoundAs(err, "Invalid Product ID.")
		}
		items, err := tx.ProductItems.List(ctx, store.Eq("product_id", id))
		if err != nil {
			return err
		}
		out = &ProductView{Product: *p, Items: items}
		return nil
	})
	return out, err
}

func (s *Service) CreateProduct(ctx context.Context, actor, categoryID int64, name, description string) (*models.Product, error) {
	product, err := models.NewProduct(categoryID, name, description)
	if err != nil {
		return nil, err
	}
	err = s.tx(ctx, insertError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		if _, err := tx.Categories.Get(ctx, categoryID); err != nil {
			return notFoundAs(err, "Unable to find Product Category with id='%d'.", categoryID)
		}
		return tx.Products.Insert(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct changes a product. Moving it to another category detaches
// variation values that no longer match the new category.
func (s *Service) UpdateProduct(ctx context.Context, actor, id, categoryID int64, name, description string) (*models.Product, error) {
	patch, err := models.NewProduct(categoryID, name, description)
	if err != nil {
		return nil, err
	}
	patch.ID = id
	err = s.tx(ctx, updateError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		current, err := tx.Products.Get(ctx, id)
		if err != nil {
			return notFoundAs(err, "Invalid Product ID.")
		}
		if _, err := tx.Categories.Get(ctx, categoryID); err != nil {
			return notFoundAs(err, "Unable to find Product Category with id='%d'.", categoryID)
		}
		if current.CategoryID != categoryID {
			if err := detachForeignVariations(ctx, tx, id, categoryID); err != nil {
				return err
			}
		}
		return tx.Products.Update(ctx, patch)
	})
	if err != nil {
		return nil, err
	}
	return patch, nil
}

func (s *Service) DeleteProduct(ctx context.Context, actor, id int64) error {
	var files orphanFiles
	err := s.tx(ctx, deleteError, func(tx *store.Tx) error {
		files = nil
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		if _, err := tx.Products.Get(ctx, id); err != nil {
			return notFoundAs(err, "Invalid Product ID.")
		}
		return deleteProduct(ctx, tx, id, &files)
	})
	if err == nil {
		s.removeFiles(ctx, files)
	}
	return err
}

func deleteProduct(ctx context.Context, tx *store.Tx, id int64, files *orphanFiles) error {
	items, err := tx.ProductItems.List(ctx, store.Eq("product_id", id))
	if err != nil {
		return err
	}
	for _, it := range items {
		if err := deleteProductItem(ctx, tx, it.ID, files); err != nil {
			return err
		}
	}
	return tx.Products.Delete(ctx, id)
}

func detachForeignVariations(ctx context.Context, tx *store.Tx, productID, categoryID int64) error {
	items, err := tx.ProductItems.List(ctx, store.Eq("product_id", productID))
	if err != nil {
		return err
	}
	for _, it := range items {
		links, err := tx.ProductVariations.List(ctx, store.Eq("product_item_id", it.ID))
		if err != nil {
			return err
		}
		for _, l := range links {
			line, err := tx.VariationLines.Get(ctx, l.VariationLineID)
			if err != nil {
				return err
			}
			v, err := tx.Variations.Get(ctx, line.VariationID)
			if err != nil {
				return err
			}
			if v.CategoryID == categoryID {
				continue
			}
			if err := tx.ProductVariations.Delete(ctx, l.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
