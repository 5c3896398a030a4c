package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/storage"
	"storefront/internal/store"
)

const imageFolder = "product_images"

func (s *Service) ListProductItems(ctx context.Context, productID int64) ([]models.ProductItem, error) {
	var out []models.ProductItem
	err := s.tx(ctx, selectError, func(tx *store.Tx) error {
		if _, err := tx.Products.Get(ctx, productID); err != nil {
			return notFoundAs(err, "Invalid Product ID.")
		}
		var err error
		out, err = tx.ProductItems.List(ctx, store.Eq("product_id", productID))
		return err
	})
	return out, err
}

func (s *Service) GetProductItem(ctx context.Context, id int64) (*ProductItemView, error) {
	var out *ProductItemView
	err := s.tx(ctx, selectError, func(tx *store.Tx) error {
		item, err := tx.ProductItems.Get(ctx, id)
		if err != nil {
			return notFoundAs(err, "Invalid Product Item ID.")
		}
		view := &ProductItemView{ProductItem: *item, ImageLines: []models.ImageLine{}}

		images, err := tx.Images.List(ctx, store.Eq("product_item_id", id))
		if err != nil {
			return err
		}
		if len(images) > 0 {
			view.Image = &images[0]
			if view.ImageLines, err = tx.ImageLines.List(ctx, store.Eq("image_id", images[0].ID)); err != nil {
				return err
			}
		}

		links, err := tx.ProductVariations.List(ctx, store.Eq("product_item_id", id))
		if err != nil {
			return err
		}
		view.VariationLines = make([]models.VariationLine, 0, len(links))
		for _, l := range links {
			line, err := tx.VariationLines.Get(ctx, l.VariationLineID)
			if err != nil {
				return err
			}
			view.VariationLines = append(view.VariationLines, *line)
		}
		out = view
		return nil
	})
	return out, err
}

func (s *Service) CreateProductItem(ctx context.Context, actor, productID int64, sku string, price float64) (*models.ProductItem, error) {
	item, err := models.NewProductItem(productID, sku, price)
	if err != nil {
		return nil, err
	}
	err = s.tx(ctx, insertError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		if _, err := tx.Products.Get(ctx, productID); err != nil {
			return notFoundAs(err, "Invalid Product ID.")
		}
		return tx.ProductItems.Insert(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) UpdateProductItem(ctx context.Context, actor, id int64, sku string, price float64) (*models.ProductItem, error) {
	var out *models.ProductItem
	err := s.tx(ctx, updateError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		current, err := tx.ProductItems.Get(ctx, id)
		if err != nil {
			return notFoundAs(err, "Invalid Product Item ID.")
		}
		patch, err := models.NewProductItem(current.ProductID, sku, price)
		if err != nil {
			return err
		}
		patch.ID = id
		if err := tx.ProductItems.Update(ctx, patch); err != nil {
			return err
		}
		out = patch
		return nil
	})
	return out, err
}

func (s *Service) DeleteProductItem(ctx context.Context, actor, id int64) error {
	var files orphanFiles
	err := s.tx(ctx, deleteError, func(tx *store.Tx) error {
		files = nil
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		if _, err := tx.ProductItems.Get(ctx, id); err != nil {
			return notFoundAs(err, "Invalid Product Item ID.")
		}
		return deleteProductItem(ctx, tx, id, &files)
	})
	if err == nil {
		s.removeFiles(ctx, files)
	}
	return err
}

// deleteProductItem removes the item with its image grouping, image lines
// and variation links. Paths of removed image lines are added to files.
func deleteProductItem(ctx context.Context, tx *store.Tx, id int64, files *orphanFiles) error {
	images, err := tx.Images.List(ctx, store.Eq("product_item_id", id))
	if err != nil {
		return err
	}
	for _, img := range images {
		lines, err := tx.ImageLines.List(ctx, store.Eq("image_id", img.ID))
		if err != nil {
			return err
		}
		for _, l := range lines {
			if err := tx.ImageLines.Delete(ctx, l.ID); err != nil {
				return err
			}
			*files = append(*files, l.ImagePath)
		}
		if err := tx.Images.Delete(ctx, img.ID); err != nil {
			return err
		}
	}

	links, err := tx.ProductVariations.List(ctx, store.Eq("product_item_id", id))
	if err != nil {
		return err
	}
	for _, l := range links {
		if err := tx.ProductVariations.Delete(ctx, l.ID); err != nil {
			return err
		}
	}
	return tx.ProductItems.Delete(ctx, id)
}

// UploadItemImage stores the file and records it on the item's image
// grouping, which is created on first upload.
func (s *Service) UploadItemImage(ctx context.Context, actor, itemID int64, filename string, r io.Reader) (*models.ImageLine, error) {
	// Authorize and check the item before touching storage.
	err := s.tx(ctx, selectError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		_, err := tx.ProductItems.Get(ctx, itemID)
		return notFoundAs(err, "Invalid Product Item ID.")
	})
	if err != nil {
		return nil, err
	}

	ref, err := s.files.Save(ctx, imageFolder, filename, r)
	switch {
	case errors.Is(err, storage.ErrUnsafeName):
		return nil, apperr.Validation("Image extension '%s' is not allowed.", filepath.Ext(filename))
	case errors.Is(err, storage.ErrTooLarge), errors.Is(err, storage.ErrBadPath):
		return nil, apperr.Validation("Image '%s' was rejected: %v", filepath.Base(filename), err)
	case err != nil:
		return nil, apperr.Store(err, "An error occurred while storing the image.")
	}

	var line *models.ImageLine
	err = s.tx(ctx, insertError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		item, err := tx.ProductItems.Get(ctx, itemID)
		if err != nil {
			return notFoundAs(err, "Invalid Product Item ID.")
		}
		images, err := tx.Images.List(ctx, store.Eq("product_item_id", itemID))
		if err != nil {
			return err
		}
		var img *models.Image
		if len(images) > 0 {
			img = &images[0]
		} else {
			name := item.SKU
			if name == "" {
				name = filename
			}
			if img, err = models.NewImage(itemID, name); err != nil {
				return err
			}
			if err := tx.Images.Insert(ctx, img); err != nil {
				return err
			}
		}
		if line, err = models.NewImageLine(img.ID, ref); err != nil {
			return err
		}
		return tx.ImageLines.Insert(ctx, line)
	})
	if err != nil {
		s.removeFiles(ctx, orphanFiles{ref})
		return nil, err
	}
	return line, nil
}

func (s *Service) DeleteImageLine(ctx context.Context, actor, id int64) error {
	var path string
	err := s.tx(ctx, deleteError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		line, err := tx.ImageLines.Get(ctx, id)
		if err != nil {
			return notFoundAs(err, "Invalid Image Line ID.")
		}
		path = line.ImagePath
		return tx.ImageLines.Delete(ctx, id)
	})
	if err == nil {
		s.removeFiles(ctx, orphanFiles{path})
	}
	return err
}

// orphanFiles are stored references whose rows were removed.
type orphanFiles []string

// removeFiles deletes stored files after their rows are gone. Failures are
// logged only.
func (s *Service) removeFiles(ctx context.Context, files orphanFiles) {
	for _, ref := range files {
		if err := s.files.Remove(ctx, ref); err != nil {
			s.log.Warn().Err(err).Str("path", ref).Msg("stored file not removed")
		}
	}
}
