package service

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/store"
)

func (s *Service) ListVariations(ctx context.Context) ([]models.Variation, error) {
	var out []models.Variation
	err := s.tx(ctx, selectError, func(tx *store.Tx) error {
		var err error
		out, err = tx.Variations.List(ctx)
		return err
	})
	return out, err
}

func (s *Service) GetVariation(ctx context.Context, id int64) (*VariationView, error) {
	var out *VariationView
	err := s.tx(ctx, selectError, func(tx *store.Tx) error {
		v, err := tx.Variations.Get(ctx, id)
		if err != nil {
			return notFoundAs(err, "Invalid Variation ID.")
		}
		category, err := tx.Categories.Get(ctx, v.CategoryID)
		if err != nil {
			return err
		}
		lines, err := tx.VariationLines.List(ctx, store.Eq("variation_id", id))
		if err != nil {
			return err
		}
		out = &VariationView{Variation: *v, Category: category, VariationLines: lines}
		return nil
	})
	return out, err
}

func (s *Service) CreateVariation(ctx context.Context, actor, categoryID int64, name string) (*models.Variation, error) {
	v, err := models.NewVariation(categoryID, name)
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
		return tx.Variations.Insert(ctx, v)
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// DeleteVariation removes the variation, its lines and their item links.
func (s *Service) DeleteVariation(ctx context.Context, actor, id int64) error {
	return s.tx(ctx, deleteError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		if _, err := tx.Variations.Get(ctx, id); err != nil {
			return notFoundAs(err, "Invalid Variation ID.")
		}
		return deleteVariation(ctx, tx, id)
	})
}

func deleteVariation(ctx context.Context, tx *store.Tx, id int64) error {
	lines, err := tx.VariationLines.List(ctx, store.Eq("variation_id", id))
	if err != nil {
		return err
	}
	for _, l := range lines {
		if err := deleteVariationLine(ctx, tx, l.ID); err != nil {
			return err
		}
	}
	return tx.Variations.Delete(ctx, id)
}

func (s *Service) ListVariationLines(ctx context.Context, variationID *int64) ([]models.VariationLine, error) {
	var out []models.VariationLine
	err := s.tx(ctx, selectError, func(tx *store.Tx) error {
		var filters []store.Filter
		if variationID != nil {
			filters = append(filters, store.Eq("variation_id", *variationID))
		}
		var err error
		out, err = tx.VariationLines.List(ctx, filters...)
		return err
	})
	return out, err
}

func (s *Service) GetVariationLine(ctx context.Context, id int64) (*models.VariationLine, error) {
	var out *models.VariationLine
	err := s.tx(ctx, selectError, func(tx *store.Tx) error {
		var err error
		out, err = tx.VariationLines.Get(ctx, id)
		return notFoundAs(err, "Invalid Variation Line ID.")
	})
	return out, err
}

func (s *Service) CreateVariationLine(ctx context.Context, actor, variationID int64, name string) (*models.VariationLine, error) {
	line, err := models.NewVariationLine(variationID, name)
	if err != nil {
		return nil, err
	}
	err = s.tx(ctx, insertError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		if _, err := tx.Variations.Get(ctx, variationID); err != nil {
			return notFoundAs(err, "Invalid Variation ID.")
		}
		return tx.VariationLines.Insert(ctx, line)
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

func (s *Service) DeleteVariationLine(ctx context.Context, actor, id int64) error {
	return s.tx(ctx, deleteError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		if _, err := tx.VariationLines.Get(ctx, id); err != nil {
			return notFoundAs(err, "Invalid Variation Line ID.")
		}
		return deleteVariationLine(ctx, tx, id)
	})
}

func deleteVariationLine(ctx context.Context, tx *store.Tx, id int64) error {
	links, err := tx.ProductVariations.List(ctx, store.Eq("variation_line_id", id))
	if err != nil {
		return err
	}
	for _, l := range links {
		if err := tx.ProductVariations.Delete(ctx, l.ID); err != nil {
			return err
		}
	}
	return tx.VariationLines.Delete(ctx, id)
}
