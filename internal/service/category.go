package service

import (
	"context"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/store"
)

const categoryConflict = "Product Category name already exists."

// ListCategories returns the root categories only. Children are reached
// through sub_categories.
func (s *Service) ListCategories(ctx context.Context) ([]CategoryView, error) {
	var out []CategoryView
	err := s.tx(ctx, selectError, func(tx *store.Tx) error {
		roots, err := tx.Categories.List(ctx, store.IsNull("parent_category_id"))
		if err != nil {
			return err
		}
		out = make([]CategoryView, 0, len(roots))
		for _, c := range roots {
			view, err := categoryView(ctx, tx, c)
			if err != nil {
				return err
			}
			out = append(out, view)
		}
		return nil
	})
	return out, err
}

func (s *Service) GetCategory(ctx context.Context, id int64) (*CategoryView, error) {
	var out *CategoryView
	err := s.tx(ctx, selectError, func(tx *store.Tx) error {
		c, err := tx.Categories.Get(ctx, id)
		if err != nil {
			return notFoundAs(err, "Unable to find Product Category with id='%d'.", id)
		}
		view, err := categoryView(ctx, tx, *c)
		out = &view
		return err
	})
	return out, err
}

func (s *Service) CreateCategory(ctx context.Context, actor int64, name string, parentID *int64) (*models.ProductCategory, error) {
	category, err := models.NewProductCategory(name, parentID)
	if err != nil {
		return nil, err
	}
	err = s.tx(ctx, insertError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		if category.ParentCategoryID != nil {
			if _, err := tx.Categories.Get(ctx, *category.ParentCategoryID); err != nil {
				return notFoundAs(err, "Unable to find parent Product Category with id='%d'.", *category.ParentCategoryID)
			}
		}
		return conflictAs(tx.Categories.Insert(ctx, category), categoryConflict)
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Service) RenameCategory(ctx context.Context, actor, id int64, name string) (*models.ProductCategory, error) {
	patch, err := models.NewProductCategory(name, nil)
	if err != nil {
		return nil, err
	}
	var out *models.ProductCategory
	err = s.tx(ctx, updateError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		c, err := tx.Categories.Get(ctx, id)
		if err != nil {
			return notFoundAs(err, "Unable to find Product Category with id='%d'.", id)
		}
		c.Name = patch.Name
		if err := tx.Categories.Update(ctx, c); err != nil {
			return conflictAs(err, categoryConflict)
		}
		out = c
		return nil
	})
	return out, err
}

// ReparentCategory moves a category under newParentID, or to the roots when
// newParentID is nil. It fails with CycleDetected when the new parent is the
// category itself or one of its descendants.
func (s *Service) ReparentCategory(ctx context.Context, actor, id int64, newParentID *int64) (*models.ProductCategory, error) {
	var out *models.ProductCategory
	err := s.tx(ctx, updateError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		c, err := tx.Categories.Get(ctx, id)
		if err != nil {
			return notFoundAs(err, "Unable to find Product Category with id='%d'.", id)
		}
		if newParentID != nil {
			if err := checkAncestry(ctx, tx, id, *newParentID); err != nil {
				return err
			}
		}
		c.ParentCategoryID = cloneID(newParentID)
		if err := tx.Categories.Update(ctx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	return out, err
}

// checkAncestry walks up from parentID and fails if it reaches id. The walk
// is bounded by the number of categories so corrupted data cannot loop it.
func checkAncestry(ctx context.Context, tx *store.Tx, id, parentID int64) error {
	all, err := tx.Categories.List(ctx)
	if err != nil {
		return err
	}
	parents := make(map[int64]*int64, len(all))
	for _, c := range all {
		parents[c.ID] = c.ParentCategoryID
	}
	if _, ok := parents[parentID]; !ok {
		return apperr.NotFound("Unable to find parent Product Category with id='%d'.", parentID)
	}

	cur := &parentID
	for steps := 0; cur != nil && steps <= len(all); steps++ {
		if *cur == id {
			return apperr.Cycle("Category %d cannot be placed under its own descendant %d.", id, parentID)
		}
		cur = parents[*cur]
	}
	if cur != nil {
		return apperr.Cycle("Category hierarchy above %d contains a cycle.", parentID)
	}
	return nil
}

// DeleteCategory removes the category, its whole subtree and everything
// the removed categories own.
func (s *Service) DeleteCategory(ctx context.Context, actor, id int64) error {
	var files orphanFiles
	err := s.tx(ctx, deleteError, func(tx *store.Tx) error {
		files = nil
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		if _, err := tx.Categories.Get(ctx, id); err != nil {
			return notFoundAs(err, "Unable to find Product Category with id='%d'.", id)
		}
		return deleteCategoryTree(ctx, tx, id, &files)
	})
	if err == nil {
		s.removeFiles(ctx, files)
	}
	return err
}

// deleteCategoryTree removes children before their parent.
func deleteCategoryTree(ctx context.Context, tx *store.Tx, id int64, files *orphanFiles) error {
	children, err := tx.Categories.List(ctx, store.Eq("parent_category_id", id))
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := deleteCategoryTree(ctx, tx, child.ID, files); err != nil {
			return err
		}
	}

	products, err := tx.Products.List(ctx, store.Eq("category_id", id))
	if err != nil {
		return err
	}
	for _, p := range products {
		if err := deleteProduct(ctx, tx, p.ID, files); err != nil {
			return err
		}
	}
	variations, err := tx.Variations.List(ctx, store.Eq("category_id", id))
	if err != nil {
		return err
	}
	for _, v := range variations {
		if err := deleteVariation(ctx, tx, v.ID); err != nil {
			return err
		}
	}
	return tx.Categories.Delete(ctx, id)
}

func categoryView(ctx context.Context, tx *store.Tx, c models.ProductCategory) (CategoryView, error) {
	children, err := tx.Categories.List(ctx, store.Eq("parent_category_id", c.ID))
	if err != nil {
		return CategoryView{}, err
	}
	return CategoryView{ProductCategory: c, SubCategories: children}, nil
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
