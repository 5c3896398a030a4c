package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"storefront/internal/apperr"
)

func TestListCategoriesReturnsRootsWithChildren(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	clothing := f.category(t, "Clothing", nil)
	shirts := f.category(t, "Shirts", &clothing.ID)
	f.category(t, "Polo", &shirts.ID)
	books := f.category(t, "Books", nil)

	roots, err := f.svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	require.Equal(t, clothing.ID, roots[0].ID)
	require.Equal(t, books.ID, roots[1].ID)
	require.Len(t, roots[0].SubCategories, 1)
	require.Equal(t, "Shirts", roots[0].SubCategories[0].Name)
	require.Empty(t, roots[1].SubCategories)
}

func TestReparentRejectsCycles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.category(t, "A", nil)
	b := f.category(t, "B", &a.ID)
	c := f.category(t, "C", &b.ID)

	_, err := f.svc.ReparentCategory(ctx, f.admin, a.ID, &c.ID)
	require.ErrorIs(t, err, apperr.ErrCycleDetected)

	_, err = f.svc.ReparentCategory(ctx, f.admin, a.ID, &a.ID)
	require.ErrorIs(t, err, apperr.ErrCycleDetected)

	unchanged, err := f.svc.GetCategory(ctx, a.ID)
	require.NoError(t, err)
	require.Nil(t, unchanged.ParentCategoryID)

	missing := int64(999)
	_, err = f.svc.ReparentCategory(ctx, f.admin, a.ID, &missing)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestReparentMovesSubtree(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.category(t, "A", nil)
	b := f.category(t, "B", &a.ID)
	d := f.category(t, "D", nil)

	moved, err := f.svc.ReparentCategory(ctx, f.admin, b.ID, &d.ID)
	require.NoError(t, err)
	require.Equal(t, d.ID, *moved.ParentCategoryID)

	oldParent, err := f.svc.GetCategory(ctx, a.ID)
	require.NoError(t, err)
	require.Empty(t, oldParent.SubCategories)
	newParent, err := f.svc.GetCategory(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, newParent.SubCategories, 1)
	require.Equal(t, b.ID, newParent.SubCategories[0].ID)

	root, err := f.svc.ReparentCategory(ctx, f.admin, b.ID, nil)
	require.NoError(t, err)
	require.Nil(t, root.ParentCategoryID)
	roots, err := f.svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, roots, 3)
}

func TestCategoryNamesAreGloballyUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.category(t, "A", nil)
	f.category(t, "Sale", &a.ID)

	_, err := f.svc.CreateCategory(ctx, f.admin, "Sale", nil)
	require.ErrorIs(t, err, apperr.ErrConflict)

	missing := int64(999)
	_, err = f.svc.CreateCategory(ctx, f.admin, "Orphan", &missing)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteCategoryRemovesSubtree(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	clothing := f.category(t, "Clothing", nil)
	shirts := f.category(t, "Shirts", &clothing.ID)
	books := f.category(t, "Books", nil)

	it := f.item(t, shirts.ID, "Tee")
	line := f.line(t, shirts.ID, "Color", "Red")
	_, err := f.svc.AttachVariation(ctx, f.admin, it.ID, line.ID)
	require.NoError(t, err)
	img, err := f.svc.UploadItemImage(ctx, f.admin, it.ID, "tee.png", strings.NewReader("png"))
	require.NoError(t, err)
	kept := f.item(t, books.ID, "Novel")

	require.NoError(t, f.svc.DeleteCategory(ctx, f.admin, clothing.ID))

	_, err = f.svc.GetCategory(ctx, shirts.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = f.svc.GetProductItem(ctx, it.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = f.svc.GetVariationLine(ctx, line.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	require.NotContains(t, f.files.files, img.ImagePath)
	require.Contains(t, f.files.removed, img.ImagePath)

	_, err = f.svc.GetProductItem(ctx, kept.ID)
	require.NoError(t, err)
	roots, err := f.svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, roots, 1)
}

func TestAttachVariation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shoes := f.category(t, "Shoes", nil)
	hats := f.category(t, "Hats", nil)
	it := f.item(t, shoes.ID, "Runner")
	size := f.line(t, shoes.ID, "Size", "42")
	brim := f.line(t, hats.ID, "Brim", "Wide")

	_, err := f.svc.AttachVariation(ctx, f.admin, it.ID, brim.ID)
	require.ErrorIs(t, err, apperr.ErrIncompatibleVariation)

	_, err = f.svc.AttachVariation(ctx, f.admin, it.ID, size.ID)
	require.NoError(t, err)
	_, err = f.svc.AttachVariation(ctx, f.admin, it.ID, size.ID)
	require.ErrorIs(t, err, apperr.ErrAlreadyLinked)

	view, err := f.svc.GetProductItem(ctx, it.ID)
	require.NoError(t, err)
	require.Len(t, view.VariationLines, 1)
	require.Equal(t, "42", view.VariationLines[0].Name)

	require.NoError(t, f.svc.DetachVariation(ctx, f.admin, it.ID, size.ID))
	require.ErrorIs(t, f.svc.DetachVariation(ctx, f.admin, it.ID, size.ID), apperr.ErrNotFound)
}

func TestMovingProductDropsForeignVariations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shoes := f.category(t, "Shoes", nil)
	boots := f.category(t, "Boots", nil)
	it := f.item(t, shoes.ID, "Runner")
	size := f.line(t, shoes.ID, "Size", "42")
	_, err := f.svc.AttachVariation(ctx, f.admin, it.ID, size.ID)
	require.NoError(t, err)

	_, err = f.svc.UpdateProduct(ctx, f.admin, it.ProductID, boots.ID, "Runner", "moved")
	require.NoError(t, err)

	view, err := f.svc.GetProductItem(ctx, it.ID)
	require.NoError(t, err)
	require.Empty(t, view.VariationLines)
}

func TestDeleteVariationDetachesItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shoes := f.category(t, "Shoes", nil)
	it := f.item(t, shoes.ID, "Runner")
	size := f.line(t, shoes.ID, "Size", "42")
	_, err := f.svc.AttachVariation(ctx, f.admin, it.ID, size.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteVariation(ctx, f.admin, size.VariationID))

	view, err := f.svc.GetProductItem(ctx, it.ID)
	require.NoError(t, err)
	require.Empty(t, view.VariationLines)
	lines, err := f.svc.ListVariationLines(ctx, &size.VariationID)
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestProductListingAndDetail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	shoes := f.category(t, "Shoes", nil)
	hats := f.category(t, "Hats", nil)
	it := f.item(t, shoes.ID, "Runner")
	f.item(t, hats.ID, "Cap")

	all, err := f.svc.ListProducts(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	filtered, err := f.svc.ListProducts(ctx, &shoes.ID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, "Runner", filtered[0].Name)

	view, err := f.svc.GetProduct(ctx, it.ProductID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.Equal(t, "SKU-Runner", view.Items[0].SKU)

	_, err = f.svc.CreateProduct(ctx, f.admin, 999, "Ghost", "")
	require.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, f.svc.DeleteProduct(ctx, f.admin, it.ProductID))
	_, err = f.svc.GetProductItem(ctx, it.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
