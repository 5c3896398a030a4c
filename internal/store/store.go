// Package store defines the persistence boundary: a unit of work over a set
// of typed tables. Engines live in the sub-packages.
package store

import (
	"context"
	"reflect"

	"storefront/internal/models"
)

// Model constrains the pointer type of a persisted entity.
type Model[T any] interface {
	*T
	models.Record
}

// Table is the generic repository every engine provides for each entity.
// Engines report failures with the apperr taxonomy: Insert and Update return
// ErrConflict on a uniqueness violation, Update, Delete and Get return
// ErrNotFound for an unknown id, and Delete returns ErrReferential when a
// foreign key still points at the row.
type Table[T any] interface {
	Insert(ctx context.Context, v *T) error
	Update(ctx context.Context, v *T) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*T, error)
	// List returns the matching rows in ascending id order.
	List(ctx context.Context, filters ...Filter) ([]T, error)
}

// Tx is one unit of work. It must not be used after the function passed to
// Store.WithTx returns.
type Tx struct {
	Countries         Table[models.Country]
	Addresses         Table[models.Address]
	UserAddresses     Table[models.UserAddress]
	Roles             Table[models.Role]
	Users             Table[models.User]
	PaymentTypes      Table[models.PaymentType]
	PaymentMethods    Table[models.UserPaymentMethod]
	Categories        Table[models.ProductCategory]
	Products          Table[models.Product]
	ProductItems      Table[models.ProductItem]
	ProductVariations Table[models.ProductVariation]
	Images            Table[models.Image]
	ImageLines        Table[models.ImageLine]
	Variations        Table[models.Variation]
	VariationLines    Table[models.VariationLine]
	ShippingMethods   Table[models.ShippingMethod]
}

// Store is a persistence engine.
type Store interface {
	Name() string
	// WithTx runs fn inside one transaction. The transaction commits when fn
	// returns nil and rolls back otherwise; fn's error is returned as is.
	WithTx(ctx context.Context, fn func(tx *Tx) error) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Filter restricts List to rows whose column equals Value, or whose column
// is null when Null is set.
type Filter struct {
	Column string
	Value  any
	Null   bool
}

// Eq matches column == value. Pointer values are dereferenced and a nil
// value matches null, the way SQL engines render "= NULL" as "IS NULL".
func Eq(column string, value any) Filter {
	rv := reflect.ValueOf(value)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return IsNull(column)
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return IsNull(column)
	}
	return Filter{Column: column, Value: rv.Interface()}
}

func IsNull(column string) Filter {
	return Filter{Column: column, Null: true}
}
