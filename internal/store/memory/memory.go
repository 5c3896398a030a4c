// Package memory is an in-process engine. Transactions are serialized and
// each table touched by a write is copied on first use, so a rolled back
// transaction leaves nothing behind.
package memory

import (
	"context"
	"sync"

	"storefront/internal/models"
	"storefront/internal/store"
)

type table struct {
	seq  int64
	rows map[int64]any
	keys map[string]int64
}

func newTable() *table {
	return &table{rows: map[int64]any{}, keys: map[string]int64{}}
}

func (t *table) clone() *table {
	c := &table{
		seq:  t.seq,
		rows: make(map[int64]any, len(t.rows)),
		keys: make(map[string]int64, len(t.keys)),
	}
	for id, row := range t.rows {
		c.rows[id] = row
	}
	for k, id := range t.keys {
		c.keys[k] = id
	}
	return c
}

type Store struct {
	mu     sync.Mutex
	tables map[string]*table
	closed bool
}

func New() *Store {
	return &Store{tables: map[string]*table{}}
}

func (s *Store) Name() string { return "memory" }

func (s *Store) WithTx(ctx context.Context, fn func(tx *store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return storeErr(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storeErr(errClosed)
	}

	w := &work{base: s.tables, dirty: map[string]*table{}}
	if err := fn(newTx(w)); err != nil {
		return err
	}
	for name, t := range w.dirty {
		s.tables[name] = t
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storeErr(errClosed)
	}
	return ctx.Err()
}

func (s *Store) Close(context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// work tracks the private copies of the tables written by one transaction.
type work struct {
	base  map[string]*table
	dirty map[string]*table
}

func (w *work) read(name string) *table {
	if t, ok := w.dirty[name]; ok {
		return t
	}
	if t, ok := w.base[name]; ok {
		return t
	}
	return newTable()
}

func (w *work) write(name string) *table {
	if t, ok := w.dirty[name]; ok {
		return t
	}
	var t *table
	if base, ok := w.base[name]; ok {
		t = base.clone()
	} else {
		t = newTable()
	}
	w.dirty[name] = t
	return t
}

func newTx(w *work) *store.Tx {
	return &store.Tx{
		Countries:         bind[models.Country](w),
		Addresses:         bind[models.Address](w),
		UserAddresses:     bind[models.UserAddress](w),
		Roles:             bind[models.Role](w),
		Users:             bind[models.User](w),
		PaymentTypes:      bind[models.PaymentType](w),
		PaymentMethods:    bind[models.UserPaymentMethod](w),
		Categories:        bind[models.ProductCategory](w),
		Products:          bind[models.Product](w),
		ProductItems:      bind[models.ProductItem](w),
		ProductVariations: bind[models.ProductVariation](w),
		Images:            bind[models.Image](w),
		ImageLines:        bind[models.ImageLine](w),
		Variations:        bind[models.Variation](w),
		VariationLines:    bind[models.VariationLine](w),
		ShippingMethods:   bind[models.ShippingMethod](w),
	}
}
