package memory

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"strings"

	"storefront/internal/apperr"
	"storefront/internal/store"
)

var errClosed = errors.New("memory store is closed")

func storeErr(err error) error {
	return apperr.Store(err, "An error occurred while accessing the data store.")
}

type memTable[T any, PT store.Model[T]] struct {
	w    *work
	name string
	cols map[string]int
}

func bind[T any, PT store.Model[T]](w *work) store.Table[T] {
	var zero T
	return &memTable[T, PT]{
		w:    w,
		name: PT(&zero).TableName(),
		cols: columns(reflect.TypeOf(zero)),
	}
}

func (m *memTable[T, PT]) Insert(ctx context.Context, v *T) error {
	if err := ctx.Err(); err != nil {
		return storeErr(err)
	}
	t := m.w.write(m.name)
	rec := PT(v)
	keys := rec.UniqueKeys()
	for _, k := range keys {
		if _, taken := t.keys[k]; taken {
			return conflict(m.name, k)
		}
	}
	t.seq++
	rec.SetID(t.seq)
	t.rows[t.seq] = *v
	for _, k := range keys {
		t.keys[k] = t.seq
	}
	return nil
}

func (m *memTable[T, PT]) Update(ctx context.Context, v *T) error {
	if err := ctx.Err(); err != nil {
		return storeErr(err)
	}
	rec := PT(v)
	id := rec.GetID()
	if _, ok := m.w.read(m.name).rows[id]; !ok {
		return notFound(m.name, id)
	}

	t := m.w.write(m.name)
	old := t.rows[id].(T)
	keys := rec.UniqueKeys()
	for _, k := range keys {
		if owner, taken := t.keys[k]; taken && owner != id {
			return conflict(m.name, k)
		}
	}
	for _, k := range PT(&old).UniqueKeys() {
		delete(t.keys, k)
	}
	t.rows[id] = *v
	for _, k := range keys {
		t.keys[k] = id
	}
	return nil
}

func (m *memTable[T, PT]) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return storeErr(err)
	}
	if _, ok := m.w.read(m.name).rows[id]; !ok {
		return notFound(m.name, id)
	}
	t := m.w.write(m.name)
	old := t.rows[id].(T)
	for _, k := range PT(&old).UniqueKeys() {
		delete(t.keys, k)
	}
	delete(t.rows, id)
	return nil
}

func (m *memTable[T, PT]) Get(ctx context.Context, id int64) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeErr(err)
	}
	row, ok := m.w.read(m.name).rows[id]
	if !ok {
		return nil, notFound(m.name, id)
	}
	v := row.(T)
	return &v, nil
}

func (m *memTable[T, PT]) List(ctx context.Context, filters ...store.Filter) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeErr(err)
	}
	for _, f := range filters {
		if _, ok := m.cols[f.Column]; !ok {
			return nil, storeErr(errors.New("unknown column " + m.name + "." + f.Column))
		}
	}

	t := m.w.read(m.name)
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		row := t.rows[id].(T)
		if m.matches(reflect.ValueOf(row), filters) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *memTable[T, PT]) matches(row reflect.Value, filters []store.Filter) bool {
	for _, f := range filters {
		field := row.Field(m.cols[f.Column])
		if f.Null {
			if field.Kind() != reflect.Pointer || !field.IsNil() {
				return false
			}
			continue
		}
		if field.Kind() == reflect.Pointer {
			if field.IsNil() {
				return false
			}
			field = field.Elem()
		}
		want := reflect.ValueOf(f.Value)
		if !want.Type().ConvertibleTo(field.Type()) {
			return false
		}
		if field.Interface() != want.Convert(field.Type()).Interface() {
			return false
		}
	}
	return true
}

// columns maps the json names of a struct's fields to their index, which
// are also the column names used by the other engines.
func columns(t reflect.Type) map[string]int {
	cols := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		cols[name] = i
	}
	return cols
}

func notFound(table string, id int64) error {
	return apperr.NotFound("Unable to find %s with id='%d'.", table, id)
}

func conflict(table, key string) error {
	column := strings.SplitN(key, "=", 2)[0]
	return apperr.Conflict("%s.%s already exists.", table, column)
}
