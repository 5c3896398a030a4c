package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/auth"
	"storefront/internal/models"
	"storefront/internal/storage"
	"storefront/internal/store/memory"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin-pass"
)

// memFiles is an in-memory storage.Storage.
type memFiles struct {
	mu      sync.Mutex
	files   map[string]string
	removed []string
	seq     int
}

func (m *memFiles) Save(_ context.Context, folder, filename string, r io.Reader) (string, error) {
	if !storage.IsSafeName(filename) {
		return "", storage.ErrUnsafeName
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	ref := fmt.Sprintf("%s/%03d_%s", folder, m.seq, filename)
	m.files[ref] = string(body)
	return ref, nil
}

func (m *memFiles) Remove(_ context.Context, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, ref)
	m.removed = append(m.removed, ref)
	return nil
}

type fixture struct {
	svc     *Service
	files   *memFiles
	admin   int64
	adminID int64 // administrator role id
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	files := &memFiles{files: map[string]string{}}
	svc := New(memory.New(), auth.BcryptHasher{Cost: bcrypt.MinCost}, files, zerolog.Nop())
	require.NoError(t, svc.Bootstrap(context.Background(), adminEmail, adminPassword))

	admin, err := svc.Authenticate(context.Background(), adminEmail, adminPassword)
	require.NoError(t, err)
	return &fixture{svc: svc, files: files, admin: admin.ID, adminID: admin.RoleID}
}

func (f *fixture) register(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := f.svc.Register(context.Background(), models.User{
		FirstName:    "Alice",
		LastName:     "Liddell",
		EmailAddress: email,
		PhoneNumber:  "555-0100",
	}, "password")
	require.NoError(t, err)
	return u
}

func (f *fixture) country(t *testing.T, name string) *models.Country {
	t.Helper()
	c, err := f.svc.CreateCountry(context.Background(), f.admin, name)
	require.NoError(t, err)
	return c
}

func (f *fixture) address(t *testing.T, countryID int64) *models.Address {
	t.Helper()
	a, err := f.svc.CreateAddress(context.Background(), models.Address{
		StreetNumber: "12",
		AddressLine1: "Rabbit Hole",
		City:         "Oxford",
		Region:       "Oxfordshire",
		PostalCode:   "OX1",
		CountryID:    countryID,
	})
	require.NoError(t, err)
	return a
}

func (f *fixture) category(t *testing.T, name string, parent *int64) *models.ProductCategory {
	t.Helper()
	c, err := f.svc.CreateCategory(context.Background(), f.admin, name, parent)
	require.NoError(t, err)
	return c
}

func (f *fixture) item(t *testing.T, categoryID int64, productName string) *models.ProductItem {
	t.Helper()
	ctx := context.Background()
	p, err := f.svc.CreateProduct(ctx, f.admin, categoryID, productName, "")
	require.NoError(t, err)
	it, err := f.svc.CreateProductItem(ctx, f.admin, p.ID, "SKU-"+productName, 10)
	require.NoError(t, err)
	return it
}

func (f *fixture) line(t *testing.T, categoryID int64, variation, value string) *models.VariationLine {
	t.Helper()
	ctx := context.Background()
	v, err := f.svc.CreateVariation(ctx, f.admin, categoryID, variation)
	require.NoError(t, err)
	l, err := f.svc.CreateVariationLine(ctx, f.admin, v.ID, value)
	require.NoError(t, err)
	return l
}

func ptr[T any](v T) *T { return &v }
