package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/auth"
	"storefront/internal/service"
	"storefront/internal/storage"
	"storefront/internal/store/memory"
)

type envelope struct {
	Code    int             `json:"code"`
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type apiClient struct {
	t      *testing.T
	router http.Handler
	token  string
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := service.New(
		memory.New(),
		auth.BcryptHasher{Cost: bcrypt.MinCost},
		storage.NewDisk(t.TempDir(), 1<<20),
		zerolog.Nop(),
	)
	require.NoError(t, svc.Bootstrap(context.Background(), "admin@example.com", "admin-pass"))
	return NewRouter(svc, auth.NewTokenIssuer("test-secret", time.Minute, time.Hour), zerolog.Nop())
}

func (a *apiClient) do(method, path string, body any) (int, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return a.send(req)
}

func (a *apiClient) send(req *http.Request) (int, envelope) {
	a.t.Helper()
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	require.Equal(a.t, w.Code, env.Code, "HTTP status must equal the envelope code")
	return w.Code, env
}

func (a *apiClient) login(email, password string) {
	a.t.Helper()
	a.token = ""
	code, env := a.do(http.MethodPost, "/login", gin.H{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, code, env.Message)
	var pair auth.TokenPair
	require.NoError(a.t, json.Unmarshal(env.Data, &pair))
	a.token = pair.AccessToken
}

func idOf(t *testing.T, env envelope) int64 {
	t.Helper()
	var row struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &row))
	require.NotZero(t, row.ID)
	return row.ID
}

func TestStorefrontScenario(t *testing.T) {
	router := newTestRouter(t)
	admin := &apiClient{t: t, router: router}
	admin.login("admin@example.com", "admin-pass")

	// Countries and addresses.
	code, env := admin.do(http.MethodPost, "/country", gin.H{"country_name": "Wonderland"})
	require.Equal(t, http.StatusCreated, code)
	require.Equal(t, "Created", env.Status)
	countryID := idOf(t, env)

	code, env = admin.do(http.MethodPost, "/country", gin.H{"country_name": "Wonderland"})
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "Country name already exists.", env.Message)

	code, env = admin.do(http.MethodPost, "/address", gin.H{
		"street_number": "12", "address_line1": "Rabbit Hole", "city": "Oxford",
		"region": "Oxon", "postal_code": "OX1", "country_id": countryID,
	})
	require.Equal(t, http.StatusCreated, code)
	addressID := idOf(t, env)

	// A customer registers and is denied admin operations.
	anon := &apiClient{t: t, router: router}
	code, env = anon.do(http.MethodPost, "/user/register", gin.H{
		"first_name": "Alice", "email_address": "alice@example.com",
		"phone_number": "555", "password": "secret",
	})
	require.Equal(t, http.StatusCreated, code)
	require.NotContains(t, string(env.Data), "password")
	aliceID := idOf(t, env)

	alice := &apiClient{t: t, router: router}
	alice.login("alice@example.com", "secret")
	code, env = alice.do(http.MethodPost, "/country", gin.H{"country_name": "Oz"})
	require.Equal(t, http.StatusForbidden, code)
	require.Equal(t, "Forbidden", env.Status)

	code, env = admin.do(http.MethodGet, "/country", nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "Query Successful", env.Message)
	var countries []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &countries))
	require.Len(t, countries, 1)

	// Linking is idempotent-checked and makes the first address default.
	linkPath := fmt.Sprintf("/user/%d/address/%d", aliceID, addressID)
	code, _ = admin.do(http.MethodPost, linkPath, nil)
	require.Equal(t, http.StatusCreated, code)
	code, env = admin.do(http.MethodPost, linkPath, nil)
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "User is already linked to the corresponding address.", env.Message)

	code, env = alice.do(http.MethodGet, "/user/detail", nil)
	require.Equal(t, http.StatusOK, code)
	var detail struct {
		Addresses []struct {
			ID        int64 `json:"id"`
			IsDefault bool  `json:"is_default"`
		} `json:"addresses"`
		Role struct {
			Name string `json:"name"`
		} `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	require.Len(t, detail.Addresses, 1)
	require.True(t, detail.Addresses[0].IsDefault)
	require.Equal(t, "Customer", detail.Role.Name)

	// Category tree with a rejected cycle.
	code, env = admin.do(http.MethodPost, "/product_category", gin.H{"name": "Clothing"})
	require.Equal(t, http.StatusCreated, code)
	clothingID := idOf(t, env)
	code, env = admin.do(http.MethodPost, "/product_category", gin.H{"name": "Shirts", "parent_category_id": clothingID})
	require.Equal(t, http.StatusCreated, code)
	shirtsID := idOf(t, env)

	code, _ = admin.do(http.MethodPut, fmt.Sprintf("/product_category/%d/parent", clothingID), gin.H{"parent_category_id": shirtsID})
	require.Equal(t, http.StatusBadRequest, code)

	code, env = anon.do(http.MethodGet, "/product_category", nil)
	require.Equal(t, http.StatusOK, code)
	var roots []struct {
		Name          string `json:"name"`
		SubCategories []struct {
			Name string `json:"name"`
		} `json:"sub_categories"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &roots))
	require.Len(t, roots, 1)
	require.Equal(t, "Shirts", roots[0].SubCategories[0].Name)

	// Products, items, variations and an image.
	code, env = admin.do(http.MethodPost, "/product", gin.H{"category_id": shirtsID, "name": "Tee"})
	require.Equal(t, http.StatusCreated, code)
	productID := idOf(t, env)
	code, env = admin.do(http.MethodPost, fmt.Sprintf("/product/%d/item", productID), gin.H{"sku": "TEE-RED", "price": 9.5})
	require.Equal(t, http.StatusCreated, code)
	itemID := idOf(t, env)
	code, env = admin.do(http.MethodPost, "/variation", gin.H{"category_id": shirtsID, "name": "Color"})
	require.Equal(t, http.StatusCreated, code)
	variationID := idOf(t, env)
	code, env = admin.do(http.MethodPost, "/variation_line", gin.H{"variation_id": variationID, "name": "Red"})
	require.Equal(t, http.StatusCreated, code)
	lineID := idOf(t, env)
	code, _ = admin.do(http.MethodPost, fmt.Sprintf("/product_item/%d/variation/%d", itemID, lineID), nil)
	require.Equal(t, http.StatusCreated, code)

	code, env = admin.send(imageRequest(t, itemID, "tee.png"))
	require.Equal(t, http.StatusCreated, code, env.Message)
	code, env = admin.send(imageRequest(t, itemID, "tee.exe"))
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "Image extension '.exe' is not allowed.", env.Message)

	code, env = alice.do(http.MethodGet, fmt.Sprintf("/product_item/%d", itemID), nil)
	require.Equal(t, http.StatusOK, code)
	var item struct {
		ImageLines     []map[string]any `json:"image_lines"`
		VariationLines []map[string]any `json:"variation_lines"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &item))
	require.Len(t, item.ImageLines, 1)
	require.Len(t, item.VariationLines, 1)

	// Deleting the root category removes the whole subtree.
	code, env = admin.do(http.MethodDelete, fmt.Sprintf("/product_category/%d", clothingID), nil)
	require.Equal(t, http.StatusOK, code)
	require.Nil(t, env.Data)
	code, _ = admin.do(http.MethodGet, fmt.Sprintf("/product/%d", productID), nil)
	require.Equal(t, http.StatusNotFound, code)
}

func TestAuthErrors(t *testing.T) {
	router := newTestRouter(t)
	anon := &apiClient{t: t, router: router}

	code, env := anon.do(http.MethodGet, "/user", nil)
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, "Unauthorized", env.Status)

	code, env = anon.do(http.MethodPost, "/login", gin.H{"email": "ghost@example.com", "password": "x"})
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "Invalid Username.", env.Message)

	code, env = anon.do(http.MethodPost, "/login", gin.H{"email": "admin@example.com", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, "Invalid Credential", env.Message)

	code, env = anon.do(http.MethodPost, "/login", gin.H{"email": "admin@example.com"})
	require.Equal(t, http.StatusBadRequest, code)
	require.Contains(t, env.Message, "password is required")

	code, env = anon.do(http.MethodPost, "/logout", nil)
	require.Equal(t, http.StatusNotImplemented, code)
	require.Equal(t, "Not Implemented.", env.Status)
}

func TestRefreshAndChangePassword(t *testing.T) {
	router := newTestRouter(t)
	anon := &apiClient{t: t, router: router}
	code, env := anon.do(http.MethodPost, "/login", gin.H{"email": "admin@example.com", "password": "admin-pass"})
	require.Equal(t, http.StatusOK, code)
	var pair auth.TokenPair
	require.NoError(t, json.Unmarshal(env.Data, &pair))

	refresher := &apiClient{t: t, router: router, token: pair.RefreshToken}
	code, env = refresher.do(http.MethodGet, "/refresh", nil)
	require.Equal(t, http.StatusOK, code)
	var refreshed auth.TokenPair
	require.NoError(t, json.Unmarshal(env.Data, &refreshed))
	require.NotEmpty(t, refreshed.AccessToken)
	require.Empty(t, refreshed.RefreshToken)

	admin := &apiClient{t: t, router: router, token: refreshed.AccessToken}
	code, env = admin.do(http.MethodPut, "/user/change-password", gin.H{"old_password": "nope", "new_password": "n"})
	require.Equal(t, http.StatusUnauthorized, code)
	code, env = admin.do(http.MethodPut, "/user/change-password", gin.H{"old_password": "admin-pass", "new_password": "next"})
	require.Equal(t, http.StatusOK, code)
	require.Nil(t, env.Data)
	require.Contains(t, env.Message, "admin@example.com")

	admin.login("admin@example.com", "next")
}

func TestPaginationAndBadIDs(t *testing.T) {
	router := newTestRouter(t)
	admin := &apiClient{t: t, router: router}
	admin.login("admin@example.com", "admin-pass")
	for _, name := range []string{"A", "B", "C"} {
		code, _ := admin.do(http.MethodPost, "/country", gin.H{"country_name": name})
		require.Equal(t, http.StatusCreated, code)
	}

	code, env := admin.do(http.MethodGet, "/country?page=2&limit=2", nil)
	require.Equal(t, http.StatusOK, code)
	var page []struct {
		CountryName string `json:"country_name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page, 1)
	require.Equal(t, "C", page[0].CountryName)

	for _, query := range []string{
		"page=9223372036854775807&limit=2",
		"page=3&limit=9223372036854775807",
		"page=4611686018427387905&limit=4",
	} {
		code, env = admin.do(http.MethodGet, "/country?"+query, nil)
		require.Equal(t, http.StatusOK, code, query)
		require.JSONEq(t, `[]`, string(env.Data), query)
	}
	code, env = admin.do(http.MethodGet, "/country?page=1&limit=9223372036854775807", nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page, 3)

	code, _ = admin.do(http.MethodGet, "/country?page=0", nil)
	require.Equal(t, http.StatusBadRequest, code)
	code, _ = admin.do(http.MethodGet, "/country/abc", nil)
	require.Equal(t, http.StatusBadRequest, code)
	code, env = admin.do(http.MethodGet, "/country/99", nil)
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "No Country with id='99'", env.Message)
}

func imageRequest(t *testing.T, itemID int64, filename string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/product_item/%d/image", itemID), body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}
