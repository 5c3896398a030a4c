package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"storefront/internal/apperr"
)

func TestOKDefaults(t *testing.T) {
	env := OK([]int{1, 2})
	require.Equal(t, http.StatusOK, env.Code)
	require.Equal(t, "OK", env.Status)
	require.Equal(t, "Query Successful", env.Message)
	require.Equal(t, []int{1, 2}, env.Data)
}

func TestHelpersCarryCodes(t *testing.T) {
	cases := []struct {
		env    Envelope
		code   int
		status string
	}{
		{Created("made", nil), http.StatusCreated, "Created"},
		{BadRequest("bad"), http.StatusBadRequest, "Bad Request"},
		{Unauthorized("who"), http.StatusUnauthorized, "Unauthorized"},
		{AccessDenied(), http.StatusForbidden, "Forbidden"},
		{NotFound("gone"), http.StatusNotFound, "Not found"},
		{ServerError("boom"), http.StatusInternalServerError, "Internal Server Error"},
		{Unimplemented(), http.StatusNotImplemented, "Not Implemented."},
	}
	for _, tc := range cases {
		require.Equal(t, tc.code, tc.env.Code)
		require.Equal(t, tc.status, tc.env.Status)
		require.NotEmpty(t, tc.env.Message)
	}
}

func TestWithoutDataOmitsKey(t *testing.T) {
	raw, err := json.Marshal(OK(map[string]string{"a": "b"}).WithMessage("Password changed.").WithoutData())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.NotContains(t, decoded, "data")
	require.Equal(t, "Password changed.", decoded["message"])
	require.EqualValues(t, 200, decoded["code"])
}

func TestNilDataIsRenderedAsNull(t *testing.T) {
	raw, err := json.Marshal(BadRequest("nope"))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Contains(t, decoded, "data")
	require.Nil(t, decoded["data"])
}

func TestFromError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation", apperr.Validation("name is required"), http.StatusBadRequest},
		{"conflict", apperr.Conflict("Country name already exists."), http.StatusBadRequest},
		{"already linked", apperr.AlreadyLinked("linked"), http.StatusBadRequest},
		{"referential", apperr.Referential("in use"), http.StatusBadRequest},
		{"cycle", apperr.Cycle("loop"), http.StatusBadRequest},
		{"incompatible", apperr.IncompatibleVariation("wrong axis"), http.StatusBadRequest},
		{"not found", apperr.NotFound("missing"), http.StatusNotFound},
		{"access denied", apperr.AccessDenied(), http.StatusForbidden},
		{"unauthorized", apperr.Unauthorized("bad password"), http.StatusUnauthorized},
		{"store", apperr.Store(errors.New("dial tcp: refused"), "An error occurred while fetching data."), http.StatusInternalServerError},
		{"unknown", errors.New("raw"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.code, FromError(tc.err).Code)
		})
	}
}

func TestFromErrorHidesInternalDetail(t *testing.T) {
	env := FromError(apperr.Store(errors.New("pq: password authentication failed"), "An error occurred while inserting."))
	require.Equal(t, "An error occurred while inserting.", env.Message)

	env = FromError(errors.New("secret internals"))
	require.NotContains(t, env.Message, "secret")
}
