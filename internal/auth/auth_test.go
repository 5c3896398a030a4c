package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/models"
)

func TestIsAdmin(t *testing.T) {
	require.True(t, IsAdmin(&models.Role{Name: "Administrator"}))
	require.True(t, IsAdmin(&models.Role{Name: "administrator"}))
	require.True(t, IsAdmin(&models.Role{Name: " Administrator "}))
	require.False(t, IsAdmin(&models.Role{Name: "Customer"}))
	require.False(t, IsAdmin(nil))
}

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}
	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hash)

	ok, err := h.Compare(hash, "s3cret")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = h.Compare(hash, "wrong")
	require.NoError(t, err)
	require.False(t, ok)

	_, err = h.Compare("not-a-hash", "s3cret")
	require.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute, time.Hour)
	pair, err := issuer.IssuePair(7, true)
	require.NoError(t, err)
	require.Equal(t, int64(60), pair.ExpiresIn)

	claims, err := issuer.Parse(pair.AccessToken, TypeAccess)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, int64(7), id)
	require.True(t, claims.IsAdmin)
	require.True(t, claims.Fresh)

	_, err = issuer.Parse(pair.RefreshToken, TypeAccess)
	require.ErrorIs(t, err, ErrInvalidToken)

	refreshClaims, err := issuer.Parse(pair.RefreshToken, TypeRefresh)
	require.NoError(t, err)
	require.False(t, refreshClaims.Fresh)

	refreshed, err := issuer.Refresh(7, false)
	require.NoError(t, err)
	require.Empty(t, refreshed.RefreshToken)
	claims, err = issuer.Parse(refreshed.AccessToken, TypeAccess)
	require.NoError(t, err)
	require.False(t, claims.Fresh)
}

func TestExpiredAndForeignTokensAreRejected(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute, time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	pair, err := issuer.IssuePair(1, false)
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Parse(pair.AccessToken, TypeAccess)
	require.ErrorIs(t, err, ErrInvalidToken)

	other := NewTokenIssuer("other-secret", time.Minute, time.Hour)
	fresh, err := other.IssuePair(1, false)
	require.NoError(t, err)
	_, err = issuer.Parse(fresh.AccessToken, TypeAccess)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWithoutNumericSubjectIsRejected(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute, time.Hour)
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Type: TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "abc",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = issuer.Parse(raw, TypeAccess)
	require.ErrorIs(t, err, ErrInvalidToken)
}
