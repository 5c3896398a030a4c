package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"storefront/internal/apperr"
	"storefront/internal/models"
)

func TestCreateAddressRequiresCountry(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateAddress(context.Background(), models.Address{
		StreetNumber: "1", AddressLine1: "Main", City: "X", Region: "Y", PostalCode: "Z", CountryID: 999,
	})
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = f.svc.CreateAddress(context.Background(), models.Address{CountryID: 1})
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestLinkUserAddress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "alice@example.com")
	c := f.country(t, "Wonderland")
	home := f.address(t, c.ID)
	work := f.address(t, c.ID)

	link, err := f.svc.LinkUserAddress(ctx, f.admin, u.ID, home.ID)
	require.NoError(t, err)
	require.True(t, link.IsDefault)
	require.Equal(t, u.ID, link.User.ID)

	_, err = f.svc.LinkUserAddress(ctx, f.admin, u.ID, home.ID)
	require.ErrorIs(t, err, apperr.ErrAlreadyLinked)
	require.Equal(t, "User is already linked to the corresponding address.", apperr.Message(err))

	second, err := f.svc.LinkUserAddress(ctx, f.admin, u.ID, work.ID)
	require.NoError(t, err)
	require.False(t, second.IsDefault)

	linked, err := f.svc.ListUserAddresses(ctx, u.ID, u.ID)
	require.NoError(t, err)
	require.Len(t, linked, 2)
	require.Equal(t, c.CountryName, linked[0].Country.CountryName)

	_, err = f.svc.LinkUserAddress(ctx, f.admin, 999, home.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	require.Equal(t, "Invalid User ID.", apperr.Message(err))
	_, err = f.svc.LinkUserAddress(ctx, f.admin, u.ID, 999)
	require.Equal(t, "Invalid Address ID.", apperr.Message(err))

	_, err = f.svc.LinkUserAddress(ctx, u.ID, u.ID, home.ID)
	require.ErrorIs(t, err, apperr.ErrAccessDenied)
}

func TestUnlinkPromotesNextDefault(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "alice@example.com")
	c := f.country(t, "Wonderland")
	home := f.address(t, c.ID)
	work := f.address(t, c.ID)
	_, err := f.svc.LinkUserAddress(ctx, f.admin, u.ID, home.ID)
	require.NoError(t, err)
	_, err = f.svc.LinkUserAddress(ctx, f.admin, u.ID, work.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.UnlinkUserAddress(ctx, u.ID, u.ID, home.ID))
	linked, err := f.svc.ListUserAddresses(ctx, u.ID, u.ID)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	require.Equal(t, work.ID, linked[0].ID)
	require.True(t, linked[0].IsDefault)

	require.ErrorIs(t, f.svc.UnlinkUserAddress(ctx, u.ID, u.ID, home.ID), apperr.ErrNotFound)
}

func TestSetDefaultAddress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "alice@example.com")
	other := f.register(t, "bob@example.com")
	c := f.country(t, "Wonderland")
	home := f.address(t, c.ID)
	work := f.address(t, c.ID)
	for _, a := range []int64{home.ID, work.ID} {
		_, err := f.svc.LinkUserAddress(ctx, f.admin, u.ID, a)
		require.NoError(t, err)
	}

	require.NoError(t, f.svc.SetDefaultAddress(ctx, u.ID, u.ID, work.ID))
	linked, err := f.svc.ListUserAddresses(ctx, u.ID, u.ID)
	require.NoError(t, err)
	require.False(t, linked[0].IsDefault)
	require.True(t, linked[1].IsDefault)

	require.ErrorIs(t, f.svc.SetDefaultAddress(ctx, other.ID, u.ID, home.ID), apperr.ErrAccessDenied)
}

func TestDeleteCountryCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "alice@example.com")
	wonderland := f.country(t, "Wonderland")
	oz := f.country(t, "Oz")
	home := f.address(t, wonderland.ID)
	emerald := f.address(t, oz.ID)
	for _, a := range []int64{home.ID, emerald.ID} {
		_, err := f.svc.LinkUserAddress(ctx, f.admin, u.ID, a)
		require.NoError(t, err)
	}

	deleted, err := f.svc.DeleteCountry(ctx, f.admin, wonderland.ID)
	require.NoError(t, err)
	require.Equal(t, "Wonderland", deleted.CountryName)

	_, err = f.svc.GetAddress(ctx, home.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	addresses, err := f.svc.ListAddresses(ctx)
	require.NoError(t, err)
	require.Len(t, addresses, 1)

	detail, err := f.svc.GetUserDetail(ctx, u.ID, u.ID)
	require.NoError(t, err)
	require.Len(t, detail.Addresses, 1)
	require.Equal(t, emerald.ID, detail.Addresses[0].ID)
	require.True(t, detail.Addresses[0].IsDefault)

	_, err = f.svc.DeleteCountry(ctx, f.admin, wonderland.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteAddressIsAdminOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "alice@example.com")
	a := f.address(t, f.country(t, "Wonderland").ID)

	require.ErrorIs(t, f.svc.DeleteAddress(ctx, u.ID, a.ID), apperr.ErrAccessDenied)
	require.NoError(t, f.svc.DeleteAddress(ctx, f.admin, a.ID))
	require.ErrorIs(t, f.svc.DeleteAddress(ctx, f.admin, a.ID), apperr.ErrNotFound)
}
