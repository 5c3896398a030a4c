package service

import (
	"context"
	"strings"

	"storefront/internal/models"
	"storefront/internal/store"
)

// Bootstrap seeds the Customer and Administrator roles into an empty role
// table, and an administrator account when credentials are given and the
// email is free. It is safe to run on every start.
func (s *Service) Bootstrap(ctx context.Context, adminEmail, adminPassword string) error {
	var adminRoleID int64
	err := s.tx(ctx, insertError, func(tx *store.Tx) error {
		roles, err := tx.Roles.List(ctx)
		if err != nil {
			return err
		}
		if len(roles) == 0 {
			for _, name := range []string{models.CustomerRole, models.AdministratorRole} {
				r := &models.Role{Name: name}
				if err := tx.Roles.Insert(ctx, r); err != nil {
					return err
				}
				roles = append(roles, *r)
			}
			s.log.Info().Int("roles", len(roles)).Msg("seeded roles")
		}
		for _, r := range roles {
			if strings.EqualFold(r.Name, models.AdministratorRole) {
				adminRoleID = r.ID
			}
		}
		return nil
	})
	if err != nil || adminEmail == "" {
		return err
	}
	if adminRoleID == 0 {
		s.log.Warn().Msg("no administrator role, skipping admin account seed")
		return nil
	}

	hash, err := s.hasher.Hash(adminPassword)
	if err != nil {
		return err
	}
	admin, err := models.NewUser(models.User{
		FirstName:    "Site",
		LastName:     "Administrator",
		EmailAddress: adminEmail,
		PhoneNumber:  "-",
		RoleID:       adminRoleID,
	}, hash)
	if err != nil {
		return err
	}
	return s.tx(ctx, insertError, func(tx *store.Tx) error {
		existing, err := tx.Users.List(ctx, store.Eq("email_address", admin.EmailAddress))
		if err != nil || len(existing) > 0 {
			return err
		}
		if err := tx.Users.Insert(ctx, admin); err != nil {
			return err
		}
		s.log.Info().Int64("user_id", admin.ID).Str("email", admin.EmailAddress).Msg("seeded administrator account")
		return nil
	})
}
