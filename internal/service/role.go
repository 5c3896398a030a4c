package service

import (
	"context"

	"storefront/internal/apperr"
	"storefront/internal/auth"
	"storefront/internal/models"
	"storefront/internal/store"
)

const roleConflict = "Role name already exists."

func (s *Service) ListRoles(ctx context.Context, actor int64) ([]models.Role, error) {
	var out []models.Role
	err := s.tx(ctx, selectError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		var err error
		out, err = tx.Roles.List(ctx)
		return err
	})
	return out, err
}

func (s *Service) GetRole(ctx context.Context, actor, id int64) (*models.Role, error) {
	var out *models.Role
	err := s.tx(ctx, selectError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		var err error
		out, err = tx.Roles.Get(ctx, id)
		return notFoundAs(err, "Unable to find Role with id='%d'.", id)
	})
	return out, err
}

func (s *Service) CreateRole(ctx context.Context, actor int64, name string) (*models.Role, error) {
	role, err := models.NewRole(name)
	if err != nil {
		return nil, err
	}
	err = s.tx(ctx, insertError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		return conflictAs(tx.Roles.Insert(ctx, role), roleConflict)
	})
	if err != nil {
		return nil, err
	}
	return role, nil
}

// UpdateRole renames a role. The administrator role keeps its name, since
// the authorization gate is keyed on it.
func (s *Service) UpdateRole(ctx context.Context, actor, id int64, name string) (*models.Role, error) {
	patch, err := models.NewRole(name)
	if err != nil {
		return nil, err
	}
	var out *models.Role
	err = s.tx(ctx, updateError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		role, err := tx.Roles.Get(ctx, id)
		if err != nil {
			return notFoundAs(err, "Unable to find Role with id='%d'.", id)
		}
		if auth.IsAdmin(role) && !auth.IsAdmin(patch) {
			return apperr.Referential("Cannot rename the '%s' role.", models.AdministratorRole)
		}
		role.Name = patch.Name
		if err := tx.Roles.Update(ctx, role); err != nil {
			return conflictAs(err, roleConflict)
		}
		out = role
		return nil
	})
	return out, err
}

// DeleteRole refuses to remove a role that is still assigned to users.
func (s *Service) DeleteRole(ctx context.Context, actor, id int64) error {
	return s.tx(ctx, deleteError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		role, err := tx.Roles.Get(ctx, id)
		if err != nil {
			return notFoundAs(err, "Unable to find Role with id='%d'.", id)
		}
		holders, err := tx.Users.List(ctx, store.Eq("role_id", id))
		if err != nil {
			return err
		}
		if len(holders) > 0 {
			return apperr.Referential("Role '%s' is still assigned to %d user(s).", role.Name, len(holders))
		}
		return tx.Roles.Delete(ctx, id)
	})
}
