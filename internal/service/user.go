package service

import (
	"context"
	"strings"

	"storefront/internal/apperr"
	"storefront/internal/auth"
	"storefront/internal/models"
	"storefront/internal/store"
)

const (
	emailConflict     = "Email Address is already in used."
	invalidUserID     = "Invalid User ID."
	invalidCredential = "Invalid Credential"
)

// UserUpdate carries the fields an administrator may change. Nil fields are
// left untouched.
type UserUpdate struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Password    *string
	RoleID      *int64
	Status      *bool
}

// Register creates a self-service account with the default role.
func (s *Service) Register(ctx context.Context, fields models.User, password string) (*models.User, error) {
	fields.RoleID = models.DefaultRoleID
	return s.createUser(ctx, 0, fields, password, false)
}

// CreateUser lets an administrator create an account with any role.
func (s *Service) CreateUser(ctx context.Context, actor int64, fields models.User, password string) (*models.User, error) {
	return s.createUser(ctx, actor, fields, password, true)
}

func (s *Service) createUser(ctx context.Context, actor int64, fields models.User, password string, asAdmin bool) (*models.User, error) {
	if strings.TrimSpace(password) == "" {
		return nil, apperr.Validation("password is required")
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperr.Store(err, "An error occurred while creating user.")
	}
	user, err := models.NewUser(fields, hash)
	if err != nil {
		return nil, err
	}
	err = s.tx(ctx, "An error occurred while creating user.", func(tx *store.Tx) error {
		if asAdmin {
			if err := s.requireAdmin(ctx, tx, actor); err != nil {
				return err
			}
		}
		if _, err := tx.Roles.Get(ctx, user.RoleID); err != nil {
			return notFoundAs(err, "Invalid Role ID.")
		}
		return conflictAs(tx.Users.Insert(ctx, user), emailConflict)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks credentials. Unknown emails are NotFound and wrong
// passwords Unauthorized.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user *models.User
	err := s.tx(ctx, selectError, func(tx *store.Tx) error {
		found, err := tx.Users.List(ctx, store.Eq("email_address", email))
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return apperr.NotFound("Invalid Username.")
		}
		user = &found[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	ok, err := s.hasher.Compare(user.Password, password)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Msg("stored password hash unreadable")
		return nil, apperr.Unauthorized(invalidCredential)
	}
	if !ok {
		return nil, apperr.Unauthorized(invalidCredential)
	}
	if !user.Status {
		return nil, apperr.Unauthorized("Account is disabled.")
	}
	return user, nil
}

func (s *Service) ListUsers(ctx context.Context, actor int64) ([]models.User, error) {
	var out []models.User
	err := s.tx(ctx, selectError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		var err error
		out, err = tx.Users.List(ctx)
		return err
	})
	return out, err
}

// GetUserDetail returns the account with its role, addresses and payment
// methods. Users may read their own detail.
func (s *Service) GetUserDetail(ctx context.Context, actor, userID int64) (*UserView, error) {
	var out *UserView
	err := s.tx(ctx, selectError, func(tx *store.Tx) error {
		if err := s.requireSelfOrAdmin(ctx, tx, actor, userID); err != nil {
			return err
		}
		var err error
		out, err = userView(ctx, tx, userID)
		return err
	})
	return out, err
}

func (s *Service) UpdateSelf(ctx context.Context, actor int64, firstName, lastName, phone string) (*models.User, error) {
	return s.UpdateUser(ctx, actor, actor, UserUpdate{FirstName: &firstName, LastName: &lastName, PhoneNumber: &phone})
}

// UpdateUser changes an account. Only administrators may change another
// account, the role or the status, and an Administrator never loses its
// role.
func (s *Service) UpdateUser(ctx context.Context, actor, userID int64, upd UserUpdate) (*models.User, error) {
	var hash string
	if upd.Password != nil {
		if strings.TrimSpace(*upd.Password) == "" {
			return nil, apperr.Validation("password is required")
		}
		var err error
		if hash, err = s.hasher.Hash(*upd.Password); err != nil {
			return nil, apperr.Store(err, "An error occurred while updating user.")
		}
	}

	var out *models.User
	err := s.tx(ctx, "An error occurred while updating user.", func(tx *store.Tx) error {
		privileged := upd.RoleID != nil || upd.Status != nil || upd.Password != nil || actor != userID
		if privileged {
			if err := s.requireAdmin(ctx, tx, actor); err != nil {
				return err
			}
		} else if err := s.requireSelfOrAdmin(ctx, tx, actor, userID); err != nil {
			return err
		}

		user, err := tx.Users.Get(ctx, userID)
		if err != nil {
			return notFoundAs(err, invalidUserID)
		}
		if upd.RoleID != nil && *upd.RoleID != user.RoleID {
			if err := checkRoleChange(ctx, tx, user, *upd.RoleID); err != nil {
				return err
			}
			user.RoleID = *upd.RoleID
		}

		fields := *user
		if upd.FirstName != nil {
			fields.FirstName = *upd.FirstName
		}
		if upd.LastName != nil {
			fields.LastName = *upd.LastName
		}
		if upd.PhoneNumber != nil {
			fields.PhoneNumber = *upd.PhoneNumber
		}
		if hash != "" {
			user.Password = hash
		}
		checked, err := models.NewUser(fields, user.Password)
		if err != nil {
			return err
		}
		checked.ID = user.ID
		checked.Status = user.Status
		if upd.Status != nil {
			checked.Status = *upd.Status
		}
		if err := tx.Users.Update(ctx, checked); err != nil {
			return conflictAs(err, emailConflict)
		}
		out = checked
		return nil
	})
	return out, err
}

// AssignRole moves a user to another role.
func (s *Service) AssignRole(ctx context.Context, actor, userID, roleID int64) (*models.User, *models.Role, error) {
	var (
		user *models.User
		role *models.Role
	)
	err := s.tx(ctx, updateError, func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		var err error
		if user, err = tx.Users.Get(ctx, userID); err != nil {
			return notFoundAs(err, "Unable to get user with id='%d'.", userID)
		}
		if err := checkRoleChange(ctx, tx, user, roleID); err != nil {
			return err
		}
		if role, err = tx.Roles.Get(ctx, roleID); err != nil {
			return err
		}
		user.RoleID = roleID
		return tx.Users.Update(ctx, user)
	})
	if err != nil {
		return nil, nil, err
	}
	return user, role, nil
}

// checkRoleChange refuses to move an Administrator and makes sure the
// target role exists.
func checkRoleChange(ctx context.Context, tx *store.Tx, user *models.User, roleID int64) error {
	current, err := tx.Roles.Get(ctx, user.RoleID)
	if err != nil && !apperr.IsNotFound(err) {
		return err
	}
	if current != nil && auth.IsAdmin(current) && roleID != current.ID {
		return apperr.Referential("Cannot change role of '%s'.", models.AdministratorRole)
	}
	if _, err := tx.Roles.Get(ctx, roleID); err != nil {
		return notFoundAs(err, "Invalid Role ID.")
	}
	return nil
}

// ChangePassword replaces the actor's password after checking the old one.
func (s *Service) ChangePassword(ctx context.Context, actor int64, oldPassword, newPassword string) (*models.User, error) {
	if strings.TrimSpace(newPassword) == "" {
		return nil, apperr.Validation("new_password is required")
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, apperr.Store(err, "An error occurred while updating user.")
	}

	var out *models.User
	err = s.tx(ctx, "An error occurred while updating user.", func(tx *store.Tx) error {
		user, _, err := loadActor(ctx, tx, actor)
		if err != nil {
			return err
		}
		ok, err := s.hasher.Compare(user.Password, oldPassword)
		if err != nil || !ok {
			return apperr.Unauthorized(invalidCredential)
		}
		user.Password = hash
		if err := tx.Users.Update(ctx, user); err != nil {
			return err
		}
		out = user
		return nil
	})
	return out, err
}

// DeleteUser removes an account with its address links and payment
// methods. Administrators cannot be deleted.
func (s *Service) DeleteUser(ctx context.Context, actor, userID int64) (*models.User, error) {
	var out *models.User
	err := s.tx(ctx, "An error occurred while deleting user.", func(tx *store.Tx) error {
		if err := s.requireAdmin(ctx, tx, actor); err != nil {
			return err
		}
		user, err := tx.Users.Get(ctx, userID)
		if err != nil {
			return notFoundAs(err, invalidUserID)
		}
		role, err := tx.Roles.Get(ctx, user.RoleID)
		if err != nil && !apperr.IsNotFound(err) {
			return err
		}
		if auth.IsAdmin(role) {
			return apperr.Referential("Cannot delete user with role as '%s'", models.AdministratorRole)
		}

		links, err := tx.UserAddresses.List(ctx, store.Eq("user_id", userID))
		if err != nil {
			return err
		}
		for _, l := range links {
			if err := tx.UserAddresses.Delete(ctx, l.ID); err != nil {
				return err
			}
		}
		methods, err := tx.PaymentMethods.List(ctx, store.Eq("user_id", userID))
		if err != nil {
			return err
		}
		for _, m := range methods {
			if err := tx.PaymentMethods.Delete(ctx, m.ID); err != nil {
				return err
			}
		}
		if err := tx.Users.Delete(ctx, userID); err != nil {
			return err
		}
		out = user
		return nil
	})
	return out, err
}

func userView(ctx context.Context, tx *store.Tx, userID int64) (*UserView, error) {
	user, err := tx.Users.Get(ctx, userID)
	if err != nil {
		return nil, notFoundAs(err, invalidUserID)
	}
	role, err := tx.Roles.Get(ctx, user.RoleID)
	if err != nil && !apperr.IsNotFound(err) {
		return nil, err
	}
	addresses, err := linkedAddresses(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	methods, err := tx.PaymentMethods.List(ctx, store.Eq("user_id", userID))
	if err != nil {
		return nil, err
	}
	return &UserView{User: *user, Role: role, Addresses: addresses, PaymentMethods: methods}, nil
}
