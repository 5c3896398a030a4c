// Package service implements the catalog and account operations. Every
// operation is one unit of work: authorization, lookups, association rules
// and writes all run inside a single store transaction.
package service

import (
	"context"

	"github.com/rs/zerolog"

	"storefront/internal/apperr"
	"storefront/internal/auth"
	"storefront/internal/models"
	"storefront/internal/storage"
	"storefront/internal/store"
)

const (
	selectError = "An error occurred while fetching data."
	insertError = "An error occurred while inserting."
	updateError = "An error occurred while updating."
	deleteError = "An error occurred while deleting record."
)

type Service struct {
	store  store.Store
	hasher auth.PasswordHasher
	files  storage.Storage
	log    zerolog.Logger
}

func New(st store.Store, hasher auth.PasswordHasher, files storage.Storage, log zerolog.Logger) *Service {
	return &Service{store: st, hasher: hasher, files: files, log: log}
}

// Ping checks the persistence engine.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// tx runs fn in one unit of work and gives store failures a caller-facing
// message.
func (s *Service) tx(ctx context.Context, failure string, fn func(tx *store.Tx) error) error {
	err := s.store.WithTx(ctx, fn)
	if err != nil && apperr.Message(err) == "" {
		return apperr.Store(err, failure)
	}
	return err
}

// requireAdmin reloads the actor and its role inside tx. Callers run it
// before any target lookup.
func (s *Service) requireAdmin(ctx context.Context, tx *store.Tx, actorID int64) error {
	user, role, err := loadActor(ctx, tx, actorID)
	if err != nil {
		return err
	}
	if !auth.IsAdmin(role) {
		s.log.Warn().Int64("actor_id", user.ID).Str("role", role.Name).Msg("admin capability required")
		return apperr.AccessDenied()
	}
	return nil
}

// requireSelfOrAdmin lets users act on their own account.
func (s *Service) requireSelfOrAdmin(ctx context.Context, tx *store.Tx, actorID, userID int64) error {
	if actorID > 0 && actorID == userID {
		_, _, err := loadActor(ctx, tx, actorID)
		return err
	}
	return s.requireAdmin(ctx, tx, actorID)
}

func loadActor(ctx context.Context, tx *store.Tx, actorID int64) (*models.User, *models.Role, error) {
	if actorID <= 0 {
		return nil, nil, apperr.AccessDenied()
	}
	user, err := tx.Users.Get(ctx, actorID)
	if apperr.IsNotFound(err) {
		return nil, nil, apperr.AccessDenied()
	}
	if err != nil {
		return nil, nil, err
	}
	if !user.Status {
		return nil, nil, apperr.AccessDenied()
	}
	role, err := tx.Roles.Get(ctx, user.RoleID)
	if apperr.IsNotFound(err) {
		return nil, nil, apperr.AccessDenied()
	}
	if err != nil {
		return nil, nil, err
	}
	return user, role, nil
}

// IsAdmin reports the current capability of userID. Used for the advisory
// claim in issued tokens.
func (s *Service) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	admin := false
	err := s.tx(ctx, selectError, func(tx *store.Tx) error {
		_, role, err := loadActor(ctx, tx, userID)
		if apperr.IsAccessDenied(err) {
			return nil
		}
		if err != nil {
			return err
		}
		admin = auth.IsAdmin(role)
		return nil
	})
	return admin, err
}

// conflictAs rewrites the message of a uniqueness violation.
func conflictAs(err error, message string) error {
	if apperr.IsConflict(err) {
		return apperr.Rephrase(err, "%s", message)
	}
	return err
}

// notFoundAs rewrites the message of a missing row.
func notFoundAs(err error, format string, args ...any) error {
	if apperr.IsNotFound(err) {
		return apperr.Rephrase(err, format, args...)
	}
	return err
}
