// Package gormstore is the PostgreSQL engine, built on gorm and pgx.
package gormstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/store"
)

// Schema lists the tables in dependency order for AutoMigrate.
var Schema = []any{
	&models.Country{},
	&models.Address{},
	&models.Role{},
	&models.User{},
	&models.UserAddress{},
	&models.PaymentType{},
	&models.UserPaymentMethod{},
	&models.ProductCategory{},
	&models.Product{},
	&models.ProductItem{},
	&models.Image{},
	&models.ImageLine{},
	&models.Variation{},
	&models.VariationLine{},
	&models.ProductVariation{},
	&models.ShippingMethod{},
}

type Store struct {
	db *gorm.DB
}

// Open connects to PostgreSQL and migrates the schema.
func Open(ctx context.Context, dsn string, log zerolog.Logger) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         newLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	s := &Store{db: db}
	if err := s.Ping(ctx); err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).AutoMigrate(Schema...); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Info().Int("tables", len(Schema)).Msg("postgres schema migrated")
	return s, nil
}

// gormWriter routes gorm's slow query and error lines into zerolog.
type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...any) {
	w.log.Warn().Msgf(format, args...)
}

func newLogger(log zerolog.Logger) logger.Interface {
	return logger.New(gormWriter{log: log.With().Str("component", "gorm").Logger()}, logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func (s *Store) Name() string { return "postgres" }

// WithTx runs fn at SERIALIZABLE isolation so invariants checked inside fn
// still hold at commit.
func (s *Store) WithTx(ctx context.Context, fn func(tx *store.Tx) error) error {
	err := s.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		return fn(newTx(gtx))
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	return translate(err, "")
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return apperr.Store(err, "database handle unavailable")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return apperr.Store(err, "database is unreachable")
	}
	return nil
}

func (s *Store) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func newTx(db *gorm.DB) *store.Tx {
	return &store.Tx{
		Countries:         bind[models.Country](db),
		Addresses:         bind[models.Address](db),
		UserAddresses:     bind[models.UserAddress](db),
		Roles:             bind[models.Role](db),
		Users:             bind[models.User](db),
		PaymentTypes:      bind[models.PaymentType](db),
		PaymentMethods:    bind[models.UserPaymentMethod](db),
		Categories:        bind[models.ProductCategory](db),
		Products:          bind[models.Product](db),
		ProductItems:      bind[models.ProductItem](db),
		ProductVariations: bind[models.ProductVariation](db),
		Images:            bind[models.Image](db),
		ImageLines:        bind[models.ImageLine](db),
		Variations:        bind[models.Variation](db),
		VariationLines:    bind[models.VariationLine](db),
		ShippingMethods:   bind[models.ShippingMethod](db),
	}
}

type gormTable[T any, PT store.Model[T]] struct {
	db   *gorm.DB
	name string
}

func bind[T any, PT store.Model[T]](db *gorm.DB) store.Table[T] {
	var zero T
	return &gormTable[T, PT]{db: db, name: PT(&zero).TableName()}
}

func (g *gormTable[T, PT]) Insert(ctx context.Context, v *T) error {
	err := g.db.WithContext(ctx).Omit(clause.Associations).Create(v).Error
	return translate(err, g.name)
}

func (g *gormTable[T, PT]) Update(ctx context.Context, v *T) error {
	res := g.db.WithContext(ctx).Model(v).Select("*").Omit(clause.Associations).Updates(v)
	if res.Error != nil {
		return translate(res.Error, g.name)
	}
	if res.RowsAffected == 0 {
		return notFound(g.name, PT(v).GetID())
	}
	return nil
}

func (g *gormTable[T, PT]) Delete(ctx context.Context, id int64) error {
	res := g.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return translate(res.Error, g.name)
	}
	if res.RowsAffected == 0 {
		return notFound(g.name, id)
	}
	return nil
}

func (g *gormTable[T, PT]) Get(ctx context.Context, id int64) (*T, error) {
	v := new(T)
	err := g.db.WithContext(ctx).First(v, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound(g.name, id)
	}
	if err != nil {
		return nil, translate(err, g.name)
	}
	return v, nil
}

func (g *gormTable[T, PT]) List(ctx context.Context, filters ...store.Filter) ([]T, error) {
	q := g.db.WithContext(ctx).Model(new(T))
	if len(filters) > 0 {
		exprs := make([]clause.Expression, 0, len(filters))
		for _, f := range filters {
			col := clause.Column{Table: clause.CurrentTable, Name: f.Column}
			if f.Null {
				exprs = append(exprs, clause.Eq{Column: col, Value: nil})
				continue
			}
			exprs = append(exprs, clause.Eq{Column: col, Value: f.Value})
		}
		q = q.Clauses(clause.Where{Exprs: exprs})
	}
	var out []T
	if err := q.Order("id").Find(&out).Error; err != nil {
		return nil, translate(err, g.name)
	}
	return out, nil
}

// translate maps gorm and PostgreSQL failures onto the error taxonomy.
func translate(err error, table string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound("Unable to find %s.", table)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflict("%s already exists.", table)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperr.Referential("%s is referenced by other records.", table)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return apperr.Conflict("%s already exists.", table)
		case "23503":
			return apperr.Referential("%s is referenced by other records.", table)
		case "40001":
			return apperr.Conflict("concurrent update on %s, please retry.", table)
		}
	}
	return apperr.Store(err, "An error occurred while accessing the database.")
}

func notFound(table string, id int64) error {
	return apperr.NotFound("Unable to find %s with id='%d'.", table, id)
}
