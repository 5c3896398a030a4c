// Package mongostore is the MongoDB engine. Every unit of work runs in a
// session transaction, so the server must be a replica set.
package mongostore

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"storefront/internal/apperr"
	"storefront/internal/models"
	"storefront/internal/store"
)

const countersCollection = "counters"

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials uri, checks the primary and makes sure every unique index
// exists in database dbName.
func Connect(ctx context.Context, uri, dbName string, log zerolog.Logger) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := &Store{client: client, db: client.Database(dbName)}
	log.Info().Str("database", dbName).Msg("mongodb connected")

	if err := EnsureIndexes(ctx, s.db, log); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *Store) Name() string { return "mongo" }

func (s *Store) WithTx(ctx context.Context, fn func(tx *store.Tx) error) error {
	sess, err := s.client.StartSession()
	if err != nil {
		return apperr.Store(err, "An error occurred while accessing the database.")
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(newTx(s.db, sc))
	})
	if err != nil {
		return translate(err, "")
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.client.Ping(checkCtx, readpref.Primary()); err != nil {
		return apperr.Store(err, "database is unreachable")
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func newTx(db *mongo.Database, sc mongo.SessionContext) *store.Tx {
	return &store.Tx{
		Countries:         bind[models.Country](db, sc),
		Addresses:         bind[models.Address](db, sc),
		UserAddresses:     bind[models.UserAddress](db, sc),
		Roles:             bind[models.Role](db, sc),
		Users:             bind[models.User](db, sc),
		PaymentTypes:      bind[models.PaymentType](db, sc),
		PaymentMethods:    bind[models.UserPaymentMethod](db, sc),
		Categories:        bind[models.ProductCategory](db, sc),
		Products:          bind[models.Product](db, sc),
		ProductItems:      bind[models.ProductItem](db, sc),
		ProductVariations: bind[models.ProductVariation](db, sc),
		Images:            bind[models.Image](db, sc),
		ImageLines:        bind[models.ImageLine](db, sc),
		Variations:        bind[models.Variation](db, sc),
		VariationLines:    bind[models.VariationLine](db, sc),
		ShippingMethods:   bind[models.ShippingMethod](db, sc),
	}
}

type counter struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

// nextID hands out the next surrogate key of collection name.
func nextID(sc mongo.SessionContext, db *mongo.Database, name string) (int64, error) {
	var c counter
	err := db.Collection(countersCollection).FindOneAndUpdate(
		sc,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		return 0, err
	}
	return c.Seq, nil
}
