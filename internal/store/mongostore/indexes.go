package mongostore

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type collectionIndex struct {
	collection string
	name       string
	keys       []string
	unique     bool
}

// indexes mirrors the unique and foreign key indexes of the relational
// schema.
var indexes = []collectionIndex{
	{"country", "country_name_unique", []string{"country_name"}, true},
	{"role", "name_unique", []string{"name"}, true},
	{"site_user", "email_address_unique", []string{"email_address"}, true},
	{"site_user", "role_id_index", []string{"role_id"}, false},
	{"payment_type", "name_unique", []string{"name"}, true},
	{"product_category", "name_unique", []string{"name"}, true},
	{"product_category", "parent_category_id_index", []string{"parent_category_id"}, false},
	{"shipping_method", "name_unique", []string{"name"}, true},
	{"image", "product_item_id_unique", []string{"product_item_id"}, true},
	{"user_address", "user_address_pair_unique", []string{"user_id", "address_id"}, true},
	{"user_address", "address_id_index", []string{"address_id"}, false},
	{"product_variation", "product_variation_pair_unique", []string{"product_item_id", "variation_line_id"}, true},
	{"product_variation", "variation_line_id_index", []string{"variation_line_id"}, false},
	{"address", "country_id_index", []string{"country_id"}, false},
	{"user_payment_method", "user_id_index", []string{"user_id"}, false},
	{"user_payment_method", "payment_type_id_index", []string{"payment_type_id"}, false},
	{"product", "category_id_index", []string{"category_id"}, false},
	{"product_item", "product_id_index", []string{"product_id"}, false},
	{"image_line", "image_id_index", []string{"image_id"}, false},
	{"variation", "category_id_index", []string{"category_id"}, false},
	{"variation_line", "variation_id_index", []string{"variation_id"}, false},
}

// EnsureIndexes creates every index that does not exist yet. Creating an
// index also creates its collection, which transactions on older servers
// require.
func EnsureIndexes(ctx context.Context, db *mongo.Database, log zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for _, ix := range indexes {
		keys := bson.D{}
		for _, k := range ix.keys {
			keys = append(keys, bson.E{Key: k, Value: 1})
		}
		model := mongo.IndexModel{
			Keys:    keys,
			Options: options.Index().SetName(ix.name).SetUnique(ix.unique),
		}

		log.Debug().Str("collection", ix.collection).Str("index", ix.name).Msg("ensuring index")
		if _, err := db.Collection(ix.collection).Indexes().CreateOne(ctx, model); err != nil {
			log.Error().Err(err).Str("collection", ix.collection).Str("index", ix.name).Msg("index creation failed")
			return fmt.Errorf("ensure index %s.%s: %w", ix.collection, ix.name, err)
		}
	}
	log.Info().Int("indexes", len(indexes)).Msg("mongodb indexes ensured")
	return nil
}
