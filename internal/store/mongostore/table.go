package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/apperr"
	"storefront/internal/store"
)

// mongoTable runs every operation on the session context of its
// transaction. The ctx arguments only gate cancellation.
type mongoTable[T any, PT store.Model[T]] struct {
	db   *mongo.Database
	sc   mongo.SessionContext
	name string
}

func bind[T any, PT store.Model[T]](db *mongo.Database, sc mongo.SessionContext) store.Table[T] {
	var zero T
	return &mongoTable[T, PT]{db: db, sc: sc, name: PT(&zero).TableName()}
}

func (m *mongoTable[T, PT]) coll() *mongo.Collection { return m.db.Collection(m.name) }

func (m *mongoTable[T, PT]) Insert(ctx context.Context, v *T) error {
	if err := ctx.Err(); err != nil {
		return apperr.Store(err, "request cancelled")
	}
	id, err := nextID(m.sc, m.db, m.name)
	if err != nil {
		return translate(err, m.name)
	}
	rec := PT(v)
	rec.SetID(id)
	if _, err := m.coll().InsertOne(m.sc, v); err != nil {
		rec.SetID(0)
		return translate(err, m.name)
	}
	return nil
}

func (m *mongoTable[T, PT]) Update(ctx context.Context, v *T) error {
	if err := ctx.Err(); err != nil {
		return apperr.Store(err, "request cancelled")
	}
	id := PT(v).GetID()
	res, err := m.coll().ReplaceOne(m.sc, bson.M{"_id": id}, v)
	if err != nil {
		return translate(err, m.name)
	}
	if res.MatchedCount == 0 {
		return notFound(m.name, id)
	}
	return nil
}

func (m *mongoTable[T, PT]) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return apperr.Store(err, "request cancelled")
	}
	res, err := m.coll().DeleteOne(m.sc, bson.M{"_id": id})
	if err != nil {
		return translate(err, m.name)
	}
	if res.DeletedCount == 0 {
		return notFound(m.name, id)
	}
	return nil
}

func (m *mongoTable[T, PT]) Get(ctx context.Context, id int64) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.Store(err, "request cancelled")
	}
	v := new(T)
	err := m.coll().FindOne(m.sc, bson.M{"_id": id}).Decode(v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(m.name, id)
	}
	if err != nil {
		return nil, translate(err, m.name)
	}
	return v, nil
}

func (m *mongoTable[T, PT]) List(ctx context.Context, filters ...store.Filter) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.Store(err, "request cancelled")
	}
	cursor, err := m.coll().Find(m.sc, filterDoc(filters), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, translate(err, m.name)
	}
	defer cursor.Close(m.sc)

	out := []T{}
	if err := cursor.All(m.sc, &out); err != nil {
		return nil, translate(err, m.name)
	}
	return out, nil
}

// filterDoc renders filters as a query document. A null match also matches
// a missing field.
func filterDoc(filters []store.Filter) bson.D {
	doc := bson.D{}
	for _, f := range filters {
		key := f.Column
		if key == "id" {
			key = "_id"
		}
		if f.Null {
			doc = append(doc, bson.E{Key: key, Value: nil})
			continue
		}
		doc = append(doc, bson.E{Key: key, Value: f.Value})
	}
	return doc
}

func translate(err error, collection string) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return apperr.NotFound("Unable to find %s.", collection)
	case mongo.IsDuplicateKeyError(err):
		return apperr.Conflict("%s already exists.", collection)
	}
	return apperr.Store(err, "An error occurred while accessing the database.")
}

func notFound(collection string, id int64) error {
	return apperr.NotFound("Unable to find %s with id='%d'.", collection, id)
}
