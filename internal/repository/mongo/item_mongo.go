package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"mediaapi/internal/model"
	"mediaapi/internal/repository"
)

// ItemMongo is a MongoDB implementation of repository.ItemRepository.
// All five collections are provisioned up front; services and users have no
// endpoint wiring but exist for the rest of the platform.
type ItemMongo struct {
	colls map[model.Category]*mongo.Collection
}

// NewItemMongo creates the repository over an initialized database handle.
func NewItemMongo(db *mongo.Database) *ItemMongo {
	categories := []model.Category{
		model.CategoryProducts,
		model.CategoryArticles,
		model.CategoryQNA,
		model.CategoryServices,
		model.CategoryUsers,
	}
	colls := make(map[model.Category]*mongo.Collection, len(categories))
	for _, c := range categories {
		colls[c] = db.Collection(string(c))
	}
	return &ItemMongo{colls: colls}
}

var _ repository.ItemRepository = (*ItemMongo)(nil)

// collection resolves the target collection, failing closed on a category
// outside the provisioned set.
func (r *ItemMongo) collection(category model.Category) (*mongo.Collection, error) {
	coll, ok := r.colls[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownCategory, category)
	}
	return coll, nil
}

// Insert stores a new document and returns its generated id as a hex string.
func (r *ItemMongo) Insert(ctx context.Context, category model.Category, doc model.Item) (string, error) {
	coll, err := r.collection(category)
	if err != nil {
		return "", err
	}
	res, err := coll.InsertOne(ctx, bson.M(doc))
	if err != nil {
		return "", fmt.Errorf("insert document: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprint(res.InsertedID), nil
}

// DeleteByID removes a document by its hex id and reports the deleted count.
func (r *ItemMongo) DeleteByID(ctx context.Context, category model.Category, id string) (int64, error) {
	coll, err := r.collection(category)
	if err != nil {
		return 0, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, fmt.Errorf("parse object id %q: %w", id, err)
	}
	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("delete document: %w", err)
	}
	return res.DeletedCount, nil
}

// FindAll returns the full contents of a collection.
func (r *ItemMongo) FindAll(ctx context.Context, category model.Category) ([]model.Item, error) {
	coll, err := r.collection(category)
	if err != nil {
		return nil, err
	}
	cur, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}
	items := make([]model.Item, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	return items, nil
}
