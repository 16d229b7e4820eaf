package repository

import (
	"context"

	"mediaapi/internal/model"
)

// ItemRepository defines persistence for item documents across the
// category-keyed collections. No business logic here.
type ItemRepository interface {
	// Insert stores a new document in the category's collection and returns
	// the database-generated id.
	Insert(ctx context.Context, category model.Category, doc model.Item) (string, error)

	// DeleteByID removes a document by id and reports how many records were
	// deleted (0 or 1).
	DeleteByID(ctx context.Context, category model.Category, id string) (int64, error)

	// FindAll returns every document in the category's collection in natural
	// storage order. No pagination.
	FindAll(ctx context.Context, category model.Category) ([]model.Item, error)
}
