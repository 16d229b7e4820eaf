package model

import (
	"errors"
	"fmt"
)

// Category determines both the upload subdirectory and the target collection.
type Category string

const (
	CategoryProducts Category = "products"
	CategoryArticles Category = "articles"
	CategoryQNA      Category = "qna"
	// Provisioned collections with no endpoint wiring.
	CategoryServices Category = "services"
	CategoryUsers    Category = "users"
)

// ErrUnknownCategory is returned for any category outside the supported set.
var ErrUnknownCategory = errors.New("unknown category")

// ParseCategory validates a client-supplied category string against the
// categories reachable from the HTTP surface. Anything else fails closed
// instead of falling through to a no-op write.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryProducts, CategoryArticles, CategoryQNA:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}

// Item is a loosely-typed document. Category-specific fields are supplied by
// the client; the system adds "images", an ordered list of public URLs.
type Item map[string]any
