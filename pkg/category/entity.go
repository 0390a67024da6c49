package category

import "context"

// Category is a fixed directory entry products are filed under.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DefaultNames seeds the category directory on first start.
var DefaultNames = []string{
	"Electronics",
	"Furniture",
	"Books",
	"Textbooks",
	"Clothing",
	"Accessories",
	"Services",
	"Other",
}

// Repository abstracts category persistence.
type Repository interface {
	// List returns all categories sorted by name.
	List(ctx context.Context) ([]Category, error)
	Exists(ctx context.Context, id int64) (bool, error)
}
