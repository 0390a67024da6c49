package product

import (
	"context"
	"errors"
	"time"
)

// Product is a marketplace listing owned by exactly one user. OwnerID is
// set at creation and never changes.
type Product struct {
	ID            int64     `json:"id"`
	OwnerID       int64     `json:"userId"`
	CategoryID    int64     `json:"categoryId"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	Location      string    `json:"location"`
	ImageURL      string    `json:"imageUrl"`
	ShowEmail     bool      `json:"showEmail"`
	ShowWhatsapp  bool      `json:"showWhatsapp"`
	ShowMessenger bool      `json:"showMessenger"`
	IsSold        bool      `json:"isSold"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Input carries the caller-editable fields of a listing.
type Input struct {
	CategoryID    int64
	Title         string
	Description   string
	Price         float64
	Location      string
	ImageURL      string
	ShowEmail     bool
	ShowWhatsapp  bool
	ShowMessenger bool
}

// ListFilter narrows and pages List results. CategoryID zero means all
// categories.
type ListFilter struct {
	CategoryID int64
	Limit      int
	Offset     int
}

var (
	ErrNotFound  = errors.New("product not found")
	ErrForbidden = errors.New("forbidden")
)

// ErrValidation is a simple field validation error, surfaced as 400.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

// Repository abstracts listing persistence.
type Repository interface {
	// Create stores a new listing and returns it with the assigned id.
	Create(ctx context.Context, p Product) (Product, error)
	GetByID(ctx context.Context, id int64) (Product, error)
	// List returns listings newest first.
	List(ctx context.Context, f ListFilter) ([]Product, error)
	ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]Product, error)
	// Update replaces the editable fields of an existing listing.
	Update(ctx context.Context, p Product) (Product, error)
	MarkSold(ctx context.Context, id int64) (Product, error)
	Delete(ctx context.Context, id int64) error
}
