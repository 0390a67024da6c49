package product

import (
	"context"
	"strings"
	"time"

	"github.com/vkuzn/unimarket/pkg/category"
)

// UseCase encapsulates listing operations. Mutations require the caller to
// own the listing; reads are open to everyone.
type UseCase interface {
	Create(ctx context.Context, ownerID int64, in Input) (Product, error)
	GetByID(ctx context.Context, id int64) (Product, error)
	List(ctx context.Context, f ListFilter) ([]Product, error)
	ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]Product, error)
	Update(ctx context.Context, ownerID, id int64, in Input) (Product, error)
	MarkSold(ctx context.Context, ownerID, id int64) (Product, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

type service struct {
	repo       Repository
	categories category.Repository
}

func NewService(repo Repository, categories category.Repository) UseCase {
	return &service{repo: repo, categories: categories}
}

func (s *service) validate(ctx context.Context, in *Input) error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return ErrValidation("title is required")
	}
	if in.Price <= 0 {
		return ErrValidation("price must be greater than 0")
	}
	if in.CategoryID <= 0 {
		return ErrValidation("categoryId is required and must be a positive integer")
	}
	ok, err := s.categories.Exists(ctx, in.CategoryID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrValidation("categoryId does not exist")
	}
	return nil
}

// getOwned loads a listing and gates it on ownership: absent listings are
// ErrNotFound, listings owned by someone else are ErrForbidden.
func (s *service) getOwned(ctx context.Context, ownerID, id int64) (Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if p.OwnerID != ownerID {
		return Product{}, ErrForbidden
	}
	return p, nil
}

func (s *service) Create(ctx context.Context, ownerID int64, in Input) (Product, error) {
	if err := s.validate(ctx, &in); err != nil {
		return Product{}, err
	}
	return s.repo.Create(ctx, Product{
		OwnerID:       ownerID,
		CategoryID:    in.CategoryID,
		Title:         in.Title,
		Description:   in.Description,
		Price:         in.Price,
		Location:      in.Location,
		ImageURL:      in.ImageURL,
		ShowEmail:     in.ShowEmail,
		ShowWhatsapp:  in.ShowWhatsapp,
		ShowMessenger: in.ShowMessenger,
		CreatedAt:     time.Now().UTC(),
	})
}

func (s *service) GetByID(ctx context.Context, id int64) (Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, f ListFilter) ([]Product, error) {
	return s.repo.List(ctx, f)
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]Product, error) {
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

func (s *service) Update(ctx context.Context, ownerID, id int64, in Input) (Product, error) {
	p, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return Product{}, err
	}
	if err := s.validate(ctx, &in); err != nil {
		return Product{}, err
	}
	p.CategoryID = in.CategoryID
	p.Title = in.Title
	p.Description = in.Description
	p.Price = in.Price
	p.Location = in.Location
	p.ImageURL = in.ImageURL
	p.ShowEmail = in.ShowEmail
	p.ShowWhatsapp = in.ShowWhatsapp
	p.ShowMessenger = in.ShowMessenger
	return s.repo.Update(ctx, p)
}

func (s *service) MarkSold(ctx context.Context, ownerID, id int64) (Product, error) {
	if _, err := s.getOwned(ctx, ownerID, id); err != nil {
		return Product{}, err
	}
	return s.repo.MarkSold(ctx, id)
}

func (s *service) Delete(ctx context.Context, ownerID, id int64) error {
	if _, err := s.getOwned(ctx, ownerID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
