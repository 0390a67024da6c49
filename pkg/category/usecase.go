package category

import "context"

// UseCase exposes the read-only category directory.
type UseCase interface {
	List(ctx context.Context) ([]Category, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}
