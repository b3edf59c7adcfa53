package schools

import "context"

// Service exposes school directory lookups.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id int64) (*School, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) FindByURN(ctx context.Context, urn string) (*School, error) {
	return s.repo.FindByURN(ctx, urn)
}
