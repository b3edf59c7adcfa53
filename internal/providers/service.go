package providers

import (
	"context"
	"fmt"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ActiveLeadProviderFor resolves the active lead provider for the contract
// period containing the given date. Registration and lead-provider changes
// fail when the provider is not active for that period.
func (s *Service) ActiveLeadProviderFor(ctx context.Context, leadProviderID int64, date time.Time) (*ActiveLeadProvider, error) {
	cp, err := s.repo.ContractPeriodContaining(ctx, date)
	if err != nil {
		return nil, err
	}
	alp, err := s.repo.FindActiveLeadProvider(ctx, leadProviderID, cp.ID)
	if err != nil {
		return nil, err
	}
	return alp, nil
}

func (s *Service) GetLeadProvider(ctx context.Context, id int64) (*LeadProvider, error) {
	return s.repo.GetLeadProvider(ctx, id)
}

// PartnershipResolution is the outcome of resolving a school against an
// active lead provider: either a confirmed partnership or, failing that, an
// expression of interest in the provider. Absence of a confirmed partnership
// is a normal outcome, never an error.
type PartnershipResolution struct {
	SchoolPartnership    *SchoolPartnership
	ExpressionOfInterest *ActiveLeadProvider
}

// Confirmed reports whether the resolution found a school partnership.
func (p PartnershipResolution) Confirmed() bool { return p.SchoolPartnership != nil }

// ResolvePartnership finds the confirmed school partnership under the active
// lead provider, falling back to an expression of interest.
func (s *Service) ResolvePartnership(ctx context.Context, schoolID int64, alp *ActiveLeadProvider) (PartnershipResolution, error) {
	sp, err := s.repo.FindSchoolPartnership(ctx, schoolID, alp.ID)
	if err != nil {
		return PartnershipResolution{}, fmt.Errorf("find school partnership: %w", err)
	}
	if sp != nil {
		return PartnershipResolution{SchoolPartnership: sp}, nil
	}
	return PartnershipResolution{ExpressionOfInterest: alp}, nil
}
