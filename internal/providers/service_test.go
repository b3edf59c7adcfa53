package providers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	contractPeriod *ContractPeriod
	activeLP       *ActiveLeadProvider
	partnership    *SchoolPartnership

	partnershipCalls [][2]int64
}

func (s *stubRepo) ContractPeriodContaining(ctx context.Context, date time.Time) (*ContractPeriod, error) {
	if s.contractPeriod == nil {
		return nil, ErrContractPeriodNotFound
	}
	return s.contractPeriod, nil
}

func (s *stubRepo) GetLeadProvider(ctx context.Context, id int64) (*LeadProvider, error) {
	return &LeadProvider{ID: id, Name: "Acme"}, nil
}

func (s *stubRepo) FindActiveLeadProvider(ctx context.Context, leadProviderID, contractPeriodID int64) (*ActiveLeadProvider, error) {
	if s.activeLP == nil || s.activeLP.LeadProviderID != leadProviderID || s.activeLP.ContractPeriodID != contractPeriodID {
		return nil, ErrActiveLeadProviderNotFound
	}
	return s.activeLP, nil
}

func (s *stubRepo) GetActiveLeadProvider(ctx context.Context, id int64) (*ActiveLeadProvider, error) {
	if s.activeLP == nil || s.activeLP.ID != id {
		return nil, ErrActiveLeadProviderNotFound
	}
	return s.activeLP, nil
}

func (s *stubRepo) FindSchoolPartnership(ctx context.Context, schoolID, activeLeadProviderID int64) (*SchoolPartnership, error) {
	s.partnershipCalls = append(s.partnershipCalls, [2]int64{schoolID, activeLeadProviderID})
	return s.partnership, nil
}

func (s *stubRepo) EnsureDeliveryPartnership(ctx context.Context, activeLeadProviderID, deliveryPartnerID int64) (*LeadProviderDeliveryPartnership, error) {
	return &LeadProviderDeliveryPartnership{ID: 1, ActiveLeadProviderID: activeLeadProviderID, DeliveryPartnerID: deliveryPartnerID}, nil
}

func TestActiveLeadProviderForResolvesThroughContractPeriod(t *testing.T) {
	repo := &stubRepo{
		contractPeriod: &ContractPeriod{ID: 24, Year: 2024, Enabled: true},
		activeLP:       &ActiveLeadProvider{ID: 5, LeadProviderID: 3, ContractPeriodID: 24},
	}
	svc := NewService(repo)

	alp, err := svc.ActiveLeadProviderFor(context.Background(), 3, time.Date(2024, 9, 17, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(5), alp.ID)
}

func TestActiveLeadProviderForMissingRegistration(t *testing.T) {
	repo := &stubRepo{contractPeriod: &ContractPeriod{ID: 24, Year: 2024}}
	svc := NewService(repo)

	_, err := svc.ActiveLeadProviderFor(context.Background(), 3, time.Date(2024, 9, 17, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrActiveLeadProviderNotFound)
}

func TestActiveLeadProviderForMissingContractPeriod(t *testing.T) {
	svc := NewService(&stubRepo{})
	_, err := svc.ActiveLeadProviderFor(context.Background(), 3, time.Date(2024, 9, 17, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrContractPeriodNotFound)
}

func TestResolvePartnershipConfirmed(t *testing.T) {
	repo := &stubRepo{partnership: &SchoolPartnership{ID: 9, SchoolID: 2, LeadProviderDeliveryPartnershipID: 4}}
	svc := NewService(repo)
	alp := &ActiveLeadProvider{ID: 5}

	res, err := svc.ResolvePartnership(context.Background(), 2, alp)
	require.NoError(t, err)
	assert.True(t, res.Confirmed())
	assert.Equal(t, int64(9), res.SchoolPartnership.ID)
	assert.Nil(t, res.ExpressionOfInterest)
}

func TestResolvePartnershipFallsBackToExpressionOfInterest(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo)
	alp := &ActiveLeadProvider{ID: 5}

	res, err := svc.ResolvePartnership(context.Background(), 2, alp)
	require.NoError(t, err)
	assert.False(t, res.Confirmed())
	assert.Equal(t, alp, res.ExpressionOfInterest)
	require.Len(t, repo.partnershipCalls, 1)
	assert.Equal(t, [2]int64{2, 5}, repo.partnershipCalls[0])
}
