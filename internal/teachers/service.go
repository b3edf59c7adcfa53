package teachers

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrIneligibilityFieldsMismatch indicates an attempt to set a mentor
// ineligibility reason without a date, or vice versa. The pair must be written
// together or cleared together.
var ErrIneligibilityFieldsMismatch = errors.New("mentor ineligibility reason and date must be set together")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id int64) (*Teacher, error) {
	return s.repo.Get(ctx, id)
}

// ResolveByTRN finds the teacher registered under the given TRN, creating the
// record when the directory has no entry yet.
func (s *Service) ResolveByTRN(ctx context.Context, trn, firstName, lastName string, dateOfBirth *time.Time) (*Teacher, error) {
	existing, err := s.repo.FindByTRN(ctx, trn)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("find teacher by trn: %w", err)
	}

	id, err := s.repo.Insert(ctx, Teacher{
		TRN:         trn,
		FirstName:   firstName,
		LastName:    lastName,
		DateOfBirth: dateOfBirth,
	})
	if err != nil {
		return nil, fmt.Errorf("create teacher: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// SetMentorIneligibility records or clears the funded-mentor-training
// ineligibility pair. Half-set states are rejected here so reads never have to
// reconcile them.
func (s *Service) SetMentorIneligibility(ctx context.Context, id int64, reason *string, becameIneligibleOn *time.Time) error {
	if (reason == nil) != (becameIneligibleOn == nil) {
		return ErrIneligibilityFieldsMismatch
	}
	return s.repo.UpdateMentorIneligibility(ctx, id, reason, becameIneligibleOn)
}

// EligibleForMentorFunding reports whether the teacher may receive funded
// mentor training at the given date. A teacher is ineligible only once both
// the reason and the date are recorded and the date has passed.
func EligibleForMentorFunding(t *Teacher, at time.Time) bool {
	if t == nil {
		return false
	}
	if t.MentorIneligibilityReason == nil || t.MentorBecameIneligibleOn == nil {
		return true
	}
	return t.MentorBecameIneligibleOn.After(at)
}
