package training

import (
	"errors"
	"time"

	"github.com/induct-hq/induct/internal/timeline"
)

// PlacementRole distinguishes the two kinds of school placement.
type PlacementRole string

const (
	RoleECT    PlacementRole = "ect"
	RoleMentor PlacementRole = "mentor"
)

// TrainingMode enumerates how a placement is being trained.
type TrainingMode string

const (
	ModeSchoolLed   TrainingMode = "school_led"
	ModeProviderLed TrainingMode = "provider_led"
)

// Placement is a teacher's presence at a school in a given role.
type Placement struct {
	ID         int64         `json:"id" db:"id"`
	TeacherID  int64         `json:"teacher_id" db:"teacher_id"`
	SchoolID   int64         `json:"school_id" db:"school_id"`
	Role       PlacementRole `json:"role" db:"role"`
	StartedOn  time.Time     `json:"started_on" db:"started_on"`
	FinishedOn *time.Time    `json:"finished_on,omitempty" db:"finished_on"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at" db:"updated_at"`
}

func (p Placement) Range() timeline.DateRange {
	return timeline.DateRange{StartedOn: p.StartedOn, FinishedOn: p.FinishedOn}
}

// TrainingPeriod describes how a placement is being trained over a date range.
// A provider-led period carries exactly one of a confirmed school partnership
// or an expression of interest in an active lead provider; a school-led period
// carries neither.
type TrainingPeriod struct {
	ID                     int64        `json:"id" db:"id"`
	PlacementID            int64        `json:"placement_id" db:"placement_id"`
	Mode                   TrainingMode `json:"mode" db:"mode"`
	SchoolPartnershipID    *int64       `json:"school_partnership_id,omitempty" db:"school_partnership_id"`
	ExpressionOfInterestID *int64       `json:"expression_of_interest_id,omitempty" db:"expression_of_interest_id"`
	StartedOn              time.Time    `json:"started_on" db:"started_on"`
	FinishedOn             *time.Time   `json:"finished_on,omitempty" db:"finished_on"`
	DeferredAt             *time.Time   `json:"deferred_at,omitempty" db:"deferred_at"`
	DeferralReason         *string      `json:"deferral_reason,omitempty" db:"deferral_reason"`
	WithdrawnAt            *time.Time   `json:"withdrawn_at,omitempty" db:"withdrawn_at"`
	WithdrawalReason       *string      `json:"withdrawal_reason,omitempty" db:"withdrawal_reason"`
	CreatedAt              time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time    `json:"updated_at" db:"updated_at"`
}

func (tp TrainingPeriod) Range() timeline.DateRange {
	return timeline.DateRange{StartedOn: tp.StartedOn, FinishedOn: tp.FinishedOn}
}

// Confirmed reports whether the period trains under a confirmed partnership.
func (tp TrainingPeriod) Confirmed() bool { return tp.SchoolPartnershipID != nil }

var errPartnershipShape = errors.New("training: provider-led period requires exactly one of school partnership or expression of interest; school-led requires neither")

// Validate checks the mode/partnership shape and the date range.
func (tp TrainingPeriod) Validate() error {
	if err := tp.Range().Validate(); err != nil {
		return err
	}
	switch tp.Mode {
	case ModeSchoolLed:
		if tp.SchoolPartnershipID != nil || tp.ExpressionOfInterestID != nil {
			return errPartnershipShape
		}
	case ModeProviderLed:
		if (tp.SchoolPartnershipID == nil) == (tp.ExpressionOfInterestID == nil) {
			return errPartnershipShape
		}
	default:
		return errors.New("training: unknown training mode")
	}
	return nil
}

// MentorshipPeriod joins an ECT placement to a mentor placement for a date
// range.
type MentorshipPeriod struct {
	ID                int64      `json:"id" db:"id"`
	ECTPlacementID    int64      `json:"ect_placement_id" db:"ect_placement_id"`
	MentorPlacementID int64      `json:"mentor_placement_id" db:"mentor_placement_id"`
	StartedOn         time.Time  `json:"started_on" db:"started_on"`
	FinishedOn        *time.Time `json:"finished_on,omitempty" db:"finished_on"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}

func (m MentorshipPeriod) Range() timeline.DateRange {
	return timeline.DateRange{StartedOn: m.StartedOn, FinishedOn: m.FinishedOn}
}
