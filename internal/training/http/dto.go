package traininghttp

import (
	"fmt"
	"time"

	"github.com/induct-hq/induct/internal/training"
)

const dateLayout = "2006-01-02"

type registerRequest struct {
	TRN            string `json:"trn" validate:"required,len=7,numeric"`
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	DateOfBirth    string `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	SchoolID       int64  `json:"school_id" validate:"required,gt=0"`
	Role           string `json:"role" validate:"required,oneof=ect mentor"`
	StartedOn      string `json:"started_on" validate:"required,datetime=2006-01-02"`
	Mode           string `json:"mode" validate:"required,oneof=school_led provider_led"`
	LeadProviderID int64  `json:"lead_provider_id,omitempty" validate:"omitempty,gt=0"`
}

func (r registerRequest) toCommand() (training.RegisterCommand, error) {
	startedOn, err := time.Parse(dateLayout, r.StartedOn)
	if err != nil {
		return training.RegisterCommand{}, fmt.Errorf("started_on: %w", err)
	}
	cmd := training.RegisterCommand{
		TRN:            r.TRN,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		SchoolID:       r.SchoolID,
		Role:           training.PlacementRole(r.Role),
		StartedOn:      startedOn,
		Mode:           training.TrainingMode(r.Mode),
		LeadProviderID: r.LeadProviderID,
	}
	if r.DateOfBirth != "" {
		dob, err := time.Parse(dateLayout, r.DateOfBirth)
		if err != nil {
			return training.RegisterCommand{}, fmt.Errorf("date_of_birth: %w", err)
		}
		cmd.DateOfBirth = &dob
	}
	return cmd, nil
}

type registerResponse struct {
	TeacherID        int64 `json:"teacher_id"`
	PlacementID      int64 `json:"placement_id"`
	TrainingPeriodID int64 `json:"training_period_id"`
}

type switchModeRequest struct {
	TargetMode     string `json:"target_mode" validate:"required,oneof=school_led provider_led"`
	LeadProviderID int64  `json:"lead_provider_id,omitempty" validate:"omitempty,gt=0"`
}

type switchMentorRequest struct {
	MentorPlacementID int64 `json:"mentor_placement_id" validate:"required,gt=0"`
	LeadProviderID    int64 `json:"lead_provider_id,omitempty" validate:"omitempty,gt=0"`
}

type switchMentorResponse struct {
	MentorshipPeriodID     int64 `json:"mentorship_period_id"`
	MentorTrainingPeriodID int64 `json:"mentor_training_period_id,omitempty"`
	NoOp                   bool  `json:"no_op,omitempty"`
}

type changeLeadProviderRequest struct {
	OldLeadProviderID int64 `json:"old_lead_provider_id" validate:"required,gt=0"`
	NewLeadProviderID int64 `json:"new_lead_provider_id" validate:"required,gt=0"`
}

type deferralRequest struct {
	Reason string `json:"reason,omitempty" validate:"max=500"`
}
