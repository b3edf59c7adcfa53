package training

import (
	"context"
	"fmt"

	"github.com/induct-hq/induct/internal/audit"
	"github.com/induct-hq/induct/internal/teachers"
	"github.com/induct-hq/induct/internal/timeline"
)

// DeferralCommand pauses or unpauses a placement's current training period.
type DeferralCommand struct {
	PlacementID int64
	Reason      string
	Author      audit.Author
}

// DeferTraining marks the current training period as deferred. The period
// stays open so the teacher keeps their place; a later resume clears the
// marker.
func (e *Engine) DeferTraining(ctx context.Context, cmd DeferralCommand) (err error) {
	defer func() { e.observe("defer_training", err) }()

	placement, teacher, err := e.placementWithTeacher(ctx, cmd.PlacementID)
	if err != nil {
		return err
	}

	now := e.clk.Now()
	return e.repo.InTx(ctx, func(ctx context.Context, repo Repository) error {
		current, err := e.openTrainingPeriod(ctx, repo, placement.ID)
		if err != nil {
			return err
		}
		if current.WithdrawnAt != nil {
			return ErrAlreadyWithdrawn
		}
		if current.DeferredAt != nil {
			return ErrAlreadyDeferred
		}
		reason := cmd.Reason
		if err := repo.SetTrainingPeriodDeferral(ctx, current.ID, &now, &reason); err != nil {
			return err
		}

		return e.recorder.Record(ctx, audit.Event{
			Type:    audit.EventTeacherDefersTraining,
			Heading: fmt.Sprintf("%s deferred their training", teacher.FullName()),
			Author:  cmd.Author,
			Refs: []audit.Ref{
				{Name: "teacher", ID: teacher.ID},
				{Name: "placement", ID: placement.ID},
				{Name: "training_period", ID: current.ID},
			},
			Metadata: map[string]any{"reason": cmd.Reason},
		})
	})
}

// ResumeTraining clears a deferral on the current training period.
func (e *Engine) ResumeTraining(ctx context.Context, cmd DeferralCommand) (err error) {
	defer func() { e.observe("resume_training", err) }()

	placement, teacher, err := e.placementWithTeacher(ctx, cmd.PlacementID)
	if err != nil {
		return err
	}

	return e.repo.InTx(ctx, func(ctx context.Context, repo Repository) error {
		current, err := e.openTrainingPeriod(ctx, repo, placement.ID)
		if err != nil {
			return err
		}
		if current.DeferredAt == nil {
			return ErrNotDeferred
		}
		if err := repo.SetTrainingPeriodDeferral(ctx, current.ID, nil, nil); err != nil {
			return err
		}

		return e.recorder.Record(ctx, audit.Event{
			Type:    audit.EventTeacherResumesTraining,
			Heading: fmt.Sprintf("%s resumed their training", teacher.FullName()),
			Author:  cmd.Author,
			Refs: []audit.Ref{
				{Name: "teacher", ID: teacher.ID},
				{Name: "placement", ID: placement.ID},
				{Name: "training_period", ID: current.ID},
			},
		})
	})
}

// WithdrawTraining marks the current training period as withdrawn and closes
// it as of today. Withdrawal is terminal for the period; rejoining requires a
// fresh registration.
func (e *Engine) WithdrawTraining(ctx context.Context, cmd DeferralCommand) (err error) {
	defer func() { e.observe("withdraw_training", err) }()

	placement, teacher, err := e.placementWithTeacher(ctx, cmd.PlacementID)
	if err != nil {
		return err
	}

	now := e.clk.Now()
	today := e.clk.Today()
	return e.repo.InTx(ctx, func(ctx context.Context, repo Repository) error {
		current, err := e.openTrainingPeriod(ctx, repo, placement.ID)
		if err != nil {
			return err
		}
		if current.WithdrawnAt != nil {
			return ErrAlreadyWithdrawn
		}
		reason := cmd.Reason
		if err := repo.SetTrainingPeriodWithdrawal(ctx, current.ID, &now, &reason); err != nil {
			return err
		}

		closeOn := laterOf(current.StartedOn, today)
		closing := current.Range()
		if err := closing.Close(closeOn); err != nil {
			return err
		}
		if err := repo.CloseTrainingPeriod(ctx, current.ID, closeOn); err != nil {
			return err
		}

		return e.recorder.Record(ctx, audit.Event{
			Type:    audit.EventTeacherWithdrawsFromTraining,
			Heading: fmt.Sprintf("%s withdrew from training", teacher.FullName()),
			Author:  cmd.Author,
			Refs: []audit.Ref{
				{Name: "teacher", ID: teacher.ID},
				{Name: "placement", ID: placement.ID},
				{Name: "training_period", ID: current.ID},
			},
			Metadata: map[string]any{"reason": cmd.Reason},
		})
	})
}

func (e *Engine) placementWithTeacher(ctx context.Context, placementID int64) (*Placement, *teachers.Teacher, error) {
	placement, err := e.repo.GetPlacement(ctx, placementID)
	if err != nil {
		return nil, nil, err
	}
	teacher, err := e.teachers.Get(ctx, placement.TeacherID)
	if err != nil {
		return nil, nil, err
	}
	return placement, teacher, nil
}


func (e *Engine) openTrainingPeriod(ctx context.Context, repo Repository, placementID int64) (*TrainingPeriod, error) {
	periods, err := repo.TrainingPeriodsForPlacement(ctx, placementID)
	if err != nil {
		return nil, err
	}
	open, ok := timeline.OpenInterval(periods)
	if !ok {
		return nil, ErrNoTrainingPeriod
	}
	return &open, nil
}
