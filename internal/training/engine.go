package training

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/induct-hq/induct/internal/audit"
	"github.com/induct-hq/induct/internal/platform/clock"
	"github.com/induct-hq/induct/internal/providers"
	"github.com/induct-hq/induct/internal/schools"
	"github.com/induct-hq/induct/internal/teachers"
	"github.com/induct-hq/induct/internal/timeline"
)

// TeacherDirectory resolves teachers by TRN, creating records when absent.
type TeacherDirectory interface {
	ResolveByTRN(ctx context.Context, trn, firstName, lastName string, dateOfBirth *time.Time) (*teachers.Teacher, error)
	Get(ctx context.Context, id int64) (*teachers.Teacher, error)
}

// SchoolDirectory looks up placement schools.
type SchoolDirectory interface {
	Get(ctx context.Context, id int64) (*schools.School, error)
}

// ProviderRegistry resolves active lead providers and school partnerships.
type ProviderRegistry interface {
	ActiveLeadProviderFor(ctx context.Context, leadProviderID int64, date time.Time) (*providers.ActiveLeadProvider, error)
	GetLeadProvider(ctx context.Context, id int64) (*providers.LeadProvider, error)
	ResolvePartnership(ctx context.Context, schoolID int64, alp *providers.ActiveLeadProvider) (providers.PartnershipResolution, error)
}

// EventRecorder records exactly one audit event per logical transition,
// inside the transition's unit of work.
type EventRecorder interface {
	Record(ctx context.Context, e audit.Event) error
}

// TransitionMetrics counts engine operations by outcome.
type TransitionMetrics interface {
	ObserveTransition(operation, status string)
}

// Engine is the only sanctioned way to mutate placement, training and
// mentorship periods. Each public operation runs as one atomic unit of work:
// period mutations and the audit event enqueue commit or roll back together.
type Engine struct {
	repo      Repository
	teachers  TeacherDirectory
	schools   SchoolDirectory
	providers ProviderRegistry
	recorder  EventRecorder
	clk       clock.Clock
	metrics   TransitionMetrics
	logger    *slog.Logger
}

func NewEngine(
	repo Repository,
	teacherDir TeacherDirectory,
	schoolDir SchoolDirectory,
	providerReg ProviderRegistry,
	recorder EventRecorder,
	clk clock.Clock,
	metrics TransitionMetrics,
	logger *slog.Logger,
) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		repo:      repo,
		teachers:  teacherDir,
		schools:   schoolDir,
		providers: providerReg,
		recorder:  recorder,
		clk:       clk,
		metrics:   metrics,
		logger:    logger,
	}
}

// RegisterCommand opens a placement and its first training period.
type RegisterCommand struct {
	TRN            string
	FirstName      string
	LastName       string
	DateOfBirth    *time.Time
	SchoolID       int64
	Role           PlacementRole
	StartedOn      time.Time
	Mode           TrainingMode
	LeadProviderID int64
	Author         audit.Author
}

// RegisterResult reports the records created by a registration.
type RegisterResult struct {
	Teacher          *teachers.Teacher
	PlacementID      int64
	TrainingPeriodID int64
}

// Register resolves the teacher by TRN, opens a placement (auto-closing an
// open placement at a different school as a transfer) and the first training
// period, and records one registration event.
func (e *Engine) Register(ctx context.Context, cmd RegisterCommand) (result *RegisterResult, err error) {
	defer func() { e.observe("register", err) }()

	teacher, err := e.teachers.ResolveByTRN(ctx, cmd.TRN, cmd.FirstName, cmd.LastName, cmd.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("resolve teacher: %w", err)
	}
	school, err := e.schools.Get(ctx, cmd.SchoolID)
	if err != nil {
		return nil, fmt.Errorf("resolve school: %w", err)
	}

	resolution, err := e.resolveProviderLed(ctx, cmd.Mode, cmd.LeadProviderID, cmd.SchoolID, cmd.StartedOn)
	if err != nil {
		return nil, err
	}

	err = e.repo.InTx(ctx, func(ctx context.Context, repo Repository) error {
		placements, err := repo.PlacementsForTeacher(ctx, teacher.ID, cmd.Role)
		if err != nil {
			return err
		}

		if open, ok := timeline.OpenInterval(placements); ok {
			if open.SchoolID == cmd.SchoolID {
				return SchoolTransferError{SchoolID: cmd.SchoolID}
			}
			// Transfer: the open placement at the other school finishes the
			// day the new one starts.
			closing := open.Range()
			if err := closing.Close(cmd.StartedOn); err != nil {
				return err
			}
			if err := repo.ClosePlacement(ctx, open.ID, cmd.StartedOn); err != nil {
				return err
			}
			for i := range placements {
				if placements[i].ID == open.ID {
					placements[i].FinishedOn = &cmd.StartedOn
				}
			}
		}

		if err := timeline.CheckOpen(placements, cmd.StartedOn); err != nil {
			return err
		}
		placementID, err := repo.InsertPlacement(ctx, Placement{
			TeacherID: teacher.ID,
			SchoolID:  cmd.SchoolID,
			Role:      cmd.Role,
			StartedOn: cmd.StartedOn,
		})
		if err != nil {
			return err
		}

		tp := TrainingPeriod{
			PlacementID: placementID,
			Mode:        cmd.Mode,
			StartedOn:   cmd.StartedOn,
		}
		applyResolution(&tp, resolution)
		if err := tp.Validate(); err != nil {
			return err
		}
		trainingPeriodID, err := repo.InsertTrainingPeriod(ctx, tp)
		if err != nil {
			return err
		}

		eventType := audit.EventTeacherRegisteredAsECT
		roleLabel := "an ECT"
		if cmd.Role == RoleMentor {
			eventType = audit.EventTeacherRegisteredAsMentor
			roleLabel = "a mentor"
		}
		event := audit.Event{
			Type:    eventType,
			Heading: fmt.Sprintf("%s was registered as %s at %s", teacher.FullName(), roleLabel, school.Name),
			Author:  cmd.Author,
			Refs: append([]audit.Ref{
				{Name: "teacher", ID: teacher.ID},
				{Name: "school", ID: school.ID},
				{Name: "placement", ID: placementID},
				{Name: "training_period", ID: trainingPeriodID},
			}, resolutionRefs(resolution)...),
			Metadata: map[string]any{
				"training_mode": string(cmd.Mode),
				"started_on":    cmd.StartedOn.Format("2006-01-02"),
			},
		}
		if err := e.recorder.Record(ctx, event); err != nil {
			return err
		}

		result = &RegisterResult{Teacher: teacher, PlacementID: placementID, TrainingPeriodID: trainingPeriodID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SwitchTrainingModeCommand switches a placement between school-led and
// provider-led training. LeadProviderID is optional when switching to
// provider-led; it defaults to the most recent provider-led period's lead
// provider.
type SwitchTrainingModeCommand struct {
	PlacementID    int64
	TargetMode     TrainingMode
	LeadProviderID int64
	Author         audit.Author
}

// SwitchTrainingMode finishes or discards the current training period and
// opens one in the target mode. A period that never took effect is deleted
// outright; one that did take effect is closed so history is preserved.
func (e *Engine) SwitchTrainingMode(ctx context.Context, cmd SwitchTrainingModeCommand) (created *TrainingPeriod, err error) {
	defer func() { e.observe("switch_training_mode", err) }()

	placement, err := e.repo.GetPlacement(ctx, cmd.PlacementID)
	if err != nil {
		return nil, err
	}
	if placement.Role != RoleECT {
		return nil, fmt.Errorf("%w: expected an ECT placement", ErrWrongPlacementKind)
	}
	teacher, err := e.teachers.Get(ctx, placement.TeacherID)
	if err != nil {
		return nil, err
	}

	today := e.clk.Today()
	dateOfTransition := laterOf(placement.StartedOn, today)

	var resolution *providers.PartnershipResolution
	if cmd.TargetMode == ModeProviderLed {
		leadProviderID := cmd.LeadProviderID
		if leadProviderID == 0 {
			leadProviderID, err = e.currentLeadProvider(ctx, placement.ID, today)
			if err != nil {
				return nil, err
			}
		}
		resolution, err = e.resolveProviderLed(ctx, ModeProviderLed, leadProviderID, placement.SchoolID, dateOfTransition)
		if err != nil {
			return nil, err
		}
	}

	err = e.repo.InTx(ctx, func(ctx context.Context, repo Repository) error {
		periods, err := repo.TrainingPeriodsForPlacement(ctx, placement.ID)
		if err != nil {
			return err
		}
		current, ok := timeline.CurrentOrNext(periods, today)
		if !ok {
			return ErrNoTrainingPeriod
		}
		if current.Mode == cmd.TargetMode {
			return fmt.Errorf("%w: already %s", ErrAlreadyOnTrainingMode, cmd.TargetMode)
		}

		periods, err = e.supersede(ctx, repo, periods, current, dateOfTransition, today,
			cmd.TargetMode == ModeSchoolLed && !current.Confirmed())
		if err != nil {
			return err
		}

		tp := TrainingPeriod{
			PlacementID: placement.ID,
			Mode:        cmd.TargetMode,
			StartedOn:   dateOfTransition,
		}
		applyResolution(&tp, resolution)
		if err := tp.Validate(); err != nil {
			return err
		}
		if err := timeline.CheckOpen(periods, dateOfTransition); err != nil {
			return err
		}
		tp.ID, err = repo.InsertTrainingPeriod(ctx, tp)
		if err != nil {
			return err
		}

		event := audit.Event{
			Type:    audit.EventTeacherTrainingProgrammeUpdated,
			Heading: fmt.Sprintf("%s's training programme changed to %s", teacher.FullName(), modeLabel(cmd.TargetMode)),
			Author:  cmd.Author,
			Refs: append([]audit.Ref{
				{Name: "teacher", ID: teacher.ID},
				{Name: "school", ID: placement.SchoolID},
				{Name: "placement", ID: placement.ID},
				{Name: "training_period", ID: tp.ID},
			}, resolutionRefs(resolution)...),
			Metadata: map[string]any{
				"from": string(current.Mode),
				"to":   string(cmd.TargetMode),
			},
			Modifications: []string{
				fmt.Sprintf("training programme changed from %s to %s", modeLabel(current.Mode), modeLabel(cmd.TargetMode)),
			},
		}
		if err := e.recorder.Record(ctx, event); err != nil {
			return err
		}

		created = &tp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// SwitchMentorCommand reassigns an ECT's mentor. LeadProviderID is zero when
// the ECT trains school-led.
type SwitchMentorCommand struct {
	ECTPlacementID    int64
	MentorPlacementID int64
	LeadProviderID    int64
	Author            audit.Author
}

// SwitchMentorResult reports the pairing and any mentor-side training period
// opened alongside it.
type SwitchMentorResult struct {
	MentorshipPeriodID     int64
	MentorTrainingPeriodID int64
	NoOp                   bool
}

// SwitchMentor closes the current pairing and opens one to the selected
// mentor. When the ECT currently trains provider-led and the mentor is
// eligible for funded training and not already training with that lead
// provider, a mentor-side training period opens too; a lead provider named
// for a school-led ECT is ignored. Re-selecting the current mentor is a
// no-op.
func (e *Engine) SwitchMentor(ctx context.Context, cmd SwitchMentorCommand) (result *SwitchMentorResult, err error) {
	defer func() { e.observe("switch_mentor", err) }()

	ectPlacement, err := e.repo.GetPlacement(ctx, cmd.ECTPlacementID)
	if err != nil {
		return nil, err
	}
	if ectPlacement.Role != RoleECT {
		return nil, fmt.Errorf("%w: expected an ECT placement", ErrWrongPlacementKind)
	}
	mentorPlacement, err := e.repo.GetPlacement(ctx, cmd.MentorPlacementID)
	if err != nil {
		return nil, err
	}
	if mentorPlacement.Role != RoleMentor {
		return nil, fmt.Errorf("%w: expected a mentor placement", ErrWrongPlacementKind)
	}

	ectTeacher, err := e.teachers.Get(ctx, ectPlacement.TeacherID)
	if err != nil {
		return nil, err
	}
	mentorTeacher, err := e.teachers.Get(ctx, mentorPlacement.TeacherID)
	if err != nil {
		return nil, err
	}

	today := e.clk.Today()
	pairingStart := laterOf(ectPlacement.StartedOn, today)
	mentorTrainingStart := laterOf(mentorPlacement.StartedOn, today)

	// Mentor-side training only applies to provider-led ECTs with a mentor
	// who is still eligible for funded training. The ECT's actual training
	// mode decides, not the caller's lead provider argument.
	var resolution *providers.PartnershipResolution
	if cmd.LeadProviderID != 0 && teachers.EligibleForMentorFunding(mentorTeacher, today) {
		providerLed, err := e.placementProviderLed(ctx, ectPlacement.ID, today)
		if err != nil {
			return nil, err
		}
		if providerLed {
			resolution, err = e.resolveProviderLed(ctx, ModeProviderLed, cmd.LeadProviderID, mentorPlacement.SchoolID, mentorTrainingStart)
			if err != nil {
				return nil, err
			}
		}
	}

	err = e.repo.InTx(ctx, func(ctx context.Context, repo Repository) error {
		mentorships, err := repo.MentorshipsForECTPlacement(ctx, ectPlacement.ID)
		if err != nil {
			return err
		}
		if current, ok := timeline.CurrentOrNext(mentorships, today); ok {
			if current.MentorPlacementID == cmd.MentorPlacementID {
				result = &SwitchMentorResult{MentorshipPeriodID: current.ID, NoOp: true}
				return nil
			}
			if current.StartedOn.After(today) || pairingStart.After(today) {
				if err := repo.DeleteMentorship(ctx, current.ID); err != nil {
					return err
				}
				mentorships = withoutMentorship(mentorships, current.ID)
			} else {
				closing := current.Range()
				if err := closing.Close(pairingStart); err != nil {
					return err
				}
				if err := repo.CloseMentorship(ctx, current.ID, pairingStart); err != nil {
					return err
				}
				for i := range mentorships {
					if mentorships[i].ID == current.ID {
						mentorships[i].FinishedOn = &pairingStart
					}
				}
			}
		}

		if err := timeline.CheckOpen(mentorships, pairingStart); err != nil {
			return err
		}
		mentorshipID, err := repo.InsertMentorship(ctx, MentorshipPeriod{
			ECTPlacementID:    ectPlacement.ID,
			MentorPlacementID: mentorPlacement.ID,
			StartedOn:         pairingStart,
		})
		if err != nil {
			return err
		}
		result = &SwitchMentorResult{MentorshipPeriodID: mentorshipID}

		if resolution != nil {
			existing, err := repo.FindOpenTrainingPeriodWithLeadProvider(ctx, mentorPlacement.ID, cmd.LeadProviderID)
			if err != nil {
				return err
			}
			if existing == nil {
				mentorPeriods, err := repo.TrainingPeriodsForPlacement(ctx, mentorPlacement.ID)
				if err != nil {
					return err
				}
				tp := TrainingPeriod{
					PlacementID: mentorPlacement.ID,
					Mode:        ModeProviderLed,
					StartedOn:   mentorTrainingStart,
				}
				applyResolution(&tp, resolution)
				if err := tp.Validate(); err != nil {
					return err
				}
				if err := timeline.CheckOpen(mentorPeriods, mentorTrainingStart); err != nil {
					return err
				}
				tp.ID, err = repo.InsertTrainingPeriod(ctx, tp)
				if err != nil {
					return err
				}
				result.MentorTrainingPeriodID = tp.ID

				trainingEvent := audit.Event{
					Type:    audit.EventTeacherStartsTrainingPeriod,
					Heading: fmt.Sprintf("%s started a mentor training period", mentorTeacher.FullName()),
					Author:  cmd.Author,
					Refs: append([]audit.Ref{
						{Name: "teacher", ID: mentorTeacher.ID},
						{Name: "school", ID: mentorPlacement.SchoolID},
						{Name: "placement", ID: mentorPlacement.ID},
						{Name: "training_period", ID: tp.ID},
					}, resolutionRefs(resolution)...),
				}
				if err := e.recorder.Record(ctx, trainingEvent); err != nil {
					return err
				}
			}
		}

		event := audit.Event{
			Type:    audit.EventTeacherMentorshipUpdated,
			Heading: fmt.Sprintf("%s was assigned %s as their mentor", ectTeacher.FullName(), mentorTeacher.FullName()),
			Author:  cmd.Author,
			Refs: []audit.Ref{
				{Name: "teacher", ID: ectTeacher.ID},
				{Name: "mentor", ID: mentorTeacher.ID},
				{Name: "ect_placement", ID: ectPlacement.ID},
				{Name: "mentor_placement", ID: mentorPlacement.ID},
				{Name: "mentorship_period", ID: mentorshipID},
			},
		}
		return e.recorder.Record(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ChangeLeadProviderCommand moves a provider-led placement to a new lead
// provider.
type ChangeLeadProviderCommand struct {
	PlacementID       int64
	NewLeadProviderID int64
	OldLeadProviderID int64
	Author            audit.Author
}

// ChangeLeadProvider finishes or discards the current training period and
// opens one under the new lead provider. Both provider names are captured as
// strings at call time, since the old provider may no longer be reachable
// after the swap.
func (e *Engine) ChangeLeadProvider(ctx context.Context, cmd ChangeLeadProviderCommand) (created *TrainingPeriod, err error) {
	defer func() { e.observe("change_lead_provider", err) }()

	if cmd.NewLeadProviderID == cmd.OldLeadProviderID {
		return nil, ErrLeadProviderNotChanged
	}

	placement, err := e.repo.GetPlacement(ctx, cmd.PlacementID)
	if err != nil {
		return nil, err
	}
	teacher, err := e.teachers.Get(ctx, placement.TeacherID)
	if err != nil {
		return nil, err
	}
	oldProvider, err := e.providers.GetLeadProvider(ctx, cmd.OldLeadProviderID)
	if err != nil {
		return nil, err
	}
	newProvider, err := e.providers.GetLeadProvider(ctx, cmd.NewLeadProviderID)
	if err != nil {
		return nil, err
	}

	today := e.clk.Today()
	dateOfTransition := laterOf(placement.StartedOn, today)

	resolution, err := e.resolveProviderLed(ctx, ModeProviderLed, cmd.NewLeadProviderID, placement.SchoolID, dateOfTransition)
	if err != nil {
		return nil, err
	}

	err = e.repo.InTx(ctx, func(ctx context.Context, repo Repository) error {
		periods, err := repo.TrainingPeriodsForPlacement(ctx, placement.ID)
		if err != nil {
			return err
		}
		current, ok := timeline.CurrentOrNext(periods, today)
		if !ok {
			return ErrNoTrainingPeriod
		}
		if current.Mode != ModeProviderLed {
			return ErrSchoolLedTrainingProgramme
		}

		periods, err = e.supersede(ctx, repo, periods, current, dateOfTransition, today, false)
		if err != nil {
			return err
		}

		tp := TrainingPeriod{
			PlacementID: placement.ID,
			Mode:        ModeProviderLed,
			StartedOn:   dateOfTransition,
		}
		applyResolution(&tp, resolution)
		if err := tp.Validate(); err != nil {
			return err
		}
		if err := timeline.CheckOpen(periods, dateOfTransition); err != nil {
			return err
		}
		tp.ID, err = repo.InsertTrainingPeriod(ctx, tp)
		if err != nil {
			return err
		}

		event := audit.Event{
			Type:    audit.EventTeacherLeadProviderUpdated,
			Heading: fmt.Sprintf("%s's lead provider changed from %s to %s", teacher.FullName(), oldProvider.Name, newProvider.Name),
			Author:  cmd.Author,
			Refs: append([]audit.Ref{
				{Name: "teacher", ID: teacher.ID},
				{Name: "school", ID: placement.SchoolID},
				{Name: "placement", ID: placement.ID},
				{Name: "training_period", ID: tp.ID},
				{Name: "lead_provider", ID: newProvider.ID},
			}, resolutionRefs(resolution)...),
			Metadata: map[string]any{
				"old_lead_provider": oldProvider.Name,
				"new_lead_provider": newProvider.Name,
			},
		}
		if err := e.recorder.Record(ctx, event); err != nil {
			return err
		}

		created = &tp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// supersede removes or finishes the current training period according to the
// future/past rule: a period that never took effect leaves no historical
// trace, one that did take effect is preserved with its finish date. Returns
// the period slice adjusted for the mutation.
func (e *Engine) supersede(ctx context.Context, repo Repository, periods []TrainingPeriod, current TrainingPeriod, dateOfTransition, today time.Time, forceDelete bool) ([]TrainingPeriod, error) {
	neverTookEffect := dateOfTransition.After(today) || current.StartedOn.After(dateOfTransition)
	if neverTookEffect || forceDelete {
		if err := repo.DeleteTrainingPeriod(ctx, current.ID); err != nil {
			return nil, err
		}
		return withoutTrainingPeriod(periods, current.ID), nil
	}

	closing := current.Range()
	if err := closing.Close(dateOfTransition); err != nil {
		return nil, err
	}
	if err := repo.CloseTrainingPeriod(ctx, current.ID, dateOfTransition); err != nil {
		return nil, err
	}
	for i := range periods {
		if periods[i].ID == current.ID {
			periods[i].FinishedOn = &dateOfTransition
		}
	}
	return periods, nil
}

// currentLeadProvider picks the provider to continue with when a switch back
// to provider-led names none: the most recent provider-led period's lead
// provider. A placement that never trained provider-led has nothing to fall
// back to.
func (e *Engine) currentLeadProvider(ctx context.Context, placementID int64, today time.Time) (int64, error) {
	periods, err := e.repo.TrainingPeriodsForPlacement(ctx, placementID)
	if err != nil {
		return 0, err
	}
	if _, ok := timeline.CurrentOrNext(periods, today); !ok {
		return 0, ErrNoTrainingPeriod
	}
	var latest *TrainingPeriod
	for i := range periods {
		if periods[i].Mode != ModeProviderLed {
			continue
		}
		if latest == nil || periods[i].StartedOn.After(latest.StartedOn) {
			latest = &periods[i]
		}
	}
	if latest == nil {
		return 0, ErrLeadProviderRequired
	}
	return e.repo.LeadProviderForTrainingPeriod(ctx, latest.ID)
}

// placementProviderLed reports whether the placement's current training
// period is provider-led. No open period counts as school-led.
func (e *Engine) placementProviderLed(ctx context.Context, placementID int64, today time.Time) (bool, error) {
	periods, err := e.repo.TrainingPeriodsForPlacement(ctx, placementID)
	if err != nil {
		return false, err
	}
	current, ok := timeline.CurrentOrNext(periods, today)
	if !ok {
		return false, nil
	}
	return current.Mode == ModeProviderLed, nil
}

// resolveProviderLed resolves the active lead provider for the contract
// period containing the given date, then the school partnership or expression
// of interest. Returns nil for school-led training.
func (e *Engine) resolveProviderLed(ctx context.Context, mode TrainingMode, leadProviderID, schoolID int64, at time.Time) (*providers.PartnershipResolution, error) {
	if mode != ModeProviderLed {
		return nil, nil
	}
	if leadProviderID == 0 {
		return nil, ErrLeadProviderRequired
	}
	alp, err := e.providers.ActiveLeadProviderFor(ctx, leadProviderID, at)
	if err != nil {
		return nil, err
	}
	resolution, err := e.providers.ResolvePartnership(ctx, schoolID, alp)
	if err != nil {
		return nil, err
	}
	return &resolution, nil
}

func (e *Engine) observe(operation string, err error) {
	if e.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	e.metrics.ObserveTransition(operation, status)
}

func applyResolution(tp *TrainingPeriod, resolution *providers.PartnershipResolution) {
	if resolution == nil {
		return
	}
	if resolution.SchoolPartnership != nil {
		id := resolution.SchoolPartnership.ID
		tp.SchoolPartnershipID = &id
		return
	}
	if resolution.ExpressionOfInterest != nil {
		id := resolution.ExpressionOfInterest.ID
		tp.ExpressionOfInterestID = &id
	}
}

func resolutionRefs(resolution *providers.PartnershipResolution) []audit.Ref {
	if resolution == nil {
		return nil
	}
	if resolution.SchoolPartnership != nil {
		return []audit.Ref{{Name: "school_partnership", ID: resolution.SchoolPartnership.ID}}
	}
	if resolution.ExpressionOfInterest != nil {
		return []audit.Ref{{Name: "expression_of_interest", ID: resolution.ExpressionOfInterest.ID}}
	}
	return nil
}

func modeLabel(mode TrainingMode) string {
	if mode == ModeProviderLed {
		return "provider-led"
	}
	return "school-led"
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func withoutTrainingPeriod(periods []TrainingPeriod, id int64) []TrainingPeriod {
	out := periods[:0]
	for _, p := range periods {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

func withoutMentorship(mentorships []MentorshipPeriod, id int64) []MentorshipPeriod {
	out := mentorships[:0]
	for _, m := range mentorships {
		if m.ID != id {
			out = append(out, m)
		}
	}
	return out
}
