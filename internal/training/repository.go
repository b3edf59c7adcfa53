package training

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/induct-hq/induct/internal/platform/db"
	"github.com/induct-hq/induct/internal/timeline"
)

// Repository is the sole writer of period rows. Open and close writes funnel
// through the timeline checks performed by the engine inside InTx; the
// partial unique indexes on open periods are the storage-layer backstop.
type Repository interface {
	InTx(ctx context.Context, fn func(context.Context, Repository) error) error

	GetPlacement(ctx context.Context, id int64) (*Placement, error)
	PlacementsForTeacher(ctx context.Context, teacherID int64, role PlacementRole) ([]Placement, error)
	InsertPlacement(ctx context.Context, p Placement) (int64, error)
	ClosePlacement(ctx context.Context, id int64, finishedOn time.Time) error

	GetTrainingPeriod(ctx context.Context, id int64) (*TrainingPeriod, error)
	TrainingPeriodsForPlacement(ctx context.Context, placementID int64) ([]TrainingPeriod, error)
	InsertTrainingPeriod(ctx context.Context, tp TrainingPeriod) (int64, error)
	CloseTrainingPeriod(ctx context.Context, id int64, finishedOn time.Time) error
	DeleteTrainingPeriod(ctx context.Context, id int64) error
	LeadProviderForTrainingPeriod(ctx context.Context, id int64) (int64, error)
	FindOpenTrainingPeriodWithLeadProvider(ctx context.Context, placementID, leadProviderID int64) (*TrainingPeriod, error)
	SetTrainingPeriodDeferral(ctx context.Context, id int64, at *time.Time, reason *string) error
	SetTrainingPeriodWithdrawal(ctx context.Context, id int64, at *time.Time, reason *string) error

	MentorshipsForECTPlacement(ctx context.Context, ectPlacementID int64) ([]MentorshipPeriod, error)
	InsertMentorship(ctx context.Context, m MentorshipPeriod) (int64, error)
	CloseMentorship(ctx context.Context, id int64, finishedOn time.Time) error
	DeleteMentorship(ctx context.Context, id int64) error
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) InTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

const placementColumns = `id, teacher_id, school_id, role, started_on, finished_on, created_at, updated_at`

func (r *repository) GetPlacement(ctx context.Context, id int64) (*Placement, error) {
	row := r.db.QueryRow(ctx, `SELECT `+placementColumns+` FROM placements WHERE id = $1`, id)
	var p Placement
	err := row.Scan(&p.ID, &p.TeacherID, &p.SchoolID, &p.Role, &p.StartedOn, &p.FinishedOn, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlacementNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) PlacementsForTeacher(ctx context.Context, teacherID int64, role PlacementRole) ([]Placement, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+placementColumns+`
		FROM placements
		WHERE teacher_id = $1 AND role = $2
		ORDER BY started_on`, teacherID, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var placements []Placement
	for rows.Next() {
		var p Placement
		if err := rows.Scan(&p.ID, &p.TeacherID, &p.SchoolID, &p.Role, &p.StartedOn, &p.FinishedOn, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		placements = append(placements, p)
	}
	return placements, rows.Err()
}

func (r *repository) InsertPlacement(ctx context.Context, p Placement) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO placements (teacher_id, school_id, role, started_on, finished_on, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id`,
		p.TeacherID, p.SchoolID, p.Role, p.StartedOn, p.FinishedOn).Scan(&id)
	if err != nil {
		if db.IsUniqueViolation(err, "placements_one_open_per_teacher_role") {
			return 0, timeline.ErrOverlap
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) ClosePlacement(ctx context.Context, id int64, finishedOn time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE placements SET finished_on = $2, updated_at = NOW()
		WHERE id = $1 AND finished_on IS NULL`, id, finishedOn)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return timeline.ErrAlreadyClosed
	}
	return nil
}

const trainingPeriodColumns = `id, placement_id, mode, school_partnership_id, expression_of_interest_id,
	started_on, finished_on, deferred_at, deferral_reason, withdrawn_at, withdrawal_reason, created_at, updated_at`

func (r *repository) GetTrainingPeriod(ctx context.Context, id int64) (*TrainingPeriod, error) {
	row := r.db.QueryRow(ctx, `SELECT `+trainingPeriodColumns+` FROM training_periods WHERE id = $1`, id)
	tp, err := scanTrainingPeriod(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTrainingPeriodNotFound
		}
		return nil, err
	}
	return tp, nil
}

func (r *repository) TrainingPeriodsForPlacement(ctx context.Context, placementID int64) ([]TrainingPeriod, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+trainingPeriodColumns+`
		FROM training_periods
		WHERE placement_id = $1
		ORDER BY started_on`, placementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []TrainingPeriod
	for rows.Next() {
		tp, err := scanTrainingPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, *tp)
	}
	return periods, rows.Err()
}

func (r *repository) InsertTrainingPeriod(ctx context.Context, tp TrainingPeriod) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO training_periods
			(placement_id, mode, school_partnership_id, expression_of_interest_id, started_on, finished_on, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id`,
		tp.PlacementID, tp.Mode, tp.SchoolPartnershipID, tp.ExpressionOfInterestID, tp.StartedOn, tp.FinishedOn).Scan(&id)
	if err != nil {
		if db.IsUniqueViolation(err, "training_periods_one_open_per_placement") {
			return 0, timeline.ErrOverlap
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) CloseTrainingPeriod(ctx context.Context, id int64, finishedOn time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE training_periods SET finished_on = $2, updated_at = NOW()
		WHERE id = $1 AND finished_on IS NULL`, id, finishedOn)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return timeline.ErrAlreadyClosed
	}
	return nil
}

// DeleteTrainingPeriod removes a period that never took effect. Periods that
// did take effect are closed, never deleted.
func (r *repository) DeleteTrainingPeriod(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM training_periods WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTrainingPeriodNotFound
	}
	return nil
}

// LeadProviderForTrainingPeriod resolves the lead provider a period trains
// under, through either its expression of interest or its confirmed
// partnership. School-led periods resolve to ErrLeadProviderRequired.
func (r *repository) LeadProviderForTrainingPeriod(ctx context.Context, id int64) (int64, error) {
	var leadProviderID *int64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(alp_eoi.lead_provider_id, alp_sp.lead_provider_id)
		FROM training_periods tp
		LEFT JOIN active_lead_providers alp_eoi ON alp_eoi.id = tp.expression_of_interest_id
		LEFT JOIN school_partnerships sp ON sp.id = tp.school_partnership_id
		LEFT JOIN lead_provider_delivery_partnerships lpdp ON lpdp.id = sp.lead_provider_delivery_partnership_id
		LEFT JOIN active_lead_providers alp_sp ON alp_sp.id = lpdp.active_lead_provider_id
		WHERE tp.id = $1`, id).Scan(&leadProviderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrTrainingPeriodNotFound
		}
		return 0, err
	}
	if leadProviderID == nil {
		return 0, ErrLeadProviderRequired
	}
	return *leadProviderID, nil
}

func (r *repository) FindOpenTrainingPeriodWithLeadProvider(ctx context.Context, placementID, leadProviderID int64) (*TrainingPeriod, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+qualifiedTrainingPeriodColumns+`
		FROM training_periods tp
		LEFT JOIN active_lead_providers alp_eoi ON alp_eoi.id = tp.expression_of_interest_id
		LEFT JOIN school_partnerships sp ON sp.id = tp.school_partnership_id
		LEFT JOIN lead_provider_delivery_partnerships lpdp ON lpdp.id = sp.lead_provider_delivery_partnership_id
		LEFT JOIN active_lead_providers alp_sp ON alp_sp.id = lpdp.active_lead_provider_id
		WHERE tp.placement_id = $1
		  AND tp.finished_on IS NULL
		  AND COALESCE(alp_eoi.lead_provider_id, alp_sp.lead_provider_id) = $2
		LIMIT 1`, placementID, leadProviderID)
	tp, err := scanTrainingPeriod(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return tp, nil
}

func (r *repository) SetTrainingPeriodDeferral(ctx context.Context, id int64, at *time.Time, reason *string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE training_periods SET deferred_at = $2, deferral_reason = $3, updated_at = NOW()
		WHERE id = $1`, id, at, reason)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTrainingPeriodNotFound
	}
	return nil
}

func (r *repository) SetTrainingPeriodWithdrawal(ctx context.Context, id int64, at *time.Time, reason *string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE training_periods SET withdrawn_at = $2, withdrawal_reason = $3, updated_at = NOW()
		WHERE id = $1`, id, at, reason)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTrainingPeriodNotFound
	}
	return nil
}

const mentorshipColumns = `id, ect_placement_id, mentor_placement_id, started_on, finished_on, created_at, updated_at`

func (r *repository) MentorshipsForECTPlacement(ctx context.Context, ectPlacementID int64) ([]MentorshipPeriod, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+mentorshipColumns+`
		FROM mentorship_periods
		WHERE ect_placement_id = $1
		ORDER BY started_on`, ectPlacementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mentorships []MentorshipPeriod
	for rows.Next() {
		var m MentorshipPeriod
		if err := rows.Scan(&m.ID, &m.ECTPlacementID, &m.MentorPlacementID, &m.StartedOn, &m.FinishedOn, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		mentorships = append(mentorships, m)
	}
	return mentorships, rows.Err()
}

func (r *repository) InsertMentorship(ctx context.Context, m MentorshipPeriod) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO mentorship_periods (ect_placement_id, mentor_placement_id, started_on, finished_on, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id`,
		m.ECTPlacementID, m.MentorPlacementID, m.StartedOn, m.FinishedOn).Scan(&id)
	if err != nil {
		if db.IsUniqueViolation(err, "mentorship_periods_one_open_per_ect") {
			return 0, timeline.ErrOverlap
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) CloseMentorship(ctx context.Context, id int64, finishedOn time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE mentorship_periods SET finished_on = $2, updated_at = NOW()
		WHERE id = $1 AND finished_on IS NULL`, id, finishedOn)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return timeline.ErrAlreadyClosed
	}
	return nil
}

func (r *repository) DeleteMentorship(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM mentorship_periods WHERE id = $1`, id)
	return err
}

const qualifiedTrainingPeriodColumns = `tp.id, tp.placement_id, tp.mode, tp.school_partnership_id, tp.expression_of_interest_id,
	tp.started_on, tp.finished_on, tp.deferred_at, tp.deferral_reason, tp.withdrawn_at, tp.withdrawal_reason, tp.created_at, tp.updated_at`

func scanTrainingPeriod(row pgx.Row) (*TrainingPeriod, error) {
	var tp TrainingPeriod
	err := row.Scan(&tp.ID, &tp.PlacementID, &tp.Mode, &tp.SchoolPartnershipID, &tp.ExpressionOfInterestID,
		&tp.StartedOn, &tp.FinishedOn, &tp.DeferredAt, &tp.DeferralReason, &tp.WithdrawnAt, &tp.WithdrawalReason,
		&tp.CreatedAt, &tp.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &tp, nil
}
