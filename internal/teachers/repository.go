package teachers

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("teacher not found")

type Repository interface {
	Get(ctx context.Context, id int64) (*Teacher, error)
	FindByTRN(ctx context.Context, trn string) (*Teacher, error)
	Insert(ctx context.Context, t Teacher) (int64, error)
	UpdateMentorIneligibility(ctx context.Context, id int64, reason *string, becameIneligibleOn *time.Time) error
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db dbtx
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

// WithTx returns a repository bound to the supplied transaction.
func WithTx(tx pgx.Tx) Repository {
	return &repository{db: tx}
}

const teacherColumns = `id, trn, first_name, last_name, date_of_birth, mentor_ineligibility_reason, mentor_became_ineligible_on, created_at, updated_at`

func (r *repository) Get(ctx context.Context, id int64) (*Teacher, error) {
	return r.scanOne(r.db.QueryRow(ctx, `SELECT `+teacherColumns+` FROM teachers WHERE id = $1`, id))
}

func (r *repository) FindByTRN(ctx context.Context, trn string) (*Teacher, error) {
	return r.scanOne(r.db.QueryRow(ctx, `SELECT `+teacherColumns+` FROM teachers WHERE trn = $1`, trn))
}

func (r *repository) Insert(ctx context.Context, t Teacher) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO teachers (trn, first_name, last_name, date_of_birth, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id`,
		t.TRN, t.FirstName, t.LastName, t.DateOfBirth).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) UpdateMentorIneligibility(ctx context.Context, id int64, reason *string, becameIneligibleOn *time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE teachers
		SET mentor_ineligibility_reason = $2, mentor_became_ineligible_on = $3, updated_at = NOW()
		WHERE id = $1`,
		id, reason, becameIneligibleOn)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) scanOne(row pgx.Row) (*Teacher, error) {
	var t Teacher
	err := row.Scan(&t.ID, &t.TRN, &t.FirstName, &t.LastName, &t.DateOfBirth,
		&t.MentorIneligibilityReason, &t.MentorBecameIneligibleOn, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}
