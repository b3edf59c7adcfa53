package schools

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("school not found")

type Repository interface {
	Get(ctx context.Context, id int64) (*School, error)
	FindByURN(ctx context.Context, urn string) (*School, error)
}

type querier interface {
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db querier
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

// WithTx returns a repository bound to the supplied transaction.
func WithTx(tx pgx.Tx) Repository {
	return &repository{db: tx}
}

func (r *repository) Get(ctx context.Context, id int64) (*School, error) {
	return r.scanOne(r.db.QueryRow(ctx, `SELECT id, urn, name, created_at, updated_at FROM schools WHERE id = $1`, id))
}

func (r *repository) FindByURN(ctx context.Context, urn string) (*School, error) {
	return r.scanOne(r.db.QueryRow(ctx, `SELECT id, urn, name, created_at, updated_at FROM schools WHERE urn = $1`, urn))
}

func (r *repository) scanOne(row pgx.Row) (*School, error) {
	var s School
	if err := row.Scan(&s.ID, &s.URN, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}
