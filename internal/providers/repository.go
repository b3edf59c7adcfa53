package providers

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrContractPeriodNotFound = errors.New("no contract period contains the given date")
	// ErrActiveLeadProviderNotFound indicates the lead provider is not active
	// for the requested contract period.
	ErrActiveLeadProviderNotFound = errors.New("active lead provider not found")
	ErrLeadProviderNotFound       = errors.New("lead provider not found")
)

type Repository interface {
	ContractPeriodContaining(ctx context.Context, date time.Time) (*ContractPeriod, error)
	GetLeadProvider(ctx context.Context, id int64) (*LeadProvider, error)
	FindActiveLeadProvider(ctx context.Context, leadProviderID, contractPeriodID int64) (*ActiveLeadProvider, error)
	GetActiveLeadProvider(ctx context.Context, id int64) (*ActiveLeadProvider, error)
	FindSchoolPartnership(ctx context.Context, schoolID, activeLeadProviderID int64) (*SchoolPartnership, error)
	EnsureDeliveryPartnership(ctx context.Context, activeLeadProviderID, deliveryPartnerID int64) (*LeadProviderDeliveryPartnership, error)
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

func (r *repository) ContractPeriodContaining(ctx context.Context, date time.Time) (*ContractPeriod, error) {
	var cp ContractPeriod
	err := r.db.QueryRow(ctx, `
		SELECT id, year, started_on, finished_on, enabled
		FROM contract_periods
		WHERE $1 >= started_on AND $1 <= finished_on
		ORDER BY started_on
		LIMIT 1`, date).
		Scan(&cp.ID, &cp.Year, &cp.StartedOn, &cp.FinishedOn, &cp.Enabled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrContractPeriodNotFound
		}
		return nil, err
	}
	return &cp, nil
}

func (r *repository) GetLeadProvider(ctx context.Context, id int64) (*LeadProvider, error) {
	var lp LeadProvider
	err := r.db.QueryRow(ctx, `SELECT id, name FROM lead_providers WHERE id = $1`, id).Scan(&lp.ID, &lp.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadProviderNotFound
		}
		return nil, err
	}
	return &lp, nil
}

func (r *repository) FindActiveLeadProvider(ctx context.Context, leadProviderID, contractPeriodID int64) (*ActiveLeadProvider, error) {
	var alp ActiveLeadProvider
	err := r.db.QueryRow(ctx, `
		SELECT id, lead_provider_id, contract_period_id
		FROM active_lead_providers
		WHERE lead_provider_id = $1 AND contract_period_id = $2`, leadProviderID, contractPeriodID).
		Scan(&alp.ID, &alp.LeadProviderID, &alp.ContractPeriodID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrActiveLeadProviderNotFound
		}
		return nil, err
	}
	return &alp, nil
}

func (r *repository) GetActiveLeadProvider(ctx context.Context, id int64) (*ActiveLeadProvider, error) {
	var alp ActiveLeadProvider
	err := r.db.QueryRow(ctx, `
		SELECT id, lead_provider_id, contract_period_id
		FROM active_lead_providers
		WHERE id = $1`, id).
		Scan(&alp.ID, &alp.LeadProviderID, &alp.ContractPeriodID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrActiveLeadProviderNotFound
		}
		return nil, err
	}
	return &alp, nil
}

func (r *repository) FindSchoolPartnership(ctx context.Context, schoolID, activeLeadProviderID int64) (*SchoolPartnership, error) {
	var sp SchoolPartnership
	err := r.db.QueryRow(ctx, `
		SELECT sp.id, sp.school_id, sp.lead_provider_delivery_partnership_id
		FROM school_partnerships sp
		JOIN lead_provider_delivery_partnerships lpdp ON lpdp.id = sp.lead_provider_delivery_partnership_id
		WHERE sp.school_id = $1 AND lpdp.active_lead_provider_id = $2
		ORDER BY sp.id
		LIMIT 1`, schoolID, activeLeadProviderID).
		Scan(&sp.ID, &sp.SchoolID, &sp.LeadProviderDeliveryPartnershipID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &sp, nil
}

func (r *repository) EnsureDeliveryPartnership(ctx context.Context, activeLeadProviderID, deliveryPartnerID int64) (*LeadProviderDeliveryPartnership, error) {
	var link LeadProviderDeliveryPartnership
	err := r.db.QueryRow(ctx, `
		INSERT INTO lead_provider_delivery_partnerships (active_lead_provider_id, delivery_partner_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (active_lead_provider_id, delivery_partner_id)
		DO UPDATE SET updated_at = NOW()
		RETURNING id, active_lead_provider_id, delivery_partner_id`,
		activeLeadProviderID, deliveryPartnerID).
		Scan(&link.ID, &link.ActiveLeadProviderID, &link.DeliveryPartnerID)
	if err != nil {
		return nil, err
	}
	return &link, nil
}
