package providers

import "time"

// ContractPeriod is the annual cycle within which lead-provider activity and
// funding rules apply.
type ContractPeriod struct {
	ID         int64     `json:"id" db:"id"`
	Year       int       `json:"year" db:"year"`
	StartedOn  time.Time `json:"started_on" db:"started_on"`
	FinishedOn time.Time `json:"finished_on" db:"finished_on"`
	Enabled    bool      `json:"enabled" db:"enabled"`
}

// LeadProvider is an organisation contracted to deliver training content.
type LeadProvider struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// ActiveLeadProvider scopes a lead provider to one contract period. It is the
// unit expressions of interest and school partnerships resolve to.
type ActiveLeadProvider struct {
	ID               int64 `json:"id" db:"id"`
	LeadProviderID   int64 `json:"lead_provider_id" db:"lead_provider_id"`
	ContractPeriodID int64 `json:"contract_period_id" db:"contract_period_id"`
}

// DeliveryPartner physically delivers a lead provider's training.
type DeliveryPartner struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// LeadProviderDeliveryPartnership links an active lead provider with a
// delivery partner for a contract period.
type LeadProviderDeliveryPartnership struct {
	ID                   int64 `json:"id" db:"id"`
	ActiveLeadProviderID int64 `json:"active_lead_provider_id" db:"active_lead_provider_id"`
	DeliveryPartnerID    int64 `json:"delivery_partner_id" db:"delivery_partner_id"`
}

// SchoolPartnership is a confirmed link between a school and a lead-provider /
// delivery-partner pairing.
type SchoolPartnership struct {
	ID                                int64 `json:"id" db:"id"`
	SchoolID                          int64 `json:"school_id" db:"school_id"`
	LeadProviderDeliveryPartnershipID int64 `json:"lead_provider_delivery_partnership_id" db:"lead_provider_delivery_partnership_id"`
}
