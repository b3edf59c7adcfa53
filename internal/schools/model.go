package schools

import "time"

// School is a placement location identified by its URN.
type School struct {
	ID        int64     `json:"id" db:"id"`
	URN       string    `json:"urn" db:"urn"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
