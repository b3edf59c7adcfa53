package teachers

import "time"

// Teacher is a record in the teacher directory, keyed by TRN.
type Teacher struct {
	ID                       int64      `json:"id" db:"id"`
	TRN                      string     `json:"trn" db:"trn"`
	FirstName                string     `json:"first_name" db:"first_name"`
	LastName                 string     `json:"last_name" db:"last_name"`
	DateOfBirth              *time.Time `json:"date_of_birth,omitempty" db:"date_of_birth"`
	MentorIneligibilityReason *string   `json:"mentor_ineligibility_reason,omitempty" db:"mentor_ineligibility_reason"`
	MentorBecameIneligibleOn *time.Time `json:"mentor_became_ineligible_on,omitempty" db:"mentor_became_ineligible_on"`
	CreatedAt                time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at" db:"updated_at"`
}

// FullName renders the display name used in audit headings.
func (t Teacher) FullName() string {
	if t.FirstName == "" {
		return t.LastName
	}
	if t.LastName == "" {
		return t.FirstName
	}
	return t.FirstName + " " + t.LastName
}
