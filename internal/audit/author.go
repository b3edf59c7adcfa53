package audit

import (
	"errors"
	"fmt"
)

// ErrInvalidAuthor indicates an author outside the closed set of identity
// shapes, or one missing required fields.
var ErrInvalidAuthor = errors.New("audit: invalid author")

// Author is the closed set of identities allowed to write audit events.
// The sealed interface keeps the variant set exhaustive: an unknown shape is
// a construction-time error, not a runtime fallthrough.
type Author interface {
	resolve() (AuthorTuple, error)
}

// AuthorTuple is the flattened identity stored on every event.
type AuthorTuple struct {
	ID    *int64 `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Type  string `json:"type"`
}

// SessionUser is a human author acting through an authenticated session.
type SessionUser struct {
	ID    int64
	Name  string
	Email string
}

func (u SessionUser) resolve() (AuthorTuple, error) {
	if u.ID == 0 || u.Name == "" || u.Email == "" {
		return AuthorTuple{}, fmt.Errorf("%w: session user requires id, name and email", ErrInvalidAuthor)
	}
	id := u.ID
	return AuthorTuple{ID: &id, Name: u.Name, Email: u.Email, Type: "session_user"}, nil
}

// SystemAuthor marks events produced by scheduled or internal processes.
type SystemAuthor struct{}

func (SystemAuthor) resolve() (AuthorTuple, error) {
	return AuthorTuple{Name: "System", Type: "system"}, nil
}

// LeadProviderAPIAuthor marks events produced through a lead provider's API
// credentials.
type LeadProviderAPIAuthor struct {
	LeadProviderID int64
	Name           string
}

func (a LeadProviderAPIAuthor) resolve() (AuthorTuple, error) {
	if a.LeadProviderID == 0 || a.Name == "" {
		return AuthorTuple{}, fmt.Errorf("%w: lead provider api author requires id and name", ErrInvalidAuthor)
	}
	id := a.LeadProviderID
	return AuthorTuple{ID: &id, Name: a.Name, Type: "lead_provider_api"}, nil
}

// BatchAuthor marks events produced by a bulk-upload batch.
type BatchAuthor struct {
	BatchID int64
}

func (a BatchAuthor) resolve() (AuthorTuple, error) {
	if a.BatchID == 0 {
		return AuthorTuple{}, fmt.Errorf("%w: batch author requires a batch id", ErrInvalidAuthor)
	}
	id := a.BatchID
	return AuthorTuple{ID: &id, Name: fmt.Sprintf("Batch %d", a.BatchID), Type: "batch"}, nil
}

// ResolveAuthor maps an author to its stored tuple.
func ResolveAuthor(a Author) (AuthorTuple, error) {
	if a == nil {
		return AuthorTuple{}, fmt.Errorf("%w: author required", ErrInvalidAuthor)
	}
	return a.resolve()
}
