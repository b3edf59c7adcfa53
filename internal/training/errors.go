package training

import (
	"errors"
	"fmt"
)

// Precondition violations. All are raised before any mutation; nothing is
// persisted when one of these is returned.
var (
	ErrNoTrainingPeriod           = errors.New("training: no current or upcoming training period")
	ErrAlreadyOnTrainingMode      = errors.New("training: placement already trains in the requested mode")
	ErrWrongPlacementKind         = errors.New("training: wrong placement kind for this operation")
	ErrLeadProviderNotChanged     = errors.New("training: new lead provider matches the old one")
	ErrSchoolLedTrainingProgramme = errors.New("training: placement is school-led, not provider-led")
	ErrLeadProviderRequired       = errors.New("training: a lead provider is required for provider-led training")
	ErrPlacementNotFound          = errors.New("training: placement not found")
	ErrTrainingPeriodNotFound     = errors.New("training: training period not found")
	ErrAlreadyDeferred            = errors.New("training: training period is already deferred")
	ErrNotDeferred                = errors.New("training: training period is not deferred")
	ErrAlreadyWithdrawn           = errors.New("training: training period is already withdrawn")
)

// SchoolTransferError indicates a registration at a school where the teacher
// already has an open placement. A transfer to a different school is handled
// automatically; re-registering at the same school is a caller error.
type SchoolTransferError struct {
	SchoolID int64
}

func (e SchoolTransferError) Error() string {
	return fmt.Sprintf("training: teacher already has an open placement at school %d", e.SchoolID)
}
