// Package audit records every domain transition as an immutable event with a
// verified author and the set of entities involved. The event-type vocabulary
// is a contract with downstream consumers: tags may be added but never renamed
// or removed.
package audit

// EventType tags a domain occurrence. Closed enumeration.
type EventType string

const (
	EventTeacherRegisteredAsECT    EventType = "teacher_registered_as_ect"
	EventTeacherRegisteredAsMentor EventType = "teacher_registered_as_mentor"

	EventTeacherStartsPlacement    EventType = "teacher_starts_placement"
	EventTeacherFinishesPlacement  EventType = "teacher_finishes_placement"
	EventTeacherTransfersSchool    EventType = "teacher_transfers_school"

	EventTeacherStartsTrainingPeriod      EventType = "teacher_starts_training_period"
	EventTeacherFinishesTrainingPeriod    EventType = "teacher_finishes_training_period"
	EventTeacherTrainingProgrammeUpdated  EventType = "teacher_training_programme_updated"
	EventTeacherLeadProviderUpdated       EventType = "teacher_lead_provider_updated"
	EventTeacherDefersTraining            EventType = "teacher_defers_training"
	EventTeacherResumesTraining           EventType = "teacher_resumes_training"
	EventTeacherWithdrawsFromTraining     EventType = "teacher_withdraws_from_training"

	EventTeacherMentorshipUpdated        EventType = "teacher_mentorship_updated"
	EventTeacherStartsMentorshipPeriod   EventType = "teacher_starts_mentorship_period"
	EventTeacherFinishesMentorshipPeriod EventType = "teacher_finishes_mentorship_period"

	EventTeacherNameUpdated             EventType = "teacher_name_updated"
	EventTeacherTRNUpdated              EventType = "teacher_trn_updated"
	EventTeacherIneligibleForFunding    EventType = "teacher_becomes_ineligible_for_mentor_funding"
	EventTeacherFundingEligibilityReset EventType = "teacher_mentor_funding_eligibility_restored"

	EventInductionPeriodOpened       EventType = "induction_period_opened"
	EventInductionPeriodClosed       EventType = "induction_period_closed"
	EventInductionExtended           EventType = "induction_extended"
	EventInductionOutcomeRecorded    EventType = "induction_outcome_recorded"
	EventAppropriateBodyAssigned     EventType = "appropriate_body_assigned"
	EventAppropriateBodyReleased     EventType = "appropriate_body_released"

	EventSchoolPartnershipCreated   EventType = "school_partnership_created"
	EventSchoolPartnershipUpdated   EventType = "school_partnership_updated"
	EventSchoolPartnershipDeleted   EventType = "school_partnership_deleted"
	EventExpressionOfInterestCreated EventType = "expression_of_interest_created"
	EventDeliveryPartnershipCreated EventType = "delivery_partnership_created"

	EventLeadProviderActivated   EventType = "lead_provider_activated"
	EventLeadProviderDeactivated EventType = "lead_provider_deactivated"
	EventContractPeriodOpened    EventType = "contract_period_opened"
	EventContractPeriodClosed    EventType = "contract_period_closed"

	EventStatementCreated           EventType = "statement_created"
	EventStatementAuthorised        EventType = "statement_authorised"
	EventStatementPaid              EventType = "statement_paid"
	EventStatementAdjustmentAdded   EventType = "statement_adjustment_added"
	EventStatementAdjustmentDeleted EventType = "statement_adjustment_deleted"
	EventDeclarationCreated         EventType = "declaration_created"
	EventDeclarationVoided          EventType = "declaration_voided"

	EventBatchUploadStarted   EventType = "batch_upload_started"
	EventBatchUploadCompleted EventType = "batch_upload_completed"
	EventBatchUploadFailed    EventType = "batch_upload_failed"

	EventAdminNoteAdded            EventType = "admin_note_added"
	EventAdminNoteUpdated          EventType = "admin_note_updated"
	EventAdminBulkOperationExecuted EventType = "admin_bulk_operation_executed"
	EventAPITokenCreated           EventType = "api_token_created"
	EventAPITokenRevoked           EventType = "api_token_revoked"
)

var eventTypes = map[EventType]struct{}{
	EventTeacherRegisteredAsECT:          {},
	EventTeacherRegisteredAsMentor:       {},
	EventTeacherStartsPlacement:          {},
	EventTeacherFinishesPlacement:        {},
	EventTeacherTransfersSchool:          {},
	EventTeacherStartsTrainingPeriod:     {},
	EventTeacherFinishesTrainingPeriod:   {},
	EventTeacherTrainingProgrammeUpdated: {},
	EventTeacherLeadProviderUpdated:      {},
	EventTeacherDefersTraining:           {},
	EventTeacherResumesTraining:          {},
	EventTeacherWithdrawsFromTraining:    {},
	EventTeacherMentorshipUpdated:        {},
	EventTeacherStartsMentorshipPeriod:   {},
	EventTeacherFinishesMentorshipPeriod: {},
	EventTeacherNameUpdated:              {},
	EventTeacherTRNUpdated:               {},
	EventTeacherIneligibleForFunding:     {},
	EventTeacherFundingEligibilityReset:  {},
	EventInductionPeriodOpened:           {},
	EventInductionPeriodClosed:           {},
	EventInductionExtended:               {},
	EventInductionOutcomeRecorded:        {},
	EventAppropriateBodyAssigned:         {},
	EventAppropriateBodyReleased:         {},
	EventSchoolPartnershipCreated:        {},
	EventSchoolPartnershipUpdated:        {},
	EventSchoolPartnershipDeleted:        {},
	EventExpressionOfInterestCreated:     {},
	EventDeliveryPartnershipCreated:      {},
	EventLeadProviderActivated:           {},
	EventLeadProviderDeactivated:         {},
	EventContractPeriodOpened:            {},
	EventContractPeriodClosed:            {},
	EventStatementCreated:                {},
	EventStatementAuthorised:             {},
	EventStatementPaid:                   {},
	EventStatementAdjustmentAdded:        {},
	EventStatementAdjustmentDeleted:      {},
	EventDeclarationCreated:              {},
	EventDeclarationVoided:               {},
	EventBatchUploadStarted:              {},
	EventBatchUploadCompleted:            {},
	EventBatchUploadFailed:               {},
	EventAdminNoteAdded:                  {},
	EventAdminNoteUpdated:                {},
	EventAdminBulkOperationExecuted:      {},
	EventAPITokenCreated:                 {},
	EventAPITokenRevoked:                 {},
}

// Valid reports whether the tag belongs to the closed vocabulary.
func (t EventType) Valid() bool {
	_, ok := eventTypes[t]
	return ok
}
