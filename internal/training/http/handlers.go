// Package traininghttp exposes the period-transition operations over HTTP.
package traininghttp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/induct-hq/induct/internal/audit"
	"github.com/induct-hq/induct/internal/platform/httpx"
	"github.com/induct-hq/induct/internal/timeline"
	"github.com/induct-hq/induct/internal/training"
)

// TransitionEngine is the subset of the engine the HTTP layer drives.
type TransitionEngine interface {
	Register(ctx context.Context, cmd training.RegisterCommand) (*training.RegisterResult, error)
	SwitchTrainingMode(ctx context.Context, cmd training.SwitchTrainingModeCommand) (*training.TrainingPeriod, error)
	SwitchMentor(ctx context.Context, cmd training.SwitchMentorCommand) (*training.SwitchMentorResult, error)
	ChangeLeadProvider(ctx context.Context, cmd training.ChangeLeadProviderCommand) (*training.TrainingPeriod, error)
	DeferTraining(ctx context.Context, cmd training.DeferralCommand) error
	ResumeTraining(ctx context.Context, cmd training.DeferralCommand) error
	WithdrawTraining(ctx context.Context, cmd training.DeferralCommand) error
}

type Handler struct {
	logger   *slog.Logger
	engine   TransitionEngine
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, engine TransitionEngine) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:   logger,
		engine:   engine,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	cmd, err := req.toCommand()
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	cmd.Author = authorFrom(r)

	res, err := h.engine.Register(r.Context(), cmd)
	if err != nil {
		h.respondError(w, r, "register", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, registerResponse{
		TeacherID:        res.Teacher.ID,
		PlacementID:      res.PlacementID,
		TrainingPeriodID: res.TrainingPeriodID,
	})
}

func (h *Handler) SwitchTrainingMode(w http.ResponseWriter, r *http.Request) {
	placementID, ok := pathID(w, r, "placementID")
	if !ok {
		return
	}
	var req switchModeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	created, err := h.engine.SwitchTrainingMode(r.Context(), training.SwitchTrainingModeCommand{
		PlacementID:    placementID,
		TargetMode:     training.TrainingMode(req.TargetMode),
		LeadProviderID: req.LeadProviderID,
		Author:         authorFrom(r),
	})
	if err != nil {
		h.respondError(w, r, "switch training mode", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) SwitchMentor(w http.ResponseWriter, r *http.Request) {
	placementID, ok := pathID(w, r, "placementID")
	if !ok {
		return
	}
	var req switchMentorRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	res, err := h.engine.SwitchMentor(r.Context(), training.SwitchMentorCommand{
		ECTPlacementID:    placementID,
		MentorPlacementID: req.MentorPlacementID,
		LeadProviderID:    req.LeadProviderID,
		Author:            authorFrom(r),
	})
	if err != nil {
		h.respondError(w, r, "switch mentor", err)
		return
	}
	status := http.StatusCreated
	if res.NoOp {
		status = http.StatusOK
	}
	httpx.JSON(w, status, switchMentorResponse{
		MentorshipPeriodID:     res.MentorshipPeriodID,
		MentorTrainingPeriodID: res.MentorTrainingPeriodID,
		NoOp:                   res.NoOp,
	})
}

func (h *Handler) ChangeLeadProvider(w http.ResponseWriter, r *http.Request) {
	placementID, ok := pathID(w, r, "placementID")
	if !ok {
		return
	}
	var req changeLeadProviderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	created, err := h.engine.ChangeLeadProvider(r.Context(), training.ChangeLeadProviderCommand{
		PlacementID:       placementID,
		OldLeadProviderID: req.OldLeadProviderID,
		NewLeadProviderID: req.NewLeadProviderID,
		Author:            authorFrom(r),
	})
	if err != nil {
		h.respondError(w, r, "change lead provider", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) DeferTraining(w http.ResponseWriter, r *http.Request) {
	h.deferralOp(w, r, "defer training", h.engine.DeferTraining)
}

func (h *Handler) ResumeTraining(w http.ResponseWriter, r *http.Request) {
	h.deferralOp(w, r, "resume training", h.engine.ResumeTraining)
}

func (h *Handler) WithdrawTraining(w http.ResponseWriter, r *http.Request) {
	h.deferralOp(w, r, "withdraw training", h.engine.WithdrawTraining)
}

func (h *Handler) deferralOp(w http.ResponseWriter, r *http.Request, name string, op func(context.Context, training.DeferralCommand) error) {
	placementID, ok := pathID(w, r, "placementID")
	if !ok {
		return
	}
	// The reason body is optional for resume.
	var req deferralRequest
	if err := httpx.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	err := op(r.Context(), training.DeferralCommand{
		PlacementID: placementID,
		Reason:      req.Reason,
		Author:      authorFrom(r),
	})
	if err != nil {
		h.respondError(w, r, name, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid "+param)
		return 0, false
	}
	return id, true
}

// authorFrom builds the audit author from request headers. Requests arriving
// through a lead provider's API gateway carry the provider identity; anything
// without explicit identity is attributed to the system.
func authorFrom(r *http.Request) audit.Author {
	if idStr := r.Header.Get("X-User-Id"); idStr != "" {
		if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
			return audit.SessionUser{
				ID:    id,
				Name:  r.Header.Get("X-User-Name"),
				Email: r.Header.Get("X-User-Email"),
			}
		}
	}
	if idStr := r.Header.Get("X-Lead-Provider-Id"); idStr != "" {
		if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
			return audit.LeadProviderAPIAuthor{
				LeadProviderID: id,
				Name:           r.Header.Get("X-Lead-Provider-Name"),
			}
		}
	}
	return audit.SystemAuthor{}
}

// respondError maps engine precondition failures onto problem responses.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var transferErr training.SchoolTransferError
	var overlapErr timeline.OverlapError
	switch {
	case errors.As(err, &transferErr):
		httpx.Problem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.As(err, &overlapErr),
		errors.Is(err, timeline.ErrOverlap),
		errors.Is(err, training.ErrAlreadyOnTrainingMode),
		errors.Is(err, training.ErrLeadProviderNotChanged),
		errors.Is(err, training.ErrAlreadyDeferred),
		errors.Is(err, training.ErrNotDeferred),
		errors.Is(err, training.ErrAlreadyWithdrawn):
		httpx.Problem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, training.ErrNoTrainingPeriod),
		errors.Is(err, training.ErrWrongPlacementKind),
		errors.Is(err, training.ErrSchoolLedTrainingProgramme),
		errors.Is(err, training.ErrLeadProviderRequired):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Unprocessable", err.Error())
	case errors.Is(err, training.ErrPlacementNotFound),
		errors.Is(err, training.ErrTrainingPeriodNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	default:
		h.logger.Error(op, slog.Any("error", err), slog.String("path", r.URL.Path))
		httpx.RespondError(w, err)
	}
}
