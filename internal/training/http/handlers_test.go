package traininghttp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/induct-hq/induct/internal/audit"
	"github.com/induct-hq/induct/internal/teachers"
	"github.com/induct-hq/induct/internal/training"
)

type stubEngine struct {
	registerCmd   training.RegisterCommand
	switchModeCmd training.SwitchTrainingModeCommand
	mentorCmd     training.SwitchMentorCommand
	deferralCmd   training.DeferralCommand
	err           error
}

func (s *stubEngine) Register(ctx context.Context, cmd training.RegisterCommand) (*training.RegisterResult, error) {
	s.registerCmd = cmd
	if s.err != nil {
		return nil, s.err
	}
	return &training.RegisterResult{
		Teacher:          &teachers.Teacher{ID: 1},
		PlacementID:      2,
		TrainingPeriodID: 3,
	}, nil
}

func (s *stubEngine) SwitchTrainingMode(ctx context.Context, cmd training.SwitchTrainingModeCommand) (*training.TrainingPeriod, error) {
	s.switchModeCmd = cmd
	if s.err != nil {
		return nil, s.err
	}
	return &training.TrainingPeriod{ID: 4, PlacementID: cmd.PlacementID, Mode: cmd.TargetMode}, nil
}

func (s *stubEngine) SwitchMentor(ctx context.Context, cmd training.SwitchMentorCommand) (*training.SwitchMentorResult, error) {
	s.mentorCmd = cmd
	if s.err != nil {
		return nil, s.err
	}
	return &training.SwitchMentorResult{MentorshipPeriodID: 5}, nil
}

func (s *stubEngine) ChangeLeadProvider(ctx context.Context, cmd training.ChangeLeadProviderCommand) (*training.TrainingPeriod, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &training.TrainingPeriod{ID: 6}, nil
}

func (s *stubEngine) DeferTraining(ctx context.Context, cmd training.DeferralCommand) error {
	s.deferralCmd = cmd
	return s.err
}

func (s *stubEngine) ResumeTraining(ctx context.Context, cmd training.DeferralCommand) error {
	s.deferralCmd = cmd
	return s.err
}

func (s *stubEngine) WithdrawTraining(ctx context.Context, cmd training.DeferralCommand) error {
	s.deferralCmd = cmd
	return s.err
}

func newTestRouter(engine TransitionEngine) chi.Router {
	r := chi.NewRouter()
	NewHandler(nil, engine).MountRoutes(r)
	return r
}

func TestRegisterEndpoint(t *testing.T) {
	engine := &stubEngine{}
	router := newTestRouter(engine)

	body := `{"trn":"1234567","first_name":"Rosa","last_name":"Clarke","school_id":10,
		"role":"ect","started_on":"2024-09-01","mode":"provider_led","lead_provider_id":100}`
	req := httptest.NewRequest(http.MethodPost, "/teachers/register", strings.NewReader(body))
	req.Header.Set("X-User-Id", "7")
	req.Header.Set("X-User-Name", "Admin One")
	req.Header.Set("X-User-Email", "admin@example.org")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var resp registerResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.PlacementID)

	assert.Equal(t, "1234567", engine.registerCmd.TRN)
	assert.Equal(t, training.ModeProviderLed, engine.registerCmd.Mode)
	assert.Equal(t, audit.SessionUser{ID: 7, Name: "Admin One", Email: "admin@example.org"}, engine.registerCmd.Author)
}

func TestRegisterRejectsBadTRN(t *testing.T) {
	router := newTestRouter(&stubEngine{})
	body := `{"trn":"12","first_name":"A","last_name":"B","school_id":10,
		"role":"ect","started_on":"2024-09-01","mode":"school_led"}`
	req := httptest.NewRequest(http.MethodPost, "/teachers/register", strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSwitchTrainingModeEndpoint(t *testing.T) {
	engine := &stubEngine{}
	router := newTestRouter(engine)

	req := httptest.NewRequest(http.MethodPost, "/placements/42/training-mode",
		strings.NewReader(`{"target_mode":"school_led"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, int64(42), engine.switchModeCmd.PlacementID)
	assert.Equal(t, training.ModeSchoolLed, engine.switchModeCmd.TargetMode)
	assert.Equal(t, audit.SystemAuthor{}, engine.switchModeCmd.Author)
}

func TestSwitchTrainingModeConflict(t *testing.T) {
	router := newTestRouter(&stubEngine{err: training.ErrAlreadyOnTrainingMode})
	req := httptest.NewRequest(http.MethodPost, "/placements/42/training-mode",
		strings.NewReader(`{"target_mode":"school_led"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestSwitchMentorEndpoint(t *testing.T) {
	engine := &stubEngine{}
	router := newTestRouter(engine)

	req := httptest.NewRequest(http.MethodPost, "/placements/42/mentor",
		strings.NewReader(`{"mentor_placement_id":9,"lead_provider_id":100}`))
	req.Header.Set("X-Lead-Provider-Id", "100")
	req.Header.Set("X-Lead-Provider-Name", "Ambition Institute")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, int64(42), engine.mentorCmd.ECTPlacementID)
	assert.Equal(t, int64(9), engine.mentorCmd.MentorPlacementID)
	assert.Equal(t, audit.LeadProviderAPIAuthor{LeadProviderID: 100, Name: "Ambition Institute"}, engine.mentorCmd.Author)
}

func TestChangeLeadProviderNotProviderLed(t *testing.T) {
	router := newTestRouter(&stubEngine{err: training.ErrSchoolLedTrainingProgramme})
	req := httptest.NewRequest(http.MethodPost, "/placements/42/lead-provider",
		strings.NewReader(`{"old_lead_provider_id":100,"new_lead_provider_id":101}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestDeferEndpointAllowsEmptyBody(t *testing.T) {
	engine := &stubEngine{}
	router := newTestRouter(engine)

	req := httptest.NewRequest(http.MethodPost, "/placements/42/resume", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, int64(42), engine.deferralCmd.PlacementID)
}

func TestDeferEndpointCarriesReason(t *testing.T) {
	engine := &stubEngine{}
	router := newTestRouter(engine)

	req := httptest.NewRequest(http.MethodPost, "/placements/42/defer",
		strings.NewReader(`{"reason":"parental leave"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "parental leave", engine.deferralCmd.Reason)
}

func TestPlacementIDMustBeNumeric(t *testing.T) {
	router := newTestRouter(&stubEngine{})
	req := httptest.NewRequest(http.MethodPost, "/placements/abc/defer", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
