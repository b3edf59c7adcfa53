package audithttp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/induct-hq/induct/internal/audit"
)

type stubTimelineService struct {
	result      audit.Result
	lastFilters audit.TimelineFilters
}

func (s *stubTimelineService) Timeline(ctx context.Context, filters audit.TimelineFilters) (audit.Result, error) {
	s.lastFilters = filters
	return s.result, nil
}

func TestTimelineParsesFilters(t *testing.T) {
	svc := &stubTimelineService{result: audit.Result{Paging: audit.PagingInfo{Page: 2, PageSize: 10}}}
	h := NewHandler(nil, svc)

	req := httptest.NewRequest(http.MethodGet,
		"/audit?from=2024-09-01T00:00:00Z&type=teacher_registered_as_ect&ref=teacher&ref_id=10&page=2&page_size=10", nil)
	rr := httptest.NewRecorder()
	h.Timeline(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "teacher_registered_as_ect", svc.lastFilters.Type)
	assert.Equal(t, "teacher", svc.lastFilters.RefName)
	assert.Equal(t, int64(10), svc.lastFilters.RefID)
	assert.Equal(t, 2, svc.lastFilters.Page)
	assert.Equal(t, time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), svc.lastFilters.From.UTC())

	var body audit.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Paging.Page)
}

func TestTimelineRejectsBadDate(t *testing.T) {
	h := NewHandler(nil, &stubTimelineService{})
	req := httptest.NewRequest(http.MethodGet, "/audit?from=yesterday", nil)
	rr := httptest.NewRecorder()
	h.Timeline(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
