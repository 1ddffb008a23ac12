package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffing-api/internal/common/config"
	apperrors "staffing-api/internal/common/errors"
	"staffing-api/internal/common/logger"
	"staffing-api/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

type testServer struct {
	engine      *gin.Engine
	candidates  *fakeCandidates
	jobOrders   *fakeJobOrders
	assignments *fakeAssignments
}

func newTestServer(t *testing.T, env string, db Pinger, cache Pinger) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{
		candidates:  &fakeCandidates{},
		jobOrders:   &fakeJobOrders{},
		assignments: &fakeAssignments{},
	}
	ts.engine = NewRouter(Deps{
		App:         config.AppConfig{Name: "Staffing API", Version: "1.0.0", Environment: env},
		Server:      config.ServerConfig{BasePath: "/api"},
		Logger:      logger.NewTestLogger(t),
		Candidates:  ts.candidates,
		Clients:     &fakeClients{},
		JobOrders:   ts.jobOrders,
		Assignments: ts.assignments,
		Dashboard:   fakeDashboard{},
		Database:    db,
		Cache:       cache,
	})
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.engine.ServeHTTP(rec, req)

	var out map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

// ==========================
// System Routes
// ==========================

func TestHealth(t *testing.T) {
	tests := []struct {
		name     string
		db       Pinger
		cache    Pinger
		status   int
		health   string
		database string
	}{
		{"healthy", fakePinger{}, nil, http.StatusOK, "OK", "Connected"},
		{"database down", fakePinger{err: errStore}, nil, http.StatusServiceUnavailable, "Degraded", "Disconnected"},
		{"cache down", fakePinger{}, fakePinger{err: errStore}, http.StatusOK, "Degraded", "Connected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, "test", tt.db, tt.cache)

			rec, body := ts.do(t, http.MethodGet, "/health", nil)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.health, body["status"])
			assert.Equal(t, tt.database, body["database"])
			assert.Equal(t, "Running", body["server"])
			assert.Equal(t, "test", body["environment"])
		})
	}
}

func TestRouteNotFound(t *testing.T) {
	ts := newTestServer(t, "test", fakePinger{}, nil)

	rec, body := ts.do(t, http.MethodGet, "/api/unknown", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Route not found", body["message"])
	assert.Equal(t, "/api/unknown", body["path"])
	assert.Equal(t, "GET", body["method"])
}

func TestRequestIDIsPropagated(t *testing.T) {
	ts := newTestServer(t, "test", fakePinger{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/info", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	ts.engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))

	rec, _ = ts.do(t, http.MethodGet, "/", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, "test", fakePinger{}, nil)
	ts.do(t, http.MethodGet, "/api/info", nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	ts.engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestPanicIsRecovered(t *testing.T) {
	ts := newTestServer(t, "production", fakePinger{}, nil)

	rec, body := ts.do(t, http.MethodGet, "/api/dashboard/recent-activity", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", body["message"])
	assert.Equal(t, "Something went wrong", body["error"])
}

// ==========================
// Validation Envelopes
// ==========================

func TestValidationFailureEnvelope(t *testing.T) {
	ts := newTestServer(t, "test", fakePinger{}, nil)

	rec, body := ts.do(t, http.MethodPost, "/api/candidates", map[string]interface{}{"first_name": "A", "email": "nope"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Validation failed", body["error"])
	assert.Equal(t, "Please check your input data", body["message"])
	details, ok := body["details"].([]interface{})
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(details), 3)
	first := details[0].(map[string]interface{})
	assert.Contains(t, first, "field")
	assert.Contains(t, first, "message")
	assert.Contains(t, first, "type")
}

func TestInvalidQueryEnvelope(t *testing.T) {
	ts := newTestServer(t, "test", fakePinger{}, nil)

	rec, body := ts.do(t, http.MethodGet, "/api/candidates?limit=500", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid query parameters", body["error"])
	assert.Equal(t, "Please check your search/filter parameters", body["message"])
}

func TestInvalidParamsEnvelope(t *testing.T) {
	ts := newTestServer(t, "test", fakePinger{}, nil)

	for _, path := range []string{"/api/candidates/abc", "/api/candidates/99999999999999999999"} {
		rec, body := ts.do(t, http.MethodGet, path, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Equal(t, "Invalid parameters", body["error"], path)
		assert.Equal(t, "Please check your URL parameters", body["message"], path)
	}
}

func TestMalformedJSON(t *testing.T) {
	ts := newTestServer(t, "test", fakePinger{}, nil)

	rec, body := ts.do(t, http.MethodPost, "/api/clients", `{"company_name":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid JSON payload", body["error"])
}

// ==========================
// Candidate Routes
// ==========================

func TestCandidates_ListReturnsPagination(t *testing.T) {
	ts := newTestServer(t, "test", fakePinger{}, nil)

	rec, body := ts.do(t, http.MethodGet, "/api/candidates?page=2&limit=10&status=active&experience_min=1.5", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, ts.candidates.listFilter.Page.Page)
	assert.Equal(t, "active", ts.candidates.listFilter.Status)
	require.NotNil(t, ts.candidates.listFilter.ExperienceMin)
	assert.Equal(t, 1.5, *ts.candidates.listFilter.ExperienceMin)
	assert.Equal(t, map[string]interface{}{
		"page": float64(2), "limit": float64(10), "total": float64(21), "pages": float64(3),
	}, body["pagination"])
}

func TestCandidates_ListDefaults(t *testing.T) {
	ts := newTestServer(t, "test", fakePinger{}, nil)

	rec, _ := ts.do(t, http.MethodGet, "/api/candidates", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, ts.candidates.listFilter.Page.Page)
	assert.Equal(t, 10, ts.candidates.listFilter.Page.Limit)
}

func TestCandidates_Create(t *testing.T) {
	ts := newTestServer(t, "test", fakePinger{}, nil)

	rec, body := ts.do(t, http.MethodPost, "/api/candidates", map[string]interface{}{
		"first_name": "  Ada ",
		"last_name":  "Lovelace",
		"email":      "ada@x.com",
		"unknown":    "dropped",
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Candidate created successfully", body["message"])
	assert.Equal(t, "Ada", ts.candidates.createIn.FirstName)
	assert.Equal(t, models.CandidateStatusActive, ts.candidates.createIn.Status)
}

func TestCandidates_CreateConflict(t *testing.T) {
	ts := newTestServer(t, "test", fakePinger{}, nil)
	ts.candidates.err = apperrors.NewConflictError("A candidate with this email already exists")

	rec, body := ts.do(t, http.MethodPost, "/api/candidates", map[string]interface{}{
		"first_name": "Ada", "last_name": "Lovelace", "email": "ada@x.com",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, map[string]interface{}{"success": false, "error": "A candidate with this email already exists"}, body)
}

func TestCandidates_UpdateBuildsPatchFromPresentKeys(t *testing.T) {
	ts := newTestServer(t, "test", fakePinger{}, nil)

	rec, body := ts.do(t, http.MethodPut, "/api/candidates/5", map[string]interface{}{"phone": "", "last_name": "Byron"})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Candidate updated successfully", body["message"])
	assert.Equal(t, []string{"last_name", "phone"}, ts.candidates.patch.Columns())
	v, ok := ts.candidates.patch.Get("phone")
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestCandidates_UpdateEmptyBody(t *testing.T) {
	ts := newTestServer(t, "test", fakePinger{}, nil)

	rec, body := ts.do(t, http.MethodPut, "/api/candidates/5", map[string]interface{}{"unknown": 1})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed", body["error"])
	assert.Nil(t, ts.candidates.patch)
}

func TestCandidates_DeleteBlocked(t *testing.T) {
	ts := newTestServer(t, "test", fakePinger{}, nil)
	ts.candidates.err = apperrors.NewStateError("Cannot delete candidate with existing assignments. Remove assignments first.")

	rec, body := ts.do(t, http.MethodDelete, "/api/candidates/5", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cannot delete candidate with existing assignments. Remove assignments first.", body["error"])
}

func TestCandidates_SkillSearchCount(t *testing.T) {
	ts := newTestServer(t, "test", fakePinger{}, nil)

	rec, body := ts.do(t, http.MethodGet, "/api/candidates/search/skills?skills=Java", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), body["count"])
}

func TestCandidates_BulkStatus(t *testing.T) {
	ts := newTestServer(t, "test", fakePinger{}, nil)

	rec, body := ts.do(t, http.MethodPost, "/api/candidates/bulk-status", map[string]interface{}{
		"candidate_ids": []int{1, 2},
		"status":        "inactive",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []int64{1, 2}, ts.candidates.bulkIn.CandidateIDs)
	assert.Equal(t, "Status updated for 2 candidates", body["message"])
	assert.Equal(t, float64(2), body["affected_rows"])
	assert.Equal(t, []interface{}{float64(1), float64(2)}, body["updated_ids"])
}

func TestCandidates_StoreFailureHidesDetails(t *testing.T) {
	tests := []struct {
		env    string
		detail string
	}{
		{"production", "Something went wrong"},
		{"development", "operation: list candidates, error: pq: connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			ts := newTestServer(t, tt.env, fakePinger{}, nil)
			ts.candidates.err = apperrors.NewPersistenceError("list candidates", errStore)

			rec, body := ts.do(t, http.MethodGet, "/api/candidates", nil)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, "Internal server error", body["message"])
			assert.Equal(t, tt.detail, body["error"])
		})
	}
}

// ==========================
// Job Order and Assignment Routes
// ==========================

func TestJobOrders_UpdateRequiresEveryField(t *testing.T) {
	ts := newTestServer(t, "test", fakePinger{}, nil)

	rec, _ := ts.do(t, http.MethodPut, "/api/job-orders/4", map[string]interface{}{"title": "Backend Engineer", "status": "open"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body := ts.do(t, http.MethodPut, "/api/job-orders/4", map[string]interface{}{
		"title": "Backend Engineer", "description": nil, "required_skills": "Go", "experience_required": nil,
		"status": "open", "salary_range": "", "location": "Remote",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Job order updated successfully", body["message"])
	assert.Nil(t, ts.jobOrders.replaced.SalaryRange)
	require.NotNil(t, ts.jobOrders.replaced.Location)
	assert.Equal(t, "Remote", *ts.jobOrders.replaced.Location)
}

func TestJobOrders_GetNotFound(t *testing.T) {
	ts := newTestServer(t, "test", fakePinger{}, nil)

	rec, body := ts.do(t, http.MethodGet, "/api/job-orders/4", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Job order not found", body["error"])
}

func TestAssignments_CreateDefaultsStatus(t *testing.T) {
	ts := newTestServer(t, "test", fakePinger{}, nil)

	rec, body := ts.do(t, http.MethodPost, "/api/assignments", map[string]interface{}{
		"candidate_id": 1, "job_order_id": "2", "assigned_date": "2024-01-15",
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Assignment created successfully", body["message"])
	assert.Equal(t, int64(2), ts.assignments.createIn.JobOrderID)
	assert.Equal(t, models.AssignmentStatusApplied, ts.assignments.createIn.Status)
	require.NotNil(t, ts.assignments.createIn.AssignedDate)
	assert.Equal(t, 2024, ts.assignments.createIn.AssignedDate.Year())
}

func TestAssignments_UpdateStatus(t *testing.T) {
	ts := newTestServer(t, "test", fakePinger{}, nil)

	rec, body := ts.do(t, http.MethodPut, "/api/assignments/9/status", map[string]interface{}{"status": "placed"})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Assignment status updated successfully", body["message"])
	assert.Equal(t, []string{"status"}, ts.assignments.patch.Columns())
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "placed", data["status"])
}

func TestAssignments_ListByCandidate(t *testing.T) {
	ts := newTestServer(t, "test", fakePinger{}, nil)

	rec, body := ts.do(t, http.MethodGet, "/api/assignments/candidate/12", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, float64(12), data[0].(map[string]interface{})["candidate_id"])
}

func TestDashboard_Stats(t *testing.T) {
	ts := newTestServer(t, "test", fakePinger{}, nil)

	rec, body := ts.do(t, http.MethodGet, "/api/dashboard/stats", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, []interface{}{map[string]interface{}{"skill": "Go", "count": float64(2)}}, data["topSkills"])
}

func TestClients_ListIsEmptyArray(t *testing.T) {
	ts := newTestServer(t, "test", fakePinger{}, nil)

	rec, _ := ts.do(t, http.MethodGet, "/api/clients", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())
}
