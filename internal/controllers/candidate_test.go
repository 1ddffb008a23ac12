package controllers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "staffing-api/internal/common/errors"
	"staffing-api/internal/common/logger"
	"staffing-api/internal/common/querybuilder"
	"staffing-api/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func newCandidateController(t *testing.T) (*CandidateController, *store, *recordingRecorder) {
	s := newStore()
	rec := &recordingRecorder{}
	return NewCandidateController(fakeCandidates{s}, rec, logger.NewTestLogger(t)), s, rec
}

func assertStdError(t *testing.T, err error, code apperrors.ErrorCode, message string) {
	t.Helper()
	stdErr, ok := apperrors.As(err)
	require.True(t, ok, "expected StandardError, got %v", err)
	assert.Equal(t, code, stdErr.Code)
	if message != "" {
		assert.Equal(t, message, stdErr.Message)
	}
}

func candidateInput(email string) models.CandidateInput {
	return models.CandidateInput{FirstName: "Ada", LastName: "Lovelace", Email: email}
}

// ==========================
// Create
// ==========================

func TestCandidateController_Create_NormalizesEmailAndDefaultsStatus(t *testing.T) {
	ctrl, _, rec := newCandidateController(t)

	c, err := ctrl.Create(context.Background(), candidateInput("Ada@X.com"))

	require.NoError(t, err)
	assert.Equal(t, "ada@x.com", c.Email)
	assert.Equal(t, models.CandidateStatusActive, c.Status)
	assert.Equal(t, []string{"candidate"}, rec.created)
}

func TestCandidateController_Create_DuplicateEmailIgnoresCase(t *testing.T) {
	ctrl, _, _ := newCandidateController(t)
	ctx := context.Background()

	_, err := ctrl.Create(ctx, candidateInput("a@x.com"))
	require.NoError(t, err)

	_, err = ctrl.Create(ctx, candidateInput("A@X.COM"))
	assertStdError(t, err, apperrors.ErrCodeConflict, "A candidate with this email already exists")
}

// ==========================
// List
// ==========================

func TestCandidateController_List_Paginates(t *testing.T) {
	ctrl, _, _ := newCandidateController(t)
	ctx := context.Background()
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		_, err := ctrl.Create(ctx, candidateInput(email))
		require.NoError(t, err)
	}

	out, page, err := ctrl.List(ctx, models.CandidateFilter{Page: querybuilder.Page{Page: 2, Limit: 2}})

	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, querybuilder.Pagination{Page: 2, Limit: 2, Total: 3, Pages: 2}, page)
}

func TestCandidateController_List_StoreFailure(t *testing.T) {
	ctrl, s, _ := newCandidateController(t)
	s.failWith = errBoom

	_, _, err := ctrl.List(context.Background(), models.CandidateFilter{Page: querybuilder.Page{Page: 1, Limit: 10}})

	assertStdError(t, err, apperrors.ErrCodePersistenceFailed, "Internal server error")
	assert.ErrorIs(t, err, errBoom)
}

// ==========================
// Update
// ==========================

func TestCandidateController_Update_KeepsOmittedFields(t *testing.T) {
	ctrl, _, _ := newCandidateController(t)
	ctx := context.Background()

	in := candidateInput("a@x.com")
	in.Skills = strPtr("Go, SQL")
	created, err := ctrl.Create(ctx, in)
	require.NoError(t, err)

	updated, err := ctrl.Update(ctx, created.ID, querybuilder.NewPatch().Set("last_name", "Byron"))

	require.NoError(t, err)
	assert.Equal(t, "Byron", updated.LastName)
	assert.Equal(t, "Ada", updated.FirstName)
	require.NotNil(t, updated.Skills)
	assert.Equal(t, "Go, SQL", *updated.Skills)
}

func TestCandidateController_Update_Rules(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		id      int64
		patch   *querybuilder.Patch
		code    apperrors.ErrorCode
		message string
	}{
		{"missing candidate", 999, querybuilder.NewPatch().Set("last_name", "X"), apperrors.ErrCodeNotFound, "Candidate not found"},
		{"email taken", 1, querybuilder.NewPatch().Set("email", "B@x.com"), apperrors.ErrCodeConflict, "A candidate with this email already exists"},
		{"empty patch", 1, querybuilder.NewPatch(), apperrors.ErrCodeBadRequest, "No fields provided for update"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, _, _ := newCandidateController(t)
			_, err := ctrl.Create(ctx, candidateInput("a@x.com"))
			require.NoError(t, err)
			_, err = ctrl.Create(ctx, candidateInput("b@x.com"))
			require.NoError(t, err)

			_, err = ctrl.Update(ctx, tt.id, tt.patch)
			assertStdError(t, err, tt.code, tt.message)
		})
	}
}

func TestCandidateController_Update_OwnEmailIsNotAConflict(t *testing.T) {
	ctrl, _, _ := newCandidateController(t)
	ctx := context.Background()
	created, err := ctrl.Create(ctx, candidateInput("a@x.com"))
	require.NoError(t, err)

	updated, err := ctrl.Update(ctx, created.ID, querybuilder.NewPatch().Set("email", "A@X.com"))

	require.NoError(t, err)
	assert.Equal(t, "a@x.com", updated.Email)
}

// ==========================
// Delete
// ==========================

func TestCandidateController_Delete_BlockedByAssignments(t *testing.T) {
	ctrl, s, _ := newCandidateController(t)
	ctx := context.Background()
	created, err := ctrl.Create(ctx, candidateInput("a@x.com"))
	require.NoError(t, err)
	s.jobOrders[50] = &models.JobOrder{ID: 50, Title: "Backend Engineer", Status: "open"}
	s.assignments[60] = &models.Assignment{ID: 60, CandidateID: created.ID, JobOrderID: 50, Status: "applied"}

	err = ctrl.Delete(ctx, created.ID)

	assertStdError(t, err, apperrors.ErrCodeInvalidState,
		"Cannot delete candidate with existing assignments. Remove assignments first.")
	assert.Equal(t, 400, apperrors.HTTPStatus(apperrors.ErrCodeInvalidState))
	assert.Contains(t, s.candidates, created.ID)
}

func TestCandidateController_Delete(t *testing.T) {
	ctrl, s, _ := newCandidateController(t)
	ctx := context.Background()
	created, err := ctrl.Create(ctx, candidateInput("a@x.com"))
	require.NoError(t, err)

	require.NoError(t, ctrl.Delete(ctx, created.ID))
	assert.NotContains(t, s.candidates, created.ID)

	err = ctrl.Delete(ctx, created.ID)
	assertStdError(t, err, apperrors.ErrCodeNotFound, "Candidate not found")
}

// ==========================
// Skill Search and Bulk Status
// ==========================

func TestCandidateController_SearchBySkill(t *testing.T) {
	ctrl, _, _ := newCandidateController(t)
	ctx := context.Background()

	for _, c := range []struct {
		email  string
		skills string
		exp    float64
	}{
		{"a@x.com", "Java", 2},
		{"b@x.com", "Java, JavaScript", 1},
		{"c@x.com", "java", 7},
	} {
		in := candidateInput(c.email)
		in.Skills = strPtr(c.skills)
		in.ExperienceYears = floatPtr(c.exp)
		_, err := ctrl.Create(ctx, in)
		require.NoError(t, err)
	}

	out, err := ctrl.SearchBySkill(ctx, models.SkillSearch{Skills: "Java", MaxExperience: 50})

	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "b@x.com", out[0].Email)
	assert.Equal(t, 2.0, out[0].SkillMatchScore)
	assert.Equal(t, "c@x.com", out[1].Email)
	assert.Equal(t, "a@x.com", out[2].Email)
}

func TestCandidateController_SearchBySkill_RequiresKeyword(t *testing.T) {
	ctrl, _, _ := newCandidateController(t)

	_, err := ctrl.SearchBySkill(context.Background(), models.SkillSearch{})
	assertStdError(t, err, apperrors.ErrCodeBadRequest, "Skills parameter is required for search")
}

func TestCandidateController_BulkUpdateStatus(t *testing.T) {
	ctrl, s, _ := newCandidateController(t)
	ctx := context.Background()
	created, err := ctrl.Create(ctx, candidateInput("a@x.com"))
	require.NoError(t, err)

	res, err := ctrl.BulkUpdateStatus(ctx, models.BulkStatusInput{CandidateIDs: []int64{created.ID, 404}, Status: "inactive"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.AffectedRows)
	assert.Equal(t, []int64{created.ID}, res.UpdatedIDs)
	assert.Equal(t, "inactive", s.candidates[created.ID].Status)

	_, err = ctrl.BulkUpdateStatus(ctx, models.BulkStatusInput{CandidateIDs: []int64{404}, Status: "inactive"})
	assertStdError(t, err, apperrors.ErrCodeNotFound, "No candidates found with the provided IDs")
}
