package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"staffing-api/internal/common/validation"
	"staffing-api/internal/models"
)

type candidateHandler struct {
	*responder
	svc CandidateService
}

func (h *candidateHandler) list(c *gin.Context) {
	res, err := bindQuery(c, validation.CandidateSearch)
	if err != nil {
		h.fail(c, err)
		return
	}
	var f models.CandidateFilter
	if err := decode(res, &f); err != nil {
		h.fail(c, err)
		return
	}

	out, page, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": out, "pagination": page})
}

func (h *candidateHandler) get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	d, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, d)
}

func (h *candidateHandler) create(c *gin.Context) {
	res, err := bindBody(c, validation.CandidateCreate)
	if err != nil {
		h.fail(c, err)
		return
	}
	var in models.CandidateInput
	if err := decode(res, &in); err != nil {
		h.fail(c, err)
		return
	}

	out, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	created(c, "Candidate created successfully", out)
}

func (h *candidateHandler) update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	res, err := bindBody(c, validation.CandidateUpdate)
	if err != nil {
		h.fail(c, err)
		return
	}

	out, err := h.svc.Update(c.Request.Context(), id, patchOf(res))
	if err != nil {
		h.fail(c, err)
		return
	}
	okMessage(c, "Candidate updated successfully", out)
}

func (h *candidateHandler) delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	okMessage(c, "Candidate deleted successfully", nil)
}

func (h *candidateHandler) searchBySkill(c *gin.Context) {
	res, err := bindQuery(c, validation.CandidateSkillSearch)
	if err != nil {
		h.fail(c, err)
		return
	}
	var s models.SkillSearch
	if err := decode(res, &s); err != nil {
		h.fail(c, err)
		return
	}

	out, err := h.svc.SearchBySkill(c.Request.Context(), s)
	if err != nil {
		h.fail(c, err)
		return
	}
	okCount(c, out)
}

func (h *candidateHandler) statistics(c *gin.Context) {
	stats, err := h.svc.Statistics(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, stats)
}

func (h *candidateHandler) countByStatus(c *gin.Context) {
	counts, err := h.svc.CountByStatus(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, counts)
}

func (h *candidateHandler) bulkStatus(c *gin.Context) {
	res, err := bindBody(c, validation.CandidateBulkStatus)
	if err != nil {
		h.fail(c, err)
		return
	}
	var in models.BulkStatusInput
	if err := decode(res, &in); err != nil {
		h.fail(c, err)
		return
	}

	out, err := h.svc.BulkUpdateStatus(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       fmt.Sprintf("Status updated for %d candidates", out.AffectedRows),
		"affected_rows": out.AffectedRows,
		"updated_ids":   out.UpdatedIDs,
	})
}
