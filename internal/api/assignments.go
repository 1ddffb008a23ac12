package api

import (
	"github.com/gin-gonic/gin"

	"staffing-api/internal/common/validation"
	"staffing-api/internal/models"
)

type assignmentHandler struct {
	*responder
	svc AssignmentService
}

func (h *assignmentHandler) list(c *gin.Context) {
	res, err := bindQuery(c, validation.AssignmentSearch)
	if err != nil {
		h.fail(c, err)
		return
	}
	var f models.AssignmentFilter
	if err := decode(res, &f); err != nil {
		h.fail(c, err)
		return
	}

	out, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, out)
}

func (h *assignmentHandler) listByCandidate(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	out, err := h.svc.ListByCandidate(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, out)
}

func (h *assignmentHandler) listByJobOrder(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	out, err := h.svc.ListByJobOrder(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, out)
}

func (h *assignmentHandler) create(c *gin.Context) {
	res, err := bindBody(c, validation.AssignmentCreate)
	if err != nil {
		h.fail(c, err)
		return
	}
	var in models.AssignmentInput
	if err := decode(res, &in); err != nil {
		h.fail(c, err)
		return
	}

	out, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	created(c, "Assignment created successfully", out)
}

func (h *assignmentHandler) updateStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	res, err := bindBody(c, validation.AssignmentUpdate)
	if err != nil {
		h.fail(c, err)
		return
	}

	out, err := h.svc.UpdateStatus(c.Request.Context(), id, patchOf(res))
	if err != nil {
		h.fail(c, err)
		return
	}
	okMessage(c, "Assignment status updated successfully", out)
}
