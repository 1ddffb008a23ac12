package api

import (
	"github.com/gin-gonic/gin"

	"staffing-api/internal/common/validation"
	"staffing-api/internal/models"
)

type jobOrderHandler struct {
	*responder
	svc JobOrderService
}

func (h *jobOrderHandler) list(c *gin.Context) {
	res, err := bindQuery(c, validation.JobOrderSearch)
	if err != nil {
		h.fail(c, err)
		return
	}
	var f models.JobOrderFilter
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

func (h *jobOrderHandler) listOpen(c *gin.Context) {
	out, err := h.svc.ListOpen(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, out)
}

func (h *jobOrderHandler) get(c *gin.Context) {
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

func (h *jobOrderHandler) create(c *gin.Context) {
	res, err := bindBody(c, validation.JobOrderCreate)
	if err != nil {
		h.fail(c, err)
		return
	}
	var in models.JobOrderInput
	if err := decode(res, &in); err != nil {
		h.fail(c, err)
		return
	}

	out, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	created(c, "Job order created successfully", out)
}

func (h *jobOrderHandler) update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	res, err := bindBody(c, validation.JobOrderUpdate)
	if err != nil {
		h.fail(c, err)
		return
	}
	var in models.JobOrderInput
	if err := decode(res, &in); err != nil {
		h.fail(c, err)
		return
	}

	out, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	okMessage(c, "Job order updated successfully", out)
}
