package api

import (
	"github.com/gin-gonic/gin"

	"staffing-api/internal/common/validation"
	"staffing-api/internal/models"
)

type clientHandler struct {
	*responder
	svc ClientService
}

func (h *clientHandler) list(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, out)
}

func (h *clientHandler) stats(c *gin.Context) {
	out, err := h.svc.ListWithStats(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, out)
}

func (h *clientHandler) get(c *gin.Context) {
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

func (h *clientHandler) create(c *gin.Context) {
	res, err := bindBody(c, validation.ClientCreate)
	if err != nil {
		h.fail(c, err)
		return
	}
	var in models.ClientInput
	if err := decode(res, &in); err != nil {
		h.fail(c, err)
		return
	}

	out, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	created(c, "Client created successfully", out)
}

func (h *clientHandler) update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	res, err := bindBody(c, validation.ClientUpdate)
	if err != nil {
		h.fail(c, err)
		return
	}

	out, err := h.svc.Update(c.Request.Context(), id, patchOf(res))
	if err != nil {
		h.fail(c, err)
		return
	}
	okMessage(c, "Client updated successfully", out)
}
