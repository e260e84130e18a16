package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"riverdesk/internal/desk"
)

// ListSims handles GET /api/sims.
func (h *Handler) ListSims(c *gin.Context) {
	cards, err := h.sims.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if cards == nil {
		cards = []desk.SimCard{}
	}
	c.JSON(http.StatusOK, cards)
}

// CreateSim handles POST /api/sims.
func (h *Handler) CreateSim(c *gin.Context) {
	var card desk.SimCard
	if err := c.ShouldBindJSON(&card); err != nil {
		badRequest(c, fmt.Errorf("invalid request: %w", err))
		return
	}
	if card.PhoneNumber == "" {
		badRequest(c, fmt.Errorf("phone number is required"))
		return
	}
	if card.Status != "" && !card.Status.Valid() {
		badRequest(c, fmt.Errorf("unknown sim card status: %q", card.Status))
		return
	}
	created, err := h.sims.Create(c.Request.Context(), card)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// SetSimStatus handles PUT /api/sims/:id/status.
func (h *Handler) SetSimStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, fmt.Errorf("invalid request: %w", err))
		return
	}
	status, err := desk.ParseSimCardStatus(req.Status)
	if err != nil {
		badRequest(c, err)
		return
	}
	card, err := h.sims.SetStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// DeleteSim handles DELETE /api/sims/:id.
func (h *Handler) DeleteSim(c *gin.Context) {
	if err := h.sims.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
