package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"riverdesk/internal/desk"
)

// PressDelete handles POST /api/equipment/:id/hold. It arms a long-press
// delete for the item; the item is removed unless ReleaseDelete arrives
// within desk.LongPressDuration. Pressing an armed item is a no-op.
func (h *Handler) PressDelete(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.equipment.Get(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	h.mu.Lock()
	g, ok := h.holds[id]
	if !ok {
		var gesture *desk.DeleteGesture
		gesture = desk.NewDeleteGesture(h.equipment, h.sched, id, func(error) {
			h.forgetHold(id, gesture)
		})
		g = gesture
		h.holds[id] = g
	}
	h.mu.Unlock()

	g.Press()
	c.JSON(http.StatusAccepted, gin.H{"id": id, "armed": true, "holdMs": desk.LongPressDuration.Milliseconds()})
}

// ReleaseDelete handles DELETE /api/equipment/:id/hold. cancelled is false
// when nothing was pending, including when the delete already happened.
func (h *Handler) ReleaseDelete(c *gin.Context) {
	id := c.Param("id")

	h.mu.Lock()
	g, ok := h.holds[id]
	delete(h.holds, id)
	h.mu.Unlock()

	cancelled := ok && g.Release()
	c.JSON(http.StatusOK, gin.H{"id": id, "cancelled": cancelled})
}

// forgetHold drops g from the pending holds unless a newer gesture for id
// has replaced it.
func (h *Handler) forgetHold(id string, g *desk.DeleteGesture) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.holds[id] == g {
		delete(h.holds, id)
	}
}
