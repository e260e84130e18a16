package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"riverdesk/internal/desk"
	"riverdesk/internal/qrcode"
)

// ItemQR handles GET /api/qr/items/:id. ?format=png returns the rendered
// code instead of the payload text.
func (h *Handler) ItemQR(c *gin.Context) {
	item, err := h.equipment.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	payload, err := desk.ComposeItemPayload(item)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.writeQR(c, payload, "application/json; charset=utf-8")
}

// FolderQR handles GET /api/qr/folders/:name.
func (h *Handler) FolderQR(c *gin.Context) {
	name := c.Param("name")
	items, err := h.folders.Contents(c.Request.Context(), name)
	if err != nil {
		h.fail(c, err)
		return
	}
	payload := desk.ComposeFolderPayload(name, items, h.clock.Now())
	h.writeQR(c, payload, "text/plain; charset=utf-8")
}

func (h *Handler) writeQR(c *gin.Context, payload, contentType string) {
	if c.Query("format") != "png" {
		c.Data(http.StatusOK, contentType, []byte(payload))
		return
	}

	size := qrcode.DefaultSize
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 2048 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "size must be between 1 and 2048"})
			return
		}
		size = n
	}
	png, err := qrcode.RenderPNG(payload, size)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
