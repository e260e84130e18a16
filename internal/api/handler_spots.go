package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"riverdesk/internal/desk"
	"riverdesk/internal/mapsync"
)

// ListSpots handles GET /api/spots.
func (h *Handler) ListSpots(c *gin.Context) {
	spots, err := h.spots.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, spots)
}

type routeRequest struct {
	Route []desk.LatLng `json:"route"`
}

// SaveSpotRoute handles PUT /api/spots/:id/route. Only boats carry routes.
// The posted points replace the stored route through a RouteEditor draft,
// the same path the map's click-to-add editing takes.
func (h *Handler) SaveSpotRoute(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, fmt.Errorf("invalid request: %w", err))
		return
	}
	for i, p := range req.Route {
		if !p.Valid() {
			badRequest(c, fmt.Errorf("route point %d: invalid coordinates %v,%v", i, p.Lat, p.Lng))
			return
		}
	}

	ctx := c.Request.Context()
	spots, err := h.spots.List(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	id := c.Param("id")
	for _, s := range spots {
		if s.ID != id {
			continue
		}
		if !s.IsBoat {
			badRequest(c, fmt.Errorf("ad spot %s is not a boat", id))
			return
		}
		editor := mapsync.NewRouteEditor(h.spots)
		s.Route = nil
		editor.Begin(s)
		for _, p := range req.Route {
			if err := editor.ClickMap(p); err != nil {
				badRequest(c, err)
				return
			}
		}
		saved, err := editor.Save(ctx)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, saved)
		return
	}
	h.fail(c, &desk.NotFoundError{Kind: "ad spot", ID: id})
}
