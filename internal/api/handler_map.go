package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"riverdesk/internal/desk"
	"riverdesk/internal/mapsync"
)

type markersResponse struct {
	Markers   []mapsync.Marker   `json:"markers"`
	Polylines []mapsync.Polyline `json:"polylines"`
	Animated  []string           `json:"animated"`
}

// Markers handles GET /api/markers. It returns the desired overlay for the
// current data so a map client can reconcile against it. Query parameters
// mirror the map filter: types (comma separated), boats, hideEquipment.
func (h *Handler) Markers(c *gin.Context) {
	ctx := c.Request.Context()
	items, err := h.equipment.GetAll(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	spots, err := h.spots.List(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}

	var filter mapsync.Filter
	if raw := c.Query("types"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			filter.Types = append(filter.Types, desk.AdSpotType(strings.ToUpper(strings.TrimSpace(t))))
		}
	}
	filter.BoatsOnly = c.Query("boats") == "true"
	filter.HideEquipment = c.Query("hideEquipment") == "true"

	plan := mapsync.Build(mapsync.View{Equipment: items, Spots: spots, Filter: filter})

	resp := markersResponse{
		Markers:   make([]mapsync.Marker, 0, len(plan.Markers)),
		Polylines: make([]mapsync.Polyline, 0, len(plan.Polylines)),
		Animated:  make([]string, 0, len(plan.Animated)),
	}
	for _, m := range plan.Markers {
		resp.Markers = append(resp.Markers, m)
	}
	for _, p := range plan.Polylines {
		resp.Polylines = append(resp.Polylines, p)
	}
	for _, s := range plan.Animated {
		resp.Animated = append(resp.Animated, s.ID)
	}
	sort.Slice(resp.Markers, func(i, j int) bool { return resp.Markers[i].ID < resp.Markers[j].ID })
	sort.Slice(resp.Polylines, func(i, j int) bool { return resp.Polylines[i].ID < resp.Polylines[j].ID })

	c.JSON(http.StatusOK, resp)
}

// LiveMarkers handles GET /api/markers/live. It returns what the server-side
// synchronizer currently draws, so boat markers move between polls. It is
// never cached.
func (h *Handler) LiveMarkers(c *gin.Context) {
	if h.live == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "live map is not running"})
		return
	}
	c.JSON(http.StatusOK, h.live.Snapshot())
}
