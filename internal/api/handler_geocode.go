package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"riverdesk/internal/desk"
)

// GeocodeSearch handles GET /api/geocode/search?q=.
func (h *Handler) GeocodeSearch(c *gin.Context) {
	if h.geocoder == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "geocoding is not configured"})
		return
	}
	q := c.Query("q")
	if q == "" {
		badRequest(c, fmt.Errorf("query parameter q is required"))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	results, err := h.geocoder.Search(c.Request.Context(), q, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// GeocodeReverse handles GET /api/geocode/reverse?lat=&lng=.
func (h *Handler) GeocodeReverse(c *gin.Context) {
	if h.geocoder == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "geocoding is not configured"})
		return
	}
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		badRequest(c, fmt.Errorf("lat and lng must be numbers"))
		return
	}

	pos := desk.LatLng{Lat: lat, Lng: lng}
	if !pos.Valid() {
		badRequest(c, fmt.Errorf("invalid coordinates %v,%v", lat, lng))
		return
	}

	result, err := h.geocoder.Reverse(c.Request.Context(), pos)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
