package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"riverdesk/internal/desk"
)

// ListEquipment handles GET /api/equipment. An optional ?status= filter
// narrows the list.
func (h *Handler) ListEquipment(c *gin.Context) {
	items, err := h.equipment.GetAll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	if raw := c.Query("status"); raw != "" {
		status, err := desk.ParseEquipmentStatus(raw)
		if err != nil {
			badRequest(c, err)
			return
		}
		filtered := items[:0]
		for _, e := range items {
			if e.Status == status {
				filtered = append(filtered, e)
			}
		}
		items = filtered
	}
	if items == nil {
		items = []desk.Equipment{}
	}
	c.JSON(http.StatusOK, items)
}

// GetEquipment handles GET /api/equipment/:id.
func (h *Handler) GetEquipment(c *gin.Context) {
	item, err := h.equipment.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateEquipment handles POST /api/equipment. A missing id is generated.
func (h *Handler) CreateEquipment(c *gin.Context) {
	var item desk.Equipment
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, fmt.Errorf("invalid request: %w", err))
		return
	}
	if item.ID == "" {
		item.ID = h.ids.New()
	}
	if item.Status == "" {
		item.Status = desk.StatusAvailable
	}
	if err := item.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	created, err := h.equipment.Create(c.Request.Context(), item)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateEquipment handles PUT /api/equipment/:id. The body replaces the
// whole record.
func (h *Handler) UpdateEquipment(c *gin.Context) {
	var item desk.Equipment
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, fmt.Errorf("invalid request: %w", err))
		return
	}
	item.ID = c.Param("id")
	if err := item.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	updated, err := h.equipment.Update(c.Request.Context(), item)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteEquipment handles DELETE /api/equipment/:id. Deleting a missing id
// succeeds.
func (h *Handler) DeleteEquipment(c *gin.Context) {
	if err := h.equipment.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetEquipmentStatus handles PUT /api/equipment/:id/status.
func (h *Handler) SetEquipmentStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, fmt.Errorf("invalid request: %w", err))
		return
	}
	status, err := desk.ParseEquipmentStatus(req.Status)
	if err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.equipment.SetStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// ToggleOnline handles POST /api/equipment/:id/online.
func (h *Handler) ToggleOnline(c *gin.Context) {
	item, err := h.equipment.ToggleOnline(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

type locationRequest struct {
	Location string   `json:"location"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
}

// RelocateEquipment handles PUT /api/equipment/:id/location. Omitting lat
// and lng clears the map position.
func (h *Handler) RelocateEquipment(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, fmt.Errorf("invalid request: %w", err))
		return
	}
	if (req.Lat == nil) != (req.Lng == nil) {
		badRequest(c, fmt.Errorf("lat and lng must be set together"))
		return
	}
	var pos *desk.LatLng
	if req.Lat != nil {
		pos = &desk.LatLng{Lat: *req.Lat, Lng: *req.Lng}
		if !pos.Valid() {
			badRequest(c, fmt.Errorf("invalid coordinates %v,%v", pos.Lat, pos.Lng))
			return
		}
	}

	item, err := h.equipment.Relocate(c.Request.Context(), c.Param("id"), req.Location, pos)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

type uploadResult struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// UploadImages handles POST /api/equipment/:id/images with multipart field
// "images". Every file is converted independently; the successful ones are
// appended to the item and the per-file outcome is reported.
func (h *Handler) UploadImages(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	if _, err := h.equipment.Get(ctx, id); err != nil {
		h.fail(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		badRequest(c, fmt.Errorf("invalid upload: %w", err))
		return
	}
	headers := form.File["images"]
	if len(headers) == 0 {
		badRequest(c, fmt.Errorf("no files in field \"images\""))
		return
	}

	files := make([]desk.MediaFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			badRequest(c, &desk.MediaReadError{Name: fh.Filename, Err: err})
			return
		}
		defer f.Close()
		files = append(files, desk.MediaFile{Name: fh.Filename, Reader: f})
	}

	results := h.equipment.UploadImages(ctx, files)

	var uris []string
	report := make([]uploadResult, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			report = append(report, uploadResult{Name: r.Name, Error: r.Err.Error()})
			continue
		}
		uris = append(uris, r.DataURI)
		report = append(report, uploadResult{Name: r.Name, OK: true})
	}

	var item desk.Equipment
	if len(uris) > 0 {
		item, err = h.equipment.AddImages(ctx, id, uris...)
		if err != nil {
			h.fail(c, err)
			return
		}
	} else {
		item, _ = h.equipment.Get(ctx, id)
	}
	c.JSON(http.StatusOK, gin.H{"equipment": item, "results": report})
}

// WarrantyAlerts handles GET /api/warranty/alerts.
func (h *Handler) WarrantyAlerts(c *gin.Context) {
	alerts, err := h.equipment.WarrantyAlerts(c.Request.Context(), h.clock.Now())
	if err != nil {
		h.fail(c, err)
		return
	}
	if alerts == nil {
		alerts = []desk.WarrantyAlert{}
	}
	c.JSON(http.StatusOK, alerts)
}
