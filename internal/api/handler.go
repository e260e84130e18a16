package api

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"riverdesk/internal/desk"
	"riverdesk/internal/geocode"
	"riverdesk/internal/mapsync"
)

// Geocoder resolves place names and coordinates.
type Geocoder interface {
	Search(ctx context.Context, query string, limit int) ([]geocode.Result, error)
	Reverse(ctx context.Context, pos desk.LatLng) (geocode.Result, error)
}

// LiveMap exposes the server-side map overlay, animated markers included.
type LiveMap interface {
	Snapshot() mapsync.Snapshot
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store     desk.Store
	equipment *desk.EquipmentRepository
	folders   *desk.FolderService
	sims      *desk.SimCardRepository
	spots     *desk.AdSpotRepository
	geocoder  Geocoder
	live      LiveMap
	clock     desk.Clock
	sched     desk.Scheduler
	ids       desk.IDGenerator
	logger    desk.Logger

	mu    sync.Mutex
	holds map[string]*desk.DeleteGesture
}

// Deps are the collaborators of a Handler. Geocoder and Live may be nil, in
// which case their endpoints answer 503. A nil Scheduler uses real timers.
type Deps struct {
	Store     desk.Store
	Equipment *desk.EquipmentRepository
	Folders   *desk.FolderService
	Sims      *desk.SimCardRepository
	Spots     *desk.AdSpotRepository
	Geocoder  Geocoder
	Live      LiveMap
	Clock     desk.Clock
	Scheduler desk.Scheduler
	IDs       desk.IDGenerator
	Logger    desk.Logger
}

func NewHandler(d Deps) *Handler {
	sched := d.Scheduler
	if sched == nil {
		sched = desk.RealScheduler{}
	}
	return &Handler{
		store:     d.Store,
		equipment: d.Equipment,
		folders:   d.Folders,
		sims:      d.Sims,
		spots:     d.Spots,
		geocoder:  d.Geocoder,
		live:      d.Live,
		clock:     d.Clock,
		sched:     sched,
		ids:       d.IDs,
		logger:    d.Logger,
		holds:     make(map[string]*desk.DeleteGesture),
	}
}

// GetStatus handles GET /api/status.
func (h *Handler) GetStatus(c *gin.Context) {
	saved, ok, err := desk.LastSaved(c.Request.Context(), h.store)
	if err != nil {
		h.fail(c, err)
		return
	}
	resp := gin.H{"now": h.clock.Now()}
	if ok {
		resp["lastSaved"] = saved
	}
	c.JSON(http.StatusOK, resp)
}

// fail maps a domain error onto an HTTP status and writes it.
func (h *Handler) fail(c *gin.Context, err error) {
	var (
		notFound  *desk.NotFoundError
		duplicate *desk.DuplicateFolderError
		noPlace   *desk.GeocodeNotFoundError
		media     *desk.MediaReadError
		storage   *desk.StorageError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &notFound), errors.As(err, &noPlace):
		status = http.StatusNotFound
	case errors.As(err, &duplicate):
		status = http.StatusConflict
	case errors.As(err, &media):
		status = http.StatusBadRequest
	case errors.As(err, &storage):
		status = http.StatusInsufficientStorage
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
