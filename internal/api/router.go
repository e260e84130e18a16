package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"riverdesk/internal/config"
	"riverdesk/internal/desk"
	"riverdesk/internal/mw"
)

// NewRouter creates the console API. GET responses are cached for
// cfg.CacheTTLSeconds and the cache is flushed on every write published on
// bus. The returned function unsubscribes the cache from bus.
func NewRouter(h *Handler, cfg config.ServerConfig, bus *desk.EventBus) (*gin.Engine, func()) {
	r := gin.New()
	r.Use(gin.Recovery())

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimit), cfg.Burst)

	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(ttl, 2*ttl)
	gen := &mw.Generation{}
	caching := mw.Cache(cacheStore, gen, ttl)
	unsubscribe := func() {}
	if bus != nil {
		unsubscribe = mw.FlushOnWrite(bus, cacheStore, gen)
	}
	if ttl <= 0 {
		caching = func(c *gin.Context) { c.Next() }
	}

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/status", h.GetStatus)

		api.GET("/equipment", caching, h.ListEquipment)
		api.POST("/equipment", h.CreateEquipment)
		api.GET("/equipment/:id", caching, h.GetEquipment)
		api.PUT("/equipment/:id", h.UpdateEquipment)
		api.DELETE("/equipment/:id", h.DeleteEquipment)
		api.PUT("/equipment/:id/status", h.SetEquipmentStatus)
		api.POST("/equipment/:id/online", h.ToggleOnline)
		api.PUT("/equipment/:id/location", h.RelocateEquipment)
		api.POST("/equipment/:id/images", h.UploadImages)
		api.POST("/equipment/:id/hold", h.PressDelete)
		api.DELETE("/equipment/:id/hold", h.ReleaseDelete)

		api.GET("/folders", caching, h.ListFolders)
		api.POST("/folders", h.CreateFolder)
		api.GET("/folders/:name", caching, h.GetFolder)
		api.PUT("/folders/:name", h.RenameFolder)
		api.DELETE("/folders/:name", h.DeleteFolder)
		api.POST("/folders/:name/items", h.MoveToFolder)

		api.GET("/qr/items/:id", h.ItemQR)
		api.GET("/qr/folders/:name", h.FolderQR)

		api.GET("/warranty/alerts", caching, h.WarrantyAlerts)
		api.GET("/markers", caching, h.Markers)
		api.GET("/markers/live", h.LiveMarkers)

		api.GET("/sims", caching, h.ListSims)
		api.POST("/sims", h.CreateSim)
		api.PUT("/sims/:id/status", h.SetSimStatus)
		api.DELETE("/sims/:id", h.DeleteSim)

		api.GET("/spots", caching, h.ListSpots)
		api.PUT("/spots/:id/route", h.SaveSpotRoute)

		api.GET("/geocode/search", h.GeocodeSearch)
		api.GET("/geocode/reverse", h.GeocodeReverse)
	}

	return r, unsubscribe
}
