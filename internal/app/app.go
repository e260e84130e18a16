package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"riverdesk/internal/api"
	"riverdesk/internal/backup"
	"riverdesk/internal/config"
	"riverdesk/internal/desk"
	"riverdesk/internal/encryption"
	"riverdesk/internal/export"
	"riverdesk/internal/geocode"
	"riverdesk/internal/kv"
	"riverdesk/internal/mapsync"
)

// App is the application layer between the CLI and the registry.
// It constructs all dependencies from config, exposes the console
// operations, and records mutating commands in the history log on Close.
type App struct {
	cfg       *config.Config
	store     desk.Store
	events    *desk.EventBus
	clock     desk.Clock
	ids       desk.IDGenerator
	equipment *desk.EquipmentRepository
	folders   *desk.FolderService
	sims      *desk.SimCardRepository
	spots     *desk.AdSpotRepository
	history   *desk.HistoryLog
	encryptor desk.Encryptor
	backup    *backup.Service
	geocoder  *geocode.Client
	logger    desk.Logger
	op        *Operation
	logFile   *os.File
}

// NewApp creates a fully wired App from the given config.
// operation identifies the CLI command being run (e.g. "EquipmentAdd").
// The caller must call Close when done.
func NewApp(ctx context.Context, cfg *config.Config, operation string, verbose bool) (*App, error) {
	clock := desk.RealClock{}

	store, err := kv.NewStoreFromConfig(ctx, cfg.Store, clock)
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}
	if v, ok := store.(interface{ ValidateSetup() error }); ok {
		if err := v.ValidateSetup(); err != nil {
			closeStore(store)
			return nil, fmt.Errorf("validating store: %w", err)
		}
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		closeStore(store)
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	session := clock.Now().UTC().Format("20060102T150405Z")
	slogger, logFile, err := newLogger(cfg.LogDir, session, verbose)
	if err != nil {
		closeStore(store)
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger}

	// Geocoding is optional; the console works offline without it.
	var geocoder *geocode.Client
	if cfg.Geocode.BaseURL != "" {
		geocoder, err = geocode.NewClientFromConfig(cfg.Geocode)
		if err != nil {
			logFile.Close()
			closeStore(store)
			return nil, fmt.Errorf("creating geocoder: %w", err)
		}
	}

	events := desk.NewEventBus()
	repo := desk.NewEquipmentRepository(store, events, clock, logger)
	repo.SetLatency(desk.Latency{
		Read:   cfg.Latency.Read(),
		Write:  cfg.Latency.Write(),
		Upload: cfg.Latency.Upload(),
	})

	a := &App{
		cfg:       cfg,
		store:     store,
		events:    events,
		clock:     clock,
		ids:       desk.UUIDGenerator{},
		equipment: repo,
		folders:   desk.NewFolderService(repo, store, events, clock, logger),
		sims:      desk.NewSimCardRepository(store, events, clock, logger),
		spots:     desk.NewAdSpotRepository(store, events, clock, logger),
		history:   desk.NewHistoryLog(store, clock),
		encryptor: enc,
		backup:    backup.NewService(store, enc, events, clock, logger, cfg.InstanceID),
		geocoder:  geocoder,
		logger:    logger,
		op:        NewOperation(operation, "", clock.Now()),
		logFile:   logFile,
	}
	logger.Debug("app started", "operation", operation, "store", cfg.Store.Type)
	return a, nil
}

// run marks the current operation as mutating when mutating is set and
// records err as its outcome.
func (a *App) run(mutating bool, params string, err error) error {
	if mutating {
		a.op.MarkMutating(params)
	}
	a.op.Fail(err)
	return err
}

func (a *App) today() time.Time { return a.clock.Now() }

// ListEquipment returns every item in storage order.
func (a *App) ListEquipment(ctx context.Context) ([]desk.Equipment, error) {
	return a.equipment.GetAll(ctx)
}

// GetEquipment returns one item.
func (a *App) GetEquipment(ctx context.Context, id string) (desk.Equipment, error) {
	return a.equipment.Get(ctx, id)
}

// AddEquipment stores a new item, assigning an id when none is given.
func (a *App) AddEquipment(ctx context.Context, e desk.Equipment) (desk.Equipment, error) {
	if e.ID == "" {
		e.ID = a.ids.New()
	}
	created, err := a.equipment.Create(ctx, e)
	return created, a.run(true, e.ID, err)
}

// SetStatus parses raw and applies it to the item.
func (a *App) SetStatus(ctx context.Context, id, raw string) (desk.Equipment, error) {
	status, err := desk.ParseEquipmentStatus(raw)
	if err != nil {
		return desk.Equipment{}, err
	}
	e, err := a.equipment.SetStatus(ctx, id, status)
	return e, a.run(true, id+" "+string(status), err)
}

// ToggleOnline flips the online flag of an item.
func (a *App) ToggleOnline(ctx context.Context, id string) (desk.Equipment, error) {
	e, err := a.equipment.ToggleOnline(ctx, id)
	return e, a.run(true, id, err)
}

// Relocate sets the location and optional coordinates of an item.
func (a *App) Relocate(ctx context.Context, id, location string, pos *desk.LatLng) (desk.Equipment, error) {
	e, err := a.equipment.Relocate(ctx, id, location, pos)
	return e, a.run(true, id+" "+location, err)
}

// DeleteEquipment removes an item.
func (a *App) DeleteEquipment(ctx context.Context, id string) error {
	return a.run(true, id, a.equipment.Delete(ctx, id))
}

// Folders returns the folder grouping and its display order.
func (a *App) Folders(ctx context.Context) (map[string][]desk.Equipment, []string, error) {
	groups, err := a.folders.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return groups, desk.FolderNames(groups), nil
}

// FolderContents returns the items of one folder in presentation order.
func (a *App) FolderContents(ctx context.Context, name string) ([]desk.Equipment, error) {
	return a.folders.Contents(ctx, name)
}

// CreateFolder adds an empty folder.
func (a *App) CreateFolder(ctx context.Context, name string) error {
	return a.run(true, name, a.folders.Create(ctx, name))
}

// DeleteFolder clears the folder and returns how many items were released.
func (a *App) DeleteFolder(ctx context.Context, name string) (int, error) {
	n, err := a.folders.Delete(ctx, name)
	return n, a.run(true, name, err)
}

// RenameFolder moves every item of oldName into newName.
func (a *App) RenameFolder(ctx context.Context, oldName, newName string) (int, error) {
	n, err := a.folders.Rename(ctx, oldName, newName)
	return n, a.run(true, oldName+" -> "+newName, err)
}

// MoveToFolder relocates the given items into folder.
func (a *App) MoveToFolder(ctx context.Context, ids []string, folder string) (int, error) {
	n, err := a.folders.Move(ctx, ids, folder)
	return n, a.run(true, folder+" "+strings.Join(ids, ","), err)
}

// ItemQR returns the QR payload for one item.
func (a *App) ItemQR(ctx context.Context, id string) (string, error) {
	e, err := a.equipment.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return desk.ComposeItemPayload(e)
}

// FolderQR returns the QR payload listing a folder's contents.
func (a *App) FolderQR(ctx context.Context, name string) (string, error) {
	items, err := a.folders.Contents(ctx, name)
	if err != nil {
		return "", err
	}
	return desk.ComposeFolderPayload(name, items, a.today()), nil
}

// WarrantyAlerts returns items whose warranty needs attention.
func (a *App) WarrantyAlerts(ctx context.Context) ([]desk.WarrantyAlert, error) {
	return a.equipment.WarrantyAlerts(ctx, a.today())
}

// Markers builds the desired map overlay for the current data.
func (a *App) Markers(ctx context.Context, filter mapsync.Filter) (mapsync.Plan, error) {
	v, err := a.mapView(ctx)
	if err != nil {
		return mapsync.Plan{}, err
	}
	v.Filter = filter
	return mapsync.Build(v), nil
}

// ListSimCards returns every SIM card.
func (a *App) ListSimCards(ctx context.Context) ([]desk.SimCard, error) {
	return a.sims.List(ctx)
}

// AddSimCard registers a SIM card.
func (a *App) AddSimCard(ctx context.Context, card desk.SimCard) (desk.SimCard, error) {
	created, err := a.sims.Create(ctx, card)
	return created, a.run(true, card.PhoneNumber, err)
}

// SetSimStatus parses raw and applies it to the card.
func (a *App) SetSimStatus(ctx context.Context, id, raw string) (desk.SimCard, error) {
	status, err := desk.ParseSimCardStatus(raw)
	if err != nil {
		return desk.SimCard{}, err
	}
	card, err := a.sims.SetStatus(ctx, id, status)
	return card, a.run(true, id+" "+string(status), err)
}

// ListSpots returns every ad spot.
func (a *App) ListSpots(ctx context.Context) ([]desk.AdSpot, error) {
	return a.spots.List(ctx)
}

// Geocode searches for places matching query.
func (a *App) Geocode(ctx context.Context, query string, limit int) ([]geocode.Result, error) {
	if a.geocoder == nil {
		return nil, fmt.Errorf("geocoding is not configured: set geocode.base_url")
	}
	return a.geocoder.Search(ctx, query, limit)
}

// ExportXLSX writes the inventory workbook to w.
func (a *App) ExportXLSX(ctx context.Context, w io.Writer) error {
	items, err := a.equipment.GetAll(ctx)
	if err != nil {
		return err
	}
	alerts, err := a.equipment.WarrantyAlerts(ctx, a.today())
	if err != nil {
		return err
	}
	return export.WriteEquipment(w, items, alerts, a.today())
}

// SetupEncryption generates the backup key pair.
func (a *App) SetupEncryption(passphrase string) error {
	return a.encryptor.Setup(passphrase)
}

// ExportBackup writes an encrypted bundle of every stored key to path.
func (a *App) ExportBackup(ctx context.Context, path string) (*backup.Bundle, error) {
	return a.backup.ExportFile(ctx, path)
}

// ImportBackup restores the bundle at path and returns how many keys were
// written.
func (a *App) ImportBackup(ctx context.Context, path, passphrase string, replace bool) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, a.run(true, path, fmt.Errorf("opening backup: %w", err))
	}
	defer f.Close()

	n, err := a.backup.Import(ctx, f, passphrase, backup.ImportOptions{Replace: replace})
	return n, a.run(true, path, err)
}

// History returns the most recent recorded operations.
func (a *App) History(ctx context.Context, limit int) ([]desk.Operation, error) {
	return a.history.List(ctx, limit)
}

// mapView loads what the map renders from.
func (a *App) mapView(ctx context.Context) (mapsync.View, error) {
	items, err := a.equipment.GetAll(ctx)
	if err != nil {
		return mapsync.View{}, err
	}
	spots, err := a.spots.List(ctx)
	if err != nil {
		return mapsync.View{}, err
	}
	return mapsync.View{Equipment: items, Spots: spots}, nil
}

// StartLiveMap draws the current data onto a server-side overlay, animates
// boat routes at the configured frame rate and re-syncs on every write. The
// returned function stops it.
func (a *App) StartLiveMap(ctx context.Context) (*mapsync.StateOverlay, func(), error) {
	v, err := a.mapView(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading map: %w", err)
	}

	interval := time.Duration(a.cfg.Map.FrameIntervalMS) * time.Millisecond
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	overlay := mapsync.NewStateOverlay()
	s := mapsync.NewSynchronizer(overlay, mapsync.TickerFrames{Interval: interval}, a.cfg.Map.AnimationStep, nil, a.logger)
	s.Sync(v)
	unsubscribe := s.Follow(a.events, a.mapView)

	return overlay, func() {
		unsubscribe()
		s.Close()
	}, nil
}

// Router builds the HTTP API over this app's components, including the
// live map. The returned function stops the live map and releases the
// router's event subscriptions.
func (a *App) Router(ctx context.Context) (*gin.Engine, func(), error) {
	live, stopLive, err := a.StartLiveMap(ctx)
	if err != nil {
		return nil, nil, err
	}

	var geocoder api.Geocoder
	if a.geocoder != nil {
		geocoder = a.geocoder
	}
	h := api.NewHandler(api.Deps{
		Store:     a.store,
		Equipment: a.equipment,
		Folders:   a.folders,
		Sims:      a.sims,
		Spots:     a.spots,
		Geocoder:  geocoder,
		Live:      live,
		Clock:     a.clock,
		Scheduler: desk.RealScheduler{},
		IDs:       a.ids,
		Logger:    a.logger,
	})
	r, unsubscribe := api.NewRouter(h, a.cfg.Server, a.events)
	return r, func() {
		unsubscribe()
		stopLive()
	}, nil
}

// Addr is the listen address for the HTTP API.
func (a *App) Addr() string { return a.cfg.Server.Addr }

// Close records the operation when it changed data and closes all
// resources.
func (a *App) Close() error {
	var firstErr error

	if a.op.Mutating() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if _, err := a.history.Append(ctx, a.op.Record(a.clock.Now())); err != nil {
			firstErr = fmt.Errorf("recording operation: %w", err)
		}
		cancel()
	}

	if err := closeStore(a.store); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing store: %w", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}

func closeStore(s desk.Store) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
