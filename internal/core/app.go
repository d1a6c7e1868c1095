package core

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	"github.com/spf13/afero"
	"github.com/vrsandeep/mango-downloads/internal/config"
	"github.com/vrsandeep/mango-downloads/internal/db"
	"github.com/vrsandeep/mango-downloads/internal/downloads"
	"github.com/vrsandeep/mango-downloads/internal/jobs"
	"github.com/vrsandeep/mango-downloads/internal/sources"
	"github.com/vrsandeep/mango-downloads/internal/store"
	"github.com/vrsandeep/mango-downloads/internal/util"
	"github.com/vrsandeep/mango-downloads/internal/websocket"
)

// App holds the core components of the application that are shared
// between the server and the CLI.
type App struct {
	mu         sync.RWMutex
	config     *config.Config
	db         *sql.DB
	wsHub      *websocket.Hub
	jobManager *jobs.JobManager
	downloads  *downloads.Provider
	sources    *sources.Registry
	Version    string
}

// New sets up and returns a new App instance. It handles loading the
// configuration, initializing the database connection, and running migrations.
func New() (*App, error) {
	// Load configuration from config.yml
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize the database connection
	database, err := db.InitDB(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	if err := db.RunMigrations(database); err != nil {
		// We can't proceed without a valid database schema.
		// Close the DB connection before failing.
		database.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	app, err := NewApp(cfg, database, afero.NewOsFs())
	if err != nil {
		database.Close()
		return nil, err
	}
	go app.wsHub.Run()

	config.Watch(app.applyConfig)

	log.Println("Core application setup complete.")
	return app, nil
}

// NewApp wires an App around an already migrated database. Downloads are
// resolved against fs.
func NewApp(cfg *config.Config, database *sql.DB, fs afero.Fs) (*App, error) {
	registry := sources.NewRegistry()
	if err := registry.LoadFromStore(store.New(database)); err != nil {
		return nil, err
	}

	app := &App{
		config:    cfg,
		db:        database,
		wsHub:     websocket.NewHub(),
		sources:   registry,
		downloads: downloads.NewProvider(fs, cfg.Downloads.Path, registry),
		Version:   "dev",
	}
	app.jobManager = jobs.NewManager(app)
	jobs.RegisterDefaultJobs(app.jobManager)
	return app, nil
}

// applyConfig swaps in a reloaded configuration. A new downloads path only
// replaces the current root when it is usable.
func (a *App) applyConfig(cfg *config.Config) {
	old := a.Config()
	if cfg.Downloads.Path != old.Downloads.Path {
		if err := util.ValidateDownloadsPath(a.downloads.Root().Fs(), cfg.Downloads.Path); err != nil {
			log.Printf("Keeping downloads path %s, new path %s is unusable: %v", old.Downloads.Path, cfg.Downloads.Path, err)
			cfg.Downloads.Path = old.Downloads.Path
		} else {
			a.downloads.SetRoot(a.downloads.Root().Fs(), cfg.Downloads.Path)
		}
	}

	a.mu.Lock()
	a.config = cfg
	a.mu.Unlock()
}

func (a *App) Config() *config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.config
}

func (a *App) DB() *sql.DB                    { return a.db }
func (a *App) WsHub() *websocket.Hub          { return a.wsHub }
func (a *App) JobManager() *jobs.JobManager   { return a.jobManager }
func (a *App) Downloads() *downloads.Provider { return a.downloads }
func (a *App) Sources() *sources.Registry     { return a.sources }

// Close gracefully closes the application's resources, like the DB connection.
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
