package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotevault/internal/audit"
	"github.com/mrlokans/quotevault/internal/config"
	"github.com/mrlokans/quotevault/internal/database"
	"github.com/mrlokans/quotevault/internal/database/blobs"
	"github.com/mrlokans/quotevault/internal/exporters"
	http_controllers "github.com/mrlokans/quotevault/internal/http"
	"github.com/mrlokans/quotevault/internal/library"
	"github.com/mrlokans/quotevault/internal/logging"
	"github.com/mrlokans/quotevault/internal/metrics"
	"github.com/mrlokans/quotevault/internal/scheduler"
	"github.com/mrlokans/quotevault/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill -2 is SIGINT, plain kill is SIGTERM; SIGKILL can't be caught.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background workers before the server so queued exports finish.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// openStorage returns the key-value backend for the library. The database is
// nil for the memory backend.
func openStorage(cfg *config.Config) (library.KeyValueStore, *database.Database, error) {
	switch cfg.Storage.Backend {
	case config.StorageMemory:
		log.Printf("Using in-memory storage; the library is lost on exit")
		return blobs.NewMemory(), nil, nil
	case config.StorageSQLite, "":
		absDBPath, err := filepath.Abs(cfg.Database.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get absolute path for database: %w", err)
		}
		cfg.Database.Path = absDBPath

		db, err := database.NewDatabase(absDBPath, database.Options{LogSQL: cfg.Database.LogSQL})
		if err != nil {
			return nil, nil, err
		}
		return db.Blobs(), db, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// setupAudit records library activity in the database and prunes old events.
func setupAudit(cfg config.Audit, db *database.Database) *audit.Service {
	if !cfg.Enabled || db == nil {
		return nil
	}

	svc := audit.NewService(db.Audit())
	if cfg.RetentionDays > 0 {
		deleted, err := svc.DeleteOldEvents(time.Duration(cfg.RetentionDays) * 24 * time.Hour)
		if err != nil {
			log.Printf("Warning: failed to prune audit events: %v", err)
		} else if deleted > 0 {
			log.Printf("Pruned %d audit events older than %d days", deleted, cfg.RetentionDays)
		}
	}
	return svc
}

func Run(cfg *config.Config, version string) {
	_, logCloser := logging.Setup(cfg.Logging)
	defer logCloser.Close()

	log.Printf("Starting QuoteVault v%s", version)
	if cfg.HTTP.ReadOnly {
		log.Printf("Read-only mode enabled - library writes will be rejected")
	}

	kv, db, err := openStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	if db != nil {
		defer db.Close()
	}

	storeCfg := library.DefaultConfig()
	storeCfg.Namespace = cfg.Storage.Namespace
	storeCfg.StrictPersistence = cfg.Storage.StrictPersistence
	store := library.NewStore(kv, storeCfg)

	appMetrics := metrics.New(store)
	store.Subscribe(appMetrics.Observe)

	auditService := setupAudit(cfg.Audit, db)
	if auditService != nil {
		store.Subscribe(auditService.Observe)
	}

	exportDir, err := filepath.Abs(cfg.Export.Dir)
	if err != nil {
		log.Fatalf("Failed to resolve export directory: %v", err)
	}
	libraryExport := exporters.NewLibraryExport(store, exportDir)
	libraryExport.OnFinish = func(err error) {
		appMetrics.ExportFinished(err)
		if auditService != nil {
			auditService.LogExport(err)
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Store:    store,
		Metrics:  appMetrics.Handler(),
		Exporter: libraryExport,
		ReadOnly: cfg.HTTP.ReadOnly,
		Version:  version,
	}
	if auditService != nil {
		routerCfg.Audit = auditService
	}

	// The task queue lives in a SQLite file next to the library database, so
	// it is only available with the sqlite backend.
	var taskClient *tasks.Client
	var taskCancel context.CancelFunc
	if cfg.Tasks.Enabled && cfg.Storage.Backend != config.StorageMemory {
		taskCfg := tasks.FromAppConfig(cfg.Tasks)
		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Printf("Warning: task queue disabled: %v", err)
			taskClient = nil
		} else {
			taskClient.Register(tasks.NewExportLibraryQueue(libraryExport, taskCfg))

			var taskCtx context.Context
			taskCtx, taskCancel = context.WithCancel(context.Background())
			go taskClient.Start(taskCtx)
			routerCfg.Tasks = taskClient
		}
	}

	var exportScheduler *scheduler.ExportScheduler
	if cfg.Export.Enabled {
		exportScheduler = scheduler.NewExportScheduler(libraryExport, cfg.Export.Schedule)
		if err := exportScheduler.Start(context.Background()); err != nil {
			log.Printf("Warning: scheduled export disabled: %v", err)
			exportScheduler = nil
		}
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if exportScheduler != nil {
			exportScheduler.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(ctx)
			taskCancel()
			if err := taskClient.Close(); err != nil {
				log.Printf("Failed to close task database: %v", err)
			}
		}
		if auditService != nil {
			auditService.Flush()
		}
	}

	Serve(router, cfg, onShutdown)
}
