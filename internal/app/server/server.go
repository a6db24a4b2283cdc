package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"hrportal/internal/domain/directory"
	"hrportal/internal/domain/feedback"
	"hrportal/internal/domain/leave"
	"hrportal/internal/domain/tasks"
	"hrportal/internal/platform/config"
	"hrportal/internal/platform/db"
	"hrportal/internal/platform/metrics"
	"hrportal/internal/storage/memory"
	"hrportal/internal/transport/http/api"
	directoryhandler "hrportal/internal/transport/http/handlers/directory"
	feedbackhandler "hrportal/internal/transport/http/handlers/feedback"
	leavehandler "hrportal/internal/transport/http/handlers/leave"
	taskshandler "hrportal/internal/transport/http/handlers/tasks"
	"hrportal/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	DB      *db.Pool
	Router  http.Handler
	Metrics *metrics.Collector
}

type stores struct {
	users    directory.StoreAPI
	leave    leave.StoreAPI
	tasks    tasks.StoreAPI
	feedback feedback.StoreAPI
}

// New wires the configured store, runs migrations and seeding, and builds
// the router. Close releases the database pool when one was opened.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &App{Config: cfg, Metrics: metrics.New()}
	var st stores
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		mem := memory.New()
		st = stores{users: mem, leave: mem, tasks: mem, feedback: mem}
	default:
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		app.DB = pool
		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool, db.Migrations()); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrations: %w", err)
			}
		}
		st = stores{
			users:    directory.NewStore(pool),
			leave:    leave.NewStore(pool),
			tasks:    tasks.NewStore(pool),
			feedback: feedback.NewStore(pool),
		}
	}

	users := directory.NewService(st.users)
	if cfg.RunSeed {
		if err := db.Seed(ctx, users, cfg); err != nil {
			app.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(app.Metrics))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.SessionSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", app.handleReady)
	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, app.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	directoryhandler.NewHandler(users).RegisterRoutes(router)
	leavehandler.NewHandler(leave.NewService(st.leave, users), users, app.Metrics).RegisterRoutes(router)
	taskshandler.NewHandler(tasks.NewService(st.tasks, users)).RegisterRoutes(router)
	feedbackhandler.NewHandler(feedback.NewService(st.feedback)).RegisterRoutes(router)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusNotFound, "not_found", "route not found", middleware.GetRequestID(r.Context()))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", middleware.GetRequestID(r.Context()))
	})

	app.Router = router
	return app, nil
}

func (a *App) handleReady(w http.ResponseWriter, r *http.Request) {
	if a.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.DB.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

// Run serves until SIGINT or SIGTERM, then drains in-flight requests. A
// startup or listen failure is returned after the store is released.
func Run() error {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("startup failed: %w", err)
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("hr portal listening", "addr", cfg.Addr, "store", cfg.StoreDriver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("graceful shutdown failed", "err", err)
		}
	}
	return nil
}
