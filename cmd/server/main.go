package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/velore/contactbook/internal/data/db"
	contactrepo "github.com/velore/contactbook/internal/data/repos/contact"
	"github.com/velore/contactbook/internal/http/handlers"
	"github.com/velore/contactbook/internal/platform/config"
	"github.com/velore/contactbook/internal/platform/envutil"
	"github.com/velore/contactbook/internal/platform/logger"
	"github.com/velore/contactbook/internal/platform/tracing"
	"github.com/velore/contactbook/internal/realtime"
	"github.com/velore/contactbook/internal/realtime/bus"
	"github.com/velore/contactbook/internal/server"
	"github.com/velore/contactbook/internal/services"
)

func main() {
	cfgPath := envutil.Str("CONFIG_PATH", "contactbook.yaml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if shutdown := tracing.Init(ctx, log, "contactbook"); shutdown != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(shutdownCtx)
		}()
	}

	// Database
	dbService, err := db.New(log, cfg.Database)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Error("Auto migration failed", "error", err)
		os.Exit(1)
	}
	gdb := dbService.DB()

	// Repos
	contactRepo := contactrepo.NewContactRepo(gdb, log)

	// Realtime
	eventBus, err := bus.New(log, cfg.Realtime)
	if err != nil {
		log.Error("Event bus init failed", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()
	hub := realtime.NewHub(log)

	// Services
	contactService := services.NewContactService(gdb, log, contactRepo, eventBus)

	// Handlers
	contactHandler := handlers.NewContactHandler(contactService)
	pageHandler := handlers.NewPageHandler(contactService)
	eventsHandler := handlers.NewEventsHandler(log, hub)

	// Router
	router := server.NewRouter(server.RouterConfig{
		Log:            log,
		AllowOrigins:   cfg.Server.AllowOrigins,
		ContactHandler: contactHandler,
		PageHandler:    pageHandler,
		EventsHandler:  eventsHandler,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return eventBus.StartForwarder(gctx, hub.Broadcast)
	})

	g.Go(func() error {
		log.Info("Server listening", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("Server stopped")
}
