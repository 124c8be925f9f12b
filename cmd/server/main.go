package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	"tsp-canvas-service/internal/adapters/journal"
	"tsp-canvas-service/internal/adapters/solver"
	"tsp-canvas-service/internal/api"
	"tsp-canvas-service/internal/config"
	"tsp-canvas-service/internal/platform/db"
	"tsp-canvas-service/internal/ports"
	"tsp-canvas-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (HTTP solver, attempt journal) behind ports and starts the HTTP server.
func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	attempts, closeJournal, err := openJournal(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeJournal()

	routeSolver, err := solver.NewHTTPSolver(cfg.SolverURL, cfg.SolverTimeout)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := services.NewSessionRegistry(func(id string) *services.Session {
		return services.NewSession(id, routeSolver, services.SessionOptions{
			Journal:      attempts,
			SolveTimeout: cfg.SolverTimeout,
			Context:      ctx,
		})
	}, cfg.SessionTTL)
	go registry.Run(ctx)

	router := api.NewRouter(registry)

	// WriteTimeout covers plain requests only; websocket writes set their own deadlines.
	log.Printf("Server listening addr=:%s solver=%s journal=%s", cfg.Port, cfg.SolverURL, cfg.JournalDriver)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Println("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown failed: err=%v", err)
	}
}

// openJournal opens the attempt journal selected by JOURNAL_DRIVER. With
// JournalNone the returned journal is nil and attempts are only logged.
func openJournal(cfg config.Config) (ports.AttemptJournal, func(), error) {
	var (
		conn *sql.DB
		err  error
	)

	switch cfg.JournalDriver {
	case config.JournalNone:
		return nil, func() {}, nil

	case config.JournalPostgres:
		if conn, err = db.Open(cfg.DatabaseURL); err != nil {
			return nil, nil, fmt.Errorf("open journal: %w", err)
		}
		if err := journal.InitPostgresSchema(conn); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("open journal: %w", err)
		}
		return journal.NewSQLAttemptJournal(conn), closer(conn), nil

	default:
		if conn, err = db.OpenSqlite(cfg.JournalPath); err != nil {
			return nil, nil, fmt.Errorf("open journal: %w", err)
		}
		if err := journal.InitSqliteSchema(conn); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("open journal: %w", err)
		}
		return journal.NewSqliteAttemptJournal(conn), closer(conn), nil
	}
}

func closer(conn *sql.DB) func() {
	return func() {
		if err := conn.Close(); err != nil {
			log.Printf("close journal failed: err=%v", err)
		}
	}
}
