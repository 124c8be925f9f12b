package main

import (
	"context"
	"log"
	"tsp-canvas-service/internal/adapters/solver"
	"tsp-canvas-service/internal/canvasui"
	"tsp-canvas-service/internal/config"
	"tsp-canvas-service/internal/services"

	"github.com/google/uuid"
)

// main runs the canvas as a desktop window, talking to the same solver
// service as the web server. Attempts are logged but not journaled.
func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	routeSolver, err := solver.NewHTTPSolver(cfg.SolverURL, cfg.SolverTimeout)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session := services.NewSession(uuid.NewString(), routeSolver, services.SessionOptions{
		SolveTimeout: cfg.SolverTimeout,
		Context:      ctx,
	})
	defer session.Close()

	log.Printf("Canvas started session=%s solver=%s", session.ID(), cfg.SolverURL)
	if err := canvasui.Run(session); err != nil {
		log.Fatal(err)
	}
}
