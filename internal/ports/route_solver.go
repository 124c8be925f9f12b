package ports

import (
	"context"
	"fmt"
	"tsp-canvas-service/internal/domain"
)

// Contract for the external service that orders a set of cities into a route.
type RouteSolver interface {
	// Return a visiting order for cities. One call is one network request;
	// implementations must not retry.
	Optimize(ctx context.Context, cities []domain.City) (domain.Route, error)
}

// RejectionError is returned when the solver answered with a non-success
// status. Message is the human-readable text from the response body, empty
// if the body carried none.
type RejectionError struct {
	StatusCode int
	Message    string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("solver rejected request: status %d: %s", e.StatusCode, e.Message)
}
