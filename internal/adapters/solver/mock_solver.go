package solver

import (
	"context"
	"slices"
	"sync"
	"tsp-canvas-service/internal/domain"
)

// MockRouteSolver answers Optimize from a function, for tests and offline
// runs. When Gate is set, each call blocks until Gate yields or ctx ends.
type MockRouteSolver struct {
	Gate chan struct{}

	mu      sync.Mutex
	calls   [][]domain.City
	respond func(cities []domain.City) (domain.Route, error)
}

func NewMockRouteSolver(respond func(cities []domain.City) (domain.Route, error)) *MockRouteSolver {
	return &MockRouteSolver{respond: respond}
}

// NewReversingSolver returns a mock that visits the cities in reverse order.
func NewReversingSolver() *MockRouteSolver {
	return NewMockRouteSolver(func(cities []domain.City) (domain.Route, error) {
		r := slices.Clone(cities)
		slices.Reverse(r)
		return domain.Route(r), nil
	})
}

func (m *MockRouteSolver) Optimize(ctx context.Context, cities []domain.City) (domain.Route, error) {
	m.mu.Lock()
	m.calls = append(m.calls, slices.Clone(cities))
	m.mu.Unlock()

	if m.Gate != nil {
		select {
		case <-m.Gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return m.respond(cities)
}

// Calls returns the city sets passed to Optimize so far.
func (m *MockRouteSolver) Calls() [][]domain.City {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}
