package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"tsp-canvas-service/internal/domain"
	"tsp-canvas-service/internal/platform/obs"
)

// ErrMissingRoute is returned when a success response carries no route.
var ErrMissingRoute = errors.New("response has no route")

type optimizeRequest struct {
	Cities []domain.City `json:"cities"`
}

type optimizeResponse struct {
	Route []domain.City `json:"route"`
}

// HTTPSolver implements RouteSolver against an external optimization
// service exposing POST /optimize.
//
// Each Optimize call issues exactly one request. There is no retry or
// backoff; failures are reported to the caller as they happen.
//
// The solver is safe for concurrent use.
type HTTPSolver struct {
	session  *http.Client
	endpoint string
}

func NewHTTPSolver(baseURL string, timeout time.Duration) (*HTTPSolver, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("solver base url is empty")
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse solver base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("solver base url %q: scheme must be http or https", baseURL)
	}

	return &HTTPSolver{
		session:  &http.Client{Timeout: timeout},
		endpoint: strings.TrimRight(baseURL, "/") + "/optimize",
	}, nil
}

// Optimize sends the cities, in insertion order, and returns the solver's
// route exactly as received.
func (h *HTTPSolver) Optimize(ctx context.Context, cities []domain.City) (_ domain.Route, err error) {
	defer obs.Time(ctx, "solver.Optimize")(&err)

	if cities == nil {
		cities = []domain.City{}
	}

	payload, err := json.Marshal(optimizeRequest{Cities: cities})
	if err != nil {
		return nil, fmt.Errorf("marshal optimize request: %w", err)
	}

	req, err := h.newRequest(ctx, http.MethodPost, h.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("optimize: %w", err)
	}

	resp, err := h.do(req)
	if err != nil {
		return nil, fmt.Errorf("optimize request failed: %w", err)
	}
	defer resp.Body.Close()

	var or optimizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		return nil, fmt.Errorf("decode optimize response: %w", err)
	}
	if or.Route == nil {
		return nil, fmt.Errorf("decode optimize response: %w", ErrMissingRoute)
	}

	return domain.Route(or.Route), nil
}
