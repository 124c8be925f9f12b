package solver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"tsp-canvas-service/internal/ports"
)

// maxErrorBody caps how much of a rejection body is read for its message.
const maxErrorBody = 64 << 10

func (h *HTTPSolver) newRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// do sends req exactly once. Non-2xx responses are turned into a
// *ports.RejectionError carrying the body's message.
func (h *HTTPSolver) do(req *http.Request) (*http.Response, error) {
	resp, err := h.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		return nil, &ports.RejectionError{
			StatusCode: resp.StatusCode,
			Message:    rejectionMessage(b),
		}
	}
	return resp, nil
}

// rejectionMessage returns the body text as the solver sent it, minus
// surrounding whitespace. JSON bodies are not unwrapped.
func rejectionMessage(body []byte) string {
	return strings.TrimSpace(string(body))
}
