package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

const (
	RequestIDKey ctxKey = "req_id"
	SessionIDKey ctxKey = "session"
)

// WithSession tags ctx with a session id for Time log lines.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionIDKey, sessionID)
}

// WithRequestID tags ctx with a request id for Time log lines.
func WithRequestID(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, reqID)
}

func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)
	session, _ := ctx.Value(SessionIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("req_id=%s session=%s op=%s dur=%dms err=%v", reqID, session, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("req_id=%s session=%s op=%s dur=%dms", reqID, session, name, dur.Milliseconds())
	}
}
