package handlers

import (
	"errors"
	"log"
	"net/http"
	"tsp-canvas-service/internal/api/dto"
	"tsp-canvas-service/internal/domain"
	"tsp-canvas-service/internal/services"
)

// SessionCookie names the cookie that binds a browser to its session.
const SessionCookie = "tsp_session"

// SessionHandler exposes the interactive session of the calling browser.
type SessionHandler struct {
	Registry *services.SessionRegistry
}

// session resolves the caller's session, creating one and setting the cookie
// when the request carries none or an expired one.
func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) *services.Session {
	var id string
	if c, err := r.Cookie(SessionCookie); err == nil {
		id = c.Value
	}

	s, created := h.Registry.GetOrCreate(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    s.ID(),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return s
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	writeJSON(w, r, http.StatusOK, SessionView(s.Snapshot()))
}

// Click adds a city where the user clicked on the surface.
func (h *SessionHandler) Click(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)

	var req dto.ClickRequest
	if err := decodeJSON(r, &req); err != nil {
		if errors.Is(err, errTrailingData) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	click := domain.Point{X: req.ClientX, Y: req.ClientY}
	surface := domain.Rect{
		Left:   req.Surface.Left,
		Top:    req.Surface.Top,
		Width:  req.Surface.Width,
		Height: req.Surface.Height,
	}

	st, err := s.Click(click, surface)
	if err != nil {
		if errors.Is(err, domain.ErrSurfaceNotLaidOut) || errors.Is(err, domain.ErrClickOutOfRange) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("click failed: session=%s err=%v", s.ID(), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, SessionView(st))
}

// Solve starts a solve attempt. It answers 202 when the attempt started and
// 409 when solving is not currently permitted; both carry the session view.
func (h *SessionHandler) Solve(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)

	if _, ok := s.Solve(); !ok {
		writeJSON(w, r, http.StatusConflict, SessionView(s.Snapshot()))
		return
	}
	writeJSON(w, r, http.StatusAccepted, SessionView(s.Snapshot()))
}

func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	writeJSON(w, r, http.StatusOK, SessionView(s.Reset()))
}

// SessionView maps a session state to its wire form: markers in insertion
// order, the route list and open-path segments in solver order.
func SessionView(st domain.State) dto.SessionResponse {
	res := dto.SessionResponse{
		Cities:   make([]dto.CityResponse, 0, len(st.Cities)),
		Segments: []dto.SegmentResponse{},
		Loading:  st.Loading,
		CanSolve: st.CanSolve(),
		Phase:    st.Phase().String(),
	}

	for i, c := range st.Cities {
		res.Cities = append(res.Cities, dto.CityResponse{
			Index: i + 1,
			Name:  c.Name,
			X:     c.X,
			Y:     c.Y,
		})
	}

	if st.Route != nil {
		res.Route = make([]dto.RouteStopResponse, 0, len(st.Route))
		for i, c := range st.Route {
			res.Route = append(res.Route, dto.RouteStopResponse{
				Order: i + 1,
				Name:  c.Name,
				X:     c.X,
				Y:     c.Y,
				Label: c.Label(),
			})
		}

		for _, seg := range st.Route.Segments() {
			res.Segments = append(res.Segments, dto.SegmentResponse{
				From: dto.PointResponse{X: seg.From.X, Y: seg.From.Y},
				To:   dto.PointResponse{X: seg.To.X, Y: seg.To.Y},
			})
		}
	}

	if st.Err != "" {
		msg := st.Err
		res.Error = &msg
	}

	return res
}
