package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/neexbeast/islandhop/internal/catalog"
	"github.com/neexbeast/islandhop/internal/session"
)

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	loader CatalogLoader
	cache  SnapshotCache
	store  SessionStore
	log    *slog.Logger
}

// NewHandlers constructs Handlers. cache may be nil, in which case every
// new session loads the catalog from its source.
func NewHandlers(loader CatalogLoader, cache SnapshotCache, store SessionStore, log *slog.Logger) *Handlers {
	return &Handlers{
		loader: loader,
		cache:  cache,
		store:  store,
		log:    log,
	}
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// snapshot returns the cached catalog or loads and caches a fresh one.
func (h *Handlers) snapshot(ctx context.Context) (*catalog.Snapshot, error) {
	if h.cache != nil {
		cached, err := h.cache.Get(ctx)
		if err != nil {
			h.log.Error("cache get failed", "err", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	snap, err := h.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, snap); err != nil {
			h.log.Warn("cache set failed after load", "err", err)
		}
	}
	return snap, nil
}

// CreateSession handles POST /api/v1/sessions.
// A failed catalog load still creates a session, stuck in data_unavailable.
func (h *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.snapshot(r.Context())
	if err != nil {
		h.log.Error("catalog load failed", "timeout", errors.Is(err, catalog.ErrTimeout), "err", err)
	}

	v := h.store.Create(snap, err)
	status := http.StatusCreated
	if v.Status != session.StatusReady {
		status = http.StatusServiceUnavailable
	}
	h.log.Info("session created", "session_id", v.ID, "status", v.Status)
	writeJSON(w, status, v)
}

// GetSession handles GET /api/v1/sessions/{sessionID}.
func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	var v session.View
	if !h.with(w, r, func(s *session.Session) error {
		v = s.View()
		return nil
	}) {
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// ListLocations handles GET /api/v1/sessions/{sessionID}/locations.
func (h *Handlers) ListLocations(w http.ResponseWriter, r *http.Request) {
	var locs []catalog.Location
	if !h.with(w, r, func(s *session.Session) error {
		if !s.Ready() {
			return session.ErrUnavailable
		}
		locs = s.VisibleLocations()
		return nil
	}) {
		return
	}
	writeJSON(w, http.StatusOK, locs)
}

// ListActivities handles GET /api/v1/sessions/{sessionID}/activities.
func (h *Handlers) ListActivities(w http.ResponseWriter, r *http.Request) {
	var acts []catalog.Activity
	if !h.with(w, r, func(s *session.Session) error {
		if !s.Ready() {
			return session.ErrUnavailable
		}
		acts = s.AvailableActivities()
		return nil
	}) {
		return
	}
	writeJSON(w, http.StatusOK, acts)
}

// GetRates handles GET /api/v1/sessions/{sessionID}/rates.
// It lists the hotels, cab models and ferry classes the pricing events accept.
func (h *Handlers) GetRates(w http.ResponseWriter, r *http.Request) {
	var rates session.RateOptions
	if !h.with(w, r, func(s *session.Session) error {
		var err error
		rates, err = s.RateOptions()
		return err
	}) {
		return
	}
	writeJSON(w, http.StatusOK, rates)
}

type eventResponse struct {
	Applied bool         `json:"applied"`
	Session session.View `json:"session"`
}

// ApplyEvent handles POST /api/v1/sessions/{sessionID}/events.
// Rejected edits return 200 with applied=false and the unchanged view.
func (h *Handlers) ApplyEvent(w http.ResponseWriter, r *http.Request) {
	var ev session.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, "malformed event body")
		return
	}

	var resp eventResponse
	if !h.with(w, r, func(s *session.Session) error {
		applied, err := s.Apply(ev)
		if err != nil {
			return err
		}
		resp = eventResponse{Applied: applied, Session: s.View()}
		return nil
	}) {
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// DeleteSession handles DELETE /api/v1/sessions/{sessionID}.
func (h *Handlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	h.store.Delete(chi.URLParam(r, "sessionID"))
	w.WriteHeader(http.StatusNoContent)
}

// RefreshCatalog handles POST /api/v1/catalog/refresh.
// Drops the cached snapshot and loads a fresh one. Existing sessions keep
// the snapshot they were created with.
func (h *Handlers) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	if h.cache != nil {
		if err := h.cache.Delete(r.Context()); err != nil {
			h.log.Warn("cache delete failed", "err", err)
		}
	}

	snap, err := h.snapshot(r.Context())
	if err != nil {
		h.log.Error("catalog refresh failed", "err", err)
		writeError(w, http.StatusServiceUnavailable, "catalog data unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"locations":    len(snap.Locations),
		"activities":   len(snap.Activities),
		"transit_legs": len(snap.TransitLegs),
	})
}

// with runs fn on the session named in the URL and maps its error to a
// response. It reports whether the caller should write the success body.
func (h *Handlers) with(w http.ResponseWriter, r *http.Request, fn func(*session.Session) error) bool {
	id := chi.URLParam(r, "sessionID")

	err := h.store.Do(id, fn)
	switch {
	case err == nil:
		return true
	case errors.Is(err, session.ErrNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, session.ErrUnavailable):
		writeError(w, http.StatusConflict, string(session.StatusUnavailable))
	case errors.Is(err, session.ErrInvalidEvent):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error("session request failed", "session_id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
	return false
}

// HealthHandlerFunc returns an http.HandlerFunc that pings the configured
// backends. A nil pinger is reported as "disabled" and never degrades health.
func HealthHandlerFunc(db, redis Pinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		check := func(name string, p Pinger) string {
			if p == nil {
				return "disabled"
			}
			if err := p.Ping(ctx); err != nil {
				log.Error("health check: ping failed", "backend", name, "err", err)
				status = http.StatusServiceUnavailable
				return "error"
			}
			return "ok"
		}

		dbStatus := check("db", db)
		redisStatus := check("redis", redis)

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		writeJSON(w, status, map[string]string{
			"status": overall,
			"db":     dbStatus,
			"redis":  redisStatus,
		})
	}
}
