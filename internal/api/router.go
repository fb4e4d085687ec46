package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"pulsecheck/internal/services"
)

// Router wires the HTTP surface to the service layer.
type Router struct {
	checkins  *services.CheckinService
	dashboard *services.DashboardService
	logger    *slog.Logger
}

func NewRouter(checkins *services.CheckinService, dashboard *services.DashboardService, logger *slog.Logger) *Router {
	return &Router{checkins: checkins, dashboard: dashboard, logger: logger}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/checkins", rt.handleSubmitCheckin)    // POST
	mux.HandleFunc("/api/teams/dashboard", rt.handleDashboard) // GET
	mux.HandleFunc("/api/tips", rt.handleTips)                 // GET
}

type submitCheckinPayload struct {
	Role         string `json:"role"`
	TenureBucket string `json:"tenure_bucket"`
	TeamID       string `json:"team_id"`
	Q1           int    `json:"q1"`
	Q2           int    `json:"q2"`
	Q3           int    `json:"q3"`
	Q4           int    `json:"q4"`
	NoteText     string `json:"note_text"`
}

// POST /api/checkins
func (rt *Router) handleSubmitCheckin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var payload submitCheckinPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rec, err := rt.checkins.Submit(services.SubmitCheckinRequest{
		Role:         services.Role(payload.Role),
		TenureBucket: services.TenureBucket(payload.TenureBucket),
		TeamID:       payload.TeamID,
		Q1:           payload.Q1,
		Q2:           payload.Q2,
		Q3:           payload.Q3,
		Q4:           payload.Q4,
		NoteText:     payload.NoteText,
	})
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"ok":             true,
		"receipt_id":     uuid.NewString(),
		"user_pseudo_id": rec.PseudoID,
		"date":           rec.Date,
	})
}

// GET /api/teams/dashboard?team_id=...
func (rt *Router) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	teamID := r.URL.Query().Get("team_id")
	if teamID == "" {
		http.Error(w, "team_id required", http.StatusBadRequest)
		return
	}
	dash, err := rt.dashboard.TeamDashboard(teamID)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dash)
}

// GET /api/tips?theme=...
func (rt *Router) handleTips(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	theme := r.URL.Query().Get("theme")
	if theme == "" {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"themes": services.TipThemes()})
		return
	}
	tips, err := services.TipsForTheme(theme)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"theme": theme, "tips": tips})
}

func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if se, ok := services.AsServiceError(err); ok {
		switch se.Code {
		case services.ErrorInvalid:
			status = http.StatusBadRequest
		case services.ErrorNotFound:
			status = http.StatusNotFound
		case services.ErrorUnavailable:
			status = http.StatusServiceUnavailable
		}
	}
	if status >= 500 && rt.logger != nil {
		rt.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": err.Error()})
}
