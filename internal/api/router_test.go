package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"pulsecheck/internal/services"
	"pulsecheck/internal/store"
)

func newTestServer(t *testing.T, minCohort int) *httptest.Server {
	t.Helper()
	st := store.NewMemoryStore()
	checkins := services.NewCheckinService(st)
	dashboard := services.NewDashboardService(st, minCohort)
	mux := http.NewServeMux()
	NewRouter(checkins, dashboard, slog.Default()).Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postCheckin(t *testing.T, srv *httptest.Server, body map[string]any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	resp, err := http.Post(srv.URL+"/api/checkins", "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("post checkin: %v", err)
	}
	return resp
}

func checkinPayload(team string, q int, note string) map[string]any {
	return map[string]any{
		"role":          "Hourly",
		"tenure_bucket": "<1y",
		"team_id":       team,
		"q1":            q,
		"q2":            q,
		"q3":            q,
		"q4":            q,
		"note_text":     note,
	}
}

func TestSubmitCheckinCreated(t *testing.T) {
	srv := newTestServer(t, 5)
	resp := postCheckin(t, srv, checkinPayload("OPS-ALPHA", 2, "steady week"))
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var out struct {
		OK       bool   `json:"ok"`
		Receipt  string `json:"receipt_id"`
		PseudoID string `json:"user_pseudo_id"`
		Date     string `json:"date"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !out.OK || out.Receipt == "" || out.PseudoID == "" || out.Date == "" {
		t.Fatalf("incomplete response: %+v", out)
	}
}

func TestSubmitCheckinRejectsMalformedInput(t *testing.T) {
	srv := newTestServer(t, 5)
	payload := checkinPayload("OPS-ALPHA", 9, "")
	resp := postCheckin(t, srv, payload)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for q=9, got %d", resp.StatusCode)
	}
}

func TestDashboardRequiresTeamID(t *testing.T) {
	srv := newTestServer(t, 5)
	resp, err := http.Get(srv.URL + "/api/teams/dashboard")
	if err != nil {
		t.Fatalf("get dashboard: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestDashboardInsufficientCohort(t *testing.T) {
	srv := newTestServer(t, 5)
	for i := 0; i < 4; i++ {
		resp := postCheckin(t, srv, checkinPayload("OPS-ALPHA", 2, ""))
		resp.Body.Close()
	}
	resp, err := http.Get(srv.URL + "/api/teams/dashboard?team_id=OPS-ALPHA")
	if err != nil {
		t.Fatalf("get dashboard: %v", err)
	}
	defer resp.Body.Close()
	var dash services.TeamDashboard
	if err := json.NewDecoder(resp.Body).Decode(&dash); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if dash.Sufficient || dash.N != 4 {
		t.Fatalf("expected insufficient n=4, got %+v", dash)
	}
	if dash.Weeks != nil {
		t.Fatalf("insufficient dashboard leaked analytics")
	}
}

func TestDashboardEndToEndAlerts(t *testing.T) {
	srv := newTestServer(t, 5)
	// Three high-strain submissions and two calm ones for the same team.
	for i := 0; i < 3; i++ {
		resp := postCheckin(t, srv, checkinPayload("OPS-ALPHA", 4, ""))
		resp.Body.Close()
	}
	for i := 0; i < 2; i++ {
		resp := postCheckin(t, srv, checkinPayload("OPS-ALPHA", 1, ""))
		resp.Body.Close()
	}
	resp, err := http.Get(srv.URL + "/api/teams/dashboard?team_id=OPS-ALPHA")
	if err != nil {
		t.Fatalf("get dashboard: %v", err)
	}
	defer resp.Body.Close()
	var dash services.TeamDashboard
	if err := json.NewDecoder(resp.Body).Decode(&dash); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if !dash.Sufficient || dash.N != 5 {
		t.Fatalf("expected full aggregate for n=5, got %+v", dash)
	}
	if len(dash.Weeks) != 1 {
		t.Fatalf("expected one week bucket, got %d", len(dash.Weeks))
	}
	if dash.Weeks[0].Alerts != 3 {
		t.Fatalf("expected 3 alerts, got %d", dash.Weeks[0].Alerts)
	}
	if dash.LastWeek == nil || dash.LastWeek.Week != dash.Weeks[0].Week {
		t.Fatalf("last week should mirror the only bucket: %+v", dash.LastWeek)
	}
}

func TestTipsEndpoint(t *testing.T) {
	srv := newTestServer(t, 5)
	resp, err := http.Get(srv.URL + "/api/tips?theme=Workload")
	if err != nil {
		t.Fatalf("get tips: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var out struct {
		Theme string   `json:"theme"`
		Tips  []string `json:"tips"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode tips: %v", err)
	}
	if out.Theme != "Workload" || len(out.Tips) == 0 {
		t.Fatalf("unexpected tips payload: %+v", out)
	}
}

func TestTipsUnknownTheme(t *testing.T) {
	srv := newTestServer(t, 5)
	resp, err := http.Get(srv.URL + "/api/tips?theme=Nope")
	if err != nil {
		t.Fatalf("get tips: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestTipsListsThemes(t *testing.T) {
	srv := newTestServer(t, 5)
	resp, err := http.Get(srv.URL + "/api/tips")
	if err != nil {
		t.Fatalf("get tips: %v", err)
	}
	defer resp.Body.Close()
	var out struct {
		Themes []string `json:"themes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode themes: %v", err)
	}
	if fmt.Sprintf("%v", out.Themes) != "[Workload Recognition Feedback Boundaries]" {
		t.Fatalf("unexpected themes: %v", out.Themes)
	}
}
