package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"CivilBot/internal/auth"
	"CivilBot/internal/config"
	"CivilBot/internal/history"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg, err := config.FromEnv(func(k string) string {
		if k == "TOKEN_KEY" {
			return "test-key"
		}
		return ""
	})
	if err != nil {
		t.Fatal(err)
	}
	cfg.RateLimitBurst = 100
	cfg.RateLimitRPS = 100
	r := mux.NewRouter()
	HandleList(r, cfg, history.NewMemoryStore(cfg.HistoryLimit))
	srv := httptest.NewServer(CORS(r))
	t.Cleanup(srv.Close)
	return srv
}

func TestRoutes(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"grades", http.MethodGet, "/api/grades", "", http.StatusOK},
		{"beam", http.MethodPost, "/api/tools/beam/calc", `{"span_m":4,"udl_kn_m":10,"concrete_grade":"M25","steel_grade":"Fe415","width_mm":230,"effective_depth_mm":400}`, http.StatusOK},
		{"beam wrong method", http.MethodGet, "/api/tools/beam/calc", "", http.StatusMethodNotAllowed},
		{"boq", http.MethodPost, "/api/tools/boq/estimate", `{"elements":[{"name":"B1","shape":"beam","length_m":4,"width_m":0.23,"depth_m":0.45,"count":1,"concrete_grade":"M20","steel_grade":"Fe415"}]}`, http.StatusOK},
		{"boq area", http.MethodPost, "/api/tools/boq/area", `{"construction_type":"brick_wall","area":12}`, http.StatusOK},
		{"boq area unsupported", http.MethodPost, "/api/tools/boq/area", `{"construction_type":"roofing","area":12}`, http.StatusBadRequest},
		{"units", http.MethodPost, "/api/tools/units/convert", `{"conversion_type":"length","value":1,"from_unit":"m","to_unit":"ft"}`, http.StatusOK},
		{"empty chat", http.MethodPost, "/api/chat", `{"message":""}`, http.StatusBadRequest},
		{"preflight", http.MethodOptions, "/api/chat", "", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestGrades(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/grades")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var body map[string][]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body["concrete"]) == 0 || body["concrete"][0] != "M15" || len(body["steel"]) == 0 {
		t.Errorf("grades = %v", body)
	}
}

func TestChatHistoryIssuesConversationCookie(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/chat/history")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var found bool
	for _, c := range resp.Cookies() {
		if c.Name == auth.CookieName && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("conversation cookie not issued")
	}
}
