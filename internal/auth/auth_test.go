package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func captureID(got *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = ConversationID(r.Context())
	})
}

func TestConversations_IssuesCookie(t *testing.T) {
	c := &Conversations{Key: []byte("test-key")}
	var id string
	rec := httptest.NewRecorder()
	c.Middleware(captureID(&id)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chat/history", nil))

	if id == "" {
		t.Fatal("no conversation id in context")
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName {
		t.Fatalf("cookies = %v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Error("cookie should be HttpOnly")
	}
	parsed, err := c.Parse(cookies[0].Value)
	if err != nil || parsed != id {
		t.Errorf("Parse = %q, %v; want %q", parsed, err, id)
	}
}

func TestConversations_ReusesValidCookie(t *testing.T) {
	c := &Conversations{Key: []byte("test-key")}
	token, err := c.Issue("conv-1")
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})

	var id string
	rec := httptest.NewRecorder()
	c.Middleware(captureID(&id)).ServeHTTP(rec, req)
	if id != "conv-1" {
		t.Errorf("id = %q, want conv-1", id)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("valid cookie should not be reissued")
	}
}

func TestConversations_RejectsForeignToken(t *testing.T) {
	other := &Conversations{Key: []byte("other-key")}
	token, _ := other.Issue("stolen")

	c := &Conversations{Key: []byte("test-key")}
	if _, err := c.Parse(token); err == nil {
		t.Fatal("token signed with another key accepted")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	var id string
	c.Middleware(captureID(&id)).ServeHTTP(httptest.NewRecorder(), req)
	if id == "" || id == "stolen" {
		t.Errorf("id = %q, want a fresh conversation", id)
	}
}

func TestIPRateLimiter(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(0.001), 2)
	h := l.LimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:" + string(rune('1'+i)) + "000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 200 429] across ports of one host", codes)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("other host code = %d, want 200", rec.Code)
	}
}

func TestIPRateLimiter_DropsIdleClients(t *testing.T) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(rate.Limit(1), 1)
	l.now = func() time.Time { return clock }

	l.getLimiter("10.0.0.1")
	l.getLimiter("10.0.0.2")
	clock = clock.Add(DefaultIdleTTL / 2)
	l.getLimiter("10.0.0.2")
	if n := l.Len(); n != 2 {
		t.Fatalf("Len = %d, want 2", n)
	}

	clock = clock.Add(DefaultIdleTTL/2 + time.Second)
	if removed := l.Sweep(DefaultIdleTTL); removed != 1 {
		t.Errorf("Sweep removed %d, want 1", removed)
	}
	if _, ok := l.ips["10.0.0.2"]; !ok {
		t.Error("recently seen client was dropped")
	}

	// a request after the TTL sweeps without an explicit call
	clock = clock.Add(2 * DefaultIdleTTL)
	l.getLimiter("10.0.0.3")
	if n := l.Len(); n != 1 {
		t.Errorf("Len = %d after idle period, want 1", n)
	}
}
