package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"TeleAdmin/session"

	"github.com/gin-gonic/gin"
)

func gateRouter(t *testing.T) (*gin.Engine, *session.Manager, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager, err := session.NewManager([]byte("0123456789abcdef0123456789abcdef"), nil)
	if err != nil {
		t.Fatal(err)
	}

	hits := 0
	r := gin.New()
	r.GET("/api/users", SessionGate(manager), func(c *gin.Context) {
		hits++
		id, err := SessionIDFromContext(c.Request.Context())
		if err != nil || id == "" {
			t.Errorf("session id missing from context: %v", err)
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, manager, &hits
}

func TestSessionGateRejectsWithoutToken(t *testing.T) {
	r, _, hits := gateRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if *hits != 0 {
		t.Fatal("gated handler must not run without a session")
	}
}

func TestSessionGateRejectsGarbageToken(t *testing.T) {
	r, _, hits := gateRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if *hits != 0 {
		t.Fatal("gated handler must not run with an invalid token")
	}
}

func TestSessionGateAdmitsActiveSession(t *testing.T) {
	r, manager, hits := gateRouter(t)

	token, err := manager.Begin(context.Background(), "7", "ADMIN", "upstream-jwt")
	if err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if *hits != 1 {
		t.Fatalf("handler hits = %d", *hits)
	}
}

func TestSessionGateRejectsAfterLogout(t *testing.T) {
	r, manager, hits := gateRouter(t)

	token, err := manager.Begin(context.Background(), "7", "ADMIN", "upstream-jwt")
	if err != nil {
		t.Fatal(err)
	}
	manager.Logout(context.Background())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if *hits != 0 {
		t.Fatal("stale token must not reach the handler")
	}
}

func TestSessionGateCookieFallback(t *testing.T) {
	r, manager, _ := gateRouter(t)

	token, err := manager.Begin(context.Background(), "7", "ADMIN", "upstream-jwt")
	if err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}
