package router

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/familybank/allowance/internal/config"
	"github.com/familybank/allowance/internal/domain/model"
	testhelpers "github.com/familybank/allowance/internal/test/facade"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func setupRouter(t *testing.T, facade *testhelpers.FacadeStub) http.Handler {
	t.Helper()
	staticDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html>app</html>"), 0o644); err != nil {
		t.Fatalf("failed to write index: %v", err)
	}
	return Setup(facade, &config.Config{StaticDir: staticDir}, testLogger())
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router := setupRouter(t, &testhelpers.FacadeStub{})

	for _, path := range []string{"/api/me", "/api/dashboard", "/api/transactions", "/api/withdrawals"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 for %s, got %d", path, w.Code)
		}
	}
}

func TestAdminRoutesRejectChildren(t *testing.T) {
	child := &model.User{ID: 7, Username: "kid"}
	facade := &testhelpers.FacadeStub{
		ParseTokenFn: func(string) (int64, error) { return child.ID, nil },
		UserByIDFn:   func(context.Context, int64) (*model.User, error) { return child, nil },
	}
	router := setupRouter(t, facade)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestAdminRouteAllowsAdmin(t *testing.T) {
	admin := &model.User{ID: 1, Username: "parent", IsAdmin: true}
	facade := &testhelpers.FacadeStub{
		ParseTokenFn: func(string) (int64, error) { return admin.ID, nil },
		UserByIDFn:   func(context.Context, int64) (*model.User, error) { return admin, nil },
	}
	router := setupRouter(t, facade)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestSPAFallbackServesIndex(t *testing.T) {
	router := setupRouter(t, &testhelpers.FacadeStub{})

	req := httptest.NewRequest(http.MethodGet, "/children/7/history", nil)
	req.Header.Set("Accept-Encoding", "identity")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestUnknownAPIRouteIs404(t *testing.T) {
	router := setupRouter(t, &testhelpers.FacadeStub{})

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
