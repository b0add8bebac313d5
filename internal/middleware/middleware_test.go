package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/wordsearch/solver/internal/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(authService *auth.Service) *gin.Engine {
	r := gin.New()
	mw := NewAuthMiddleware(authService)
	r.GET("/admin", mw.RequireAuth(), func(c *gin.Context) {
		claims := GetAuthUser(c)
		c.JSON(http.StatusOK, gin.H{"subject": claims.Subject})
	})
	return r
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	r := newTestRouter(auth.NewService("secret"))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	svc := auth.NewService("secret")
	token, err := svc.GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	r := newTestRouter(svc)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
}

func TestRequireAuthRejectsTokenFromDifferentSecret(t *testing.T) {
	issuing := auth.NewService("secret-a")
	token, err := issuing.GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	r := newTestRouter(auth.NewService("secret-b"))
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestExtractTokenRequiresBearerScheme(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var got string
	r.GET("/x", func(c *gin.Context) {
		got = extractToken(c)
	})

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "bearer token", header: "Bearer abc123", want: "abc123"},
		{name: "missing header", header: "", want: ""},
		{name: "wrong scheme", header: "Basic abc123", want: ""},
		{name: "malformed", header: "abc123", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			got = ""
			r.ServeHTTP(rec, req)
			if got != tt.want {
				t.Errorf("extractToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPerformanceMonitorRecordsMetrics(t *testing.T) {
	r := gin.New()
	r.Use(PerformanceMonitor())
	r.GET("/solve", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/solve", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Header().Get("X-Response-Time") == "" {
		t.Error("expected X-Response-Time header to be set")
	}

	metrics := GetMetrics()
	if metrics["total_requests"].(int64) < 1 {
		t.Errorf("total_requests = %v, want >= 1", metrics["total_requests"])
	}
}
