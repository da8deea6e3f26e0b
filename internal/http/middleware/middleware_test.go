package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/roguepikachu/canopy/internal/auth"
	"github.com/roguepikachu/canopy/pkg/ctxutil"
)

func newTokens(t *testing.T) *auth.TokenService {
	t.Helper()
	tokens, err := auth.NewTokenService("middleware-test-secret")
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	return tokens
}

func TestRequestID_Generated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	var got string
	r.GET("/", func(c *gin.Context) {
		got = ctxutil.RequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if got == "" {
		t.Fatal("request id missing from context")
	}
	if w.Header().Get("X-Request-ID") != got {
		t.Errorf("response header %q does not match context id %q", w.Header().Get("X-Request-ID"), got)
	}
}

func TestRequestID_Propagated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	var got string
	r.GET("/", func(c *gin.Context) {
		got = ctxutil.RequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got != "req-42" {
		t.Errorf("want caller-supplied id kept, got %q", got)
	}
}

func TestRecovery_PanicIs500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(_ *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", w.Code)
	}
}

func TestRequireAuth_MissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/secure", RequireAuth(newTokens(t)), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secure", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", w.Code)
	}
}

func TestRequireAuth_BadToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/secure", RequireAuth(newTokens(t)), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", w.Code)
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := newTokens(t)
	token, err := tokens.Generate(7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	r := gin.New()
	var got int
	var ok bool
	r.GET("/secure", RequireAuth(tokens), func(c *gin.Context) {
		got, ok = ctxutil.UserID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	if !ok || got != 7 {
		t.Errorf("want user 7 in context, got %d (ok=%v)", got, ok)
	}
}

func TestOptionalAuth_AnonymousPasses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var ok bool
	r.GET("/open", OptionalAuth(newTokens(t)), func(c *gin.Context) {
		_, ok = ctxutil.UserID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	if ok {
		t.Error("anonymous request must not carry a user id")
	}
}

func TestOptionalAuth_TokenAttachesIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := newTokens(t)
	token, err := tokens.Generate(3)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	r := gin.New()
	var got int
	r.GET("/open", OptionalAuth(tokens), func(c *gin.Context) {
		got, _ = ctxutil.UserID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got != 3 {
		t.Errorf("want user 3 in context, got %d", got)
	}
}
