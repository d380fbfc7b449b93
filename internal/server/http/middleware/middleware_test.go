package middleware

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/flowershop/internal/domain/errors"
	"github.com/polkiloo/flowershop/internal/domain/model"
	"github.com/polkiloo/flowershop/internal/server/http/dto"
	testhelpers "github.com/polkiloo/flowershop/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func decodeEnvelope(t *testing.T, body *bytes.Buffer) dto.Response {
	t.Helper()
	var resp dto.Response
	if err := json.Unmarshal(body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid envelope %q: %v", body.String(), err)
	}
	return resp
}

func TestTokenRequired(t *testing.T) {
	newRouter := func(resolver TokenResolver, seen **model.User) *gin.Engine {
		router := gin.New()
		router.Use(TokenRequired(resolver, discardLogger()))
		router.GET("/", func(c *gin.Context) {
			if v, ok := c.Get(UserContextKey); ok && seen != nil {
				*seen = v.(*model.User)
			}
			c.Status(http.StatusOK)
		})
		return router
	}

	resp := httptest.NewRecorder()
	newRouter(testhelpers.TokenResolverStub{}, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without token, got %d", resp.Code)
	}
	if env := decodeEnvelope(t, resp.Body); env.Success || env.Message != MessageIncorrectToken {
		t.Fatalf("unexpected envelope %+v", env)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TokenHeader, "stale")
	resp = httptest.NewRecorder()
	newRouter(testhelpers.TokenResolverStub{Err: domainErrors.ErrUnauthorized}, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for unresolved token, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TokenHeader, "tok")
	resp = httptest.NewRecorder()
	newRouter(testhelpers.TokenResolverStub{Err: context.DeadlineExceeded}, nil).ServeHTTP(resp, req)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if env := decodeEnvelope(t, resp.Body); env.Message != MessageInternalError {
		t.Fatalf("internal detail must not leak, got %+v", env)
	}

	var seen *model.User
	var gotToken string
	resolver := testhelpers.TokenResolverStub{ResolveFn: func(_ context.Context, token string) (*model.User, error) {
		gotToken = token
		return &model.User{ID: 42, Token: token}, nil
	}}
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TokenHeader, " tok ")
	resp = httptest.NewRecorder()
	newRouter(resolver, &seen).ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotToken != "tok" || seen == nil || seen.ID != 42 {
		t.Fatalf("expected resolved user 42 for token tok, got %q %+v", gotToken, seen)
	}
}

func TestSessionToken(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)
	if token := SessionToken(c); token != "" {
		t.Fatalf("expected empty token, got %q", token)
	}

	c.Request.Header.Set(TokenHeader, "abc")
	if token := SessionToken(c); token != "abc" {
		t.Fatalf("expected token from header, got %q", token)
	}
}

func TestDecompressRequest(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write([]byte(`{"text":"hi"}`))
	_ = gz.Close()

	router := gin.New()
	router.Use(DecompressRequest())
	var body string
	router.POST("/", func(c *gin.Context) {
		data, _ := io.ReadAll(c.Request.Body)
		body = string(data)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(buf.Bytes()))
	req.Header.Set("Content-Encoding", "gzip")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if body != `{"text":"hi"}` {
		t.Fatalf("expected decompressed payload, got %q", body)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("plain"))
	resp = httptest.NewRecorder()
	body = ""
	router.ServeHTTP(resp, req)
	if body != "plain" {
		t.Fatalf("expected plain body, got %q", body)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for corrupt gzip, got %d", resp.Code)
	}
}

func TestRequestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(RequestLogger(logger))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	levels := map[string]string{"/ok": "INFO", "/bad": "WARN", "/boom": "ERROR"}
	for path, level := range levels {
		buf.Reset()
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("expected a log entry for %s: %v", path, err)
		}
		if entry["level"] != level || entry["path"] != path {
			t.Fatalf("unexpected entry for %s: %v", path, entry)
		}
	}
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2)
	router := gin.New()
	router.POST("/login", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":1234"
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp.Code
	}

	for i := 0; i < 2; i++ {
		if code := send("10.0.0.1"); code != http.StatusOK {
			t.Fatalf("request %d within burst rejected with %d", i, code)
		}
	}
	if code := send("10.0.0.1"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 over the limit, got %d", code)
	}
	if code := send("10.0.0.2"); code != http.StatusOK {
		t.Fatalf("other clients must not be throttled, got %d", code)
	}
}

func TestRateLimiterForgetsLeastRecentClients(t *testing.T) {
	limiter := newRateLimiter(0.001, 1, 2)

	if !limiter.limiter("10.0.0.1").Allow() {
		t.Fatal("first request of a new client must pass")
	}
	limiter.limiter("10.0.0.2")
	limiter.limiter("10.0.0.3")

	if got := limiter.limiters.Len(); got != 2 {
		t.Fatalf("expected at most 2 tracked clients, got %d", got)
	}
	if limiter.limiters.Contains("10.0.0.1") {
		t.Fatal("least recently seen client should have been evicted")
	}
	if !limiter.limiters.Contains("10.0.0.3") {
		t.Fatal("newest client must be tracked")
	}
	if limiter.limiter("10.0.0.3") != limiter.limiter("10.0.0.3") {
		t.Fatal("a tracked client must keep its bucket")
	}
}

func TestCORSAllowsTokenHeader(t *testing.T) {
	router := gin.New()
	router.Use(CORS())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", TokenHeader)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected preflight 204, got %d", resp.Code)
	}
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected any origin, got %q", got)
	}
	if got := strings.ToLower(resp.Header().Get("Access-Control-Allow-Headers")); !strings.Contains(got, TokenHeader) {
		t.Fatalf("expected token header to be allowed, got %q", got)
	}
}
