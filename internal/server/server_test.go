package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crossplay/fillengine/internal/auth"
	"github.com/crossplay/fillengine/internal/middleware"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testServer(t *testing.T) *Server {
	t.Helper()
	authService := auth.NewAuthService("test-secret", map[string]string{"good-key": "client-a"})
	return &Server{
		jobs:       nil,
		auth:       authService,
		middleware: middleware.NewAuthMiddleware(authService),
	}
}

func TestParseRowsBuildsMaskAndPregrid(t *testing.T) {
	width, height, white, pregrid, err := parseRows([]string{"CA#", "..T"})
	if err != nil {
		t.Fatalf("parseRows: %v", err)
	}
	if width != 3 || height != 2 {
		t.Fatalf("dims = %dx%d, want 3x2", width, height)
	}
	if white(2, 0) {
		t.Error("(2,0) should be black")
	}
	if !white(0, 0) {
		t.Error("(0,0) should be white")
	}
	cell := pregrid.At(0, 0)
	if cell.Letter == nil || *cell.Letter != 'C' {
		t.Errorf("pregrid (0,0) = %v, want pre-filled C", cell)
	}
	blank := pregrid.At(0, 1)
	if blank.Letter != nil {
		t.Errorf("pregrid (0,1) = %v, want unfilled", blank)
	}
}

func TestParseRowsRejectsRaggedGrid(t *testing.T) {
	if _, _, _, _, err := parseRows([]string{"AB", "C"}); err == nil {
		t.Fatal("expected an error for inconsistent row widths")
	}
}

func TestParseWordsNormalizesNonLetters(t *testing.T) {
	words, err := parseWords([]string{"CAT", "DO6"})
	if err != nil {
		t.Fatalf("parseWords: %v", err)
	}
	if words[1].String() != "DO" {
		t.Fatalf("words[1] = %q, want DO", words[1].String())
	}
}

func TestIssueTokenAcceptsConfiguredKey(t *testing.T) {
	s := testServer(t)
	router := gin.New()
	router.POST("/auth/token", s.IssueToken)

	body, _ := json.Marshal(map[string]string{"apiKey": "good-key"})
	req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a non-empty token")
	}
}

func TestIssueTokenRejectsUnknownKey(t *testing.T) {
	s := testServer(t)
	router := gin.New()
	router.POST("/auth/token", s.IssueToken)

	body, _ := json.Marshal(map[string]string{"apiKey": "wrong-key"})
	req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestSolveRouteRejectsMissingToken(t *testing.T) {
	s := testServer(t)
	router := s.Router()

	req := httptest.NewRequest(http.MethodPost, "/solve", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestHealthRouteNeedsNoAuth(t *testing.T) {
	s := testServer(t)
	router := s.Router()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
