package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AP-CSE-2025/proctor-service/internal/auth"
	"github.com/AP-CSE-2025/proctor-service/internal/models"
	"github.com/AP-CSE-2025/proctor-service/internal/utils"
)

func testRouter(t *testing.T, tokens *auth.TokenManager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	middleware := NewJWTAuthMiddleware(tokens, NewBaseHandler(logger))

	router := gin.New()
	protected := router.Group("/api", middleware.AuthMiddleware())
	protected.GET("/whoami", func(c *gin.Context) {
		id, _ := currentUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	protected.GET("/hod-only", middleware.RequireRole(models.RoleHOD), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func issueToken(t *testing.T, tokens *auth.TokenManager, role models.UserRole) string {
	t.Helper()
	token, _, err := tokens.Issue(42, role)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", "proctor-service", time.Hour)
	expired := auth.NewTokenManager("test-secret", "proctor-service", -time.Hour)
	router := testRouter(t, tokens)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not a bearer token", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusForbidden},
		{"expired token", "Bearer " + issueToken(t, expired, models.RoleHOD), http.StatusForbidden},
		{"valid token", "Bearer " + issueToken(t, tokens, models.RoleHOD), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestAuthMiddlewareInjectsIdentity(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", "proctor-service", time.Hour)
	router := testRouter(t, tokens)

	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, models.RoleProctor))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.ID != 42 {
		t.Errorf("id = %d, want 42", body.ID)
	}
}

func TestRequireRole(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", "proctor-service", time.Hour)
	router := testRouter(t, tokens)

	tests := []struct {
		name       string
		role       models.UserRole
		wantStatus int
	}{
		{"hod allowed", models.RoleHOD, http.StatusOK},
		{"proctor rejected", models.RoleProctor, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/hod-only", nil)
			req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, tt.role))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
