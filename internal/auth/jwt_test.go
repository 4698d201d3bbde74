package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/AP-CSE-2025/proctor-service/internal/models"
)

func TestIssueAndParse(t *testing.T) {
	m := NewTokenManager("test-secret", "proctor-service", 8*time.Hour)

	token, exp, err := m.Issue(42, models.RoleHOD)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned empty token")
	}
	if remaining := time.Until(exp); remaining < 7*time.Hour || remaining > 8*time.Hour {
		t.Errorf("expiry %v not within the 8 hour window", remaining)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Role != models.RoleHOD {
		t.Errorf("Role = %s, want HOD", claims.Role)
	}
}

func TestParseExpired(t *testing.T) {
	m := NewTokenManager("test-secret", "proctor-service", -time.Minute)

	token, _, err := m.Issue(1, models.RoleProctor)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	_, err = m.Parse(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Parse() error = %v, want ErrTokenExpired", err)
	}
}

func TestParseTampered(t *testing.T) {
	m := NewTokenManager("test-secret", "proctor-service", time.Hour)

	token, _, err := m.Issue(1, models.RoleProctor)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", mustIssue(t, NewTokenManager("other-secret", "proctor-service", time.Hour))},
		{"garbage", "not.a.token"},
		{"truncated", token[:len(token)-5]},
		{"wrong issuer", mustIssue(t, NewTokenManager("test-secret", "someone-else", time.Hour))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Parse(tt.token); !errors.Is(err, ErrTokenInvalid) {
				t.Errorf("Parse() error = %v, want ErrTokenInvalid", err)
			}
		})
	}
}

func mustIssue(t *testing.T, m *TokenManager) string {
	t.Helper()
	token, _, err := m.Issue(1, models.RoleProctor)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	return token
}
