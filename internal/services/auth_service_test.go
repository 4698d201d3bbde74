package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/AP-CSE-2025/proctor-service/internal/auth"
	"github.com/AP-CSE-2025/proctor-service/internal/models"
)

func newAuthService(t *testing.T) (AuthService, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	tokens := auth.NewTokenManager("test-secret", "proctor-service", 8*time.Hour)
	svc := NewAuthService(repo, tokens, testLogger(), testValidator())
	return svc, repo
}

func hodSignupRequest() *SignupRequest {
	return &SignupRequest{
		Name:       "Dr. Meena Iyer",
		Email:      "meena.iyer@college.edu",
		Password:   "Secret123",
		Role:       models.RoleHOD,
		Department: "CSE",
		Office:     "A-Block 201",
		Contact:    "+91-9000000001",
	}
}

func TestSignupHODCreatesSideRows(t *testing.T) {
	svc, repo := newAuthService(t)

	user, err := svc.Signup(context.Background(), hodSignupRequest())
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.Role != models.RoleHOD {
		t.Errorf("role = %s, want HOD", user.Role)
	}

	info, err := repo.users.GetHODInfo(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("hod info missing: %v", err)
	}
	if info.Department != "CSE" {
		t.Errorf("department = %q, want CSE", info.Department)
	}

	availability, err := repo.availability.GetByUserID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("availability row missing: %v", err)
	}
	if availability.Available {
		t.Error("new HOD should start unavailable")
	}
}

func TestSignupProctorSkipsHODRows(t *testing.T) {
	svc, repo := newAuthService(t)

	user, err := svc.Signup(context.Background(), &SignupRequest{
		Name:     "Arun Prasad",
		Email:    "arun.prasad@college.edu",
		Password: "Secret123",
		Role:     models.RoleProctor,
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, err := repo.users.GetHODInfo(context.Background(), user.ID); err == nil {
		t.Error("proctor signup created hod info")
	}
	if _, err := repo.availability.GetByUserID(context.Background(), user.ID); err == nil {
		t.Error("proctor signup created availability row")
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	if _, err := svc.Signup(context.Background(), hodSignupRequest()); err != nil {
		t.Fatalf("first signup: %v", err)
	}

	_, err := svc.Signup(context.Background(), hodSignupRequest())
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("err = %v, want ErrDuplicateEmail", err)
	}
}

func TestSignupConcurrentDuplicateEmail(t *testing.T) {
	svc, repo := newAuthService(t)

	// A racing signup that commits between the existence check and the
	// insert surfaces as a unique-index violation on the insert itself.
	repo.users.createErr = gorm.ErrDuplicatedKey

	_, err := svc.Signup(context.Background(), hodSignupRequest())
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("err = %v, want ErrDuplicateEmail", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService(t)

	created, err := svc.Signup(context.Background(), hodSignupRequest())
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "meena.iyer@college.edu",
		Password: "Secret123",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Error("empty token")
	}
	if resp.User.ID != created.ID {
		t.Errorf("user id = %d, want %d", resp.User.ID, created.ID)
	}
	if remaining := time.Until(resp.ExpiresAt); remaining < 7*time.Hour {
		t.Errorf("token expires in %s, want about 8h", remaining)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _ := newAuthService(t)

	if _, err := svc.Signup(context.Background(), hodSignupRequest()); err != nil {
		t.Fatalf("signup: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "meena.iyer@college.edu", "WrongPass1"},
		{"unknown email", "nobody@college.edu", "Secret123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			})
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}
