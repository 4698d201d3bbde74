package validator

import (
	"testing"

	"github.com/AP-CSE-2025/proctor-service/internal/models"
)

func TestSignupValidation(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     SignupRequest
		wantErr bool
	}{
		{
			name: "valid HOD",
			req: SignupRequest{
				Name:     "Dr. Meena Iyer",
				Email:    "meena@college.edu",
				Password: "secur3pass",
				Role:     models.RoleHOD,
			},
		},
		{
			name: "valid proctor",
			req: SignupRequest{
				Name:     "Arun Kumar",
				Email:    "arun@college.edu",
				Password: "passw0rd1",
				Role:     models.RoleProctor,
			},
		},
		{
			name:    "missing everything",
			req:     SignupRequest{},
			wantErr: true,
		},
		{
			name: "bad email",
			req: SignupRequest{
				Name:     "Arun Kumar",
				Email:    "not-an-email",
				Password: "passw0rd1",
				Role:     models.RoleProctor,
			},
			wantErr: true,
		},
		{
			name: "weak password",
			req: SignupRequest{
				Name:     "Arun Kumar",
				Email:    "arun@college.edu",
				Password: "short",
				Role:     models.RoleProctor,
			},
			wantErr: true,
		},
		{
			name: "password without digit",
			req: SignupRequest{
				Name:     "Arun Kumar",
				Email:    "arun@college.edu",
				Password: "longenoughpassword",
				Role:     models.RoleProctor,
			},
			wantErr: true,
		},
		{
			name: "unknown role",
			req: SignupRequest{
				Name:     "Arun Kumar",
				Email:    "arun@college.edu",
				Password: "passw0rd1",
				Role:     "Admin",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(&tt.req)
			if (len(errs) > 0) != tt.wantErr {
				t.Errorf("Validate() errors = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestRollNumberRule(t *testing.T) {
	v := New()

	tests := []struct {
		roll    string
		wantErr bool
	}{
		{"21CSE042", false},
		{"22LCS007", false},
		{"21cse042", true},
		{"CSE042", true},
		{"21CSE42", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.roll, func(t *testing.T) {
			req := CreateStudentRequest{
				RollNumber: tt.roll,
				Name:       "Ravi Teja",
				Year:       2,
				Department: "CSE",
			}
			errs := v.Validate(&req)
			if (len(errs) > 0) != tt.wantErr {
				t.Errorf("Validate(%q) errors = %v, wantErr %v", tt.roll, errs, tt.wantErr)
			}
		})
	}
}
