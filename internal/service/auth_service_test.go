package service

import (
	"testing"
	"time"

	"github.com/qubitgyan/qubitgyan-backend/internal/config"
	"github.com/qubitgyan/qubitgyan-backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService() *AuthService {
	cfg := &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: bcrypt.MinCost,
	}
	return NewAuthService(cfg, nil)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	svc := newAuthService()

	hash, err := svc.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := svc.CheckPassword(hash, "hunter22"); err != nil {
		t.Errorf("CheckPassword rejected correct password: %v", err)
	}
	if err := svc.CheckPassword(hash, "wrong"); err != ErrInvalidCredentials {
		t.Errorf("CheckPassword err = %v, want ErrInvalidCredentials", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newAuthService()

	tests := []struct {
		name     string
		user     model.User
		wantType TokenType
	}{
		{"student", model.User{ID: 5, Email: "s@example.com"}, TokenTypeStudent},
		{"staff", model.User{ID: 9, Email: "t@example.com", IsStaff: true}, TokenTypeStaff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signed, err := svc.GenerateToken(&tt.user)
			if err != nil {
				t.Fatalf("GenerateToken: %v", err)
			}

			claims, err := svc.ValidateToken(signed)
			if err != nil {
				t.Fatalf("ValidateToken: %v", err)
			}
			if claims.UserID != tt.user.ID {
				t.Errorf("UserID = %d, want %d", claims.UserID, tt.user.ID)
			}
			if claims.TokenType != tt.wantType {
				t.Errorf("TokenType = %s, want %s", claims.TokenType, tt.wantType)
			}
		})
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	svc := newAuthService()

	signed, err := svc.GenerateToken(&model.User{ID: 1})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other := NewAuthService(&config.Config{JWTSecret: "other-secret", JWTExpiry: time.Hour}, nil)
	if _, err := other.ValidateToken(signed); err == nil {
		t.Error("token signed with a different secret validated")
	}

	if _, err := svc.ValidateToken(signed + "x"); err == nil {
		t.Error("corrupted token validated")
	}
}
