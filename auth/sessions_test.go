package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLoginIssuesToken(t *testing.T) {
	sm := NewSessionManager("admin", "password", time.Hour, nil)
	ctx := context.Background()

	token, err := sm.Login(ctx, "admin", "password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
	if !sm.Validate(ctx, token) {
		t.Error("freshly issued token should validate")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	sm := NewSessionManager("admin", "password", time.Hour, nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		user     string
		password string
	}{
		{"wrong password", "admin", "nope"},
		{"wrong user", "root", "password"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := sm.Login(ctx, tt.user, tt.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestValidateExpiredSession(t *testing.T) {
	sm := NewSessionManager("admin", "password", -time.Minute, nil)
	ctx := context.Background()

	token, err := sm.Login(ctx, "admin", "password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sm.Validate(ctx, token) {
		t.Error("expired session should not validate")
	}
}

func TestLogout(t *testing.T) {
	sm := NewSessionManager("admin", "password", time.Hour, nil)
	ctx := context.Background()

	token, _ := sm.Login(ctx, "admin", "password")
	sm.Logout(ctx, token)
	if sm.Validate(ctx, token) {
		t.Error("logged-out token should not validate")
	}
}

func TestValidateUnknownToken(t *testing.T) {
	sm := NewSessionManager("admin", "password", time.Hour, nil)
	if sm.Validate(context.Background(), "not-a-token") {
		t.Error("unknown token should not validate")
	}
}
