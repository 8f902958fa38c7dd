package services

import (
	"context"
	"testing"
	"time"

	"github.com/vietlingo/vietlingo-backend/internal/repos"
)

func newAuthServiceForTest(t *testing.T, ttl time.Duration) (AuthService, *testDeps) {
	t.Helper()
	deps := newTestDeps(t)
	svc := NewAuthService(
		deps.tx,
		repos.NewUserRepo(deps.tx, deps.log),
		repos.NewUserTokenRepo(deps.tx, deps.log),
		"unit-test-secret",
		ttl,
		deps.log,
	)
	return svc, deps
}

func TestAuthLoginAndTokenRoundTrip(t *testing.T) {
	svc, _ := newAuthServiceForTest(t, time.Hour)
	ctx := context.Background()

	result, err := svc.Login(ctx, "  auth-user  ")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !result.IsNewUser {
		t.Fatal("first login should create the user")
	}
	if result.User.Username != "auth-user" {
		t.Fatalf("username not trimmed: %q", result.User.Username)
	}
	if result.Token == "" {
		t.Fatal("no token issued")
	}

	user, err := svc.GetUserFromToken(ctx, result.Token)
	if err != nil {
		t.Fatalf("GetUserFromToken: %v", err)
	}
	if user.ID != result.User.ID {
		t.Fatalf("token resolved to wrong user: %s vs %s", user.ID, result.User.ID)
	}

	// The second login reuses the account and issues a fresh token.
	second, err := svc.Login(ctx, "auth-user")
	if err != nil {
		t.Fatalf("second Login: %v", err)
	}
	if second.IsNewUser {
		t.Fatal("second login recreated the user")
	}
	if second.User.ID != result.User.ID {
		t.Fatalf("second login returned a different user: %s vs %s", second.User.ID, result.User.ID)
	}

	if _, err := svc.Login(ctx, "   "); err == nil {
		t.Fatal("expected error for blank username")
	}
}

func TestAuthRejectsBadTokens(t *testing.T) {
	svc, _ := newAuthServiceForTest(t, time.Hour)
	ctx := context.Background()

	if _, err := svc.GetUserFromToken(ctx, ""); err == nil {
		t.Fatal("expected error for empty token")
	}
	if _, err := svc.GetUserFromToken(ctx, "not-a-jwt"); err == nil {
		t.Fatal("expected error for malformed token")
	}

	// A well-formed token with no stored row is rejected: the issuing
	// transaction here is separate from the one the lookup runs in.
	other, _ := newAuthServiceForTest(t, time.Hour)
	foreign, err := other.Login(ctx, "other-user")
	if err != nil {
		t.Fatalf("Login on other service: %v", err)
	}
	if _, err := svc.GetUserFromToken(ctx, foreign.Token); err == nil {
		t.Fatal("expected error for a token without a stored row")
	}
}

func TestAuthExpiredToken(t *testing.T) {
	svc, _ := newAuthServiceForTest(t, -time.Minute)
	ctx := context.Background()

	result, err := svc.Login(ctx, "expired-user")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := svc.GetUserFromToken(ctx, result.Token); err == nil {
		t.Fatal("expected error for an expired token")
	}
}
