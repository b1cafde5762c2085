package identity_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/playbackhq/playback/internal/identity"
)

func signToken(t *testing.T, secret, subject, name, email string) string {
	t.Helper()
	claims := identity.Claims{
		Name:  name,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func TestFromToken_EmptyIsAnonymousDemo(t *testing.T) {
	r := identity.NewResolver("secret")

	for _, raw := range []string{"", "   "} {
		got, err := r.FromToken(raw)
		if err != nil {
			t.Fatalf("FromToken(%q): %v", raw, err)
		}
		if got.State != identity.Anonymous || got.Subject != identity.DemoSubject || got.Name != identity.DemoName {
			t.Errorf("FromToken(%q) = %+v; want the demo identity", raw, got)
		}
	}
}

func TestFromToken_ValidToken(t *testing.T) {
	r := identity.NewResolver("secret")
	raw := signToken(t, "secret", "uid-123", "Neon Echo", "band@example.com")

	got, err := r.FromToken(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := identity.Identity{
		State:   identity.Authenticated,
		Subject: "uid-123",
		Name:    "Neon Echo",
		Email:   "band@example.com",
	}
	if got != want {
		t.Errorf("identity = %+v; want %+v", got, want)
	}
}

func TestFromToken_WrongSecret(t *testing.T) {
	r := identity.NewResolver("secret")
	raw := signToken(t, "other-secret", "uid-123", "", "")

	got, err := r.FromToken(raw)
	if err == nil {
		t.Fatal("expected a verification error")
	}
	if got.State != identity.Error {
		t.Errorf("state = %q; want error", got.State)
	}
}

func TestFromToken_MissingSubject(t *testing.T) {
	r := identity.NewResolver("secret")
	raw := signToken(t, "secret", "", "Neon Echo", "")

	if _, err := r.FromToken(raw); err == nil {
		t.Fatal("expected an error for a token without a subject")
	}
}

func TestRejectionMessage(t *testing.T) {
	cases := []struct{ cause, want string }{
		{"auth/invalid-credential", "Invalid email or password."},
		{"auth/email-already-in-use", "Email already in use."},
		{"auth/weak-password", "Password should be at least 6 characters."},
		{"network timeout", "Authentication failed. Please try again."},
	}
	for _, tc := range cases {
		if got := identity.RejectionMessage(tc.cause); got != tc.want {
			t.Errorf("RejectionMessage(%q) = %q; want %q", tc.cause, got, tc.want)
		}
	}
}
