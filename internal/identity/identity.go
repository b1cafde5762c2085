// Package identity resolves the current session identity from
// identity-provider bearer tokens. The rest of the application receives
// an explicit Identity value instead of reading ambient global state.
package identity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// State is the typed session state owned by the session controller.
type State string

const (
	// Authenticated means a valid provider token was presented.
	Authenticated State = "authenticated"
	// Anonymous means no token was presented; the demo identity is used.
	Anonymous State = "anonymous"
	// Loading means the session has not been resolved yet.
	Loading State = "loading"
	// Error means token resolution failed.
	Error State = "error"
)

// Demo identity used when no provider identity is present, enabling a
// preview mode against a shared profile.
const (
	DemoSubject = "neon-echo"
	DemoName    = "Neon Echo"
)

// Identity is the resolved current user for one request.
type Identity struct {
	State   State
	Subject string
	Name    string
	Email   string
}

// Anon returns the demo identity.
func Anon() Identity {
	return Identity{State: Anonymous, Subject: DemoSubject, Name: DemoName}
}

// Claims is the subset of provider token claims the service reads.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Resolver verifies provider bearer tokens with a shared secret.
type Resolver struct {
	secret []byte
}

// NewResolver returns a Resolver that validates tokens signed with the
// given HMAC secret.
func NewResolver(secret string) *Resolver {
	return &Resolver{secret: []byte(secret)}
}

// FromToken resolves an identity from a raw bearer token. An empty
// token yields the Anonymous demo identity. An invalid or expired token
// yields an Error-state identity and the verification error.
func (r *Resolver) FromToken(raw string) (Identity, error) {
	if strings.TrimSpace(raw) == "" {
		return Anon(), nil
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return r.secret, nil
	})
	if err != nil || !token.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return Identity{State: Error}, err
	}
	if claims.Subject == "" {
		return Identity{State: Error}, errors.New("token missing subject")
	}

	return Identity{
		State:   Authenticated,
		Subject: claims.Subject,
		Name:    claims.Name,
		Email:   claims.Email,
	}, nil
}

// RejectionMessage maps a provider failure cause to one of a small set
// of user-facing messages, defaulting to a generic one for anything
// unrecognized.
func RejectionMessage(cause string) string {
	switch {
	case strings.Contains(cause, "invalid-credential"):
		return "Invalid email or password."
	case strings.Contains(cause, "email-already-in-use"):
		return "Email already in use."
	case strings.Contains(cause, "weak-password"):
		return "Password should be at least 6 characters."
	default:
		return "Authentication failed. Please try again."
	}
}
