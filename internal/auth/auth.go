// Package auth resolves a bearer token into a session capability once per
// request. Handlers ask the session for permissions instead of re-checking
// roles ad hoc.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleMember    = "member"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

var (
	ErrNoToken      = errors.New("no bearer token supplied")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Session is the authorization capability for one authenticated actor.
type Session struct {
	UserID string
	Role   string
}

// CanModerate reports whether the actor may change statuses and delete
// feedback.
func (s Session) CanModerate() bool {
	return s.Role == RoleModerator || s.Role == RoleAdmin
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// Verifier parses and validates session tokens against a shared secret.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Parse validates an "Authorization: Bearer ..." header value and returns
// the session it carries. Unknown roles degrade to member rather than fail,
// so a stale token never locks a user out of read paths.
func (v *Verifier) Parse(authHeader string) (Session, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
	if raw == "" {
		return Session{}, ErrNoToken
	}

	var c claims
	token, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return Session{}, ErrInvalidToken
	}
	if c.Subject == "" {
		return Session{}, ErrInvalidToken
	}

	role := c.Role
	switch role {
	case RoleMember, RoleModerator, RoleAdmin:
	default:
		role = RoleMember
	}
	return Session{UserID: c.Subject, Role: role}, nil
}

// Issue signs a session token. Used by tests and local tooling; production
// tokens come from the identity provider sharing the same secret.
func (v *Verifier) Issue(userID, role string) (string, error) {
	c := claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(v.secret)
}
