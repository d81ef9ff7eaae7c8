// Package auth implements the back-office gate: a single shared password
// exchanged for a signed bearer token, and the middleware that checks it on
// admin routes. The password is a demo convenience, not a security boundary.
package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrBadPassword is returned by Login on a password mismatch. The caller
// surfaces it as an inline error and keeps the gate locked.
var ErrBadPassword = errors.New("auth: wrong admin password")

const adminRole = "admin"

// Claims are the JWT claims carried by an admin token.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Gate issues and verifies admin tokens against the shared password.
type Gate struct {
	password []byte
	secret   []byte
	ttl      time.Duration
}

// NewGate creates a Gate with the shared password, token signing secret and
// token lifetime.
func NewGate(password, secret string, ttl time.Duration) *Gate {
	return &Gate{password: []byte(password), secret: []byte(secret), ttl: ttl}
}

// Login compares password with the shared secret and, on a match, returns a
// signed HS256 bearer token carrying the admin role. A mismatch returns
// ErrBadPassword.
func (g *Gate) Login(password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(password), g.password) != 1 {
		return "", ErrBadPassword
	}

	now := time.Now()
	claims := Claims{
		Roles: []string{adminRole},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminRole,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
}

// ParseToken validates and parses a token string issued by Login.
func (g *Gate) ParseToken(tokenStr string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return g.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// GetBearerToken extracts the Bearer token from the Authorization header.
func GetBearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// Middleware rejects requests lacking a valid admin token with 401 before
// they reach the wrapped handler.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := GetBearerToken(r)
		if token == "" {
			unauthorized(w, "Missing bearer token")
			return
		}
		claims, err := g.ParseToken(token)
		if err != nil || !hasRole(claims.Roles, adminRole) {
			unauthorized(w, "Invalid admin token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func hasRole(roles []string, required string) bool {
	for _, r := range roles {
		if r == required {
			return true
		}
	}
	return false
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error": "` + message + `"}`))
}
