package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Roles carried in the role claim
const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims are the identity fields read from a bearer token
type Claims struct {
	Sub  string `json:"sub"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier validates HS256 bearer tokens issued by the identity provider
type Verifier struct {
	secret []byte
	now    func() time.Time
}

// NewVerifier signs and verifies HS256 tokens with secret
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret), now: time.Now}
}

// Issue signs a token for sub. The service only verifies tokens in production; Issue backs tests and local tooling.
func (v *Verifier) Issue(sub, role string, ttl time.Duration) (string, error) {
	claims := Claims{Sub: sub, Role: role, RegisteredClaims: jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(v.now()),
		ExpiresAt: jwt.NewNumericDate(v.now().Add(ttl)),
	}}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

// Parse validates signature, algorithm and expiry and returns the claims. Tokens without a subject or
// with an unknown role are rejected.
func (v *Verifier) Parse(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(v.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, ErrInvalidToken
	}
	if c.Sub == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	if c.Role != RoleAdmin && c.Role != RoleStaff {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, c.Role)
	}
	return c, nil
}
