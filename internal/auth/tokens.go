package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tablefare/restaurant-backend/internal/models"
)

// TokenIssuer mints and verifies signed bearer tokens. The secret and TTL are
// construction parameters rather than process-wide state so each environment
// (and each test) carries its own.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates an issuer signing with secret; tokens live for ttl.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs an HS256 token whose subject is the user's id.
func (ti *TokenIssuer) Issue(u *models.User) (string, error) {
	now := ti.now()
	claims := jwt.RegisteredClaims{
		Subject:   u.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ti.ttl)),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString(ti.secret)
}

// Verify checks signature and expiry and returns the token's subject.
// Failures map to the package error kinds: ErrTokenExpired, ErrBadSignature
// and ErrMalformedToken. Verification never touches the credential store.
func (ti *TokenIssuer) Verify(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadSignature
		}
		return ti.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return ti.now() }))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrBadSignature):
			return "", ErrBadSignature
		default:
			return "", ErrMalformedToken
		}
	}
	if !tok.Valid || claims.Subject == "" {
		return "", ErrMalformedToken
	}
	return claims.Subject, nil
}

// RemainingLife returns how long raw stays valid, or zero for a token that is
// invalid or already expired. Used to size blacklist TTLs on logout.
func (ti *TokenIssuer) RemainingLife(raw string) time.Duration {
	claims := &jwt.RegisteredClaims{}
	if _, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return ti.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return ti.now() })); err != nil {
		return 0
	}
	if claims.ExpiresAt == nil {
		return 0
	}
	if d := claims.ExpiresAt.Time.Sub(ti.now()); d > 0 {
		return d
	}
	return 0
}
