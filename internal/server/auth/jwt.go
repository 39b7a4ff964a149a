// Package auth implements credential hashing, access token issuance and
// verification, and the guard that turns a bearer token into a user.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/QuantumCastro/Vitrum/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService signs and verifies HMAC JWT access tokens carrying the user
// id as subject.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService validates the signing setup. Only HMAC algorithms
// (HS256, HS384, HS512) are accepted.
func NewTokenService(secret, algorithm string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported token algorithm %q", algorithm)
	}
	return &TokenService{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue returns a signed token for subject that expires after the
// configured TTL.
func (s *TokenService) Issue(subject string) (string, error) {
	token := jwt.NewWithClaims(s.method, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(s.now().Add(s.ttl)),
	})
	return token.SignedString(s.secret)
}

// Verify checks signature, algorithm and expiry and returns the subject.
// Every failure is reported as common.ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}
	return claims.Subject, nil
}
