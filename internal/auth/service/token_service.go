package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/egarc258/ecommerce-app/internal/auth/service TokenGenerator

import (
	"errors"
	"fmt"
	"time"

	autherror "github.com/egarc258/ecommerce-app/internal/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var errEmptySecret = errors.New("token secret must not be empty")

type TokenGenerator interface {
	Issue(subject string, claims TokenClaims, now time.Time) (string, error)
	Verify(tokenString string, now time.Time) (*JWTCustomClaims, error)
	TTL() time.Duration
}

// TokenClaims are the optional claims bound to a token next to its subject.
type TokenClaims struct {
	Email string
	Role  string
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	leeway time.Duration
	issuer string
}

func NewTokenService(secret string, ttl, leeway time.Duration, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, errEmptySecret
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}

	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		leeway: leeway,
		issuer: issuer,
	}, nil
}

func (ts *TokenService) Issue(subject string, claims TokenClaims, now time.Time) (string, error) {
	tokenClaims := JWTCustomClaims{
		Email: claims.Email,
		Role:  claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    ts.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims).SignedString(ts.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry against now. Only HS256 is accepted,
// whatever the token header claims.
func (ts *TokenService) Verify(tokenString string, now time.Time) (*JWTCustomClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithLeeway(ts.leeway),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
	if ts.issuer != "" {
		opts = append(opts, jwt.WithIssuer(ts.issuer))
	}

	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return ts.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherror.ErrTokenExpired
		}
		return nil, autherror.ErrTokenInvalid
	}

	if !token.Valid || claims.Subject == "" {
		return nil, autherror.ErrTokenInvalid
	}

	return claims, nil
}

func (ts *TokenService) TTL() time.Duration {
	return ts.ttl
}
