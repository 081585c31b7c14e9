package service

import (
	"strings"
	"testing"
	"time"

	autherror "github.com/egarc258/ecommerce-app/internal/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

var testNow = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	ts, err := NewTokenService(testSecret, time.Hour, 0, "ecommerce-app")
	require.NoError(t, err)
	return ts
}

func TestNewTokenService(t *testing.T) {
	tests := []struct {
		name        string
		secret      string
		ttl         time.Duration
		expectError bool
	}{
		{name: "valid parameters", secret: "secret", ttl: 15 * time.Minute},
		{name: "empty secret", secret: "", ttl: 15 * time.Minute, expectError: true},
		{name: "zero ttl", secret: "secret", ttl: 0, expectError: true},
		{name: "negative ttl", secret: "secret", ttl: -time.Minute, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTokenService(tt.secret, tt.ttl, 0, "")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, ts)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ttl, ts.TTL())
		})
	}
}

func TestTokenService_Issue(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Issue("user-123", TokenClaims{Email: "ann@x.com", Role: "CUSTOMER"}, testNow)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims := &JWTCustomClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}, jwt.WithTimeFunc(func() time.Time { return testNow }))
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, jwt.SigningMethodHS256.Alg(), parsed.Method.Alg())

	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "ann@x.com", claims.Email)
	assert.Equal(t, "CUSTOMER", claims.Role)
	assert.Equal(t, "ecommerce-app", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.IssuedAt.Time.Equal(testNow))
	assert.True(t, claims.ExpiresAt.Time.Equal(testNow.Add(time.Hour)))
}

func TestTokenService_Issue_UniqueIDs(t *testing.T) {
	ts := newTestTokenService(t)

	first, err := ts.Issue("user-123", TokenClaims{}, testNow)
	require.NoError(t, err)
	second, err := ts.Issue("user-123", TokenClaims{}, testNow)
	require.NoError(t, err)

	// Same subject and instant still yield distinct tokens because of jti.
	assert.NotEqual(t, first, second)
}

func TestTokenService_Verify(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Issue("user-123", TokenClaims{Email: "ann@x.com", Role: "ADMIN"}, testNow)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		claims, err := ts.Verify(token, testNow)
		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.Subject)
		assert.Equal(t, "ann@x.com", claims.Email)
		assert.Equal(t, "ADMIN", claims.Role)
	})

	t.Run("valid just before expiry", func(t *testing.T) {
		_, err := ts.Verify(token, testNow.Add(time.Hour-time.Second))
		assert.NoError(t, err)
	})

	t.Run("expired after ttl", func(t *testing.T) {
		claims, err := ts.Verify(token, testNow.Add(time.Hour+time.Second))
		assert.ErrorIs(t, err, autherror.ErrTokenExpired)
		assert.Nil(t, claims)
	})

	t.Run("tampered payload", func(t *testing.T) {
		parts := strings.Split(token, ".")
		other, err := ts.Issue("someone-else", TokenClaims{Role: "ADMIN"}, testNow)
		require.NoError(t, err)
		forged := parts[0] + "." + strings.Split(other, ".")[1] + "." + parts[2]

		_, err = ts.Verify(forged, testNow)
		assert.ErrorIs(t, err, autherror.ErrTokenInvalid)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, raw := range []string{"", "not-a-token", "a.b.c", "Bearer " + token} {
			_, err := ts.Verify(raw, testNow)
			assert.ErrorIs(t, err, autherror.ErrTokenInvalid, raw)
		}
	})
}

func TestTokenService_Verify_ForeignKey(t *testing.T) {
	ts := newTestTokenService(t)
	other, err := NewTokenService("a-different-secret", time.Hour, 0, "ecommerce-app")
	require.NoError(t, err)

	token, err := other.Issue("user-123", TokenClaims{}, testNow)
	require.NoError(t, err)

	_, err = ts.Verify(token, testNow)
	assert.ErrorIs(t, err, autherror.ErrTokenInvalid)

	// The signature is checked before expiry, so a forged expired token is never reported as expired.
	_, err = ts.Verify(token, testNow.Add(2*time.Hour))
	assert.ErrorIs(t, err, autherror.ErrTokenInvalid)
}

func TestTokenService_Verify_AlgorithmPinned(t *testing.T) {
	ts := newTestTokenService(t)

	claims := JWTCustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			Issuer:    "ecommerce-app",
			IssuedAt:  jwt.NewNumericDate(testNow),
			ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour)),
		},
	}

	t.Run("alg none", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = ts.Verify(token, testNow)
		assert.ErrorIs(t, err, autherror.ErrTokenInvalid)
	})

	t.Run("HS512 with the same key", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = ts.Verify(token, testNow)
		assert.ErrorIs(t, err, autherror.ErrTokenInvalid)
	})
}

func TestTokenService_Verify_Claims(t *testing.T) {
	ts := newTestTokenService(t)

	sign := func(t *testing.T, claims JWTCustomClaims) string {
		t.Helper()
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		return token
	}

	t.Run("missing subject", func(t *testing.T) {
		token, err := ts.Issue("", TokenClaims{}, testNow)
		require.NoError(t, err)

		_, err = ts.Verify(token, testNow)
		assert.ErrorIs(t, err, autherror.ErrTokenInvalid)
	})

	t.Run("missing expiry", func(t *testing.T) {
		token := sign(t, JWTCustomClaims{RegisteredClaims: jwt.RegisteredClaims{
			Subject: "user-123",
			Issuer:  "ecommerce-app",
		}})

		_, err := ts.Verify(token, testNow)
		assert.ErrorIs(t, err, autherror.ErrTokenInvalid)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token := sign(t, JWTCustomClaims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour)),
		}})

		_, err := ts.Verify(token, testNow)
		assert.ErrorIs(t, err, autherror.ErrTokenInvalid)
	})
}

func TestTokenService_Verify_Leeway(t *testing.T) {
	ts, err := NewTokenService(testSecret, time.Hour, 30*time.Second, "")
	require.NoError(t, err)

	token, err := ts.Issue("user-123", TokenClaims{}, testNow)
	require.NoError(t, err)

	_, err = ts.Verify(token, testNow.Add(time.Hour+10*time.Second))
	assert.NoError(t, err)

	_, err = ts.Verify(token, testNow.Add(time.Hour+time.Minute))
	assert.ErrorIs(t, err, autherror.ErrTokenExpired)
}
