package auth

import (
	"context"
	"testing"
	"time"

	"github.com/curvelearn/curve-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "thisisasecretkeythatis32charslong!!"

// signToken builds a token the way the account collaborator does.
func signToken(t *testing.T, secret string, userID uuid.UUID, issuedAt, expiresAt time.Time) string {
	t.Helper()
	claims := jwtCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newTestService(t *testing.T, now time.Time) *hmacJWTService {
	t.Helper()
	service, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret})
	require.NoError(t, err)
	impl := service.(*hmacJWTService)
	impl.timeFunc = func() time.Time { return now }
	return impl
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("rejects a short secret", func(t *testing.T) {
		t.Parallel()
		_, err := NewJWTService(config.AuthConfig{JWTSecret: "tooshort"})
		assert.Error(t, err)
	})

	t.Run("accepts a long secret", func(t *testing.T) {
		t.Parallel()
		service, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret})
		require.NoError(t, err)
		assert.NotNil(t, service)
	})
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("valid token yields the user ID", func(t *testing.T) {
		t.Parallel()
		service := newTestService(t, now)
		token := signToken(t, testSecret, userID, now.Add(-time.Minute), now.Add(time.Hour))

		claims, err := service.ValidateToken(context.Background(), token)

		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, userID.String(), claims.Subject)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()
		service := newTestService(t, now)
		token := signToken(t, testSecret, userID, now.Add(-2*time.Hour), now.Add(-time.Hour))

		_, err := service.ValidateToken(context.Background(), token)

		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		t.Parallel()
		service := newTestService(t, now)
		token := signToken(t, "adifferentsecretthatisthirtytwochars!", userID, now, now.Add(time.Hour))

		_, err := service.ValidateToken(context.Background(), token)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("malformed token", func(t *testing.T) {
		t.Parallel()
		service := newTestService(t, now)

		_, err := service.ValidateToken(context.Background(), "not.a.token")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token without a user ID", func(t *testing.T) {
		t.Parallel()
		service := newTestService(t, now)
		token := signToken(t, testSecret, uuid.Nil, now, now.Add(time.Hour))

		_, err := service.ValidateToken(context.Background(), token)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expiry within the clock skew is tolerated", func(t *testing.T) {
		t.Parallel()
		service := newTestService(t, now)
		token := signToken(t, testSecret, userID, now.Add(-time.Hour), now.Add(-time.Minute))

		_, err := service.ValidateToken(context.Background(), token)

		assert.NoError(t, err, "one minute past expiry is within the two-minute skew")
	})
}
