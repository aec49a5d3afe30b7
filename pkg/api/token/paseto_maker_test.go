package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSymmetricKey = "12345678901234567890123456789012"

func TestPasetoMaker(t *testing.T) {
	maker, err := NewPasetoMaker(testSymmetricKey)
	require.NoError(t, err)

	upn := "buyer@example.com"
	userID := uuid.New()
	duration := time.Minute

	issuedAt := time.Now().UTC()
	expiredAt := issuedAt.Add(duration)

	created, payload, err := maker.CreateToken(upn, userID, "user", duration)
	require.NoError(t, err)
	require.NotEmpty(t, created)
	require.NotEmpty(t, payload)

	payload, err = maker.VertifyToken(created)
	require.NoError(t, err)
	require.NotEmpty(t, payload)

	require.NotZero(t, payload.ID)
	require.Equal(t, upn, payload.UPN)
	require.Equal(t, userID, payload.UserId)
	require.Equal(t, "user", payload.Role)
	require.WithinDuration(t, issuedAt, payload.IssuedAt, time.Second)
	require.WithinDuration(t, expiredAt, payload.ExpiredAt, time.Second)
}

func TestExpiredPasetoToken(t *testing.T) {
	maker, err := NewPasetoMaker(testSymmetricKey)
	require.NoError(t, err)

	created, _, err := maker.CreateToken("buyer@example.com", uuid.New(), "user", -time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, created)

	payload, err := maker.VertifyToken(created)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrExpiredToken)
	require.Nil(t, payload)
}

func TestInvalidPasetoToken(t *testing.T) {
	maker, err := NewPasetoMaker(testSymmetricKey)
	require.NoError(t, err)

	payload, err := maker.VertifyToken("v2.local.not-a-real-token")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidToken)
	require.Nil(t, payload)
}

func TestInvalidKeySize(t *testing.T) {
	maker, err := NewPasetoMaker("too-short")
	require.Error(t, err)
	require.Nil(t, maker)
}
