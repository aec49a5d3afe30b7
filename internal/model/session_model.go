package model

import (
	"time"

	"github.com/google/uuid"
)

type UserSession struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	RefreshToken string
	UserAgent    string
	ClientIP     string
	IsActive     bool
	CreatedAt    time.Time
	ExpiresAt    time.Time
	RevokedAt    *time.Time
}
