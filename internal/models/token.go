package models

import (
	"time"

	"github.com/google/uuid"
)

// RevokedToken blacklists a refresh token by its jti until it would have
// expired anyway.
type RevokedToken struct {
	JTI       uuid.UUID `gorm:"type:uuid;primary_key"`
	ExpiresAt time.Time `gorm:"not null"`
	RevokedAt time.Time `gorm:"autoCreateTime"`
}
