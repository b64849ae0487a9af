package models

import (
	"time"

	"gorm.io/gorm"
)

// ServerStart records one boot of the API server.
// All timestamps are stored in UTC.
type ServerStart struct {
	// ID is a random UUID (RFC 4122 v4) generated at boot
	ID string `gorm:"primaryKey;type:text;not null" json:"id"`

	// StartedAt is when the process began serving
	StartedAt time.Time `gorm:"type:datetime;not null;index" json:"started_at"`

	// Environment is the NODE_ENV value the process ran with ("development" when unset)
	Environment string `gorm:"type:text;not null" json:"environment"`

	// Version is the API version string served at /api/v1
	Version string `gorm:"type:text;not null" json:"version"`

	// Port is the listen port
	Port string `gorm:"type:text;not null" json:"port"`

	CreatedAt time.Time `gorm:"type:datetime;not null" json:"created_at"`
}

// TableName overrides the default table name for GORM
func (ServerStart) TableName() string {
	return "server_starts"
}

// BeforeCreate is a GORM hook that ensures timestamps are in UTC
func (s *ServerStart) BeforeCreate(tx *gorm.DB) error {
	s.CreatedAt = time.Now().UTC()
	if s.StartedAt.IsZero() {
		s.StartedAt = s.CreatedAt
	} else {
		s.StartedAt = s.StartedAt.UTC()
	}
	return nil
}

// Age returns how long ago the server started
func (s *ServerStart) Age() time.Duration {
	return time.Since(s.StartedAt)
}
