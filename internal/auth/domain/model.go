// Package domain contains core types for the auth service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// User is a catalog owner.
type User struct {
	ID           snowflake.ID      `gorm:"primaryKey"`
	Email        string            `gorm:"column:email;type:varchar(320);not null;uniqueIndex"`
	DisplayName  string            `gorm:"column:display_name;type:text;not null"`
	Provider     string            `gorm:"column:provider;type:text;not null"`
	ExternalID   string            `gorm:"column:external_id;type:varchar(255);not null;uniqueIndex"`
	PasswordHash *string           `gorm:"type:text"`
	Metadata     datatypes.JSONMap `gorm:"not null"`
	LastLoginAt  *time.Time        `gorm:"column:last_login_at"`
	CreatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// Session represents a persisted login session. Only a hash of the token is
// stored.
type Session struct {
	ID               snowflake.ID `gorm:"primaryKey"`
	UserID           snowflake.ID `gorm:"column:user_id;not null;index"`
	SessionTokenHash string       `gorm:"column:session_token_hash;type:varchar(128);not null;uniqueIndex"`
	UserAgent        string       `gorm:"column:user_agent;type:text"`
	IPAddress        string       `gorm:"column:ip_address;type:text"`
	ExpiresAt        time.Time    `gorm:"column:expires_at;not null;index"`
	RevokedAt        *time.Time   `gorm:"column:revoked_at"`
	CreatedAt        time.Time    `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	LastSeenAt       time.Time    `gorm:"column:last_seen_at;not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Session) TableName() string { return "sessions" }
