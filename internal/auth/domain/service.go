package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	SignUp(ctx context.Context, req SignUpRequest) (*LoginResult, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	LoginWithIdentity(ctx context.Context, req IdentityLoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	Authenticate(ctx context.Context, rawToken string) (*Session, error)
	GetUser(ctx context.Context, id snowflake.ID) (*UserResponse, error)
}

type SignUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	UserAgent   string `json:"-"`
	IPAddress   string `json:"-"`
}

type LoginRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	UserAgent string `json:"-"`
	IPAddress string `json:"-"`
}

// IdentityLoginRequest carries a verified identity from an external provider.
type IdentityLoginRequest struct {
	Provider    string
	ExternalID  string
	Email       string
	DisplayName string
	Picture     string
	AllowSignUp bool
	UserAgent   string
	IPAddress   string
}

type LoginResult struct {
	User      UserResponse
	RawToken  string
	ExpiresAt time.Time
	SessionID snowflake.ID
}

type UserResponse struct {
	ID          string         `json:"id"`
	Email       string         `json:"email"`
	DisplayName string         `json:"display_name"`
	Provider    string         `json:"provider"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
