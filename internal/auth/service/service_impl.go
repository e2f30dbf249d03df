package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/smallbiznis/landedcost/internal/auth/domain"
	"github.com/smallbiznis/landedcost/internal/auth/password"
	"github.com/smallbiznis/landedcost/internal/clock"
	"github.com/smallbiznis/landedcost/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const (
	sessionTokenBytes = 32
	sessionTTL        = 7 * 24 * time.Hour
)

type Params struct {
	fx.In

	Log         *zap.Logger
	Repo        domain.Repository
	SessionRepo domain.SessionRepository
	GenID       *snowflake.Node
	Clock       clock.Clock
}

type Service struct {
	log         *zap.Logger
	repo        domain.Repository
	sessionRepo domain.SessionRepository
	genID       *snowflake.Node
	clock       clock.Clock
}

func New(p Params) domain.Service {
	return &Service{
		log:         p.Log.Named("auth.service"),
		repo:        p.Repo,
		sessionRepo: p.SessionRepo,
		genID:       p.GenID,
		clock:       p.Clock,
	}
}

func (s *Service) SignUp(ctx context.Context, req domain.SignUpRequest) (*domain.LoginResult, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, domain.ErrInvalidEmail
	}
	if !password.Acceptable(req.Password) {
		return nil, domain.ErrWeakPassword
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = defaultDisplayName(email)
	}
	user := &domain.User{
		ID:           s.genID.Generate(),
		Email:        email,
		DisplayName:  displayName,
		Provider:     domain.ProviderLocal,
		ExternalID:   uuid.NewString(),
		PasswordHash: &hashed,
		Metadata:     datatypes.JSONMap{"signup_source": domain.ProviderLocal},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrUserExists
		}
		return nil, err
	}

	s.log.Info("user signed up", zap.String("user_id", user.ID.String()))
	return s.startSession(ctx, user, req.UserAgent, req.IPAddress)
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if user.PasswordHash == nil || !password.Verify(req.Password, *user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.startSession(ctx, user, req.UserAgent, req.IPAddress)
}

// LoginWithIdentity signs in a user verified by an external provider,
// creating the account on first sight when sign-up is allowed. An existing
// local account with the same email is linked instead of duplicated.
func (s *Service) LoginWithIdentity(ctx context.Context, req domain.IdentityLoginRequest) (*domain.LoginResult, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil || strings.TrimSpace(req.ExternalID) == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByExternalID(ctx, req.Provider, req.ExternalID)
	if errors.Is(err, domain.ErrUserNotFound) {
		user, err = s.repo.FindByEmail(ctx, email)
	}

	switch {
	case err == nil:
		fields := map[string]any{"updated_at": s.clock.Now()}
		if req.Picture != "" {
			meta := user.Metadata
			if meta == nil {
				meta = datatypes.JSONMap{}
			}
			meta["picture"] = req.Picture
			fields["metadata"] = meta
		}
		if err := s.repo.UpdateFields(ctx, user.ID, fields); err != nil {
			return nil, err
		}
	case errors.Is(err, domain.ErrUserNotFound):
		if !req.AllowSignUp {
			return nil, domain.ErrSignUpDisabled
		}
		user, err = s.createExternalUser(ctx, email, req)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.startSession(ctx, user, req.UserAgent, req.IPAddress)
}

func (s *Service) createExternalUser(ctx context.Context, email string, req domain.IdentityLoginRequest) (*domain.User, error) {
	now := s.clock.Now()
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = defaultDisplayName(email)
	}
	meta := datatypes.JSONMap{"signup_source": req.Provider}
	if req.Picture != "" {
		meta["picture"] = req.Picture
	}

	user := &domain.User{
		ID:          s.genID.Generate(),
		Email:       email,
		DisplayName: displayName,
		Provider:    req.Provider,
		ExternalID:  strings.TrimSpace(req.ExternalID),
		Metadata:    meta,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrUserExists
		}
		return nil, err
	}
	s.log.Info("user signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("provider", req.Provider),
	)
	return user, nil
}

func (s *Service) Logout(ctx context.Context, rawToken string) error {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return domain.ErrInvalidSession
	}

	session, err := s.sessionRepo.GetSessionByTokenHash(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.ErrInvalidSession
		}
		return err
	}

	return s.sessionRepo.RevokeSession(ctx, session.ID, s.clock.Now())
}

func (s *Service) Authenticate(ctx context.Context, rawToken string) (*domain.Session, error) {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return nil, domain.ErrInvalidSession
	}

	session, err := s.sessionRepo.GetSessionByTokenHash(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrInvalidSession
		}
		return nil, err
	}

	now := s.clock.Now()
	if session.RevokedAt != nil {
		return nil, domain.ErrSessionRevoked
	}
	if now.After(session.ExpiresAt) {
		return nil, domain.ErrSessionExpired
	}

	if err := s.sessionRepo.UpdateLastSeen(ctx, session.ID, now); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Service) GetUser(ctx context.Context, id snowflake.ID) (*domain.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *Service) startSession(ctx context.Context, user *domain.User, userAgent, ip string) (*domain.LoginResult, error) {
	rawToken, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	session := &domain.Session{
		ID:               s.genID.Generate(),
		UserID:           user.ID,
		SessionTokenHash: hashToken(rawToken),
		UserAgent:        strings.TrimSpace(userAgent),
		IPAddress:        strings.TrimSpace(ip),
		ExpiresAt:        now.Add(sessionTTL),
		CreatedAt:        now,
		LastSeenAt:       now,
	}
	if err := s.sessionRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateFields(ctx, user.ID, map[string]any{"last_login_at": now}); err != nil {
		s.log.Warn("failed to record last login", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	return &domain.LoginResult{
		User:      toUserResponse(user),
		RawToken:  rawToken,
		ExpiresAt: session.ExpiresAt,
		SessionID: session.ID,
	}, nil
}

func toUserResponse(user *domain.User) domain.UserResponse {
	resp := domain.UserResponse{
		ID:          user.ID.String(),
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Provider:    user.Provider,
		CreatedAt:   user.CreatedAt,
	}
	if len(user.Metadata) > 0 {
		resp.Metadata = map[string]any(user.Metadata)
	}
	return resp
}

func normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(addr.Address)), nil
}

func defaultDisplayName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if strings.TrimSpace(local) != "" {
		return strings.TrimSpace(local)
	}
	return email
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
