package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/wholesale-hub/wholesale-service/internal/auth"
	"github.com/wholesale-hub/wholesale-service/internal/config"
	"github.com/wholesale-hub/wholesale-service/internal/domain"
	"github.com/wholesale-hub/wholesale-service/internal/observability"
	"github.com/wholesale-hub/wholesale-service/internal/repository"
	apperrors "github.com/wholesale-hub/wholesale-service/pkg/util/errorutil"
)

// CredentialVerifier hashes and checks passwords.
type CredentialVerifier interface {
	Hash(password string) (string, error)
	Compare(hashed, plain string) error
}

// AuthService coordinates signup, login, refresh and logout. Each user has
// at most one refresh session.
type AuthService struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	tx         repository.TxManager
	tokens     *auth.TokenManager
	verifier   CredentialVerifier
	accessTTL  time.Duration
	refreshTTL time.Duration
	sessionTTL time.Duration
	now        func() time.Time
	logger     *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	SessionRepo repository.SessionRepository
	TxManager   repository.TxManager
	Tokens      *auth.TokenManager
	Verifier    CredentialVerifier
	Logger      *zap.Logger
	Now         func() time.Time
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		users:      deps.UserRepo,
		sessions:   deps.SessionRepo,
		tx:         deps.TxManager,
		tokens:     deps.Tokens,
		verifier:   deps.Verifier,
		accessTTL:  cfg.AccessTokenTTL(),
		refreshTTL: cfg.RefreshTokenTTL(),
		sessionTTL: cfg.SessionTTL(),
		now:        now,
		logger:     deps.Logger,
	}
}

// Signup registers an account under a freshly generated subject id.
func (s *AuthService) Signup(ctx context.Context, loginID, password string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}

	hash, err := s.verifier.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		LoginID:      loginID,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.ErrLoginIDTaken()
		}
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("op", "signup"),
		zap.String("login_id", observability.MaskLoginID(loginID)),
		zap.String("subject_id", user.ID),
		zap.String("role", string(role)))
	return user, nil
}

// Login verifies credentials, issues a token pair and replaces any prior
// refresh session of the user.
func (s *AuthService) Login(ctx context.Context, loginID, password string) (*domain.TokenPair, error) {
	masked := observability.MaskLoginID(loginID)

	user, err := s.users.GetByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("login rejected: unknown user", zap.String("op", "login"), zap.String("login_id", masked))
			return nil, apperrors.ErrUserNotFound()
		}
		return nil, err
	}
	if err := s.verifier.Compare(user.PasswordHash, password); err != nil {
		s.logger.Warn("login rejected: bad password", zap.String("op", "login"), zap.String("login_id", masked))
		return nil, apperrors.ErrInvalidCredentials()
	}

	accessToken, _, err := s.tokens.IssueAccessToken(user.ID, user.LoginID, user.Role, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refreshToken, _, err := s.tokens.IssueRefreshToken(user.ID, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := &domain.RefreshSession{
		Token:     refreshToken,
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	// A concurrent login can insert after our delete; Replace upserts on the
	// user so the last commit wins instead of failing on the unique key.
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.sessions.DeleteByUser(ctx, user.ID); err != nil {
			return err
		}
		return s.sessions.Replace(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("login succeeded",
		zap.String("op", "login"),
		zap.String("login_id", masked),
		zap.String("subject_id", user.ID))
	return &domain.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh issues a new access token for a live refresh session. The refresh
// token itself is returned unchanged.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.tokens.Decode(refreshToken)
	if err != nil {
		s.logger.Warn("refresh rejected: token invalid", zap.String("op", "refresh"), zap.Error(err))
		return nil, err
	}

	session, err := s.sessions.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("refresh rejected: no session",
				zap.String("op", "refresh"), zap.String("subject_id", claims.Subject))
			return nil, apperrors.ErrRefreshTokenInvalid()
		}
		return nil, err
	}
	if session.UserID != claims.Subject {
		s.logger.Warn("refresh rejected: session subject mismatch",
			zap.String("op", "refresh"), zap.String("subject_id", claims.Subject))
		return nil, apperrors.ErrRefreshTokenInvalid()
	}
	if session.Expired(s.now()) {
		if _, err := s.sessions.DeleteByToken(ctx, refreshToken); err != nil {
			s.logger.Error("failed to delete expired session", zap.String("op", "refresh"), zap.Error(err))
		}
		s.logger.Warn("refresh rejected: session expired",
			zap.String("op", "refresh"), zap.String("subject_id", claims.Subject))
		return nil, apperrors.ErrRefreshTokenExpired()
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound()
		}
		return nil, err
	}

	accessToken, _, err := s.tokens.IssueAccessToken(user.ID, user.LoginID, user.Role, s.accessTTL)
	if err != nil {
		return nil, err
	}

	s.logger.Info("access token refreshed", zap.String("op", "refresh"), zap.String("subject_id", user.ID))
	return &domain.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Logout revokes the refresh session matching the token. It is idempotent:
// an unknown token is logged and ignored. A token belonging to a subject
// other than requesterID is never revoked.
func (s *AuthService) Logout(ctx context.Context, requesterID, refreshToken string) error {
	subject, err := s.tokens.ExtractSubject(refreshToken)
	if err != nil {
		s.logger.Warn("logout with unreadable refresh token", zap.String("op", "logout"),
			zap.String("requester_id", requesterID), zap.Error(err))
		return nil
	}
	if requesterID != "" && subject != requesterID {
		s.logger.Warn("logout refused: token belongs to another subject", zap.String("op", "logout"),
			zap.String("requester_id", requesterID), zap.String("subject_id", subject))
		return nil
	}

	deleted, err := s.sessions.DeleteByToken(ctx, refreshToken)
	if err != nil {
		return err
	}
	if deleted == 0 {
		s.logger.Warn("logout: no session for refresh token", zap.String("op", "logout"), zap.String("subject_id", subject))
		return nil
	}

	s.logger.Info("logout succeeded", zap.String("op", "logout"), zap.String("subject_id", subject))
	return nil
}
