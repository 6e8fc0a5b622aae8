package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/panel/internal/panel/domain"
	"github.com/aussiebroadwan/panel/internal/panel/store"
	"github.com/aussiebroadwan/panel/pkg/cryptox"
	"github.com/aussiebroadwan/panel/pkg/idx"
	"github.com/aussiebroadwan/panel/pkg/jwtx"
	"github.com/aussiebroadwan/panel/pkg/slogx"
	"github.com/pquerna/otp/totp"
)

type LoginInput struct {
	Username  string
	Password  string
	OTP       string
	IP        string
	UserAgent string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      domain.User
}

// Identity is an authenticated request: the token's claims plus the live
// user and session they map to.
type Identity struct {
	User    domain.User
	Session domain.Session
	Claims  jwtx.Claims
}

// AuthService issues and checks panel session tokens. Every token is backed
// by a session row keyed by the token fingerprint, so deleting the row
// revokes the token before it expires.
type AuthService struct {
	Store    store.Store
	Hasher   *cryptox.PasswordHasher
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Metrics  *AuthMetrics

	Issuer     string
	Audience   []string
	SessionTTL time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *AuthService) ttl() time.Duration {
	if s.SessionTTL > 0 {
		return s.SessionTTL
	}
	return jwtx.DefaultSessionTTL
}

// Login checks the credentials and opens a session. Unknown users, wrong
// passwords and disabled accounts all fail with ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	l := slogx.FromContext(ctx)
	username := strings.ToLower(strings.TrimSpace(in.Username))

	if username == "" || in.Password == "" {
		s.Metrics.login(loginInvalid)
		return LoginResult{}, ErrInvalidCredentials
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		s.Hasher.VerifyDummy(in.Password)
		l.Warn("login for unknown user", slog.String("username", username))
		s.Metrics.login(loginInvalid)
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		s.Metrics.login(loginError)
		return LoginResult{}, fmt.Errorf("load user: %w", err)
	}

	if err := s.Hasher.Verify(in.Password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Error("stored password hash unusable", slog.String("user_id", user.ID), slog.Any("error", err))
		}
		s.Metrics.login(loginInvalid)
		return LoginResult{}, ErrInvalidCredentials
	}
	if !user.Active {
		l.Warn("login for disabled user", slog.String("user_id", user.ID))
		s.Metrics.login(loginInvalid)
		return LoginResult{}, ErrInvalidCredentials
	}

	if user.HasTOTP() {
		if in.OTP == "" {
			s.Metrics.login(loginOTPRequired)
			return LoginResult{}, ErrOTPRequired
		}
		if !totp.Validate(strings.TrimSpace(in.OTP), *user.TOTPSecret) {
			s.Metrics.login(loginInvalidOTP)
			return LoginResult{}, ErrInvalidOTP
		}
	}

	now := s.now()
	sid := idx.NewAt(now).String()
	claims := jwtx.NewClaims(jwtx.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		FullName: user.FullName,
	}, sid, s.Issuer, s.Audience, s.ttl(), now)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		s.Metrics.login(loginError)
		return LoginResult{}, fmt.Errorf("sign token: %w", err)
	}

	session := domain.Session{
		ID:        sid,
		UserID:    user.ID,
		TokenHash: cryptox.FingerprintToken(token),
		IP:        in.IP,
		UserAgent: in.UserAgent,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
		CreatedAt: now,
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Sessions().CreateSession(ctx, session); err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		return tx.Users().UpdateLastLogin(ctx, user.ID, now)
	})
	if err != nil {
		s.Metrics.login(loginError)
		return LoginResult{}, err
	}

	user.LastLogin = &now
	s.Metrics.login(loginSuccess)
	l.Info("user logged in", slog.String("user_id", user.ID), slog.String("session_id", sid))

	return LoginResult{Token: token, ExpiresAt: session.ExpiresAt, User: user}, nil
}

// ValidateToken checks the signature and that the user still has a live
// session. It does not require the session to be the one the token was
// issued with.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (jwtx.Claims, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		slogx.FromContext(ctx).Debug("token rejected", slog.Any("error", err))
		return jwtx.Claims{}, ErrInvalidToken
	}

	ok, err := s.Store.Sessions().HasActiveSession(ctx, claims.User(), s.now())
	if err != nil {
		return jwtx.Claims{}, fmt.Errorf("check session: %w", err)
	}
	if !ok {
		return jwtx.Claims{}, ErrSessionExpired
	}
	return claims, nil
}

// Authenticate is the strict check used by the request guard: the exact
// session behind token must be live and its user still active.
func (s *AuthService) Authenticate(ctx context.Context, token string) (Identity, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	session, err := s.Store.Sessions().GetActiveSessionByTokenHash(ctx, cryptox.FingerprintToken(token), s.now())
	if errors.Is(err, store.ErrNotFound) {
		return Identity{}, fmt.Errorf("%w: no live session", ErrUnauthorized)
	}
	if err != nil {
		return Identity{}, fmt.Errorf("load session: %w", err)
	}
	if session.UserID != claims.User() || (claims.SID != "" && claims.SID != session.ID) {
		return Identity{}, fmt.Errorf("%w: session mismatch", ErrUnauthorized)
	}

	user, err := s.Store.Users().GetUserByID(ctx, session.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return Identity{}, fmt.Errorf("%w: user gone", ErrUnauthorized)
	}
	if err != nil {
		return Identity{}, fmt.Errorf("load user: %w", err)
	}
	if !user.Active {
		return Identity{}, fmt.Errorf("%w: user disabled", ErrUnauthorized)
	}

	return Identity{User: user, Session: session, Claims: claims}, nil
}

// Logout removes every session of the user and reports how many there were.
func (s *AuthService) Logout(ctx context.Context, userID string) (int64, error) {
	n, err := s.Store.Sessions().DeleteUserSessions(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	s.Metrics.logout()
	slogx.FromContext(ctx).Info("user logged out", slog.String("user_id", userID), slog.Int64("sessions", n))
	return n, nil
}

func (s *AuthService) CleanExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.Store.Sessions().DeleteExpiredSessions(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	s.Metrics.cleaned(n)
	return n, nil
}
