package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/aussiebroadwan/panel/internal/panel/domain"
	"github.com/aussiebroadwan/panel/internal/panel/store"
	"github.com/aussiebroadwan/panel/pkg/cryptox"
	"github.com/aussiebroadwan/panel/pkg/idx"
	"github.com/aussiebroadwan/panel/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
	DefaultTOTPIssuer = "Panel"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{2,49}$`)

type CreateUserInput struct {
	Username string
	FullName string
	Password string
	Role     string
}

// UserService manages back-office accounts.
type UserService struct {
	Store      store.Store
	Hasher     *cryptox.PasswordHasher
	TOTPIssuer string
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (domain.User, error) {
	u, err := s.newUser(in)
	if err != nil {
		return domain.User{}, err
	}
	if err := s.insert(ctx, s.Store.Users(), u); err != nil {
		return domain.User{}, err
	}
	slogx.FromContext(ctx).Info("user created", slog.String("user_id", u.ID), slog.String("role", u.Role))
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

func (s *UserService) Get(ctx context.Context, username string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, normalizeUsername(username))
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, domain.NotFoundf("User %s not found", username)
	}
	return u, err
}

// SetActive enables or disables an account. Disabling also ends its sessions.
func (s *UserService) SetActive(ctx context.Context, username string, active bool) error {
	u, err := s.Get(ctx, username)
	if err != nil {
		return err
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().SetActive(ctx, u.ID, active); err != nil {
			return err
		}
		if !active {
			_, err := tx.Sessions().DeleteUserSessions(ctx, u.ID)
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("set active: %w", err)
	}
	slogx.FromContext(ctx).Info("user active flag changed", slog.String("user_id", u.ID), slog.Bool("active", active))
	return nil
}

// SetPassword replaces the password and ends every session of the user.
func (s *UserService) SetPassword(ctx context.Context, username, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	u, err := s.Get(ctx, username)
	if err != nil {
		return err
	}
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(ctx, u.ID, hash); err != nil {
			return err
		}
		_, err := tx.Sessions().DeleteUserSessions(ctx, u.ID)
		return err
	})
}

// EnrollTOTP generates a new second factor secret and returns its
// otpauth:// URL for the authenticator app.
func (s *UserService) EnrollTOTP(ctx context.Context, username string) (string, error) {
	u, err := s.Get(ctx, username)
	if err != nil {
		return "", err
	}

	issuer := s.TOTPIssuer
	if issuer == "" {
		issuer = DefaultTOTPIssuer
	}
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: u.Username,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", fmt.Errorf("generate totp: %w", err)
	}

	secret := key.Secret()
	if err := s.Store.Users().SetTOTPSecret(ctx, u.ID, &secret); err != nil {
		return "", fmt.Errorf("store totp secret: %w", err)
	}
	slogx.FromContext(ctx).Info("totp enrolled", slog.String("user_id", u.ID))
	return key.URL(), nil
}

func (s *UserService) DisableTOTP(ctx context.Context, username string) error {
	u, err := s.Get(ctx, username)
	if err != nil {
		return err
	}
	return s.Store.Users().SetTOTPSecret(ctx, u.ID, nil)
}

func (s *UserService) newUser(in CreateUserInput) (domain.User, error) {
	username := normalizeUsername(in.Username)
	if !usernamePattern.MatchString(username) {
		return domain.User{}, domain.Validation("Username must be 3 to 50 characters of letters, digits, dot, dash or underscore")
	}
	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		fullName = username
	}

	role := strings.ToLower(strings.TrimSpace(in.Role))
	switch role {
	case "":
		role = domain.RoleOperator
	case domain.RoleAdmin, domain.RoleOperator:
	default:
		return domain.User{}, domain.Validation("Invalid role: " + in.Role)
	}

	if err := validatePassword(in.Password); err != nil {
		return domain.User{}, err
	}
	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	return domain.User{
		ID:           idx.NewAt(now).String(),
		Username:     username,
		FullName:     fullName,
		Role:         role,
		Active:       true,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (s *UserService) insert(ctx context.Context, users store.Users, u domain.User) error {
	err := users.CreateUser(ctx, u)
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.Conflictf("User %s already exists", u.Username)
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func validatePassword(p string) error {
	switch n := len([]rune(p)); {
	case n < MinPasswordLength:
		return domain.Validation(fmt.Sprintf("Password must have at least %d characters", MinPasswordLength))
	case n > MaxPasswordLength:
		return domain.Validation(fmt.Sprintf("Password cannot exceed %d characters", MaxPasswordLength))
	}
	return nil
}

func normalizeUsername(u string) string { return strings.ToLower(strings.TrimSpace(u)) }
