package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"resetd/internal/logging"
	"resetd/internal/repositories"
	"resetd/internal/utils"
)

const (
	DefaultResetTTL   = time.Hour
	MinPasswordLength = 6
)

type PasswordResetService interface {
	RequestReset(ctx context.Context, email string) error
	ValidateToken(ctx context.Context, token string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type ResetOptions struct {
	// BaseURL is the frontend origin the reset link points at.
	BaseURL string
	TTL     time.Duration
	Now     func() time.Time
}

type passwordResetService struct {
	userRepo repositories.UserRepository
	emails   EmailService
	auth     AuthService
	baseURL  string
	ttl      time.Duration
	now      func() time.Time
}

func NewPasswordResetService(userRepo repositories.UserRepository, emails EmailService, auth AuthService, opts ResetOptions) PasswordResetService {
	if opts.TTL <= 0 {
		opts.TTL = DefaultResetTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &passwordResetService{
		userRepo: userRepo,
		emails:   emails,
		auth:     auth,
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		ttl:      opts.TTL,
		now:      opts.Now,
	}
}

// ResetLink builds the frontend URL that embeds token.
func ResetLink(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/password-reset/" + token
}

// RequestReset stores a fresh token on the user and mails the link. A second
// request overwrites the previous token. If mailing fails the token stays
// persisted and ErrMailDispatch is returned.
func (s *passwordResetService) RequestReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}
	logger := logging.From(ctx).With(zap.String("email", email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		logger.Info("password reset requested for unknown user")
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}

	token, err := utils.NewToken(utils.ResetTokenBytes)
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}
	user.SetReset(token, s.now().Add(s.ttl))
	if err := s.userRepo.Save(ctx, user); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}

	if err := s.emails.SendPasswordResetEmail(user.Email, ResetLink(s.baseURL, token)); err != nil {
		logger.Error("failed to send password reset email", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrMailDispatch, err)
	}
	logger.Info("password reset link sent")
	return nil
}

func (s *passwordResetService) ValidateToken(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}
	_, err := s.userRepo.GetByActiveResetToken(ctx, token, s.now())
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrInvalidToken
	}
	return err
}

// ResetPassword consumes an active token. Length is checked before the
// lookup; expiry is checked on the loaded record.
func (s *passwordResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if utf8.RuneCountInString(newPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if token == "" {
		return ErrInvalidToken
	}

	user, err := s.userRepo.GetByResetToken(ctx, token)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrInvalidToken
	}
	if err != nil {
		return fmt.Errorf("lookup token: %w", err)
	}
	if user.ResetTokenExpiry == nil || user.ResetTokenExpiry.Before(s.now()) {
		return ErrInvalidToken
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = hash
	user.ClearReset()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return fmt.Errorf("save password: %w", err)
	}
	logging.From(ctx).Info("password updated", zap.String("user_id", user.ID.Hex()))
	return nil
}
