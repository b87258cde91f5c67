package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/userhub/userhub-api/services/account-service/internal/repository"
	"github.com/userhub/userhub-api/shared/security"
)

// PasswordResetUsecase mirrors the activation flow for forgotten passwords:
// a single-use opaque token is mailed out and consumed when the new password
// is set.
type PasswordResetUsecase interface {
	// RequestPasswordReset issues a reset token and mails the reset link.
	// Unknown emails are silently accepted to prevent enumeration.
	RequestPasswordReset(ctx context.Context, email, origin string) error

	// ResetPassword consumes a reset token and replaces the user's password.
	ResetPassword(ctx context.Context, token string, params ResetPasswordParams) error
}

// ResetPasswordParams defines the parameters for completing a password reset.
type ResetPasswordParams struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type passwordResetUsecase struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	transactor  repository.Transactor
	tokens      TokenGenerator
	policy      PasswordPolicy
	mailer      NotificationMailer
	logger      *zerolog.Logger

	resetTokenTTL time.Duration
	now           func() time.Time
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	transactor repository.Transactor,
	tokens TokenGenerator,
	policy PasswordPolicy,
	mailer NotificationMailer,
	logger *zerolog.Logger,
	resetTokenTTL time.Duration,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		transactor:    transactor,
		tokens:        tokens,
		policy:        policy,
		mailer:        mailer,
		logger:        logger,
		resetTokenTTL: resetTokenTTL,
		now:           time.Now,
	}
}

func (u *passwordResetUsecase) RequestPasswordReset(ctx context.Context, email, origin string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Do not reveal whether the email exists.
			return nil
		}
		return err
	}

	profile, err := u.profileRepo.GetProfileByUserID(ctx, user.ID.Hex())
	if err != nil {
		return err
	}

	resetToken, err := u.tokens.Generate()
	if err != nil {
		return err
	}

	// Re-issuing overwrites any previously issued unused token.
	if err := u.profileRepo.SetResetToken(ctx, profile.ID, resetToken, u.now()); err != nil {
		return err
	}

	resetLink := origin + "password-reset/" + resetToken + "/"
	if err := u.mailer.SendPasswordResetEmail(user.Email, user.FirstName, resetLink, u.resetTokenTTL); err != nil {
		u.logger.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("failed to send password reset email")
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}

	return nil
}

func (u *passwordResetUsecase) ResetPassword(ctx context.Context, token string, params ResetPasswordParams) error {
	if token == "" {
		return ErrInvalidToken
	}

	if params.Password != params.ConfirmPassword {
		return ErrPasswordMismatch
	}

	profile, err := u.profileRepo.GetProfileByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrInvalidToken
		}
		return err
	}

	if profile.ResetTokenCreatedAt == nil {
		return ErrInvalidToken
	}

	if u.now().After(profile.ResetTokenCreatedAt.Add(u.resetTokenTTL)) {
		return ErrTokenExpired
	}

	user, err := u.userRepo.GetUser(ctx, profile.UserID.Hex())
	if err != nil {
		return err
	}

	if err := u.policy.Validate(
		params.Password,
		user.FirstName, user.LastName, user.Username, user.Email,
	); err != nil {
		return fmt.Errorf("%w: %s", ErrWeakPassword, err)
	}

	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return err
	}

	return u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.profileRepo.ClearResetToken(ctx, profile.ID, token); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return ErrInvalidToken
			}
			return err
		}

		return u.userRepo.UpdatePassword(ctx, user.ID.Hex(), passwordHash)
	})
}
