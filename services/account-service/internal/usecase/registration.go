package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/userhub/userhub-api/services/account-service/internal/model"
	"github.com/userhub/userhub-api/services/account-service/internal/repository"
	"github.com/userhub/userhub-api/shared/security"
	"github.com/userhub/userhub-api/shared/validation"
)

// RegistrationUsecase handles account registration with email verification
// and the consumption of activation tokens.
type RegistrationUsecase interface {
	Register(ctx context.Context, params RegisterParams) error
	Activate(ctx context.Context, token string) error
}

// RegisterParams defines the parameters for user registration. Origin is the
// externally visible base URL of the service, resolved from the inbound
// request, used to build the activation link.
type RegisterParams struct {
	FirstName       string `json:"first_name"       validate:"required"`
	LastName        string `json:"last_name"        validate:"required"`
	Username        string `json:"username"         validate:"required"`
	Email           string `json:"email"            validate:"required,email"`
	Password        string `json:"password"         validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`

	Origin string `json:"-" validate:"-"`
}

// TokenGenerator produces opaque single-use token strings.
type TokenGenerator interface {
	Generate() (string, error)
}

// PasswordPolicy validates password strength; the similar values are
// identity fields the password must not resemble.
type PasswordPolicy interface {
	Validate(password string, similar ...string) error
}

// NotificationMailer delivers activation and password reset links.
type NotificationMailer interface {
	SendActivationEmail(to, firstName, activationLink string) error
	SendPasswordResetEmail(to, firstName, resetLink string, expiresIn time.Duration) error
}

type registrationUsecase struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	transactor  repository.Transactor
	tokens      TokenGenerator
	policy      PasswordPolicy
	validate    *validation.Validator
	mailer      NotificationMailer
	logger      *zerolog.Logger

	activationTokenTTL time.Duration
	now                func() time.Time
}

// NewRegistrationUsecase creates a new instance of RegistrationUsecase.
func NewRegistrationUsecase(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	transactor repository.Transactor,
	tokens TokenGenerator,
	policy PasswordPolicy,
	validate *validation.Validator,
	mailer NotificationMailer,
	logger *zerolog.Logger,
	activationTokenTTL time.Duration,
) RegistrationUsecase {
	return &registrationUsecase{
		userRepo:           userRepo,
		profileRepo:        profileRepo,
		transactor:         transactor,
		tokens:             tokens,
		policy:             policy,
		validate:           validate,
		mailer:             mailer,
		logger:             logger,
		activationTokenTTL: activationTokenTTL,
		now:                time.Now,
	}
}

// Register validates the input in a fixed order (mismatch, strength, missing
// fields, duplicate email), then creates the inactive user and its profile
// with a fresh activation token in one transaction and mails the activation
// link. A mail delivery failure is reported as ErrNotificationFailed but
// does not roll back the committed account.
func (u *registrationUsecase) Register(ctx context.Context, params RegisterParams) error {
	if params.Password != params.ConfirmPassword {
		return ErrPasswordMismatch
	}

	if err := u.policy.Validate(
		params.Password,
		params.FirstName, params.LastName, params.Username, params.Email,
	); err != nil {
		return fmt.Errorf("%w: %s", ErrWeakPassword, err)
	}

	if err := u.validate.Struct(params); err != nil {
		var fieldErr *validation.FieldError
		if errors.As(err, &fieldErr) {
			return fmt.Errorf("%w: %s", ErrInvalidInput, fieldErr.Message)
		}
		return err
	}

	if _, err := u.userRepo.GetUserByEmail(ctx, params.Email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return err
	}

	activationToken, err := u.tokens.Generate()
	if err != nil {
		return err
	}

	issuedAt := u.now()

	var user *model.User
	err = u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err = u.userRepo.CreateUser(ctx, &model.User{
			FirstName:    params.FirstName,
			LastName:     params.LastName,
			Username:     params.Username,
			Email:        params.Email,
			PasswordHash: passwordHash,
			Active:       false,
		})
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				if strings.Contains(err.Error(), "username") {
					return ErrUsernameTaken
				}
				return ErrEmailTaken
			}
			return err
		}

		_, err = u.profileRepo.CreateProfile(ctx, &model.Profile{
			UserID:          user.ID,
			ActivationToken: &activationToken,
			TokenCreatedAt:  &issuedAt,
		})
		return err
	})
	if err != nil {
		return err
	}

	activationLink := params.Origin + "activate/" + activationToken + "/"
	if err := u.mailer.SendActivationEmail(params.Email, params.FirstName, activationLink); err != nil {
		// The account and token stay persisted so delivery can be retried
		// or support can resend.
		u.logger.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("failed to send activation email")
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}

	return nil
}

// Activate consumes an activation token. Expired tokens are reported but
// left in place; valid ones are cleared and the owning user is flipped
// active in one transaction, so a token can be consumed at most once.
func (u *registrationUsecase) Activate(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}

	profile, err := u.profileRepo.GetProfileByActivationToken(ctx, token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrInvalidToken
		}
		return err
	}

	if profile.TokenCreatedAt == nil {
		return ErrInvalidToken
	}

	// Expiry is exclusive: the token is still valid at exactly issuance
	// time plus the TTL.
	if u.now().After(profile.TokenCreatedAt.Add(u.activationTokenTTL)) {
		return ErrTokenExpired
	}

	return u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.profileRepo.ClearActivationToken(ctx, profile.ID, token); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				// A concurrent activation won the race and already
				// consumed the token.
				return ErrInvalidToken
			}
			return err
		}

		return u.userRepo.SetUserActive(ctx, profile.UserID.Hex(), true)
	})
}
