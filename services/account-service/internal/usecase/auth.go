package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/userhub/userhub-api/services/account-service/internal/config"
	"github.com/userhub/userhub-api/services/account-service/internal/model"
	"github.com/userhub/userhub-api/services/account-service/internal/repository"
	"github.com/userhub/userhub-api/services/account-service/pkg/types"
	"github.com/userhub/userhub-api/shared/auth"
	"github.com/userhub/userhub-api/shared/security"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	Login(ctx context.Context, params LoginParams) (*types.Tokens, error)
	GetUser(ctx context.Context, userID string) (*model.User, error)
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authUsecase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	jwtAuth     auth.JWTAuthenticator
	tokenCfg    config.TokenConfig
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	jwtAuth auth.JWTAuthenticator,
	tokenCfg config.TokenConfig,
) AuthUsecase {
	return &authUsecase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtAuth:     jwtAuth,
		tokenCfg:    tokenCfg,
	}
}

// Login verifies credentials and issues a session token pair. Unknown email
// and wrong password both map to ErrInvalidCredentials. The activation-state
// check runs before password verification, so an inactive account reports
// ErrAccountNotActivated regardless of the password supplied.
func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*types.Tokens, error) {
	if params.Email == "" || params.Password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.Active {
		return nil, ErrAccountNotActivated
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	return u.createAuthSession(ctx, user.ID.Hex())
}

// GetUser returns the identity for an authenticated caller.
func (u *authUsecase) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return u.userRepo.GetUser(ctx, userID)
}

func (u *authUsecase) createAuthSession(ctx context.Context, userID string) (*types.Tokens, error) {
	session, err := u.sessionRepo.CreateSession(ctx, &model.Session{UserID: userID})
	if err != nil {
		return nil, err
	}

	accessToken, err := u.generateToken(
		userID,
		session.ID.Hex(),
		u.tokenCfg.AccessTokenSecret,
		u.tokenCfg.AccessTokenExpiresIn,
	)
	if err != nil {
		return nil, err
	}

	refreshToken, err := u.generateToken(
		userID,
		session.ID.Hex(),
		u.tokenCfg.RefreshTokenSecret,
		u.tokenCfg.RefreshTokenExpiresIn,
	)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := u.sessionRepo.UpdateTokens(ctx, session.ID.Hex(), repository.UpdateTokensParams{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  now.Add(u.tokenCfg.AccessTokenExpiresIn),
		RefreshTokenExpiresAt: now.Add(u.tokenCfg.RefreshTokenExpiresIn),
	}); err != nil {
		return nil, err
	}

	return &types.Tokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (u *authUsecase) generateToken(userID, sessionID, secret string, expiresIn time.Duration) (string, error) {
	now := time.Now()
	claims := types.JWTClaims{
		UserID:    userID,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    u.tokenCfg.Issuer,
			Audience:  jwt.ClaimStrings{u.tokenCfg.Issuer},
		},
	}

	return u.jwtAuth.Sign(claims, secret)
}
