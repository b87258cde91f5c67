package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/userhub/userhub-api/services/account-service/internal/model"
	"github.com/userhub/userhub-api/services/account-service/internal/policy"
	"github.com/userhub/userhub-api/services/account-service/internal/token"
	"github.com/userhub/userhub-api/shared/logger"
	"github.com/userhub/userhub-api/shared/security"
)

type resetFixture struct {
	users    *fakeUserRepo
	profiles *fakeProfileRepo
	mailer   *fakeMailer
	uc       *passwordResetUsecase
}

func newResetFixture(t *testing.T) *resetFixture {
	t.Helper()

	log := logger.New("test")

	f := &resetFixture{
		users:    &fakeUserRepo{},
		profiles: &fakeProfileRepo{},
		mailer:   &fakeMailer{},
	}
	f.uc = NewPasswordResetUsecase(
		f.users, f.profiles, fakeTransactor{},
		token.NewGenerator(), policy.New(), f.mailer, &log,
		time.Hour,
	).(*passwordResetUsecase)

	return f
}

func (f *resetFixture) addAccount(t *testing.T) *model.User {
	t.Helper()

	hash, err := security.HashPassword("Old!Passw0rd")
	require.NoError(t, err)

	user := &model.User{
		ID:           bson.NewObjectID(),
		FirstName:    "Jane",
		LastName:     "Doe",
		Username:     "jdoe",
		Email:        "jane@x.com",
		PasswordHash: hash,
		Active:       true,
	}
	f.users.users = append(f.users.users, user)
	f.profiles.profiles = append(f.profiles.profiles, &model.Profile{
		ID:     bson.NewObjectID(),
		UserID: user.ID,
	})
	return user
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	f := newResetFixture(t)

	// No error and no mail, so callers cannot probe for registered emails.
	require.NoError(t, f.uc.RequestPasswordReset(context.Background(), "ghost@x.com", "https://example.com/"))
	require.Empty(t, f.mailer.resets)
}

func TestRequestPasswordResetIssuesToken(t *testing.T) {
	f := newResetFixture(t)
	f.addAccount(t)

	require.NoError(t, f.uc.RequestPasswordReset(context.Background(), "jane@x.com", "https://example.com/"))

	profile := f.profiles.profiles[0]
	require.NotNil(t, profile.ResetPasswordToken)
	require.NotNil(t, profile.ResetTokenCreatedAt)
	require.Len(t, *profile.ResetPasswordToken, token.Length)

	require.Len(t, f.mailer.resets, 1)
	require.Equal(t, "jane@x.com", f.mailer.resets[0].To)
	require.Equal(t, "https://example.com/password-reset/"+*profile.ResetPasswordToken+"/", f.mailer.resets[0].Link)
}

func TestRequestPasswordResetReissueOverwrites(t *testing.T) {
	f := newResetFixture(t)
	f.addAccount(t)

	require.NoError(t, f.uc.RequestPasswordReset(context.Background(), "jane@x.com", "https://example.com/"))
	first := *f.profiles.profiles[0].ResetPasswordToken

	require.NoError(t, f.uc.RequestPasswordReset(context.Background(), "jane@x.com", "https://example.com/"))
	second := *f.profiles.profiles[0].ResetPasswordToken

	require.NotEqual(t, first, second)
}

func TestResetPasswordSuccess(t *testing.T) {
	f := newResetFixture(t)
	user := f.addAccount(t)

	require.NoError(t, f.uc.RequestPasswordReset(context.Background(), "jane@x.com", "https://example.com/"))
	tok := *f.profiles.profiles[0].ResetPasswordToken

	err := f.uc.ResetPassword(context.Background(), tok, ResetPasswordParams{
		Password:        "N3w!Passw0rd",
		ConfirmPassword: "N3w!Passw0rd",
	})
	require.NoError(t, err)

	ok, err := security.VerifyPassword("N3w!Passw0rd", user.PasswordHash)
	require.NoError(t, err)
	require.True(t, ok)

	require.Nil(t, f.profiles.profiles[0].ResetPasswordToken)
	require.Nil(t, f.profiles.profiles[0].ResetTokenCreatedAt)
}

func TestResetPasswordMismatch(t *testing.T) {
	f := newResetFixture(t)
	f.addAccount(t)

	require.NoError(t, f.uc.RequestPasswordReset(context.Background(), "jane@x.com", "https://example.com/"))
	tok := *f.profiles.profiles[0].ResetPasswordToken

	err := f.uc.ResetPassword(context.Background(), tok, ResetPasswordParams{
		Password:        "N3w!Passw0rd",
		ConfirmPassword: "other",
	})
	require.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestResetPasswordWeakPassword(t *testing.T) {
	f := newResetFixture(t)
	f.addAccount(t)

	require.NoError(t, f.uc.RequestPasswordReset(context.Background(), "jane@x.com", "https://example.com/"))
	tok := *f.profiles.profiles[0].ResetPasswordToken

	err := f.uc.ResetPassword(context.Background(), tok, ResetPasswordParams{
		Password:        "jdoe1234",
		ConfirmPassword: "jdoe1234",
	})
	require.ErrorIs(t, err, ErrWeakPassword)

	// Token survives a rejected attempt.
	require.NotNil(t, f.profiles.profiles[0].ResetPasswordToken)
}

func TestResetPasswordUnknownToken(t *testing.T) {
	f := newResetFixture(t)

	err := f.uc.ResetPassword(context.Background(), "nosuchtoken", ResetPasswordParams{
		Password:        "N3w!Passw0rd",
		ConfirmPassword: "N3w!Passw0rd",
	})
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestResetPasswordExpiredTokenLeftIntact(t *testing.T) {
	f := newResetFixture(t)
	f.addAccount(t)

	require.NoError(t, f.uc.RequestPasswordReset(context.Background(), "jane@x.com", "https://example.com/"))
	profile := f.profiles.profiles[0]
	tok := *profile.ResetPasswordToken

	f.uc.now = func() time.Time { return profile.ResetTokenCreatedAt.Add(2 * time.Hour) }

	err := f.uc.ResetPassword(context.Background(), tok, ResetPasswordParams{
		Password:        "N3w!Passw0rd",
		ConfirmPassword: "N3w!Passw0rd",
	})
	require.ErrorIs(t, err, ErrTokenExpired)
	require.NotNil(t, profile.ResetPasswordToken)
}

func TestResetPasswordTokenIsSingleUse(t *testing.T) {
	f := newResetFixture(t)
	f.addAccount(t)

	require.NoError(t, f.uc.RequestPasswordReset(context.Background(), "jane@x.com", "https://example.com/"))
	tok := *f.profiles.profiles[0].ResetPasswordToken

	params := ResetPasswordParams{Password: "N3w!Passw0rd", ConfirmPassword: "N3w!Passw0rd"}
	require.NoError(t, f.uc.ResetPassword(context.Background(), tok, params))

	err := f.uc.ResetPassword(context.Background(), tok, params)
	require.ErrorIs(t, err, ErrInvalidToken)
}
