package usecase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/userhub/userhub-api/services/account-service/internal/model"
	"github.com/userhub/userhub-api/services/account-service/internal/repository"
)

// --- fakes ---

type fakeUserRepo struct {
	users     []*model.User
	createErr error
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, u := range f.users {
		index := ""
		switch {
		case u.Email == user.Email:
			index = "email_1"
		case u.Username == user.Username:
			index = "username_1"
		default:
			continue
		}
		return nil, mongo.WriteException{WriteErrors: []mongo.WriteError{{
			Code:    11000,
			Message: "E11000 duplicate key error collection: userhub.users index: " + index,
		}}}
	}
	user.ID = bson.NewObjectID()
	f.users = append(f.users, user)
	return user, nil
}

func (f *fakeUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	for _, u := range f.users {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) SetUserActive(_ context.Context, id string, active bool) error {
	for _, u := range f.users {
		if u.ID.Hex() == id {
			u.Active = active
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id string, passwordHash string) error {
	for _, u := range f.users {
		if u.ID.Hex() == id {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

type fakeProfileRepo struct {
	profiles []*model.Profile
}

func (f *fakeProfileRepo) CreateProfile(_ context.Context, profile *model.Profile) (*model.Profile, error) {
	profile.ID = bson.NewObjectID()
	f.profiles = append(f.profiles, profile)
	return profile, nil
}

func (f *fakeProfileRepo) GetProfileByUserID(_ context.Context, userID string) (*model.Profile, error) {
	for _, p := range f.profiles {
		if p.UserID.Hex() == userID {
			return p, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeProfileRepo) GetProfileByActivationToken(_ context.Context, token string) (*model.Profile, error) {
	for _, p := range f.profiles {
		if p.ActivationToken != nil && *p.ActivationToken == token {
			return p, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeProfileRepo) GetProfileByResetToken(_ context.Context, token string) (*model.Profile, error) {
	for _, p := range f.profiles {
		if p.ResetPasswordToken != nil && *p.ResetPasswordToken == token {
			return p, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeProfileRepo) ClearActivationToken(_ context.Context, id bson.ObjectID, token string) error {
	for _, p := range f.profiles {
		if p.ID == id && p.ActivationToken != nil && *p.ActivationToken == token {
			p.ActivationToken = nil
			p.TokenCreatedAt = nil
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeProfileRepo) SetResetToken(_ context.Context, id bson.ObjectID, token string, issuedAt time.Time) error {
	for _, p := range f.profiles {
		if p.ID == id {
			p.ResetPasswordToken = &token
			p.ResetTokenCreatedAt = &issuedAt
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeProfileRepo) ClearResetToken(_ context.Context, id bson.ObjectID, token string) error {
	for _, p := range f.profiles {
		if p.ID == id && p.ResetPasswordToken != nil && *p.ResetPasswordToken == token {
			p.ResetPasswordToken = nil
			p.ResetTokenCreatedAt = nil
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

type fakeSessionRepo struct {
	sessions []*model.Session
}

func (f *fakeSessionRepo) CreateSession(_ context.Context, session *model.Session) (*model.Session, error) {
	session.ID = bson.NewObjectID()
	f.sessions = append(f.sessions, session)
	return session, nil
}

func (f *fakeSessionRepo) UpdateTokens(_ context.Context, id string, params repository.UpdateTokensParams) error {
	for _, s := range f.sessions {
		if s.ID.Hex() == id {
			s.AccessToken = params.AccessToken
			s.RefreshToken = params.RefreshToken
			s.AccessTokenExpiresAt = params.AccessTokenExpiresAt
			s.RefreshTokenExpiresAt = params.RefreshTokenExpiresAt
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type sentMail struct {
	To        string
	FirstName string
	Link      string
}

type fakeMailer struct {
	activationErr error
	resetErr      error

	activations []sentMail
	resets      []sentMail
}

func (f *fakeMailer) SendActivationEmail(to, firstName, activationLink string) error {
	if f.activationErr != nil {
		return f.activationErr
	}
	f.activations = append(f.activations, sentMail{To: to, FirstName: firstName, Link: activationLink})
	return nil
}

func (f *fakeMailer) SendPasswordResetEmail(to, firstName, resetLink string, _ time.Duration) error {
	if f.resetErr != nil {
		return f.resetErr
	}
	f.resets = append(f.resets, sentMail{To: to, FirstName: firstName, Link: resetLink})
	return nil
}

type fixedTokenGenerator struct {
	token string
}

func (g fixedTokenGenerator) Generate() (string, error) {
	return g.token, nil
}
