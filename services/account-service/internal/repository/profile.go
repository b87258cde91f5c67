package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/userhub/userhub-api/services/account-service/internal/model"
)

// ProfileRepository defines the interface for account profile operations,
// including issuance and single-use consumption of activation and password
// reset tokens.
type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile *model.Profile) (*model.Profile, error)
	GetProfileByUserID(ctx context.Context, userID string) (*model.Profile, error)
	GetProfileByActivationToken(ctx context.Context, token string) (*model.Profile, error)
	GetProfileByResetToken(ctx context.Context, token string) (*model.Profile, error)

	// ClearActivationToken nulls the activation token pair on the profile,
	// but only while the profile still holds the given token. A concurrent
	// consumer that loses the race gets mongo.ErrNoDocuments.
	ClearActivationToken(ctx context.Context, id bson.ObjectID, token string) error

	// SetResetToken (re)issues the password reset token pair; a previously
	// issued unused token is overwritten.
	SetResetToken(ctx context.Context, id bson.ObjectID, token string, issuedAt time.Time) error

	// ClearResetToken mirrors ClearActivationToken for the reset pair.
	ClearResetToken(ctx context.Context, id bson.ObjectID, token string) error
}

const profileCollection = "profiles"

type profileMongoRepository struct {
	db *mongo.Database
}

// NewProfileMongoRepository creates the profiles repository. user_id is
// unique (one profile per user); the token indexes are unique but sparse
// since cleared tokens are stored as null.
func NewProfileMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) ProfileRepository {
	collection := db.Collection(profileCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "activation_token", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "reset_password_token", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create profile indexes")
	}

	return &profileMongoRepository{db: db}
}

func (r *profileMongoRepository) CreateProfile(ctx context.Context, profile *model.Profile) (*model.Profile, error) {
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	result, err := r.db.Collection(profileCollection).InsertOne(ctx, profile)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		profile.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return profile, nil
}

func (r *profileMongoRepository) GetProfileByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	return r.findOne(ctx, bson.M{"user_id": objectID})
}

func (r *profileMongoRepository) GetProfileByActivationToken(ctx context.Context, token string) (*model.Profile, error) {
	return r.findOne(ctx, bson.M{"activation_token": token})
}

func (r *profileMongoRepository) GetProfileByResetToken(ctx context.Context, token string) (*model.Profile, error) {
	return r.findOne(ctx, bson.M{"reset_password_token": token})
}

func (r *profileMongoRepository) findOne(ctx context.Context, filter bson.M) (*model.Profile, error) {
	result := r.db.Collection(profileCollection).FindOne(ctx, filter)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var profile model.Profile
	if err := result.Decode(&profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileMongoRepository) ClearActivationToken(ctx context.Context, id bson.ObjectID, token string) error {
	return r.clearToken(ctx, id, "activation_token", "token_created_at", token)
}

func (r *profileMongoRepository) SetResetToken(ctx context.Context, id bson.ObjectID, token string, issuedAt time.Time) error {
	result, err := r.db.Collection(profileCollection).UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"reset_password_token":   token,
			"reset_token_created_at": issuedAt,
			"updated_at":             time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *profileMongoRepository) ClearResetToken(ctx context.Context, id bson.ObjectID, token string) error {
	return r.clearToken(ctx, id, "reset_password_token", "reset_token_created_at", token)
}

// clearToken nulls a token/timestamp pair with a filter that still matches
// the token value, so only one of several concurrent consumers succeeds.
func (r *profileMongoRepository) clearToken(ctx context.Context, id bson.ObjectID, tokenField, createdField, token string) error {
	result, err := r.db.Collection(profileCollection).UpdateOne(
		ctx,
		bson.M{"_id": id, tokenField: token},
		bson.M{"$set": bson.M{
			tokenField:   nil,
			createdField: nil,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}
