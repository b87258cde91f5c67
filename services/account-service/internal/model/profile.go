package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Profile is the account metadata record owned 1:1 by a User. It carries the
// verification state and the single-use activation and password reset tokens.
//
// ActivationToken is non-nil exactly when TokenCreatedAt is non-nil; the same
// holds for the reset pair. Successful consumption nulls both fields of a
// pair atomically so a token can never be replayed.
type Profile struct {
	ID                  bson.ObjectID `bson:"_id,omitempty"`
	UserID              bson.ObjectID `bson:"user_id"`
	Verified            bool          `bson:"verified"`
	ActivationToken     *string       `bson:"activation_token"`
	TokenCreatedAt      *time.Time    `bson:"token_created_at"`
	ResetPasswordToken  *string       `bson:"reset_password_token"`
	ResetTokenCreatedAt *time.Time    `bson:"reset_token_created_at"`
	CreatedAt           time.Time     `bson:"created_at"`
	UpdatedAt           time.Time     `bson:"updated_at"`
}
