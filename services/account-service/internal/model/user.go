package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is the authenticatable identity: credentials plus the active flag.
// Users are created inactive and flipped active by account activation; no
// login is permitted while Active is false.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	FirstName    string        `bson:"first_name"`
	LastName     string        `bson:"last_name"`
	Username     string        `bson:"username"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password_hash"`
	Active       bool          `bson:"active"`
	CreatedAt    time.Time     `bson:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at"`
}
