package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Transactor runs a function inside a single storage transaction. It keeps
// multi-document mutations (create user + profile, flip active + clear
// token) atomic without coupling the use cases to the mongo session API.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type mongoTransactor struct {
	client *mongo.Client
}

// NewMongoTransactor creates a Transactor backed by mongo sessions.
func NewMongoTransactor(client *mongo.Client) Transactor {
	return &mongoTransactor{client: client}
}

func (t *mongoTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(ctx context.Context) (any, error) {
		return nil, fn(ctx)
	})

	return err
}
