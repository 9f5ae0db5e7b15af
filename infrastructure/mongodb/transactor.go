package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"taskhub/domain/ports"
)

type Transactor struct {
	client *mongo.Client
}

func NewTransactor(client *mongo.Client) ports.Transactor {
	return &Transactor{client: client}
}

// WithinTransaction runs fn in a session transaction. The session context handed to
// fn makes every collection call join the transaction.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	session, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(context.Background())

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}
