package ports

import "context"

// Transactor runs fn inside one store transaction. Repository calls made with the
// context handed to fn join that transaction. If fn returns an error every write
// made through that context is rolled back; otherwise they are committed together.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
