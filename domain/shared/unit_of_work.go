package shared

import "context"

// UnitOfWork runs fn inside one atomic transaction. Repositories called within
// fn pick the transaction out of the context; everything commits together or
// not at all.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}
