package ports

import "context"

// TxManager runs fn in one transaction. Repositories pick the transaction
// up from the context passed to fn.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
