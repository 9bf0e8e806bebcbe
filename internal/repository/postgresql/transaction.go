package postgresql

import (
	"context"

	"github.com/staffhub/staffhub-backend-go/internal/pkg/database"
)

// GetQuerier returns the transaction carried by ctx, or the pool when the
// call runs outside a transaction.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := database.TxFromContext(ctx); ok {
		return tx
	}
	return db.Pool
}
