package trades

import (
	"context"

	"github.com/termsight/termsight/pkg/pagination"
)

// System defines the public contract for trade record operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[TradeRecord], error)

	// FindByTradeID resolves the reference record for a trade identifier.
	FindByTradeID(ctx context.Context, tradeID string) (*TradeRecord, error)
	Create(ctx context.Context, cmd CreateCommand) (*TradeRecord, error)
}
