package trades

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/termsight/termsight/pkg/pagination"
	"github.com/termsight/termsight/pkg/query"
	"github.com/termsight/termsight/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a trade record repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "trades"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[TradeRecord], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "TradeID", "Counterparty", "LegalEntity")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count trade records: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	records, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanTrade)
	if err != nil {
		return nil, fmt.Errorf("query trade records: %w", err)
	}

	result := pagination.NewPageResult(records, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) FindByTradeID(ctx context.Context, tradeID string) (*TradeRecord, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("TradeID", tradeID).
		BuildSingleOrNull()

	t, err := repository.QueryOne(ctx, r.db, q, args, scanTrade)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &t, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*TradeRecord, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO trade_records(
			id, trade_id, counterparty, notional_amount, settlement_date,
			interest_rate, currency, payment_terms, legal_entity,
			trade_type, maturity_date, reference_rate, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, trade_id, counterparty, notional_amount, settlement_date,
			interest_rate, currency, payment_terms, legal_entity,
			trade_type, maturity_date, reference_rate, status, created_by,
			created_at, updated_at`

	args := []any{
		uuid.New(),
		cmd.TradeID,
		cmd.Counterparty,
		cmd.NotionalAmount,
		cmd.SettlementDate,
		cmd.InterestRate,
		cmd.Currency,
		cmd.PaymentTerms,
		cmd.LegalEntity,
		cmd.TradeType,
		cmd.MaturityDate,
		cmd.ReferenceRate,
		cmd.CreatedBy,
	}

	t, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (TradeRecord, error) {
		return repository.QueryOne(ctx, tx, q, args, scanTrade)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("trade record created", "id", t.ID, "trade_id", t.TradeID)
	return &t, nil
}
