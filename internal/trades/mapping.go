package trades

import (
	"net/url"

	"github.com/termsight/termsight/pkg/query"
	"github.com/termsight/termsight/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "trade_records", "t").
	Project("id", "ID").
	Project("trade_id", "TradeID").
	Project("counterparty", "Counterparty").
	Project("notional_amount", "NotionalAmount").
	Project("settlement_date", "SettlementDate").
	Project("interest_rate", "InterestRate").
	Project("currency", "Currency").
	Project("payment_terms", "PaymentTerms").
	Project("legal_entity", "LegalEntity").
	Project("trade_type", "TradeType").
	Project("maturity_date", "MaturityDate").
	Project("reference_rate", "ReferenceRate").
	Project("status", "Status").
	Project("created_by", "CreatedBy").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for trade record queries.
type Filters struct {
	Status       *string `json:"status,omitempty"`
	Counterparty *string `json:"counterparty,omitempty"`
	Currency     *string `json:"currency,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereContains("Counterparty", f.Counterparty).
		WhereEquals("Currency", f.Currency)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}
	if c := values.Get("counterparty"); c != "" {
		f.Counterparty = &c
	}
	if c := values.Get("currency"); c != "" {
		f.Currency = &c
	}

	return f
}

func scanTrade(s repository.Scanner) (TradeRecord, error) {
	var t TradeRecord
	err := s.Scan(
		&t.ID,
		&t.TradeID,
		&t.Counterparty,
		&t.NotionalAmount,
		&t.SettlementDate,
		&t.InterestRate,
		&t.Currency,
		&t.PaymentTerms,
		&t.LegalEntity,
		&t.TradeType,
		&t.MaturityDate,
		&t.ReferenceRate,
		&t.Status,
		&t.CreatedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}
