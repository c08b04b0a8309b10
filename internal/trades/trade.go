// Package trades implements the internal trade record domain. Trade records
// hold the bank's reference values that extracted term-sheet fields are
// validated against.
package trades

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// TradeRecord is the internal system-of-record entry for a single trade.
type TradeRecord struct {
	ID             uuid.UUID  `json:"id"`
	TradeID        string     `json:"trade_id"`
	Counterparty   string     `json:"counterparty"`
	NotionalAmount float64    `json:"notional_amount"`
	SettlementDate time.Time  `json:"settlement_date"`
	InterestRate   float64    `json:"interest_rate"`
	Currency       string     `json:"currency"`
	PaymentTerms   string     `json:"payment_terms"`
	LegalEntity    string     `json:"legal_entity"`
	TradeType      *string    `json:"trade_type,omitempty"`
	MaturityDate   *time.Time `json:"maturity_date,omitempty"`
	ReferenceRate  *string    `json:"reference_rate,omitempty"`
	Status         string     `json:"status"`
	CreatedBy      *string    `json:"created_by,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TermValues returns the record's comparable fields keyed by term name, in
// the string form the comparator consumes.
func (t *TradeRecord) TermValues() map[string]string {
	return map[string]string{
		"trade_id":        t.TradeID,
		"counterparty":    t.Counterparty,
		"notional_amount": strconv.FormatFloat(t.NotionalAmount, 'f', -1, 64),
		"settlement_date": t.SettlementDate.Format("2006-01-02"),
		"interest_rate":   strconv.FormatFloat(t.InterestRate, 'f', -1, 64),
		"currency":        t.Currency,
		"payment_terms":   t.PaymentTerms,
		"legal_entity":    t.LegalEntity,
	}
}

// CreateCommand carries the data needed to register a new trade record.
type CreateCommand struct {
	TradeID        string     `json:"trade_id"`
	Counterparty   string     `json:"counterparty"`
	NotionalAmount float64    `json:"notional_amount"`
	SettlementDate time.Time  `json:"settlement_date"`
	InterestRate   float64    `json:"interest_rate"`
	Currency       string     `json:"currency"`
	PaymentTerms   string     `json:"payment_terms"`
	LegalEntity    string     `json:"legal_entity"`
	TradeType      *string    `json:"trade_type,omitempty"`
	MaturityDate   *time.Time `json:"maturity_date,omitempty"`
	ReferenceRate  *string    `json:"reference_rate,omitempty"`
	CreatedBy      *string    `json:"created_by,omitempty"`
}

// Validate checks the command's required fields.
func (c *CreateCommand) Validate() error {
	switch {
	case c.TradeID == "":
		return ErrMissingTradeID
	case c.Counterparty == "":
		return ErrMissingCounterparty
	case c.Currency == "":
		return ErrMissingCurrency
	default:
		return nil
	}
}
