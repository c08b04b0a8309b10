package trades_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/termsight/termsight/internal/trades"
	"github.com/termsight/termsight/pkg/query"
)

func ptr[T any](v T) *T { return &v }

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", trades.ErrNotFound, http.StatusNotFound},
		{"duplicate", trades.ErrDuplicate, http.StatusConflict},
		{"missing trade id", trades.ErrMissingTradeID, http.StatusBadRequest},
		{"missing counterparty", trades.ErrMissingCounterparty, http.StatusBadRequest},
		{"missing currency", trades.ErrMissingCurrency, http.StatusBadRequest},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("find failed: %w", trades.ErrNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := trades.MapHTTPStatus(tt.err)
			if got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestCreateCommandValidate(t *testing.T) {
	valid := trades.CreateCommand{
		TradeID:        "TRD-20260315",
		Counterparty:   "Deutsche Bank AG",
		NotionalAmount: 30000000,
		SettlementDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		InterestRate:   4.25,
		Currency:       "USD",
		PaymentTerms:   "Quarterly",
		LegalEntity:    "Deutsche Bank Aktiengesellschaft",
	}

	tests := []struct {
		name    string
		mutate  func(c *trades.CreateCommand)
		wantErr error
	}{
		{name: "valid", mutate: func(c *trades.CreateCommand) {}},
		{
			name:    "missing trade id",
			mutate:  func(c *trades.CreateCommand) { c.TradeID = "" },
			wantErr: trades.ErrMissingTradeID,
		},
		{
			name:    "missing counterparty",
			mutate:  func(c *trades.CreateCommand) { c.Counterparty = "" },
			wantErr: trades.ErrMissingCounterparty,
		},
		{
			name:    "missing currency",
			mutate:  func(c *trades.CreateCommand) { c.Currency = "" },
			wantErr: trades.ErrMissingCurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := valid
			tt.mutate(&cmd)
			if err := cmd.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTermValues(t *testing.T) {
	record := trades.TradeRecord{
		TradeID:        "TRD-20260315",
		Counterparty:   "Deutsche Bank AG",
		NotionalAmount: 30000000,
		SettlementDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		InterestRate:   4.25,
		Currency:       "USD",
		PaymentTerms:   "Quarterly",
		LegalEntity:    "Deutsche Bank Aktiengesellschaft",
	}

	got := record.TermValues()

	want := map[string]string{
		"trade_id":        "TRD-20260315",
		"counterparty":    "Deutsche Bank AG",
		"notional_amount": "30000000",
		"settlement_date": "2026-03-15",
		"interest_rate":   "4.25",
		"currency":        "USD",
		"payment_terms":   "Quarterly",
		"legal_entity":    "Deutsche Bank Aktiengesellschaft",
	}

	if len(got) != len(want) {
		t.Errorf("len(TermValues()) = %d, want %d", len(got), len(want))
	}
	for term, value := range want {
		if got[term] != value {
			t.Errorf("TermValues()[%q] = %q, want %q", term, got[term], value)
		}
	}
}

func TestFiltersFromQuery(t *testing.T) {
	t.Run("all params present", func(t *testing.T) {
		values := url.Values{
			"status":       {"active"},
			"counterparty": {"Deutsche"},
			"currency":     {"USD"},
		}

		f := trades.FiltersFromQuery(values)

		if f.Status == nil || *f.Status != "active" {
			t.Errorf("Status = %v, want active", f.Status)
		}
		if f.Counterparty == nil || *f.Counterparty != "Deutsche" {
			t.Errorf("Counterparty = %v, want Deutsche", f.Counterparty)
		}
		if f.Currency == nil || *f.Currency != "USD" {
			t.Errorf("Currency = %v, want USD", f.Currency)
		}
	})

	t.Run("empty params yield nil fields", func(t *testing.T) {
		f := trades.FiltersFromQuery(url.Values{})

		if f.Status != nil || f.Counterparty != nil || f.Currency != nil {
			t.Errorf("filters = %+v, want all nil", f)
		}
	})
}

func TestFiltersApply(t *testing.T) {
	projection := query.
		NewProjectionMap("public", "trade_records", "t").
		Project("status", "Status").
		Project("counterparty", "Counterparty").
		Project("currency", "Currency")

	t.Run("no filters produces no WHERE clause", func(t *testing.T) {
		b := query.NewBuilder(projection)
		f := trades.Filters{}
		f.Apply(b)
		sql, args := b.Build()

		wantSQL := "SELECT t.status, t.counterparty, t.currency FROM public.trade_records t"
		if sql != wantSQL {
			t.Errorf("sql = %q, want %q", sql, wantSQL)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}
	})

	t.Run("counterparty contains filter", func(t *testing.T) {
		b := query.NewBuilder(projection)
		f := trades.Filters{Counterparty: ptr("Deutsche")}
		f.Apply(b)
		_, args := b.Build()

		if len(args) != 1 || args[0] != "%Deutsche%" {
			t.Errorf("args = %v, want [%%Deutsche%%]", args)
		}
	})

	t.Run("multiple filters combine with AND", func(t *testing.T) {
		b := query.NewBuilder(projection)
		f := trades.Filters{
			Status:   ptr("active"),
			Currency: ptr("USD"),
		}
		f.Apply(b)
		_, args := b.Build()

		if len(args) != 2 {
			t.Errorf("args length = %d, want 2", len(args))
		}
	})
}
