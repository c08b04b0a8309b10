package sessions_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/termsight/termsight/internal/sessions"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from sessions.Status
		to   sessions.Status
		want bool
	}{
		{sessions.StatusPending, sessions.StatusProcessing, true},
		{sessions.StatusPending, sessions.StatusCompleted, false},
		{sessions.StatusPending, sessions.StatusFailed, false},
		{sessions.StatusProcessing, sessions.StatusCompleted, true},
		{sessions.StatusProcessing, sessions.StatusFailed, true},
		{sessions.StatusProcessing, sessions.StatusPending, false},
		{sessions.StatusProcessing, sessions.StatusManualReview, false},
		{sessions.StatusCompleted, sessions.StatusManualReview, true},
		{sessions.StatusCompleted, sessions.StatusFailed, true},
		{sessions.StatusCompleted, sessions.StatusCompleted, true},
		{sessions.StatusCompleted, sessions.StatusPending, false},
		{sessions.StatusFailed, sessions.StatusCompleted, true},
		{sessions.StatusFailed, sessions.StatusManualReview, true},
		{sessions.StatusManualReview, sessions.StatusCompleted, true},
		{sessions.StatusManualReview, sessions.StatusFailed, true},
		{sessions.StatusManualReview, sessions.StatusProcessing, false},
	}

	for _, tt := range tests {
		name := fmt.Sprintf("%s to %s", tt.from, tt.to)
		t.Run(name, func(t *testing.T) {
			if got := sessions.CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestDecidable(t *testing.T) {
	tests := []struct {
		status sessions.Status
		want   bool
	}{
		{sessions.StatusPending, false},
		{sessions.StatusProcessing, false},
		{sessions.StatusCompleted, true},
		{sessions.StatusFailed, true},
		{sessions.StatusManualReview, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := sessions.Decidable(tt.status); got != tt.want {
				t.Errorf("Decidable(%q) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		decision   sessions.Decision
		wantStatus sessions.Status
		wantOK     bool
	}{
		{sessions.DecisionApprove, sessions.StatusCompleted, true},
		{sessions.DecisionReject, sessions.StatusFailed, true},
		{sessions.DecisionManualReview, sessions.StatusManualReview, true},
		{sessions.Decision("escalate"), "", false},
		{sessions.Decision(""), "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.decision), func(t *testing.T) {
			got, ok := sessions.StatusFor(tt.decision)
			if ok != tt.wantOK {
				t.Fatalf("StatusFor(%q) ok = %v, want %v", tt.decision, ok, tt.wantOK)
			}
			if got != tt.wantStatus {
				t.Errorf("StatusFor(%q) = %q, want %q", tt.decision, got, tt.wantStatus)
			}
		})
	}
}

func TestCreateCommandValidate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     sessions.CreateCommand
		wantErr error
	}{
		{
			name: "valid",
			cmd:  sessions.CreateCommand{SessionName: "Q1 swap confirm", TradeID: "TRD-20260315"},
		},
		{
			name:    "missing name",
			cmd:     sessions.CreateCommand{TradeID: "TRD-20260315"},
			wantErr: sessions.ErrMissingName,
		},
		{
			name:    "missing trade id",
			cmd:     sessions.CreateCommand{SessionName: "Q1 swap confirm"},
			wantErr: sessions.ErrMissingTradeID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: sessions.ErrNotFound, want: http.StatusNotFound},
		{name: "conflict", err: sessions.ErrConflict, want: http.StatusConflict},
		{name: "invalid state", err: sessions.ErrInvalidState, want: http.StatusConflict},
		{name: "invalid decision", err: sessions.ErrInvalidDecision, want: http.StatusUnprocessableEntity},
		{name: "missing name", err: sessions.ErrMissingName, want: http.StatusBadRequest},
		{name: "missing trade id", err: sessions.ErrMissingTradeID, want: http.StatusBadRequest},
		{name: "wrapped not found", err: fmt.Errorf("find session: %w", sessions.ErrNotFound), want: http.StatusNotFound},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sessions.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
