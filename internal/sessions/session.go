// Package sessions implements the validation session domain: the lifecycle
// of a term-sheet validation run from creation through comparison to the
// human decision that closes it out.
package sessions

import (
	"time"

	"github.com/google/uuid"

	"github.com/termsight/termsight/internal/compare"
	"github.com/termsight/termsight/internal/extraction"
	"github.com/termsight/termsight/internal/scoring"
)

// Status is a session's position in the validation lifecycle.
type Status string

const (
	StatusPending      Status = "pending"
	StatusProcessing   Status = "processing"
	StatusCompleted    Status = "completed"
	StatusFailed       Status = "failed"
	StatusManualReview Status = "manual_review"
)

// Decision is the human action that closes out a validated session.
type Decision string

const (
	DecisionApprove      Decision = "approve"
	DecisionReject       Decision = "reject"
	DecisionManualReview Decision = "manual_review"
)

// transitions enumerates the allowed status moves. Validation advances
// pending through processing; decisions move between the settled states.
var transitions = map[Status][]Status{
	StatusPending:      {StatusProcessing},
	StatusProcessing:   {StatusCompleted, StatusFailed},
	StatusCompleted:    {StatusCompleted, StatusFailed, StatusManualReview},
	StatusFailed:       {StatusCompleted, StatusFailed, StatusManualReview},
	StatusManualReview: {StatusCompleted, StatusFailed, StatusManualReview},
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Decidable reports whether a session in the given status accepts decisions.
func Decidable(s Status) bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusManualReview
}

// StatusFor returns the status a decision transitions a session to.
func StatusFor(d Decision) (Status, bool) {
	switch d {
	case DecisionApprove:
		return StatusCompleted, true
	case DecisionReject:
		return StatusFailed, true
	case DecisionManualReview:
		return StatusManualReview, true
	default:
		return "", false
	}
}

// Session is a single validation run over one term-sheet document against
// one trade record.
type Session struct {
	ID             uuid.UUID         `json:"id"`
	SessionName    string            `json:"session_name"`
	FileID         *uuid.UUID        `json:"file_id,omitempty"`
	TradeID        string            `json:"trade_id"`
	Status         Status            `json:"status"`
	Terms          []extraction.Term `json:"terms,omitempty"`
	Results        []compare.Result  `json:"results,omitempty"`
	Summary        *scoring.Summary  `json:"summary,omitempty"`
	Decision       *Decision         `json:"decision,omitempty"`
	DecisionReason *string           `json:"decision_reason,omitempty"`
	AIRiskScore    *int              `json:"ai_risk_score,omitempty"`
	ErrorReason    *string           `json:"error_reason,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	CompletedAt    *time.Time        `json:"completed_at,omitempty"`
}

// CreateCommand carries the data needed to open a new validation session.
type CreateCommand struct {
	SessionName string     `json:"session_name"`
	FileID      *uuid.UUID `json:"file_id,omitempty"`
	TradeID     string     `json:"trade_id"`
}

// Validate checks the command's required fields.
func (c *CreateCommand) Validate() error {
	if c.SessionName == "" {
		return ErrMissingName
	}
	if c.TradeID == "" {
		return ErrMissingTradeID
	}
	return nil
}

// DecideCommand records a human decision on a settled session.
type DecideCommand struct {
	Decision Decision `json:"decision"`
	Reason   *string  `json:"reason,omitempty"`
}

// StatusCommand requests a direct status transition.
type StatusCommand struct {
	Status Status `json:"status"`
}
