package sessions

import (
	"context"

	"github.com/google/uuid"

	"github.com/termsight/termsight/internal/compare"
	"github.com/termsight/termsight/internal/documents"
	"github.com/termsight/termsight/internal/extraction"
	"github.com/termsight/termsight/internal/scoring"
	"github.com/termsight/termsight/internal/trades"
	"github.com/termsight/termsight/pkg/pagination"
)

// InterfaceData aggregates everything a review screen needs for one
// session: the session itself plus its trade record and source document.
type InterfaceData struct {
	Session     *Session            `json:"session"`
	TradeRecord *trades.TradeRecord `json:"trade_record,omitempty"`
	Document    *documents.Document `json:"document,omitempty"`
}

// System defines the public contract for validation session operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Session], error)

	Find(ctx context.Context, id uuid.UUID) (*Session, error)
	Create(ctx context.Context, cmd CreateCommand) (*Session, error)

	// Start claims a pending session and runs the validation pipeline:
	// extraction, comparison against the trade record, and scoring.
	Start(ctx context.Context, id uuid.UUID) (*Session, error)

	// Decide records a human decision on a settled session.
	Decide(ctx context.Context, id uuid.UUID, cmd DecideCommand) (*Session, error)

	// UpdateStatus applies a direct status transition, subject to the
	// session state machine.
	UpdateStatus(ctx context.Context, id uuid.UUID, cmd StatusCommand) (*Session, error)

	Terms(ctx context.Context, id uuid.UUID) ([]extraction.Term, error)
	Results(ctx context.Context, id uuid.UUID) ([]compare.Result, error)
	Summary(ctx context.Context, id uuid.UUID) (*scoring.Summary, error)
	InterfaceData(ctx context.Context, id uuid.UUID) (*InterfaceData, error)
}
