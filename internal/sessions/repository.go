package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/termsight/termsight/internal/compare"
	"github.com/termsight/termsight/internal/documents"
	"github.com/termsight/termsight/internal/extraction"
	"github.com/termsight/termsight/internal/rules"
	"github.com/termsight/termsight/internal/scoring"
	"github.com/termsight/termsight/internal/templates"
	"github.com/termsight/termsight/internal/trades"
	"github.com/termsight/termsight/pkg/pagination"
	"github.com/termsight/termsight/pkg/query"
	"github.com/termsight/termsight/pkg/repository"
)

// validationTemplateType is the template type consulted for rule overrides.
const validationTemplateType = "validation"

// finalizeTimeout bounds the status writes that settle a claimed session.
// These run on a context detached from the request so an expired run
// deadline or a client abort cannot strand the row in processing.
const finalizeTimeout = 10 * time.Second

const columns = `id, session_name, file_id, trade_id, status, terms, results, summary,
	decision, decision_reason, ai_risk_score, error_reason, created_at, updated_at, completed_at`

type repo struct {
	db         *sql.DB
	registry   *rules.Registry
	documents  documents.System
	trades     trades.System
	templates  templates.System
	logger     *slog.Logger
	pagination pagination.Config
	timeout    time.Duration
}

// New creates a session repository implementing the System interface.
// The registry provides the default rule set; an active validation
// template overrides it per run.
func New(
	db *sql.DB,
	registry *rules.Registry,
	docs documents.System,
	trades trades.System,
	templates templates.System,
	logger *slog.Logger,
	pagination pagination.Config,
	timeout time.Duration,
) System {
	return &repo{
		db:         db,
		registry:   registry,
		documents:  docs,
		trades:     trades,
		templates:  templates,
		logger:     logger.With("system", "sessions"),
		pagination: pagination,
		timeout:    timeout,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Session], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "SessionName", "TradeID")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanSession)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Session, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	s, err := repository.QueryOne(ctx, r.db, q, args, scanSession)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}
	return &s, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Session, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO sessions(session_name, file_id, trade_id)
		VALUES ($1, $2, $3)
		RETURNING ` + columns

	args := []any{cmd.SessionName, cmd.FileID, cmd.TradeID}

	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Session, error) {
		return repository.QueryOne(ctx, tx, q, args, scanSession)
	})
	if err != nil {
		return nil, repository.MapRefError(err, ErrNotFound, ErrNotFound, documents.ErrNotFound)
	}

	r.logger.Info("session created", "id", s.ID, "trade_id", s.TradeID)
	return &s, nil
}

// Start claims a pending session and runs the validation pipeline. Pipeline
// failures are recorded on the session as a failed run with an error reason.
// An unknown trade record additionally surfaces as ErrNotFound; other run
// failures return the failed session without an error.
func (r *repo) Start(ctx context.Context, id uuid.UUID) (*Session, error) {
	err := repository.ExecExpectOne(
		ctx, r.db,
		"UPDATE sessions SET status = 'processing', updated_at = now() WHERE id = $1 AND status = 'pending'",
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		// The row exists in a non-pending state, or not at all.
		if _, findErr := r.Find(ctx, id); findErr != nil {
			return nil, findErr
		}
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("claim session %s: %w", id, err)
	}

	sess, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	terms, results, summary, runErr := r.run(runCtx, sess)

	// Settling the claimed row must survive the run deadline expiring.
	ctx, settle := context.WithTimeout(context.WithoutCancel(ctx), finalizeTimeout)
	defer settle()

	if runErr != nil {
		r.logger.Warn("validation run failed", "id", id, "error", runErr)
		failed, failErr := r.markFailed(ctx, id, runErr.Error())
		if failErr != nil {
			return nil, failErr
		}
		if errors.Is(runErr, trades.ErrNotFound) {
			return nil, fmt.Errorf("trade record %s: %w", sess.TradeID, ErrNotFound)
		}
		return failed, nil
	}

	err = repository.ExecExpectOne(
		ctx, r.db,
		`UPDATE sessions
		SET status = 'completed', terms = $2, results = $3, summary = $4,
			ai_risk_score = $5, error_reason = NULL, updated_at = now(), completed_at = now()
		WHERE id = $1 AND status = 'processing'`,
		id,
		jsonArg(terms),
		jsonArg(results),
		jsonArg(summary),
		summary.RiskScore,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("complete session %s: %w", id, err)
	}

	r.logger.Info(
		"validation completed",
		"id", id,
		"risk_score", summary.RiskScore,
		"compliance", summary.ComplianceStatus,
	)
	return r.Find(ctx, id)
}

// run executes extraction, comparison, and scoring for a claimed session.
func (r *repo) run(
	ctx context.Context,
	sess *Session,
) ([]extraction.Term, []compare.Result, *scoring.Summary, error) {
	trade, err := r.trades.FindByTradeID(ctx, sess.TradeID)
	if err != nil {
		if errors.Is(err, trades.ErrNotFound) {
			return nil, nil, nil, fmt.Errorf("trade record %s: %w", sess.TradeID, trades.ErrNotFound)
		}
		return nil, nil, nil, fmt.Errorf("resolve trade record: %w", err)
	}

	var terms []extraction.Term
	if sess.FileID != nil {
		data, err := r.documents.Content(ctx, *sess.FileID)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("load document: %w", err)
		}

		terms, err = extraction.ExtractTerms(string(data))
		if err != nil {
			return nil, nil, nil, fmt.Errorf("extract terms: %w", err)
		}
	}

	reg := r.activeRegistry(ctx)
	pairs := buildPairs(reg, terms, trade.TermValues())
	results := compare.EvaluateAll(reg, pairs)
	summary := scoring.Summarize(results, reg.Weights())

	return terms, results, &summary, nil
}

// activeRegistry resolves the rule set for a run: the active validation
// template when one exists, otherwise the configured default.
func (r *repo) activeRegistry(ctx context.Context) *rules.Registry {
	tpl, err := r.templates.FindActive(ctx, validationTemplateType)
	if err != nil {
		if !errors.Is(err, templates.ErrNotFound) {
			r.logger.Warn("active template lookup failed, using defaults", "error", err)
		}
		return r.registry
	}

	reg, err := tpl.Registry()
	if err != nil {
		r.logger.Warn("active template unparseable, using defaults", "id", tpl.ID, "error", err)
		return r.registry
	}

	if err := r.templates.RecordUse(ctx, tpl.ID); err != nil {
		r.logger.Warn("template usage bump failed", "id", tpl.ID, "error", err)
	}
	return reg
}

func (r *repo) markFailed(ctx context.Context, id uuid.UUID, reason string) (*Session, error) {
	err := repository.ExecExpectOne(
		ctx, r.db,
		`UPDATE sessions
		SET status = 'failed', error_reason = $2, updated_at = now(), completed_at = now()
		WHERE id = $1 AND status = 'processing'`,
		id, reason,
	)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("mark session %s failed: %w", id, err)
	}
	return r.Find(ctx, id)
}

func (r *repo) Decide(ctx context.Context, id uuid.UUID, cmd DecideCommand) (*Session, error) {
	next, ok := StatusFor(cmd.Decision)
	if !ok {
		return nil, ErrInvalidDecision
	}

	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Session, error) {
		current, err := lockSession(ctx, tx, id)
		if err != nil {
			return Session{}, err
		}

		if !Decidable(current.Status) {
			return Session{}, ErrInvalidState
		}

		var risk *int
		if current.Summary != nil {
			score := current.Summary.RiskScore
			risk = &score
		}

		q := `
			UPDATE sessions
			SET status = $2, decision = $3, decision_reason = $4, ai_risk_score = $5,
				updated_at = now(), completed_at = now()
			WHERE id = $1
			RETURNING ` + columns

		return repository.QueryOne(
			ctx, tx, q,
			[]any{id, next, cmd.Decision, cmd.Reason, risk},
			scanSession,
		)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	r.logger.Info("decision recorded", "id", id, "decision", cmd.Decision, "status", s.Status)
	return &s, nil
}

func (r *repo) UpdateStatus(ctx context.Context, id uuid.UUID, cmd StatusCommand) (*Session, error) {
	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Session, error) {
		current, err := lockSession(ctx, tx, id)
		if err != nil {
			return Session{}, err
		}

		if !CanTransition(current.Status, cmd.Status) {
			return Session{}, ErrInvalidState
		}

		q := `
			UPDATE sessions
			SET status = $2, updated_at = now(),
				completed_at = CASE WHEN $2 IN ('completed', 'failed') THEN now() ELSE completed_at END
			WHERE id = $1
			RETURNING ` + columns

		return repository.QueryOne(ctx, tx, q, []any{id, cmd.Status}, scanSession)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrNotFound)
	}

	r.logger.Info("status updated", "id", id, "status", s.Status)
	return &s, nil
}

func (r *repo) Terms(ctx context.Context, id uuid.UUID) ([]extraction.Term, error) {
	s, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Terms, nil
}

func (r *repo) Results(ctx context.Context, id uuid.UUID) ([]compare.Result, error) {
	s, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Results, nil
}

func (r *repo) Summary(ctx context.Context, id uuid.UUID) (*scoring.Summary, error) {
	s, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Summary, nil
}

// InterfaceData loads the session with its trade record and source document
// fetched concurrently. Missing references leave nil fields rather than fail
// the whole aggregate.
func (r *repo) InterfaceData(ctx context.Context, id uuid.UUID) (*InterfaceData, error) {
	sess, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	data := &InterfaceData{Session: sess}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		trade, err := r.trades.FindByTradeID(ctx, sess.TradeID)
		if err != nil {
			if errors.Is(err, trades.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("load trade record: %w", err)
		}
		data.TradeRecord = trade
		return nil
	})

	if sess.FileID != nil {
		fileID := *sess.FileID
		g.Go(func() error {
			doc, err := r.documents.Find(ctx, fileID)
			if err != nil {
				if errors.Is(err, documents.ErrNotFound) {
					return nil
				}
				return fmt.Errorf("load document: %w", err)
			}
			data.Document = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

func lockSession(ctx context.Context, tx *sql.Tx, id uuid.UUID) (Session, error) {
	q := "SELECT " + columns + " FROM sessions WHERE id = $1 FOR UPDATE"
	return repository.QueryOne(ctx, tx, q, []any{id}, scanSession)
}

// buildPairs aligns rule terms, extracted terms, and trade reference values.
// Rule order drives output order; extracted terms without a rule follow in
// extraction order.
func buildPairs(
	reg *rules.Registry,
	terms []extraction.Term,
	expected map[string]string,
) []compare.Pair {
	extracted := make(map[string]string, len(terms))
	for _, t := range terms {
		extracted[t.Name] = t.Value
	}

	seen := make(map[string]bool)
	var pairs []compare.Pair

	for _, rule := range reg.Active() {
		pairs = append(pairs, compare.Pair{
			Term:      rule.Term,
			Extracted: extracted[rule.Term],
			Expected:  expected[rule.Term],
		})
		seen[rule.Term] = true
	}

	for _, t := range terms {
		if seen[t.Name] {
			continue
		}
		pairs = append(pairs, compare.Pair{
			Term:      t.Name,
			Extracted: t.Value,
			Expected:  expected[t.Name],
		})
		seen[t.Name] = true
	}

	return pairs
}
