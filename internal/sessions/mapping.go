package sessions

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/termsight/termsight/pkg/query"
	"github.com/termsight/termsight/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "sessions", "s").
	Project("id", "ID").
	Project("session_name", "SessionName").
	Project("file_id", "FileID").
	Project("trade_id", "TradeID").
	Project("status", "Status").
	Project("terms", "Terms").
	Project("results", "Results").
	Project("summary", "Summary").
	Project("decision", "Decision").
	Project("decision_reason", "DecisionReason").
	Project("ai_risk_score", "AIRiskScore").
	Project("error_reason", "ErrorReason").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt").
	Project("completed_at", "CompletedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for session queries.
// Nil fields are ignored. MinRiskScore and MaxRiskScore bound the
// recorded risk score inclusively.
type Filters struct {
	Status       *string `json:"status,omitempty"`
	TradeID      *string `json:"trade_id,omitempty"`
	MinRiskScore *int    `json:"min_risk_score,omitempty"`
	MaxRiskScore *int    `json:"max_risk_score,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereEquals("TradeID", f.TradeID).
		WhereGte("AIRiskScore", f.MinRiskScore).
		WhereLte("AIRiskScore", f.MaxRiskScore)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}
	if t := values.Get("trade_id"); t != "" {
		f.TradeID = &t
	}
	if m := values.Get("min_risk_score"); m != "" {
		if v, err := strconv.Atoi(m); err == nil {
			f.MinRiskScore = &v
		}
	}
	if m := values.Get("max_risk_score"); m != "" {
		if v, err := strconv.Atoi(m); err == nil {
			f.MaxRiskScore = &v
		}
	}

	return f
}

// jsonArg marshals a value for a jsonb parameter, storing NULL for
// empty values.
func jsonArg(v any) any {
	b, err := json.Marshal(v)
	if err != nil || string(b) == "null" {
		return nil
	}
	return b
}

func scanSession(s repository.Scanner) (Session, error) {
	var (
		sess    Session
		terms   []byte
		results []byte
		summary []byte
	)

	err := s.Scan(
		&sess.ID,
		&sess.SessionName,
		&sess.FileID,
		&sess.TradeID,
		&sess.Status,
		&terms,
		&results,
		&summary,
		&sess.Decision,
		&sess.DecisionReason,
		&sess.AIRiskScore,
		&sess.ErrorReason,
		&sess.CreatedAt,
		&sess.UpdatedAt,
		&sess.CompletedAt,
	)
	if err != nil {
		return sess, err
	}

	if len(terms) > 0 {
		if err := json.Unmarshal(terms, &sess.Terms); err != nil {
			return sess, err
		}
	}
	if len(results) > 0 {
		if err := json.Unmarshal(results, &sess.Results); err != nil {
			return sess, err
		}
	}
	if len(summary) > 0 {
		if err := json.Unmarshal(summary, &sess.Summary); err != nil {
			return sess, err
		}
	}

	return sess, nil
}
