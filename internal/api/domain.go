package api

import (
	"github.com/termsight/termsight/internal/documents"
	"github.com/termsight/termsight/internal/sessions"
	"github.com/termsight/termsight/internal/templates"
	"github.com/termsight/termsight/internal/trades"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Documents documents.System
	Trades    trades.System
	Templates templates.System
	Sessions  sessions.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	docsSystem := documents.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	tradesSystem := trades.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	templatesSystem := templates.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	sessionsSystem := sessions.New(
		runtime.Database.Connection(),
		runtime.Registry,
		docsSystem,
		tradesSystem,
		templatesSystem,
		runtime.Logger,
		runtime.Pagination,
		runtime.ValidationTimeout,
	)

	return &Domain{
		Documents: docsSystem,
		Trades:    tradesSystem,
		Templates: templatesSystem,
		Sessions:  sessionsSystem,
	}
}
