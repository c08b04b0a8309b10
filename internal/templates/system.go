package templates

import (
	"context"

	"github.com/google/uuid"

	"github.com/termsight/termsight/pkg/pagination"
)

// System defines the public contract for template domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Template], error)

	Find(ctx context.Context, id uuid.UUID) (*Template, error)

	// FindActive resolves the active template for a template type.
	FindActive(ctx context.Context, templateType string) (*Template, error)

	// RecordUse increments a template's usage counter.
	RecordUse(ctx context.Context, id uuid.UUID) error

	Create(ctx context.Context, cmd CreateCommand) (*Template, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Template, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Activate marks the template active, deactivating any other active
	// template of the same type.
	Activate(ctx context.Context, id uuid.UUID) (*Template, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*Template, error)
}
