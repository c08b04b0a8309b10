package templates

import (
	"net/url"
	"strconv"

	"github.com/termsight/termsight/pkg/query"
	"github.com/termsight/termsight/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "templates", "t").
	Project("id", "ID").
	Project("name", "Name").
	Project("template_type", "TemplateType").
	Project("rules", "Rules").
	Project("description", "Description").
	Project("active", "Active").
	Project("usage_count", "UsageCount").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for template queries.
type Filters struct {
	TemplateType *string `json:"template_type,omitempty"`
	Active       *bool   `json:"active,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("TemplateType", f.TemplateType).
		WhereEquals("Active", f.Active)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if t := values.Get("template_type"); t != "" {
		f.TemplateType = &t
	}
	if a := values.Get("active"); a != "" {
		if v, err := strconv.ParseBool(a); err == nil {
			f.Active = &v
		}
	}

	return f
}

func scanTemplate(s repository.Scanner) (Template, error) {
	var t Template
	err := s.Scan(
		&t.ID,
		&t.Name,
		&t.TemplateType,
		&t.Rules,
		&t.Description,
		&t.Active,
		&t.UsageCount,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}
