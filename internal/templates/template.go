// Package templates implements the validation template domain. A template is
// a named, versioned rule-set document that can be activated per template
// type to drive validation runs.
package templates

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/termsight/termsight/internal/rules"
)

// Template represents a named validation rule-set document.
type Template struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	TemplateType string          `json:"template_type"`
	Rules        json.RawMessage `json:"rules"`
	Description  *string         `json:"description"`
	Active       bool            `json:"active"`
	UsageCount   int             `json:"usage_count"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Registry parses the template's rule document into a registry snapshot.
func (t *Template) Registry() (*rules.Registry, error) {
	return rules.Parse(t.Rules)
}

// CreateCommand carries the data needed to create a new template.
type CreateCommand struct {
	Name         string          `json:"name"`
	TemplateType string          `json:"template_type"`
	Rules        json.RawMessage `json:"rules"`
	Description  *string         `json:"description"`
}

// Validate checks required fields and that the rule document parses cleanly.
func (c *CreateCommand) Validate() error {
	if c.Name == "" {
		return ErrMissingName
	}
	if c.TemplateType == "" {
		return ErrMissingType
	}
	if _, err := rules.Parse(c.Rules); err != nil {
		return err
	}
	return nil
}

// UpdateCommand carries the data needed to update an existing template.
type UpdateCommand struct {
	Name         string          `json:"name"`
	TemplateType string          `json:"template_type"`
	Rules        json.RawMessage `json:"rules"`
	Description  *string         `json:"description"`
}

// Validate checks required fields and that the rule document parses cleanly.
func (c *UpdateCommand) Validate() error {
	return (*CreateCommand)(c).Validate()
}
