package config

import (
	"fmt"
	"os"

	"github.com/termsight/termsight/pkg/formatting"
	"github.com/termsight/termsight/pkg/middleware"
	"github.com/termsight/termsight/pkg/openapi"
	"github.com/termsight/termsight/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "TERMSIGHT_CORS_ENABLED",
	Origins:          "TERMSIGHT_CORS_ORIGINS",
	AllowedMethods:   "TERMSIGHT_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "TERMSIGHT_CORS_ALLOWED_HEADERS",
	AllowCredentials: "TERMSIGHT_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "TERMSIGHT_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "TERMSIGHT_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "TERMSIGHT_PAGINATION_MAX_PAGE_SIZE",
}

var docsEnv = &openapi.ConfigEnv{
	Title:       "TERMSIGHT_DOCS_TITLE",
	Description: "TERMSIGHT_DOCS_DESCRIPTION",
}

// APIConfig holds API routing, CORS, and pagination settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Pagination    pagination.Config     `toml:"pagination"`
	Docs          openapi.Config        `toml:"docs"`
}

func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return 50 * 1024 * 1024 // 50MB fallback
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.Docs.Finalize(docsEnv); err != nil {
		return fmt.Errorf("docs: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.Docs.Merge(&overlay.Docs)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "50MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("TERMSIGHT_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("TERMSIGHT_API_MAX_UPLOAD_SIZE"); v != "" {
		c.MaxUploadSize = v
	}
}
