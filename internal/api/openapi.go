package api

import (
	"github.com/termsight/termsight/internal/config"
	"github.com/termsight/termsight/pkg/openapi"
)

// buildSpec assembles the OpenAPI document for the validation API.
func buildSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.Docs.Title, cfg.Version)
	spec.SetDescription(cfg.API.Docs.Description)
	spec.AddServer(cfg.API.BasePath)

	registerSchemas(spec)

	spec.Paths["/validation/sessions"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List validation sessions",
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("status", "string", "Filter by session status", false),
				openapi.QueryParam("trade_id", "string", "Filter by trade identifier", false),
				openapi.QueryParam("min_risk_score", "integer", "Minimum recorded risk score", false),
				openapi.QueryParam("max_risk_score", "integer", "Maximum recorded risk score", false),
			},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paginated sessions", "Session"),
			},
		},
		Post: &openapi.Operation{
			Summary:     "Create a validation session",
			RequestBody: openapi.RequestBodyJSON("SessionCreate", true),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Created session", "Session"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/validation/sessions/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find a validation session",
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Session identifier")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Session", "Session"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/validation/sessions/{id}/start-validation"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:    "Run validation for a pending session",
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Session identifier")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Session after the run", "Session"),
				404: openapi.ResponseRef("NotFound"),
				409: openapi.ResponseRef("Conflict"),
			},
		},
	}

	spec.Paths["/validation/sessions/{id}/decision"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Record a decision on a settled session",
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Session identifier")},
			RequestBody: openapi.RequestBodyJSON("SessionDecision", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Decided session", "Session"),
				404: openapi.ResponseRef("NotFound"),
				409: openapi.ResponseRef("Conflict"),
			},
		},
	}

	spec.Paths["/validation/sessions/{id}/results"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Per-term comparison results",
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Session identifier")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Comparison results", "ValidationResult"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/validation/sessions/{id}/summary"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Risk summary for a session",
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Session identifier")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Risk summary", "ValidationSummary"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/validation/documents"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List uploaded term sheet documents",
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paginated documents", "Document"),
			},
		},
		Post: &openapi.Operation{
			Summary: "Upload a term sheet document",
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Stored document", "Document"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/validation/trade-records"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List trade records",
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paginated trade records", "TradeRecord"),
			},
		},
		Post: &openapi.Operation{
			Summary: "Register a trade record",
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Created trade record", "TradeRecord"),
				409: openapi.ResponseRef("Conflict"),
			},
		},
	}

	spec.Paths["/validation/templates"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List validation templates",
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paginated templates", "Template"),
			},
		},
		Post: &openapi.Operation{
			Summary: "Create a validation template",
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Created template", "Template"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	return spec
}

func registerSchemas(spec *openapi.Spec) {
	spec.Components.Schemas["Session"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":            {Type: "string", Description: "Session identifier"},
			"session_name":  {Type: "string"},
			"file_id":       {Type: "string", Description: "Uploaded document identifier"},
			"trade_id":      {Type: "string", Description: "Trade record reference"},
			"status":        {Type: "string", Description: "pending, processing, completed, failed, or manual_review"},
			"ai_risk_score": {Type: "integer"},
			"decision":      {Type: "string", Description: "approve, reject, or manual_review"},
		},
	}

	spec.Components.Schemas["SessionCreate"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"session_name": {Type: "string"},
			"file_id":      {Type: "string"},
			"trade_id":     {Type: "string"},
		},
		Required: []string{"session_name", "trade_id"},
	}

	spec.Components.Schemas["SessionDecision"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"decision": {Type: "string", Description: "approve, reject, or manual_review"},
			"reason":   {Type: "string"},
		},
		Required: []string{"decision"},
	}

	spec.Components.Schemas["ValidationResult"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"term_name":       {Type: "string"},
			"extracted_value": {Type: "string"},
			"expected_value":  {Type: "string"},
			"status":          {Type: "string", Description: "valid, invalid, missing, or warning"},
			"match_score":     {Type: "number"},
			"method":          {Type: "string", Description: "Comparison method applied"},
			"severity":        {Type: "string", Description: "none, minor, or critical"},
			"description":     {Type: "string"},
		},
	}

	spec.Components.Schemas["ValidationSummary"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"total_terms":            {Type: "integer"},
			"valid_terms":            {Type: "integer"},
			"invalid_terms":          {Type: "integer"},
			"missing_terms":          {Type: "integer"},
			"warning_terms":          {Type: "integer"},
			"critical_discrepancies": {Type: "integer"},
			"minor_discrepancies":    {Type: "integer"},
			"overall_accuracy":       {Type: "number"},
			"risk_score":             {Type: "integer"},
			"compliance_status":      {Type: "string", Description: "compliant, partial_compliant, or non_compliant"},
		},
	}

	spec.Components.Schemas["Document"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":           {Type: "string"},
			"filename":     {Type: "string"},
			"content_type": {Type: "string"},
			"size_bytes":   {Type: "integer"},
			"page_count":   {Type: "integer"},
			"status":       {Type: "string"},
		},
	}

	spec.Components.Schemas["TradeRecord"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":              {Type: "string"},
			"trade_id":        {Type: "string"},
			"counterparty":    {Type: "string"},
			"notional_amount": {Type: "number"},
			"currency":        {Type: "string"},
			"settlement_date": {Type: "string"},
			"interest_rate":   {Type: "number"},
			"payment_terms":   {Type: "string"},
			"legal_entity":    {Type: "string"},
		},
	}

	spec.Components.Schemas["Template"] = &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"id":            {Type: "string"},
			"name":          {Type: "string"},
			"template_type": {Type: "string"},
			"rules":         {Type: "object", Description: "Rule registry document"},
			"active":        {Type: "boolean"},
			"usage_count":   {Type: "integer"},
		},
	}
}
