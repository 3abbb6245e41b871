package request

import (
	"encoding/json"
	"fmt"

	"filloutproxy/internal/api/models"
	"filloutproxy/pkg"

	"github.com/xeipuuv/gojsonschema"
)

// FilteredResponsesQuery holds the query parameters of the filtered responses
// endpoint. Defaults mirror the upstream submissions endpoint.
type FilteredResponsesQuery struct {
	Limit           int    `form:"limit,default=150" validate:"min=1,max=150"`
	Offset          int    `form:"offset,default=0" validate:"min=0"`
	Status          string `form:"status,default=finished" validate:"oneof=in_progress finished"`
	Sort            string `form:"sort,default=asc" validate:"oneof=asc desc"`
	AfterDate       string `form:"afterDate"`
	BeforeDate      string `form:"beforeDate"`
	IncludeEditLink *bool  `form:"includeEditLink"`
	Filters         string `form:"filters"`
}

// filtersSchema shape-checks the filters query parameter: an array of clauses
// with a string id and a known condition. Values stay unconstrained here; the
// filter compiler owns their semantics.
var filtersSchema = map[string]interface{}{
	"type": "array",
	"items": map[string]interface{}{
		"type":     "object",
		"required": []string{"id", "condition"},
		"properties": map[string]interface{}{
			"id": map[string]interface{}{
				"type":      "string",
				"minLength": 1,
			},
			"condition": map[string]interface{}{
				"enum": []string{"equals", "does_not_equal", "greater_than", "less_than"},
			},
			"value": map[string]interface{}{},
		},
	},
}

// ValidateDates checks the optional date bounds parse as dates
func (slf *FilteredResponsesQuery) ValidateDates() error {
	if slf.AfterDate != "" {
		if _, ok := pkg.ParseDate(slf.AfterDate); !ok {
			return fmt.Errorf("afterDate must be a date")
		}
	}
	if slf.BeforeDate != "" {
		if _, ok := pkg.ParseDate(slf.BeforeDate); !ok {
			return fmt.Errorf("beforeDate must be a date")
		}
	}
	return nil
}

// ParseFilters decodes the filters parameter into clauses after checking its
// shape against the schema. An absent parameter means no filtering.
func (slf *FilteredResponsesQuery) ParseFilters() ([]models.FilterClause, error) {
	if slf.Filters == "" {
		return nil, nil
	}

	schemaLoader := gojsonschema.NewGoLoader(filtersSchema)
	documentLoader := gojsonschema.NewStringLoader(slf.Filters)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("filters must be a JSON array of filter clauses: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, fmt.Errorf("invalid filters parameter: %v", errs)
	}

	var clauses []models.FilterClause
	if err := json.Unmarshal([]byte(slf.Filters), &clauses); err != nil {
		return nil, fmt.Errorf("decoding filters parameter: %w", err)
	}
	return clauses, nil
}
