package response

import "filloutproxy/internal/api/models"

// FilteredResponses is the success payload of the filtered responses
// endpoint. Totals describe the filtered set, not the upstream page.
type FilteredResponses struct {
	Responses      []models.Submission `json:"responses"`
	TotalResponses int                 `json:"totalResponses"`
	PageCount      int                 `json:"pageCount"`
}
