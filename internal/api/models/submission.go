package models

import "encoding/json"

// Question is a single answered question inside a submission. Value is
// whatever upstream returned for the answer: string, number, or null.
type Question struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Type  string      `json:"type"`
	Value interface{} `json:"value"`
}

// Submission is one form submission as returned by the Fillout API. Only
// questions are inspected by the filter engine; everything else is carried
// through untouched.
type Submission struct {
	SubmissionID   string          `json:"submissionId"`
	SubmissionTime string          `json:"submissionTime"`
	LastUpdatedAt  string          `json:"lastUpdatedAt,omitempty"`
	Questions      []Question      `json:"questions"`
	Calculations   json.RawMessage `json:"calculations,omitempty"`
	URLParameters  json.RawMessage `json:"urlParameters,omitempty"`
	Quiz           json.RawMessage `json:"quiz,omitempty"`
	Documents      json.RawMessage `json:"documents,omitempty"`
	EditLink       string          `json:"editLink,omitempty"`
}

// QuestionByID returns the question with the given id, if present
func (s *Submission) QuestionByID(id string) (*Question, bool) {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i], true
		}
	}
	return nil, false
}

// SubmissionList is the envelope the Fillout submissions endpoint returns,
// and the shape this service responds with after filtering.
type SubmissionList struct {
	Responses      []Submission `json:"responses"`
	TotalResponses int          `json:"totalResponses"`
	PageCount      int          `json:"pageCount"`
}
