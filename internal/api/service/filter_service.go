package service

import (
	"fmt"
	"strconv"
	"strings"

	"filloutproxy/internal/api/models"
	"filloutproxy/pkg"
)

// FilterService compiles user-supplied filter clauses and applies them to
// submissions fetched from the upstream API
type FilterService struct{}

// NewFilterService creates a new filter service
func NewFilterService() *FilterService {
	return &FilterService{}
}

// Compile validates a list of clauses and infers each value's kind once up
// front. At most one clause per question id is allowed.
func (slf *FilterService) Compile(clauses []models.FilterClause) (models.CompiledFilter, error) {
	compiled := make(models.CompiledFilter, 0, len(clauses))
	seen := make(map[string]struct{}, len(clauses))

	for _, clause := range clauses {
		kind, err := classifyValue(clause.Value)
		if err != nil {
			return nil, err
		}

		if _, ok := seen[clause.ID]; ok {
			return nil, models.NewInvalidFilterFormat("Too many conditions for a single Id")
		}
		seen[clause.ID] = struct{}{}

		cc := models.CompiledClause{
			ID:        clause.ID,
			Condition: clause.Condition,
			Kind:      kind,
			Value:     clause.Value,
		}
		switch kind {
		case models.KindNumber:
			cc.Number, _ = toFloat64(clause.Value)
		case models.KindDate:
			t, _ := pkg.ParseDate(clause.Value.(string))
			cc.Timestamp = t.UnixMilli()
		}
		compiled = append(compiled, cc)
	}

	return compiled, nil
}

// Apply filters submissions down to the ones matching every clause. Relative
// order is preserved; an empty filter keeps everything.
func (slf *FilterService) Apply(submissions []models.Submission, filter models.CompiledFilter) ([]models.Submission, error) {
	if len(filter) == 0 {
		return submissions, nil
	}

	matched := make([]models.Submission, 0, len(submissions))
	for i := range submissions {
		ok, err := slf.matchesFilter(&submissions[i], filter)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, submissions[i])
		}
	}
	return matched, nil
}

// matchesFilter checks if a submission satisfies every clause (AND logic)
func (slf *FilterService) matchesFilter(submission *models.Submission, filter models.CompiledFilter) (bool, error) {
	for _, clause := range filter {
		ok, err := slf.matchesClause(submission, clause)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// matchesClause checks a single compiled clause against a submission
func (slf *FilterService) matchesClause(submission *models.Submission, clause models.CompiledClause) (bool, error) {
	question, found := submission.QuestionByID(clause.ID)
	if !found {
		return false, nil
	}

	if clause.Kind == models.KindNull {
		switch clause.Condition {
		case models.ConditionEquals:
			return question.Value == nil, nil
		case models.ConditionDoesNotEqual:
			return question.Value != nil, nil
		default:
			return false, models.NewInvalidFilterFormat("use equals or does_not_equal for null filters")
		}
	}

	// A non-null filter can never match a null answer
	if question.Value == nil {
		return false, nil
	}

	switch clause.Kind {
	case models.KindString:
		return compareStrings(clause.Value.(string), question.Value, clause.Condition)
	case models.KindNumber:
		questionNumber, ok := toFloat64(question.Value)
		if !ok {
			return false, nil
		}
		return compareNumbers(questionNumber, clause.Number, clause.Condition), nil
	case models.KindDate:
		return compareDates(question.Value, clause.Timestamp, clause.Condition), nil
	default:
		return false, nil
	}
}

// Helper functions

// classifyValue infers the kind of a filter value. Strings that parse as a
// calendar date are reclassified as dates; numbers never are.
func classifyValue(v interface{}) (models.ValueKind, error) {
	switch val := v.(type) {
	case nil:
		return models.KindNull, nil
	case float64, int, int64:
		return models.KindNumber, nil
	case string:
		if _, ok := pkg.ParseDate(val); ok {
			return models.KindDate, nil
		}
		return models.KindString, nil
	default:
		return "", models.NewInvalidFilterFormat("Filter values must be a number, string, date, or null")
	}
}

// compareStrings matches case-insensitively; equals means substring
// containment. Ordering conditions are not defined for strings.
func compareStrings(filterValue string, questionValue interface{}, cond models.ConditionKind) (bool, error) {
	question := strings.ToLower(fmt.Sprintf("%v", questionValue))
	filter := strings.ToLower(filterValue)

	switch cond {
	case models.ConditionEquals:
		return strings.Contains(question, filter), nil
	case models.ConditionDoesNotEqual:
		return !strings.Contains(question, filter), nil
	default:
		return false, models.NewInvalidFilterFormat("greater_than and less_than are not supported for string filters")
	}
}

// compareNumbers implements the four conditions on plain numbers
func compareNumbers(questionValue, filterValue float64, cond models.ConditionKind) bool {
	switch cond {
	case models.ConditionEquals:
		return questionValue == filterValue
	case models.ConditionDoesNotEqual:
		return questionValue != filterValue
	case models.ConditionGreaterThan:
		return questionValue > filterValue
	case models.ConditionLessThan:
		return questionValue < filterValue
	default:
		return false
	}
}

// compareDates converts the answer to epoch milliseconds and delegates to the
// number comparator. An answer that is not a date never matches.
func compareDates(questionValue interface{}, filterTimestamp int64, cond models.ConditionKind) bool {
	ts, ok := questionTimestamp(questionValue)
	if !ok {
		return false
	}
	return compareNumbers(float64(ts), float64(filterTimestamp), cond)
}

// questionTimestamp converts an answer to epoch milliseconds. Strings go
// through the date parser; numbers are taken as epoch milliseconds already.
func questionTimestamp(v interface{}) (int64, bool) {
	switch val := v.(type) {
	case string:
		t, ok := pkg.ParseDate(val)
		if !ok {
			return 0, false
		}
		return t.UnixMilli(), true
	case float64:
		return int64(val), true
	case int:
		return int64(val), true
	case int64:
		return val, true
	default:
		return 0, false
	}
}

func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case float64:
		return val, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

