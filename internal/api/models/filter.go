package models

// ConditionKind represents the comparison requested by a filter clause
type ConditionKind string

const (
	ConditionEquals       ConditionKind = "equals"
	ConditionDoesNotEqual ConditionKind = "does_not_equal"
	ConditionGreaterThan  ConditionKind = "greater_than"
	ConditionLessThan     ConditionKind = "less_than"
)

// IsValid reports whether the condition is one of the supported kinds
func (ck ConditionKind) IsValid() bool {
	switch ck {
	case ConditionEquals, ConditionDoesNotEqual, ConditionGreaterThan, ConditionLessThan:
		return true
	}
	return false
}

// ValueKind represents the inferred type of a filter value
type ValueKind string

const (
	KindString ValueKind = "string"
	KindNumber ValueKind = "number"
	KindDate   ValueKind = "date"
	KindNull   ValueKind = "null"
)

// FilterClause is a single condition as supplied by the caller
type FilterClause struct {
	// Question id the clause applies to
	ID string `json:"id"`

	// Operator for comparison
	Condition ConditionKind `json:"condition"`

	// Value to compare against: string, number, or null after JSON decoding
	Value interface{} `json:"value"`
}

// CompiledClause is a clause with its value kind inferred once up front.
// Number holds the comparison operand for KindNumber clauses, Timestamp the
// epoch milliseconds for KindDate clauses.
type CompiledClause struct {
	ID        string
	Condition ConditionKind
	Kind      ValueKind
	Value     interface{}
	Number    float64
	Timestamp int64
}

// CompiledFilter is an ordered list of compiled clauses, at most one per
// question id. Clause order follows the order the caller supplied.
type CompiledFilter []CompiledClause
