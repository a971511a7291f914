package domain

import (
	"fmt"
	"strings"
	"time"
)

// Field is a queryable entity property.
type Field string

// Fields accepted at the API boundary.
const (
	FieldCity          Field = "city"
	FieldTopics        Field = "topics"
	FieldMonth         Field = "month"
	FieldMaxAttendees  Field = "maxAttendees"
	FieldTypeOfSession Field = "typeOfSession"
	FieldLocation      Field = "location"
	FieldDate          Field = "date"
)

// Fields only reachable from service code.
const (
	FieldName           Field = "name"
	FieldSeatsAvailable Field = "seatsAvailable"
	FieldStartTime      Field = "startTime"
	FieldSpeaker        Field = "speaker"
)

// ValueType is the storage type a field's filter values are coerced to.
type ValueType int

const (
	ValueString ValueType = iota
	ValueInt
	ValueDate
	ValueTimeOfDay
)

// ParseField maps a boundary field name to a Field. Both the canonical names and
// the upper-case request tokens are accepted; anything else is rejected.
func ParseField(s string) (Field, bool) {
	switch strings.TrimSpace(s) {
	case "city", "CITY":
		return FieldCity, true
	case "topics", "TOPIC":
		return FieldTopics, true
	case "month", "MONTH":
		return FieldMonth, true
	case "maxAttendees", "MAX_ATTENDEES":
		return FieldMaxAttendees, true
	case "typeOfSession", "TYPE_OF_SESSION":
		return FieldTypeOfSession, true
	case "location", "LOCATION":
		return FieldLocation, true
	case "date", "DATE":
		return FieldDate, true
	}
	return "", false
}

// ValueType returns the coercion target for f.
func (f Field) ValueType() ValueType {
	switch f {
	case FieldMonth, FieldMaxAttendees, FieldSeatsAvailable:
		return ValueInt
	case FieldDate:
		return ValueDate
	case FieldStartTime:
		return ValueTimeOfDay
	default:
		return ValueString
	}
}

// Operator is a comparison operator.
type Operator string

const (
	OpEQ   Operator = "="
	OpGT   Operator = ">"
	OpGTEQ Operator = ">="
	OpLT   Operator = "<"
	OpLTEQ Operator = "<="
	OpNE   Operator = "!="
)

// ParseOperator maps a boundary operator (symbol or token) to an Operator.
func ParseOperator(s string) (Operator, bool) {
	switch strings.TrimSpace(s) {
	case "=", "EQ":
		return OpEQ, true
	case ">", "GT":
		return OpGT, true
	case ">=", "GTEQ":
		return OpGTEQ, true
	case "<", "LT":
		return OpLT, true
	case "<=", "LTEQ":
		return OpLTEQ, true
	case "!=", "NE":
		return OpNE, true
	}
	return "", false
}

// IsInequality reports whether op is anything other than equality.
func (op Operator) IsInequality() bool {
	return op != OpEQ
}

// holds applies op to the result of a three-way comparison.
func (op Operator) holds(cmp int) bool {
	switch op {
	case OpEQ:
		return cmp == 0
	case OpNE:
		return cmp != 0
	case OpGT:
		return cmp > 0
	case OpGTEQ:
		return cmp >= 0
	case OpLT:
		return cmp < 0
	case OpLTEQ:
		return cmp <= 0
	}
	return false
}

// RawFilter is a filter triple as received at the boundary.
type RawFilter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// Filter is a validated predicate. Value holds a string, int64, time.Time (a
// calendar date at UTC midnight) or TimeOfDay depending on Field.ValueType.
type Filter struct {
	Field Field
	Op    Operator
	Value any
}

func (f Filter) String() string {
	return fmt.Sprintf("%s %s %v", f.Field, f.Op, f.Value)
}

// Matches reports whether any of the entity's values for f.Field satisfies the
// predicate. Multi-valued properties match when one element does; an entity
// without a value never matches.
func (f Filter) Matches(values []any) bool {
	for _, v := range values {
		cmp, ok := CompareValues(v, f.Value)
		if ok && f.Op.holds(cmp) {
			return true
		}
	}
	return false
}

// FilterSpec is a validated filter list. InequalityField is empty when every
// filter is an equality.
type FilterSpec struct {
	Filters         []Filter
	InequalityField Field
}

// HasInequality reports whether the spec carries a non-equality filter.
func (s FilterSpec) HasInequality() bool {
	return s.InequalityField != ""
}

// TimeOfDay is a wall-clock time stored as minutes after midnight.
type TimeOfDay int

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// DateLayout is the calendar date format used at the boundary.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date, ignoring anything after the first ten
// characters.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	return time.Parse(DateLayout, s)
}

// CompareValues compares two values of the same dynamic type. ok is false when
// the types differ or are not comparable.
func CompareValues(a, b any) (cmp int, ok bool) {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(av, bv), true
	case int64:
		bv, ok := b.(int64)
		if !ok {
			return 0, false
		}
		return compareOrdered(av, bv), true
	case TimeOfDay:
		bv, ok := b.(TimeOfDay)
		if !ok {
			return 0, false
		}
		return compareOrdered(av, bv), true
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return av.Compare(bv), true
	}
	return 0, false
}

func compareOrdered[T int64 | TimeOfDay](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
