// Package query validates boundary filter triples and plans them into
// executable gateway queries.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"conferencecentral/internal/domain"
)

// Validate parses raw filter triples into a FilterSpec. Filters are scanned in
// input order; the first field used with a non-equality operator becomes the
// inequality field and any other field used that way is rejected. Equality
// filters are accepted on every field.
func Validate(raw []domain.RawFilter) (domain.FilterSpec, error) {
	spec := domain.FilterSpec{Filters: make([]domain.Filter, 0, len(raw))}
	for _, r := range raw {
		f, err := parseFilter(r)
		if err != nil {
			return domain.FilterSpec{}, err
		}
		if f.Op.IsInequality() {
			if spec.InequalityField == "" {
				spec.InequalityField = f.Field
			} else if spec.InequalityField != f.Field {
				return domain.FilterSpec{}, &domain.MultipleInequalityFieldsError{
					First:  spec.InequalityField,
					Second: f.Field,
				}
			}
		}
		spec.Filters = append(spec.Filters, f)
	}
	return spec, nil
}

func parseFilter(r domain.RawFilter) (domain.Filter, error) {
	field, ok := domain.ParseField(r.Field)
	if !ok {
		return domain.Filter{}, domain.NewInvalidFilterError(r.Field, "unknown field")
	}
	op, ok := domain.ParseOperator(r.Operator)
	if !ok {
		return domain.Filter{}, domain.NewInvalidFilterError(r.Field, fmt.Sprintf("unknown operator %q", r.Operator))
	}
	v, err := coerce(field, r.Value)
	if err != nil {
		return domain.Filter{}, err
	}
	return domain.Filter{Field: field, Op: op, Value: v}, nil
}

// coerce converts a boundary string into the field's storage type.
func coerce(field domain.Field, raw string) (any, error) {
	switch field.ValueType() {
	case domain.ValueInt:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, domain.NewInvalidFilterError(string(field), fmt.Sprintf("%q is not an integer", raw))
		}
		return n, nil
	case domain.ValueDate:
		d, err := domain.ParseDate(raw)
		if err != nil {
			return nil, domain.NewInvalidFilterError(string(field), fmt.Sprintf("%q is not a YYYY-MM-DD date", raw))
		}
		return d, nil
	case domain.ValueTimeOfDay:
		t, err := domain.ParseTimeOfDay(raw)
		if err != nil {
			return nil, domain.NewInvalidFilterError(string(field), fmt.Sprintf("%q is not an HH:MM time", raw))
		}
		return t, nil
	}
	return raw, nil
}
