package postgres

import (
	"fmt"
	"strings"
	"time"

	"conferencecentral/internal/domain"
)

var sqlOperators = map[domain.Operator]string{
	domain.OpEQ:   "=",
	domain.OpNE:   "<>",
	domain.OpGT:   ">",
	domain.OpGTEQ: ">=",
	domain.OpLT:   "<",
	domain.OpLTEQ: "<=",
}

// sqlValue converts a filter value into a driver argument.
func sqlValue(v any) any {
	switch x := v.(type) {
	case domain.TimeOfDay:
		return int64(x)
	case time.Time:
		return x.Format(domain.DateLayout)
	}
	return v
}

// buildQuery translates q into a SELECT over the kind's table. Multi-valued
// columns match when any element matches and sort by their smallest element.
// Rows without a value for an order field are excluded.
func buildQuery(q domain.Query) (string, []any, error) {
	if err := q.Check(); err != nil {
		return "", nil, err
	}
	t, err := tableFor(q.Kind)
	if err != nil {
		return "", nil, err
	}
	b := &binder{}
	var where []string

	if q.Ancestor != nil {
		clause, ok := t.ancestorWhere(b, *q.Ancestor)
		if !ok {
			return "", nil, domain.NewInvalidFilterError("", fmt.Sprintf("%s cannot be an ancestor of %s", q.Ancestor.Kind, q.Kind))
		}
		where = append(where, clause)
	}

	for _, f := range q.Filters {
		col, ok := t.fields[f.Field]
		if !ok {
			return "", nil, domain.NewInvalidFilterError(string(f.Field), fmt.Sprintf("not a %s property", q.Kind))
		}
		op := sqlOperators[f.Op]
		ph := b.bind(sqlValue(f.Value))
		switch {
		case col.array && f.Op == domain.OpEQ:
			where = append(where, fmt.Sprintf("%s = ANY(%s)", ph, col.expr))
		case col.array:
			where = append(where, fmt.Sprintf(`EXISTS (SELECT 1 FROM unnest(%s) AS e WHERE e COLLATE "C" %s %s)`, col.expr, op, ph))
		default:
			where = append(where, fmt.Sprintf("%s %s %s", col.expr, op, ph))
		}
	}

	order := make([]string, 0, len(q.Orders)+1)
	for _, o := range q.Orders {
		col, ok := t.fields[o.Field]
		if !ok {
			return "", nil, domain.NewInvalidFilterError(string(o.Field), fmt.Sprintf("cannot order %s by it", q.Kind))
		}
		expr := col.expr
		if col.array {
			expr = fmt.Sprintf(`(SELECT min(e COLLATE "C") FROM unnest(%s) AS e)`, col.expr)
		}
		where = append(where, expr+" IS NOT NULL")
		dir := "ASC"
		if o.Descending {
			dir = "DESC"
		}
		order = append(order, expr+" "+dir)
	}
	order = append(order, t.pk+" ASC")

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s", t.columns, t.name)
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	sb.WriteString(" ORDER BY ")
	sb.WriteString(strings.Join(order, ", "))
	return sb.String(), b.args, nil
}
