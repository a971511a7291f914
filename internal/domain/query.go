package domain

import (
	"context"
	"iter"
)

// Order is one sort key of a query.
type Order struct {
	Field      Field
	Descending bool
}

// Query is an executable read against the Entity Gateway. Ancestor, when set,
// restricts results to entities under that key and is applied before Filters.
type Query struct {
	Kind     Kind
	Ancestor *Key
	Filters  []Filter
	Orders   []Order
}

// Check enforces the storage contract every gateway shares: at most one field
// carries inequality filters, and that field is the leading sort key.
func (q Query) Check() error {
	var ineq Field
	for _, f := range q.Filters {
		if !f.Op.IsInequality() {
			continue
		}
		if ineq != "" && ineq != f.Field {
			return &MultipleInequalityFieldsError{First: ineq, Second: f.Field}
		}
		ineq = f.Field
	}
	if ineq == "" {
		return nil
	}
	if len(q.Orders) == 0 || q.Orders[0].Field != ineq {
		return NewInvalidFilterError(string(ineq), "the inequality filter property must be sorted first")
	}
	return nil
}

// Runner executes queries. Each range over the returned sequence issues a new
// read.
type Runner interface {
	Run(ctx context.Context, q Query) iter.Seq2[Entity, error]
}

// Indexed is implemented by entities that expose property values to queries.
// Multi-valued properties return more than one value; a missing property
// returns none.
type Indexed interface {
	Entity
	Values(f Field) []any
}

// SortValue returns the value an entity sorts by for a property. Multi-valued
// properties sort by their smallest element. ok is false when the entity has no
// value, in which case it is excluded from queries ordered by that property.
func SortValue(values []any) (v any, ok bool) {
	for _, cur := range values {
		if !ok {
			v, ok = cur, true
			continue
		}
		if cmp, comparable := CompareValues(cur, v); comparable && cmp < 0 {
			v = cur
		}
	}
	return v, ok
}

// Matches reports whether e belongs to the result set of q, ignoring order.
func (q Query) Matches(e Indexed) bool {
	k := e.EntityKey()
	if k.Kind != q.Kind {
		return false
	}
	if q.Ancestor != nil && !k.HasAncestor(*q.Ancestor) {
		return false
	}
	for _, f := range q.Filters {
		if !f.Matches(e.Values(f.Field)) {
			return false
		}
	}
	for _, o := range q.Orders {
		if _, ok := SortValue(e.Values(o.Field)); !ok {
			return false
		}
	}
	return true
}

// Less orders a before b according to q.Orders, falling back to the key path so
// the order is total.
func (q Query) Less(a, b Indexed) bool {
	for _, o := range q.Orders {
		av, _ := SortValue(a.Values(o.Field))
		bv, _ := SortValue(b.Values(o.Field))
		cmp, ok := CompareValues(av, bv)
		if !ok || cmp == 0 {
			continue
		}
		if o.Descending {
			return cmp > 0
		}
		return cmp < 0
	}
	return a.EntityKey().String() < b.EntityKey().String()
}
