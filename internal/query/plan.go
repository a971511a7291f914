package query

import (
	"context"
	"fmt"
	"iter"

	"conferencecentral/internal/domain"
)

// Collection is the base set a query reads from: every entity of Kind, narrowed
// to the descendants of Ancestor when it is set.
type Collection struct {
	Kind     domain.Kind
	Ancestor *domain.Key
}

// Conferences returns the collection of all conferences.
func Conferences() Collection {
	return Collection{Kind: domain.KindConference}
}

// ConferencesOf returns the conferences owned by the given profile.
func ConferencesOf(profile domain.Key) Collection {
	return Collection{Kind: domain.KindConference, Ancestor: &profile}
}

// Sessions returns the collection of all sessions.
func Sessions() Collection {
	return Collection{Kind: domain.KindSession}
}

// SessionsOf returns the sessions of one conference.
func SessionsOf(conference domain.Key) Collection {
	return Collection{Kind: domain.KindSession, Ancestor: &conference}
}

func fieldsOf(kind domain.Kind) map[domain.Field]bool {
	switch kind {
	case domain.KindConference:
		return domain.ConferenceFields
	case domain.KindSession:
		return domain.SessionFields
	}
	return nil
}

// Plan turns a validated FilterSpec into a gateway query. With an inequality
// field F the result is ordered by F ascending and then by defaultOrder; without
// one it is ordered by defaultOrder alone. Every filter field must be a property
// of the collection's kind.
func Plan(c Collection, spec domain.FilterSpec, defaultOrder domain.Field) (domain.Query, error) {
	fields := fieldsOf(c.Kind)
	if fields == nil {
		return domain.Query{}, fmt.Errorf("plan: %s is not queryable", c.Kind)
	}
	for _, f := range spec.Filters {
		if !fields[f.Field] {
			return domain.Query{}, domain.NewInvalidFilterError(string(f.Field), fmt.Sprintf("not a %s property", c.Kind))
		}
	}
	if !fields[defaultOrder] {
		return domain.Query{}, fmt.Errorf("plan: cannot order %s by %s", c.Kind, defaultOrder)
	}

	orders := make([]domain.Order, 0, 2)
	if spec.HasInequality() {
		orders = append(orders, domain.Order{Field: spec.InequalityField})
	}
	if !spec.HasInequality() || spec.InequalityField != defaultOrder {
		orders = append(orders, domain.Order{Field: defaultOrder})
	}

	q := domain.Query{
		Kind:     c.Kind,
		Ancestor: c.Ancestor,
		Filters:  spec.Filters,
		Orders:   orders,
	}
	if err := q.Check(); err != nil {
		return domain.Query{}, err
	}
	return q, nil
}

// Execute runs q lazily and yields entities typed as T. Ranging over the
// returned sequence again re-issues the read.
func Execute[T domain.Entity](ctx context.Context, r domain.Runner, q domain.Query) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		for e, err := range r.Run(ctx, q) {
			if err != nil {
				yield(zero, err)
				return
			}
			t, ok := e.(T)
			if !ok {
				yield(zero, fmt.Errorf("query %s yielded %T", q.Kind, e))
				return
			}
			if !yield(t, nil) {
				return
			}
		}
	}
}

// Collect drains seq into a slice, skipping page.Offset() entries and stopping
// after page.PageSize entries. A zero PageSize collects everything.
func Collect[T any](seq iter.Seq2[T, error], page domain.PaginationParams) ([]T, error) {
	out := []T{}
	skip := page.Offset()
	for t, err := range seq {
		if err != nil {
			return nil, err
		}
		if skip > 0 {
			skip--
			continue
		}
		out = append(out, t)
		if page.PageSize > 0 && len(out) == page.PageSize {
			break
		}
	}
	return out, nil
}

// Find validates raw filters, plans them against c and returns the lazy result.
// Validation and planning failures are returned before any read is issued.
func Find[T domain.Entity](ctx context.Context, r domain.Runner, c Collection, raw []domain.RawFilter, defaultOrder domain.Field) (iter.Seq2[T, error], error) {
	spec, err := Validate(raw)
	if err != nil {
		return nil, err
	}
	q, err := Plan(c, spec, defaultOrder)
	if err != nil {
		return nil, err
	}
	return Execute[T](ctx, r, q), nil
}

// Spec builds a FilterSpec from already-typed filters, applying the same single
// inequality field rule as Validate. Services use it for queries over fields
// that are not exposed at the boundary.
func Spec(filters ...domain.Filter) (domain.FilterSpec, error) {
	spec := domain.FilterSpec{Filters: filters}
	for _, f := range filters {
		if !f.Op.IsInequality() {
			continue
		}
		if spec.InequalityField != "" && spec.InequalityField != f.Field {
			return domain.FilterSpec{}, &domain.MultipleInequalityFieldsError{First: spec.InequalityField, Second: f.Field}
		}
		spec.InequalityField = f.Field
	}
	return spec, nil
}
