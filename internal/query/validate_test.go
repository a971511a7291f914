package query

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"conferencecentral/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		raw      []domain.RawFilter
		wantErr  error
		wantIneq domain.Field
		assert   func(t *testing.T, spec domain.FilterSpec)
	}{
		{
			name:     "empty",
			raw:      nil,
			wantIneq: "",
			assert: func(t *testing.T, spec domain.FilterSpec) {
				assert.Empty(t, spec.Filters)
			},
		},
		{
			name: "city equality and month inequality",
			raw: []domain.RawFilter{
				{Field: "city", Operator: "=", Value: "London"},
				{Field: "month", Operator: ">", Value: "3"},
			},
			wantIneq: domain.FieldMonth,
			assert: func(t *testing.T, spec domain.FilterSpec) {
				require.Len(t, spec.Filters, 2)
				assert.Equal(t, domain.Filter{Field: domain.FieldCity, Op: domain.OpEQ, Value: "London"}, spec.Filters[0])
				assert.Equal(t, domain.Filter{Field: domain.FieldMonth, Op: domain.OpGT, Value: int64(3)}, spec.Filters[1])
			},
		},
		{
			name: "second inequality field",
			raw: []domain.RawFilter{
				{Field: "city", Operator: "=", Value: "London"},
				{Field: "month", Operator: ">", Value: "3"},
				{Field: "maxAttendees", Operator: "<", Value: "50"},
			},
			wantErr: domain.ErrMultipleInequalityFields,
		},
		{
			name: "upper-case tokens",
			raw: []domain.RawFilter{
				{Field: "CITY", Operator: "EQ", Value: "Paris"},
				{Field: "MAX_ATTENDEES", Operator: "GTEQ", Value: "10"},
				{Field: "TOPIC", Operator: "EQ", Value: "Go"},
			},
			wantIneq: domain.FieldMaxAttendees,
			assert: func(t *testing.T, spec domain.FilterSpec) {
				assert.Equal(t, domain.FieldTopics, spec.Filters[2].Field)
				assert.Equal(t, int64(10), spec.Filters[1].Value)
			},
		},
		{
			name: "several inequalities on the same field",
			raw: []domain.RawFilter{
				{Field: "month", Operator: ">=", Value: "3"},
				{Field: "month", Operator: "<=", Value: "6"},
				{Field: "city", Operator: "=", Value: "London"},
			},
			wantIneq: domain.FieldMonth,
		},
		{
			name: "date is coerced",
			raw: []domain.RawFilter{
				{Field: "date", Operator: "=", Value: "2024-05-01T10:00:00"},
			},
			assert: func(t *testing.T, spec domain.FilterSpec) {
				assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), spec.Filters[0].Value)
			},
		},
		{
			name:    "unknown field",
			raw:     []domain.RawFilter{{Field: "seatsAvailable", Operator: "=", Value: "1"}},
			wantErr: domain.ErrInvalidFilter,
		},
		{
			name:    "unknown operator",
			raw:     []domain.RawFilter{{Field: "city", Operator: "LIKE", Value: "Lon"}},
			wantErr: domain.ErrInvalidFilter,
		},
		{
			name:    "month not an integer",
			raw:     []domain.RawFilter{{Field: "month", Operator: "=", Value: "june"}},
			wantErr: domain.ErrInvalidFilter,
		},
		{
			name:    "bad date",
			raw:     []domain.RawFilter{{Field: "date", Operator: ">", Value: "May 1"}},
			wantErr: domain.ErrInvalidFilter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Validate(tt.raw)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantIneq, spec.InequalityField)
			if tt.assert != nil {
				tt.assert(t, spec)
			}
		})
	}
}

func TestValidate_MultipleInequalityIsInvalidFilter(t *testing.T) {
	_, err := Validate([]domain.RawFilter{
		{Field: "month", Operator: "!=", Value: "1"},
		{Field: "city", Operator: ">", Value: "A"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)

	var mi *domain.MultipleInequalityFieldsError
	require.ErrorAs(t, err, &mi)
	assert.Equal(t, domain.FieldMonth, mi.First)
	assert.Equal(t, domain.FieldCity, mi.Second)
}

// Every pair of distinct fields with non-equality operators is rejected,
// whatever equality filters surround them.
func TestValidate_AnyTwoInequalityFieldsFail(t *testing.T) {
	fields := map[string]string{
		"city":          "London",
		"topics":        "Go",
		"month":         "4",
		"maxAttendees":  "20",
		"typeOfSession": "talk",
		"location":      "Room A",
		"date":          "2024-05-01",
	}
	ops := []string{">", ">=", "<", "<=", "!="}

	for f1, v1 := range fields {
		for f2, v2 := range fields {
			if f1 == f2 {
				continue
			}
			for i, op := range ops {
				op2 := ops[(i+1)%len(ops)]
				raw := []domain.RawFilter{
					{Field: "city", Operator: "=", Value: "London"},
					{Field: f1, Operator: op, Value: v1},
					{Field: "month", Operator: "=", Value: "4"},
					{Field: f2, Operator: op2, Value: v2},
				}
				t.Run(fmt.Sprintf("%s %s then %s %s", f1, op, f2, op2), func(t *testing.T) {
					_, err := Validate(raw)
					assert.ErrorIs(t, err, domain.ErrMultipleInequalityFields)
				})
			}
		}
	}
}

func TestValidate_EqualityAlwaysPermitted(t *testing.T) {
	raw := []domain.RawFilter{
		{Field: "month", Operator: "<", Value: "9"},
		{Field: "city", Operator: "=", Value: "London"},
		{Field: "topics", Operator: "=", Value: "Go"},
		{Field: "maxAttendees", Operator: "=", Value: "100"},
		{Field: "month", Operator: ">", Value: "2"},
	}
	spec, err := Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, domain.FieldMonth, spec.InequalityField)
	assert.Len(t, spec.Filters, 5)
}
