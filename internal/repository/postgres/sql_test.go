package postgres

import (
	"testing"
	"time"

	"conferencecentral/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery(t *testing.T) {
	ck := domain.ConferenceKey("alice", 4)
	tests := []struct {
		name     string
		q        domain.Query
		wantSQL  string
		wantArgs []any
		wantErr  error
	}{
		{
			name: "topics equality",
			q: domain.Query{
				Kind:    domain.KindConference,
				Filters: []domain.Filter{{Field: domain.FieldTopics, Op: domain.OpEQ, Value: "Go"}},
				Orders:  []domain.Order{{Field: domain.FieldName}},
			},
			wantSQL: `SELECT owner_id, id, name, description, organizer_user_id, topics, city, start_date, end_date, month, max_attendees, seats_available FROM conferences` +
				` WHERE $1 = ANY(topics) AND name COLLATE "C" IS NOT NULL ORDER BY name COLLATE "C" ASC, id ASC`,
			wantArgs: []any{"Go"},
		},
		{
			name: "topics inequality sorts by smallest element",
			q: domain.Query{
				Kind:    domain.KindConference,
				Filters: []domain.Filter{{Field: domain.FieldTopics, Op: domain.OpNE, Value: "Go"}},
				Orders:  []domain.Order{{Field: domain.FieldTopics}, {Field: domain.FieldName}},
			},
			wantSQL: `SELECT owner_id, id, name, description, organizer_user_id, topics, city, start_date, end_date, month, max_attendees, seats_available FROM conferences` +
				` WHERE EXISTS (SELECT 1 FROM unnest(topics) AS e WHERE e COLLATE "C" <> $1)` +
				` AND (SELECT min(e COLLATE "C") FROM unnest(topics) AS e) IS NOT NULL AND name COLLATE "C" IS NOT NULL` +
				` ORDER BY (SELECT min(e COLLATE "C") FROM unnest(topics) AS e) ASC, name COLLATE "C" ASC, id ASC`,
			wantArgs: []any{"Go"},
		},
		{
			name: "sessions of a conference by time",
			q: domain.Query{
				Kind:     domain.KindSession,
				Ancestor: &ck,
				Filters: []domain.Filter{
					{Field: domain.FieldDate, Op: domain.OpEQ, Value: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},
					{Field: domain.FieldStartTime, Op: domain.OpGTEQ, Value: domain.TimeOfDay(600)},
				},
				Orders: []domain.Order{{Field: domain.FieldStartTime}},
			},
			wantSQL: `SELECT conference_owner_id, conference_id, id, name, highlights, speaker, duration, type_of_session, date, start_minute, location, organizer_user_id FROM sessions` +
				` WHERE conference_owner_id = $1 AND conference_id = $2 AND date = $3 AND start_minute >= $4 AND start_minute IS NOT NULL` +
				` ORDER BY start_minute ASC, id ASC`,
			wantArgs: []any{"alice", int64(4), "2025-06-02", int64(600)},
		},
		{
			name: "field of another kind",
			q: domain.Query{
				Kind:    domain.KindSession,
				Filters: []domain.Filter{{Field: domain.FieldCity, Op: domain.OpEQ, Value: "London"}},
				Orders:  []domain.Order{{Field: domain.FieldName}},
			},
			wantErr: domain.ErrInvalidFilter,
		},
		{
			name: "two inequality fields",
			q: domain.Query{
				Kind: domain.KindConference,
				Filters: []domain.Filter{
					{Field: domain.FieldMonth, Op: domain.OpGT, Value: int64(3)},
					{Field: domain.FieldMaxAttendees, Op: domain.OpLT, Value: int64(50)},
				},
				Orders: []domain.Order{{Field: domain.FieldMonth}},
			},
			wantErr: domain.ErrMultipleInequalityFields,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, args, err := buildQuery(tt.q)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, stmt)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
