package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// binder collects positional arguments while a statement is assembled.
type binder struct {
	args []any
}

func (b *binder) bind(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

// column maps a queryable property to its SQL expression. Array columns hold
// multi-valued properties.
type column struct {
	expr  string
	array bool
}

// table maps one entity kind onto its relational table.
type table struct {
	name    string
	pk      string
	columns string
	fields  map[domain.Field]column
	// keyWhere returns the predicate selecting the row of k.
	keyWhere func(b *binder, k domain.Key) string
	// ancestorWhere returns the containment predicate for anc, or false when
	// entities of this kind cannot live under anc.
	ancestorWhere func(b *binder, anc domain.Key) (string, bool)
	scan          func(sc scanner) (domain.Entity, error)
	upsert        func(ctx context.Context, q querier, e domain.Entity) error
}

var tables = map[domain.Kind]*table{
	domain.KindProfile:    profileTable,
	domain.KindConference: conferenceTable,
	domain.KindSession:    sessionTable,
	domain.KindSpeaker:    speakerTable,
}

func tableFor(kind domain.Kind) (*table, error) {
	t, ok := tables[kind]
	if !ok {
		return nil, fmt.Errorf("no table for kind %q", kind)
	}
	return t, nil
}

func nullDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func datePtr(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	d := time.Date(n.Time.Year(), n.Time.Month(), n.Time.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

var profileTable = &table{
	name:    "profiles",
	pk:      "user_id",
	columns: "user_id, display_name, main_email, tee_shirt_size, conference_keys_to_attend, session_wishlist",
	keyWhere: func(b *binder, k domain.Key) string {
		return "user_id = " + b.bind(k.Name)
	},
	ancestorWhere: func(b *binder, anc domain.Key) (string, bool) {
		if anc.Kind != domain.KindProfile {
			return "", false
		}
		return "user_id = " + b.bind(anc.Name), true
	},
	scan: func(sc scanner) (domain.Entity, error) {
		p := &domain.Profile{}
		var userID, size string
		var attend, wishlist pq.StringArray
		if err := sc.Scan(&userID, &p.DisplayName, &p.MainEmail, &size, &attend, &wishlist); err != nil {
			return nil, err
		}
		p.Key = domain.ProfileKey(userID)
		p.TeeShirtSize = domain.TeeShirtSize(size)
		p.ConferenceKeysToAttend = []string(attend)
		p.SessionWishlist = []string(wishlist)
		if p.ConferenceKeysToAttend == nil {
			p.ConferenceKeysToAttend = []string{}
		}
		if p.SessionWishlist == nil {
			p.SessionWishlist = []string{}
		}
		return p, nil
	},
	upsert: func(ctx context.Context, q querier, e domain.Entity) error {
		p := e.(*domain.Profile)
		_, err := q.ExecContext(ctx, `
		INSERT INTO profiles (user_id, display_name, main_email, tee_shirt_size, conference_keys_to_attend, session_wishlist)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			main_email = EXCLUDED.main_email,
			tee_shirt_size = EXCLUDED.tee_shirt_size,
			conference_keys_to_attend = EXCLUDED.conference_keys_to_attend,
			session_wishlist = EXCLUDED.session_wishlist
	`, p.Key.Name, p.DisplayName, p.MainEmail, string(p.TeeShirtSize),
			pq.Array(nonNil(p.ConferenceKeysToAttend)), pq.Array(nonNil(p.SessionWishlist)))
		return err
	},
}

var conferenceTable = &table{
	name:    "conferences",
	pk:      "id",
	columns: "owner_id, id, name, description, organizer_user_id, topics, city, start_date, end_date, month, max_attendees, seats_available",
	fields: map[domain.Field]column{
		domain.FieldName:           {expr: `name COLLATE "C"`},
		domain.FieldCity:           {expr: `city COLLATE "C"`},
		domain.FieldTopics:         {expr: "topics", array: true},
		domain.FieldMonth:          {expr: "month"},
		domain.FieldMaxAttendees:   {expr: "max_attendees"},
		domain.FieldSeatsAvailable: {expr: "seats_available"},
	},
	keyWhere: func(b *binder, k domain.Key) string {
		return fmt.Sprintf("owner_id = %s AND id = %s", b.bind(k.Parent.Name), b.bind(k.ID))
	},
	ancestorWhere: func(b *binder, anc domain.Key) (string, bool) {
		switch anc.Kind {
		case domain.KindProfile:
			return "owner_id = " + b.bind(anc.Name), true
		case domain.KindConference:
			return fmt.Sprintf("owner_id = %s AND id = %s", b.bind(anc.Parent.Name), b.bind(anc.ID)), true
		}
		return "", false
	},
	scan: func(sc scanner) (domain.Entity, error) {
		c := &domain.Conference{}
		var ownerID string
		var id int64
		var topics pq.StringArray
		var start, end sql.NullTime
		if err := sc.Scan(&ownerID, &id, &c.Name, &c.Description, &c.OrganizerUserID, &topics, &c.City,
			&start, &end, &c.Month, &c.MaxAttendees, &c.SeatsAvailable); err != nil {
			return nil, err
		}
		c.Key = domain.ConferenceKey(ownerID, id)
		c.Topics = []string(topics)
		c.StartDate = datePtr(start)
		c.EndDate = datePtr(end)
		return c, nil
	},
	upsert: func(ctx context.Context, q querier, e domain.Entity) error {
		c := e.(*domain.Conference)
		_, err := q.ExecContext(ctx, `
		INSERT INTO conferences (owner_id, id, name, description, organizer_user_id, topics, city, start_date, end_date, month, max_attendees, seats_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			topics = EXCLUDED.topics,
			city = EXCLUDED.city,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			month = EXCLUDED.month,
			max_attendees = EXCLUDED.max_attendees,
			seats_available = EXCLUDED.seats_available
	`, c.Key.Parent.Name, c.Key.ID, c.Name, c.Description, c.OrganizerUserID, pq.Array(nonNil(c.Topics)), c.City,
			nullDate(c.StartDate), nullDate(c.EndDate), c.Month, c.MaxAttendees, c.SeatsAvailable)
		return err
	},
}

var sessionTable = &table{
	name:    "sessions",
	pk:      "id",
	columns: "conference_owner_id, conference_id, id, name, highlights, speaker, duration, type_of_session, date, start_minute, location, organizer_user_id",
	fields: map[domain.Field]column{
		domain.FieldName:          {expr: `name COLLATE "C"`},
		domain.FieldTypeOfSession: {expr: `type_of_session COLLATE "C"`},
		domain.FieldLocation:      {expr: `location COLLATE "C"`},
		domain.FieldSpeaker:       {expr: `speaker COLLATE "C"`},
		domain.FieldDate:          {expr: "date"},
		domain.FieldStartTime:     {expr: "start_minute"},
	},
	keyWhere: func(b *binder, k domain.Key) string {
		conf := k.Parent
		return fmt.Sprintf("conference_owner_id = %s AND conference_id = %s AND id = %s",
			b.bind(conf.Parent.Name), b.bind(conf.ID), b.bind(k.ID))
	},
	ancestorWhere: func(b *binder, anc domain.Key) (string, bool) {
		switch anc.Kind {
		case domain.KindProfile:
			return "conference_owner_id = " + b.bind(anc.Name), true
		case domain.KindConference:
			return fmt.Sprintf("conference_owner_id = %s AND conference_id = %s", b.bind(anc.Parent.Name), b.bind(anc.ID)), true
		case domain.KindSession:
			conf := anc.Parent
			return fmt.Sprintf("conference_owner_id = %s AND conference_id = %s AND id = %s",
				b.bind(conf.Parent.Name), b.bind(conf.ID), b.bind(anc.ID)), true
		}
		return "", false
	},
	scan: func(sc scanner) (domain.Entity, error) {
		s := &domain.Session{}
		var ownerID string
		var confID, id int64
		var date sql.NullTime
		var start sql.NullInt64
		if err := sc.Scan(&ownerID, &confID, &id, &s.Name, &s.Highlights, &s.Speaker, &s.Duration,
			&s.TypeOfSession, &date, &start, &s.Location, &s.OrganizerUserID); err != nil {
			return nil, err
		}
		s.Key = domain.SessionKey(domain.ConferenceKey(ownerID, confID), id)
		s.Date = datePtr(date)
		if start.Valid {
			s.StartTime = domain.Ptr(domain.TimeOfDay(start.Int64))
		}
		return s, nil
	},
	upsert: func(ctx context.Context, q querier, e domain.Entity) error {
		s := e.(*domain.Session)
		var start any
		if s.StartTime != nil {
			start = int64(*s.StartTime)
		}
		conf := s.Key.Parent
		_, err := q.ExecContext(ctx, `
		INSERT INTO sessions (conference_owner_id, conference_id, id, name, highlights, speaker, duration, type_of_session, date, start_minute, location, organizer_user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			highlights = EXCLUDED.highlights,
			speaker = EXCLUDED.speaker,
			duration = EXCLUDED.duration,
			type_of_session = EXCLUDED.type_of_session,
			date = EXCLUDED.date,
			start_minute = EXCLUDED.start_minute,
			location = EXCLUDED.location
	`, conf.Parent.Name, conf.ID, s.Key.ID, s.Name, s.Highlights, s.Speaker, s.Duration, s.TypeOfSession,
			nullDate(s.Date), start, s.Location, s.OrganizerUserID)
		return err
	},
}

var speakerTable = &table{
	name:    "speakers",
	pk:      "name",
	columns: "name",
	keyWhere: func(b *binder, k domain.Key) string {
		return "name = " + b.bind(k.Name)
	},
	ancestorWhere: func(b *binder, anc domain.Key) (string, bool) {
		if anc.Kind != domain.KindSpeaker {
			return "", false
		}
		return "name = " + b.bind(anc.Name), true
	},
	scan: func(sc scanner) (domain.Entity, error) {
		var name string
		if err := sc.Scan(&name); err != nil {
			return nil, err
		}
		return &domain.Speaker{Key: domain.SpeakerKey(name), Name: name}, nil
	},
	upsert: func(ctx context.Context, q querier, e domain.Entity) error {
		_, err := q.ExecContext(ctx, `INSERT INTO speakers (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, e.EntityKey().Name)
		return err
	},
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// selectByKey builds the single-row read for k.
func selectByKey(t *table, k domain.Key) (string, []any) {
	b := &binder{}
	where := t.keyWhere(b, k)
	return fmt.Sprintf("SELECT %s FROM %s WHERE %s", t.columns, t.name, where), b.args
}
