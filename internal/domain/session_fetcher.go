package domain

import (
	"context"
	"encoding/json"
	"time"
)

// SessionFetcher fetches a published schedule from Sessionize (or a test double)
// so its sessions can be imported into a conference.
type SessionFetcher interface {
	Fetch(ctx context.Context, sessionizeID string) (SessionFetcherResponse, error)
}

// SessionFetcherResponse is the Sessionize All API response shape.
type SessionFetcherResponse struct {
	Sessions   []SessionFetcherSession  `json:"sessions"`
	Speakers   []SessionFetcherSpeaker  `json:"speakers"`
	Rooms      []SessionFetcherRoom     `json:"rooms"`
	Categories []SessionFetcherCategory `json:"categories"`
}

// SessionFetcherRoom is a room in the Sessionize All response (flat list).
type SessionFetcherRoom struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Sort int    `json:"sort"`
}

// SessionFetcherSession is a session in the Sessionize All response.
type SessionFetcherSession struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	StartsAt         LocalTime `json:"startsAt"`
	EndsAt           LocalTime `json:"endsAt"`
	Speakers         []string  `json:"speakers"`
	CategoryItems    []int     `json:"categoryItems"`
	RoomID           int       `json:"roomId"`
	IsServiceSession bool      `json:"isServiceSession"`
}

// Minutes returns the session length in whole minutes.
func (s SessionFetcherSession) Minutes() int {
	return int(s.EndsAt.Sub(s.StartsAt.Time) / time.Minute)
}

// LocalTime is a Sessionize timestamp. Sessionize publishes venue-local times
// without a zone offset; those decode as UTC wall-clock values.
type LocalTime struct {
	time.Time
}

const localTimeLayout = "2006-01-02T15:04:05"

func (t *LocalTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, s); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.Parse(localTimeLayout, s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// SessionFetcherSpeaker is a speaker in the Sessionize All response.
type SessionFetcherSpeaker struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	FullName       string `json:"fullName"`
	Bio            string `json:"bio"`
	TagLine        string `json:"tagLine"`
	ProfilePicture string `json:"profilePicture"`
	IsTopSpeaker   bool   `json:"isTopSpeaker"`
}

// SessionFetcherCategoryItem is a single category item in the Sessionize All response.
type SessionFetcherCategoryItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Sort int    `json:"sort"`
}

// SessionFetcherCategory is a category group in the Sessionize All response.
type SessionFetcherCategory struct {
	ID    int                          `json:"id"`
	Title string                       `json:"title"`
	Items []SessionFetcherCategoryItem `json:"items"`
	Sort  int                          `json:"sort"`
	Type  string                       `json:"type"`
}
