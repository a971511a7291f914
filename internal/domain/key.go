package domain

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Kind names an entity type in the Entity Gateway.
type Kind string

const (
	KindProfile    Kind = "Profile"
	KindConference Kind = "Conference"
	KindSession    Kind = "Session"
	KindSpeaker    Kind = "Speaker"
)

func (k Kind) valid() bool {
	switch k {
	case KindProfile, KindConference, KindSession, KindSpeaker:
		return true
	}
	return false
}

// Key identifies an entity. Exactly one of Name or ID is set. Parent scopes the
// key to an ancestor (a Conference belongs to its organizer's Profile, a Session
// to its Conference).
type Key struct {
	Kind   Kind
	Name   string
	ID     int64
	Parent *Key
}

// NewNameKey returns a key with a string identifier.
func NewNameKey(kind Kind, name string, parent *Key) Key {
	return Key{Kind: kind, Name: name, Parent: parent}
}

// NewIDKey returns a key with a numeric identifier.
func NewIDKey(kind Kind, id int64, parent *Key) Key {
	return Key{Kind: kind, ID: id, Parent: parent}
}

// ProfileKey returns the key of the profile owned by userID.
func ProfileKey(userID string) Key {
	return NewNameKey(KindProfile, userID, nil)
}

// SpeakerKey returns the key of the speaker with the given name.
func SpeakerKey(name string) Key {
	return NewNameKey(KindSpeaker, name, nil)
}

// ConferenceKey returns the key of conference id owned by ownerID.
func ConferenceKey(ownerID string, id int64) Key {
	p := ProfileKey(ownerID)
	return NewIDKey(KindConference, id, &p)
}

// SessionKey returns the key of session id inside conference.
func SessionKey(conference Key, id int64) Key {
	c := conference
	return NewIDKey(KindSession, id, &c)
}

// IsZero reports whether k is the zero key.
func (k Key) IsZero() bool {
	return k.Kind == "" && k.Name == "" && k.ID == 0 && k.Parent == nil
}

// Root returns the top-most ancestor of k (k itself when it has no parent).
func (k Key) Root() Key {
	for k.Parent != nil {
		k = *k.Parent
	}
	return k
}

// HasAncestor reports whether anc is k itself or one of its ancestors.
func (k Key) HasAncestor(anc Key) bool {
	target := anc.String()
	for cur := &k; cur != nil; cur = cur.Parent {
		if cur.String() == target {
			return true
		}
	}
	return false
}

// Equal compares two keys by path.
func (k Key) Equal(o Key) bool {
	return k.String() == o.String()
}

// String returns the readable path form, e.g. "Profile,n:alice/Conference,i:7".
// Names are path-escaped so a name containing "/" or "," stays one segment.
func (k Key) String() string {
	var segs []string
	for cur := &k; cur != nil; cur = cur.Parent {
		segs = append(segs, cur.segment())
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return strings.Join(segs, "/")
}

func (k Key) segment() string {
	if k.Name != "" {
		return string(k.Kind) + ",n:" + url.PathEscape(k.Name)
	}
	return string(k.Kind) + ",i:" + strconv.FormatInt(k.ID, 10)
}

// Encode returns the websafe form of the key used at the API boundary and in
// profile key lists.
func (k Key) Encode() string {
	return base64.RawURLEncoding.EncodeToString([]byte(k.String()))
}

// DecodeKey parses a websafe key produced by Encode.
func DecodeKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Key{}, NewInvalidInputError("key", "empty key")
	}
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Key{}, NewInvalidInputError("key", "malformed key")
	}
	var parent *Key
	var k Key
	for _, seg := range strings.Split(string(raw), "/") {
		k, err = parseSegment(seg)
		if err != nil {
			return Key{}, err
		}
		k.Parent = parent
		cp := k
		parent = &cp
	}
	return k, nil
}

func parseSegment(seg string) (Key, error) {
	kind, id, ok := strings.Cut(seg, ",")
	if !ok || !Kind(kind).valid() || len(id) < 3 {
		return Key{}, NewInvalidInputError("key", "malformed key")
	}
	switch id[:2] {
	case "n:":
		name, err := url.PathUnescape(id[2:])
		if err != nil {
			return Key{}, NewInvalidInputError("key", "malformed key")
		}
		return Key{Kind: Kind(kind), Name: name}, nil
	case "i:":
		n, err := strconv.ParseInt(id[2:], 10, 64)
		if err != nil || n <= 0 {
			return Key{}, NewInvalidInputError("key", "malformed key")
		}
		return Key{Kind: Kind(kind), ID: n}, nil
	}
	return Key{}, NewInvalidInputError("key", "malformed key")
}

// DecodeKeyOfKind decodes s and checks that it names an entity of kind.
func DecodeKeyOfKind(s string, kind Kind) (Key, error) {
	k, err := DecodeKey(s)
	if err != nil {
		return Key{}, err
	}
	if k.Kind != kind || !k.WellFormed() {
		return Key{}, NewInvalidInputError("key", fmt.Sprintf("expected a %s key", kind))
	}
	return k, nil
}

// WellFormed checks the ancestor shape each kind is stored under.
func (k Key) WellFormed() bool {
	switch k.Kind {
	case KindProfile, KindSpeaker:
		return k.Parent == nil && k.Name != ""
	case KindConference:
		return k.ID > 0 && k.Parent != nil && k.Parent.Kind == KindProfile && k.Parent.WellFormed()
	case KindSession:
		return k.ID > 0 && k.Parent != nil && k.Parent.Kind == KindConference && k.Parent.WellFormed()
	}
	return false
}
