package sync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/marcovidal/horario/internal/docstore"
	"github.com/marcovidal/horario/internal/timetable"
)

// Error taxonomy. These surface as transient hints in the UI; none of them
// corrupt local state.
var (
	ErrUnavailable       = errors.New("sync: no document store configured")
	ErrInvalidUsername   = errors.New("sync: username must be 3-20 letters, digits, dots or underscores")
	ErrIncompleteProfile = errors.New("sync: profile needs dept, year and sem")
	ErrUsernameTaken     = errors.New("sync: username already taken")
	ErrPermissionDenied  = errors.New("sync: only teachers can do that")
)

// Collection names in the document store.
const (
	colProfiles  = "profiles"
	colUsernames = "usernames"
	colClass     = "classTimetables"
	colPersonal  = "personalTimetables"
)

// Service runs every remote operation. The local grid stays authoritative:
// the only thing a successful remote read does is hand rows back for the
// caller to adopt. Concurrent writers race: last write observed wins.
type Service struct {
	store  docstore.Store
	userID string
	now    func() time.Time
}

// NewService builds a service for the given user identity. A nil store
// means remote sync is unavailable: every operation returns ErrUnavailable.
func NewService(store docstore.Store, userID string) *Service {
	return &Service{store: store, userID: userID, now: time.Now}
}

// Available reports whether a document store is configured.
func (s *Service) Available() bool {
	return s != nil && s.store != nil && s.userID != ""
}

// UserID returns the local user identity documents are keyed by.
func (s *Service) UserID() string { return s.userID }

// LoadProfile fetches this user's profile, or (nil, nil) when none exists.
func (s *Service) LoadProfile(ctx context.Context) (*Profile, error) {
	if !s.Available() {
		return nil, ErrUnavailable
	}
	doc, ok, err := s.store.Collection(colProfiles).Get(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	if !ok {
		return nil, nil
	}
	p := profileFromDoc(doc)
	return &p, nil
}

// SaveProfile validates, reserves the username atomically and writes the
// profile document. Returns the stored (normalized) profile.
func (s *Service) SaveProfile(ctx context.Context, p Profile) (Profile, error) {
	if !s.Available() {
		return Profile{}, ErrUnavailable
	}

	username, ok := NormalizeUsername(p.Username)
	if !ok {
		return Profile{}, ErrInvalidUsername
	}
	stored := Profile{
		Username: username,
		Dept:     canon(p.Dept),
		Year:     canon(p.Year),
		Sem:      canon(p.Sem),
		Role:     RoleStudent,
	}
	if p.Role == RoleTeacher {
		stored.Role = RoleTeacher
	}
	if stored.ClassKey() == "" {
		return Profile{}, ErrIncompleteProfile
	}

	if err := s.reserveUsername(ctx, username); err != nil {
		return Profile{}, err
	}

	err := s.store.Collection(colProfiles).Set(ctx, s.userID, docstore.Doc{
		"username":  stored.Username,
		"dept":      stored.Dept,
		"year":      stored.Year,
		"sem":       stored.Sem,
		"classKey":  stored.ClassKey(),
		"role":      string(stored.Role),
		"updatedAt": s.timestamp(),
	})
	if err != nil {
		return Profile{}, fmt.Errorf("saving profile: %w", err)
	}
	return stored, nil
}

// reserveUsername claims the username record: first claim wins, a re-claim
// by the same owner is allowed. The read-check-write runs as one indivisible
// store update.
func (s *Service) reserveUsername(ctx context.Context, username string) error {
	return s.store.Collection(colUsernames).Update(ctx, username,
		func(current docstore.Doc, exists bool) (docstore.Doc, error) {
			if exists {
				if owner, _ := current["uid"].(string); owner != "" && owner != s.userID {
					return nil, ErrUsernameTaken
				}
			}
			return docstore.Doc{"uid": s.userID, "updatedAt": s.timestamp()}, nil
		})
}

// SavePersonal stores the grid as this user's personal timetable.
func (s *Service) SavePersonal(ctx context.Context, g *timetable.Grid) error {
	if !s.Available() {
		return ErrUnavailable
	}
	err := s.store.Collection(colPersonal).Set(ctx, s.userID, docstore.Doc{
		"timetableByDay": timetable.EncodePortable(g),
		"updatedAt":      s.timestamp(),
	})
	if err != nil {
		return fmt.Errorf("saving personal timetable: %w", err)
	}
	return nil
}

// LoadPersonal fetches and decodes this user's personal timetable. ok is
// false when no document exists or its shape cannot be decoded.
func (s *Service) LoadPersonal(ctx context.Context) ([][]string, bool, error) {
	if !s.Available() {
		return nil, false, ErrUnavailable
	}
	return s.loadRows(ctx, colPersonal, s.userID)
}

// PublishClass stores the grid as the published timetable for the profile's
// class. Teacher-only; checked here before anything is sent.
func (s *Service) PublishClass(ctx context.Context, g *timetable.Grid, p *Profile) error {
	if !s.Available() {
		return ErrUnavailable
	}
	if p == nil || p.Role != RoleTeacher {
		return ErrPermissionDenied
	}
	key := p.ClassKey()
	if key == "" {
		return ErrIncompleteProfile
	}
	err := s.store.Collection(colClass).Set(ctx, key, docstore.Doc{
		"timetableByDay": timetable.EncodePortable(g),
		"updatedAt":      s.timestamp(),
		"updatedBy":      s.userID,
	})
	if err != nil {
		return fmt.Errorf("publishing class timetable: %w", err)
	}
	return nil
}

// LoadClass fetches and decodes the published timetable for a class key.
func (s *Service) LoadClass(ctx context.Context, classKey string) ([][]string, bool, error) {
	if !s.Available() {
		return nil, false, ErrUnavailable
	}
	return s.loadRows(ctx, colClass, classKey)
}

func (s *Service) loadRows(ctx context.Context, collection, id string) ([][]string, bool, error) {
	doc, ok, err := s.store.Collection(collection).Get(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("loading %s/%s: %w", collection, id, err)
	}
	if !ok {
		return nil, false, nil
	}
	rows, ok := timetable.DecodePortable(map[string]any(doc))
	if !ok {
		// Shape mismatch is never fatal; the caller keeps its current grid.
		return nil, false, nil
	}
	return rows, true, nil
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

func canon(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

func profileFromDoc(doc docstore.Doc) Profile {
	get := func(key string) string {
		v, _ := doc[key].(string)
		return v
	}
	role := RoleStudent
	if get("role") == string(RoleTeacher) {
		role = RoleTeacher
	}
	return Profile{
		Username: get("username"),
		Dept:     get("dept"),
		Year:     get("year"),
		Sem:      get("sem"),
		Role:     role,
	}
}
