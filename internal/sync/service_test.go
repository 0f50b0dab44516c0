package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marcovidal/horario/internal/docstore"
	"github.com/marcovidal/horario/internal/timetable"
)

func newTestService(userID string) (*Service, docstore.Store) {
	store := docstore.NewMemory()
	return NewService(store, userID), store
}

func TestUnavailableWithoutStore(t *testing.T) {
	s := NewService(nil, "u1")
	ctx := context.Background()

	if s.Available() {
		t.Error("service without a store must not be available")
	}
	if _, err := s.LoadProfile(ctx); !errors.Is(err, ErrUnavailable) {
		t.Errorf("LoadProfile error = %v, want ErrUnavailable", err)
	}
	if err := s.SavePersonal(ctx, timetable.Blank()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("SavePersonal error = %v, want ErrUnavailable", err)
	}
}

func TestSaveAndLoadProfile(t *testing.T) {
	s, _ := newTestService("u1")
	ctx := context.Background()

	stored, err := s.SaveProfile(ctx, Profile{
		Username: " Marco.V ",
		Dept:     "aiml",
		Year:     "3",
		Sem:      "5",
		Role:     RoleTeacher,
	})
	if err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	if stored.Username != "marco.v" || stored.Dept != "AIML" {
		t.Errorf("stored profile not normalized: %+v", stored)
	}
	if stored.ClassKey() != "AIML_3_5" {
		t.Errorf("ClassKey = %q", stored.ClassKey())
	}

	loaded, err := s.LoadProfile(ctx)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if loaded == nil || *loaded != stored {
		t.Errorf("LoadProfile = %+v, want %+v", loaded, stored)
	}
}

func TestLoadProfileMissing(t *testing.T) {
	s, _ := newTestService("u1")
	p, err := s.LoadProfile(context.Background())
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if p != nil {
		t.Errorf("LoadProfile for a new user = %+v, want nil", p)
	}
}

func TestSaveProfileValidation(t *testing.T) {
	s, _ := newTestService("u1")
	ctx := context.Background()

	_, err := s.SaveProfile(ctx, Profile{Username: "ab", Dept: "A", Year: "1", Sem: "1"})
	if !errors.Is(err, ErrInvalidUsername) {
		t.Errorf("short username error = %v, want ErrInvalidUsername", err)
	}

	_, err = s.SaveProfile(ctx, Profile{Username: "marco", Dept: "", Year: "1", Sem: "1"})
	if !errors.Is(err, ErrIncompleteProfile) {
		t.Errorf("missing dept error = %v, want ErrIncompleteProfile", err)
	}

	// Unknown roles coerce to student.
	stored, err := s.SaveProfile(ctx, Profile{Username: "marco", Dept: "A", Year: "1", Sem: "1", Role: "admin"})
	if err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	if stored.Role != RoleStudent {
		t.Errorf("Role = %q, want student", stored.Role)
	}
}

func TestUsernameReservation(t *testing.T) {
	store := docstore.NewMemory()
	ctx := context.Background()
	base := Profile{Username: "marco", Dept: "A", Year: "1", Sem: "1"}

	first := NewService(store, "u1")
	if _, err := first.SaveProfile(ctx, base); err != nil {
		t.Fatalf("first claim: %v", err)
	}

	// Same owner may re-claim (profile update keeps the username).
	if _, err := first.SaveProfile(ctx, base); err != nil {
		t.Fatalf("same-owner re-claim: %v", err)
	}

	second := NewService(store, "u2")
	if _, err := second.SaveProfile(ctx, base); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("second claimant error = %v, want ErrUsernameTaken", err)
	}
}

func TestPersonalTimetableRoundTrip(t *testing.T) {
	s, _ := newTestService("u1")
	ctx := context.Background()

	g := timetable.Blank()
	if err := g.Set(0, 0, "DVAT"); err != nil {
		t.Fatal(err)
	}
	if err := s.SavePersonal(ctx, g); err != nil {
		t.Fatalf("SavePersonal: %v", err)
	}

	rows, ok, err := s.LoadPersonal(ctx)
	if err != nil || !ok {
		t.Fatalf("LoadPersonal = (%v, %v)", ok, err)
	}
	if !timetable.FromRows(rows).Equal(g) {
		t.Error("personal timetable changed through the store")
	}
}

func TestLoadPersonalMissing(t *testing.T) {
	s, _ := newTestService("u1")
	_, ok, err := s.LoadPersonal(context.Background())
	if err != nil {
		t.Fatalf("LoadPersonal: %v", err)
	}
	if ok {
		t.Error("LoadPersonal reported a timetable for a new user")
	}
}

func TestPublishClassRequiresTeacher(t *testing.T) {
	s, _ := newTestService("u1")
	ctx := context.Background()
	g := timetable.Blank()

	student := &Profile{Username: "marco", Dept: "A", Year: "1", Sem: "1", Role: RoleStudent}
	if err := s.PublishClass(ctx, g, student); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("student publish error = %v, want ErrPermissionDenied", err)
	}
	if err := s.PublishClass(ctx, g, nil); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("nil profile publish error = %v, want ErrPermissionDenied", err)
	}

	teacher := &Profile{Username: "marco", Dept: "A", Year: "1", Sem: "1", Role: RoleTeacher}
	if err := s.PublishClass(ctx, g, teacher); err != nil {
		t.Errorf("teacher publish failed: %v", err)
	}

	rows, ok, err := s.LoadClass(ctx, teacher.ClassKey())
	if err != nil || !ok {
		t.Fatalf("LoadClass = (%v, %v)", ok, err)
	}
	if !timetable.FromRows(rows).Equal(g) {
		t.Error("class timetable changed through the store")
	}
}

func TestLoadClassShapeMismatchIsNotFatal(t *testing.T) {
	s, store := newTestService("u1")
	ctx := context.Background()

	// A document without a decodable timetable shape.
	err := store.Collection("classTimetables").Set(ctx, "AIML_3_5", docstore.Doc{
		"timetableByDay": map[string]any{"d0": []any{"only one slot"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	_, ok, err := s.LoadClass(ctx, "AIML_3_5")
	if err != nil {
		t.Fatalf("LoadClass returned error for bad shape: %v", err)
	}
	if ok {
		t.Error("LoadClass adopted a shape-mismatched document")
	}
}

func TestListPublished(t *testing.T) {
	store := docstore.NewMemory()
	ctx := context.Background()

	publish := func(uid, dept, year, sem string, at time.Time) {
		svc := NewService(store, uid)
		svc.now = func() time.Time { return at }
		p := &Profile{Username: "t" + dept, Dept: dept, Year: year, Sem: sem, Role: RoleTeacher}
		if err := svc.PublishClass(ctx, timetable.Blank(), p); err != nil {
			t.Fatalf("publish %s: %v", dept, err)
		}
	}

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	publish("t1", "AIML", "3", "5", base)
	publish("t2", "CSE", "2", "3", base.Add(time.Hour))

	s := NewService(store, "u9")
	items, err := s.ListPublished(ctx)
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("ListPublished returned %d items, want 2", len(items))
	}

	SortPublished(items, "recent")
	if items[0].ID != "CSE_2_3" {
		t.Errorf("recent sort head = %s, want CSE_2_3", items[0].ID)
	}

	SortPublished(items, "dept")
	if items[0].Dept != "AIML" {
		t.Errorf("dept sort head = %s, want AIML", items[0].Dept)
	}

	filtered := FilterPublished(items, "cse")
	if len(filtered) != 1 || filtered[0].ID != "CSE_2_3" {
		t.Errorf("FilterPublished(cse) = %+v", filtered)
	}
	if got := FilterPublished(items, ""); len(got) != 2 {
		t.Errorf("empty query filtered items away: %d", len(got))
	}
}

func TestStudentsDirectory(t *testing.T) {
	store := docstore.NewMemory()
	ctx := context.Background()

	save := func(uid, username string, role Role) {
		svc := NewService(store, uid)
		_, err := svc.SaveProfile(ctx, Profile{
			Username: username, Dept: "AIML", Year: "3", Sem: "5", Role: role,
		})
		if err != nil {
			t.Fatalf("saving %s: %v", username, err)
		}
	}

	save("u1", "zara", RoleStudent)
	save("u2", "ana", RoleStudent)
	save("u3", "prof", RoleTeacher)

	other := NewService(store, "u4")
	if _, err := other.SaveProfile(ctx, Profile{
		Username: "omar", Dept: "CSE", Year: "2", Sem: "3", Role: RoleStudent,
	}); err != nil {
		t.Fatal(err)
	}

	s := NewService(store, "t0")
	students, err := s.Students(ctx, "AIML_3_5")
	if err != nil {
		t.Fatalf("Students: %v", err)
	}
	if len(students) != 2 {
		t.Fatalf("Students returned %d entries, want 2 (teacher and other class excluded)", len(students))
	}
	if students[0].Username != "ana" || students[1].Username != "zara" {
		t.Errorf("students not sorted by username: %+v", students)
	}

	filtered := FilterStudents(students, "ZA")
	if len(filtered) != 1 || filtered[0].Username != "zara" {
		t.Errorf("FilterStudents(ZA) = %+v", filtered)
	}
}
