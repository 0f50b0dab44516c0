package sync

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/marcovidal/horario/internal/timetable"
)

// Published is one published class timetable in the explore listing.
type Published struct {
	ID        string // the class key the document is stored under
	Dept      string
	Year      string
	Sem       string
	UpdatedAt time.Time
	UpdatedBy string
	Rows      [][]string
}

// ListPublished fetches every published class timetable. Documents whose
// timetable cannot be decoded are skipped rather than failing the listing.
func (s *Service) ListPublished(ctx context.Context) ([]Published, error) {
	if !s.Available() {
		return nil, ErrUnavailable
	}
	docs, err := s.store.Collection(colClass).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing published timetables: %w", err)
	}

	items := make([]Published, 0, len(docs))
	for id, doc := range docs {
		rows, ok := timetable.DecodePortable(map[string]any(doc))
		if !ok {
			continue
		}
		dept, year, sem := ParseClassKey(id)
		item := Published{
			ID:   id,
			Dept: dept,
			Year: year,
			Sem:  sem,
			Rows: rows,
		}
		if raw, _ := doc["updatedAt"].(string); raw != "" {
			if ts, err := time.Parse(time.RFC3339, raw); err == nil {
				item.UpdatedAt = ts
			}
		}
		item.UpdatedBy, _ = doc["updatedBy"].(string)
		items = append(items, item)
	}
	return items, nil
}

// FilterPublished keeps the items whose dept/year/sem/id match the query,
// case-insensitively. An empty query keeps everything.
func FilterPublished(items []Published, query string) []Published {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	out := make([]Published, 0, len(items))
	for _, it := range items {
		hay := strings.ToLower(it.Dept + " " + it.Year + " " + it.Sem + " " + it.ID)
		if strings.Contains(hay, q) {
			out = append(out, it)
		}
	}
	return out
}

// SortPublished orders the listing in place. Modes: "dept", "year", "sem",
// anything else sorts most-recently-updated first. Ties break on the id so
// the order is stable across refreshes.
func SortPublished(items []Published, mode string) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch mode {
		case "dept":
			if a.Dept != b.Dept {
				return a.Dept < b.Dept
			}
		case "year":
			if a.Year != b.Year {
				return a.Year < b.Year
			}
		case "sem":
			if a.Sem != b.Sem {
				return a.Sem < b.Sem
			}
		default:
			if !a.UpdatedAt.Equal(b.UpdatedAt) {
				return a.UpdatedAt.After(b.UpdatedAt)
			}
		}
		return a.ID < b.ID
	})
}

// Student is one entry in the per-class directory.
type Student struct {
	ID       string
	Username string
}

// Students returns every student profile in the given class. The teacher
// gate lives at the call site (PermissionDenied before any call); the
// listing itself just filters the profiles collection.
func (s *Service) Students(ctx context.Context, classKey string) ([]Student, error) {
	if !s.Available() {
		return nil, ErrUnavailable
	}
	docs, err := s.store.Collection(colProfiles).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing students: %w", err)
	}

	var out []Student
	for id, doc := range docs {
		key, _ := doc["classKey"].(string)
		role, _ := doc["role"].(string)
		if key != classKey || role != string(RoleStudent) {
			continue
		}
		username, _ := doc["username"].(string)
		out = append(out, Student{ID: id, Username: username})
	}
	SortStudents(out)
	return out, nil
}

// FilterStudents keeps students whose username matches the query.
func FilterStudents(items []Student, query string) []Student {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	out := make([]Student, 0, len(items))
	for _, st := range items {
		if strings.Contains(strings.ToLower(st.Username), q) {
			out = append(out, st)
		}
	}
	return out
}

// SortStudents orders by username, then id for stability.
func SortStudents(items []Student) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Username != items[j].Username {
			return items[i].Username < items[j].Username
		}
		return items[i].ID < items[j].ID
	})
}
