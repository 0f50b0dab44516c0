// Package sync synchronizes profiles and timetables with the remote
// document service.
package sync

import (
	"regexp"
	"strings"
)

// Role partitions what a user may do: teachers publish class timetables and
// browse the student directory, students only consume.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// Profile is the per-user record stored in the profiles collection.
type Profile struct {
	Username string
	Dept     string
	Year     string
	Sem      string
	Role     Role
}

// ClassKey derives the published-timetable partition key, DEPT_YEAR_SEM with
// each component uppercased. Returns "" while the profile is incomplete.
func (p Profile) ClassKey() string {
	dept := strings.ToUpper(strings.TrimSpace(p.Dept))
	year := strings.ToUpper(strings.TrimSpace(p.Year))
	sem := strings.ToUpper(strings.TrimSpace(p.Sem))
	if dept == "" || year == "" || sem == "" {
		return ""
	}
	return dept + "_" + year + "_" + sem
}

// ParseClassKey splits a class key back into its components. Missing
// components come back empty; every component is uppercased.
func ParseClassKey(key string) (dept, year, sem string) {
	parts := strings.Split(key, "_")
	get := func(i int) string {
		if i < len(parts) {
			return strings.ToUpper(parts[i])
		}
		return ""
	}
	return get(0), get(1), get(2)
}

var usernamePattern = regexp.MustCompile(`^[a-z0-9._]{3,20}$`)

// NormalizeUsername lowercases and trims the raw value and validates it:
// 3-20 characters of [a-z0-9._], no leading or trailing dot, no consecutive
// dots. Returns ("", false) when the value is unusable.
func NormalizeUsername(raw string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if !usernamePattern.MatchString(s) {
		return "", false
	}
	if strings.HasPrefix(s, ".") || strings.HasSuffix(s, ".") {
		return "", false
	}
	if strings.Contains(s, "..") {
		return "", false
	}
	return s, true
}
