// Package session owns the per-login view sessions and the activity collection each one holds.
package session

import (
	"strings"
	"time"

	"example.com/footprint/internal/domain"
)

// Theme is the colour scheme chosen for a session.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme validates a theme name.
func ParseTheme(raw string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(raw))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	default:
		return "", ErrInvalidTheme
	}
}

// Toggled returns the opposite theme.
func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func initialTheme(prefersDark bool) Theme {
	if prefersDark {
		return ThemeDark
	}
	return ThemeLight
}

// User is the account shown in navigation and settings.
type User struct {
	Name  string
	Email string
}

// session is the mutable state guarded by Store.mu.
type session struct {
	id           string
	user         User
	passwordHash []byte
	theme        Theme
	activities   []domain.Activity
	createdAt    time.Time
	lastSeenAt   time.Time
}

// Snapshot is a read-only copy of a session.
type Snapshot struct {
	ID         string
	User       User
	Theme      Theme
	CreatedAt  time.Time
	LastSeenAt time.Time
}

// ActivityList is the ordered collection of a session, newest first.
type ActivityList struct {
	Items       []domain.Activity
	HasActivity bool
}

func (s *session) snapshot() Snapshot {
	return Snapshot{
		ID:         s.id,
		User:       s.user,
		Theme:      s.theme,
		CreatedAt:  s.createdAt,
		LastSeenAt: s.lastSeenAt,
	}
}

func (s *session) activityList() ActivityList {
	items := make([]domain.Activity, len(s.activities))
	copy(items, s.activities)
	return ActivityList{Items: items, HasActivity: !domain.IsEmpty(s.activities)}
}

func nameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
