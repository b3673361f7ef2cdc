package api

import (
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"example.com/footprint/internal/domain"
	"example.com/footprint/internal/session"
)

const emptyActivitiesMessage = "No activities recorded yet"

// LoginRequest is the payload for POST /v1/auth/login.
type LoginRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	PrefersDark bool   `json:"prefers_dark"`
}

// RegisterRequest is the payload for POST /v1/auth/register.
type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PrefersDark bool   `json:"prefers_dark"`
}

// AuthResponse carries the session token and the signed-in profile.
type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	Profile   ProfileView `json:"profile"`
}

// CreateActivityRequest is the payload for POST /v1/activities. Duration is the raw form value.
type CreateActivityRequest struct {
	Type     string `json:"type"`
	Duration string `json:"duration"`
	Unit     string `json:"unit"`
}

// Validate checks the type and unit combination. The duration is validated by the domain factory.
func (r CreateActivityRequest) Validate() error {
	activityType := domain.ActivityType(strings.TrimSpace(r.Type))
	if !activityType.Known() {
		return errUnknownType
	}
	if !activityType.AllowsUnit(domain.Unit(strings.TrimSpace(r.Unit))) {
		return errUnsupportedUnit
	}
	return nil
}

// ActivityView exposes an activity with its display fields.
type ActivityView struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Icon        string    `json:"icon"`
	Duration    float64   `json:"duration"`
	Unit        string    `json:"unit"`
	Timestamp   time.Time `json:"timestamp"`
	Label       string    `json:"label"`
	DisplayDate string    `json:"display_date"`
	DisplayTime string    `json:"display_time"`
}

// ListActivitiesResponse packages the session collection, newest first.
type ListActivitiesResponse struct {
	Items        []ActivityView `json:"items"`
	HasActivity  bool           `json:"has_activity"`
	EmptyMessage string         `json:"empty_message,omitempty"`
}

// ActivityTypeView describes one entry of the activity type catalogue.
type ActivityTypeView struct {
	Type        string   `json:"type"`
	Icon        string   `json:"icon"`
	Units       []string `json:"units"`
	DefaultUnit string   `json:"default_unit"`
}

// ProfileView is the account shown in navigation and settings.
type ProfileView struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Theme          string `json:"theme"`
	AvatarURL      string `json:"avatar_url"`
	AvatarFallback string `json:"avatar_fallback"`
}

// UpdateProfileRequest is the payload for PUT /v1/account.
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ChangePasswordRequest is the payload for PUT /v1/account/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ThemeRequest is the payload for PUT /v1/preferences/theme.
type ThemeRequest struct {
	Theme string `json:"theme"`
}

// ThemeResponse reports the session theme.
type ThemeResponse struct {
	Theme string `json:"theme"`
}

func toActivityView(a domain.Activity) ActivityView {
	return ActivityView{
		ID:          a.ID,
		Type:        string(a.Type),
		Icon:        string(a.Icon),
		Duration:    a.Duration,
		Unit:        string(a.Unit),
		Timestamp:   a.Timestamp,
		Label:       capitalize(string(a.Type)) + " Usage",
		DisplayDate: a.Timestamp.Format("Jan 2"),
		DisplayTime: a.Timestamp.Format("3:04 PM"),
	}
}

func toListResponse(list session.ActivityList) ListActivitiesResponse {
	resp := ListActivitiesResponse{
		Items:       make([]ActivityView, 0, len(list.Items)),
		HasActivity: list.HasActivity,
	}
	for _, a := range list.Items {
		resp.Items = append(resp.Items, toActivityView(a))
	}
	if !list.HasActivity {
		resp.EmptyMessage = emptyActivitiesMessage
	}
	return resp
}

func toProfileView(snap session.Snapshot) ProfileView {
	return ProfileView{
		Name:           snap.User.Name,
		Email:          snap.User.Email,
		Theme:          string(snap.Theme),
		AvatarURL:      "https://api.dicebear.com/7.x/initials/svg?seed=" + url.QueryEscape(snap.User.Name),
		AvatarFallback: initial(snap.User.Name),
	}
}

func activityCatalogue() []ActivityTypeView {
	types := domain.ActivityTypes()
	out := make([]ActivityTypeView, 0, len(types))
	for _, t := range types {
		units := domain.UnitsFor(t)
		names := make([]string, 0, len(units))
		for _, u := range units {
			names = append(names, string(u))
		}
		out = append(out, ActivityTypeView{
			Type:        string(t),
			Icon:        string(domain.IconFor(t)),
			Units:       names,
			DefaultUnit: string(domain.DefaultUnit(t)),
		})
	}
	return out
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}
