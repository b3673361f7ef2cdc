package auth

// Scopes granted to every session token.
const (
	ScopeActivitiesWrite = "activities:write"
	ScopeActivitiesRead  = "activities:read"
	ScopeAccountWrite    = "account:write"
)

// SessionScopes is the scope set issued on login and registration.
var SessionScopes = []string{ScopeActivitiesRead, ScopeActivitiesWrite, ScopeAccountWrite}
