// Package api exposes HTTP handlers for the footprint service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"example.com/footprint/internal/auth"
	"example.com/footprint/internal/domain"
	"example.com/footprint/internal/session"
	"example.com/footprint/pkg/logger"
)

var (
	errUnknownType     = errors.New("type must be one of laptop, mobile, oven, driving")
	errUnsupportedUnit = errors.New("unit is not valid for this activity type")
)

// Handler coordinates HTTP requests with the session store.
type Handler struct {
	store    *session.Store
	tokens   auth.Config
	tokenTTL time.Duration
	logger   *zap.Logger
}

// NewHandler builds a Handler. Tokens are valid for tokenTTL.
func NewHandler(store *session.Store, tokens auth.Config, tokenTTL time.Duration, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if tokenTTL <= 0 {
		tokenTTL = session.DefaultTTL
	}
	return &Handler{store: store, tokens: tokens, tokenTTL: tokenTTL, logger: log}
}

// RegisterRoutes wires endpoints to the router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
	r.HandleFunc("/v1/auth/login", h.login).Methods(http.MethodPost)
	r.HandleFunc("/v1/auth/register", h.register).Methods(http.MethodPost)
	r.HandleFunc("/v1/auth/logout", h.logout).Methods(http.MethodPost)
	r.HandleFunc("/v1/activity-types", h.activityTypes).Methods(http.MethodGet)
	r.HandleFunc("/v1/activities", h.listActivities).Methods(http.MethodGet)
	r.HandleFunc("/v1/activities", h.createActivity).Methods(http.MethodPost)
	r.HandleFunc("/v1/account", h.getAccount).Methods(http.MethodGet)
	r.HandleFunc("/v1/account", h.updateAccount).Methods(http.MethodPut)
	r.HandleFunc("/v1/account/password", h.changePassword).Methods(http.MethodPut)
	r.HandleFunc("/v1/preferences/theme", h.getTheme).Methods(http.MethodGet)
	r.HandleFunc("/v1/preferences/theme", h.setTheme).Methods(http.MethodPut)
	r.HandleFunc("/v1/preferences/theme/toggle", h.toggleTheme).Methods(http.MethodPost)
}

// PublicPath reports whether path is served without a session token.
func PublicPath(path string) bool {
	switch path {
	case "/healthz", "/metrics", "/v1/auth/login", "/v1/auth/register", "/v1/activity-types":
		return true
	}
	return false
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	snap, err := h.store.Login(req.Email, req.Password, req.PrefersDark)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "login_failed", "please enter valid credentials")
			return
		}
		h.serverError(w, r, err)
		return
	}
	h.writeSession(w, r, snap)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	snap, err := h.store.Register(req.Name, req.Email, req.Password, req.PrefersDark)
	if err != nil {
		if errors.Is(err, session.ErrMissingFields) {
			writeError(w, http.StatusBadRequest, "registration_failed", "please fill all required fields")
			return
		}
		h.serverError(w, r, err)
		return
	}
	h.writeSession(w, r, snap)
}

func (h *Handler) writeSession(w http.ResponseWriter, r *http.Request, snap session.Snapshot) {
	expiresAt := snap.CreatedAt.Add(h.tokenTTL)
	token, err := auth.Issue(h.tokens, snap.User.Email, snap.ID, auth.SessionScopes, expiresAt)
	if err != nil {
		_ = h.store.Logout(snap.ID)
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Profile:   toProfileView(snap),
	})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireScope(w, r, "")
	if !ok {
		return
	}
	if err := h.store.Logout(claims.SessionID); err != nil {
		h.sessionError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) activityTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, activityCatalogue())
}

func (h *Handler) listActivities(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireScope(w, r, auth.ScopeActivitiesRead)
	if !ok {
		return
	}
	list, err := h.store.Activities(claims.SessionID)
	if err != nil {
		h.sessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toListResponse(list))
}

func (h *Handler) createActivity(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireScope(w, r, auth.ScopeActivitiesWrite)
	if !ok {
		return
	}

	var req CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	activity, err := h.store.LogActivity(
		claims.SessionID,
		domain.ActivityType(strings.TrimSpace(req.Type)),
		req.Duration,
		domain.Unit(strings.TrimSpace(req.Unit)),
	)
	if err != nil {
		h.sessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toActivityView(activity))
}

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireScope(w, r, "")
	if !ok {
		return
	}
	snap, err := h.store.Get(claims.SessionID)
	if err != nil {
		h.sessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileView(snap))
}

func (h *Handler) updateAccount(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireScope(w, r, auth.ScopeAccountWrite)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	snap, err := h.store.UpdateProfile(claims.SessionID, req.Name, req.Email)
	if err != nil {
		h.sessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileView(snap))
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireScope(w, r, auth.ScopeAccountWrite)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := h.store.ChangePassword(claims.SessionID, req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		h.sessionError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getTheme(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireScope(w, r, "")
	if !ok {
		return
	}
	snap, err := h.store.Get(claims.SessionID)
	if err != nil {
		h.sessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ThemeResponse{Theme: string(snap.Theme)})
}

func (h *Handler) setTheme(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireScope(w, r, "")
	if !ok {
		return
	}
	var req ThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	theme, err := session.ParseTheme(req.Theme)
	if err != nil {
		h.sessionError(w, r, err)
		return
	}
	theme, err = h.store.SetTheme(claims.SessionID, theme)
	if err != nil {
		h.sessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ThemeResponse{Theme: string(theme)})
}

func (h *Handler) toggleTheme(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireScope(w, r, "")
	if !ok {
		return
	}
	theme, err := h.store.ToggleTheme(claims.SessionID)
	if err != nil {
		h.sessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ThemeResponse{Theme: string(theme)})
}

// requireScope loads claims from the request. An empty scope only requires a session.
func (h *Handler) requireScope(w http.ResponseWriter, r *http.Request, scope string) (*auth.Claims, bool) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return nil, false
	}
	if scope != "" && !claims.HasScope(scope) {
		writeError(w, http.StatusForbidden, "forbidden", "scope "+scope+" required")
		return nil, false
	}
	return claims, true
}

func (h *Handler) sessionError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		writeError(w, http.StatusUnauthorized, "session_expired", "session not found or expired")
	case errors.Is(err, domain.ErrInvalidDuration):
		writeError(w, http.StatusBadRequest, "invalid_duration", "please enter a valid duration value")
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, "validation_failed", verr.Error())
	case errors.Is(err, session.ErrMissingFields),
		errors.Is(err, session.ErrPasswordMismatch),
		errors.Is(err, session.ErrInvalidTheme):
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, session.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "current password is incorrect")
	default:
		h.serverError(w, r, err)
	}
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	logger.WithRequestID(r.Context(), h.logger).Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "server_error", "internal error")
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
