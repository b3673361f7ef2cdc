package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"example.com/footprint/internal/domain"
	"example.com/footprint/internal/observability"
)

// DefaultTTL is how long a session lives after login. Its token expires at the same instant.
const DefaultTTL = 12 * time.Hour

// Store holds every live session in memory. Each session's collection has a single writer:
// all mutations run under mu.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session

	factory  *domain.Factory
	ttl      time.Duration
	now      func() time.Time
	newID    func() string
	hashCost int
	logger   *zap.Logger
}

// Option customises a Store.
type Option func(*Store)

// WithFactory sets the activity factory.
func WithFactory(f *domain.Factory) Option {
	return func(s *Store) { s.factory = f }
}

// WithTTL sets the lifetime of a session, counted from login. Zero or negative disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithClock sets the time source used for session bookkeeping.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator sets the session id source.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithHashCost sets the bcrypt cost for session passwords.
func WithHashCost(cost int) Option {
	return func(s *Store) { s.hashCost = cost }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore constructs an empty Store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]*session),
		factory:  domain.NewFactory(),
		ttl:      DefaultTTL,
		now:      time.Now,
		newID:    uuid.NewString,
		hashCost: bcrypt.DefaultCost,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login starts a session for any non-empty email and password.
func (s *Store) Login(email, password string, prefersDark bool) (Snapshot, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		observability.RecordAuthAttempt("login", false)
		return Snapshot{}, ErrInvalidCredentials
	}
	snap, err := s.open(User{Name: nameFromEmail(email), Email: email}, password, prefersDark)
	observability.RecordAuthAttempt("login", err == nil)
	return snap, err
}

// Register starts a session for a new account. Name, email and password are required.
func (s *Store) Register(name, email, password string, prefersDark bool) (Snapshot, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || strings.TrimSpace(password) == "" {
		observability.RecordAuthAttempt("register", false)
		return Snapshot{}, ErrMissingFields
	}
	snap, err := s.open(User{Name: name, Email: email}, password, prefersDark)
	observability.RecordAuthAttempt("register", err == nil)
	return snap, err
}

func (s *Store) open(user User, password string, prefersDark bool) (Snapshot, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return Snapshot{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	now := s.now().UTC()
	sess := &session{
		id:           s.newID(),
		user:         user,
		passwordHash: hash,
		theme:        initialTheme(prefersDark),
		createdAt:    now,
		lastSeenAt:   now,
	}
	s.sessions[sess.id] = sess
	snap := sess.snapshot()
	observability.SetActiveSessions(len(s.sessions))
	s.mu.Unlock()

	s.logger.Info("session opened", zap.String("session_id", snap.ID), zap.String("email", user.Email))
	return snap, nil
}

// Get returns the session and marks it as seen.
func (s *Store) Get(id string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookupLocked(id)
	if err != nil {
		return Snapshot{}, err
	}
	return sess.snapshot(), nil
}

// Logout discards the session together with its activity collection.
func (s *Store) Logout(id string) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	if ok {
		observability.SetActiveSessions(len(s.sessions))
	}
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.logger.Info("session closed", zap.String("session_id", id))
	return nil
}

// LogActivity validates the submission and, on success, places the new activity first in the
// session's collection. A rejected submission leaves the collection unchanged.
func (s *Store) LogActivity(id string, activityType domain.ActivityType, rawDuration string, unit domain.Unit) (domain.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookupLocked(id)
	if err != nil {
		return domain.Activity{}, err
	}

	activity, err := s.factory.Create(activityType, rawDuration, unit)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			observability.RecordValidationFailure(verr.Field)
		}
		s.logger.Debug("activity rejected", zap.String("session_id", id), zap.Error(err))
		return domain.Activity{}, err
	}

	sess.activities = domain.Insert(sess.activities, activity)
	observability.RecordActivityLogged(string(activity.Type))
	s.logger.Debug("activity logged",
		zap.String("session_id", id),
		zap.String("activity_id", activity.ID),
		zap.String("type", string(activity.Type)),
		zap.Float64("duration", activity.Duration),
		zap.String("unit", string(activity.Unit)),
	)
	return activity, nil
}

// Activities returns a copy of the session's collection, newest first.
func (s *Store) Activities(id string) (ActivityList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookupLocked(id)
	if err != nil {
		return ActivityList{}, err
	}
	return sess.activityList(), nil
}

// ToggleTheme flips between light and dark.
func (s *Store) ToggleTheme(id string) (Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookupLocked(id)
	if err != nil {
		return "", err
	}
	sess.theme = sess.theme.Toggled()
	return sess.theme, nil
}

// SetTheme sets the theme explicitly.
func (s *Store) SetTheme(id string, theme Theme) (Theme, error) {
	if theme != ThemeLight && theme != ThemeDark {
		return "", ErrInvalidTheme
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookupLocked(id)
	if err != nil {
		return "", err
	}
	sess.theme = theme
	return sess.theme, nil
}

// UpdateProfile changes the account name and email.
func (s *Store) UpdateProfile(id, name, email string) (Snapshot, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return Snapshot{}, ErrMissingFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookupLocked(id)
	if err != nil {
		return Snapshot{}, err
	}
	sess.user = User{Name: name, Email: email}
	return sess.snapshot(), nil
}

// ChangePassword replaces the session password after checking the current one.
func (s *Store) ChangePassword(id, current, next, confirm string) error {
	if strings.TrimSpace(next) == "" {
		return ErrMissingFields
	}
	if next != confirm {
		return ErrPasswordMismatch
	}

	s.mu.Lock()
	sess, err := s.lookupLocked(id)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	currentHash := sess.passwordHash
	s.mu.Unlock()

	// Hashing is slow; other sessions must not wait on it.
	if err := bcrypt.CompareHashAndPassword(currentHash, []byte(current)); err != nil {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.hashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err = s.lookupLocked(id)
	if err != nil {
		return err
	}
	sess.passwordHash = hash
	return nil
}

// Sweep discards sessions older than the TTL and returns how many were removed.
func (s *Store) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	count := len(s.sessions)
	if removed > 0 {
		observability.SetActiveSessions(count)
	}
	s.mu.Unlock()

	if removed > 0 {
		s.logger.Info("expired sessions discarded", zap.Int("removed", removed), zap.Int("active", count))
	}
	return removed
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) lookupLocked(id string) (*session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	now := s.now().UTC()
	if s.expired(sess, now) {
		delete(s.sessions, id)
		observability.SetActiveSessions(len(s.sessions))
		return nil, ErrSessionNotFound
	}
	sess.lastSeenAt = now
	return sess, nil
}

func (s *Store) expired(sess *session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.createdAt) > s.ttl
}
