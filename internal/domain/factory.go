package domain

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces activity identifiers.
type IDGenerator func() string

// Clock returns the current instant.
type Clock func() time.Time

// Factory validates raw form input and builds Activity records.
type Factory struct {
	newID IDGenerator
	now   Clock
}

// FactoryOption customises a Factory.
type FactoryOption func(*Factory)

// WithIDGenerator overrides the identifier source.
func WithIDGenerator(gen IDGenerator) FactoryOption {
	return func(f *Factory) {
		if gen != nil {
			f.newID = gen
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(clock Clock) FactoryOption {
	return func(f *Factory) {
		if clock != nil {
			f.now = clock
		}
	}
}

// NewFactory constructs a Factory. By default IDs are UUIDv7, which sort by creation time.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{
		newID: timeOrderedID,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create validates rawDuration and returns a new Activity. The unit is taken as given.
func (f *Factory) Create(activityType ActivityType, rawDuration string, unit Unit) (Activity, error) {
	duration, err := ParseDuration(rawDuration)
	if err != nil {
		return Activity{}, err
	}

	return Activity{
		ID:        f.newID(),
		Type:      activityType,
		Icon:      IconFor(activityType),
		Duration:  duration,
		Unit:      unit,
		Timestamp: f.now().UTC(),
	}, nil
}

// ParseDuration parses a submitted duration, accepting only finite values greater than zero.
func ParseDuration(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	// Hex floats and digit separators are Go syntax, not form input.
	if raw == "" || strings.ContainsAny(raw, "xXpP_") {
		return 0, ErrInvalidDuration
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return 0, ErrInvalidDuration
	}
	return value, nil
}

func timeOrderedID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
