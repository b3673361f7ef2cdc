package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixedFactory() *Factory {
	now := time.Date(2025, time.March, 14, 15, 9, 26, 0, time.UTC)
	seq := 0
	return NewFactory(
		WithClock(func() time.Time { return now }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("act-%d", seq)
		}),
	)
}

func TestCreateValidActivities(t *testing.T) {
	cases := []struct {
		activityType ActivityType
		raw          string
		unit         Unit
		want         float64
		icon         Icon
	}{
		{ActivityTypeLaptop, "2.5", UnitHours, 2.5, IconLaptop},
		{ActivityTypeMobile, "45", UnitMinutes, 45, IconSmartphone},
		{ActivityTypeOven, " 0.1 ", UnitMinutes, 0.1, IconFlame},
		{ActivityTypeDriving, "12", UnitKilometers, 12, IconCar},
		{ActivityTypeDriving, "1e2", UnitMiles, 100, IconCar},
	}

	factory := fixedFactory()
	for _, tc := range cases {
		t.Run(string(tc.activityType)+"/"+tc.raw, func(t *testing.T) {
			activity, err := factory.Create(tc.activityType, tc.raw, tc.unit)
			require.NoError(t, err)
			require.Equal(t, tc.activityType, activity.Type)
			require.Equal(t, tc.icon, activity.Icon)
			require.Equal(t, tc.want, activity.Duration)
			require.Equal(t, tc.unit, activity.Unit)
			require.NotEmpty(t, activity.ID)
			require.Equal(t, time.UTC, activity.Timestamp.Location())
		})
	}
}

func TestCreateRejectsInvalidDuration(t *testing.T) {
	factory := fixedFactory()
	for _, raw := range []string{"", "   ", "abc", "0", "-1", "-0.5", "0.0", "NaN", "Inf", "+Inf", "2.5abc", "0x1p3", "0X10", "0x_1p0"} {
		t.Run(raw, func(t *testing.T) {
			activity, err := factory.Create(ActivityTypeDriving, raw, UnitKilometers)
			require.ErrorIs(t, err, ErrInvalidDuration)
			require.Equal(t, Activity{}, activity)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			require.Equal(t, "duration", verr.Field)
		})
	}
}

func TestCreateUnknownTypeFallsBackToGenericIcon(t *testing.T) {
	activity, err := fixedFactory().Create(ActivityType("cycling"), "3", UnitHours)
	require.NoError(t, err)
	require.Equal(t, IconActivity, activity.Icon)
}

func TestDefaultIDsAreUniqueAndTimeOrdered(t *testing.T) {
	factory := NewFactory()
	seen := make(map[string]struct{})
	prev := ""
	for i := 0; i < 200; i++ {
		activity, err := factory.Create(ActivityTypeLaptop, "1", UnitMinutes)
		require.NoError(t, err)
		_, dup := seen[activity.ID]
		require.False(t, dup, "duplicate id %s", activity.ID)
		seen[activity.ID] = struct{}{}
		require.Greater(t, activity.ID, prev)
		prev = activity.ID
	}
}

func TestIconForIsTotal(t *testing.T) {
	require.Equal(t, IconLaptop, IconFor(ActivityTypeLaptop))
	require.Equal(t, IconSmartphone, IconFor(ActivityTypeMobile))
	require.Equal(t, IconFlame, IconFor(ActivityTypeOven))
	require.Equal(t, IconCar, IconFor(ActivityTypeDriving))
	require.Equal(t, IconActivity, IconFor(""))
}

func TestUnitsFor(t *testing.T) {
	require.Equal(t, []Unit{UnitMinutes, UnitHours}, UnitsFor(ActivityTypeOven))
	require.Equal(t, []Unit{UnitKilometers, UnitMiles, UnitHours}, UnitsFor(ActivityTypeDriving))
	require.Empty(t, UnitsFor("boat"))

	require.True(t, ActivityTypeDriving.AllowsUnit(UnitMiles))
	require.False(t, ActivityTypeLaptop.AllowsUnit(UnitKilometers))
	require.Equal(t, UnitMinutes, DefaultUnit(ActivityTypeMobile))

	got := UnitsFor(ActivityTypeLaptop)
	got[0] = UnitMiles
	require.Equal(t, UnitMinutes, UnitsFor(ActivityTypeLaptop)[0])
}
