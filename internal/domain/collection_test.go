package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInsertPrependsAndKeepsOrder(t *testing.T) {
	existing := []Activity{{ID: "b"}, {ID: "c"}}
	snapshot := append([]Activity(nil), existing...)

	got := Insert(existing, Activity{ID: "a"})

	require.Equal(t, []Activity{{ID: "a"}, {ID: "b"}, {ID: "c"}}, got)
	require.Equal(t, snapshot, existing)
}

func TestInsertIntoNil(t *testing.T) {
	got := Insert(nil, Activity{ID: "only"})
	require.Len(t, got, 1)
	require.Equal(t, "only", got[0].ID)
}

func TestInsertDoesNotDeduplicate(t *testing.T) {
	a := Activity{ID: "same"}
	got := Insert(Insert(nil, a), a)
	require.Len(t, got, 2)
}

func TestIsEmpty(t *testing.T) {
	require.True(t, IsEmpty(nil))
	require.True(t, IsEmpty([]Activity{}))
	require.False(t, IsEmpty([]Activity{{ID: "x"}}))
}

func TestScenarioLaptopHours(t *testing.T) {
	factory := fixedFactory()
	activity, err := factory.Create(ActivityTypeLaptop, "2.5", UnitHours)
	require.NoError(t, err)

	collection := Insert(nil, activity)
	head := collection[0]
	require.Equal(t, ActivityTypeLaptop, head.Type)
	require.Equal(t, IconLaptop, head.Icon)
	require.Equal(t, 2.5, head.Duration)
	require.Equal(t, UnitHours, head.Unit)
}

func TestScenarioZeroDrivingRejected(t *testing.T) {
	var collection []Activity
	_, err := fixedFactory().Create(ActivityTypeDriving, "0", UnitKilometers)
	require.ErrorIs(t, err, ErrInvalidDuration)
	require.True(t, IsEmpty(collection))
}

func TestScenarioNewestFirst(t *testing.T) {
	factory := fixedFactory()
	var collection []Activity
	for _, at := range []ActivityType{ActivityTypeLaptop, ActivityTypeMobile, ActivityTypeOven} {
		activity, err := factory.Create(at, "1", UnitMinutes)
		require.NoError(t, err)
		collection = Insert(collection, activity)
	}

	require.Equal(t, ActivityTypeOven, collection[0].Type)
	require.Equal(t, ActivityTypeMobile, collection[1].Type)
	require.Equal(t, ActivityTypeLaptop, collection[2].Type)
}
