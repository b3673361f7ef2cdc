// Package domain defines the activity records logged during a session.
package domain

import "time"

// ActivityType identifies what kind of usage was logged.
type ActivityType string

const (
	ActivityTypeLaptop  ActivityType = "laptop"
	ActivityTypeMobile  ActivityType = "mobile"
	ActivityTypeOven    ActivityType = "oven"
	ActivityTypeDriving ActivityType = "driving"
)

// Icon is the presentation tag attached to an activity.
type Icon string

const (
	IconLaptop     Icon = "Laptop"
	IconSmartphone Icon = "Smartphone"
	IconFlame      Icon = "Flame"
	IconCar        Icon = "Car"
	// IconActivity is returned for types without a dedicated icon.
	IconActivity Icon = "Activity"
)

// Unit is the measure a duration was entered in. Values are stored as entered and never converted.
type Unit string

const (
	UnitMinutes    Unit = "minutes"
	UnitHours      Unit = "hours"
	UnitKilometers Unit = "km"
	UnitMiles      Unit = "miles"
)

// Activity is a single logged usage event. It is never modified after creation.
type Activity struct {
	ID        string
	Type      ActivityType
	Icon      Icon
	Duration  float64
	Unit      Unit
	Timestamp time.Time
}

var icons = map[ActivityType]Icon{
	ActivityTypeLaptop:  IconLaptop,
	ActivityTypeMobile:  IconSmartphone,
	ActivityTypeOven:    IconFlame,
	ActivityTypeDriving: IconCar,
}

var timeUnits = []Unit{UnitMinutes, UnitHours}

var units = map[ActivityType][]Unit{
	ActivityTypeLaptop:  timeUnits,
	ActivityTypeMobile:  timeUnits,
	ActivityTypeOven:    timeUnits,
	ActivityTypeDriving: {UnitKilometers, UnitMiles, UnitHours},
}

// ActivityTypes lists the known types in display order.
func ActivityTypes() []ActivityType {
	return []ActivityType{ActivityTypeLaptop, ActivityTypeMobile, ActivityTypeOven, ActivityTypeDriving}
}

// IconFor maps an activity type to its icon, falling back to IconActivity.
func IconFor(t ActivityType) Icon {
	if icon, ok := icons[t]; ok {
		return icon
	}
	return IconActivity
}

// Known reports whether t is one of the supported activity types.
func (t ActivityType) Known() bool {
	_, ok := icons[t]
	return ok
}

// UnitsFor returns the units that may be entered for t. Unknown types have none.
func UnitsFor(t ActivityType) []Unit {
	allowed := units[t]
	out := make([]Unit, len(allowed))
	copy(out, allowed)
	return out
}

// AllowsUnit reports whether u is in the unit domain of t.
func (t ActivityType) AllowsUnit(u Unit) bool {
	for _, allowed := range units[t] {
		if allowed == u {
			return true
		}
	}
	return false
}

// DefaultUnit is the unit preselected for t.
func DefaultUnit(t ActivityType) Unit {
	if allowed := units[t]; len(allowed) > 0 {
		return allowed[0]
	}
	return ""
}
