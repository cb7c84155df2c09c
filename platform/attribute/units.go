package attribute

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownUnit is returned when parsing an unrecognized unit name.
var ErrUnknownUnit = errors.New("unknown unit")

// AngleUnit is a display unit for angles. Angles are stored in radians.
type AngleUnit int

const (
	Degrees AngleUnit = iota
	Radians
	ArcMinutes
	ArcSeconds
)

// DistanceUnit is a display unit for distances. Distances are stored in centimetres.
type DistanceUnit int

const (
	Centimeters DistanceUnit = iota
	Millimeters
	Meters
	Kilometers
	Inches
	Feet
	Yards
	Miles
)

// TimeUnit is a display unit for time. Time is stored in seconds.
type TimeUnit int

const (
	Film TimeUnit = iota
	Seconds
	Milliseconds
	Minutes
	Hours
	Game
	PAL
	NTSC
	Show
	PALField
	NTSCField
)

// DisplayUnits is the set of units values are presented in to scripts.
type DisplayUnits struct {
	Angle    AngleUnit
	Distance DistanceUnit
	Time     TimeUnit
}

// DefaultUnits returns degrees, centimetres and film (24 fps).
func DefaultUnits() DisplayUnits {
	return DisplayUnits{Angle: Degrees, Distance: Centimeters, Time: Film}
}

var angleNames = map[AngleUnit]string{
	Degrees:    "deg",
	Radians:    "rad",
	ArcMinutes: "min",
	ArcSeconds: "sec",
}

var distanceNames = map[DistanceUnit]string{
	Centimeters: "cm",
	Millimeters: "mm",
	Meters:      "m",
	Kilometers:  "km",
	Inches:      "in",
	Feet:        "ft",
	Yards:       "yd",
	Miles:       "mi",
}

var timeNames = map[TimeUnit]string{
	Film:         "film",
	Seconds:      "sec",
	Milliseconds: "millisec",
	Minutes:      "min",
	Hours:        "hour",
	Game:         "game",
	PAL:          "pal",
	NTSC:         "ntsc",
	Show:         "show",
	PALField:     "palf",
	NTSCField:    "ntscf",
}

func (u AngleUnit) String() string    { return angleNames[u] }
func (u DistanceUnit) String() string { return distanceNames[u] }
func (u TimeUnit) String() string     { return timeNames[u] }

// ParseAngleUnit accepts the host short names ("deg", "rad", "min", "sec").
func ParseAngleUnit(name string) (AngleUnit, error) {
	for u, n := range angleNames {
		if n == name {
			return u, nil
		}
	}
	return Degrees, fmt.Errorf("%w: angle %q", ErrUnknownUnit, name)
}

// ParseDistanceUnit accepts the host short names ("cm", "mm", "in", ...).
func ParseDistanceUnit(name string) (DistanceUnit, error) {
	for u, n := range distanceNames {
		if n == name {
			return u, nil
		}
	}
	return Centimeters, fmt.Errorf("%w: distance %q", ErrUnknownUnit, name)
}

// ParseTimeUnit accepts the host short names ("film", "ntsc", "sec", ...).
func ParseTimeUnit(name string) (TimeUnit, error) {
	for u, n := range timeNames {
		if n == name {
			return u, nil
		}
	}
	return Film, fmt.Errorf("%w: time %q", ErrUnknownUnit, name)
}

// AngleIn converts an angle in radians to u.
func AngleIn(radians float64, u AngleUnit) float64 {
	switch u {
	case Radians:
		return radians
	case ArcMinutes:
		return radians * 180 / math.Pi * 60
	case ArcSeconds:
		return radians * 180 / math.Pi * 3600
	default:
		return radians * 180 / math.Pi
	}
}

var centimetersPer = map[DistanceUnit]float64{
	Centimeters: 1,
	Millimeters: 0.1,
	Meters:      100,
	Kilometers:  100000,
	Inches:      2.54,
	Feet:        30.48,
	Yards:       91.44,
	Miles:       160934.4,
}

// DistanceIn converts a distance in centimetres to u.
func DistanceIn(centimeters float64, u DistanceUnit) float64 {
	per, ok := centimetersPer[u]
	if !ok {
		return centimeters
	}
	return centimeters / per
}

var perSecond = map[TimeUnit]float64{
	Seconds:      1,
	Milliseconds: 1000,
	Minutes:      1.0 / 60,
	Hours:        1.0 / 3600,
	Game:         15,
	Film:         24,
	PAL:          25,
	NTSC:         30,
	Show:         48,
	PALField:     50,
	NTSCField:    60,
}

// TimeIn converts a time in seconds to u.
func TimeIn(seconds float64, u TimeUnit) float64 {
	rate, ok := perSecond[u]
	if !ok {
		return seconds
	}
	return seconds * rate
}

// SecondsFrom converts a time expressed in u to seconds.
func SecondsFrom(value float64, u TimeUnit) float64 {
	rate, ok := perSecond[u]
	if !ok {
		return value
	}
	return value / rate
}
