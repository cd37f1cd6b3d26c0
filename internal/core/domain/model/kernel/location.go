package kernel

import (
	"fmt"
	"strings"

	"dispatchsim/internal/pkg/errs"
)

// Location is a symbolic place (an intersection) in the working zone.
// The set is closed: A through H, plus Unknown which only ever appears as the
// zero value of a freshly spawned courier. Locations are values; they are
// replaced, never mutated.
type Location uint8

const (
	// Unknown is the uninitialized default and is never a valid destination.
	Unknown Location = iota
	A
	B
	C
	D
	E
	F
	G
	H
)

// ErrLocationIsUnknown is returned when Unknown is used where a real place is required.
var ErrLocationIsUnknown = errs.NewValueIsInvalidError("location must not be Unknown")

// Intn is satisfied by any random source able to draw from [0, n).
type Intn interface {
	IntN(n int) int
}

// Locations returns every real place of the zone, in declaration order.
func Locations() []Location {
	return []Location{A, B, C, D, E, F, G, H}
}

// NewRandomLocation picks one of the real places uniformly. It never returns Unknown.
//
// Example:
//
//	src := rng.New(42)
//	loc := kernel.NewRandomLocation(src)
//	fmt.Println(loc) // e.g. "C"
func NewRandomLocation(src Intn) Location {
	all := Locations()
	return all[src.IntN(len(all))]
}

// ParseLocation converts a single-letter name (case-insensitive) to a Location.
// "Unknown" is accepted and returned as Unknown so reports round-trip.
func ParseLocation(s string) (Location, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, Unknown.String()) {
		return Unknown, nil
	}
	for _, l := range Locations() {
		if strings.EqualFold(s, l.String()) {
			return l, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("location", fmt.Errorf("%q is not a place of the zone", s))
}

// Validate rejects Unknown and values outside the closed set.
func (l Location) Validate() error {
	if l == Unknown {
		return ErrLocationIsUnknown
	}
	if l > H {
		return errs.NewValueIsOutOfRangeError("location", uint8(l), uint8(A), uint8(H))
	}
	return nil
}

// IsKnown reports whether the location is a real place.
func (l Location) IsKnown() bool {
	return l.Validate() == nil
}

// String implements fmt.Stringer.
func (l Location) String() string {
	if l == Unknown || l > H {
		return "Unknown"
	}
	return string(rune('A' + l - A))
}

// MarshalText implements encoding.TextMarshaler so locations serialize as letters.
func (l Location) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Location) UnmarshalText(text []byte) error {
	parsed, err := ParseLocation(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
