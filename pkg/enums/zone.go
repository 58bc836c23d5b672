package enums

import "fmt"

// Zone represents the pricing region a price column belongs to.
type Zone string

const (
	ZoneCapital  Zone = "capital"
	ZoneInterior Zone = "interior"
)

var validZones = []Zone{
	ZoneCapital,
	ZoneInterior,
}

// String implements fmt.Stringer.
func (z Zone) String() string {
	return string(z)
}

// IsValid reports whether the value is a known Zone.
func (z Zone) IsValid() bool {
	for _, candidate := range validZones {
		if candidate == z {
			return true
		}
	}
	return false
}

// ParseZone converts raw input into a Zone.
func ParseZone(value string) (Zone, error) {
	for _, candidate := range validZones {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid zone %q", value)
}
