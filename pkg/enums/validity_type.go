package enums

import "fmt"

// ValidityType selects how a promotion rule's time window is evaluated.
type ValidityType string

const (
	ValidityTypePermanent     ValidityType = "permanent"
	ValidityTypeWeekdays      ValidityType = "weekdays"
	ValidityTypeDateRange     ValidityType = "date_range"
	ValidityTypeTimeRange     ValidityType = "time_range"
	ValidityTypeDateTimeRange ValidityType = "date_time_range"
)

var validValidityTypes = []ValidityType{
	ValidityTypePermanent,
	ValidityTypeWeekdays,
	ValidityTypeDateRange,
	ValidityTypeTimeRange,
	ValidityTypeDateTimeRange,
}

// String implements fmt.Stringer.
func (v ValidityType) String() string {
	return string(v)
}

// IsValid reports whether the value is a known ValidityType.
func (v ValidityType) IsValid() bool {
	for _, candidate := range validValidityTypes {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseValidityType converts raw input into a ValidityType.
func ParseValidityType(value string) (ValidityType, error) {
	for _, candidate := range validValidityTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid validity type %q", value)
}
