package enums

import "fmt"

// TargetKind disambiguates whether a promotion item's target id points at a
// product or a combo. It is persisted at write time so read paths never have
// to re-derive the kind from the referenced category.
type TargetKind string

const (
	TargetKindProduct TargetKind = "product"
	TargetKindCombo   TargetKind = "combo"
)

var validTargetKinds = []TargetKind{
	TargetKindProduct,
	TargetKindCombo,
}

// String implements fmt.Stringer.
func (k TargetKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known TargetKind.
func (k TargetKind) IsValid() bool {
	for _, candidate := range validTargetKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseTargetKind converts raw input into a TargetKind.
func ParseTargetKind(value string) (TargetKind, error) {
	for _, candidate := range validTargetKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid target kind %q", value)
}
