package enums

import "fmt"

// ServiceType represents how an order is fulfilled.
type ServiceType string

const (
	ServiceTypePickup   ServiceType = "pickup"
	ServiceTypeDelivery ServiceType = "delivery"
)

var validServiceTypes = []ServiceType{
	ServiceTypePickup,
	ServiceTypeDelivery,
}

// String implements fmt.Stringer.
func (s ServiceType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ServiceType.
func (s ServiceType) IsValid() bool {
	for _, candidate := range validServiceTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseServiceType converts raw input into a ServiceType.
func ParseServiceType(value string) (ServiceType, error) {
	for _, candidate := range validServiceTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid service type %q", value)
}

// ServiceFilter restricts a promotion item to a subset of service types.
type ServiceFilter string

const (
	ServiceFilterBoth         ServiceFilter = "both"
	ServiceFilterDeliveryOnly ServiceFilter = "delivery_only"
	ServiceFilterPickupOnly   ServiceFilter = "pickup_only"
)

var validServiceFilters = []ServiceFilter{
	ServiceFilterBoth,
	ServiceFilterDeliveryOnly,
	ServiceFilterPickupOnly,
}

// String implements fmt.Stringer.
func (f ServiceFilter) String() string {
	return string(f)
}

// IsValid reports whether the value is a known ServiceFilter.
func (f ServiceFilter) IsValid() bool {
	for _, candidate := range validServiceFilters {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseServiceFilter converts raw input into a ServiceFilter.
func ParseServiceFilter(value string) (ServiceFilter, error) {
	for _, candidate := range validServiceFilters {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid service filter %q", value)
}

// Allows reports whether the filter admits the requested service type.
// A NULL filter on the owning row means no restriction; callers handle that
// case before reaching here, so only the three concrete values matter.
func (f ServiceFilter) Allows(st ServiceType) bool {
	switch f {
	case ServiceFilterBoth:
		return true
	case ServiceFilterDeliveryOnly:
		return st == ServiceTypeDelivery
	case ServiceFilterPickupOnly:
		return st == ServiceTypePickup
	}
	return false
}
