package enums

import "fmt"

// PromotionType categorizes the commercial shape of an offer.
type PromotionType string

const (
	PromotionTypePercentage    PromotionType = "percentage"
	PromotionTypeFixedAmount   PromotionType = "fixed_amount"
	PromotionTypeDailySpecial  PromotionType = "daily_special"
	PromotionTypeBundleSpecial PromotionType = "bundle_special"
	PromotionTypeTwoForOne     PromotionType = "two_for_one"
)

var validPromotionTypes = []PromotionType{
	PromotionTypePercentage,
	PromotionTypeFixedAmount,
	PromotionTypeDailySpecial,
	PromotionTypeBundleSpecial,
	PromotionTypeTwoForOne,
}

// String implements fmt.Stringer.
func (p PromotionType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PromotionType.
func (p PromotionType) IsValid() bool {
	for _, candidate := range validPromotionTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePromotionType converts raw input into a PromotionType.
func ParsePromotionType(value string) (PromotionType, error) {
	for _, candidate := range validPromotionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid promotion type %q", value)
}
