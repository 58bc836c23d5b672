package promo

import (
	"fmt"
	"time"

	"github.com/saboresapp/sabores-backend/pkg/db/models"
	"github.com/saboresapp/sabores-backend/pkg/enums"
	pkgerrors "github.com/saboresapp/sabores-backend/pkg/errors"
)

// ValidityRule is the time-window fragment of a promotion item, pulled out so
// the evaluator stays a pure function over plain data.
type ValidityRule struct {
	Type       *enums.ValidityType
	ValidFrom  *time.Time
	ValidUntil *time.Time
	TimeFrom   *string
	TimeUntil  *string
	Weekdays   []int64
}

// RuleFromItem extracts the validity fragment of a promotion item.
func RuleFromItem(item models.PromotionItem) ValidityRule {
	return ValidityRule{
		Type:       item.ValidityType,
		ValidFrom:  item.ValidFrom,
		ValidUntil: item.ValidUntil,
		TimeFrom:   item.TimeFrom,
		TimeUntil:  item.TimeUntil,
		Weekdays:   item.Weekdays,
	}
}

// EvaluateValidity reports whether the rule admits the given instant.
//
// An absent type is unconditionally valid, while a structured type with
// missing bounds fails closed. The asymmetry is inherited behavior that
// admin data depends on; do not collapse the two cases.
//
// Time ranges compare the HH:MM:SS rendering of the instant lexicographically
// against the stored bounds, with both ends inclusive. Ranges that cross
// midnight (from > until) therefore never match; that boundary is a known
// limitation of the rule format, not of this evaluator.
func EvaluateValidity(rule ValidityRule, at time.Time) bool {
	if rule.Type == nil {
		return true
	}

	switch *rule.Type {
	case enums.ValidityTypePermanent:
		return true
	case enums.ValidityTypeWeekdays:
		return weekdayMatch(rule.Weekdays, at)
	case enums.ValidityTypeDateRange:
		return dateRangeMatch(rule.ValidFrom, rule.ValidUntil, at)
	case enums.ValidityTypeTimeRange:
		return timeRangeMatch(rule.TimeFrom, rule.TimeUntil, at)
	case enums.ValidityTypeDateTimeRange:
		return dateRangeMatch(rule.ValidFrom, rule.ValidUntil, at) &&
			timeRangeMatch(rule.TimeFrom, rule.TimeUntil, at)
	}
	return false
}

// ValidateRule reports why a rule can never evaluate to true. Admin save
// paths surface this; bulk applicability scans log it and move on.
func ValidateRule(rule ValidityRule) error {
	if rule.Type == nil {
		return nil
	}
	switch *rule.Type {
	case enums.ValidityTypePermanent:
		return nil
	case enums.ValidityTypeWeekdays:
		if len(rule.Weekdays) == 0 {
			return pkgerrors.New(pkgerrors.CodeInvalidRule, "weekdays rule has no weekdays")
		}
		for _, day := range rule.Weekdays {
			if day < 1 || day > 7 {
				return pkgerrors.New(pkgerrors.CodeInvalidRule, fmt.Sprintf("weekday %d outside 1..7", day))
			}
		}
		return nil
	case enums.ValidityTypeDateRange:
		return validateDateBounds(rule)
	case enums.ValidityTypeTimeRange:
		return validateTimeBounds(rule)
	case enums.ValidityTypeDateTimeRange:
		if err := validateDateBounds(rule); err != nil {
			return err
		}
		return validateTimeBounds(rule)
	}
	return pkgerrors.New(pkgerrors.CodeInvalidRule, fmt.Sprintf("unknown validity type %q", *rule.Type))
}

func validateDateBounds(rule ValidityRule) error {
	if rule.ValidFrom == nil || rule.ValidUntil == nil {
		return pkgerrors.New(pkgerrors.CodeInvalidRule, "date range rule is missing a bound")
	}
	if dateOnly(*rule.ValidFrom).After(dateOnly(*rule.ValidUntil)) {
		return pkgerrors.New(pkgerrors.CodeInvalidRule, "date range rule has valid_from after valid_until")
	}
	return nil
}

func validateTimeBounds(rule ValidityRule) error {
	if rule.TimeFrom == nil || rule.TimeUntil == nil {
		return pkgerrors.New(pkgerrors.CodeInvalidRule, "time range rule is missing a bound")
	}
	if *rule.TimeFrom > *rule.TimeUntil {
		return pkgerrors.New(pkgerrors.CodeInvalidRule, "time range rule crosses midnight")
	}
	return nil
}

func weekdayMatch(days []int64, at time.Time) bool {
	if len(days) == 0 {
		return false
	}
	iso := ISOWeekday(at)
	for _, day := range days {
		if int(day) == iso {
			return true
		}
	}
	return false
}

// dateRangeMatch compares dates only; the time-of-day component of the
// instant and of the bounds is ignored. Both ends are inclusive.
func dateRangeMatch(from, until *time.Time, at time.Time) bool {
	if from == nil || until == nil {
		return false
	}
	day := dateOnly(at)
	return !day.Before(dateOnly(*from)) && !day.After(dateOnly(*until))
}

func timeRangeMatch(from, until *string, at time.Time) bool {
	if from == nil || until == nil {
		return false
	}
	clock := at.Format("15:04:05")
	return clock >= *from && clock <= *until
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ISOWeekday maps the instant's weekday onto ISO numbering, 1=Monday through
// 7=Sunday.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
