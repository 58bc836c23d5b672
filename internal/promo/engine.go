package promo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/saboresapp/sabores-backend/pkg/db/models"
	"github.com/saboresapp/sabores-backend/pkg/enums"
	"github.com/saboresapp/sabores-backend/pkg/logger"
)

// Target identifies the entity a promotion rule could apply to, with its
// category set already resolved (a product may belong to several categories
// through the legacy many-to-many).
type Target struct {
	Kind        enums.TargetKind
	EntityID    uuid.UUID
	VariantID   *uuid.UUID
	CategoryIDs []uuid.UUID
}

// EntityIndex gives the engine activity lookups over a catalog snapshot. The
// snapshot is assumed consistent for the whole evaluation.
type EntityIndex interface {
	ProductActive(id uuid.UUID) bool
	ComboActive(id uuid.UUID) bool
	VariantActive(id uuid.UUID) bool
}

// Engine scans a set of promotions for rules applicable to a target at an
// instant. It is pure over its inputs and safe for concurrent use.
type Engine struct {
	promotions []models.Promotion
	index      EntityIndex
	logg       *logger.Logger
}

// NewEngine builds an applicability engine over a consistent promotion set.
func NewEngine(promotions []models.Promotion, index EntityIndex, logg *logger.Logger) *Engine {
	return &Engine{promotions: promotions, index: index, logg: logg}
}

// FindApplicable returns every promotion item applicable to the target for
// the given service type at the given instant. Result order is not part of
// the contract; ties between promotions are for the caller to resolve.
// Malformed rules are logged and excluded, never returned as errors.
func (e *Engine) FindApplicable(ctx context.Context, target Target, st enums.ServiceType, at time.Time) []models.PromotionItem {
	applicable := []models.PromotionItem{}

	for pi := range e.promotions {
		promotion := &e.promotions[pi]
		if !promotion.IsActive || !e.promotionWindowOpen(promotion, at) {
			continue
		}

		for _, item := range promotion.Items {
			if !e.matches(item, target) {
				continue
			}
			if !e.targetEntityActive(target) {
				continue
			}
			rule := RuleFromItem(item)
			if err := ValidateRule(rule); err != nil {
				if e.logg != nil {
					lctx := e.logg.WithPromotionID(ctx, promotion.ID.String())
					lctx = e.logg.WithField(lctx, "promotion_item_id", item.ID.String())
					e.logg.Warn(lctx, "skipping non-evaluable promotion rule: "+err.Error())
				}
				continue
			}
			if !EvaluateValidity(rule, at) {
				continue
			}
			if item.ServiceFilter != nil && !item.ServiceFilter.Allows(st) {
				continue
			}
			withParent := item
			withParent.Promotion = promotion
			applicable = append(applicable, withParent)
		}
	}

	return applicable
}

// matches checks the syntactic reference only; gates run separately.
func (e *Engine) matches(item models.PromotionItem, target Target) bool {
	if item.VariantID != nil && target.VariantID != nil && *item.VariantID == *target.VariantID {
		return true
	}
	if item.TargetID != nil && item.TargetKind == target.Kind && *item.TargetID == target.EntityID {
		return true
	}
	if item.CategoryID != nil {
		for _, categoryID := range target.CategoryIDs {
			if categoryID == *item.CategoryID {
				return true
			}
		}
	}
	return false
}

// targetEntityActive enforces the entity-active gate: a rule never applies
// when the entity it would discount has been deactivated or removed.
func (e *Engine) targetEntityActive(target Target) bool {
	if target.VariantID != nil && !e.index.VariantActive(*target.VariantID) {
		return false
	}
	switch target.Kind {
	case enums.TargetKindCombo:
		return e.index.ComboActive(target.EntityID)
	default:
		return e.index.ProductActive(target.EntityID)
	}
}

// promotionWindowOpen evaluates the promotion-level coarse gate. A permanent
// promotion is always open; otherwise every restriction that is configured
// must hold. One-sided date bounds are honored at this level (unlike the
// item-level date_range rule, which requires both bounds).
func (e *Engine) promotionWindowOpen(p *models.Promotion, at time.Time) bool {
	if p.IsPermanent {
		return true
	}
	day := dateOnly(at)
	if p.StartsOn != nil && day.Before(dateOnly(*p.StartsOn)) {
		return false
	}
	if p.EndsOn != nil && day.After(dateOnly(*p.EndsOn)) {
		return false
	}
	if len(p.Weekdays) > 0 && !weekdayMatch(p.Weekdays, at) {
		return false
	}
	if p.TimeFrom != nil && p.TimeUntil != nil && !timeRangeMatch(p.TimeFrom, p.TimeUntil, at) {
		return false
	}
	return true
}
