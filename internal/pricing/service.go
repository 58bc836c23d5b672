package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saboresapp/sabores-backend/internal/catalog"
	"github.com/saboresapp/sabores-backend/internal/promo"
	"github.com/saboresapp/sabores-backend/pkg/db/models"
	"github.com/saboresapp/sabores-backend/pkg/enums"
	pkgerrors "github.com/saboresapp/sabores-backend/pkg/errors"
	"github.com/saboresapp/sabores-backend/pkg/logger"
	"github.com/saboresapp/sabores-backend/pkg/types"
)

// TargetRef names the entity a line item prices. Exactly one field is set.
type TargetRef struct {
	ProductID *uuid.UUID
	VariantID *uuid.UUID
	ComboID   *uuid.UUID
}

// Applied records which promotion rule ended up on the line.
type Applied struct {
	PromotionID     uuid.UUID           `json:"promotion_id"`
	PromotionItemID uuid.UUID           `json:"promotion_item_id"`
	Name            string              `json:"name"`
	Type            enums.PromotionType `json:"type"`
}

// Breakdown is the priced result for one line item.
//
// BasePrice is always the base matrix cell. SpecialPrice is set when a daily
// special replaced it. DiscountedPrice is set when a promotion applied on top
// of whichever of the two won.
type Breakdown struct {
	BasePrice        types.Money  `json:"base_price"`
	SpecialPrice     *types.Money `json:"special_price,omitempty"`
	DiscountedPrice  *types.Money `json:"discounted_price,omitempty"`
	AppliedPromotion *Applied     `json:"applied_promotion,omitempty"`
}

// Final returns the amount the customer actually pays.
func (b Breakdown) Final() types.Money {
	if b.DiscountedPrice != nil {
		return *b.DiscountedPrice
	}
	if b.SpecialPrice != nil {
		return *b.SpecialPrice
	}
	return b.BasePrice
}

// Service composes base/daily-special prices with applicable promotions.
// It is pure over the snapshot: identical inputs give identical output.
type Service struct {
	logg *logger.Logger
}

// NewService builds the pricing aggregator.
func NewService(logg *logger.Logger) *Service {
	return &Service{logg: logg}
}

// PriceFor resolves the effective price for one target. Precedence is fixed:
// daily special (variants only, per-cell fallback), then base, then one
// promotion rule applied on top. When several rules apply the cheapest
// outcome wins, with the item id as deterministic tie-break; callers wanting
// a different stacking policy use ApplicableItems directly.
func (s *Service) PriceFor(ctx context.Context, snap *catalog.Snapshot, ref TargetRef, zone enums.Zone, st enums.ServiceType, at time.Time) (*Breakdown, error) {
	breakdown, target, err := s.baseBreakdown(snap, ref, zone, st, at)
	if err != nil {
		return nil, err
	}

	effective := breakdown.Final()

	engine := promo.NewEngine(snap.Promotions(), snap, s.logg)
	items := engine.FindApplicable(ctx, target, st, at)

	var best *models.PromotionItem
	var bestPrice types.Money
	for i := range items {
		candidate, ok := applyItem(items[i], effective, zone)
		if !ok {
			continue
		}
		switch {
		case best == nil,
			candidate.LessThan(bestPrice.Decimal),
			candidate.Equal(bestPrice.Decimal) && items[i].ID.String() < best.ID.String():
			item := items[i]
			best = &item
			bestPrice = types.NewMoney(candidate)
		}
	}

	if best != nil {
		discounted := bestPrice
		breakdown.DiscountedPrice = &discounted
		applied := &Applied{
			PromotionItemID: best.ID,
			PromotionID:     best.PromotionID,
		}
		if best.Promotion != nil {
			applied.Name = best.Promotion.Name
			applied.Type = best.Promotion.Type
		}
		breakdown.AppliedPromotion = applied
	}

	return breakdown, nil
}

// ApplicableItems exposes the raw applicable rule set so checkout can apply
// its own stacking policy.
func (s *Service) ApplicableItems(ctx context.Context, snap *catalog.Snapshot, ref TargetRef, st enums.ServiceType, at time.Time) ([]models.PromotionItem, error) {
	target, err := resolveTarget(snap, ref)
	if err != nil {
		return nil, err
	}
	engine := promo.NewEngine(snap.Promotions(), snap, s.logg)
	return engine.FindApplicable(ctx, target, st, at), nil
}

func (s *Service) baseBreakdown(snap *catalog.Snapshot, ref TargetRef, zone enums.Zone, st enums.ServiceType, at time.Time) (*Breakdown, promo.Target, error) {
	target, err := resolveTarget(snap, ref)
	if err != nil {
		return nil, promo.Target{}, err
	}

	switch {
	case ref.VariantID != nil:
		variant := snap.Variant(*ref.VariantID)
		breakdown := &Breakdown{BasePrice: variant.Prices.For(zone, st)}
		if variant.SpecialOnDay(promo.ISOWeekday(at)) {
			// Per-cell fallback: only the configured override cell replaces
			// the base cell; an unset cell keeps the base price.
			if cell := variant.SpecialPrices.For(zone, st); cell != nil {
				special := *cell
				breakdown.SpecialPrice = &special
			}
		}
		return breakdown, target, nil

	case ref.ProductID != nil:
		product := snap.Product(*ref.ProductID)
		if product.HasVariants {
			return nil, promo.Target{}, pkgerrors.New(pkgerrors.CodeValidation, "product prices by variant; pass a variant id")
		}
		return &Breakdown{BasePrice: product.Prices.For(zone, st)}, target, nil

	case ref.ComboID != nil:
		combo := snap.Combo(*ref.ComboID)
		return &Breakdown{BasePrice: combo.Prices.For(zone, st)}, target, nil
	}

	return nil, promo.Target{}, pkgerrors.New(pkgerrors.CodeValidation, "target reference is empty")
}

func resolveTarget(snap *catalog.Snapshot, ref TargetRef) (promo.Target, error) {
	set := 0
	for _, present := range []bool{ref.ProductID != nil, ref.VariantID != nil, ref.ComboID != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return promo.Target{}, pkgerrors.New(pkgerrors.CodeValidation, "exactly one of product_id, variant_id, combo_id is required")
	}

	switch {
	case ref.VariantID != nil:
		return snap.TargetForVariant(*ref.VariantID)
	case ref.ProductID != nil:
		return snap.TargetForProduct(*ref.ProductID)
	default:
		return snap.TargetForCombo(*ref.ComboID)
	}
}

// applyItem computes the price after one promotion rule. A zone-scoped
// special price replaces the current price outright; a percentage discounts
// it at full precision, rounding half-up only at the end.
func applyItem(item models.PromotionItem, current types.Money, zone enums.Zone) (decimal.Decimal, bool) {
	if special := item.SpecialPriceFor(zone); special != nil {
		return special.Decimal, true
	}
	if item.DiscountPercent != nil {
		pct := decimal.NewFromFloat(*item.DiscountPercent)
		factor := decimal.NewFromInt(1).Sub(pct.Div(decimal.NewFromInt(100)))
		return current.Decimal.Mul(factor), true
	}
	return decimal.Decimal{}, false
}
