package promo

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saboresapp/sabores-backend/pkg/db/models"
	"github.com/saboresapp/sabores-backend/pkg/enums"
	"github.com/saboresapp/sabores-backend/pkg/logger"
)

// stubIndex is an EntityIndex over explicit maps; absent ids are inactive.
type stubIndex struct {
	products map[uuid.UUID]bool
	combos   map[uuid.UUID]bool
	variants map[uuid.UUID]bool
}

func (s stubIndex) ProductActive(id uuid.UUID) bool { return s.products[id] }
func (s stubIndex) ComboActive(id uuid.UUID) bool   { return s.combos[id] }
func (s stubIndex) VariantActive(id uuid.UUID) bool { return s.variants[id] }

var (
	productID  = uuid.MustParse("10000000-0000-0000-0000-000000000001")
	variantID  = uuid.MustParse("10000000-0000-0000-0000-000000000002")
	comboID    = uuid.MustParse("10000000-0000-0000-0000-000000000003")
	categoryID = uuid.MustParse("10000000-0000-0000-0000-000000000004")
)

func activeIndex() stubIndex {
	return stubIndex{
		products: map[uuid.UUID]bool{productID: true},
		combos:   map[uuid.UUID]bool{comboID: true},
		variants: map[uuid.UUID]bool{variantID: true},
	}
}

func productTarget() Target {
	return Target{Kind: enums.TargetKindProduct, EntityID: productID, CategoryIDs: []uuid.UUID{categoryID}}
}

func engineLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "promo-test", Output: io.Discard})
}

func activePromotion(items ...models.PromotionItem) models.Promotion {
	id := uuid.New()
	for i := range items {
		items[i].PromotionID = id
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	return models.Promotion{
		ID:          id,
		Name:        "promo",
		Type:        enums.PromotionTypePercentage,
		IsActive:    true,
		IsPermanent: true,
		Items:       items,
	}
}

func TestFindApplicableMatchesByReference(t *testing.T) {
	at := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		item   models.PromotionItem
		target Target
		want   bool
	}{
		{
			"product by target id",
			models.PromotionItem{TargetKind: enums.TargetKindProduct, TargetID: &productID},
			productTarget(),
			true,
		},
		{
			"variant pin",
			models.PromotionItem{TargetKind: enums.TargetKindProduct, TargetID: &productID, VariantID: &variantID},
			Target{Kind: enums.TargetKindProduct, EntityID: productID, VariantID: &variantID, CategoryIDs: []uuid.UUID{categoryID}},
			true,
		},
		{
			"category membership",
			models.PromotionItem{TargetKind: enums.TargetKindProduct, CategoryID: &categoryID},
			productTarget(),
			true,
		},
		{
			"combo by target id",
			models.PromotionItem{TargetKind: enums.TargetKindCombo, TargetID: &comboID},
			Target{Kind: enums.TargetKindCombo, EntityID: comboID},
			true,
		},
		{
			"kind mismatch never matches",
			models.PromotionItem{TargetKind: enums.TargetKindCombo, TargetID: &productID},
			productTarget(),
			false,
		},
		{
			"different category",
			models.PromotionItem{TargetKind: enums.TargetKindProduct, CategoryID: &comboID},
			productTarget(),
			false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine := NewEngine([]models.Promotion{activePromotion(tc.item)}, activeIndex(), engineLogger())
			items := engine.FindApplicable(context.Background(), tc.target, enums.ServiceTypePickup, at)
			if tc.want {
				require.Len(t, items, 1)
				assert.NotNil(t, items[0].Promotion, "result carries its parent promotion")
			} else {
				assert.Empty(t, items)
			}
		})
	}
}

func TestFindApplicableSkipsInactiveEntities(t *testing.T) {
	at := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	promotion := activePromotion(models.PromotionItem{TargetKind: enums.TargetKindProduct, TargetID: &productID})

	t.Run("inactive product", func(t *testing.T) {
		index := activeIndex()
		index.products[productID] = false
		engine := NewEngine([]models.Promotion{promotion}, index, engineLogger())
		assert.Empty(t, engine.FindApplicable(context.Background(), productTarget(), enums.ServiceTypePickup, at))
	})

	t.Run("inactive variant on an active product", func(t *testing.T) {
		index := activeIndex()
		index.variants[variantID] = false
		engine := NewEngine([]models.Promotion{promotion}, index, engineLogger())
		target := productTarget()
		target.VariantID = &variantID
		assert.Empty(t, engine.FindApplicable(context.Background(), target, enums.ServiceTypePickup, at))
	})
}

func TestFindApplicableDualGate(t *testing.T) {
	// Promotion window says Tuesday only; the item window says evenings only.
	// Both must pass.
	startsOn := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	endsOn := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	timeRange := enums.ValidityTypeTimeRange
	from, until := "18:00:00", "22:00:00"

	promotion := activePromotion(models.PromotionItem{
		TargetKind:   enums.TargetKindProduct,
		TargetID:     &productID,
		ValidityType: &timeRange,
		TimeFrom:     &from,
		TimeUntil:    &until,
	})
	promotion.IsPermanent = false
	promotion.StartsOn = &startsOn
	promotion.EndsOn = &endsOn
	promotion.Weekdays = []int64{2}

	engine := NewEngine([]models.Promotion{promotion}, activeIndex(), engineLogger())
	find := func(at time.Time) []models.PromotionItem {
		return engine.FindApplicable(context.Background(), productTarget(), enums.ServiceTypePickup, at)
	}

	assert.Len(t, find(time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC)), 1, "tuesday evening")
	assert.Empty(t, find(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)), "tuesday noon fails the item gate")
	assert.Empty(t, find(time.Date(2026, 9, 2, 19, 0, 0, 0, time.UTC)), "wednesday evening fails the promotion gate")
	assert.Empty(t, find(time.Date(2026, 10, 6, 19, 0, 0, 0, time.UTC)), "tuesday after ends_on")
}

func TestFindApplicableOneSidedPromotionBounds(t *testing.T) {
	endsOn := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	promotion := activePromotion(models.PromotionItem{TargetKind: enums.TargetKindProduct, TargetID: &productID})
	promotion.IsPermanent = false
	promotion.EndsOn = &endsOn

	engine := NewEngine([]models.Promotion{promotion}, activeIndex(), engineLogger())

	assert.Len(t, engine.FindApplicable(context.Background(), productTarget(), enums.ServiceTypePickup,
		time.Date(2026, 9, 15, 23, 0, 0, 0, time.UTC)), 1, "last day inclusive")
	assert.Empty(t, engine.FindApplicable(context.Background(), productTarget(), enums.ServiceTypePickup,
		time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)))
}

func TestFindApplicableServiceFilter(t *testing.T) {
	at := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	pickupOnly := enums.ServiceFilterPickupOnly
	promotion := activePromotion(models.PromotionItem{
		TargetKind:    enums.TargetKindProduct,
		TargetID:      &productID,
		ServiceFilter: &pickupOnly,
	})
	engine := NewEngine([]models.Promotion{promotion}, activeIndex(), engineLogger())

	assert.Len(t, engine.FindApplicable(context.Background(), productTarget(), enums.ServiceTypePickup, at), 1)
	assert.Empty(t, engine.FindApplicable(context.Background(), productTarget(), enums.ServiceTypeDelivery, at))
}

func TestFindApplicableSkipsMalformedRules(t *testing.T) {
	at := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	weekdays := enums.ValidityTypeWeekdays
	promotion := activePromotion(
		models.PromotionItem{TargetKind: enums.TargetKindProduct, TargetID: &productID, ValidityType: &weekdays}, // no weekdays
		models.PromotionItem{TargetKind: enums.TargetKindProduct, TargetID: &productID},
	)
	engine := NewEngine([]models.Promotion{promotion}, activeIndex(), engineLogger())

	items := engine.FindApplicable(context.Background(), productTarget(), enums.ServiceTypePickup, at)
	require.Len(t, items, 1, "the malformed rule is skipped, the healthy one survives")
	assert.Nil(t, items[0].ValidityType)
}

func TestFindApplicableInactivePromotion(t *testing.T) {
	at := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	promotion := activePromotion(models.PromotionItem{TargetKind: enums.TargetKindProduct, TargetID: &productID})
	promotion.IsActive = false

	engine := NewEngine([]models.Promotion{promotion}, activeIndex(), engineLogger())
	assert.Empty(t, engine.FindApplicable(context.Background(), productTarget(), enums.ServiceTypePickup, at))
}
