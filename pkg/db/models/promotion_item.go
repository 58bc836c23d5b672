package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/saboresapp/sabores-backend/pkg/enums"
	"github.com/saboresapp/sabores-backend/pkg/types"
)

// PromotionItem is a single applicability rule. It references exactly one of
// {category, product-or-combo (TargetID + TargetKind), variant alongside its
// product}, carries its own validity window independent of the parent
// promotion, an optional service-type filter, and either per-zone special
// prices or a percentage discount.
type PromotionItem struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PromotionID uuid.UUID        `gorm:"column:promotion_id;type:uuid;not null;index"`
	TargetKind  enums.TargetKind `gorm:"column:target_kind;not null"`
	TargetID    *uuid.UUID       `gorm:"column:target_id;type:uuid"` // Product.ID or Combo.ID per TargetKind
	VariantID   *uuid.UUID       `gorm:"column:variant_id;type:uuid"`
	CategoryID  *uuid.UUID       `gorm:"column:category_id;type:uuid"`

	ValidityType *enums.ValidityType `gorm:"column:validity_type"` // NULL means unconditionally valid
	ValidFrom    *time.Time          `gorm:"column:valid_from;type:date"`
	ValidUntil   *time.Time          `gorm:"column:valid_until;type:date"`
	TimeFrom     *string             `gorm:"column:time_from;type:varchar(8)"` // HH:MM:SS
	TimeUntil    *string             `gorm:"column:time_until;type:varchar(8)"`
	Weekdays     pq.Int64Array       `gorm:"column:weekdays;type:integer[]"` // ISO 1..7

	ServiceFilter        *enums.ServiceFilter `gorm:"column:service_filter"`
	SpecialPriceCapital  *types.Money         `gorm:"column:special_price_capital;type:numeric(20,2)"`
	SpecialPriceInterior *types.Money         `gorm:"column:special_price_interior;type:numeric(20,2)"`
	DiscountPercent      *float64             `gorm:"column:discount_percent;type:numeric(5,2)"`

	Promotion *Promotion `gorm:"foreignKey:PromotionID"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// SpecialPriceFor returns the zone-scoped replacement price, or nil when the
// item discounts by percentage (or not at all) for that zone.
func (i PromotionItem) SpecialPriceFor(zone enums.Zone) *types.Money {
	if zone == enums.ZoneCapital {
		return i.SpecialPriceCapital
	}
	return i.SpecialPriceInterior
}
