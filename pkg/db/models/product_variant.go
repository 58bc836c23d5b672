package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ProductVariant is a sellable size/preparation of a product. The daily
// special override applies only on the configured ISO weekdays (1=Monday
// through 7=Sunday) and only while IsDailySpecial is set; unset override
// cells fall back to the base matrix cell by cell.
type ProductVariant struct {
	ID               uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID        uuid.UUID        `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_variant_product_sku"`
	SKU              string           `gorm:"column:sku;not null;uniqueIndex:idx_variant_product_sku"`
	Size             string           `gorm:"column:size;not null"`
	Prices           PriceSet         `gorm:"embedded;embeddedPrefix:price_"`
	IsDailySpecial   bool             `gorm:"column:is_daily_special;not null;default:false"`
	DailySpecialDays pq.Int64Array    `gorm:"column:daily_special_days;type:integer[]"`
	SpecialPrices    PriceOverrideSet `gorm:"embedded;embeddedPrefix:special_price_"`
	IsActive         bool             `gorm:"column:is_active;not null;default:true;index"`
	SortOrder        int              `gorm:"column:sort_order;not null;default:0"`
	Product          *Product         `gorm:"foreignKey:ProductID"`
	CreatedAt        time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time        `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt        gorm.DeletedAt   `gorm:"column:deleted_at;index"`
}

// SpecialOnDay reports whether the daily special is configured for the given
// ISO weekday.
func (v ProductVariant) SpecialOnDay(isoWeekday int) bool {
	if !v.IsDailySpecial {
		return false
	}
	for _, day := range v.DailySpecialDays {
		if int(day) == isoWeekday {
			return true
		}
	}
	return false
}
