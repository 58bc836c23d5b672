package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a menu item. When HasVariants is set, pricing lives on the
// variants and the product's own price matrix must not be read.
type Product struct {
	ID                uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PrimaryCategoryID uuid.UUID        `gorm:"column:primary_category_id;type:uuid;not null"`
	Name              string           `gorm:"column:name;not null"`
	Slug              string           `gorm:"column:slug;uniqueIndex;not null"`
	Description       *string          `gorm:"column:description"`
	HasVariants       bool             `gorm:"column:has_variants;not null;default:false"`
	Prices            PriceSet         `gorm:"embedded;embeddedPrefix:price_"`
	IsActive          bool             `gorm:"column:is_active;not null;default:true;index"`
	SortOrder         int              `gorm:"column:sort_order;not null;default:0"`
	PrimaryCategory   *Category        `gorm:"foreignKey:PrimaryCategoryID"`
	Categories        []Category       `gorm:"many2many:product_categories"` // legacy many-to-many
	Variants          []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
