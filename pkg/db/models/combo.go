package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Combo is a flat-priced bundle. Item and option prices are informational;
// the combo's own matrix is the only thing the resolver charges.
type Combo struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID uuid.UUID      `gorm:"column:category_id;type:uuid;not null"`
	Name       string         `gorm:"column:name;not null"`
	Slug       string         `gorm:"column:slug;uniqueIndex;not null"`
	Prices     PriceSet       `gorm:"embedded;embeddedPrefix:price_"`
	IsActive   bool           `gorm:"column:is_active;not null;default:true;index"`
	SortOrder  int            `gorm:"column:sort_order;not null;default:0"`
	Category   *Category      `gorm:"foreignKey:CategoryID"`
	Items      []ComboItem    `gorm:"foreignKey:ComboID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index"`
}
