package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products or combos. The IsComboCategory flag is load-bearing
// for legacy data imports: historical promotion rows disambiguated their target
// id through it. New rows persist an explicit target kind instead, and admin
// validation rejects writes where the two disagree.
type Category struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string    `gorm:"column:name;not null"`
	Slug            string    `gorm:"column:slug;uniqueIndex;not null"`
	IsComboCategory bool      `gorm:"column:is_combo_category;not null;default:false"`
	IsActive        bool      `gorm:"column:is_active;not null;default:true"`
	SortOrder       int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
