package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/saboresapp/sabores-backend/pkg/enums"
)

// Promotion is a named offer. Its own window fields are a coarse gate that is
// evaluated in addition to each item's independent validity window; both must
// pass for an item to apply.
type Promotion struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string              `gorm:"column:name;not null"`
	Type        enums.PromotionType `gorm:"column:type;not null"`
	IsActive    bool                `gorm:"column:is_active;not null;default:true;index"`
	IsPermanent bool                `gorm:"column:is_permanent;not null;default:false"`
	StartsOn    *time.Time          `gorm:"column:starts_on;type:date"`
	EndsOn      *time.Time          `gorm:"column:ends_on;type:date"`
	TimeFrom    *string             `gorm:"column:time_from;type:varchar(8)"` // HH:MM:SS
	TimeUntil   *string             `gorm:"column:time_until;type:varchar(8)"`
	Weekdays    pq.Int64Array       `gorm:"column:weekdays;type:integer[]"` // ISO 1..7
	Items       []PromotionItem     `gorm:"foreignKey:PromotionID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt   gorm.DeletedAt      `gorm:"column:deleted_at;index"`
}
