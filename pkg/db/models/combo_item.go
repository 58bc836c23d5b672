package models

import (
	"time"

	"github.com/google/uuid"
)

// ComboItem is one slot of a combo. Exactly one of the two shapes is
// populated: a fixed product reference (ProductID, optional VariantID), or a
// choice group carrying options. A ProductID on a choice-group row is a
// legacy default and is never used for pricing or availability.
type ComboItem struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ComboID       uuid.UUID         `gorm:"column:combo_id;type:uuid;not null;index"`
	Position      int               `gorm:"column:position;not null;default:0"`
	Quantity      int               `gorm:"column:quantity;not null;default:1"`
	IsChoiceGroup bool              `gorm:"column:is_choice_group;not null;default:false"`
	ChoiceLabel   *string           `gorm:"column:choice_label"`
	ProductID     *uuid.UUID        `gorm:"column:product_id;type:uuid"`
	VariantID     *uuid.UUID        `gorm:"column:variant_id;type:uuid"`
	Options       []ComboItemOption `gorm:"foreignKey:ComboItemID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// ComboItemOption is one selectable product within a choice group.
type ComboItemOption struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ComboItemID uuid.UUID  `gorm:"column:combo_item_id;type:uuid;not null;index"`
	Position    int        `gorm:"column:position;not null;default:0"`
	ProductID   uuid.UUID  `gorm:"column:product_id;type:uuid;not null"`
	VariantID   *uuid.UUID `gorm:"column:variant_id;type:uuid"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
}
