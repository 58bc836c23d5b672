package models

import (
	"github.com/saboresapp/sabores-backend/pkg/enums"
	"github.com/saboresapp/sabores-backend/pkg/types"
)

// PriceSet is the four-way (zone x service type) price matrix carried by
// products, variants, and combos. Embedded with a per-owner column prefix.
type PriceSet struct {
	PickupCapital    types.Money `gorm:"column:pickup_capital;type:numeric(20,2);not null;default:0" json:"pickup_capital"`
	DeliveryCapital  types.Money `gorm:"column:delivery_capital;type:numeric(20,2);not null;default:0" json:"delivery_capital"`
	PickupInterior   types.Money `gorm:"column:pickup_interior;type:numeric(20,2);not null;default:0" json:"pickup_interior"`
	DeliveryInterior types.Money `gorm:"column:delivery_interior;type:numeric(20,2);not null;default:0" json:"delivery_interior"`
}

// For selects the price for the requested zone and service type.
func (p PriceSet) For(zone enums.Zone, st enums.ServiceType) types.Money {
	switch {
	case zone == enums.ZoneCapital && st == enums.ServiceTypePickup:
		return p.PickupCapital
	case zone == enums.ZoneCapital && st == enums.ServiceTypeDelivery:
		return p.DeliveryCapital
	case zone == enums.ZoneInterior && st == enums.ServiceTypePickup:
		return p.PickupInterior
	default:
		return p.DeliveryInterior
	}
}

// PriceOverrideSet mirrors PriceSet with every cell optional. Used for the
// daily-special override on variants, where an unset cell falls back to the
// base price for that cell only.
type PriceOverrideSet struct {
	PickupCapital    *types.Money `gorm:"column:pickup_capital;type:numeric(20,2)" json:"pickup_capital,omitempty"`
	DeliveryCapital  *types.Money `gorm:"column:delivery_capital;type:numeric(20,2)" json:"delivery_capital,omitempty"`
	PickupInterior   *types.Money `gorm:"column:pickup_interior;type:numeric(20,2)" json:"pickup_interior,omitempty"`
	DeliveryInterior *types.Money `gorm:"column:delivery_interior;type:numeric(20,2)" json:"delivery_interior,omitempty"`
}

// For selects the override for the requested zone and service type, or nil
// when that cell is not configured.
func (p PriceOverrideSet) For(zone enums.Zone, st enums.ServiceType) *types.Money {
	switch {
	case zone == enums.ZoneCapital && st == enums.ServiceTypePickup:
		return p.PickupCapital
	case zone == enums.ZoneCapital && st == enums.ServiceTypeDelivery:
		return p.DeliveryCapital
	case zone == enums.ZoneInterior && st == enums.ServiceTypePickup:
		return p.PickupInterior
	default:
		return p.DeliveryInterior
	}
}
