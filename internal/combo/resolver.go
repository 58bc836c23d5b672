package combo

import (
	"github.com/google/uuid"

	"github.com/saboresapp/sabores-backend/pkg/db/models"
	"github.com/saboresapp/sabores-backend/pkg/enums"
	pkgerrors "github.com/saboresapp/sabores-backend/pkg/errors"
	"github.com/saboresapp/sabores-backend/pkg/types"
)

// CatalogView is the activity lookup the resolver needs from a snapshot.
type CatalogView interface {
	ProductActive(id uuid.UUID) bool
}

// Selection maps a choice-group combo item id to the chosen option id. The
// resolver never invents a default: a combo with unresolved choice groups
// cannot be expanded without caller input (typically the cart line's stored
// picks).
type Selection map[uuid.UUID]uuid.UUID

// ResolvedLine is one concrete row of an expanded combo: the slot, the chosen
// option when the slot was a choice group, and the product/variant that ends
// up on the ticket.
type ResolvedLine struct {
	Item      models.ComboItem
	Option    *models.ComboItemOption
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Quantity  int
}

// ResolvePrice returns the combo's flat bundle price for the zone and service
// type. Item-level prices are display-only and never summed.
func ResolvePrice(combo *models.Combo, zone enums.Zone, st enums.ServiceType) types.Money {
	return combo.Prices.For(zone, st)
}

// IsAvailable reports whether the combo can currently be sold. The policy is
// deliberately conservative: one inactive referenced product anywhere in the
// combo, fixed slot or selectable option, blocks the whole bundle.
func IsAvailable(combo *models.Combo, view CatalogView) bool {
	if !combo.IsActive {
		return false
	}
	for _, item := range combo.Items {
		if item.IsChoiceGroup {
			for _, option := range item.Options {
				if !view.ProductActive(option.ProductID) {
					return false
				}
			}
			continue
		}
		if item.ProductID != nil && !view.ProductActive(*item.ProductID) {
			return false
		}
	}
	return true
}

// ExpandChoiceGroups turns the combo's slots into concrete lines using the
// caller-supplied selections. Fixed slots expand as-is; each choice group
// requires a selection naming one of its options.
func ExpandChoiceGroups(combo *models.Combo, selections Selection, view CatalogView) ([]ResolvedLine, error) {
	lines := make([]ResolvedLine, 0, len(combo.Items))

	for _, item := range combo.Items {
		if !item.IsChoiceGroup {
			if item.ProductID == nil {
				return nil, pkgerrors.New(pkgerrors.CodeInvalidRule, "fixed combo item has no product").
					WithDetails(map[string]any{"combo_item_id": item.ID.String()})
			}
			if !view.ProductActive(*item.ProductID) {
				return nil, unavailable(item.ID, *item.ProductID)
			}
			lines = append(lines, ResolvedLine{
				Item:      item,
				ProductID: *item.ProductID,
				VariantID: item.VariantID,
				Quantity:  quantityOf(item),
			})
			continue
		}

		chosenID, ok := selections[item.ID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeMissingSelection, "choice group requires a selection").
				WithDetails(map[string]any{
					"combo_item_id": item.ID.String(),
					"choice_label":  labelOf(item),
				})
		}

		option := findOption(item, chosenID)
		if option == nil {
			return nil, pkgerrors.New(pkgerrors.CodeMissingSelection, "selection does not match any option of this choice group").
				WithDetails(map[string]any{
					"combo_item_id": item.ID.String(),
					"option_id":     chosenID.String(),
				})
		}
		if !view.ProductActive(option.ProductID) {
			return nil, unavailable(item.ID, option.ProductID)
		}

		lines = append(lines, ResolvedLine{
			Item:      item,
			Option:    option,
			ProductID: option.ProductID,
			VariantID: option.VariantID,
			Quantity:  quantityOf(item),
		})
	}

	return lines, nil
}

func unavailable(itemID, productID uuid.UUID) error {
	return pkgerrors.New(pkgerrors.CodeUnavailableSelection, "referenced product is inactive").
		WithDetails(map[string]any{
			"combo_item_id": itemID.String(),
			"product_id":    productID.String(),
		})
}

func findOption(item models.ComboItem, optionID uuid.UUID) *models.ComboItemOption {
	for i := range item.Options {
		if item.Options[i].ID == optionID {
			return &item.Options[i]
		}
	}
	return nil
}

func quantityOf(item models.ComboItem) int {
	if item.Quantity <= 0 {
		return 1
	}
	return item.Quantity
}

func labelOf(item models.ComboItem) string {
	if item.ChoiceLabel == nil {
		return ""
	}
	return *item.ChoiceLabel
}
