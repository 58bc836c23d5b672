package catalog

import (
	"github.com/saboresapp/sabores-backend/internal/promo"
	"github.com/saboresapp/sabores-backend/pkg/db/models"
	"github.com/saboresapp/sabores-backend/pkg/enums"
	pkgerrors "github.com/saboresapp/sabores-backend/pkg/errors"
)

// ValidatePromotionItem enforces the write-time shape of a promotion rule.
// The category argument is the rule's referenced category (or the target
// entity's primary category) and may be nil when neither could be resolved.
func ValidatePromotionItem(item models.PromotionItem, category *models.Category) error {
	if !item.TargetKind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "target kind is required")
	}

	hasTarget := item.TargetID != nil
	hasVariant := item.VariantID != nil
	hasCategory := item.CategoryID != nil

	// Exactly one reference shape: a category, or a concrete entity
	// (variant optionally alongside its product id).
	switch {
	case hasCategory && (hasTarget || hasVariant):
		return pkgerrors.New(pkgerrors.CodeValidation, "category rules cannot also reference an entity")
	case !hasCategory && !hasTarget && !hasVariant:
		return pkgerrors.New(pkgerrors.CodeValidation, "rule references no entity or category")
	case hasVariant && item.TargetKind != enums.TargetKindProduct:
		return pkgerrors.New(pkgerrors.CodeValidation, "variant rules must target products")
	}

	if category != nil {
		comboExpected := item.TargetKind == enums.TargetKindCombo
		if category.IsComboCategory != comboExpected {
			return pkgerrors.New(pkgerrors.CodeAmbiguousReference, "target kind disagrees with category").
				WithDetails(map[string]any{
					"target_kind":       item.TargetKind.String(),
					"category_id":       category.ID.String(),
					"is_combo_category": category.IsComboCategory,
				})
		}
	}

	if item.DiscountPercent != nil {
		if *item.DiscountPercent <= 0 || *item.DiscountPercent > 100 {
			return pkgerrors.New(pkgerrors.CodeValidation, "discount percent must be in (0, 100]")
		}
		if item.SpecialPriceCapital != nil || item.SpecialPriceInterior != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "rule carries both a special price and a percentage")
		}
	}

	if item.ServiceFilter != nil && !item.ServiceFilter.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown service filter")
	}

	return promo.ValidateRule(promo.RuleFromItem(item))
}
