package controllers

import (
	"net/http"
	"strings"

	"github.com/saboresapp/sabores-backend/api/responses"
	"github.com/saboresapp/sabores-backend/api/validators"
	"github.com/saboresapp/sabores-backend/internal/catalog"
	"github.com/saboresapp/sabores-backend/internal/pricing"
	"github.com/saboresapp/sabores-backend/pkg/db/models"
	"github.com/saboresapp/sabores-backend/pkg/enums"
	pkgerrors "github.com/saboresapp/sabores-backend/pkg/errors"
	"github.com/saboresapp/sabores-backend/pkg/logger"
	"github.com/saboresapp/sabores-backend/pkg/types"
)

type applicableRuleResponse struct {
	PromotionID     string       `json:"promotion_id"`
	PromotionName   string       `json:"promotion_name"`
	PromotionType   string       `json:"promotion_type"`
	PromotionItemID string       `json:"promotion_item_id"`
	SpecialPrice    *types.Money `json:"special_price,omitempty"`
	DiscountPercent *float64     `json:"discount_percent,omitempty"`
}

// PromotionsApplicable lists the rules that would apply to one entity right
// now (or at the `at` override). Storefronts use it to badge menu items.
func PromotionsApplicable(catalogSvc catalog.Service, pricingSvc *pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalogSvc == nil || pricingSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "promotion service unavailable"))
			return
		}

		ref, err := targetRefFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		zone, err := validators.ParseZone(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		st, err := validators.ParseServiceType(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		at, err := validators.ParseAt(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := catalogSvc.Snapshot(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog unavailable"))
			return
		}

		items, err := pricingSvc.ApplicableItems(r.Context(), snap, ref, st, at)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rules := make([]applicableRuleResponse, 0, len(items))
		for _, item := range items {
			rules = append(rules, toApplicableRule(item, zone))
		}
		responses.WriteSuccess(w, map[string]any{
			"zone":         zone.String(),
			"service_type": st.String(),
			"at":           at,
			"rules":        rules,
		})
	}
}

func toApplicableRule(item models.PromotionItem, zone enums.Zone) applicableRuleResponse {
	rule := applicableRuleResponse{
		PromotionItemID: item.ID.String(),
		PromotionID:     item.PromotionID.String(),
		SpecialPrice:    item.SpecialPriceFor(zone),
		DiscountPercent: item.DiscountPercent,
	}
	if item.Promotion != nil {
		rule.PromotionName = item.Promotion.Name
		rule.PromotionType = item.Promotion.Type.String()
	}
	return rule
}

func targetRefFromQuery(r *http.Request) (pricing.TargetRef, error) {
	var ref pricing.TargetRef
	set := 0

	if raw := strings.TrimSpace(r.URL.Query().Get("product_id")); raw != "" {
		id, err := validators.ParseUUIDParam("product_id", raw)
		if err != nil {
			return pricing.TargetRef{}, err
		}
		ref.ProductID = &id
		set++
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("variant_id")); raw != "" {
		id, err := validators.ParseUUIDParam("variant_id", raw)
		if err != nil {
			return pricing.TargetRef{}, err
		}
		ref.VariantID = &id
		set++
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("combo_id")); raw != "" {
		id, err := validators.ParseUUIDParam("combo_id", raw)
		if err != nil {
			return pricing.TargetRef{}, err
		}
		ref.ComboID = &id
		set++
	}

	if set != 1 {
		return pricing.TargetRef{}, pkgerrors.New(pkgerrors.CodeValidation, "exactly one of product_id, variant_id, combo_id is required")
	}
	return ref, nil
}
