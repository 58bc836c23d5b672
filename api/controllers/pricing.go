package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saboresapp/sabores-backend/api/responses"
	"github.com/saboresapp/sabores-backend/api/validators"
	"github.com/saboresapp/sabores-backend/internal/catalog"
	combosvc "github.com/saboresapp/sabores-backend/internal/combo"
	"github.com/saboresapp/sabores-backend/internal/pricing"
	"github.com/saboresapp/sabores-backend/pkg/enums"
	pkgerrors "github.com/saboresapp/sabores-backend/pkg/errors"
	"github.com/saboresapp/sabores-backend/pkg/logger"
	"github.com/saboresapp/sabores-backend/pkg/metrics"
	"github.com/saboresapp/sabores-backend/pkg/types"
)

type quoteLineRequest struct {
	ProductID  *string           `json:"product_id,omitempty" validate:"omitempty,uuid"`
	VariantID  *string           `json:"variant_id,omitempty" validate:"omitempty,uuid"`
	ComboID    *string           `json:"combo_id,omitempty" validate:"omitempty,uuid"`
	Quantity   int               `json:"quantity" validate:"required,min=1,max=99"`
	Selections map[string]string `json:"selections,omitempty"`
}

type quoteRequest struct {
	Zone        string             `json:"zone" validate:"omitempty,oneof=capital interior"`
	ServiceType string             `json:"service_type" validate:"omitempty,oneof=pickup delivery"`
	At          *string            `json:"at,omitempty"`
	Lines       []quoteLineRequest `json:"lines" validate:"required,min=1,max=50,dive"`
}

type quoteLineResponse struct {
	Breakdown pricing.Breakdown `json:"breakdown"`
	Quantity  int               `json:"quantity"`
	LineTotal types.Money       `json:"line_total"`
}

type quoteResponse struct {
	Zone        string              `json:"zone"`
	ServiceType string              `json:"service_type"`
	At          time.Time           `json:"at"`
	Lines       []quoteLineResponse `json:"lines"`
	Total       types.Money         `json:"total"`
}

// PricingQuote prices a basket of lines against the current catalog snapshot.
func PricingQuote(catalogSvc catalog.Service, pricingSvc *pricing.Service, m *metrics.PricingMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalogSvc == nil || pricingSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		var payload quoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		zone, st, at, err := quoteScope(payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := catalogSvc.Snapshot(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog unavailable"))
			return
		}

		resp := quoteResponse{
			Zone:        zone.String(),
			ServiceType: st.String(),
			At:          at,
			Lines:       make([]quoteLineResponse, 0, len(payload.Lines)),
		}
		total := types.Money{}

		for i, line := range payload.Lines {
			start := time.Now()
			priced, kind, err := priceLine(r, snap, pricingSvc, line, zone, st, at)
			m.ObserveQuoteDuration(kind, time.Since(start))
			if err != nil {
				m.IncQuote(kind, "error")
				responses.WriteError(r.Context(), logg, w,
					wrapLineError(err, i))
				return
			}
			m.IncQuote(kind, "ok")
			if priced.Breakdown.AppliedPromotion != nil {
				m.IncPromotionApplied(priced.Breakdown.AppliedPromotion.Type.String())
			}

			resp.Lines = append(resp.Lines, *priced)
			total = types.NewMoney(total.Decimal.Add(priced.LineTotal.Decimal))
		}

		resp.Total = total
		responses.WriteSuccess(w, resp)
	}
}

func quoteScope(payload quoteRequest) (enums.Zone, enums.ServiceType, time.Time, error) {
	zone := enums.ZoneCapital
	if payload.Zone != "" {
		parsed, err := enums.ParseZone(payload.Zone)
		if err != nil {
			return "", "", time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown zone")
		}
		zone = parsed
	}
	st := enums.ServiceTypePickup
	if payload.ServiceType != "" {
		parsed, err := enums.ParseServiceType(payload.ServiceType)
		if err != nil {
			return "", "", time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown service type")
		}
		st = parsed
	}
	at := time.Now()
	if payload.At != nil {
		parsed, err := time.Parse(time.RFC3339, *payload.At)
		if err != nil {
			return "", "", time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "at must be an RFC3339 timestamp")
		}
		at = parsed
	}
	return zone, st, at, nil
}

func priceLine(r *http.Request, snap *catalog.Snapshot, pricingSvc *pricing.Service, line quoteLineRequest, zone enums.Zone, st enums.ServiceType, at time.Time) (*quoteLineResponse, string, error) {
	ref, kind, err := lineTarget(line)
	if err != nil {
		return nil, kind, err
	}

	// Combo lines expand before pricing so selection problems surface with
	// their specific codes instead of a generic failure.
	if ref.ComboID != nil {
		combo := snap.Combo(*ref.ComboID)
		if combo == nil {
			return nil, kind, pkgerrors.New(pkgerrors.CodeNotFound, "combo not found")
		}
		selections, err := parseSelections(line.Selections)
		if err != nil {
			return nil, kind, err
		}
		if _, err := combosvc.ExpandChoiceGroups(combo, selections, snap); err != nil {
			return nil, kind, err
		}
	}

	breakdown, err := pricingSvc.PriceFor(r.Context(), snap, ref, zone, st, at)
	if err != nil {
		return nil, kind, err
	}

	lineTotal := types.NewMoney(breakdown.Final().Decimal.Mul(decimal.NewFromInt(int64(line.Quantity))))
	return &quoteLineResponse{
		Breakdown: *breakdown,
		Quantity:  line.Quantity,
		LineTotal: lineTotal,
	}, kind, nil
}

func lineTarget(line quoteLineRequest) (pricing.TargetRef, string, error) {
	set := 0
	for _, present := range []bool{line.ProductID != nil, line.VariantID != nil, line.ComboID != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return pricing.TargetRef{}, "unknown", pkgerrors.New(pkgerrors.CodeValidation, "each line references exactly one of product_id, variant_id, combo_id")
	}

	switch {
	case line.VariantID != nil:
		id, err := validators.ParseUUIDParam("variant_id", *line.VariantID)
		if err != nil {
			return pricing.TargetRef{}, "variant", err
		}
		return pricing.TargetRef{VariantID: &id}, "variant", nil
	case line.ProductID != nil:
		id, err := validators.ParseUUIDParam("product_id", *line.ProductID)
		if err != nil {
			return pricing.TargetRef{}, "product", err
		}
		return pricing.TargetRef{ProductID: &id}, "product", nil
	default:
		id, err := validators.ParseUUIDParam("combo_id", *line.ComboID)
		if err != nil {
			return pricing.TargetRef{}, "combo", err
		}
		return pricing.TargetRef{ComboID: &id}, "combo", nil
	}
}

func parseSelections(raw map[string]string) (combosvc.Selection, error) {
	selections := combosvc.Selection{}
	for itemID, optionID := range raw {
		item, err := uuid.Parse(itemID)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "selection keys must be combo item uuids")
		}
		option, err := uuid.Parse(optionID)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "selection values must be option uuids")
		}
		selections[item] = option
	}
	return selections, nil
}

func wrapLineError(err error, index int) error {
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "pricing line failed").WithDetails(map[string]any{"line": index})
}
