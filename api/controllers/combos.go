package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saboresapp/sabores-backend/api/responses"
	"github.com/saboresapp/sabores-backend/api/validators"
	"github.com/saboresapp/sabores-backend/internal/catalog"
	combosvc "github.com/saboresapp/sabores-backend/internal/combo"
	pkgerrors "github.com/saboresapp/sabores-backend/pkg/errors"
	"github.com/saboresapp/sabores-backend/pkg/logger"
	"github.com/saboresapp/sabores-backend/pkg/types"
)

type comboPriceResponse struct {
	ComboID     string      `json:"combo_id"`
	Zone        string      `json:"zone"`
	ServiceType string      `json:"service_type"`
	Price       types.Money `json:"price"`
	Available   bool        `json:"available"`
}

// ComboPrice returns the flat bundle price for one combo along with its
// conservative availability flag.
func ComboPrice(catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalogSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "combo service unavailable"))
			return
		}

		comboID, err := validators.ParseUUIDParam("comboId", chi.URLParam(r, "comboId"))
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

		snap, err := catalogSvc.Snapshot(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog unavailable"))
			return
		}

		combo := snap.Combo(comboID)
		if combo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "combo not found"))
			return
		}

		responses.WriteSuccess(w, comboPriceResponse{
			ComboID:     combo.ID.String(),
			Zone:        zone.String(),
			ServiceType: st.String(),
			Price:       combosvc.ResolvePrice(combo, zone, st),
			Available:   combosvc.IsAvailable(combo, snap),
		})
	}
}
