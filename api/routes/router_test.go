package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saboresapp/sabores-backend/internal/catalog"
	"github.com/saboresapp/sabores-backend/internal/pricing"
	"github.com/saboresapp/sabores-backend/pkg/config"
	"github.com/saboresapp/sabores-backend/pkg/db/models"
	"github.com/saboresapp/sabores-backend/pkg/enums"
	"github.com/saboresapp/sabores-backend/pkg/logger"
	"github.com/saboresapp/sabores-backend/pkg/metrics"
	"github.com/saboresapp/sabores-backend/pkg/types"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubCatalogService struct {
	snap *catalog.Snapshot
}

func (s stubCatalogService) Snapshot(context.Context) (*catalog.Snapshot, error) {
	return s.snap, nil
}

var (
	routerCategoryID = uuid.MustParse("30000000-0000-0000-0000-000000000001")
	routerComboCatID = uuid.MustParse("30000000-0000-0000-0000-000000000002")
	routerProductID  = uuid.MustParse("30000000-0000-0000-0000-000000000003")
	routerComboID    = uuid.MustParse("30000000-0000-0000-0000-000000000004")
	routerSideID     = uuid.MustParse("30000000-0000-0000-0000-000000000005")
	routerSlotID     = uuid.MustParse("30000000-0000-0000-0000-000000000006")
	routerOptionID   = uuid.MustParse("30000000-0000-0000-0000-000000000007")
)

func routerSnapshot() *catalog.Snapshot {
	flat := func(value string) models.PriceSet {
		m := types.MustMoney(value)
		return models.PriceSet{PickupCapital: m, DeliveryCapital: m, PickupInterior: m, DeliveryInterior: m}
	}
	label := "Side"

	percent := 10.0
	promotionID := uuid.New()
	promotion := models.Promotion{
		ID:          promotionID,
		Name:        "Siempre",
		Type:        enums.PromotionTypePercentage,
		IsActive:    true,
		IsPermanent: true,
		Items: []models.PromotionItem{{
			ID:              uuid.New(),
			PromotionID:     promotionID,
			TargetKind:      enums.TargetKindProduct,
			TargetID:        &routerProductID,
			DiscountPercent: &percent,
		}},
	}

	return catalog.NewSnapshot(
		[]models.Category{
			{ID: routerCategoryID, Name: "Mains", Slug: "mains", IsActive: true},
			{ID: routerComboCatID, Name: "Combos", Slug: "combos", IsComboCategory: true, IsActive: true},
		},
		[]models.Product{
			{ID: routerProductID, PrimaryCategoryID: routerCategoryID, Name: "Lomito", Slug: "lomito", Prices: flat("50.00"), IsActive: true},
			{ID: routerSideID, PrimaryCategoryID: routerCategoryID, Name: "Fries", Slug: "fries", Prices: flat("10.00"), IsActive: true},
		},
		[]models.Combo{{
			ID:         routerComboID,
			CategoryID: routerComboCatID,
			Name:       "Familiar",
			Slug:       "familiar",
			Prices:     flat("120.00"),
			IsActive:   true,
			Items: []models.ComboItem{{
				ID:            routerSlotID,
				ComboID:       routerComboID,
				Quantity:      1,
				IsChoiceGroup: true,
				ChoiceLabel:   &label,
				Options: []models.ComboItemOption{{
					ID:          routerOptionID,
					ComboItemID: routerSlotID,
					ProductID:   routerSideID,
				}},
			}},
		}},
		[]models.Promotion{promotion},
		time.Now(),
	)
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Env = config.AppEnvDev

	logg := logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard})
	registry := prometheus.NewRegistry()

	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		nil,
		registry,
		metrics.NewPricingMetrics(registry),
		stubCatalogService{snap: routerSnapshot()},
		pricing.NewService(logg),
	)
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestPricingQuoteEndpoint(t *testing.T) {
	router := newTestRouter(t)

	body := fmt.Sprintf(`{
		"zone": "capital",
		"service_type": "pickup",
		"lines": [{"product_id": %q, "quantity": 2}]
	}`, routerProductID)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/quote", strings.NewReader(body))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope struct {
		Data struct {
			Total string `json:"total"`
			Lines []struct {
				LineTotal string `json:"line_total"`
				Breakdown struct {
					BasePrice        string  `json:"base_price"`
					DiscountedPrice  *string `json:"discounted_price"`
					AppliedPromotion *struct {
						Name string `json:"name"`
					} `json:"applied_promotion"`
				} `json:"breakdown"`
			} `json:"lines"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Lines, 1)

	line := envelope.Data.Lines[0]
	assert.Equal(t, "50.00", line.Breakdown.BasePrice)
	require.NotNil(t, line.Breakdown.DiscountedPrice)
	assert.Equal(t, "45.00", *line.Breakdown.DiscountedPrice)
	assert.Equal(t, "90.00", line.LineTotal)
	assert.Equal(t, "90.00", envelope.Data.Total)
	require.NotNil(t, line.Breakdown.AppliedPromotion)
	assert.Equal(t, "Siempre", line.Breakdown.AppliedPromotion.Name)
}

func TestPricingQuoteMissingSelection(t *testing.T) {
	router := newTestRouter(t)

	body := fmt.Sprintf(`{"lines": [{"combo_id": %q, "quantity": 1}]}`, routerComboID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/pricing/quote", strings.NewReader(body)))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	var envelope types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "MISSING_SELECTION", envelope.Error.Code)
}

func TestPricingQuoteComboWithSelection(t *testing.T) {
	router := newTestRouter(t)

	body := fmt.Sprintf(`{"lines": [{"combo_id": %q, "quantity": 1, "selections": {%q: %q}}]}`,
		routerComboID, routerSlotID, routerOptionID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/pricing/quote", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"total":"120.00"`)
}

func TestPricingQuoteRejectsUnknownFields(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/pricing/quote", strings.NewReader(`{"nope": true}`)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPromotionsApplicableEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/promotions/applicable?product_id="+routerProductID.String(), nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"promotion_name":"Siempre"`)
}

func TestPromotionsApplicableRequiresOneRef(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/promotions/applicable", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestComboPriceEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/combos/"+routerComboID.String()+"/price?zone=interior&service_type=delivery", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"price":"120.00"`)
	assert.Contains(t, rec.Body.String(), `"available":true`)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
}
