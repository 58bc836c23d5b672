package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/saboresapp/sabores-backend/api/controllers"
	"github.com/saboresapp/sabores-backend/api/middleware"
	"github.com/saboresapp/sabores-backend/internal/catalog"
	"github.com/saboresapp/sabores-backend/internal/pricing"
	"github.com/saboresapp/sabores-backend/pkg/config"
	"github.com/saboresapp/sabores-backend/pkg/db"
	"github.com/saboresapp/sabores-backend/pkg/logger"
	"github.com/saboresapp/sabores-backend/pkg/metrics"
	"github.com/saboresapp/sabores-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	pricingMetrics *metrics.PricingMetrics,
	catalogService catalog.Service,
	pricingService *pricing.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/pricing/quote", controllers.PricingQuote(catalogService, pricingService, pricingMetrics, logg))
		r.Get("/promotions/applicable", controllers.PromotionsApplicable(catalogService, pricingService, logg))
		r.Get("/combos/{comboId}/price", controllers.ComboPrice(catalogService, logg))
	})

	return r
}
