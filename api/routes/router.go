package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/simplishare/simplishare-server/api/controllers"
	"github.com/simplishare/simplishare-server/api/middleware"
	"github.com/simplishare/simplishare-server/api/responses"
	"github.com/simplishare/simplishare-server/internal/auth"
	"github.com/simplishare/simplishare-server/internal/offers"
	"github.com/simplishare/simplishare-server/internal/stores"
	"github.com/simplishare/simplishare-server/internal/verification"
	"github.com/simplishare/simplishare-server/pkg/config"
	pkgerrors "github.com/simplishare/simplishare-server/pkg/errors"
	"github.com/simplishare/simplishare-server/pkg/logger"
	"github.com/simplishare/simplishare-server/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	authService auth.Service,
	verificationService verification.Service,
	storeService stores.Service,
	offerService offers.Service,
	imageStore controllers.ImageOpener,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
		middleware.CORS(),
	)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w,
			pkgerrors.New(pkgerrors.CodeNotFound, "route not found").
				WithAppCode(pkgerrors.AppRouteNotFound))
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", controllers.Register(authService, logg))
			r.Post("/login", controllers.Login(authService, logg))
			r.Post("/send-otp", controllers.SendOTP(verificationService, logg))
			r.Post("/verify-otp", controllers.VerifyOTP(verificationService, logg))
			r.With(middleware.Auth(cfg.JWT, logg)).Post("/onboarding", controllers.Onboarding(authService, logg))
		})

		// Image streaming stays public; keys are unguessable uuids.
		r.Get("/offers/image/{file_id}", controllers.ImageGet(imageStore, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Route("/stores", func(r chi.Router) {
				r.Post("/", controllers.StoreCreate(storeService, logg))
				r.Get("/", controllers.StoreList(storeService, logg))
				r.Put("/{store_id}", controllers.StoreUpdate(storeService, logg))
				r.Delete("/{store_id}", controllers.StoreDelete(storeService, logg))
			})

			r.Route("/offers", func(r chi.Router) {
				r.Post("/", controllers.OfferCreate(offerService, cfg.Blob, logg))
				r.Get("/", controllers.OfferList(offerService, logg))
				r.Put("/{offer_id}", controllers.OfferUpdate(offerService, cfg.Blob, logg))
				r.Delete("/{offer_id}", controllers.OfferDelete(offerService, logg))
			})
		})
	})

	return r
}
