package wire

import (
	"net/http"

	"rental-booking/internal/adaptor"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/usecase"
	"rental-booking/pkg/events"
	"rental-booking/pkg/middleware"
	"rental-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router *chi.Mux

	limiter *middleware.RateLimiter
}

// Close releases background resources owned by the router.
func (a *App) Close() {
	a.limiter.Stop()
}

// Wiring builds services, handlers and routes.
func Wiring(repo *repository.Repository, publisher events.Publisher, config *utils.Config, logger *zap.Logger) (*App, error) {
	service := usecase.NewService(repo, publisher, config, logger)
	handler := adaptor.NewHandler(service, logger)

	admin, err := middleware.NewAdminGate(config.Admin.APIKey, config.App.IsProduction(), logger)
	if err != nil {
		return nil, err
	}
	limiter := middleware.NewRateLimiter(config.RateLimit.BookingRPS, config.RateLimit.BookingBurst, logger)

	return &App{
		Router:  setupRouter(handler, admin, limiter, logger),
		limiter: limiter,
	}, nil
}

func setupRouter(
	handler *adaptor.Handler,
	admin *middleware.AdminGate,
	limiter *middleware.RateLimiter,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireListing(r, handler, admin)
	wireBooking(r, handler.Booking, admin, limiter)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, map[string]string{"status": "ok"})
	})

	return r
}
