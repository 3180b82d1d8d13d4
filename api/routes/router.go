package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/keepstockhq/keepstock-backend/api/controllers"
	"github.com/keepstockhq/keepstock-backend/api/middleware"
	"github.com/keepstockhq/keepstock-backend/internal/auth"
	"github.com/keepstockhq/keepstock-backend/internal/inventory"
	"github.com/keepstockhq/keepstock-backend/internal/reports"
	"github.com/keepstockhq/keepstock-backend/pkg/config"
	"github.com/keepstockhq/keepstock-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	authService auth.Service,
	inventoryService inventory.Service,
	reportsService reports.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(authService, logg))
		r.Post("/logout", controllers.AuthLogout(authService, logg))
		r.Get("/session", controllers.AuthSession(authService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(inventoryService, logg))
			r.Get("/{sku}", controllers.ProductBySKU(inventoryService, logg))
		})
		r.Get("/stores", controllers.StoreList(inventoryService, logg))

		r.Route("/stock", func(r chi.Router) {
			r.Get("/", controllers.StockList(inventoryService, logg))
			r.Post("/", controllers.StockCreate(inventoryService, logg))
			r.Patch("/{id}", controllers.StockUpdate(inventoryService, logg))
			r.Delete("/{id}", controllers.StockDelete(inventoryService, logg))
		})

		r.Route("/refills", func(r chi.Router) {
			r.Get("/", controllers.RefillList(inventoryService, logg))
			r.Post("/", controllers.RefillCreate(inventoryService, logg))
			r.Patch("/{id}", controllers.RefillUpdate(inventoryService, logg))
			r.Delete("/{id}", controllers.RefillDelete(inventoryService, logg))
		})

		r.Route("/boxes", func(r chi.Router) {
			r.Get("/", controllers.BoxList(inventoryService, logg))
			r.Post("/next", controllers.BoxNext(inventoryService, logg))
			r.Get("/recent", controllers.BoxRecent(inventoryService, logg, cfg.Inventory.RecentBoxesLimit))
			r.Get("/{boxNumber}/label", controllers.BoxLabel(inventoryService, logg))
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", controllers.ReportSummary(reportsService, logg))
			r.Get("/stock-by-department", controllers.ReportStockByDepartment(reportsService, logg))
			r.Get("/refills-by-month", controllers.ReportRefillsByMonth(reportsService, logg))
			r.Get("/low-stock", controllers.ReportLowStock(reportsService, logg, cfg.Inventory.LowStockThreshold))
		})
	})

	return r
}
