package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/MandirMitra/mandir_mitra_app/cmd/docs"
	"github.com/MandirMitra/mandir_mitra_app/internal/core/domain"
	portssvc "github.com/MandirMitra/mandir_mitra_app/internal/core/ports/services"
	"github.com/MandirMitra/mandir_mitra_app/internal/middleware"
	"github.com/MandirMitra/mandir_mitra_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	registerAuthRoutes(r, cfg, services)
	setupAPIV1Routes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the authenticated /api/v1 group and delegates to
// the per-entity route registrations.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// Logout needs the authenticated actor, so it lives inside the group.
	authHandler := NewAuthHandler(cfg, services)
	v1.POST("/auth/logout", authHandler.Logout)

	registerUserRoutes(v1, services.User)
	registerTempleRoutes(v1, services.Temple)
	registerAccountRoutes(v1, services.Account)
	registerJournalRoutes(v1, services.Journal)
	registerDevoteeRoutes(v1, services.Devotee)
	registerDonationRoutes(v1, services.Donation)
	registerSevaRoutes(v1, services.Seva)
	registerSponsorshipRoutes(v1, services.Sponsorship)
	registerInventoryRoutes(v1, services.Inventory)
	registerAssetRoutes(v1, services.Asset)
	registerPayrollRoutes(v1, services.Payroll)
	registerHundiRoutes(v1, services.Hundi)
	registerBankRoutes(v1, services.Bank)

	// Reports are role-gated at the route level; the reporting service itself
	// does not check roles.
	reports := v1.Group("", middleware.RequireRole(domain.RoleAccountant))
	registerReportingRoutes(reports, services.Reporting)
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		// no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
