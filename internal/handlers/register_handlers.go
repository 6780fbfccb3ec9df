package handlers

import (
	"github.com/gin-gonic/gin"
	portssvc "github.com/junaidamjadofficial/newsite-accounting/internal/core/ports/services"
	"github.com/junaidamjadofficial/newsite-accounting/internal/middleware"
	"github.com/junaidamjadofficial/newsite-accounting/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using
// interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Health check for load balancers and probes.
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations. Every v1 route is tenant-scoped: the middleware
// rejects requests without the gateway's tenant header.
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1", middleware.TenantResolverMiddleware())

	registerAccountRoutes(v1, services)
	registerJournalRoutes(v1, services)
	registerReportingRoutes(v1, services)
	registerLedgerRoutes(v1, services)
	registerBalanceSheetRoutes(v1, services)
	registerClosingRoutes(v1, services)
}
