package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tofrito/till-api/internal/config"
	"github.com/tofrito/till-api/internal/domain/repository"
	"github.com/tofrito/till-api/internal/presentation/http/handler"
	"github.com/tofrito/till-api/internal/presentation/http/middleware"
	"github.com/tofrito/till-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Catalog  *handler.CatalogHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Kitchen  *handler.KitchenHandler
	Report   *handler.ReportHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
	Store      repository.KVStore
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	rateLimiter := middleware.NewIPRateLimiter(middleware.DefaultRateLimiterConfig())
	router.Use(rateLimiter.Middleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Staff-facing routes: catalog, cart, checkout, kitchen. The
		// discount gate inside checkout carries its own passcode check.
		v1.POST("/auth/manager", h.Auth.Login)

		registerCatalogRoutes(v1, h)
		registerCartRoutes(v1, h)
		registerCheckoutRoutes(v1, h, deps)
		registerKitchenRoutes(v1, h)

		// Manager-only routes: reports, cancellation, reset, printer.
		protected := v1.Group("")
		protected.Use(middleware.ManagerAuthMiddleware(deps.JWTManager))
		registerManagerRoutes(protected, h)
	}

	return router
}

func registerCatalogRoutes(v1 *gin.RouterGroup, h *Handlers) {
	catalog := v1.Group("/catalog")
	{
		catalog.GET("", h.Catalog.List)
		catalog.GET("/:id", h.Catalog.Get)
	}
}

func registerCartRoutes(v1 *gin.RouterGroup, h *Handlers) {
	cart := v1.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.POST("/items", h.Cart.AddItem)
		cart.PATCH("/items/:productId", h.Cart.UpdateQuantity)
		cart.DELETE("/items/:productId", h.Cart.RemoveItem)
		cart.DELETE("", h.Cart.Clear)
	}
}

func registerCheckoutRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	checkout := v1.Group("/checkout")
	{
		checkout.GET("", h.Checkout.GetState)
		checkout.POST("/discount/unlock", h.Checkout.UnlockDiscount)
		checkout.POST("/discount/lock", h.Checkout.LockDiscount)
		checkout.PUT("/discount", h.Checkout.StageDiscount)
		checkout.POST("/method", h.Checkout.SelectMethod)
		checkout.POST("/pix/ack", h.Checkout.AckPix)
		checkout.POST("/tender/key", h.Checkout.TenderKey)
		checkout.POST("/tender/quick-add", h.Checkout.TenderQuickAdd)

		// A double-tapped confirm must not sell the cart twice.
		checkout.POST("/confirm", middleware.Idempotency(deps.Store), h.Checkout.Confirm)
	}
}

func registerKitchenRoutes(v1 *gin.RouterGroup, h *Handlers) {
	kitchen := v1.Group("/kitchen")
	{
		kitchen.GET("/queue", h.Kitchen.Queue)
		kitchen.POST("/orders/:id/done", h.Kitchen.MarkDone)
		kitchen.POST("/orders/:id/return", h.Kitchen.ReturnToPreparation)
	}
}

func registerManagerRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	{
		reports.GET("/summary", h.Report.Summary)
		reports.GET("/transactions", h.Report.Transactions)
	}

	protected.POST("/transactions/:id/cancel", h.Report.Cancel)
	protected.POST("/system/reset", h.Report.Reset)

	printer := protected.Group("/printer")
	{
		printer.GET("/status", h.Printer.Status)
		printer.POST("/test", h.Printer.TestPrint)
	}
}
