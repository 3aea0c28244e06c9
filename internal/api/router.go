package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ssgeek/commerce/internal/api/handlers"
	"github.com/ssgeek/commerce/internal/api/middleware"
	"github.com/ssgeek/commerce/internal/auth"
	"github.com/ssgeek/commerce/internal/config"
	"github.com/ssgeek/commerce/internal/domain"
	"github.com/ssgeek/commerce/internal/metrics"
	"github.com/ssgeek/commerce/internal/repository"
	"github.com/ssgeek/commerce/internal/service"
)

func newEngine(cfg *config.Config, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logging(logger))
	router.Use(metrics.Middleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", metrics.Handler())

	return router
}

// NewRouter creates the order management router: catalog and cart.
func NewRouter(cfg *config.Config, repos *repository.Repositories, rates service.TaxRates, issuer *auth.Issuer, logger *zap.Logger) *gin.Engine {
	router := newEngine(cfg, logger)

	catalog := service.NewCatalogService(repos, logger)
	carts := service.NewCartService(repos, rates, logger)

	router.GET("/products", handlers.HandleListProducts(catalog, logger))
	router.GET("/products/:id", handlers.HandleGetProduct(catalog, logger))

	cartRoutes := router.Group("/cart")
	cartRoutes.Use(middleware.AuthMiddleware(issuer, repos.User, logger))
	{
		cartRoutes.GET("", handlers.HandleGetCart(carts, logger))
		cartRoutes.DELETE("", handlers.HandleClearCart(carts, logger))
		cartRoutes.GET("/lines/:cartItemId", handlers.HandleGetCartItem(carts, logger))
		cartRoutes.POST("/items", handlers.HandleAddCartItem(carts, logger))
		cartRoutes.PUT("/items/:productId", handlers.HandleSetCartItemQuantity(carts, logger))
		cartRoutes.DELETE("/items/:productId", handlers.HandleRemoveCartItem(carts, logger))
	}

	return router
}

// NewLedgerRouter creates the sales ledger router. Every route needs a valid
// token; writes need the admin role.
func NewLedgerRouter(cfg *config.Config, ledger *repository.LedgerRepositories, users repository.UserRepository, issuer *auth.Issuer, logger *zap.Logger) *gin.Engine {
	router := newEngine(cfg, logger)

	customers := service.NewCustomerService(ledger, logger)
	products := service.NewLedgerProductService(ledger, logger)
	sales := service.NewSaleService(ledger, logger)

	read := router.Group("")
	read.Use(middleware.AuthMiddleware(issuer, users, logger))
	{
		read.GET("/customers", handlers.HandleListCustomers(customers, logger))
		read.GET("/customers/:id", handlers.HandleGetCustomer(customers, logger))

		read.GET("/products", handlers.HandleListLedgerProducts(products, logger))
		read.GET("/products/unsold", handlers.HandleListUnsoldProducts(products, logger))
		read.GET("/products/:id", handlers.HandleGetLedgerProduct(products, logger))

		read.GET("/sales", handlers.HandleListSales(sales, logger))
		read.GET("/sales/:id", handlers.HandleGetSale(sales, logger))
		read.GET("/sales/:id/line-items", handlers.HandleListLineItems(sales, logger))
	}

	write := read.Group("")
	write.Use(middleware.RequireRole(domain.RoleAdmin))
	{
		write.POST("/customers", handlers.HandleCreateCustomer(customers, logger))
		write.PUT("/customers/:id", handlers.HandleUpdateCustomer(customers, logger))

		write.POST("/products", handlers.HandleCreateLedgerProduct(products, logger))
		write.PUT("/products/:id", handlers.HandleUpdateLedgerProduct(products, logger))
		write.DELETE("/products/:id", handlers.HandleDeleteLedgerProduct(products, logger))

		write.POST("/sales", handlers.HandleCreateSale(sales, logger))
		write.PUT("/sales/:id", handlers.HandleUpdateSale(sales, logger))
		write.DELETE("/sales/:id", handlers.HandleDeleteSale(sales, logger))
		write.POST("/sales/:id/line-items", handlers.HandleAddLineItem(sales, logger))
	}

	return router
}
