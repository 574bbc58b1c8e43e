package router

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"gold-pos/internal/config"
	"gold-pos/internal/handlers"
	"gold-pos/internal/middleware"
	"gold-pos/internal/observability"
)

// Handlers groups every HTTP handler the router mounts. Assistant may be nil.
type Handlers struct {
	System    *handlers.SystemHandler
	Products  *handlers.ProductHandler
	Sales     *handlers.SaleHandler
	Customers *handlers.CustomerHandler
	Scraps    *handlers.ScrapHandler
	Settings  *handlers.SettingsHandler
	Reports   *handlers.ReportHandler
	Auth      *handlers.AuthHandler
	Uploads   *handlers.UploadHandler
	Assistant *handlers.AssistantHandler
}

// Options are the cross-cutting pieces. Limiter and Metrics may be nil; UploadDir is empty
// when uploads go to S3. Frontend overrides the SPA/dev proxy fallback, mostly for tests.
type Options struct {
	Config    *config.Config
	Tokens    middleware.TokenValidator
	Metrics   *observability.Metrics
	Limiter   *middleware.RateLimiter
	UploadDir string
	Frontend  gin.HandlerFunc
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func New(opts Options, h Handlers) *gin.Engine {
	cfg := opts.Config

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecureHeaders(cfg.IsProduction()))
	r.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	if opts.UploadDir != "" {
		r.Static("/uploads", opts.UploadDir)
	}

	admin := middleware.RequireAdmin(opts.Tokens, cfg.Security.AdminGuard)

	api := r.Group("/api")
	if opts.Limiter != nil {
		api.Use(opts.Limiter.Middleware())
	}
	{
		api.GET("/health", h.System.Health)

		products := api.Group("/products")
		{
			products.GET("", h.Products.List)
			products.POST("", h.Products.Create)
			products.GET("/lookup", h.Products.Lookup)
			products.GET("/check-code", h.Products.CheckCode)
			products.POST("/reprice", h.Products.Reprice)
			products.PUT("/:id", h.Products.Update)
			products.DELETE("/:id", admin, h.Products.Delete)
			products.GET("/:id/label", h.Products.Label)
		}
		api.POST("/stock/intake", h.Products.Intake)

		customers := api.Group("/customers")
		{
			customers.GET("", h.Customers.List)
			customers.POST("", h.Customers.Create)
			customers.PUT("/:id", h.Customers.Update)
			customers.DELETE("/:id", admin, h.Customers.Delete)
			customers.GET("/:id/sales", h.Customers.History)
		}

		sales := api.Group("/sales")
		{
			sales.GET("", h.Sales.List)
			sales.POST("", h.Sales.Create)
			sales.PUT("/:id", h.Sales.Update)
			sales.POST("/:id/return", h.Sales.Return)
		}
		api.POST("/checkout", h.Sales.Checkout)

		scraps := api.Group("/scraps")
		{
			scraps.GET("", h.Scraps.List)
			scraps.POST("", h.Scraps.Create)
			scraps.POST("/intake", h.Scraps.Intake)
		}

		api.GET("/settings", h.Settings.Get)
		api.POST("/settings", admin, h.Settings.Save)

		reports := api.Group("/reports")
		{
			reports.GET("/summary", h.Reports.Summary)
			reports.GET("/valuation", h.Reports.Valuation)
			reports.GET("/sold", h.Reports.Sold)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/admin", h.Auth.AdminLogin)
			auth.POST("/delete-code", h.Auth.VerifyDeleteCode)
		}

		api.POST("/uploads", h.Uploads.Upload)

		if h.Assistant != nil {
			api.POST("/assistant/ask", admin, h.Assistant.Ask)
		}
	}

	frontend := opts.Frontend
	if frontend == nil {
		frontend = Frontend(cfg)
	}
	r.NoRoute(func(c *gin.Context) {
		if isAPIPath(c.Request.URL.Path) {
			handlers.APINotFound(c)
			return
		}
		frontend(c)
	})

	return r
}

func isAPIPath(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}
