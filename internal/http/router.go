package http

import (
	"github.com/gin-gonic/gin"
)

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(securityHeaders())
	if cfg.ReadOnly {
		router.Use(ReadOnlyMiddleware())
	}

	storage := cfg.Storage
	if storage == nil {
		storage = cfg.Store
	}
	healthController := NewHealthController(storage, cfg.Version)
	router.GET("/health", healthController.Status)

	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics))
	}

	api := router.Group("/api")

	booksController := NewBooksController(cfg.Store)
	books := api.Group("/books")
	books.GET("", booksController.List)
	books.POST("", booksController.Create)
	books.GET("/:id", booksController.Get)
	books.DELETE("/:id", booksController.Delete)
	books.GET("/:id/cover", booksController.Cover)
	books.GET("/:id/quotes", booksController.Quotes)

	quotesController := NewQuotesController(cfg.Store)
	quotes := api.Group("/quotes")
	quotes.GET("", quotesController.List)
	quotes.POST("", quotesController.Create)
	quotes.GET("/daily", quotesController.Daily)
	quotes.GET("/:id", quotesController.Get)
	quotes.PATCH("/:id", quotesController.Update)
	quotes.DELETE("/:id", quotesController.Delete)
	quotes.POST("/:id/favourite", quotesController.ToggleFavourite)
	quotes.PUT("/:id/tags", quotesController.SetTags)
	quotes.GET("/:id/share", quotesController.Share)

	statsController := NewStatsController(cfg.Store)
	api.GET("/stats", statsController.Get)

	exportController := NewExportController(cfg.Tasks, cfg.Exporter)
	api.POST("/export", exportController.Run)
	api.GET("/export/:id", exportController.Status)

	if cfg.Audit != nil {
		auditController := NewAuditController(cfg.Audit)
		api.GET("/audit", auditController.List)
	}

	return router
}
