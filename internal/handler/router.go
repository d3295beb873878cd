package handler

import (
	"log/slog"

	"github.com/jonyprachine123/test-2/internal/middleware"
	"github.com/jonyprachine123/test-2/internal/service"
	"github.com/jonyprachine123/test-2/internal/upload"

	"github.com/gin-gonic/gin"
)

// AuthProvider is what the router needs from the admin authentication service
type AuthProvider interface {
	Authenticator
	middleware.TokenValidator
}

// AccessControl is what the router needs from the authorization service
type AccessControl interface {
	middleware.PermissionChecker
	PermissionLister
}

// RouterConfig holds the HTTP settings that shape the router
type RouterConfig struct {
	// UploadDir is served at /uploads; empty disables static serving
	UploadDir     string
	CORSOrigin    string
	MaxUploadSize int64
}

// Dependencies are the services the API is built from. Auth and Authz may
// both be nil, in which case admin routes are not guarded.
type Dependencies struct {
	Products service.ProductService
	Orders   service.OrderService
	Banners  service.BannerService
	Reviews  service.ReviewService
	Storage  StorageProbe
	Auth     AuthProvider
	Authz    AccessControl
	Log      *slog.Logger
}

// NewRouter builds the gin engine with every storefront route
func NewRouter(cfg RouterConfig, deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(deps.Log.With("component", "http")), middleware.CORS(cfg.CORSOrigin))
	if cfg.MaxUploadSize > 0 {
		// one image plus the text fields
		r.MaxMultipartMemory = cfg.MaxUploadSize + 1<<20
	}

	if cfg.UploadDir != "" {
		r.Static(upload.PublicPath, cfg.UploadDir)
	}

	productHandler := NewProductHandler(deps.Products, deps.Log)
	orderHandler := NewOrderHandler(deps.Orders, deps.Log)
	bannerHandler := NewBannerHandler(deps.Banners, deps.Log)
	reviewHandler := NewReviewHandler(deps.Reviews, deps.Log)
	healthHandler := NewHealthHandler(deps.Storage, deps.Log)

	guard := func(resource, action string) []gin.HandlerFunc {
		if deps.Auth == nil || deps.Authz == nil {
			return nil
		}
		return []gin.HandlerFunc{
			middleware.AuthMiddleware(deps.Auth),
			middleware.RequirePermission(deps.Authz, resource, action, deps.Log),
		}
	}
	route := func(handlers []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
		return append(handlers, h)
	}

	api := r.Group("/api")
	api.GET("/health", healthHandler.Health)

	if deps.Auth != nil && deps.Authz != nil {
		authHandler := NewAuthHandler(deps.Auth, deps.Authz, deps.Log)
		api.POST("/admin/login", authHandler.Login)
		api.GET("/admin/me", middleware.AuthMiddleware(deps.Auth), authHandler.Me)
	}

	products := api.Group("/products")
	products.GET("", productHandler.GetProducts)
	products.GET("/:id", productHandler.GetProduct)
	products.POST("", route(guard(service.ResourceProducts, service.ActionWrite), productHandler.CreateProduct)...)
	products.PUT("/:id", route(guard(service.ResourceProducts, service.ActionWrite), productHandler.UpdateProduct)...)
	products.DELETE("/:id", route(guard(service.ResourceProducts, service.ActionWrite), productHandler.DeleteProduct)...)

	orders := api.Group("/orders")
	orders.POST("", orderHandler.CreateOrder)
	orders.GET("", route(guard(service.ResourceOrders, service.ActionRead), orderHandler.GetOrders)...)
	orders.GET("/:id", route(guard(service.ResourceOrders, service.ActionRead), orderHandler.GetOrder)...)
	orders.PUT("/:id", route(guard(service.ResourceOrders, service.ActionWrite), orderHandler.UpdateOrder)...)
	orders.PUT("/:id/status", route(guard(service.ResourceOrders, service.ActionWrite), orderHandler.UpdateOrderStatus)...)
	orders.DELETE("/:id", route(guard(service.ResourceOrders, service.ActionWrite), orderHandler.DeleteOrder)...)

	banners := api.Group("/banners")
	banners.GET("", bannerHandler.GetBanners)
	banners.GET("/:id", bannerHandler.GetBanner)
	banners.POST("", route(guard(service.ResourceBanners, service.ActionWrite), bannerHandler.CreateBanner)...)
	banners.PUT("/:id", route(guard(service.ResourceBanners, service.ActionWrite), bannerHandler.UpdateBanner)...)
	banners.DELETE("/:id", route(guard(service.ResourceBanners, service.ActionWrite), bannerHandler.DeleteBanner)...)

	reviews := api.Group("/reviews")
	reviews.GET("", reviewHandler.GetReviews)
	reviews.POST("", reviewHandler.CreateReview)
	reviews.PUT("/:id", route(guard(service.ResourceReviews, service.ActionWrite), reviewHandler.UpdateReview)...)
	reviews.DELETE("/:id", route(guard(service.ResourceReviews, service.ActionWrite), reviewHandler.DeleteReview)...)

	return r
}
