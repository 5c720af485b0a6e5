package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Tharunikaraja/ecommerce-backend/internal/auth"
	"github.com/Tharunikaraja/ecommerce-backend/internal/service"
)

// Handler contains HTTP handlers
type Handler struct {
	auth      *service.AuthService
	catalog   *service.CatalogService
	carts     *service.CartService
	orders    *service.OrderService
	wishlists *service.WishlistService
	tokens    *auth.TokenIssuer
	env       string
}

// NewHandler creates a new HTTP handler
func NewHandler(
	authService *service.AuthService,
	catalog *service.CatalogService,
	carts *service.CartService,
	orders *service.OrderService,
	wishlists *service.WishlistService,
	tokens *auth.TokenIssuer,
	env string,
) *Handler {
	return &Handler{
		auth:      authService,
		catalog:   catalog,
		carts:     carts,
		orders:    orders,
		wishlists: wishlists,
		tokens:    tokens,
		env:       env,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", h.signup)
		authGroup.POST("/login", h.login)
		authGroup.POST("/forgot-password", h.forgotPassword)
		authGroup.POST("/verify-otp", h.verifyOTP)
		authGroup.POST("/reset-password", h.resetPassword)
	}

	products := api.Group("/products")
	{
		products.GET("", h.listProducts)
		products.GET("/:id", h.getProduct)
	}

	cart := api.Group("/cart", h.requireAuth())
	{
		cart.GET("", h.getCart)
		cart.POST("/add", h.addToCart)
		cart.PUT("/update", h.updateCartItem)
		cart.DELETE("/remove", h.removeFromCart)
		cart.DELETE("/clear", h.clearCart)
	}

	wishlist := api.Group("/wishlist", h.requireAuth())
	{
		wishlist.GET("", h.getWishlist)
		wishlist.GET("/check", h.checkWishlist)
		wishlist.POST("/add", h.addToWishlist)
		wishlist.DELETE("/remove", h.removeFromWishlist)
		wishlist.DELETE("/clear", h.clearWishlist)
	}

	orders := api.Group("/orders", h.requireAuth())
	{
		orders.GET("", h.listOrders)
		orders.GET("/:id", h.getOrder)
		orders.POST("/create", h.createOrder)
		orders.PUT("/:id/status", h.updateOrderStatus)
		orders.DELETE("/:id/cancel", h.cancelOrder)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}
