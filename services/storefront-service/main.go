package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/ritemedical/storefront-service/internal/catalog"
	"github.com/ritemedical/storefront-service/internal/config"
	"github.com/ritemedical/storefront-service/internal/coupon"
	"github.com/ritemedical/storefront-service/internal/identity"
	"github.com/ritemedical/storefront-service/internal/metrics"
	"github.com/ritemedical/storefront-service/internal/notify"
	"github.com/ritemedical/storefront-service/internal/orders"
)

func init() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	server := NewServer(
		cfg,
		catalog.New(catalog.SeedProducts()),
		coupon.NewEvaluator(coupon.SeedCoupons()),
		orders.NewMemoryStore(),
		notify.NewWebhookGateway(cfg.WebhookBaseURL),
		identity.NewHeaderProvider(),
	)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(metrics.PrometheusMiddleware("storefront-service"))

	router.GET("/health", server.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/products", server.listProducts)
	router.GET("/products/:productId", server.getProduct)
	router.GET("/payment-methods", server.listPaymentMethods)
	router.GET("/coupons", server.listCoupons)

	router.GET("/cart", server.getCart)
	router.DELETE("/cart", server.clearCart)
	router.POST("/cart/items", server.addToCart)
	router.POST("/cart/items/:productId/decrease", server.decreaseCartItem)
	router.DELETE("/cart/items/:productId", server.removeCartLine)
	router.POST("/cart/coupon", server.applyCoupon)
	router.DELETE("/cart/coupon", server.removeCoupon)

	router.POST("/checkout", server.submitOrder)
	router.POST("/checkout/reset", server.resetCheckout)
	router.GET("/checkout/state", server.checkoutState)

	router.GET("/orders", server.listOrders)
	router.GET("/orders/:orderId", server.getOrder)

	router.GET("/admin/orders", server.adminListOrders)
	router.GET("/admin/alerts", server.adminLowStockAlerts)
	router.GET("/admin/webhooks", server.adminWebhookStatus)
	router.PUT("/admin/products/:productId/threshold", server.adminUpdateThreshold)

	log.WithFields(log.Fields{
		"port":        cfg.Port,
		"webhook_url": cfg.WebhookBaseURL,
	}).Info("Storefront service starting")

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
