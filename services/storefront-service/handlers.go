package main

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/ritemedical/storefront-service/internal/catalog"
	"github.com/ritemedical/storefront-service/internal/checkout"
	"github.com/ritemedical/storefront-service/internal/config"
	"github.com/ritemedical/storefront-service/internal/coupon"
	"github.com/ritemedical/storefront-service/internal/identity"
	"github.com/ritemedical/storefront-service/internal/models"
	"github.com/ritemedical/storefront-service/internal/notify"
	"github.com/ritemedical/storefront-service/internal/orders"
	"github.com/ritemedical/storefront-service/internal/payment"
)

// Server holds the service collaborators and the per-user session registry
type Server struct {
	cfg      *config.Config
	catalog  *catalog.Catalog
	coupons  *coupon.Evaluator
	store    orders.Store
	gateway  *notify.WebhookGateway
	identity identity.Provider

	mutex    sync.RWMutex
	sessions map[string]*session
}

// session wraps one user's checkout. The mutex takes over the "UI disables
// the button" role: it serializes cart mutation and submission per session,
// since the checkout machine itself assumes a single caller.
type session struct {
	mu       sync.Mutex
	checkout *checkout.Checkout
}

// NewServer wires the collaborators into a server with an empty session registry
func NewServer(cfg *config.Config, cat *catalog.Catalog, coupons *coupon.Evaluator,
	store orders.Store, gateway *notify.WebhookGateway, id identity.Provider) *Server {
	return &Server{
		cfg:      cfg,
		catalog:  cat,
		coupons:  coupons,
		store:    store,
		gateway:  gateway,
		identity: id,
		sessions: make(map[string]*session),
	}
}

// sessionFor returns the session for the current request, creating one on
// first use. Anonymous requests may carry a cart under X-Session-ID; an
// anonymous checkout still fails with 401.
func (s *Server) sessionFor(c *gin.Context) *session {
	key := c.GetHeader("X-Session-ID")
	if key == "" {
		key = c.GetHeader("X-User-ID")
	}
	if key == "" {
		key = "anonymous"
	}

	s.mutex.RLock()
	sess, ok := s.sessions[key]
	s.mutex.RUnlock()
	if ok {
		return sess
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if sess, ok = s.sessions[key]; ok {
		return sess
	}
	sess = &session{
		checkout: checkout.New(s.coupons, s.store, s.gateway, s.cfg.DeliveryFee),
	}
	s.sessions[key] = sess
	return sess
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "storefront-service",
	})
}

// --- catalog ---

func (s *Server) listProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": s.catalog.List()})
}

func (s *Server) getProduct(c *gin.Context) {
	product, err := s.catalog.Find(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) listPaymentMethods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"methods": payment.Methods(),
		"default": payment.Default().ID,
	})
}

func (s *Server) listCoupons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"coupons": s.coupons.Active()})
}

// --- cart ---

func (s *Server) getCart(c *gin.Context) {
	sess := s.sessionFor(c)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	c.JSON(http.StatusOK, sess.checkout.Summary())
}

func (s *Server) addToCart(c *gin.Context) {
	var req models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	product, err := s.catalog.Find(req.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	sess := s.sessionFor(c)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.checkout.Cart().Add(product)
	c.JSON(http.StatusOK, sess.checkout.Summary())
}

func (s *Server) decreaseCartItem(c *gin.Context) {
	sess := s.sessionFor(c)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.checkout.Cart().DecreaseOne(c.Param("productId"))
	c.JSON(http.StatusOK, sess.checkout.Summary())
}

func (s *Server) removeCartLine(c *gin.Context) {
	sess := s.sessionFor(c)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.checkout.Cart().RemoveLine(c.Param("productId"))
	c.JSON(http.StatusOK, sess.checkout.Summary())
}

func (s *Server) clearCart(c *gin.Context) {
	sess := s.sessionFor(c)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.checkout.Cart().Clear()
	sess.checkout.RemoveCoupon()
	c.JSON(http.StatusOK, sess.checkout.Summary())
}

// --- coupons ---

func (s *Server) applyCoupon(c *gin.Context) {
	var req models.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	sess := s.sessionFor(c)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	applied, discount, err := sess.checkout.ApplyCoupon(req.Code)
	if err != nil {
		var minErr *coupon.MinimumNotMetError
		switch {
		case errors.Is(err, coupon.ErrInvalidCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon code"})
		case errors.As(err, &minErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": minErr.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"coupon":   applied,
		"discount": discount,
		"summary":  sess.checkout.Summary(),
	})
}

func (s *Server) removeCoupon(c *gin.Context) {
	sess := s.sessionFor(c)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.checkout.RemoveCoupon()
	c.JSON(http.StatusOK, sess.checkout.Summary())
}

// --- checkout ---

func (s *Server) submitOrder(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	method, err := payment.ByID(req.PaymentMethodID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown payment method"})
		return
	}

	address := req.DeliveryAddress
	if address == "" {
		address = s.cfg.DefaultAddress
	}

	user, _ := s.identity.Current(c)

	sess := s.sessionFor(c)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	order, err := sess.checkout.Submit(c.Request.Context(), user, method, address)
	if err != nil {
		s.writeSubmitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.CheckoutResponse{
		OrderID: order.OrderID,
		Status:  order.Status,
		Message: "Order placed successfully",
		Total:   order.TotalAmount,
	})
}

func (s *Server) writeSubmitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, checkout.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, models.CheckoutResponse{
			Status:  string(checkout.PhaseFailed),
			Message: "User not authenticated",
		})
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, models.CheckoutResponse{
			Status:  string(checkout.PhaseFailed),
			Message: "Cart is empty",
		})
	case errors.Is(err, checkout.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, models.CheckoutResponse{
			Status:  string(checkout.PhaseSubmitting),
			Message: "Order submission already in progress",
		})
	default:
		c.JSON(http.StatusBadGateway, models.CheckoutResponse{
			Status:  string(checkout.PhaseFailed),
			Message: err.Error(),
		})
	}
}

func (s *Server) resetCheckout(c *gin.Context) {
	sess := s.sessionFor(c)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.checkout.Reset()
	c.JSON(http.StatusOK, sess.checkout.State())
}

func (s *Server) checkoutState(c *gin.Context) {
	sess := s.sessionFor(c)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	c.JSON(http.StatusOK, sess.checkout.State())
}

// --- orders ---

func (s *Server) listOrders(c *gin.Context) {
	user, ok := s.identity.Current(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	list, err := s.store.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": list})
}

func (s *Server) getOrder(c *gin.Context) {
	order, err := s.store.Get(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, order)
}

// --- admin ---

func (s *Server) adminListOrders(c *gin.Context) {
	list, err := s.store.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": list, "count": len(list)})
}

func (s *Server) adminLowStockAlerts(c *gin.Context) {
	alerts := s.catalog.LowStock()
	c.JSON(http.StatusOK, gin.H{"alerts": alerts, "count": len(alerts)})
}

func (s *Server) adminWebhookStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"circuits": s.gateway.Circuits()})
}

func (s *Server) adminUpdateThreshold(c *gin.Context) {
	var req models.UpdateThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	product, err := s.catalog.UpdateThreshold(c.Param("productId"), *req.Threshold)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, catalog.ErrInvalidThreshold):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	log.WithFields(log.Fields{
		"product_id": product.ID,
		"threshold":  product.LowStockThreshold,
	}).Info("Low-stock threshold updated")

	c.JSON(http.StatusOK, product)
}
