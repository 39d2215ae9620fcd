// Package notify is the client for the downstream webhook endpoints that
// react to placed orders. Every call is best-effort and at-most-once:
// failures are reported to the caller for logging but are never retried,
// and the order itself is unaffected.
package notify

import (
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/ritemedical/storefront-service/internal/metrics"
	"github.com/ritemedical/storefront-service/internal/models"
	"github.com/ritemedical/storefront-service/internal/patterns"
)

// Gateway sends the three post-order notifications. Implementations return
// an error when delivery fails; callers only log it.
type Gateway interface {
	NotifyCustomer(order *models.Order) error
	TriggerProcessing(order *models.Order) error
	TriggerInventoryUpdate(order *models.Order) error
}

const (
	endpointCustomerNotification = "webhook-test/customer-notification"
	endpointOrderProcessing      = "webhook-test/order-processing"
	endpointInventoryUpdate      = "webhook-test/inventory-update"
)

// WebhookGateway delivers notifications over HTTP. Each endpoint gets its
// own circuit breaker so one dead automation flow does not poison the
// others; a shared bulkhead caps concurrent deliveries.
type WebhookGateway struct {
	client   *resty.Client
	baseURL  string
	bulkhead *patterns.Bulkhead

	customerCircuit   *patterns.CircuitBreakerWrapper
	processingCircuit *patterns.CircuitBreakerWrapper
	inventoryCircuit  *patterns.CircuitBreakerWrapper
}

// NewWebhookGateway creates a gateway against the given webhook base URL
func NewWebhookGateway(baseURL string) *WebhookGateway {
	return &WebhookGateway{
		client: resty.New().
			SetTimeout(patterns.DefaultTimeout).
			SetRetryCount(0), // best-effort, no retries
		baseURL:           baseURL,
		bulkhead:          patterns.NewBulkhead(10, "webhooks", "storefront-service"),
		customerCircuit:   patterns.NewCircuitBreaker("CustomerNotification", "storefront-service"),
		processingCircuit: patterns.NewCircuitBreaker("OrderProcessing", "storefront-service"),
		inventoryCircuit:  patterns.NewCircuitBreaker("InventoryUpdate", "storefront-service"),
	}
}

// NotifyCustomer posts the order to the customer-notification webhook
func (g *WebhookGateway) NotifyCustomer(order *models.Order) error {
	return g.deliver(endpointCustomerNotification, g.customerCircuit, order)
}

// TriggerProcessing posts the order to the order-processing webhook
func (g *WebhookGateway) TriggerProcessing(order *models.Order) error {
	return g.deliver(endpointOrderProcessing, g.processingCircuit, order)
}

// TriggerInventoryUpdate posts the order to the inventory-update webhook
func (g *WebhookGateway) TriggerInventoryUpdate(order *models.Order) error {
	return g.deliver(endpointInventoryUpdate, g.inventoryCircuit, order)
}

// Circuits reports circuit breaker states keyed by endpoint
func (g *WebhookGateway) Circuits() map[string]string {
	return map[string]string{
		endpointCustomerNotification: g.customerCircuit.GetState(),
		endpointOrderProcessing:      g.processingCircuit.GetState(),
		endpointInventoryUpdate:      g.inventoryCircuit.GetState(),
	}
}

func (g *WebhookGateway) deliver(endpoint string, circuit *patterns.CircuitBreakerWrapper, order *models.Order) error {
	// The automation flows expect the order list under a "body" key
	payload := map[string]interface{}{
		"body": []*models.Order{order},
	}

	err := g.bulkhead.Execute(func() error {
		_, cbErr := circuit.Execute(func() (interface{}, error) {
			resp, httpErr := g.client.R().
				SetHeader("Content-Type", "application/json").
				SetBody(payload).
				Post(g.baseURL + "/" + endpoint)

			if httpErr != nil {
				return nil, fmt.Errorf("HTTP error: %w", httpErr)
			}
			if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
				return nil, fmt.Errorf("webhook %s returned status %d", endpoint, resp.StatusCode())
			}
			return nil, nil
		})
		return patterns.FormatError(endpoint, cbErr)
	})

	if err != nil {
		metrics.WebhookDeliveries.WithLabelValues(endpoint, "failure").Inc()
		return err
	}
	metrics.WebhookDeliveries.WithLabelValues(endpoint, "success").Inc()
	return nil
}
