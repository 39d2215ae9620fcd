// Package payment lists the payment options offered at checkout. The
// labels are stored on orders; no charging happens in this service.
package payment

import (
	"errors"

	"github.com/ritemedical/storefront-service/internal/models"
)

// ErrUnknownMethod is returned for a payment method ID not in the list
var ErrUnknownMethod = errors.New("unknown payment method")

var methods = []models.PaymentMethod{
	{ID: "mastercard", Name: "Mastercard", Details: "**** **** **** 1234"},
	{ID: "googlepay", Name: "Google Pay", Details: "user@gmail.com"},
	{ID: "paytm", Name: "Paytm", Details: "+1 234-567-8900"},
	{ID: "upi", Name: "UPI", Details: "user@bankname"},
	{ID: "cod", Name: "Cash on Delivery", Details: "Pay when you receive"},
}

// Methods returns the available payment methods
func Methods() []models.PaymentMethod {
	out := make([]models.PaymentMethod, len(methods))
	copy(out, methods)
	return out
}

// ByID returns the payment method with the given ID
func ByID(id string) (*models.PaymentMethod, error) {
	for i := range methods {
		if methods[i].ID == id {
			clone := methods[i]
			return &clone, nil
		}
	}
	return nil, ErrUnknownMethod
}

// Default returns the preselected payment method
func Default() models.PaymentMethod {
	return methods[0]
}
