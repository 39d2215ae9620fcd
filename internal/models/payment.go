package models

// PaymentMethod represents one of the fixed payment options offered at
// checkout. Details is a display string (masked card number, wallet handle).
type PaymentMethod struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Details string `json:"details"`
}
