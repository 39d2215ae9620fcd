package coupon

import "github.com/ritemedical/storefront-service/internal/models"

// SeedCoupons is the static promotional catalog
func SeedCoupons() []models.Coupon {
	return []models.Coupon{
		{
			ID:             "1",
			Code:           "SAVE10",
			Title:          "Save 10%",
			Description:    "Get 10% off on orders above $20",
			Discount:       10.0,
			Kind:           models.DiscountPercentage,
			MinOrderAmount: 20.0,
			MaxDiscount:    50.0,
			Active:         true,
		},
		{
			ID:             "2",
			Code:           "FIRST5",
			Title:          "First Order Discount",
			Description:    "Get $5 off on your first order",
			Discount:       5.0,
			Kind:           models.DiscountFixed,
			MinOrderAmount: 15.0,
			Active:         true,
		},
		{
			ID:             "3",
			Code:           "WELCOME15",
			Title:          "Welcome Offer",
			Description:    "Get 15% off on orders above $30",
			Discount:       15.0,
			Kind:           models.DiscountPercentage,
			MinOrderAmount: 30.0,
			MaxDiscount:    75.0,
			Active:         true,
		},
		{
			ID:             "4",
			Code:           "FREESHIP",
			Title:          "Free Shipping",
			Description:    "Free shipping on all orders",
			Discount:       2.99,
			Kind:           models.DiscountFixed,
			MinOrderAmount: 0.0,
			Active:         true,
		},
	}
}
