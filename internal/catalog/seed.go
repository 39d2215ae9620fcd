package catalog

import "github.com/ritemedical/storefront-service/internal/models"

// SeedProducts is the pharmacy catalog the service ships with. Thresholds
// reflect expected sales velocity per product.
func SeedProducts() []models.Product {
	return []models.Product{
		{ID: "P001", Name: "Paracetamol 500mg", Price: 9.99, ImageURL: "https://picsum.photos/200", Stock: 50, LowStockThreshold: 20},
		{ID: "P002", Name: "Vitamin C 1000mg", Price: 14.99, ImageURL: "https://picsum.photos/201", Stock: 30, LowStockThreshold: 15},
		{ID: "P003", Name: "First Aid Kit Basic", Price: 24.99, ImageURL: "https://picsum.photos/202", Stock: 20, LowStockThreshold: 5},
		{ID: "P004", Name: "Digital Thermometer", Price: 19.99, ImageURL: "https://picsum.photos/203", Stock: 15, LowStockThreshold: 3},
		{ID: "P005", Name: "Hand Sanitizer 500ml", Price: 4.99, ImageURL: "https://picsum.photos/204", Stock: 100, LowStockThreshold: 25},
		{ID: "P006", Name: "Face Masks (50 Pack)", Price: 12.99, ImageURL: "https://picsum.photos/205", Stock: 0, LowStockThreshold: 30},
		{ID: "P007", Name: "Multivitamin Complex", Price: 29.99, ImageURL: "https://picsum.photos/206", Stock: 40, LowStockThreshold: 10},
		{ID: "P008", Name: "Bandages Pack", Price: 7.99, ImageURL: "https://picsum.photos/207", Stock: 150, LowStockThreshold: 20},
		{ID: "P009", Name: "Pain Relief Gel", Price: 11.99, ImageURL: "https://picsum.photos/208", Stock: 0, LowStockThreshold: 15},
		{ID: "P010", Name: "Cough Syrup 200ml", Price: 8.99, ImageURL: "https://picsum.photos/209", Stock: 5, LowStockThreshold: 8},
		{ID: "P011", Name: "Aspirin 325mg", Price: 6.99, ImageURL: "https://picsum.photos/210", Stock: 25, LowStockThreshold: 12},
		{ID: "P012", Name: "Blood Pressure Monitor", Price: 89.99, ImageURL: "https://picsum.photos/211", Stock: 8, LowStockThreshold: 2},
		{ID: "P013", Name: "Glucose Test Strips", Price: 34.99, ImageURL: "https://picsum.photos/212", Stock: 0, LowStockThreshold: 5},
	}
}
