package handlers

import "fmt"

// validateProductPricing checks the price pair on create/update. The
// original (pre-discount) price is optional, but when set it must exceed
// the selling price, and stock can never go negative.
func validateProductPricing(price, originalPrice float64, stockQuantity int) error {
	if price < 0 {
		return fmt.Errorf("price must be zero or greater")
	}
	if originalPrice != 0 && originalPrice <= price {
		return fmt.Errorf("originalPrice must be greater than price")
	}
	if stockQuantity < 0 {
		return fmt.Errorf("stockQuantity must be zero or greater")
	}
	return nil
}
