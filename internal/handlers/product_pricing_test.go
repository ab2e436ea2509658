package handlers

import "testing"

func TestValidateProductPricingNegativePrice(t *testing.T) {
	if err := validateProductPricing(-1, 0, 0); err == nil {
		t.Fatal("expected validation error for negative price")
	}
}

func TestValidateProductPricingOriginalPriceNotGreater(t *testing.T) {
	tests := []float64{100, 80}
	for _, originalPrice := range tests {
		if err := validateProductPricing(100, originalPrice, 5); err == nil {
			t.Fatalf("expected validation error for originalPrice=%v", originalPrice)
		}
	}
}

func TestValidateProductPricingOK(t *testing.T) {
	if err := validateProductPricing(100, 150, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validateProductPricing(100, 0, 0); err != nil {
		t.Fatalf("unexpected error without originalPrice: %v", err)
	}
}

func TestValidateProductPricingNegativeStock(t *testing.T) {
	if err := validateProductPricing(100, 0, -2); err == nil {
		t.Fatal("expected validation error for negative stock")
	}
}
