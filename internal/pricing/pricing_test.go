package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		MetroFee:              70,
		OutsideFee:            120,
		FreeDeliveryThreshold: 1500,
		MetroDistricts:        []string{"Dhaka", "Gazipur", "Narayanganj"},
	}
}

func TestSubtotal(t *testing.T) {
	lines := []Line{
		{Price: 350, Quantity: 2},
		{Price: 550, Quantity: 1},
	}
	assert.Equal(t, 1250.0, Subtotal(lines))
	assert.Equal(t, 0.0, Subtotal(nil))
}

func TestFeeForZone(t *testing.T) {
	cfg := testConfig()

	assert.Equal(t, 70.0, cfg.FeeForZone(ZoneMetro, 1250))
	assert.Equal(t, 120.0, cfg.FeeForZone(ZoneOutside, 1250))
	assert.Equal(t, 120.0, cfg.FeeForZone("somewhere-else", 1250))

	// waived at and above the threshold, for every zone
	assert.Equal(t, 0.0, cfg.FeeForZone(ZoneMetro, 1500))
	assert.Equal(t, 0.0, cfg.FeeForZone(ZoneOutside, 1950))
}

func TestFeeForDistrict(t *testing.T) {
	cfg := testConfig()

	assert.Equal(t, 70.0, cfg.FeeForDistrict("Dhaka", 100))
	assert.Equal(t, 70.0, cfg.FeeForDistrict("  dhaka ", 100))
	assert.Equal(t, 120.0, cfg.FeeForDistrict("Khulna", 100))
	assert.Equal(t, 0.0, cfg.FeeForDistrict("Khulna", 2000))
}

func TestDiscount(t *testing.T) {
	assert.Equal(t, 125.0, Discount("percentage", 10, 1250))
	assert.Equal(t, 100.0, Discount("fixed", 100, 1250))

	// capped at the subtotal
	assert.Equal(t, 200.0, Discount("fixed", 500, 200))
	assert.Equal(t, 0.0, Discount("fixed", -50, 200))

	// unknown type contributes nothing
	assert.Equal(t, 0.0, Discount("bogus", 10, 1250))
}

func TestTotalNeverNegative(t *testing.T) {
	assert.Equal(t, 120.0, Total(100, 500, 120))
	assert.Equal(t, 0.0, Total(100, 100, 0))
}

func TestCalculateForZoneScenario(t *testing.T) {
	cfg := testConfig()

	// two line items below the free-delivery threshold
	lines := []Line{
		{Price: 350, Quantity: 2},
		{Price: 550, Quantity: 1},
	}
	totals := cfg.CalculateForZone(lines, ZoneMetro, "", 0)
	require.Equal(t, 1250.0, totals.Subtotal)
	require.Equal(t, 70.0, totals.DeliveryFee)
	require.Equal(t, 1320.0, totals.Total)

	// raising the first quantity to 4 crosses the threshold
	lines[0].Quantity = 4
	totals = cfg.CalculateForZone(lines, ZoneMetro, "", 0)
	require.Equal(t, 1950.0, totals.Subtotal)
	require.Equal(t, 0.0, totals.DeliveryFee)
	require.Equal(t, 1950.0, totals.Total)
}

func TestCalculateDiscountAppliesToSubtotalOnly(t *testing.T) {
	cfg := testConfig()
	lines := []Line{{Price: 500, Quantity: 2}}

	totals := cfg.CalculateForZone(lines, ZoneOutside, "percentage", 10)
	assert.Equal(t, 1000.0, totals.Subtotal)
	assert.Equal(t, 100.0, totals.Discount)
	assert.Equal(t, 120.0, totals.DeliveryFee)
	assert.Equal(t, 1020.0, totals.Total)
}

func TestCalculateForDistrict(t *testing.T) {
	cfg := testConfig()
	lines := []Line{{Price: 200, Quantity: 1}}

	metro := cfg.CalculateForDistrict(lines, "Narayanganj", "", 0)
	outside := cfg.CalculateForDistrict(lines, "Sylhet", "", 0)
	assert.Equal(t, 70.0, metro.DeliveryFee)
	assert.Equal(t, 120.0, outside.DeliveryFee)
}
