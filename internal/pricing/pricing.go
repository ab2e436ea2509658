// Package pricing computes cart totals: subtotal, delivery fee by zone or
// district, promo discount and the final total. Everything is pure; the one
// fee table lives in Config and is shared by every call site.
package pricing

import "strings"

const (
	ZoneMetro   = "inside-metro"
	ZoneOutside = "outside-metro"
)

type Config struct {
	MetroFee              float64
	OutsideFee            float64
	FreeDeliveryThreshold float64
	MetroDistricts        []string
}

// Line is the price-relevant slice of a cart item.
type Line struct {
	Price    float64
	Quantity int
}

type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"deliveryFee"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`
}

func Subtotal(lines []Line) float64 {
	sum := 0.0
	for _, line := range lines {
		sum += line.Price * float64(line.Quantity)
	}
	return sum
}

// FeeForZone returns the flat fee for a coarse zone, waived entirely once
// the subtotal reaches the free-delivery threshold. Unknown zones charge
// the outside rate.
func (c Config) FeeForZone(zone string, subtotal float64) float64 {
	if c.FreeDeliveryThreshold > 0 && subtotal >= c.FreeDeliveryThreshold {
		return 0
	}
	if zone == ZoneMetro {
		return c.MetroFee
	}
	return c.OutsideFee
}

func (c Config) IsMetroDistrict(district string) bool {
	for _, metro := range c.MetroDistricts {
		if strings.EqualFold(strings.TrimSpace(district), metro) {
			return true
		}
	}
	return false
}

// FeeForDistrict maps the district onto a zone and delegates to FeeForZone.
func (c Config) FeeForDistrict(district string, subtotal float64) float64 {
	if c.IsMetroDistrict(district) {
		return c.FeeForZone(ZoneMetro, subtotal)
	}
	return c.FeeForZone(ZoneOutside, subtotal)
}

// Discount computes the promo reduction against the subtotal only; the
// delivery fee is never discounted. The result is capped at the subtotal.
func Discount(discountType string, value, subtotal float64) float64 {
	var discount float64
	switch discountType {
	case "percentage":
		discount = subtotal * value / 100
	case "fixed":
		discount = value
	default:
		return 0
	}
	if discount < 0 {
		return 0
	}
	if discount > subtotal {
		return subtotal
	}
	return discount
}

// Total is max(0, subtotal-discount) + fee; it can never go negative.
func Total(subtotal, discount, fee float64) float64 {
	net := subtotal - discount
	if net < 0 {
		net = 0
	}
	return net + fee
}

// CalculateForZone derives all aggregates for a cart in one pass.
func (c Config) CalculateForZone(lines []Line, zone, discountType string, discountValue float64) Totals {
	subtotal := Subtotal(lines)
	fee := c.FeeForZone(zone, subtotal)
	discount := Discount(discountType, discountValue, subtotal)
	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Discount:    discount,
		Total:       Total(subtotal, discount, fee),
	}
}

// CalculateForDistrict is CalculateForZone with the district-to-zone mapping
// applied first.
func (c Config) CalculateForDistrict(lines []Line, district, discountType string, discountValue float64) Totals {
	if c.IsMetroDistrict(district) {
		return c.CalculateForZone(lines, ZoneMetro, discountType, discountValue)
	}
	return c.CalculateForZone(lines, ZoneOutside, discountType, discountValue)
}
