package handlers

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
)

// Promo rejection reasons. Every clause of the validity chain reports which
// one failed instead of silently applying no discount.
const (
	promoIssueNotFound  = "promo code not found"
	promoIssueInactive  = "promo code is not active"
	promoIssueNotYet    = "promo code is not valid yet"
	promoIssueExpired   = "promo code has expired"
	promoIssueExhausted = "promo code usage limit reached"
	promoIssueMinOrder  = "order subtotal below promo minimum"
)

// promoIssue runs the full validity chain against a cart subtotal. An empty
// return means the promo applies.
func promoIssue(p models.Promo, subtotal float64, now time.Time) string {
	if !p.IsActive {
		return promoIssueInactive
	}
	if p.ValidFrom != nil && now.Before(*p.ValidFrom) {
		return promoIssueNotYet
	}
	if p.ValidUntil != nil && !now.Before(*p.ValidUntil) {
		return promoIssueExpired
	}
	if p.UsageLimit > 0 && p.UsedCount >= p.UsageLimit {
		return promoIssueExhausted
	}
	if p.MinOrderAmount > 0 && subtotal < p.MinOrderAmount {
		return promoIssueMinOrder
	}
	return ""
}

// lookupPromo fetches a promo by exact code (codes are stored uppercase)
// and validates it against the subtotal. A missing code is an issue, not an
// error.
func lookupPromo(ctx context.Context, db *mongo.Database, code string, subtotal float64) (models.Promo, string, error) {
	var promo models.Promo
	err := db.Collection("promos").FindOne(ctx, bson.M{"code": strings.ToUpper(strings.TrimSpace(code))}).Decode(&promo)
	if err == mongo.ErrNoDocuments {
		return models.Promo{}, promoIssueNotFound, nil
	}
	if err != nil {
		return models.Promo{}, "", err
	}
	return promo, promoIssue(promo, subtotal, time.Now()), nil
}
