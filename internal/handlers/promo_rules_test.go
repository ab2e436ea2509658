package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"backend/internal/models"
)

func activePromo() models.Promo {
	return models.Promo{
		Code:          "SAVE10",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 10,
		IsActive:      true,
	}
}

func TestPromoIssueOK(t *testing.T) {
	assert.Empty(t, promoIssue(activePromo(), 500, time.Now()))
}

func TestPromoIssueInactive(t *testing.T) {
	p := activePromo()
	p.IsActive = false
	assert.Equal(t, promoIssueInactive, promoIssue(p, 500, time.Now()))
}

func TestPromoIssueValidityWindow(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	p := activePromo()
	p.ValidFrom = &future
	assert.Equal(t, promoIssueNotYet, promoIssue(p, 500, now))

	p = activePromo()
	p.ValidUntil = &past
	assert.Equal(t, promoIssueExpired, promoIssue(p, 500, now))

	p = activePromo()
	p.ValidFrom = &past
	p.ValidUntil = &future
	assert.Empty(t, promoIssue(p, 500, now))
}

func TestPromoIssueUsageLimit(t *testing.T) {
	p := activePromo()
	p.UsageLimit = 5
	p.UsedCount = 5
	assert.Equal(t, promoIssueExhausted, promoIssue(p, 500, time.Now()))

	p.UsedCount = 4
	assert.Empty(t, promoIssue(p, 500, time.Now()))

	// zero limit means unlimited
	p = activePromo()
	p.UsedCount = 10000
	assert.Empty(t, promoIssue(p, 500, time.Now()))
}

func TestPromoIssueMinOrder(t *testing.T) {
	p := activePromo()
	p.MinOrderAmount = 1000
	assert.Equal(t, promoIssueMinOrder, promoIssue(p, 999, time.Now()))
	assert.Empty(t, promoIssue(p, 1000, time.Now()))
}
