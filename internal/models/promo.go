package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Promo is a discount code. ValidFrom/ValidUntil and UsageLimit are
// optional; a zero UsageLimit means unlimited.
type Promo struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code           string             `bson:"code" json:"code"`
	Title          string             `bson:"title" json:"title"`
	TitleBn        string             `bson:"titleBn,omitempty" json:"titleBn,omitempty"`
	DiscountType   string             `bson:"discountType" json:"discountType"`
	DiscountValue  float64            `bson:"discountValue" json:"discountValue"`
	MinOrderAmount float64            `bson:"minOrderAmount,omitempty" json:"minOrderAmount,omitempty"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	ValidFrom      *time.Time         `bson:"validFrom,omitempty" json:"validFrom,omitempty"`
	ValidUntil     *time.Time         `bson:"validUntil,omitempty" json:"validUntil,omitempty"`
	UsageLimit     int                `bson:"usageLimit,omitempty" json:"usageLimit,omitempty"`
	UsedCount      int                `bson:"usedCount" json:"usedCount"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
