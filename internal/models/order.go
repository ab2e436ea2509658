package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is a frozen copy of a cart line taken at order-creation time.
// Later catalog changes never alter it.
type OrderItem struct {
	ProductID    primitive.ObjectID `bson:"productId" json:"productId"`
	Name         string             `bson:"name" json:"name"`
	Price        float64            `bson:"price" json:"price"`
	Quantity     int                `bson:"quantity" json:"quantity"`
	CustomDesign bson.M             `bson:"customDesign,omitempty" json:"customDesign,omitempty"`
}

type DeliveryAddress struct {
	Street     string `bson:"street" json:"street"`
	District   string `bson:"district" json:"district"`
	Thana      string `bson:"thana" json:"thana"`
	PostalCode string `bson:"postalCode,omitempty" json:"postalCode,omitempty"`
}

// Order is the persisted order document. OrderCode is the human-facing
// tracking identifier, assigned once and never reused. Subtotal has any
// promo discount already netted in, so Total == Subtotal + DeliveryFee
// always holds.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderCode     string             `bson:"orderCode" json:"orderCode"`
	CustomerName  string             `bson:"customerName" json:"customerName"`
	Phone         string             `bson:"phone" json:"phone"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	Address       DeliveryAddress    `bson:"address" json:"address"`
	Items         []OrderItem        `bson:"items" json:"items"`
	Subtotal      float64            `bson:"subtotal" json:"subtotal"`
	DeliveryFee   float64            `bson:"deliveryFee" json:"deliveryFee"`
	Total         float64            `bson:"total" json:"total"`
	PromoCode     string             `bson:"promoCode,omitempty" json:"promoCode,omitempty"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	OrderStatus   OrderStatus        `bson:"orderStatus" json:"orderStatus"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
