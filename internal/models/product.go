package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is the catalog document. Name/description come in an
// English + Bengali pair; the Bengali fields may be empty.
type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	NameBn         string             `bson:"nameBn,omitempty" json:"nameBn,omitempty"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	DescriptionBn  string             `bson:"descriptionBn,omitempty" json:"descriptionBn,omitempty"`
	Price          float64            `bson:"price" json:"price"`
	OriginalPrice  float64            `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	Category       string             `bson:"category" json:"category"`
	Subcategory    string             `bson:"subcategory,omitempty" json:"subcategory,omitempty"`
	Images         []string           `bson:"images" json:"images"`
	Tags           []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	InStock        bool               `bson:"inStock" json:"inStock"`
	StockQuantity  int                `bson:"stockQuantity" json:"stockQuantity"`
	IsFeatured     bool               `bson:"isFeatured" json:"isFeatured"`
	IsCustomizable bool               `bson:"isCustomizable" json:"isCustomizable"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
