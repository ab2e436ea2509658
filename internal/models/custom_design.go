package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DesignElement is one placed element of a design sketch. Type is "text" or
// "image"; Content holds the text body or the image reference accordingly.
type DesignElement struct {
	Type     string  `bson:"type" json:"type"`
	Content  string  `bson:"content" json:"content"`
	X        float64 `bson:"x" json:"x"`
	Y        float64 `bson:"y" json:"y"`
	Width    float64 `bson:"width" json:"width"`
	Height   float64 `bson:"height" json:"height"`
	Rotation float64 `bson:"rotation" json:"rotation"`
	Font     string  `bson:"font,omitempty" json:"font,omitempty"`
	Color    string  `bson:"color,omitempty" json:"color,omitempty"`
}

// CustomDesign is a detached sketch tied to a session; it is not linked to
// orders beyond an optional copy on an order line.
type CustomDesign struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID string             `bson:"sessionId" json:"sessionId"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Elements  []DesignElement    `bson:"elements" json:"elements"`
	Preview   string             `bson:"preview,omitempty" json:"preview,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
