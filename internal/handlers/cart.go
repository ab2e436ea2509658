package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
	"backend/internal/pricing"
)

type CartAddRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type CartUpdateRequest struct {
	Quantity int `json:"quantity"`
}

/*
POST /api/cart/session
- mints an opaque session identifier for clients without one; the id is a
  capability for that session's own cart only
*/
func NewCartSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"sessionId": uuid.NewString()})
	}
}

func cartLines(items []models.CartItem) []pricing.Line {
	lines := make([]pricing.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, pricing.Line{Price: item.Price, Quantity: item.Quantity})
	}
	return lines
}

/*
GET /api/cart/:sessionId?zone=&district=&promo=
- totals are included when a zone or district is given; an invalid promo
  contributes zero discount and is reported, never silently accepted
*/
func GetCart(db *mongo.Database, cfg pricing.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/cart/:sessionId"
		defer handlePanic(c, route)

		sessionID := strings.TrimSpace(c.Param("sessionId"))
		if sessionID == "" {
			respondWithError(c, http.StatusBadRequest, route, "sessionId required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("cart_items").Find(
			ctx,
			bson.M{"sessionId": sessionID},
			options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}),
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		items := make([]models.CartItem, 0)
		if err := cursor.All(ctx, &items); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		response := gin.H{"items": items}

		zone := strings.TrimSpace(c.Query("zone"))
		district := strings.TrimSpace(c.Query("district"))
		if zone != "" || district != "" {
			discountType := ""
			discountValue := 0.0

			if code := strings.TrimSpace(c.Query("promo")); code != "" {
				subtotal := pricing.Subtotal(cartLines(items))
				promo, issue, err := lookupPromo(ctx, db, code, subtotal)
				if err != nil {
					respondWithError(c, http.StatusInternalServerError, route, "db error")
					return
				}
				if issue != "" {
					response["promoError"] = issue
				} else {
					discountType = promo.DiscountType
					discountValue = promo.DiscountValue
				}
			}

			var totals pricing.Totals
			if district != "" {
				totals = cfg.CalculateForDistrict(cartLines(items), district, discountType, discountValue)
			} else {
				totals = cfg.CalculateForZone(cartLines(items), zone, discountType, discountValue)
			}
			response["totals"] = totals
		}

		c.JSON(http.StatusOK, response)
	}
}

/*
POST /api/cart
- snapshots name/price/image from the product; adding a product already in
  the session increments its quantity instead of inserting a second line
*/
func AddCartItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/cart"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var req CartAddRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithFieldErrors(c, route, bindingFieldErrors(err))
			return
		}

		productID, err := primitive.ObjectIDFromHex(req.ProductID)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid productId")
			return
		}

		quantity := req.Quantity
		if quantity == 0 {
			quantity = 1
		}
		if quantity < 0 {
			respondWithError(c, http.StatusBadRequest, route, "quantity must be greater than zero")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0]
		}

		now := time.Now()
		filter := bson.M{
			"sessionId": req.SessionID,
			"productId": productID,
		}
		update := bson.M{
			"$inc": bson.M{"quantity": quantity},
			"$set": bson.M{"updatedAt": now},
			"$setOnInsert": bson.M{
				"sessionId": req.SessionID,
				"productId": productID,
				"name":      product.Name,
				"nameBn":    product.NameBn,
				"price":     product.Price,
				"image":     image,
				"createdAt": now,
			},
		}

		_, err = db.Collection("cart_items").UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
		if err != nil {
			log.Println("AddCartItem upsert error:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		var item models.CartItem
		if err := db.Collection("cart_items").FindOne(ctx, filter).Decode(&item); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusCreated, item)
	}
}

/*
PUT /api/cart/:id
- a quantity of zero or less removes the line
*/
func UpdateCartItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/cart/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req CartUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if req.Quantity <= 0 {
			if _, err := db.Collection("cart_items").DeleteOne(ctx, bson.M{"_id": id}); err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "item removed"})
			return
		}

		var updated models.CartItem
		err = db.Collection("cart_items").
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": id},
				bson.M{"$set": bson.M{"quantity": req.Quantity, "updatedAt": time.Now()}},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "cart item not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

/*
DELETE /api/cart/:id
- idempotent: deleting a missing line still succeeds
*/
func DeleteCartItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/cart/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if _, err := db.Collection("cart_items").DeleteOne(ctx, bson.M{"_id": id}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.Status(http.StatusNoContent)
	}
}

/*
DELETE /api/cart/session/:sessionId
*/
func ClearCartSession(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/cart/session/:sessionId"
		defer handlePanic(c, route)

		sessionID := strings.TrimSpace(c.Param("sessionId"))
		if sessionID == "" {
			respondWithError(c, http.StatusBadRequest, route, "sessionId required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("cart_items").DeleteMany(ctx, bson.M{"sessionId": sessionID})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] cleared %d items for session %s", route, result.DeletedCount, sessionID)
		c.JSON(http.StatusOK, gin.H{"cleared": result.DeletedCount})
	}
}
