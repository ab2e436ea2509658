package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

type DesignRequest struct {
	SessionID string                 `json:"sessionId" binding:"required"`
	ProductID string                 `json:"productId" binding:"required"`
	Elements  []models.DesignElement `json:"elements" binding:"required,dive"`
	Preview   string                 `json:"preview"`
}

type DesignUpdateRequest struct {
	Elements *[]models.DesignElement `json:"elements"`
	Preview  *string                 `json:"preview"`
}

/*
POST /api/custom-designs
*/
func CreateCustomDesign(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/custom-designs"
		defer handlePanic(c, route)

		var req DesignRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithFieldErrors(c, route, bindingFieldErrors(err))
			return
		}

		productID, err := primitive.ObjectIDFromHex(req.ProductID)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid productId")
			return
		}

		for _, element := range req.Elements {
			if element.Type != "text" && element.Type != "image" {
				respondWithError(c, http.StatusBadRequest, route, "element type must be text or image")
				return
			}
		}

		design := models.CustomDesign{
			SessionID: strings.TrimSpace(req.SessionID),
			ProductID: productID,
			Elements:  req.Elements,
			Preview:   req.Preview,
			CreatedAt: time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("custom_designs").InsertOne(ctx, design)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		design.ID = result.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, design)
	}
}

/*
GET /api/custom-designs/:sessionId
*/
func GetCustomDesigns(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/custom-designs/:sessionId"
		defer handlePanic(c, route)

		sessionID := strings.TrimSpace(c.Param("sessionId"))
		if sessionID == "" {
			respondWithError(c, http.StatusBadRequest, route, "sessionId required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("custom_designs").Find(
			ctx,
			bson.M{"sessionId": sessionID},
			options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		designs := make([]models.CustomDesign, 0)
		if err := cursor.All(ctx, &designs); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, designs)
	}
}

/*
PUT /api/custom-designs/:id
*/
func UpdateCustomDesign(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/custom-designs/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req DesignUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		update := bson.M{}
		if req.Elements != nil {
			for _, element := range *req.Elements {
				if element.Type != "text" && element.Type != "image" {
					respondWithError(c, http.StatusBadRequest, route, "element type must be text or image")
					return
				}
			}
			update["elements"] = *req.Elements
		}
		if req.Preview != nil {
			update["preview"] = *req.Preview
		}

		if len(update) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "no fields to update")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.CustomDesign
		err = db.Collection("custom_designs").
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": id},
				bson.M{"$set": update},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "design not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}
