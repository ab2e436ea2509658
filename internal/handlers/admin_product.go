package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
)

/* =======================
   REQUEST MODELS
======================= */

type ProductCreateRequest struct {
	Name           string   `json:"name" binding:"required"`
	NameBn         string   `json:"nameBn"`
	Description    string   `json:"description"`
	DescriptionBn  string   `json:"descriptionBn"`
	Price          *float64 `json:"price" binding:"required"`
	OriginalPrice  float64  `json:"originalPrice"`
	Category       string   `json:"category" binding:"required"`
	Subcategory    string   `json:"subcategory"`
	Images         []string `json:"images"`
	Tags           []string `json:"tags"`
	StockQuantity  *int     `json:"stockQuantity" binding:"required"`
	IsFeatured     bool     `json:"isFeatured"`
	IsCustomizable bool     `json:"isCustomizable"`
}

type ProductUpdateRequest struct {
	Name           *string   `json:"name"`
	NameBn         *string   `json:"nameBn"`
	Description    *string   `json:"description"`
	DescriptionBn  *string   `json:"descriptionBn"`
	Price          *float64  `json:"price"`
	OriginalPrice  *float64  `json:"originalPrice"`
	Category       *string   `json:"category"`
	Subcategory    *string   `json:"subcategory"`
	Images         *[]string `json:"images"`
	Tags           *[]string `json:"tags"`
	StockQuantity  *int      `json:"stockQuantity"`
	InStock        *bool     `json:"inStock"`
	IsFeatured     *bool     `json:"isFeatured"`
	IsCustomizable *bool     `json:"isCustomizable"`
}

/* =======================
   CREATE
======================= */

func CreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/products"
		defer handlePanic(c, route)

		var req ProductCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithFieldErrors(c, route, bindingFieldErrors(err))
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			respondWithError(c, http.StatusBadRequest, route, "name required")
			return
		}

		if err := validateProductPricing(*req.Price, req.OriginalPrice, *req.StockQuantity); err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		category := strings.TrimSpace(req.Category)
		if category == "" {
			respondWithError(c, http.StatusBadRequest, route, "category required")
			return
		}

		images := req.Images
		if images == nil {
			images = []string{}
		}

		now := time.Now()
		product := models.Product{
			Name:           name,
			NameBn:         strings.TrimSpace(req.NameBn),
			Description:    strings.TrimSpace(req.Description),
			DescriptionBn:  strings.TrimSpace(req.DescriptionBn),
			Price:          *req.Price,
			OriginalPrice:  req.OriginalPrice,
			Category:       category,
			Subcategory:    strings.TrimSpace(req.Subcategory),
			Images:         images,
			Tags:           req.Tags,
			InStock:        *req.StockQuantity > 0,
			StockQuantity:  *req.StockQuantity,
			IsFeatured:     req.IsFeatured,
			IsCustomizable: req.IsCustomizable,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			log.Println("CreateProduct insert error:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		product.ID = res.InsertedID.(primitive.ObjectID)
		log.Println("CreateProduct insert success:", product.ID.Hex())
		c.JSON(http.StatusCreated, product)
	}
}

/* =======================
   UPDATE (partial)
======================= */

func UpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/products/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req ProductUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		updateSet := bson.M{}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				respondWithError(c, http.StatusBadRequest, route, "name required")
				return
			}
			updateSet["name"] = name
		}
		if req.NameBn != nil {
			updateSet["nameBn"] = strings.TrimSpace(*req.NameBn)
		}
		if req.Description != nil {
			updateSet["description"] = strings.TrimSpace(*req.Description)
		}
		if req.DescriptionBn != nil {
			updateSet["descriptionBn"] = strings.TrimSpace(*req.DescriptionBn)
		}

		price := existing.Price
		if req.Price != nil {
			price = *req.Price
		}
		originalPrice := existing.OriginalPrice
		if req.OriginalPrice != nil {
			originalPrice = *req.OriginalPrice
		}
		stock := existing.StockQuantity
		if req.StockQuantity != nil {
			stock = *req.StockQuantity
		}
		if err := validateProductPricing(price, originalPrice, stock); err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		if req.Price != nil {
			updateSet["price"] = *req.Price
		}
		if req.OriginalPrice != nil {
			updateSet["originalPrice"] = *req.OriginalPrice
		}
		if req.StockQuantity != nil {
			updateSet["stockQuantity"] = *req.StockQuantity
			updateSet["inStock"] = *req.StockQuantity > 0
		} else if req.InStock != nil {
			updateSet["inStock"] = *req.InStock
		}

		if req.Category != nil {
			category := strings.TrimSpace(*req.Category)
			if category == "" {
				respondWithError(c, http.StatusBadRequest, route, "category required")
				return
			}
			updateSet["category"] = category
		}
		if req.Subcategory != nil {
			updateSet["subcategory"] = strings.TrimSpace(*req.Subcategory)
		}
		if req.Images != nil {
			updateSet["images"] = *req.Images
		}
		if req.Tags != nil {
			updateSet["tags"] = *req.Tags
		}
		if req.IsFeatured != nil {
			updateSet["isFeatured"] = *req.IsFeatured
		}
		if req.IsCustomizable != nil {
			updateSet["isCustomizable"] = *req.IsCustomizable
		}

		if len(updateSet) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "no fields to update")
			return
		}
		updateSet["updatedAt"] = time.Now()

		result, err := db.Collection("products").UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updateSet})
		if err != nil {
			log.Println("UpdateProduct update error:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}

		var updated models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

/* =======================
   DELETE (hard)
======================= */

func DeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/products/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.DeletedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}

		c.Status(http.StatusNoContent)
	}
}
