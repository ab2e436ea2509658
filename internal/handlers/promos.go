package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
	"backend/internal/pricing"
)

type PromoCreateRequest struct {
	Code           string     `json:"code" binding:"required"`
	Title          string     `json:"title" binding:"required"`
	TitleBn        string     `json:"titleBn"`
	DiscountType   string     `json:"discountType" binding:"required,oneof=percentage fixed"`
	DiscountValue  float64    `json:"discountValue" binding:"required,gt=0"`
	MinOrderAmount float64    `json:"minOrderAmount"`
	IsActive       *bool      `json:"isActive"`
	ValidFrom      *time.Time `json:"validFrom"`
	ValidUntil     *time.Time `json:"validUntil"`
	UsageLimit     int        `json:"usageLimit"`
}

/*
GET /api/promos
*/
func GetPromos(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/promos"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("promos").Find(
			ctx,
			bson.M{},
			options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		promos := make([]models.Promo, 0)
		if err := cursor.All(ctx, &promos); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, promos)
	}
}

/*
GET /api/promos/:code?subtotal=
- runs the full validity chain; any failed clause yields 422 with a reason
*/
func ValidatePromo(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/promos/:code"
		defer handlePanic(c, route)

		code := strings.TrimSpace(c.Param("code"))
		if code == "" {
			respondWithError(c, http.StatusBadRequest, route, "code required")
			return
		}

		subtotal := 0.0
		if raw := strings.TrimSpace(c.Query("subtotal")); raw != "" {
			parsed, err := strconv.ParseFloat(raw, 64)
			if err != nil || parsed < 0 {
				respondWithError(c, http.StatusBadRequest, route, "invalid subtotal")
				return
			}
			subtotal = parsed
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		promo, issue, err := lookupPromo(ctx, db, code, subtotal)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if issue == promoIssueNotFound {
			respondWithError(c, http.StatusNotFound, route, issue)
			return
		}
		if issue != "" {
			respondWithError(c, http.StatusUnprocessableEntity, route, issue)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"promo":    promo,
			"discount": pricing.Discount(promo.DiscountType, promo.DiscountValue, subtotal),
		})
	}
}

/*
POST /api/promos
- code must be unique (case-normalized to upper)
*/
func CreatePromo(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/promos"
		defer handlePanic(c, route)

		var req PromoCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithFieldErrors(c, route, bindingFieldErrors(err))
			return
		}

		if req.DiscountType == models.DiscountPercentage && req.DiscountValue > 100 {
			respondWithError(c, http.StatusBadRequest, route, "percentage discount cannot exceed 100")
			return
		}
		if req.ValidFrom != nil && req.ValidUntil != nil && !req.ValidFrom.Before(*req.ValidUntil) {
			respondWithError(c, http.StatusBadRequest, route, "validFrom must be before validUntil")
			return
		}

		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}

		promo := models.Promo{
			Code:           strings.ToUpper(strings.TrimSpace(req.Code)),
			Title:          strings.TrimSpace(req.Title),
			TitleBn:        strings.TrimSpace(req.TitleBn),
			DiscountType:   req.DiscountType,
			DiscountValue:  req.DiscountValue,
			MinOrderAmount: req.MinOrderAmount,
			IsActive:       isActive,
			ValidFrom:      req.ValidFrom,
			ValidUntil:     req.ValidUntil,
			UsageLimit:     req.UsageLimit,
			UsedCount:      0,
			CreatedAt:      time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("promos").InsertOne(ctx, promo)
		if mongo.IsDuplicateKeyError(err) {
			respondWithError(c, http.StatusConflict, route, "promo code already exists")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		promo.ID = result.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, promo)
	}
}
