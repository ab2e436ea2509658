package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
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

/* =========================
   REQUEST DTOs
========================= */

type createOrderItemRequest struct {
	ProductID    string `json:"productId" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required,gt=0"`
	CustomDesign bson.M `json:"customDesign"`
}

type createOrderAddressRequest struct {
	Street     string `json:"street" binding:"required"`
	District   string `json:"district" binding:"required"`
	Thana      string `json:"thana" binding:"required"`
	PostalCode string `json:"postalCode"`
}

type createOrderRequest struct {
	CustomerName  string                    `json:"customerName" binding:"required"`
	Phone         string                    `json:"phone" binding:"required,bdphone"`
	Email         string                    `json:"email" binding:"omitempty,email"`
	Address       createOrderAddressRequest `json:"address" binding:"required"`
	PaymentMethod string                    `json:"paymentMethod" binding:"required"`
	PromoCode     string                    `json:"promoCode"`
	Notes         string                    `json:"notes"`
	Items         []createOrderItemRequest  `json:"items" binding:"required,min=1,dive"`
}

type statusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

/* =========================
   TYPED FAILURES
========================= */

type outOfStockError struct {
	ProductID primitive.ObjectID
	Available int
	Requested int
}

func (e outOfStockError) Error() string {
	return "product out of stock"
}

type productNotFoundError struct {
	ProductID primitive.ObjectID
}

func (e productNotFoundError) Error() string {
	return "product not found"
}

type invalidPromoError struct {
	Reason string
}

func (e invalidPromoError) Error() string {
	return e.Reason
}

/* =========================
   CREATE ORDER
========================= */

func CreateOrder(db *mongo.Database, cfg pricing.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithFieldErrors(c, route, bindingFieldErrors(err))
			return
		}

		order, err := buildOrderFromRequest(req)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		// the order code draw can collide; retry the whole transaction
		// with a fresh code when the unique index rejects the insert
		var created models.Order
		for attempt := 0; attempt < 3; attempt++ {
			order.OrderCode = generateOrderCode(time.Now())
			created, err = insertOrderTxn(ctx, db, cfg, order, req.PromoCode)
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			break
		}
		if err != nil {
			var stockErr outOfStockError
			if errors.As(err, &stockErr) {
				c.JSON(http.StatusConflict, gin.H{
					"error":     "out of stock",
					"productId": stockErr.ProductID.Hex(),
					"available": stockErr.Available,
					"requested": stockErr.Requested,
				})
				return
			}
			var notFoundErr productNotFoundError
			if errors.As(err, &notFoundErr) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":     "product not found",
					"productId": notFoundErr.ProductID.Hex(),
				})
				return
			}
			var promoErr invalidPromoError
			if errors.As(err, &promoErr) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": promoErr.Reason})
				return
			}
			log.Printf("[%s] create failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] order created code=%s total=%.2f", route, created.OrderCode, created.Total)
		c.JSON(http.StatusCreated, created)
	}
}

// insertOrderTxn snapshots the lines, decrements stock, applies the promo
// and inserts the order, all inside one transaction. Stock is decremented
// with a stock>=qty guard, so two concurrent checkouts can never oversell:
// the losing one aborts with outOfStockError and nothing is persisted.
func insertOrderTxn(ctx context.Context, db *mongo.Database, cfg pricing.Config, order models.Order, promoCode string) (models.Order, error) {
	session, err := db.Client().StartSession()
	if err != nil {
		return models.Order{}, err
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		snapshot := make([]models.OrderItem, 0, len(order.Items))
		subtotal := 0.0

		for _, item := range order.Items {
			var product models.Product
			err := db.Collection("products").FindOne(sessCtx, bson.M{"_id": item.ProductID}).Decode(&product)
			if err == mongo.ErrNoDocuments {
				return nil, productNotFoundError{ProductID: item.ProductID}
			}
			if err != nil {
				return nil, err
			}

			if product.StockQuantity < item.Quantity {
				return nil, outOfStockError{
					ProductID: item.ProductID,
					Available: product.StockQuantity,
					Requested: item.Quantity,
				}
			}

			res, err := db.Collection("products").UpdateOne(
				sessCtx,
				bson.M{
					"_id":           item.ProductID,
					"stockQuantity": bson.M{"$gte": item.Quantity},
				},
				bson.M{
					"$inc": bson.M{"stockQuantity": -item.Quantity},
					"$set": bson.M{"updatedAt": time.Now()},
				},
			)
			if err != nil {
				return nil, err
			}
			if res.MatchedCount == 0 {
				return nil, outOfStockError{
					ProductID: item.ProductID,
					Available: product.StockQuantity,
					Requested: item.Quantity,
				}
			}

			if product.StockQuantity-item.Quantity <= 0 {
				_, err = db.Collection("products").UpdateOne(
					sessCtx,
					bson.M{"_id": item.ProductID, "stockQuantity": bson.M{"$lte": 0}},
					bson.M{"$set": bson.M{"inStock": false}},
				)
				if err != nil {
					return nil, err
				}
			}

			snapshot = append(snapshot, models.OrderItem{
				ProductID:    item.ProductID,
				Name:         product.Name,
				Price:        product.Price,
				Quantity:     item.Quantity,
				CustomDesign: item.CustomDesign,
			})
			subtotal += product.Price * float64(item.Quantity)
		}

		discount := 0.0
		if code := strings.TrimSpace(promoCode); code != "" {
			promo, issue, err := lookupPromo(sessCtx, db, code, subtotal)
			if err != nil {
				return nil, err
			}
			if issue != "" {
				return nil, invalidPromoError{Reason: issue}
			}

			// usage counter is bumped with the limit re-checked in the
			// filter so concurrent checkouts cannot overspend the promo
			usageFilter := bson.M{"_id": promo.ID}
			if promo.UsageLimit > 0 {
				usageFilter["usedCount"] = bson.M{"$lt": promo.UsageLimit}
			}
			res, err := db.Collection("promos").UpdateOne(sessCtx, usageFilter, bson.M{"$inc": bson.M{"usedCount": 1}})
			if err != nil {
				return nil, err
			}
			if res.MatchedCount == 0 {
				return nil, invalidPromoError{Reason: promoIssueExhausted}
			}

			discount = pricing.Discount(promo.DiscountType, promo.DiscountValue, subtotal)
			order.PromoCode = promo.Code
		}

		// fee threshold applies to the gross subtotal; the discount is
		// netted into the stored subtotal so total == subtotal + fee
		fee := cfg.FeeForDistrict(order.Address.District, subtotal)
		order.Items = snapshot
		order.Subtotal = subtotal - discount
		if order.Subtotal < 0 {
			order.Subtotal = 0
		}
		order.DeliveryFee = fee
		order.Total = pricing.Total(subtotal, discount, fee)

		res, err := db.Collection("orders").InsertOne(sessCtx, order)
		if err != nil {
			return nil, err
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			order.ID = id
		}
		return order, nil
	})
	if err != nil {
		return models.Order{}, err
	}

	return result.(models.Order), nil
}

func buildOrderFromRequest(req createOrderRequest) (models.Order, error) {
	items := make([]models.OrderItem, 0, len(req.Items))
	seen := map[primitive.ObjectID]bool{}

	for _, item := range req.Items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return models.Order{}, errors.New("invalid productId")
		}
		if seen[productID] {
			return models.Order{}, errors.New("duplicate productId in items")
		}
		seen[productID] = true

		items = append(items, models.OrderItem{
			ProductID:    productID,
			Quantity:     item.Quantity,
			CustomDesign: item.CustomDesign,
		})
	}

	now := time.Now()
	order := models.Order{
		CustomerName: strings.TrimSpace(req.CustomerName),
		Phone:        strings.TrimSpace(req.Phone),
		Email:        strings.TrimSpace(req.Email),
		Address: models.DeliveryAddress{
			Street:     strings.TrimSpace(req.Address.Street),
			District:   strings.TrimSpace(req.Address.District),
			Thana:      strings.TrimSpace(req.Address.Thana),
			PostalCode: strings.TrimSpace(req.Address.PostalCode),
		},
		Items:         items,
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		PaymentStatus: models.PaymentPending,
		OrderStatus:   models.OrderPending,
		Notes:         strings.TrimSpace(req.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	return order, nil
}

/* =========================
   TRACKING PROJECTION
========================= */

type orderTracking struct {
	Stages       []models.OrderStatus `json:"stages"`
	CurrentIndex int                  `json:"currentIndex"`
	Cancelled    bool                 `json:"cancelled"`
}

// trackingFor projects the stored status onto the linear display sequence.
// A status outside the known set yields index -1 ("position unknown") so a
// bad value stored before enum enforcement never breaks tracking.
func trackingFor(status models.OrderStatus) orderTracking {
	return orderTracking{
		Stages:       models.OrderProgress,
		CurrentIndex: status.ProgressIndex(),
		Cancelled:    status == models.OrderCancelled,
	}
}

/* =========================
   READS
========================= */

/*
GET /api/orders/:orderId
- the path param is the human-facing order code
*/
func GetOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders/:orderId"
		defer handlePanic(c, route)

		code := strings.TrimSpace(c.Param("orderId"))
		if code == "" {
			respondWithError(c, http.StatusBadRequest, route, "order code required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err := db.Collection("orders").FindOne(ctx, bson.M{"orderCode": code}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"order":    order,
			"tracking": trackingFor(order.OrderStatus),
		})
	}
}

/*
GET /api/orders?status=&dateFrom=&dateTo=
- most recent first
*/
func GetOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/orders"
		defer handlePanic(c, route)

		filter := bson.M{}

		if raw := strings.TrimSpace(c.Query("status")); raw != "" {
			status, ok := models.ParseOrderStatus(raw)
			if !ok {
				respondWithError(c, http.StatusBadRequest, route, "unknown status")
				return
			}
			filter["orderStatus"] = status
		}

		createdAt := bson.M{}
		if raw := strings.TrimSpace(c.Query("dateFrom")); raw != "" {
			from, err := parseDateParam(raw)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid dateFrom")
				return
			}
			createdAt["$gte"] = from
		}
		if raw := strings.TrimSpace(c.Query("dateTo")); raw != "" {
			to, err := parseDateParam(raw)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid dateTo")
				return
			}
			// inclusive day upper bound for date-only values
			createdAt["$lt"] = to.Add(24 * time.Hour)
		}
		if len(createdAt) > 0 {
			filter["createdAt"] = createdAt
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("orders").Find(
			ctx,
			filter,
			options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

func parseDateParam(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

/* =========================
   STATUS MUTATIONS
========================= */

/*
PATCH /api/orders/:orderId/status
- closed enum with forward-only transitions; cancel allowed from any
  non-terminal state
*/
func UpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/orders/:orderId/status"
		defer handlePanic(c, route)

		code := strings.TrimSpace(c.Param("orderId"))

		var req statusUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		next, ok := models.ParseOrderStatus(strings.TrimSpace(req.Status))
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "unknown status")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err := db.Collection("orders").FindOne(ctx, bson.M{"orderCode": code}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if !order.OrderStatus.CanTransitionTo(next) {
			respondWithError(c, http.StatusConflict, route,
				"illegal status transition: "+string(order.OrderStatus)+" -> "+string(next))
			return
		}

		// guard on the previous status so a concurrent admin update
		// cannot slip an illegal transition through
		var updated models.Order
		err = db.Collection("orders").
			FindOneAndUpdate(
				ctx,
				bson.M{"orderCode": code, "orderStatus": order.OrderStatus},
				bson.M{"$set": bson.M{"orderStatus": next, "updatedAt": time.Now()}},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusConflict, route, "order status changed concurrently")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] %s: %s -> %s", route, code, order.OrderStatus, next)
		c.JSON(http.StatusOK, gin.H{
			"order":    updated,
			"tracking": trackingFor(updated.OrderStatus),
		})
	}
}

/*
PATCH /api/orders/:orderId/payment
*/
func UpdatePaymentStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /api/orders/:orderId/payment"
		defer handlePanic(c, route)

		code := strings.TrimSpace(c.Param("orderId"))

		var req statusUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		next, ok := models.ParsePaymentStatus(strings.TrimSpace(req.Status))
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "unknown payment status")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err := db.Collection("orders").FindOne(ctx, bson.M{"orderCode": code}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if !order.PaymentStatus.CanTransitionTo(next) {
			respondWithError(c, http.StatusConflict, route,
				"illegal payment transition: "+string(order.PaymentStatus)+" -> "+string(next))
			return
		}

		var updated models.Order
		err = db.Collection("orders").
			FindOneAndUpdate(
				ctx,
				bson.M{"orderCode": code, "paymentStatus": order.PaymentStatus},
				bson.M{"$set": bson.M{"paymentStatus": next, "updatedAt": time.Now()}},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusConflict, route, "payment status changed concurrently")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] %s: %s -> %s", route, code, order.PaymentStatus, next)
		c.JSON(http.StatusOK, updated)
	}
}
