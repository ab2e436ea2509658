package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handlers"
)

func main() {
	config.Load()
	handlers.RegisterValidators()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}
	if err := database.EnsureCategoryIndexes(db); err != nil {
		log.Printf("category index warning: %v", err)
	}
	if err := database.EnsureCartIndexes(db); err != nil {
		log.Printf("cart index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsurePromoIndexes(db); err != nil {
		log.Printf("promo index warning: %v", err)
	}

	pricingCfg := config.AppEnv.Pricing

	r := gin.Default()

	r.GET("/health", handlers.Health())

	api := r.Group("/api")
	{
		api.GET("/health/db", handlers.HealthDB(db))

		api.GET("/products", handlers.GetProducts(db))
		api.GET("/products/:id", handlers.GetProduct(db))
		api.POST("/products", handlers.CreateProduct(db))
		api.PUT("/products/:id", handlers.UpdateProduct(db))
		api.DELETE("/products/:id", handlers.DeleteProduct(db))

		api.GET("/categories", handlers.GetCategories(db))
		api.POST("/categories", handlers.CreateCategory(db))
		api.PUT("/categories/:id", handlers.UpdateCategory(db))
		api.DELETE("/categories/:id", handlers.DeleteCategory(db))

		api.POST("/cart/session", handlers.NewCartSession())
		api.GET("/cart/:sessionId", handlers.GetCart(db, pricingCfg))
		api.POST("/cart", handlers.AddCartItem(db))
		api.PUT("/cart/:id", handlers.UpdateCartItem(db))
		api.DELETE("/cart/:id", handlers.DeleteCartItem(db))
		api.DELETE("/cart/session/:sessionId", handlers.ClearCartSession(db))

		api.GET("/orders", handlers.GetOrders(db))
		api.GET("/orders/:orderId", handlers.GetOrder(db))
		api.POST("/orders", handlers.CreateOrder(db, pricingCfg))
		api.PATCH("/orders/:orderId/status", handlers.UpdateOrderStatus(db))
		api.PATCH("/orders/:orderId/payment", handlers.UpdatePaymentStatus(db))

		api.POST("/contact-messages", handlers.CreateContactMessage(db))
		api.GET("/contact-messages", handlers.GetContactMessages(db))
		api.PATCH("/contact-messages/:id/status", handlers.UpdateContactMessageStatus(db))

		api.POST("/custom-designs", handlers.CreateCustomDesign(db))
		api.GET("/custom-designs/:sessionId", handlers.GetCustomDesigns(db))
		api.PUT("/custom-designs/:id", handlers.UpdateCustomDesign(db))

		api.GET("/promos", handlers.GetPromos(db))
		api.GET("/promos/:code", handlers.ValidatePromo(db))
		api.POST("/promos", handlers.CreatePromo(db))
	}

	r.Run(":" + config.AppEnv.Port)
}
