package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"ecommerce-backend/internal/config"
	"ecommerce-backend/internal/database"
	"ecommerce-backend/internal/handlers"
	"ecommerce-backend/internal/middleware"
	"ecommerce-backend/internal/payment"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)
	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}

	gateway := payment.NewBraintree(
		config.AppEnv.BraintreeEnv,
		config.AppEnv.BraintreeMerchant,
		config.AppEnv.BraintreePublic,
		config.AppEnv.BraintreePrivate,
	)

	secret := config.AppEnv.JWTSecret
	tokenTTL := config.AppEnv.TokenTTL

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppEnv.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	signedIn := middleware.RequireSignIn(secret)
	admin := middleware.IsAdmin(db)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", handlers.Register(db))
		auth.POST("/login", handlers.Login(db, secret, tokenTTL))
		auth.POST("/forgot-password", handlers.ForgotPassword(db))
		auth.GET("/test", signedIn, admin, handlers.Test())
		auth.GET("/user-auth", signedIn, handlers.AuthCheck())
		auth.GET("/admin-auth", signedIn, admin, handlers.AuthCheck())
		auth.PUT("/profile", signedIn, handlers.UpdateProfile(db))
		auth.GET("/orders", signedIn, handlers.GetOrders(db))
		auth.GET("/all-orders", signedIn, admin, handlers.GetAllOrders(db))
		auth.PUT("/order-status/:orderId", signedIn, admin, handlers.UpdateOrderStatus(db))
	}

	category := r.Group("/api/v1/category")
	{
		category.POST("/create-category", signedIn, admin, handlers.CreateCategory(db))
		category.PUT("/update-category/:id", signedIn, admin, handlers.UpdateCategory(db))
		category.DELETE("/delete-category/:id", signedIn, admin, handlers.DeleteCategory(db))
		category.GET("/get-category", handlers.GetCategories(db))
		category.GET("/single-category/:slug", handlers.GetCategoryBySlug(db))
	}

	product := r.Group("/api/v1/product")
	{
		product.POST("/create-product", signedIn, admin, handlers.CreateProduct(db))
		product.PUT("/update-product/:pid", signedIn, admin, handlers.UpdateProduct(db))
		product.DELETE("/delete-product/:pid", signedIn, admin, handlers.DeleteProduct(db))
		product.GET("/get-product", handlers.GetProducts(db))
		product.GET("/get-product/:slug", handlers.GetProductBySlug(db))
		product.GET("/product-photo/:pid", handlers.ProductPhoto(db))
		product.GET("/product-count", handlers.ProductCount(db))
		product.GET("/product-list/:page", handlers.ProductList(db))
		product.GET("/search/:keyword", handlers.SearchProduct(db))
		product.GET("/related-product/:pid/:cid", handlers.RelatedProducts(db))
		product.GET("/product-category/:slug", handlers.ProductsByCategory(db))
		product.POST("/product-filters", handlers.ProductFilters(db))
		product.GET("/braintree/token", handlers.BraintreeToken(gateway))
		product.POST("/braintree/payment", signedIn, handlers.BraintreePayment(db, gateway))
	}

	r.Run(":" + config.AppEnv.Port)
}
