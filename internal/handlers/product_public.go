package handlers

import (
	"context"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecommerce-backend/internal/models"
)

// Catalog read paths never ship photo bytes; the client fetches them from the
// dedicated photo endpoint.
var withoutPhoto = bson.M{"photo.data": 0}

const (
	catalogLimit = 12
	productsPage = 6
	relatedLimit = 3
)

type ProductFiltersRequest struct {
	Checked []string  `json:"checked"`
	Radio   []float64 `json:"radio" binding:"omitempty,len=2"`
}

// regexEscape neutralizes regex metacharacters in user-supplied keywords so
// the search runs as a plain substring match.
func regexEscape(keyword string) string {
	return regexp.QuoteMeta(strings.TrimSpace(keyword))
}

func findProducts(ctx context.Context, db *mongo.Database, filter bson.M, opts *options.FindOptions) ([]models.Product, error) {
	cursor, err := db.Collection("products").Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// populateCategories resolves the category reference on each product into the
// full category document, mirroring what the client expects from detail views.
func populateCategories(ctx context.Context, db *mongo.Database, products []models.Product) ([]models.ProductView, error) {
	ids := make([]primitive.ObjectID, 0, len(products))
	seen := map[primitive.ObjectID]struct{}{}
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		ids = append(ids, p.Category)
	}

	nameByID := map[primitive.ObjectID]models.Category{}
	if len(ids) > 0 {
		cursor, err := db.Collection("categories").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		var categories []models.Category
		if err := cursor.All(ctx, &categories); err != nil {
			return nil, err
		}
		for _, category := range categories {
			nameByID[category.ID] = category
		}
	}

	views := make([]models.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, models.ProductView{
			ID:          p.ID,
			Name:        p.Name,
			Slug:        p.Slug,
			Description: p.Description,
			Price:       p.Price,
			Category:    nameByID[p.Category],
			Quantity:    p.Quantity,
			Shipping:    p.Shipping,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		})
	}
	return views, nil
}

// GET /api/v1/product/get-product
func GetProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /product/get-product"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().
			SetProjection(withoutPhoto).
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(catalogLimit)

		products, err := findProducts(ctx, db, bson.M{}, opts)
		if err != nil {
			respondServerError(c, "PRODUCT", "Erorr in getting products", err)
			return
		}

		views, err := populateCategories(ctx, db, products)
		if err != nil {
			respondServerError(c, "PRODUCT", "Erorr in getting products", err)
			return
		}

		log.Printf("[%s] returning %d products", route, len(views))
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"total":    len(views),
			"message":  "All Products",
			"products": views,
		})
	}
}

// GET /api/v1/product/get-product/:slug
func GetProductBySlug(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /product/get-product/:slug"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		err := db.Collection("products").FindOne(
			ctx,
			bson.M{"slug": c.Param("slug")},
			options.FindOne().SetProjection(withoutPhoto),
		).Decode(&product)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		if err != nil {
			respondServerError(c, "PRODUCT", "Eror while getitng single product", err)
			return
		}

		views, err := populateCategories(ctx, db, []models.Product{product})
		if err != nil {
			respondServerError(c, "PRODUCT", "Eror while getitng single product", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Single Product Fetched",
			"product": views[0],
		})
	}
}

// GET /api/v1/product/product-photo/:pid
// Streams the stored bytes with the stored content type.
func ProductPhoto(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /product/product-photo"
		defer handlePanic(c, route)

		pid, err := primitive.ObjectIDFromHex(c.Param("pid"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid product id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		err = db.Collection("products").FindOne(
			ctx,
			bson.M{"_id": pid},
			options.FindOne().SetProjection(bson.M{"photo": 1}),
		).Decode(&product)
		if err == mongo.ErrNoDocuments || (err == nil && len(product.Photo.Data) == 0) {
			respondError(c, http.StatusNotFound, "Photo not found")
			return
		}
		if err != nil {
			respondServerError(c, "PRODUCT", "Erorr while getting photo", err)
			return
		}

		c.Data(http.StatusOK, product.Photo.ContentType, product.Photo.Data)
	}
}

// POST /api/v1/product/product-filters
// checked: category ids; radio: inclusive [min, max] price range.
func ProductFilters(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /product/product-filters"
		defer handlePanic(c, route)

		var req ProductFiltersRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		filter := bson.M{}
		if len(req.Checked) > 0 {
			ids := make([]primitive.ObjectID, 0, len(req.Checked))
			for _, raw := range req.Checked {
				id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
				if err != nil {
					respondError(c, http.StatusBadRequest, "invalid category id")
					return
				}
				ids = append(ids, id)
			}
			filter["category"] = bson.M{"$in": ids}
		}
		if len(req.Radio) == 2 {
			filter["price"] = bson.M{"$gte": req.Radio[0], "$lte": req.Radio[1]}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		products, err := findProducts(ctx, db, filter, options.Find().SetProjection(withoutPhoto))
		if err != nil {
			respondServerError(c, "PRODUCT", "Error WHile Filtering Products", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"products": products,
		})
	}
}

// GET /api/v1/product/product-count
func ProductCount(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /product/product-count"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("products").CountDocuments(ctx, bson.M{})
		if err != nil {
			respondServerError(c, "PRODUCT", "Error in product count", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"total":   total,
		})
	}
}

// GET /api/v1/product/product-list/:page
func ProductList(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /product/product-list"
		defer handlePanic(c, route)

		page := int64(1)
		if raw := strings.TrimSpace(c.Param("page")); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || parsed < 1 {
				respondError(c, http.StatusBadRequest, "invalid page")
				return
			}
			page = parsed
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().
			SetProjection(withoutPhoto).
			SetSkip((page - 1) * productsPage).
			SetLimit(productsPage).
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		products, err := findProducts(ctx, db, bson.M{}, opts)
		if err != nil {
			respondServerError(c, "PRODUCT", "error in per page ctrl", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"products": products,
		})
	}
}

// GET /api/v1/product/search/:keyword
// Case-insensitive substring match against name OR description; the $or query
// yields the union without duplicate entries.
func SearchProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /product/search"
		defer handlePanic(c, route)

		keyword := regexEscape(c.Param("keyword"))

		filter := bson.M{
			"$or": []bson.M{
				{"name": bson.M{"$regex": keyword, "$options": "i"}},
				{"description": bson.M{"$regex": keyword, "$options": "i"}},
			},
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		products, err := findProducts(ctx, db, filter, options.Find().SetProjection(withoutPhoto))
		if err != nil {
			respondServerError(c, "PRODUCT", "Error In Search Product API", err)
			return
		}

		// Bare array, matching what the search client consumes.
		c.JSON(http.StatusOK, products)
	}
}

// GET /api/v1/product/related-product/:pid/:cid
func RelatedProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /product/related-product"
		defer handlePanic(c, route)

		pid, err := primitive.ObjectIDFromHex(c.Param("pid"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid product id")
			return
		}
		cid, err := primitive.ObjectIDFromHex(c.Param("cid"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid category id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		filter := bson.M{
			"category": cid,
			"_id":      bson.M{"$ne": pid},
		}

		products, err := findProducts(ctx, db, filter, options.Find().
			SetProjection(withoutPhoto).
			SetLimit(relatedLimit))
		if err != nil {
			respondServerError(c, "PRODUCT", "error while geting related product", err)
			return
		}

		views, err := populateCategories(ctx, db, products)
		if err != nil {
			respondServerError(c, "PRODUCT", "error while geting related product", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"products": views,
		})
	}
}

// GET /api/v1/product/product-category/:slug
func ProductsByCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /product/product-category"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var category models.Category
		err := db.Collection("categories").FindOne(ctx, bson.M{"slug": c.Param("slug")}).Decode(&category)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Category not found")
			return
		}
		if err != nil {
			respondServerError(c, "PRODUCT", "Error While Getting products", err)
			return
		}

		products, err := findProducts(ctx, db, bson.M{"category": category.ID},
			options.Find().SetProjection(withoutPhoto))
		if err != nil {
			respondServerError(c, "PRODUCT", "Error While Getting products", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"category": category,
			"products": products,
		})
	}
}
