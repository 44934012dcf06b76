package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecommerce-backend/internal/models"
)

type CategoryRequest struct {
	Name string `json:"name"`
}

// duplicateCategoryName reports whether name collides case-insensitively with
// an existing category, ignoring the one identified by exclude. The scan runs
// at the application layer, not through a unique index.
func duplicateCategoryName(existing []models.Category, name string, exclude primitive.ObjectID) bool {
	trimmed := strings.TrimSpace(name)
	for _, category := range existing {
		if category.ID == exclude {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(category.Name), trimmed) {
			return true
		}
	}
	return false
}

func loadAllCategories(ctx context.Context, db *mongo.Database) ([]models.Category, error) {
	cursor, err := db.Collection("categories").Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// POST /api/v1/category/create-category
func CreateCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /category/create-category"
		defer handlePanic(c, route)

		var req CategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Name is required")
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			respondError(c, http.StatusBadRequest, "Name is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		existing, err := loadAllCategories(ctx, db)
		if err != nil {
			respondServerError(c, "CATEGORY", "Errro in Category", err)
			return
		}
		if duplicateCategoryName(existing, name, primitive.NilObjectID) {
			respondError(c, http.StatusConflict, "Category Already Exists")
			return
		}

		category := models.Category{
			Name: name,
			Slug: slug.Make(name),
		}

		res, err := db.Collection("categories").InsertOne(ctx, category)
		if err != nil {
			respondServerError(c, "CATEGORY", "Errro in Category", err)
			return
		}
		category.ID, _ = res.InsertedID.(primitive.ObjectID)

		log.Println("[CATEGORY] [INFO] category created:", name)
		c.JSON(http.StatusCreated, gin.H{
			"success":  true,
			"message":  "new category created",
			"category": category,
		})
	}
}

// PUT /api/v1/category/update-category/:id
func UpdateCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /category/update-category"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid id")
			return
		}

		var req CategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Name is required")
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			respondError(c, http.StatusBadRequest, "Name is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		existing, err := loadAllCategories(ctx, db)
		if err != nil {
			respondServerError(c, "CATEGORY", "Error while updating category", err)
			return
		}
		if duplicateCategoryName(existing, name, id) {
			respondError(c, http.StatusConflict, "Category Already Exists")
			return
		}

		var updated models.Category
		err = db.Collection("categories").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{"name": name, "slug": slug.Make(name)}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Category not found")
			return
		}
		if err != nil {
			respondServerError(c, "CATEGORY", "Error while updating category", err)
			return
		}

		log.Println("[CATEGORY] [INFO] category updated:", name)
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Category Updated Successfully",
			"category": updated,
		})
	}
}

// DELETE /api/v1/category/delete-category/:id
// Blocked while any product still references the category.
func DeleteCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /category/delete-category"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		inUse, err := db.Collection("products").CountDocuments(ctx, bson.M{"category": id})
		if err != nil {
			respondServerError(c, "CATEGORY", "error while deleting category", err)
			return
		}
		if inUse > 0 {
			respondError(c, http.StatusBadRequest, "Cannot delete category with associated products")
			return
		}

		res, err := db.Collection("categories").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			respondServerError(c, "CATEGORY", "error while deleting category", err)
			return
		}
		if res.DeletedCount == 0 {
			respondError(c, http.StatusNotFound, "Category not found")
			return
		}

		log.Println("[CATEGORY] [INFO] category deleted:", id.Hex())
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Category Deleted Successfully",
		})
	}
}

// GET /api/v1/category/get-category
func GetCategories(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /category/get-category"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		categories, err := loadAllCategories(ctx, db)
		if err != nil {
			respondServerError(c, "CATEGORY", "Error while getting all categories", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "All Categories List",
			"category": categories,
		})
	}
}

// GET /api/v1/category/single-category/:slug
func GetCategoryBySlug(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /category/single-category"
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
			respondServerError(c, "CATEGORY", "Error While getting Single Category", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Get SIngle Category SUccessfully",
			"category": category,
		})
	}
}
