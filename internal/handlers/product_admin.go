package handlers

import (
	"context"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecommerce-backend/internal/models"
)

func readPhoto(file *multipart.FileHeader) (models.Photo, error) {
	src, err := file.Open()
	if err != nil {
		return models.Photo{}, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return models.Photo{}, err
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return models.Photo{Data: data, ContentType: contentType}, nil
}

// POST /api/v1/product/create-product
func CreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /product/create-product"
		defer handlePanic(c, route)

		form := parseProductForm(c)
		if message := productValidationMessage(form); message != "" {
			respondError(c, http.StatusBadRequest, message)
			return
		}

		now := time.Now()
		product := models.Product{
			Name:        form.Name,
			Slug:        slug.Make(form.Name),
			Description: form.Description,
			Price:       form.Price,
			Category:    form.CategoryID,
			Quantity:    form.Quantity,
			Shipping:    form.Shipping,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if form.Photo != nil {
			photo, err := readPhoto(form.Photo)
			if err != nil {
				respondServerError(c, "PRODUCT", "Error in crearing product", err)
				return
			}
			product.Photo = photo
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			respondServerError(c, "PRODUCT", "Error in crearing product", err)
			return
		}
		product.ID, _ = res.InsertedID.(primitive.ObjectID)
		product.Photo.Data = nil

		log.Println("[PRODUCT] [INFO] product created:", product.Slug)
		c.JSON(http.StatusCreated, gin.H{
			"success":  true,
			"message":  "Product Created Successfully",
			"products": product,
		})
	}
}

// PUT /api/v1/product/update-product/:pid
func UpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /product/update-product"
		defer handlePanic(c, route)

		pid, err := primitive.ObjectIDFromHex(c.Param("pid"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid product id")
			return
		}

		form := parseProductForm(c)
		if message := productValidationMessage(form); message != "" {
			respondError(c, http.StatusBadRequest, message)
			return
		}

		update := bson.M{
			"name":        form.Name,
			"slug":        slug.Make(form.Name),
			"description": form.Description,
			"price":       form.Price,
			"category":    form.CategoryID,
			"quantity":    form.Quantity,
			"shipping":    form.Shipping,
			"updatedAt":   time.Now(),
		}

		if form.Photo != nil {
			photo, err := readPhoto(form.Photo)
			if err != nil {
				respondServerError(c, "PRODUCT", "Error in Updte product", err)
				return
			}
			update["photo"] = photo
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.Product
		err = db.Collection("products").FindOneAndUpdate(
			ctx,
			bson.M{"_id": pid},
			bson.M{"$set": update},
			options.FindOneAndUpdate().
				SetReturnDocument(options.After).
				SetProjection(bson.M{"photo.data": 0}),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		if err != nil {
			respondServerError(c, "PRODUCT", "Error in Updte product", err)
			return
		}

		log.Println("[PRODUCT] [INFO] product updated:", updated.Slug)
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Product Updated Successfully",
			"products": updated,
		})
	}
}

// DELETE /api/v1/product/delete-product/:pid
func DeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /product/delete-product"
		defer handlePanic(c, route)

		pid, err := primitive.ObjectIDFromHex(c.Param("pid"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid product id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").DeleteOne(ctx, bson.M{"_id": pid})
		if err != nil {
			respondServerError(c, "PRODUCT", "Error while deleting product", err)
			return
		}
		if res.DeletedCount == 0 {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}

		log.Println("[PRODUCT] [INFO] product deleted:", pid.Hex())
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Product Deleted successfully",
		})
	}
}
