package handlers

import (
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Photos above this ceiling are rejected.
const maxPhotoSize = 1000000

type productForm struct {
	Name        string
	Description string
	Price       float64
	PriceSet    bool
	Quantity    int
	QuantitySet bool
	CategoryID  primitive.ObjectID
	CategorySet bool
	Shipping    bool
	Photo       *multipart.FileHeader
	PhotoSize   int64
}

func parseProductForm(c *gin.Context) productForm {
	form := productForm{
		Name:        strings.TrimSpace(c.PostForm("name")),
		Description: strings.TrimSpace(c.PostForm("description")),
	}

	if value, ok := c.GetPostForm("price"); ok {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			form.Price = parsed
			form.PriceSet = true
		}
	}

	if value, ok := c.GetPostForm("quantity"); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			form.Quantity = parsed
			form.QuantitySet = true
		}
	}

	if value, ok := c.GetPostForm("category"); ok {
		if id, err := primitive.ObjectIDFromHex(strings.TrimSpace(value)); err == nil {
			form.CategoryID = id
			form.CategorySet = true
		}
	}

	if value, ok := c.GetPostForm("shipping"); ok {
		parsed, err := strconv.ParseBool(strings.TrimSpace(value))
		form.Shipping = err == nil && parsed
	}

	if file, err := c.FormFile("photo"); err == nil {
		form.Photo = file
		form.PhotoSize = file.Size
	}

	return form
}

// productValidationMessage checks the form fields in fixed order and returns
// the first failure message, or "" when the form is valid. The price and
// quantity checks are truthiness-based: a literal 0 counts as missing.
func productValidationMessage(form productForm) string {
	switch {
	case form.Name == "":
		return "Name is Required"
	case form.Description == "":
		return "Description is Required"
	case !form.PriceSet || form.Price == 0:
		return "Price is Required"
	case !form.CategorySet:
		return "Category is Required"
	case !form.QuantitySet || form.Quantity == 0:
		return "Quantity is Required"
	case form.Photo != nil && form.PhotoSize > maxPhotoSize:
		return "photo is Required and should be less then 1mb"
	}
	return ""
}
