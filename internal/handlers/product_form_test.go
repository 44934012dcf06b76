package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validForm() productForm {
	return productForm{
		Name:        "Laptop",
		Description: "A laptop",
		Price:       999.99,
		PriceSet:    true,
		Quantity:    5,
		QuantitySet: true,
		CategoryID:  primitive.NewObjectID(),
		CategorySet: true,
	}
}

func TestProductValidationMessageFixedOrder(t *testing.T) {
	form := validForm()
	if got := productValidationMessage(form); got != "" {
		t.Fatalf("expected valid form, got %q", got)
	}

	form.Name = ""
	if got := productValidationMessage(form); got != "Name is Required" {
		t.Fatalf("expected name message, got %q", got)
	}

	form = validForm()
	form.Description = ""
	if got := productValidationMessage(form); got != "Description is Required" {
		t.Fatalf("expected description message, got %q", got)
	}

	form = validForm()
	form.CategorySet = false
	if got := productValidationMessage(form); got != "Category is Required" {
		t.Fatalf("expected category message, got %q", got)
	}
}

func TestProductValidationTreatsZeroAsMissing(t *testing.T) {
	form := validForm()
	form.Price = 0
	if got := productValidationMessage(form); got != "Price is Required" {
		t.Fatalf("expected zero price rejected as required, got %q", got)
	}

	form = validForm()
	form.Quantity = 0
	if got := productValidationMessage(form); got != "Quantity is Required" {
		t.Fatalf("expected zero quantity rejected as required, got %q", got)
	}
}

func TestProductValidationPhotoSizeCeiling(t *testing.T) {
	form := validForm()
	form.Photo = &multipart.FileHeader{}
	form.PhotoSize = maxPhotoSize + 1
	if got := productValidationMessage(form); got != "photo is Required and should be less then 1mb" {
		t.Fatalf("expected oversized photo rejected, got %q", got)
	}

	form.PhotoSize = maxPhotoSize
	if got := productValidationMessage(form); got != "" {
		t.Fatalf("expected photo at the ceiling accepted, got %q", got)
	}
}

func TestParseProductFormMultipart(t *testing.T) {
	gin.SetMode(gin.TestMode)

	categoryID := primitive.NewObjectID()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	_ = writer.WriteField("name", "  Laptop  ")
	_ = writer.WriteField("description", "A laptop")
	_ = writer.WriteField("price", "999.99")
	_ = writer.WriteField("quantity", "5")
	_ = writer.WriteField("category", categoryID.Hex())
	_ = writer.WriteField("shipping", "true")
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/api/v1/product/create-product", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	form := parseProductForm(c)
	if form.Name != "Laptop" {
		t.Fatalf("expected trimmed name, got %q", form.Name)
	}
	if !form.PriceSet || form.Price != 999.99 {
		t.Fatalf("expected price 999.99, got %+v", form)
	}
	if !form.QuantitySet || form.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %+v", form)
	}
	if !form.CategorySet || form.CategoryID != categoryID {
		t.Fatalf("expected category %s, got %+v", categoryID.Hex(), form)
	}
	if !form.Shipping {
		t.Fatal("expected shipping true")
	}
	if form.Photo != nil {
		t.Fatal("expected no photo")
	}
}

func TestParseProductFormUnparsableNumbersCountAsMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	_ = writer.WriteField("price", "abc")
	_ = writer.WriteField("quantity", "1.5")
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/api/v1/product/create-product", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	form := parseProductForm(c)
	if form.PriceSet || form.QuantitySet {
		t.Fatalf("expected unparsable numbers to stay unset, got %+v", form)
	}
}
