package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestLowerCamel(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Nonce", "nonce"},
		{"Status", "status"},
		{"", ""},
		{"alreadyLower", "alreadyLower"},
	}
	for _, tt := range tests {
		if got := lowerCamel(tt.in); got != tt.want {
			t.Errorf("lowerCamel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPaymentRejectsMissingNonce(t *testing.T) {
	cart := map[string]CartLine{
		"widget": {ProductID: primitive.NewObjectID().Hex(), Price: 10, Quantity: 1},
	}
	w := jsonRequest(t, BraintreePayment(nil, nil), "POST", "/api/v1/product/braintree/payment",
		gin.H{"cart": cart})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "nonce is required") {
		t.Errorf("expected nonce detail, got body %s", w.Body.String())
	}
}

func TestUpdateOrderStatusRejectsMissingStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	payload, err := json.Marshal(gin.H{})
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "orderId", Value: primitive.NewObjectID().Hex()}}
	c.Request = httptest.NewRequest("PUT", "/api/v1/auth/order-status/any", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	UpdateOrderStatus(nil)(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "status is required") {
		t.Errorf("expected status detail, got body %s", w.Body.String())
	}
}

func TestProductFiltersRejectsHalfOpenPriceRange(t *testing.T) {
	w := jsonRequest(t, ProductFilters(nil), "POST", "/api/v1/product/product-filters",
		gin.H{"radio": []float64{9.99}})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "radio is invalid") {
		t.Errorf("expected radio detail, got body %s", w.Body.String())
	}
}
