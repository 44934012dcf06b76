package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"ecommerce-backend/internal/models"
	"ecommerce-backend/internal/payment"
)

type PaymentRequest struct {
	Nonce string              `json:"nonce" binding:"required"`
	Cart  map[string]CartLine `json:"cart" binding:"required"`
}

// GET /api/v1/product/braintree/token
// Stateless pass-through: the client exchanges this token with the gateway
// for a payment-method nonce.
func BraintreeToken(gw payment.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /product/braintree/token"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		token, err := gw.ClientToken(ctx)
		if err != nil {
			respondServerError(c, "PAYMENT", "Error in client token", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"clientToken": token,
		})
	}
}

// POST /api/v1/product/braintree/payment
//
// One checkout attempt: charge the gateway for the cart total, persist an
// order for any gateway answer (success or decline), and decrement inventory
// only when the charge succeeded. A transport-level gateway failure writes
// nothing. Order insert and the per-product decrements are not covered by a
// single transaction; each decrement is individually guarded against
// overselling.
func BraintreePayment(db *mongo.Database, gw payment.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /product/braintree/payment"
		defer handlePanic(c, route)

		var req PaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		products, err := cartProductRefs(req.Cart)
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		buyer := c.MustGet("userId").(primitive.ObjectID)
		total := cartTotal(req.Cart)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 20*time.Second)
		defer cancel()

		result, err := gw.Sale(ctx, total, req.Nonce)
		if err != nil {
			// Gateway unreachable or rejected the request outright: no order.
			respondServerError(c, "PAYMENT", "Payment failed", err)
			return
		}

		now := time.Now()
		order := models.Order{
			Products:  products,
			Payment:   paymentDocument(result),
			Buyer:     buyer,
			Status:    models.StatusNotProcess,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if result.Success {
			order.Status = models.StatusProcessing
		}

		if _, err := db.Collection("orders").InsertOne(ctx, order); err != nil {
			respondServerError(c, "PAYMENT", "Payment failed", err)
			return
		}

		if result.Success {
			decrementInventory(ctx, db, req.Cart)
		}

		log.Printf("[%s] order recorded for %s total=%s success=%v", route, buyer.Hex(), total, result.Success)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// decrementInventory applies one conditional decrement per distinct cart
// line. The quantity guard makes each update atomic on its own document;
// a line that no longer has enough stock is left unchanged and logged.
func decrementInventory(ctx context.Context, db *mongo.Database, cart map[string]CartLine) {
	for slugKey, line := range cart {
		id, err := primitive.ObjectIDFromHex(line.ProductID)
		if err != nil {
			continue
		}

		res, err := db.Collection("products").UpdateOne(ctx,
			bson.M{
				"_id":      id,
				"quantity": bson.M{"$gte": line.Quantity},
			},
			bson.M{"$inc": bson.M{"quantity": -line.Quantity}},
		)
		if err != nil {
			log.Printf("[PAYMENT] [ERROR] inventory decrement failed for %s: %v", slugKey, err)
			continue
		}
		if res.MatchedCount == 0 {
			log.Printf("[PAYMENT] [WARN] insufficient stock for %s, decrement skipped", slugKey)
		}
	}
}
