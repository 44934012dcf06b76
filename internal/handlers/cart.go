package handlers

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ecommerce-backend/internal/payment"
)

// CartLine is one entry of the client-local cart, keyed by product slug in
// the payment request.
type CartLine struct {
	ProductID string  `json:"productId"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

var errEmptyCart = errors.New("cart is empty")

// cartTotal computes the sum of price x quantity over all cart lines and
// renders it with exactly two decimals, e.g. "35.00".
func cartTotal(cart map[string]CartLine) string {
	total := decimal.Zero
	for _, line := range cart {
		price := decimal.NewFromFloat(line.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total.StringFixed(2)
}

// cartProductRefs expands the cart into the order's products array: each
// product id appears once per purchased unit. Lines are walked in slug order
// so the result is deterministic.
func cartProductRefs(cart map[string]CartLine) ([]primitive.ObjectID, error) {
	if len(cart) == 0 {
		return nil, errEmptyCart
	}

	slugs := make([]string, 0, len(cart))
	for s := range cart {
		slugs = append(slugs, s)
	}
	sort.Strings(slugs)

	refs := make([]primitive.ObjectID, 0, len(cart))
	for _, s := range slugs {
		line := cart[s]
		id, err := primitive.ObjectIDFromHex(line.ProductID)
		if err != nil {
			return nil, errors.New("invalid productId in cart")
		}
		if line.Quantity <= 0 {
			return nil, errors.New("quantity must be greater than zero")
		}
		for i := 0; i < line.Quantity; i++ {
			refs = append(refs, id)
		}
	}
	return refs, nil
}

// paymentDocument shapes the gateway result for storage on the order.
func paymentDocument(result *payment.SaleResult) bson.M {
	return bson.M{
		"success": result.Success,
		"transaction": bson.M{
			"id":     result.TransactionID,
			"status": result.Status,
			"amount": result.Amount,
		},
		"message": result.Message,
	}
}
