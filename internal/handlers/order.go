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
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecommerce-backend/internal/models"
)

type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// orderView is the read shape for order listings: product documents in place
// of references (photo bytes excluded) and the buyer reduced to id + name.
type orderView struct {
	ID        primitive.ObjectID `json:"_id"`
	Products  []models.Product   `json:"products"`
	Payment   bson.M             `json:"payment"`
	Buyer     gin.H              `json:"buyer"`
	Status    string             `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

func populateOrders(ctx context.Context, db *mongo.Database, orders []models.Order) ([]orderView, error) {
	productIDs := make([]primitive.ObjectID, 0)
	buyerIDs := make([]primitive.ObjectID, 0)
	seenProducts := map[primitive.ObjectID]struct{}{}
	seenBuyers := map[primitive.ObjectID]struct{}{}

	for _, order := range orders {
		for _, id := range order.Products {
			if _, ok := seenProducts[id]; !ok {
				seenProducts[id] = struct{}{}
				productIDs = append(productIDs, id)
			}
		}
		if _, ok := seenBuyers[order.Buyer]; !ok {
			seenBuyers[order.Buyer] = struct{}{}
			buyerIDs = append(buyerIDs, order.Buyer)
		}
	}

	productByID := map[primitive.ObjectID]models.Product{}
	if len(productIDs) > 0 {
		products, err := findProducts(ctx, db, bson.M{"_id": bson.M{"$in": productIDs}},
			options.Find().SetProjection(withoutPhoto))
		if err != nil {
			return nil, err
		}
		for _, p := range products {
			productByID[p.ID] = p
		}
	}

	buyerByID := map[primitive.ObjectID]models.User{}
	if len(buyerIDs) > 0 {
		cursor, err := db.Collection("users").Find(ctx, bson.M{"_id": bson.M{"$in": buyerIDs}},
			options.Find().SetProjection(bson.M{"name": 1}))
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		var buyers []models.User
		if err := cursor.All(ctx, &buyers); err != nil {
			return nil, err
		}
		for _, buyer := range buyers {
			buyerByID[buyer.ID] = buyer
		}
	}

	views := make([]orderView, 0, len(orders))
	for _, order := range orders {
		products := make([]models.Product, 0, len(order.Products))
		for _, id := range order.Products {
			if p, ok := productByID[id]; ok {
				products = append(products, p)
			}
		}
		views = append(views, orderView{
			ID:       order.ID,
			Products: products,
			Payment:  order.Payment,
			Buyer: gin.H{
				"_id":  order.Buyer.Hex(),
				"name": buyerByID[order.Buyer].Name,
			},
			Status:    order.Status,
			CreatedAt: order.CreatedAt,
			UpdatedAt: order.UpdatedAt,
		})
	}
	return views, nil
}

func findOrders(ctx context.Context, db *mongo.Database, filter bson.M, opts *options.FindOptions) ([]models.Order, error) {
	cursor, err := db.Collection("orders").Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GET /api/v1/auth/orders — orders of the signed-in user.
func GetOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /auth/orders"
		defer handlePanic(c, route)

		userID := c.MustGet("userId").(primitive.ObjectID)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		orders, err := findOrders(ctx, db, bson.M{"buyer": userID}, nil)
		if err != nil {
			respondServerError(c, "ORDER", "Error WHile Geting Orders", err)
			return
		}

		views, err := populateOrders(ctx, db, orders)
		if err != nil {
			respondServerError(c, "ORDER", "Error WHile Geting Orders", err)
			return
		}

		c.JSON(http.StatusOK, views)
	}
}

// GET /api/v1/auth/all-orders — admin, newest first.
func GetAllOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /auth/all-orders"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		orders, err := findOrders(ctx, db, bson.M{}, opts)
		if err != nil {
			respondServerError(c, "ORDER", "Error WHile Geting Orders", err)
			return
		}

		views, err := populateOrders(ctx, db, orders)
		if err != nil {
			respondServerError(c, "ORDER", "Error WHile Geting Orders", err)
			return
		}

		c.JSON(http.StatusOK, views)
	}
}

// PUT /api/v1/auth/order-status/:orderId — admin.
// The status must be a member of the enum; any member may move to any other.
func UpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /auth/order-status"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid order id")
			return
		}

		var req OrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if !models.ValidOrderStatus(req.Status) {
			respondError(c, http.StatusBadRequest, "invalid status")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.Order
		err = db.Collection("orders").FindOneAndUpdate(
			ctx,
			bson.M{"_id": orderID},
			bson.M{"$set": bson.M{"status": req.Status, "updatedAt": time.Now()}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Order not found")
			return
		}
		if err != nil {
			respondServerError(c, "ORDER", "Error While Updateing Order", err)
			return
		}

		log.Println("[ORDER] [INFO] status updated:", orderID.Hex(), "->", req.Status)
		c.JSON(http.StatusOK, updated)
	}
}
