package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. No transition graph is enforced; the admin endpoint may move
// an order from any status to any other.
const (
	StatusNotProcess = "Not Process"
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "delivered"
	StatusCancel     = "cancel"
)

var OrderStatuses = []string{
	StatusNotProcess,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancel,
}

// ValidOrderStatus reports whether value is a member of the status enum.
func ValidOrderStatus(value string) bool {
	for _, s := range OrderStatuses {
		if s == value {
			return true
		}
	}
	return false
}

// Order is persisted once per checkout attempt that reached the gateway.
// Products holds one entry per purchased unit (a product id bought with
// quantity 3 appears three times). Payment stores the raw gateway result.
type Order struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Products  []primitive.ObjectID `bson:"products" json:"products"`
	Payment   bson.M               `bson:"payment" json:"payment"`
	Buyer     primitive.ObjectID   `bson:"buyer" json:"buyer"`
	Status    string               `bson:"status" json:"status"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}
