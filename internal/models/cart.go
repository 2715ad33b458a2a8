package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultSize = "M"

type CartItem struct {
	ProductID string  `json:"productId" bson:"productId"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Image     string  `json:"image" bson:"image"`
	Size      string  `json:"size" bson:"size"`
}

// Cart is the single mutable basket owned by a user. Total is always derived
// from Items.
type Cart struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId,omitempty" bson:"userId"`
	Items     []CartItem         `json:"items" bson:"items"`
	Total     float64            `json:"total" bson:"total"`
	CreatedAt time.Time          `json:"createdAt,omitempty" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt,omitempty" bson:"updatedAt"`
}

// EmptyCart is the unsaved cart answered when a user has none stored.
func EmptyCart() *Cart {
	return &Cart{Items: []CartItem{}}
}

// AddItemRequest carries the client supplied line. Price is loosely typed
// because storefront pages send it either as a number or a string.
type AddItemRequest struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     any    `json:"price"`
	Image     string `json:"image"`
	Size      string `json:"size"`
}

type RemoveItemRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
}
