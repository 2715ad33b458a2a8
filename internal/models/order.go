package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusPending   = "Pending"
	DefaultPaymentMethod = "COD"
)

type Address struct {
	FullName string `json:"fullName" bson:"fullName"`
	Phone    string `json:"phone" bson:"phone"`
	Address  string `json:"address" bson:"address"`
	City     string `json:"city" bson:"city"`
	Pincode  string `json:"pincode" bson:"pincode"`
}

// Complete reports whether every address field is present.
func (a Address) Complete() bool {
	for _, field := range []string{a.FullName, a.Phone, a.Address, a.City, a.Pincode} {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}

	return true
}

type OrderItem struct {
	ProductID *primitive.ObjectID `json:"productId" bson:"productId"`
	Name      string              `json:"name" bson:"name"`
	Price     float64             `json:"price" bson:"price"`
	Quantity  int                 `json:"quantity" bson:"quantity"`
	Image     string              `json:"image" bson:"image"`
	Size      string              `json:"size" bson:"size"`
}

// Order is immutable once placed except for Status.
type Order struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID          primitive.ObjectID `json:"userId" bson:"userId"`
	Items           []OrderItem        `json:"items" bson:"items"`
	Total           float64            `json:"total" bson:"total"`
	Status          string             `json:"status" bson:"status"`
	PaymentMethod   string             `json:"paymentMethod" bson:"paymentMethod"`
	ShippingAddress Address            `json:"shippingAddress" bson:"shippingAddress"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type OrderOwner struct {
	Username string `json:"username" bson:"username"`
	Email    string `json:"email" bson:"email"`
}

// AdminOrder is an order joined with the owner's public identity.
type AdminOrder struct {
	Order `bson:",inline"`
	User  *OrderOwner `json:"userId" bson:"user,omitempty"`
}

type PlaceOrderItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     any    `json:"price"`
	Quantity  any    `json:"quantity"`
	Image     string `json:"image"`
	Size      string `json:"size"`
}

type PlaceOrderRequest struct {
	Items           []PlaceOrderItem `json:"items"`
	Total           any              `json:"total"`
	ShippingAddress Address          `json:"shippingAddress"`
	PaymentMethod   string           `json:"paymentMethod"`
}

type PlaceOrderResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type Stats struct {
	TotalOrders   int64   `json:"totalOrders"`
	TotalProducts int64   `json:"totalProducts"`
	TotalUsers    int64   `json:"totalUsers"`
	TotalRevenue  float64 `json:"totalRevenue"`
}
