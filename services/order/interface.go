package order

import (
	"context"

	"huduma/models"
)

// OrderInput carries the order-creation request. DiscountAmount is an
// injected external input; no discount algorithm is applied here.
type OrderInput struct {
	ServiceIDs     []string `json:"serviceIds"`
	Date           string   `json:"date"`
	TimeSlot       string   `json:"timeSlot"`
	Description    string   `json:"description"`
	AddressID      string   `json:"addressId"`
	IsUrgent       bool     `json:"isUrgent"`
	Coupon         string   `json:"coupon"`
	DiscountAmount float64  `json:"discountAmount"`
}

// OrderService splits a multi-service cart into per-provider bookings under
// one order, computes pricing, and persists the aggregate.
type OrderService interface {
	CreateOrder(ctx context.Context, customerID string, in OrderInput) (*models.OrderDetail, error)
	GetOrder(ctx context.Context, orderID string) (*models.OrderDetail, error)
	ListOrders(ctx context.Context, customerID string) ([]models.Order, error)
}
