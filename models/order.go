package models

import "time"

// Order statuses.
const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusProcessing     = "processing"
	OrderStatusCompleted      = "completed"
	OrderStatusCancelled      = "cancelled"
)

// Order is the aggregate billing unit grouping one or more per-provider
// bookings from a single customer checkout.
// Invariant: TotalAmount = Subtotal + Tax - DiscountAmount, and Subtotal
// equals the sum of the constituent bookings' line prices.
type Order struct {
	ID             string          `bson:"id" json:"id"`
	CustomerID     string          `bson:"customer_id" json:"customerId"`
	BookingIDs     []string        `bson:"booking_ids" json:"bookingIds"`
	Subtotal       float64         `bson:"subtotal" json:"subtotal"`
	Tax            float64         `bson:"tax" json:"tax"`
	PromoCode      string          `bson:"promo_code,omitempty" json:"promoCode,omitempty"`
	DiscountAmount float64         `bson:"discount_amount" json:"discountAmount"`
	TotalAmount    float64         `bson:"total_amount" json:"totalAmount"`
	OrderStatus    string          `bson:"order_status" json:"orderStatus"`
	PaymentStatus  string          `bson:"payment_status" json:"paymentStatus"`
	PaymentHistory []PaymentRecord `bson:"payment_history,omitempty" json:"paymentHistory,omitempty"`
	CreatedAt      time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time       `bson:"updated_at" json:"updatedAt"`
}

// OrderDetail is an order with its bookings populated for client display.
type OrderDetail struct {
	Order
	Bookings []Booking `json:"bookings"`
}
