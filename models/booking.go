package models

import "time"

// Booking statuses. Completed, cancelled and rejected are terminal.
const (
	BookingStatusPending   = "pending"
	BookingStatusUpcoming  = "upcoming"
	BookingStatusActive    = "active"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
	BookingStatusRejected  = "rejected"
	BookingStatusDisputed  = "disputed"
)

// Payment statuses shared by bookings and orders.
const (
	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

var bookingStatuses = map[string]bool{
	BookingStatusPending:   true,
	BookingStatusUpcoming:  true,
	BookingStatusActive:    true,
	BookingStatusConfirmed: true,
	BookingStatusCompleted: true,
	BookingStatusCancelled: true,
	BookingStatusRejected:  true,
	BookingStatusDisputed:  true,
}

// IsValidBookingStatus reports whether s is a recognized booking status.
func IsValidBookingStatus(s string) bool {
	return bookingStatuses[s]
}

// IsTerminalBookingStatus reports whether s permits no further transition.
func IsTerminalBookingStatus(s string) bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled || s == BookingStatusRejected
}

// ServiceItem is a price snapshot of one service line captured when the
// booking was created. Never re-derived from the live Service record.
type ServiceItem struct {
	ServiceID string  `bson:"service_id" json:"serviceId"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
}

// PaymentRecord is an audit entry appended when a payment settles.
type PaymentRecord struct {
	Amount    float64   `bson:"amount" json:"amount"`
	Currency  string    `bson:"currency" json:"currency"`
	PaidAt    time.Time `bson:"paid_at" json:"paidAt"`
	SessionID string    `bson:"session_id" json:"sessionId"`
}

// Booking is one scheduled engagement with a single provider, covering
// one or more service line items. OrderID is empty for standalone bookings.
type Booking struct {
	ID             string          `bson:"id" json:"id"`
	OrderID        string          `bson:"order_id,omitempty" json:"orderId,omitempty"`
	CustomerID     string          `bson:"customer_id" json:"customerId"`
	ProviderID     string          `bson:"provider_id" json:"providerId"`
	Services       []ServiceItem   `bson:"services" json:"services"`
	Date           string          `bson:"date" json:"date"` // "YYYY-MM-DD"
	TimeSlot       string          `bson:"time_slot,omitempty" json:"timeSlot,omitempty"`
	Description    string          `bson:"description,omitempty" json:"description,omitempty"`
	AddressID      string          `bson:"address_id,omitempty" json:"addressId,omitempty"`
	IsUrgent       bool            `bson:"is_urgent" json:"isUrgent"`
	Coupon         string          `bson:"coupon,omitempty" json:"coupon,omitempty"`
	Status         string          `bson:"status" json:"status"`
	TotalPrice     float64         `bson:"total_price" json:"totalPrice"`
	PaymentStatus  string          `bson:"payment_status" json:"paymentStatus"`
	PaymentHistory []PaymentRecord `bson:"payment_history,omitempty" json:"paymentHistory,omitempty"`
	CreatedAt      time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time       `bson:"updated_at" json:"updatedAt"`
}

// Subtotal returns the sum of the booking's snapshotted line prices.
func (b *Booking) Subtotal() float64 {
	var sum float64
	for _, it := range b.Services {
		sum += it.Price
	}
	return sum
}

// ServiceNames returns the snapshotted service names in line order.
func (b *Booking) ServiceNames() []string {
	names := make([]string, 0, len(b.Services))
	for _, it := range b.Services {
		names = append(names, it.Name)
	}
	return names
}

// HasService reports whether serviceID is one of the booking's line items.
func (b *Booking) HasService(serviceID string) bool {
	for _, it := range b.Services {
		if it.ServiceID == serviceID {
			return true
		}
	}
	return false
}
