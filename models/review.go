package models

import "time"

// Review is a customer's rating of one service within a completed booking.
// Unique on (BookingID, ServiceID).
type Review struct {
	ID         string    `bson:"id" json:"id"`
	BookingID  string    `bson:"booking_id" json:"bookingId"`
	ServiceID  string    `bson:"service_id" json:"serviceId"`
	CustomerID string    `bson:"customer_id" json:"customerId"`
	ProviderID string    `bson:"provider_id" json:"providerId"`
	Rating     int       `bson:"rating" json:"rating"` // 1..5
	Comment    string    `bson:"comment" json:"comment"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updatedAt"`
}
