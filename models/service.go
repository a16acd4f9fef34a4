package models

import "time"

// Service is a provider's published offering. Its price is a read-only
// input to order pricing: bookings snapshot it at creation time and are
// never affected by later edits.
type Service struct {
	ID                string    `bson:"id" json:"id"`
	ProviderID        string    `bson:"provider_id" json:"providerId"`
	Name              string    `bson:"name" json:"name"`
	Category          string    `bson:"category" json:"category"`
	Subcategory       string    `bson:"subcategory,omitempty" json:"subcategory,omitempty"`
	YearsOfExperience int       `bson:"years_of_experience,omitempty" json:"yearsOfExperience,omitempty"`
	Description       string    `bson:"description,omitempty" json:"description,omitempty"`
	Price             float64   `bson:"price" json:"price"`
	Image             string    `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt         time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `bson:"updated_at" json:"updatedAt"`
}
