package models

import "time"

// User roles. The set is closed; a user holds exactly one role.
const (
	RoleCustomer = "customer"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

// AvailabilitySlot describes a provider's working window on one weekday.
type AvailabilitySlot struct {
	Day   string   `bson:"day" json:"day"`     // "Mon".."Sun"
	Slots []string `bson:"slots" json:"slots"` // e.g., ["09:00-11:00", "14:00-16:00"]
}

// ProviderProfile carries the provider-only extension of a User.
// TotalEarnings, AverageRating and NumberOfReviews are derived projections;
// they are only ever written by the booking and review services.
type ProviderProfile struct {
	NationalID         string             `bson:"national_id,omitempty" json:"nationalId,omitempty"`
	License            string             `bson:"license,omitempty" json:"license,omitempty"`
	TotalEarnings      float64            `bson:"total_earnings" json:"totalEarnings"`
	AverageRating      float64            `bson:"average_rating" json:"averageRating"`
	NumberOfReviews    int                `bson:"number_of_reviews" json:"numberOfReviews"`
	Availability       []AvailabilitySlot `bson:"availability,omitempty" json:"availability,omitempty"`
	IsApproved         bool               `bson:"is_approved" json:"isApproved"`
	IsDocumentVerified bool               `bson:"is_document_verified" json:"isDocumentVerified"`
	ActiveStatus       bool               `bson:"active_status" json:"activeStatus"`
}

// User is the single account entity. Role discrimination replaces the
// customer/provider/admin inheritance of earlier designs; Provider is
// non-nil only when Role == RoleProvider.
type User struct {
	ID            string           `bson:"id" json:"id"`
	FirstName     string           `bson:"first_name" json:"firstName"`
	LastName      string           `bson:"last_name,omitempty" json:"lastName,omitempty"`
	Email         string           `bson:"email" json:"email"`
	ContactNumber string           `bson:"contact_number,omitempty" json:"contactNumber,omitempty"`
	Password      string           `bson:"password,omitempty" json:"-"`
	Role          string           `bson:"role" json:"role"`
	ProfilePic    string           `bson:"profile_pic,omitempty" json:"profilePic,omitempty"`
	Status        string           `bson:"status" json:"status"` // active, suspended, blocked
	TokenHash     string           `bson:"token_hash,omitempty" json:"-"`
	Provider      *ProviderProfile `bson:"provider,omitempty" json:"provider,omitempty"`
	CreatedAt     time.Time        `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time        `bson:"updated_at" json:"updatedAt"`
}

// FullName joins the user's first and last names for display.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
