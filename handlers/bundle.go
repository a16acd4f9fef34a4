package handlers

import (
	userRepo "huduma/database/repository/user"
)

// HandlerBundle aggregates all HTTP handlers plus the user repository the
// auth middleware needs for token revocation checks.
type HandlerBundle struct {
	Auth          *AuthHandler
	Services      *ServiceHandler
	Orders        *OrderHandler
	Bookings      *BookingHandler
	Payments      *PaymentHandler
	Reviews       *ReviewHandler
	Notifications *NotificationHandler
	UserRepo      userRepo.UserRepository
}
