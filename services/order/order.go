package order

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	bookingRepo "huduma/database/repository/booking"
	orderRepo "huduma/database/repository/order"
	serviceRepo "huduma/database/repository/service"
	userRepo "huduma/database/repository/user"
	"huduma/models"
	"huduma/services/notification"
	"huduma/services/tasks"
	"huduma/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultOrderService is the production implementation of OrderService.
type DefaultOrderService struct {
	Orders   orderRepo.OrderRepository
	Bookings bookingRepo.BookingRepository
	Services serviceRepo.ServiceRepository
	Users    userRepo.UserRepository
	Notifier notification.NotificationService
	Tasks    tasks.Enqueuer
	Logger   *zap.Logger
	TaxRate  float64
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CreateOrder resolves the requested services wholesale, groups them by
// provider preserving encounter order, snapshots each service's current
// price into a line item, and persists the order and its bookings.
//
// The two-phase write (order first, then bookings) is made recoverable by a
// compensating rollback: if any booking persist fails, the already-created
// bookings and the order itself are deleted before the error is returned.
func (s *DefaultOrderService) CreateOrder(ctx context.Context, customerID string, in OrderInput) (*models.OrderDetail, error) {
	if len(in.ServiceIDs) == 0 {
		return nil, utils.InvalidArgumentError("a non-empty list of service IDs is required")
	}

	resolved, err := s.Services.GetByIDs(in.ServiceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve services: %w", err)
	}
	if len(resolved) != len(in.ServiceIDs) {
		// Partial resolution is rejected wholesale, not best-effort.
		return nil, utils.NotFoundError("one or more services could not be found")
	}

	byID := make(map[string]models.Service, len(resolved))
	for _, svc := range resolved {
		byID[svc.ID] = svc
	}

	// Group services by provider, preserving encounter order.
	var providerOrder []string
	groups := make(map[string][]models.ServiceItem)
	var subtotal float64
	for _, id := range in.ServiceIDs {
		svc := byID[id]
		if _, seen := groups[svc.ProviderID]; !seen {
			providerOrder = append(providerOrder, svc.ProviderID)
		}
		// Snapshot the current price; never re-derived afterward.
		groups[svc.ProviderID] = append(groups[svc.ProviderID], models.ServiceItem{
			ServiceID: svc.ID,
			Name:      svc.Name,
			Price:     svc.Price,
		})
		subtotal += svc.Price
	}

	bookings := make([]models.Booking, 0, len(providerOrder))
	for _, providerID := range providerOrder {
		items := groups[providerID]
		var providerSubtotal float64
		for _, it := range items {
			providerSubtotal += it.Price
		}
		bookings = append(bookings, models.Booking{
			ID:            uuid.New().String(),
			CustomerID:    customerID,
			ProviderID:    providerID,
			Services:      items,
			Date:          in.Date,
			TimeSlot:      in.TimeSlot,
			Description:   in.Description,
			AddressID:     in.AddressID,
			IsUrgent:      in.IsUrgent,
			Coupon:        in.Coupon,
			Status:        models.BookingStatusPending,
			TotalPrice:    round2(providerSubtotal),
			PaymentStatus: models.PaymentStatusUnpaid,
		})
	}

	tax := round2(subtotal * s.TaxRate)
	ord := &models.Order{
		ID:             uuid.New().String(),
		CustomerID:     customerID,
		Subtotal:       round2(subtotal),
		Tax:            tax,
		PromoCode:      in.Coupon,
		DiscountAmount: in.DiscountAmount,
		TotalAmount:    round2(subtotal + tax - in.DiscountAmount),
		OrderStatus:    models.OrderStatusPendingPayment,
		PaymentStatus:  models.PaymentStatusUnpaid,
	}

	if err := s.Orders.Create(ord); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	bookingIDs := make([]string, 0, len(bookings))
	for i := range bookings {
		bookings[i].OrderID = ord.ID
		if err := s.Bookings.Create(&bookings[i]); err != nil {
			s.rollback(ord.ID, bookingIDs)
			return nil, fmt.Errorf("failed to persist booking for provider %s: %w", bookings[i].ProviderID, err)
		}
		bookingIDs = append(bookingIDs, bookings[i].ID)
	}

	if err := s.Orders.SetBookingIDs(ord.ID, bookingIDs); err != nil {
		s.rollback(ord.ID, bookingIDs)
		return nil, fmt.Errorf("failed to link bookings to order %s: %w", ord.ID, err)
	}
	ord.BookingIDs = bookingIDs

	s.notifyAdmins(ctx, customerID, ord.ID)
	s.scheduleBookingTasks(bookings)

	return &models.OrderDetail{Order: *ord, Bookings: bookings}, nil
}

// rollback is the compensating action for a failed two-phase write. Cleanup
// errors are logged only; the original failure is what the caller sees.
func (s *DefaultOrderService) rollback(orderID string, bookingIDs []string) {
	for _, id := range bookingIDs {
		if err := s.Bookings.Delete(id); err != nil {
			s.Logger.Error("order rollback: failed to delete booking",
				zap.String("orderID", orderID), zap.String("bookingID", id), zap.Error(err))
		}
	}
	if err := s.Orders.Delete(orderID); err != nil {
		s.Logger.Error("order rollback: failed to delete order",
			zap.String("orderID", orderID), zap.Error(err))
	}
}

func (s *DefaultOrderService) notifyAdmins(ctx context.Context, customerID, orderID string) {
	customerName := customerID
	if customer, err := s.Users.GetByID(customerID); err == nil && customer != nil {
		customerName = customer.FullName()
	}
	message := fmt.Sprintf("New service order created by %s. Order ID: %s", customerName, orderID)
	s.Notifier.NotifyAdmins(ctx, message, notification.TypeNewOrder)
}

// scheduleBookingTasks enqueues a reminder shortly before each booking's
// slot and an expiry check after its date. Best-effort: scheduling failures
// never fail order creation.
func (s *DefaultOrderService) scheduleBookingTasks(bookings []models.Booking) {
	if s.Tasks == nil {
		return
	}
	for _, b := range bookings {
		date, err := time.Parse("2006-01-02", b.Date)
		if err != nil {
			s.Logger.Debug("skipping task scheduling for booking with unparseable date",
				zap.String("bookingID", b.ID), zap.String("date", b.Date))
			continue
		}

		if start, ok := slotStart(date, b.TimeSlot); ok {
			payload := models.ReminderPayload{
				BookingID:  b.ID,
				CustomerID: b.CustomerID,
				Message: fmt.Sprintf("Reminder: your booking for %s is scheduled at %s on %s.",
					strings.Join(b.ServiceNames(), ", "), b.TimeSlot, b.Date),
				FireDate: start.Add(-time.Hour).Format(time.RFC3339),
			}
			if task, opts, err := tasks.NewBookingReminderTask(payload, start.Add(-time.Hour)); err == nil {
				if _, err := s.Tasks.Enqueue(task, opts...); err != nil {
					s.Logger.Warn("failed to enqueue booking reminder",
						zap.String("bookingID", b.ID), zap.Error(err))
				}
			}
		}

		expireAt := date.AddDate(0, 0, 1)
		if task, opts, err := tasks.NewBookingExpiryTask(models.ExpiryPayload{BookingID: b.ID}, expireAt); err == nil {
			if _, err := s.Tasks.Enqueue(task, opts...); err != nil {
				s.Logger.Warn("failed to enqueue booking expiry",
					zap.String("bookingID", b.ID), zap.Error(err))
			}
		}
	}
}

// slotStart resolves the start of a "HH:MM-HH:MM" time slot on the given day.
func slotStart(date time.Time, timeSlot string) (time.Time, bool) {
	parts := strings.SplitN(timeSlot, "-", 2)
	if len(parts) == 0 || parts[0] == "" {
		return time.Time{}, false
	}
	start, err := time.Parse("15:04", strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		start.Hour(), start.Minute(), 0, 0, time.Local), true
}

// GetOrder retrieves an order with its bookings populated.
func (s *DefaultOrderService) GetOrder(ctx context.Context, orderID string) (*models.OrderDetail, error) {
	ord, err := s.Orders.GetByID(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	if ord == nil {
		return nil, utils.NotFoundError("order %s not found", orderID)
	}

	bookings, err := s.Bookings.GetByOrderID(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings for order %s: %w", orderID, err)
	}
	return &models.OrderDetail{Order: *ord, Bookings: bookings}, nil
}

// ListOrders retrieves all orders placed by a customer.
func (s *DefaultOrderService) ListOrders(ctx context.Context, customerID string) ([]models.Order, error) {
	orders, err := s.Orders.ListByCustomer(customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
