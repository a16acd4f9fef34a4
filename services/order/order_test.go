package order

import (
	"context"
	"errors"
	"testing"

	"huduma/models"
	"huduma/utils"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type fakeServiceRepo struct {
	services map[string]models.Service
}

func (f *fakeServiceRepo) Create(s *models.Service) error { f.services[s.ID] = *s; return nil }
func (f *fakeServiceRepo) GetByID(id string) (*models.Service, error) {
	if s, ok := f.services[id]; ok {
		return &s, nil
	}
	return nil, nil
}
func (f *fakeServiceRepo) GetByIDs(ids []string) ([]models.Service, error) {
	var out []models.Service
	seen := map[string]bool{}
	for _, id := range ids {
		if s, ok := f.services[id]; ok && !seen[id] {
			out = append(out, s)
			seen[id] = true
		}
	}
	return out, nil
}
func (f *fakeServiceRepo) ListByProvider(providerID string) ([]models.Service, error) {
	var out []models.Service
	for _, s := range f.services {
		if s.ProviderID == providerID {
			out = append(out, s)
		}
	}
	return out, nil
}
func (f *fakeServiceRepo) List() ([]models.Service, error) {
	var out []models.Service
	for _, s := range f.services {
		out = append(out, s)
	}
	return out, nil
}
func (f *fakeServiceRepo) Update(id string, s *models.Service) error { return nil }
func (f *fakeServiceRepo) Delete(id string) error                    { delete(f.services, id); return nil }

type fakeOrderRepo struct {
	orders  map[string]*models.Order
	deleted []string
}

func (f *fakeOrderRepo) Create(o *models.Order) error {
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}
func (f *fakeOrderRepo) GetByID(id string) (*models.Order, error) {
	if o, ok := f.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}
func (f *fakeOrderRepo) ListByCustomer(customerID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}
func (f *fakeOrderRepo) SetBookingIDs(id string, bookingIDs []string) error {
	o, ok := f.orders[id]
	if !ok {
		return errors.New("order not found")
	}
	o.BookingIDs = bookingIDs
	return nil
}
func (f *fakeOrderRepo) Delete(id string) error {
	delete(f.orders, id)
	f.deleted = append(f.deleted, id)
	return nil
}
func (f *fakeOrderRepo) MarkPaid(id string, rec models.PaymentRecord) (bool, error) {
	return false, nil
}

type fakeBookingRepo struct {
	bookings  map[string]*models.Booking
	created   []string
	deleted   []string
	failAfter int // fail Create once this many bookings exist; 0 disables
}

func (f *fakeBookingRepo) Create(b *models.Booking) error {
	if f.failAfter > 0 && len(f.created) >= f.failAfter {
		return errors.New("write failed")
	}
	cp := *b
	f.bookings[b.ID] = &cp
	f.created = append(f.created, b.ID)
	return nil
}
func (f *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	if b, ok := f.bookings[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}
func (f *fakeBookingRepo) GetByOrderID(orderID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.OrderID == orderID {
			out = append(out, *b)
		}
	}
	return out, nil
}
func (f *fakeBookingRepo) ListByCustomer(customerID string) ([]models.Booking, error) {
	return nil, nil
}
func (f *fakeBookingRepo) ListByProvider(providerID string) ([]models.Booking, error) {
	return nil, nil
}
func (f *fakeBookingRepo) List() ([]models.Booking, error) { return nil, nil }
func (f *fakeBookingRepo) Delete(id string) error {
	delete(f.bookings, id)
	f.deleted = append(f.deleted, id)
	return nil
}
func (f *fakeBookingRepo) SetStatus(id, status string) error { return nil }
func (f *fakeBookingRepo) SetStatusIfNot(id, newStatus, guard string) (bool, error) {
	return false, nil
}
func (f *fakeBookingRepo) MarkPaid(id string, rec models.PaymentRecord) (bool, error) {
	return false, nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) Create(u *models.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, nil
}
func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) { return nil, nil }
func (f *fakeUserRepo) GetAdmins() ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.Role == models.RoleAdmin {
			out = append(out, *u)
		}
	}
	return out, nil
}
func (f *fakeUserRepo) Update(u *models.User) error                 { return nil }
func (f *fakeUserRepo) UpdateSet(id string, updateDoc bson.M) error { return nil }
func (f *fakeUserRepo) IncrementEarnings(id string, amt float64) error {
	return nil
}
func (f *fakeUserRepo) SetRatingAggregates(providerID string, average float64, count int) error {
	return nil
}

type notifyCall struct {
	userID, message, notifType string
}

type fakeNotifier struct {
	direct []notifyCall
	admin  []notifyCall
}

func (f *fakeNotifier) Notify(ctx context.Context, userID, message, notifType string) {
	f.direct = append(f.direct, notifyCall{userID, message, notifType})
}
func (f *fakeNotifier) NotifyAdmins(ctx context.Context, message, notifType string) {
	f.admin = append(f.admin, notifyCall{"", message, notifType})
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
}

func (f *fakeEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{}, nil
}

type orderFixture struct {
	svc      *DefaultOrderService
	orders   *fakeOrderRepo
	bookings *fakeBookingRepo
	notifier *fakeNotifier
	enqueuer *fakeEnqueuer
}

func newOrderFixture(services ...models.Service) *orderFixture {
	svcRepo := &fakeServiceRepo{services: map[string]models.Service{}}
	for _, s := range services {
		svcRepo.services[s.ID] = s
	}
	f := &orderFixture{
		orders:   &fakeOrderRepo{orders: map[string]*models.Order{}},
		bookings: &fakeBookingRepo{bookings: map[string]*models.Booking{}},
		notifier: &fakeNotifier{},
		enqueuer: &fakeEnqueuer{},
	}
	f.svc = &DefaultOrderService{
		Orders:   f.orders,
		Bookings: f.bookings,
		Services: svcRepo,
		Users:    &fakeUserRepo{users: map[string]*models.User{}},
		Notifier: f.notifier,
		Tasks:    f.enqueuer,
		Logger:   zap.NewNop(),
		TaxRate:  0.10,
	}
	return f
}

func TestCreateOrderSplitsCartByProvider(t *testing.T) {
	f := newOrderFixture(
		models.Service{ID: "svc-clean", ProviderID: "prov-1", Name: "Deep Cleaning", Price: 50},
		models.Service{ID: "svc-plumb", ProviderID: "prov-2", Name: "Pipe Repair", Price: 30},
	)

	detail, err := f.svc.CreateOrder(context.Background(), "cust-1", OrderInput{
		ServiceIDs: []string{"svc-clean", "svc-plumb"},
		Date:       "2026-09-10",
		TimeSlot:   "10:00-12:00",
	})
	require.NoError(t, err)

	assert.Equal(t, 80.0, detail.Subtotal)
	assert.Equal(t, 8.0, detail.Tax)
	assert.Equal(t, 88.0, detail.TotalAmount)
	assert.Equal(t, models.OrderStatusPendingPayment, detail.OrderStatus)
	assert.Equal(t, models.PaymentStatusUnpaid, detail.PaymentStatus)

	require.Len(t, detail.Bookings, 2)
	assert.Equal(t, "prov-1", detail.Bookings[0].ProviderID)
	assert.Equal(t, "prov-2", detail.Bookings[1].ProviderID)
	for _, b := range detail.Bookings {
		assert.Equal(t, models.BookingStatusPending, b.Status)
		assert.Equal(t, models.PaymentStatusUnpaid, b.PaymentStatus)
		assert.Equal(t, detail.ID, b.OrderID)
	}
	assert.Equal(t, 50.0, detail.Bookings[0].TotalPrice)
	assert.Equal(t, 30.0, detail.Bookings[1].TotalPrice)

	stored, _ := f.orders.GetByID(detail.ID)
	require.NotNil(t, stored)
	assert.ElementsMatch(t, []string{detail.Bookings[0].ID, detail.Bookings[1].ID}, stored.BookingIDs)

	require.Len(t, f.notifier.admin, 1)
	assert.Contains(t, f.notifier.admin[0].message, detail.ID)

	// One reminder plus one expiry per booking.
	assert.Len(t, f.enqueuer.tasks, 4)
}

func TestCreateOrderGroupsSameProviderIntoOneBooking(t *testing.T) {
	f := newOrderFixture(
		models.Service{ID: "svc-a", ProviderID: "prov-1", Name: "Mowing", Price: 25},
		models.Service{ID: "svc-b", ProviderID: "prov-1", Name: "Hedging", Price: 35},
	)

	detail, err := f.svc.CreateOrder(context.Background(), "cust-1", OrderInput{
		ServiceIDs: []string{"svc-a", "svc-b"},
		Date:       "2026-09-10",
	})
	require.NoError(t, err)

	require.Len(t, detail.Bookings, 1)
	assert.Len(t, detail.Bookings[0].Services, 2)
	assert.Equal(t, 60.0, detail.Bookings[0].TotalPrice)
	assert.Equal(t, 60.0, detail.Subtotal)
}

func TestCreateOrderSnapshotsPrices(t *testing.T) {
	f := newOrderFixture(
		models.Service{ID: "svc-a", ProviderID: "prov-1", Name: "Mowing", Price: 25},
	)

	detail, err := f.svc.CreateOrder(context.Background(), "cust-1", OrderInput{
		ServiceIDs: []string{"svc-a"},
		Date:       "2026-09-10",
	})
	require.NoError(t, err)

	item := detail.Bookings[0].Services[0]
	assert.Equal(t, "svc-a", item.ServiceID)
	assert.Equal(t, "Mowing", item.Name)
	assert.Equal(t, 25.0, item.Price)
}

func TestCreateOrderAppliesDiscount(t *testing.T) {
	f := newOrderFixture(
		models.Service{ID: "svc-a", ProviderID: "prov-1", Name: "Mowing", Price: 80},
	)

	detail, err := f.svc.CreateOrder(context.Background(), "cust-1", OrderInput{
		ServiceIDs:     []string{"svc-a"},
		Date:           "2026-09-10",
		Coupon:         "WELCOME10",
		DiscountAmount: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, 80.0, detail.Subtotal)
	assert.Equal(t, 8.0, detail.Tax)
	assert.Equal(t, 10.0, detail.DiscountAmount)
	assert.Equal(t, 78.0, detail.TotalAmount)
	assert.Equal(t, "WELCOME10", detail.PromoCode)
}

func TestCreateOrderRejectsEmptyCart(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.CreateOrder(context.Background(), "cust-1", OrderInput{})

	var de *utils.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, utils.CodeInvalidArgument, de.Code)
}

func TestCreateOrderRejectsPartialResolutionWholesale(t *testing.T) {
	f := newOrderFixture(
		models.Service{ID: "svc-a", ProviderID: "prov-1", Name: "Mowing", Price: 25},
	)

	_, err := f.svc.CreateOrder(context.Background(), "cust-1", OrderInput{
		ServiceIDs: []string{"svc-a", "svc-missing"},
		Date:       "2026-09-10",
	})

	var de *utils.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, utils.CodeNotFound, de.Code)
	assert.Empty(t, f.orders.orders)
	assert.Empty(t, f.bookings.bookings)
}

func TestCreateOrderRollsBackOnBookingFailure(t *testing.T) {
	f := newOrderFixture(
		models.Service{ID: "svc-a", ProviderID: "prov-1", Name: "Mowing", Price: 25},
		models.Service{ID: "svc-b", ProviderID: "prov-2", Name: "Plumbing", Price: 40},
	)
	f.bookings.failAfter = 1 // second booking write fails

	_, err := f.svc.CreateOrder(context.Background(), "cust-1", OrderInput{
		ServiceIDs: []string{"svc-a", "svc-b"},
		Date:       "2026-09-10",
	})
	require.Error(t, err)

	assert.Empty(t, f.orders.orders, "order should be rolled back")
	assert.Empty(t, f.bookings.bookings, "created bookings should be rolled back")
	assert.Len(t, f.orders.deleted, 1)
	assert.Len(t, f.bookings.deleted, 1)
	assert.Empty(t, f.notifier.admin)
	assert.Empty(t, f.enqueuer.tasks)
}

func TestGetOrderNotFound(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.GetOrder(context.Background(), "missing")

	var de *utils.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, utils.CodeNotFound, de.Code)
}

func TestGetOrderPopulatesBookings(t *testing.T) {
	f := newOrderFixture(
		models.Service{ID: "svc-a", ProviderID: "prov-1", Name: "Mowing", Price: 25},
	)

	created, err := f.svc.CreateOrder(context.Background(), "cust-1", OrderInput{
		ServiceIDs: []string{"svc-a"},
		Date:       "2026-09-10",
	})
	require.NoError(t, err)

	detail, err := f.svc.GetOrder(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, detail.ID)
	require.Len(t, detail.Bookings, 1)
	assert.Equal(t, created.Bookings[0].ID, detail.Bookings[0].ID)
}
