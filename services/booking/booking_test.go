package booking

import (
	"context"
	"testing"

	"huduma/models"
	"huduma/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type fakeBookingRepo struct {
	bookings map[string]*models.Booking
	// stealCompletion simulates a concurrent writer landing its conditional
	// update first: the status flips but this caller's write reports no match.
	stealCompletion bool
}

func (f *fakeBookingRepo) Create(b *models.Booking) error {
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}
func (f *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	if b, ok := f.bookings[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}
func (f *fakeBookingRepo) GetByOrderID(orderID string) ([]models.Booking, error) { return nil, nil }
func (f *fakeBookingRepo) ListByCustomer(customerID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.CustomerID == customerID {
			out = append(out, *b)
		}
	}
	return out, nil
}
func (f *fakeBookingRepo) ListByProvider(providerID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ProviderID == providerID {
			out = append(out, *b)
		}
	}
	return out, nil
}
func (f *fakeBookingRepo) List() ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		out = append(out, *b)
	}
	return out, nil
}
func (f *fakeBookingRepo) Delete(id string) error { delete(f.bookings, id); return nil }
func (f *fakeBookingRepo) SetStatus(id, status string) error {
	if b, ok := f.bookings[id]; ok {
		b.Status = status
	}
	return nil
}
func (f *fakeBookingRepo) SetStatusIfNot(id, newStatus, guard string) (bool, error) {
	b, ok := f.bookings[id]
	if !ok || b.Status == guard {
		return false, nil
	}
	if f.stealCompletion {
		b.Status = guard
		return false, nil
	}
	b.Status = newStatus
	return true, nil
}
func (f *fakeBookingRepo) MarkPaid(id string, rec models.PaymentRecord) (bool, error) {
	return false, nil
}

type fakeUserRepo struct {
	earnings       map[string]float64
	incrementCalls int
}

func (f *fakeUserRepo) Create(u *models.User) error                   { return nil }
func (f *fakeUserRepo) GetByID(id string) (*models.User, error)       { return nil, nil }
func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) { return nil, nil }
func (f *fakeUserRepo) GetAdmins() ([]models.User, error)             { return nil, nil }
func (f *fakeUserRepo) Update(u *models.User) error                   { return nil }
func (f *fakeUserRepo) UpdateSet(id string, updateDoc bson.M) error   { return nil }
func (f *fakeUserRepo) IncrementEarnings(providerID string, amount float64) error {
	f.incrementCalls++
	f.earnings[providerID] += amount
	return nil
}
func (f *fakeUserRepo) SetRatingAggregates(providerID string, average float64, count int) error {
	return nil
}

type notifyCall struct {
	userID, message, notifType string
}

type fakeNotifier struct {
	calls []notifyCall
}

func (f *fakeNotifier) Notify(ctx context.Context, userID, message, notifType string) {
	f.calls = append(f.calls, notifyCall{userID, message, notifType})
}
func (f *fakeNotifier) NotifyAdmins(ctx context.Context, message, notifType string) {}

type bookingFixture struct {
	svc      *DefaultBookingService
	repo     *fakeBookingRepo
	users    *fakeUserRepo
	notifier *fakeNotifier
}

func newBookingFixture(bookings ...models.Booking) *bookingFixture {
	f := &bookingFixture{
		repo:     &fakeBookingRepo{bookings: map[string]*models.Booking{}},
		users:    &fakeUserRepo{earnings: map[string]float64{}},
		notifier: &fakeNotifier{},
	}
	for i := range bookings {
		f.repo.Create(&bookings[i])
	}
	f.svc = &DefaultBookingService{
		Bookings: f.repo,
		Users:    f.users,
		Notifier: f.notifier,
		Logger:   zap.NewNop(),
	}
	return f
}

func pendingBooking(id, providerID string) models.Booking {
	return models.Booking{
		ID:         id,
		CustomerID: "cust-1",
		ProviderID: providerID,
		Services: []models.ServiceItem{
			{ServiceID: "svc-a", Name: "Deep Cleaning", Price: 50},
			{ServiceID: "svc-b", Name: "Window Washing", Price: 30},
		},
		Status:        models.BookingStatusPending,
		TotalPrice:    80,
		PaymentStatus: models.PaymentStatusUnpaid,
	}
}

func TestUpdateStatusCompletedCreditsProviderOnce(t *testing.T) {
	f := newBookingFixture(pendingBooking("bk-1", "prov-1"))

	updated, err := f.svc.UpdateStatus(context.Background(), "bk-1", models.BookingStatusCompleted)
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusCompleted, updated.Status)
	assert.Equal(t, 80.0, f.users.earnings["prov-1"])
	assert.Equal(t, 1, f.users.incrementCalls)

	require.Len(t, f.notifier.calls, 1)
	assert.Equal(t, "cust-1", f.notifier.calls[0].userID)
}

func TestUpdateStatusCompletedRepeatIsNoOp(t *testing.T) {
	f := newBookingFixture(pendingBooking("bk-1", "prov-1"))

	_, err := f.svc.UpdateStatus(context.Background(), "bk-1", models.BookingStatusCompleted)
	require.NoError(t, err)

	// A retry of the same transition succeeds without side effects.
	again, err := f.svc.UpdateStatus(context.Background(), "bk-1", models.BookingStatusCompleted)
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusCompleted, again.Status)
	assert.Equal(t, 80.0, f.users.earnings["prov-1"], "earnings must be credited exactly once")
	assert.Equal(t, 1, f.users.incrementCalls)
	assert.Len(t, f.notifier.calls, 1, "no second notification on a no-op")
}

func TestUpdateStatusCompletedLostRaceStaysSilent(t *testing.T) {
	f := newBookingFixture(pendingBooking("bk-1", "prov-1"))
	f.repo.stealCompletion = true

	// Both requests read the booking as pending; the other one's conditional
	// write lands first. The loser must neither credit nor notify again.
	updated, err := f.svc.UpdateStatus(context.Background(), "bk-1", models.BookingStatusCompleted)
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusCompleted, updated.Status)
	assert.Zero(t, f.users.incrementCalls, "only the winning writer credits earnings")
	assert.Empty(t, f.notifier.calls, "only the winning writer notifies the customer")
}

func TestUpdateStatusTerminalStatesAreFrozen(t *testing.T) {
	b := pendingBooking("bk-1", "prov-1")
	b.Status = models.BookingStatusCancelled
	f := newBookingFixture(b)

	_, err := f.svc.UpdateStatus(context.Background(), "bk-1", models.BookingStatusUpcoming)

	var de *utils.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, utils.CodeInvalidState, de.Code)
	assert.Zero(t, f.users.incrementCalls)
	assert.Empty(t, f.notifier.calls)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	f := newBookingFixture(pendingBooking("bk-1", "prov-1"))

	_, err := f.svc.UpdateStatus(context.Background(), "bk-1", "teleported")

	var de *utils.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, utils.CodeInvalidArgument, de.Code)
}

func TestUpdateStatusBookingNotFound(t *testing.T) {
	f := newBookingFixture()

	_, err := f.svc.UpdateStatus(context.Background(), "missing", models.BookingStatusConfirmed)

	var de *utils.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, utils.CodeNotFound, de.Code)
}

func TestUpdateStatusNonTerminalTransition(t *testing.T) {
	f := newBookingFixture(pendingBooking("bk-1", "prov-1"))

	updated, err := f.svc.UpdateStatus(context.Background(), "bk-1", models.BookingStatusConfirmed)
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusConfirmed, updated.Status)
	assert.Zero(t, f.users.incrementCalls, "only completion credits earnings")
	require.Len(t, f.notifier.calls, 1)
	assert.Equal(t, StatusMessage(models.BookingStatusConfirmed, updated), f.notifier.calls[0].message)
}

func TestListForPrincipalScopesByRole(t *testing.T) {
	a := pendingBooking("bk-1", "prov-1")
	b := pendingBooking("bk-2", "prov-2")
	b.CustomerID = "cust-2"
	f := newBookingFixture(a, b)

	mine, err := f.svc.ListForPrincipal(context.Background(), "cust-1", models.RoleCustomer)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	assigned, err := f.svc.ListForPrincipal(context.Background(), "prov-2", models.RoleProvider)
	require.NoError(t, err)
	assert.Len(t, assigned, 1)

	all, err := f.svc.ListForPrincipal(context.Background(), "anyone", models.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.svc.ListForPrincipal(context.Background(), "ghost", "auditor")
	var de *utils.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, utils.CodeForbidden, de.Code)
}
