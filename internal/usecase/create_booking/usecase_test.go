package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/availability"
	profileRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/profile"
)

type stubBookingRepo struct {
	existing []*domain.Booking
	created  []*domain.Booking
	nextID   int64
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.nextID++
	cp := *b
	cp.ID = r.nextID
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	r.created = append(r.created, &cp)
	return &cp, nil
}

func (r *stubBookingRepo) GetByOwnerWithFilter(_ context.Context, filter domain.OwnerBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.existing {
		if b.OwnerID != filter.OwnerID {
			continue
		}
		if filter.OnlyAdmitted && !b.IsAdmitted() {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

type stubAvailabilityRepo struct {
	rules map[string]*domain.AvailabilityRule
}

func (r *stubAvailabilityRepo) GetByOwnerAndDate(_ context.Context, _ int64, date time.Time) (*domain.AvailabilityRule, error) {
	rule, ok := r.rules[date.Format(domain.DateFormat)]
	if !ok {
		return nil, availabilityRepo.ErrRuleNotFound
	}
	return rule, nil
}

type stubProfileRepo struct {
	profiles map[int64]*domain.OwnerProfile
}

func (r *stubProfileRepo) GetByOwnerID(_ context.Context, ownerID int64) (*domain.OwnerProfile, error) {
	p, ok := r.profiles[ownerID]
	if !ok {
		return nil, profileRepo.ErrProfileNotFound
	}
	return p, nil
}

type stubNotifier struct {
	events []*domain.BookingEvent
	err    error
}

func (n *stubNotifier) DispatchBestEffort(_ context.Context, event *domain.BookingEvent) error {
	n.events = append(n.events, event)
	return n.err
}

type stubTxManager struct{}

func (stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(bookings *stubBookingRepo, avail *stubAvailabilityRepo, profiles *stubProfileRepo, notif *stubNotifier, now time.Time) *UseCase {
	uc := NewUseCase(bookings, avail, profiles, notif, stubTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func validRequest(date time.Time) *Request {
	return &Request{
		OwnerID:         10,
		Date:            date,
		StartTime:       "09:00",
		DurationMinutes: 30,
		RequesterName:   "Client",
		RequesterEmail:  "client@example.com",
		Subject:         "Consultation",
	}
}

func singleRangeRule(date time.Time) *domain.AvailabilityRule {
	return &domain.AvailabilityRule{
		ID:      1,
		OwnerID: 10,
		Date:    date,
		Ranges: []domain.TimeRange{
			{Start: "09:00", End: "12:00", IntervalMinutes: 30},
		},
	}
}

func defaultProfiles() *stubProfileRepo {
	return &stubProfileRepo{profiles: map[int64]*domain.OwnerProfile{
		10: {OwnerID: 10, DisplayName: "Owner", OfferedDurations: []int{30, 60}},
	}}
}

func TestCreateBooking_Success(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	bookings := &stubBookingRepo{}
	avail := &stubAvailabilityRepo{rules: map[string]*domain.AvailabilityRule{
		date.Format(domain.DateFormat): singleRangeRule(date),
	}}
	notif := &stubNotifier{}

	uc := newTestUseCase(bookings, avail, defaultProfiles(), notif, now)

	resp, err := uc.Execute(context.Background(), validRequest(date))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	require.Len(t, bookings.created, 1)

	require.Len(t, notif.events, 1)
	assert.Equal(t, domain.EventBookingCreated, notif.events[0].Type)
}

func TestCreateBooking_PastDate(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	yesterday := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	bookings := &stubBookingRepo{}
	uc := newTestUseCase(bookings, &stubAvailabilityRepo{}, defaultProfiles(), &stubNotifier{}, now)

	_, err := uc.Execute(context.Background(), validRequest(yesterday))
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, bookings.created)
}

func TestCreateBooking_OwnerNotFound(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&stubBookingRepo{}, &stubAvailabilityRepo{}, &stubProfileRepo{}, &stubNotifier{}, now)

	_, err := uc.Execute(context.Background(), validRequest(date))
	assert.ErrorIs(t, err, ErrOwnerNotFound)
}

func TestCreateBooking_DurationNotOffered(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&stubBookingRepo{}, &stubAvailabilityRepo{}, defaultProfiles(), &stubNotifier{}, now)

	req := validRequest(date)
	req.DurationMinutes = 45

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateBooking_NoAvailabilityRule(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	// День без правила не имеет доступных слотов
	uc := newTestUseCase(&stubBookingRepo{}, &stubAvailabilityRepo{}, defaultProfiles(), &stubNotifier{}, now)

	_, err := uc.Execute(context.Background(), validRequest(date))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateBooking_SlotOccupiedByAdmitted(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	bookings := &stubBookingRepo{existing: []*domain.Booking{
		{ID: 1, OwnerID: 10, BookingDate: date, StartTime: "09:00", DurationMinutes: 30, Status: domain.StatusAccepted},
	}}
	avail := &stubAvailabilityRepo{rules: map[string]*domain.AvailabilityRule{
		date.Format(domain.DateFormat): singleRangeRule(date),
	}}

	uc := newTestUseCase(bookings, avail, defaultProfiles(), &stubNotifier{}, now)

	_, err := uc.Execute(context.Background(), validRequest(date))
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, bookings.created)
}

func TestCreateBooking_PendingDoesNotOccupy(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	// Чужая ожидающая заявка на тот же слот не мешает созданию новой
	bookings := &stubBookingRepo{existing: []*domain.Booking{
		{ID: 1, OwnerID: 10, BookingDate: date, StartTime: "09:00", DurationMinutes: 30, Status: domain.StatusPending},
	}}
	avail := &stubAvailabilityRepo{rules: map[string]*domain.AvailabilityRule{
		date.Format(domain.DateFormat): singleRangeRule(date),
	}}

	uc := newTestUseCase(bookings, avail, defaultProfiles(), &stubNotifier{}, now)

	resp, err := uc.Execute(context.Background(), validRequest(date))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
}

func TestCreateBooking_PastSlotSameDay(t *testing.T) {
	// В день встречи метки не позже текущего времени отфильтрованы
	now := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	avail := &stubAvailabilityRepo{rules: map[string]*domain.AvailabilityRule{
		date.Format(domain.DateFormat): singleRangeRule(date),
	}}

	uc := newTestUseCase(&stubBookingRepo{}, avail, defaultProfiles(), &stubNotifier{}, now)

	_, err := uc.Execute(context.Background(), validRequest(date))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateBooking_InvalidEmail(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&stubBookingRepo{}, &stubAvailabilityRepo{}, defaultProfiles(), &stubNotifier{}, now)

	req := validRequest(date)
	req.RequesterEmail = "not-an-email"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateBooking_NotifierFailureDoesNotFailRequest(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	bookings := &stubBookingRepo{}
	avail := &stubAvailabilityRepo{rules: map[string]*domain.AvailabilityRule{
		date.Format(domain.DateFormat): singleRangeRule(date),
	}}
	notif := &stubNotifier{err: assert.AnError}

	uc := newTestUseCase(bookings, avail, defaultProfiles(), notif, now)

	resp, err := uc.Execute(context.Background(), validRequest(date))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	require.Len(t, bookings.created, 1)
}
