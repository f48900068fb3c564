package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/booking"
	profileRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/profile"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

type stubBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func newStubBookingRepo(bookings ...*domain.Booking) *stubBookingRepo {
	r := &stubBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *stubBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *stubBookingRepo) GetByOwnerWithFilter(_ context.Context, filter domain.OwnerBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.bookings {
		if b.OwnerID != filter.OwnerID {
			continue
		}
		if filter.OnlyAdmitted && !b.IsAdmitted() {
			continue
		}
		if filter.StartDate != nil && b.BookingDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && b.BookingDate.After(*filter.EndDate) {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubBookingRepo) Reschedule(_ context.Context, id int64, newDate time.Time, newTime types.TimeString) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.BookingDate = newDate
	b.StartTime = newTime
	return nil
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
}

func (n *stubNotifier) DispatchBestEffort(_ context.Context, event *domain.BookingEvent) error {
	n.events = append(n.events, event)
	return nil
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

func acceptedBooking(id int64, date time.Time, start types.TimeString, duration int) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		OwnerID:         10,
		BookingDate:     date,
		StartTime:       start,
		DurationMinutes: duration,
		Status:          domain.StatusAccepted,
		RequesterName:   "Client",
		RequesterEmail:  "client@example.com",
		Subject:         "Consultation",
	}
}

func ruleFor(date time.Time) *domain.AvailabilityRule {
	return &domain.AvailabilityRule{
		ID:      1,
		OwnerID: 10,
		Date:    date,
		Ranges: []domain.TimeRange{
			{Start: "09:00", End: "12:00", IntervalMinutes: 30},
		},
	}
}

func newTestUseCase(bookings *stubBookingRepo, avail *stubAvailabilityRepo, profiles *stubProfileRepo, notif *stubNotifier, now time.Time) *UseCase {
	uc := NewUseCase(bookings, avail, profiles, notif, stubTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestRescheduleBooking_Success(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	oldDate := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	newDate := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	repo := newStubBookingRepo(acceptedBooking(1, oldDate, "09:00", 30))
	avail := &stubAvailabilityRepo{rules: map[string]*domain.AvailabilityRule{
		newDate.Format(domain.DateFormat): ruleFor(newDate),
	}}
	notif := &stubNotifier{}

	uc := newTestUseCase(repo, avail, &stubProfileRepo{}, notif, now)

	resp, err := uc.Execute(context.Background(), Request{
		BookingID:    1,
		OwnerID:      10,
		NewDate:      newDate,
		NewStartTime: "10:00",
	})
	require.NoError(t, err)

	assert.Equal(t, newDate.Format(domain.DateFormat), resp.BookingDate)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, domain.StatusAccepted, resp.Status)

	// Уведомление несёт прежние дату и время встречи
	require.Len(t, notif.events, 1)
	event := notif.events[0]
	assert.Equal(t, domain.EventBookingRescheduled, event.Type)
	require.NotNil(t, event.OldBookingDate)
	assert.Equal(t, oldDate, *event.OldBookingDate)
	require.NotNil(t, event.OldStartTime)
	assert.Equal(t, types.TimeString("09:00"), *event.OldStartTime)
}

func TestRescheduleBooking_OldSlotIgnoredOnSameDay(t *testing.T) {
	// Перенос внутри того же дня: прежний слот бронирования не считается
	// занятым, метка, до которой дотягивался его хвост с буфером, доступна
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	repo := newStubBookingRepo(acceptedBooking(1, date, "09:00", 60))
	avail := &stubAvailabilityRepo{rules: map[string]*domain.AvailabilityRule{
		date.Format(domain.DateFormat): {
			ID:      1,
			OwnerID: 10,
			Date:    date,
			Ranges: []domain.TimeRange{
				{Start: "09:00", End: "12:00", IntervalMinutes: 60},
			},
		},
	}}
	profiles := &stubProfileRepo{profiles: map[int64]*domain.OwnerProfile{
		10: {OwnerID: 10, BufferMinutes: 30},
	}}

	uc := newTestUseCase(repo, avail, profiles, &stubNotifier{}, now)

	resp, err := uc.Execute(context.Background(), Request{
		BookingID:    1,
		OwnerID:      10,
		NewDate:      date,
		NewStartTime: "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
}

func TestRescheduleBooking_TargetSlotOccupied(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	moving := acceptedBooking(1, date, "09:00", 30)
	blocker := acceptedBooking(2, date, "10:00", 30)

	repo := newStubBookingRepo(moving, blocker)
	avail := &stubAvailabilityRepo{rules: map[string]*domain.AvailabilityRule{
		date.Format(domain.DateFormat): ruleFor(date),
	}}
	notif := &stubNotifier{}

	uc := newTestUseCase(repo, avail, &stubProfileRepo{}, notif, now)

	_, err := uc.Execute(context.Background(), Request{
		BookingID:    1,
		OwnerID:      10,
		NewDate:      date,
		NewStartTime: "10:00",
	})
	assert.ErrorIs(t, err, ErrSlotTaken)

	// Бронирование остаётся на прежнем слоте
	assert.Equal(t, types.TimeString("09:00"), repo.bookings[1].StartTime)
	assert.Empty(t, notif.events)
}

func TestRescheduleBooking_SlotTooShort(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	oldDate := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	newDate := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	repo := newStubBookingRepo(acceptedBooking(1, oldDate, "09:00", 60))
	avail := &stubAvailabilityRepo{rules: map[string]*domain.AvailabilityRule{
		newDate.Format(domain.DateFormat): ruleFor(newDate),
	}}

	uc := newTestUseCase(repo, avail, &stubProfileRepo{}, &stubNotifier{}, now)

	// Метки диапазона 09:00–12:00/30 вмещают не более 30 минут
	_, err := uc.Execute(context.Background(), Request{
		BookingID:    1,
		OwnerID:      10,
		NewDate:      newDate,
		NewStartTime: "10:00",
	})
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestRescheduleBooking_OnlyAcceptedCanMove(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	pending := acceptedBooking(1, date, "09:00", 30)
	pending.Status = domain.StatusPending

	uc := newTestUseCase(newStubBookingRepo(pending), &stubAvailabilityRepo{}, &stubProfileRepo{}, &stubNotifier{}, now)

	_, err := uc.Execute(context.Background(), Request{
		BookingID:    1,
		OwnerID:      10,
		NewDate:      date,
		NewStartTime: "10:00",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRescheduleBooking_PastDate(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	yesterday := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(newStubBookingRepo(acceptedBooking(1, date, "09:00", 30)), &stubAvailabilityRepo{}, &stubProfileRepo{}, &stubNotifier{}, now)

	_, err := uc.Execute(context.Background(), Request{
		BookingID:    1,
		OwnerID:      10,
		NewDate:      yesterday,
		NewStartTime: "10:00",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRescheduleBooking_AccessDenied(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(newStubBookingRepo(acceptedBooking(1, date, "09:00", 30)), &stubAvailabilityRepo{}, &stubProfileRepo{}, &stubNotifier{}, now)

	_, err := uc.Execute(context.Background(), Request{
		BookingID:    1,
		OwnerID:      20,
		NewDate:      date,
		NewStartTime: "10:00",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
