package accept_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	"github.com/m04kA/SMC-MeetingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-MeetingService/internal/infra/storage/profile"
	"github.com/m04kA/SMC-MeetingService/pkg/types"
)

type stubBookingRepo struct {
	bookings map[int64]*domain.Booking
	updated  map[int64]domain.BookingStatus
}

func newStubBookingRepo(bookings ...*domain.Booking) *stubBookingRepo {
	r := &stubBookingRepo{
		bookings: make(map[int64]*domain.Booking),
		updated:  make(map[int64]domain.BookingStatus),
	}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *stubBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
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

func (r *stubBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := r.bookings[id]
	if !ok {
		return booking.ErrBookingNotFound
	}
	b.Status = status
	r.updated[id] = status
	return nil
}

type stubProfileRepo struct {
	profiles map[int64]*domain.OwnerProfile
}

func (r *stubProfileRepo) GetByOwnerID(_ context.Context, ownerID int64) (*domain.OwnerProfile, error) {
	p, ok := r.profiles[ownerID]
	if !ok {
		return nil, profile.ErrProfileNotFound
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func pendingBooking(id, ownerID int64, date time.Time, start types.TimeString, duration int) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		OwnerID:         ownerID,
		BookingDate:     date,
		StartTime:       start,
		DurationMinutes: duration,
		Status:          domain.StatusPending,
		RequesterName:   "Client",
		RequesterEmail:  "client@example.com",
		Subject:         "Consultation",
	}
}

func TestAcceptBooking_Success(t *testing.T) {
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	repo := newStubBookingRepo(pendingBooking(1, 10, date, "09:00", 30))
	notif := &stubNotifier{}

	uc := NewUseCase(repo, &stubProfileRepo{}, notif, stubTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), Request{BookingID: 1, OwnerID: 10})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusAccepted, resp.Status)
	assert.Equal(t, domain.StatusAccepted, repo.updated[1])

	require.Len(t, notif.events, 1)
	assert.Equal(t, domain.EventBookingAccepted, notif.events[0].Type)
}

func TestAcceptBooking_NotFound(t *testing.T) {
	uc := NewUseCase(newStubBookingRepo(), &stubProfileRepo{}, &stubNotifier{}, stubTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), Request{BookingID: 99, OwnerID: 10})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestAcceptBooking_AccessDenied(t *testing.T) {
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	repo := newStubBookingRepo(pendingBooking(1, 10, date, "09:00", 30))

	uc := NewUseCase(repo, &stubProfileRepo{}, &stubNotifier{}, stubTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), Request{BookingID: 1, OwnerID: 20})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestAcceptBooking_InvalidTransition(t *testing.T) {
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	declined := pendingBooking(1, 10, date, "09:00", 30)
	declined.Status = domain.StatusDeclined

	uc := NewUseCase(newStubBookingRepo(declined), &stubProfileRepo{}, &stubNotifier{}, stubTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), Request{BookingID: 1, OwnerID: 10})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAcceptBooking_SlotTakenByOverlap(t *testing.T) {
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	accepted := pendingBooking(1, 10, date, "09:00", 60)
	accepted.Status = domain.StatusAccepted
	pending := pendingBooking(2, 10, date, "09:30", 30)

	repo := newStubBookingRepo(accepted, pending)
	notif := &stubNotifier{}

	uc := NewUseCase(repo, &stubProfileRepo{}, notif, stubTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), Request{BookingID: 2, OwnerID: 10})
	assert.ErrorIs(t, err, ErrSlotTaken)

	// Заявка остаётся ожидающей, уведомление не отправляется
	assert.Equal(t, domain.StatusPending, repo.bookings[2].Status)
	assert.Empty(t, notif.events)
}

func TestAcceptBooking_BufferExtendsOccupiedInterval(t *testing.T) {
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	// 09:00–09:30 принято; с буфером 15 минут хвост доходит до 09:45
	accepted := pendingBooking(1, 10, date, "09:00", 30)
	accepted.Status = domain.StatusAccepted
	pending := pendingBooking(2, 10, date, "09:30", 30)

	repo := newStubBookingRepo(accepted, pending)
	profiles := &stubProfileRepo{profiles: map[int64]*domain.OwnerProfile{
		10: {OwnerID: 10, BufferMinutes: 15},
	}}

	uc := NewUseCase(repo, profiles, &stubNotifier{}, stubTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), Request{BookingID: 2, OwnerID: 10})
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestAcceptBooking_BackToBackWithoutBuffer(t *testing.T) {
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	accepted := pendingBooking(1, 10, date, "09:00", 30)
	accepted.Status = domain.StatusAccepted
	pending := pendingBooking(2, 10, date, "09:30", 30)

	repo := newStubBookingRepo(accepted, pending)

	uc := NewUseCase(repo, &stubProfileRepo{}, &stubNotifier{}, stubTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), Request{BookingID: 2, OwnerID: 10})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, resp.Status)
}

func TestAcceptBooking_PendingDoesNotBlock(t *testing.T) {
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	otherPending := pendingBooking(1, 10, date, "09:00", 60)
	pending := pendingBooking(2, 10, date, "09:30", 30)

	repo := newStubBookingRepo(otherPending, pending)

	uc := NewUseCase(repo, &stubProfileRepo{}, &stubNotifier{}, stubTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), Request{BookingID: 2, OwnerID: 10})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, resp.Status)
}

func TestAcceptBooking_NotifierFailureDoesNotRollBack(t *testing.T) {
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	repo := newStubBookingRepo(pendingBooking(1, 10, date, "09:00", 30))
	notif := &stubNotifier{err: assert.AnError}

	uc := NewUseCase(repo, &stubProfileRepo{}, notif, stubTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), Request{BookingID: 1, OwnerID: 10})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, resp.Status)
	assert.Equal(t, domain.StatusAccepted, repo.bookings[1].Status)
}
