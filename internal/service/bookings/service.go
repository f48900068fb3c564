package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/booking"
	profileRepo "github.com/m04kA/SMC-MeetingService/internal/infra/storage/profile"
	"github.com/m04kA/SMC-MeetingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-MeetingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-MeetingService/pkg/ptr"
)

// Service сервис для работы с бронированиями владельца
type Service struct {
	bookingRepo    BookingRepository
	profileRepo    ProfileRepository
	notifierClient NotifierClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	profileRepo ProfileRepository,
	notifierClient NotifierClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		profileRepo:    profileRepo,
		notifierClient: notifierClient,
		logger:         logger,
	}
}

// GetByID получает бронирование по ID.
// Бронирование видит только владелец календаря, которому оно адресовано.
func (s *Service) GetByID(ctx context.Context, id int64, ownerID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for owner=%d", id, ownerID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.OwnerID != ownerID {
		s.logger.Warn("GetByID: access denied for owner=%d to booking id=%d", ownerID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetOwnerBookings получает бронирования владельца с гибкой фильтрацией.
// По умолчанию отклонённые и отменённые не включаются.
//
// Примеры использования:
// - Все активные бронирования: GetOwnerBookings(ctx, &GetOwnerBookingsRequest{OwnerID: 123})
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Только ожидающие: указать Status = "pending"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetOwnerBookings(ctx context.Context, req *models.GetOwnerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetOwnerBookings: fetching bookings for owner=%d", req.OwnerID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetOwnerBookings: invalid filter for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByOwnerWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetOwnerBookings: repository error for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: GetOwnerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetOwnerBookings: successfully fetched %d bookings for owner=%d", len(bookings), req.OwnerID)
	return models.FromDomainBookingList(bookings), nil
}

// Decline отклоняет ожидающую заявку.
// Отклонение не освобождает слоты: ожидающие заявки и так их не занимают.
func (s *Service) Decline(ctx context.Context, bookingID int64, req *models.DeclineBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Decline: declining booking id=%d by owner=%d", bookingID, req.OwnerID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Decline: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Decline: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Decline - repository error: %v", ErrInternal, err)
	}

	if booking.OwnerID != req.OwnerID {
		s.logger.Warn("Decline: access denied for owner=%d to booking id=%d", req.OwnerID, bookingID)
		return nil, ErrAccessDenied
	}

	if !booking.CanBeDeclined() {
		s.logger.Warn("Decline: booking id=%d cannot be declined, status=%s", bookingID, booking.Status)
		return nil, ErrCannotDecline
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusDeclined); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Decline: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Decline - repository error: %v", ErrInternal, err)
	}

	booking.Status = domain.StatusDeclined
	s.logger.Info("Decline: successfully declined booking id=%d", bookingID)

	if err := s.notifierClient.DispatchBestEffort(ctx, notifier.NewEvent(domain.EventBookingDeclined, booking)); err != nil {
		s.logger.Warn("Decline: notification delivery degraded for booking id=%d: %v", bookingID, err)
	}

	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет подтверждённое бронирование.
// Уведомление об отмене несёт публичный slug владельца, чтобы запрашивающий
// мог сразу выбрать новый слот.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by owner=%d", bookingID, req.OwnerID)

	if req.CancellationNote != nil && len(*req.CancellationNote) > domain.MaxCancellationNoteLength {
		s.logger.Warn("Cancel: cancellation note too long for booking id=%d", bookingID)
		return nil, fmt.Errorf("%w: cancellation note is too long", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if booking.OwnerID != req.OwnerID {
		s.logger.Warn("Cancel: access denied for owner=%d to booking id=%d", req.OwnerID, bookingID)
		return nil, ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return nil, ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationNote); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	booking.Status = domain.StatusCanceled
	booking.CancellationNote = req.CancellationNote
	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)

	event := notifier.NewEvent(domain.EventBookingCanceled, booking)
	event.CancellationNote = req.CancellationNote
	if slug := s.rebookingSlug(ctx, booking.OwnerID); slug != nil {
		event.RebookingSlug = slug
	}
	if err := s.notifierClient.DispatchBestEffort(ctx, event); err != nil {
		s.logger.Warn("Cancel: notification delivery degraded for booking id=%d: %v", bookingID, err)
	}

	return models.FromDomainBooking(booking), nil
}

// rebookingSlug возвращает публичный slug владельца, если профиль настроен
func (s *Service) rebookingSlug(ctx context.Context, ownerID int64) *string {
	prof, err := s.profileRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if !errors.Is(err, profileRepo.ErrProfileNotFound) {
			s.logger.Warn("rebookingSlug: failed to get profile for owner=%d: %v", ownerID, err)
		}
		return nil
	}
	if prof.PublicSlug == "" {
		return nil
	}
	return ptr.Ptr(prof.PublicSlug)
}
