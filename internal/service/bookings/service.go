package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
	bookingRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/booking"
	facilityRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/facility"
	"github.com/m04kA/TSZH-FacilityService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями и расписанием
type Service struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	facilityRepo FacilityRepository
	residentRepo ResidentRepository
	notifier     NotificationService
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	facilityRepo FacilityRepository,
	residentRepo ResidentRepository,
	notifier NotificationService,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		facilityRepo: facilityRepo,
		residentRepo: residentRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetAvailability получает расписание объекта на дату.
// Слоты возвращаются в порядке времени начала, статус и цвет - как в хранилище.
func (s *Service) GetAvailability(ctx context.Context, facilityID int64, date time.Time) (*models.AvailabilityResponse, error) {
	s.logger.Info("GetAvailability: facility=%d, date=%s", facilityID, date.Format(domain.DateFormat))

	facility, err := s.facilityRepo.GetByID(ctx, facilityID)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			s.logger.Warn("GetAvailability: facility id=%d not found", facilityID)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("GetAvailability: failed to get facility id=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: GetAvailability - failed to get facility: %v", ErrInternal, err)
	}

	slots, err := s.slotRepo.ListByFacilityAndDate(ctx, facilityID, date)
	if err != nil {
		s.logger.Error("GetAvailability: failed to list slots for facility=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: GetAvailability - failed to list slots: %v", ErrInternal, err)
	}

	resp := &models.AvailabilityResponse{
		FacilityID:   facility.ID,
		FacilityName: facility.Name,
		Date:         date.Format(domain.DateFormat),
		Slots:        make([]models.SlotResponse, 0, len(slots)),
	}
	for _, slot := range slots {
		resp.Slots = append(resp.Slots, models.FromDomainSlot(slot))
	}

	s.logger.Info("GetAvailability: facility=%d has %d slots on %s", facilityID, len(slots), date.Format(domain.DateFormat))
	return resp, nil
}

// GetByID получает бронирование по ID.
// Житель видит только собственные бронирования: чужое бронирование
// неотличимо от несуществующего.
func (s *Service) GetByID(ctx context.Context, id int64, residentID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for resident=%d", id, residentID)

	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if booking.ResidentID != residentID {
		s.logger.Warn("GetByID: booking id=%d does not belong to resident=%d", id, residentID)
		return nil, ErrBookingNotFound
	}

	return models.FromDomainBooking(booking), nil
}

// GetUpcoming получает предстоящие живые бронирования жителя
func (s *Service) GetUpcoming(ctx context.Context, residentID int64) (*models.BookingListResponse, error) {
	s.logger.Info("GetUpcoming: fetching bookings for resident=%d", residentID)

	now := s.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	bookings, err := s.bookingRepo.GetUpcomingByResident(ctx, residentID, today)
	if err != nil {
		s.logger.Error("GetUpcoming: repository error for resident=%d: %v", residentID, err)
		return nil, fmt.Errorf("%w: GetUpcoming - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUpcoming: fetched %d bookings for resident=%d", len(bookings), residentID)
	return models.FromDomainBookingList(bookings), nil
}

// ListByDate получает административную сводку живых бронирований на дату
// с данными жителей
func (s *Service) ListByDate(ctx context.Context, date time.Time) (*models.AdminBookingListResponse, error) {
	s.logger.Info("ListByDate: fetching bookings for date=%s", date.Format(domain.DateFormat))

	bookings, err := s.bookingRepo.ListConfirmedByDate(ctx, date)
	if err != nil {
		s.logger.Error("ListByDate: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: ListByDate - repository error: %v", ErrInternal, err)
	}

	resp := &models.AdminBookingListResponse{
		Date:     date.Format(domain.DateFormat),
		Bookings: make([]models.AdminBookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		item := models.AdminBookingResponse{
			BookingResponse: *models.FromDomainBooking(booking),
		}

		// Житель мог быть мягко удалён после бронирования -
		// сводка в этом случае остаётся без его контактов
		resident, err := s.residentRepo.GetByID(ctx, booking.ResidentID)
		if err != nil {
			s.logger.Warn("ListByDate: failed to get resident id=%d for booking id=%d: %v",
				booking.ResidentID, booking.ID, err)
		} else {
			item.ResidentName = resident.Name
			item.ResidentApartment = resident.ApartmentNumber
			item.ResidentPhone = resident.Phone
		}

		resp.Bookings = append(resp.Bookings, item)
	}

	s.logger.Info("ListByDate: fetched %d bookings for date=%s", len(bookings), date.Format(domain.DateFormat))
	return resp, nil
}

// CancelByResident отменяет бронирование по инициативе жителя.
// Политика: отмена возможна не позднее чем за 24 часа до начала слота.
// Слот возвращается в available в той же транзакции.
func (s *Service) CancelByResident(ctx context.Context, req *models.CancelByResidentRequest) error {
	s.logger.Info("CancelByResident: cancelling booking id=%d by resident=%d", req.BookingID, req.ResidentID)

	if err := validateReason(req.CancellationReason); err != nil {
		s.logger.Warn("CancelByResident: invalid reason for booking id=%d: %v", req.BookingID, err)
		return err
	}

	var cancelled *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, req.BookingID, "CancelByResident")
		if err != nil {
			return err
		}

		// Чужое бронирование неотличимо от несуществующего
		if booking.ResidentID != req.ResidentID {
			s.logger.Warn("CancelByResident: booking id=%d does not belong to resident=%d",
				req.BookingID, req.ResidentID)
			return ErrBookingNotFound
		}

		if booking.IsCancelled() {
			s.logger.Warn("CancelByResident: booking id=%d already cancelled", req.BookingID)
			return ErrCannotCancel
		}

		now := s.timeProvider.Now()
		if !booking.CanBeCancelledBy(domain.CancelledByResident, now) {
			s.logger.Warn("CancelByResident: cancellation window expired for booking id=%d (starts at %s)",
				req.BookingID, booking.StartsAt().Format(time.RFC3339))
			return ErrCancellationWindowExpired
		}

		return s.cancelAndReleaseSlot(txCtx, booking, domain.CancelledByResident, req.CancellationReason, &cancelled)
	})
	if err != nil {
		return err
	}

	s.logger.Info("CancelByResident: successfully cancelled booking id=%d", req.BookingID)
	s.notifyCancellation(ctx, cancelled, req.CancellationReason)
	return nil
}

// CancelByAdmin отменяет бронирование по инициативе администратора.
// Окно в 24 часа не применяется, но причина отмены обязательна.
func (s *Service) CancelByAdmin(ctx context.Context, req *models.CancelByAdminRequest) error {
	s.logger.Info("CancelByAdmin: cancelling booking id=%d", req.BookingID)

	if req.CancellationReason == "" {
		s.logger.Warn("CancelByAdmin: missing cancellation reason for booking id=%d", req.BookingID)
		return fmt.Errorf("%w: cancellation reason is required", ErrInvalidInput)
	}
	if err := validateReason(req.CancellationReason); err != nil {
		s.logger.Warn("CancelByAdmin: invalid reason for booking id=%d: %v", req.BookingID, err)
		return err
	}

	var cancelled *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, req.BookingID, "CancelByAdmin")
		if err != nil {
			return err
		}

		if booking.IsCancelled() {
			s.logger.Warn("CancelByAdmin: booking id=%d already cancelled", req.BookingID)
			return ErrCannotCancel
		}

		return s.cancelAndReleaseSlot(txCtx, booking, domain.CancelledByAdmin, req.CancellationReason, &cancelled)
	})
	if err != nil {
		return err
	}

	s.logger.Info("CancelByAdmin: successfully cancelled booking id=%d", req.BookingID)
	s.notifyCancellation(ctx, cancelled, req.CancellationReason)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// cancelAndReleaseSlot отменяет бронирование и возвращает слот в available
// одной транзакцией: наблюдатель не должен видеть занятый слот без живого
// бронирования и наоборот.
func (s *Service) cancelAndReleaseSlot(ctx context.Context, booking *domain.Booking, actor domain.CancelActor, reason string, out **domain.Booking) error {
	if err := s.bookingRepo.Cancel(ctx, booking.ID, actor, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrCannotCancel
		}
		s.logger.Error("cancelAndReleaseSlot: failed to cancel booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
	}

	if err := s.slotRepo.UpdateStatus(ctx, booking.TimeSlotID, domain.SlotStatusAvailable); err != nil {
		s.logger.Error("cancelAndReleaseSlot: failed to release slot id=%d for booking id=%d: %v",
			booking.TimeSlotID, booking.ID, err)
		return fmt.Errorf("%w: failed to release slot: %v", ErrInternal, err)
	}

	*out = booking
	return nil
}

// notifyCancellation отправляет письмо об отмене после фиксации транзакции.
// Ошибки доставки не влияют на результат отмены.
func (s *Service) notifyCancellation(ctx context.Context, booking *domain.Booking, reason string) {
	if booking == nil {
		return
	}

	resident, err := s.residentRepo.GetByID(ctx, booking.ResidentID)
	if err != nil {
		s.logger.Warn("notifyCancellation: failed to get resident id=%d for booking id=%d: %v",
			booking.ResidentID, booking.ID, err)
		return
	}

	s.notifier.SendCancellationNotification(ctx, resident, booking, reason)
}

func validateReason(reason string) error {
	if len(reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}
	return nil
}
