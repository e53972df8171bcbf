package confirm_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
	bookingRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/booking"
	facilityRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/facility"
	residentRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/resident"
	slotRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/timeslot"
)

// UseCase use case бронирования слота
type UseCase struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	residentRepo ResidentRepository
	facilityRepo FacilityRepository
	notifier     NotificationService
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	residentRepo ResidentRepository,
	facilityRepo FacilityRepository,
	notifier NotificationService,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		residentRepo: residentRepo,
		facilityRepo: facilityRepo,
		notifier:     notifier,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute бронирует слот для жителя.
// Проверка и занятие слота выполняются в сериализуемой транзакции со
// строчной блокировкой слота: при конкурентных запросах на один слот
// побеждает ровно один, остальные получают ErrSlotNotAvailable.
// Вторым рубежом стоит частичный уникальный индекс на живые бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmBooking: resident=%d, slot=%d", req.ResidentID, req.TimeSlotID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking
	var resident *domain.Resident

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Слот существует и свободен (строка блокируется FOR UPDATE).
		// Отсутствующий слот для клиента неотличим от занятого.
		slot, err := uc.slotRepo.GetByID(txCtx, req.TimeSlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("ConfirmBooking: slot id=%d not found", req.TimeSlotID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("ConfirmBooking: failed to get slot id=%d: %v", req.TimeSlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		if !slot.IsAvailable() {
			uc.logger.Warn("ConfirmBooking: slot id=%d is already booked", req.TimeSlotID)
			return ErrSlotNotAvailable
		}

		if req.FacilityID != 0 && req.FacilityID != slot.FacilityID {
			uc.logger.Warn("ConfirmBooking: slot id=%d belongs to facility=%d, not %d",
				req.TimeSlotID, slot.FacilityID, req.FacilityID)
			return ErrSlotNotAvailable
		}

		// 3. На слоте нет живого бронирования (дублирующая проверка к
		// статусу слота - центральный инвариант отсутствия двойных броней)
		if _, err := uc.bookingRepo.GetLiveBySlotID(txCtx, req.TimeSlotID); err == nil {
			uc.logger.Warn("ConfirmBooking: slot id=%d already has a live booking", req.TimeSlotID)
			return ErrSlotNotAvailable
		} else if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Error("ConfirmBooking: failed to check live booking for slot id=%d: %v", req.TimeSlotID, err)
			return fmt.Errorf("%w: failed to check live booking: %v", ErrInternal, err)
		}

		// 4. Житель существует и активен
		resident, err = uc.residentRepo.GetByID(txCtx, req.ResidentID)
		if err != nil {
			if errors.Is(err, residentRepo.ErrResidentNotFound) {
				uc.logger.Warn("ConfirmBooking: resident id=%d not found", req.ResidentID)
				return ErrResidentNotFound
			}
			uc.logger.Error("ConfirmBooking: failed to get resident id=%d: %v", req.ResidentID, err)
			return fmt.Errorf("%w: failed to get resident: %v", ErrInternal, err)
		}
		if !resident.IsActive {
			uc.logger.Warn("ConfirmBooking: resident id=%d is not active", req.ResidentID)
			return ErrResidentNotFound
		}

		// 5. Объект существует
		facility, err := uc.facilityRepo.GetByID(txCtx, slot.FacilityID)
		if err != nil {
			if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
				uc.logger.Warn("ConfirmBooking: facility id=%d not found", slot.FacilityID)
				return ErrFacilityNotFound
			}
			uc.logger.Error("ConfirmBooking: failed to get facility id=%d: %v", slot.FacilityID, err)
			return fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
		}

		// 6. Создаем бронирование и занимаем слот одной атомарной единицей:
		// наблюдатель не должен видеть занятый слот без бронирования
		booking := &domain.Booking{
			ResidentID:   req.ResidentID,
			FacilityID:   slot.FacilityID,
			TimeSlotID:   slot.ID,
			BookingDate:  slot.Date,
			StartTime:    slot.StartTime,
			EndTime:      slot.EndTime,
			Status:       domain.StatusConfirmed,
			FacilityName: facility.Name,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Проигравший конкурент упирается в частичный уникальный индекс
			if errors.Is(err, bookingRepo.ErrSlotAlreadyBooked) {
				uc.logger.Warn("ConfirmBooking: lost race for slot id=%d", req.TimeSlotID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("ConfirmBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		if err := uc.slotRepo.UpdateStatus(txCtx, slot.ID, domain.SlotStatusBooked); err != nil {
			uc.logger.Error("ConfirmBooking: failed to mark slot id=%d booked: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to update slot status: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ConfirmBooking: created booking id=%d for resident=%d, slot=%d",
		result.ID, req.ResidentID, req.TimeSlotID)

	// 7. Письмо о подтверждении после фиксации транзакции;
	// неудача доставки не откатывает бронирование
	uc.notifier.SendBookingConfirmation(ctx, resident, result)

	return &Response{
		ID:           result.ID,
		ResidentID:   result.ResidentID,
		FacilityID:   result.FacilityID,
		TimeSlotID:   result.TimeSlotID,
		FacilityName: result.FacilityName,
		BookingDate:  result.BookingDate,
		StartTime:    result.StartTime,
		EndTime:      result.EndTime,
		Status:       string(result.Status),
		CreatedAt:    result.CreatedAt,
	}, nil
}
