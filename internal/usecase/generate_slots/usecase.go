package generate_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TSZH-FacilityService/internal/domain"
	facilityRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/facility"
	slotRepo "github.com/m04kA/TSZH-FacilityService/internal/infra/storage/timeslot"
)

// UseCase use case генерации слотов расписания
type UseCase struct {
	slotRepo     SlotRepository
	facilityRepo FacilityRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	facilityRepo FacilityRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		facilityRepo: facilityRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute генерирует 2-часовые слоты для объекта на дату в заданном
// диапазоне. Повторный запуск идемпотентен: существующие окна
// пропускаются, создаются только недостающие.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: facility=%d, date=%s, range=%s-%s",
		req.FacilityID, req.Date.Format(domain.DateFormat), req.Start, req.End)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация границ диапазона (ничего не создаем при нарушении)
	if err := validateRange(req); err != nil {
		uc.logger.Warn("GenerateSlots: range validation failed: %v", err)
		return nil, err
	}

	// 3. Проверяем существование объекта
	if _, err := uc.facilityRepo.GetByID(ctx, req.FacilityID); err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			uc.logger.Warn("GenerateSlots: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("GenerateSlots: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	var result *Response

	// 4. Генерация в транзакции: существующие слоты читаются с блокировкой,
	// параллельный запуск на тот же объект/дату не создаст дубликаты
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		existing, err := uc.slotRepo.ListByFacilityAndDate(txCtx, req.FacilityID, req.Date)
		if err != nil {
			uc.logger.Error("GenerateSlots: failed to list existing slots: %v", err)
			return fmt.Errorf("%w: failed to list existing slots: %v", ErrInternal, err)
		}

		// Существующие окна ищем по паре (start, end)
		existingWindows := make(map[string]struct{}, len(existing))
		for _, slot := range existing {
			existingWindows[windowKey(slot.StartTime.String(), slot.EndTime.String())] = struct{}{}
		}

		created := 0
		skipped := 0

		for start := req.Start; start.IsBefore(req.End); {
			end, err := start.AddMinutes(domain.SlotDurationMinutes)
			if err != nil {
				return fmt.Errorf("%w: failed to advance slot window: %v", ErrInternal, err)
			}

			if _, ok := existingWindows[windowKey(start.String(), end.String())]; ok {
				skipped++
				start = end
				continue
			}

			slot := &domain.TimeSlot{
				FacilityID: req.FacilityID,
				Date:       req.Date,
				StartTime:  start,
				EndTime:    end,
				Status:     domain.SlotStatusAvailable,
			}

			if _, err := uc.slotRepo.Create(txCtx, slot); err != nil {
				// Конкурентная генерация успела раньше - окно уже есть
				if errors.Is(err, slotRepo.ErrSlotExists) {
					skipped++
					start = end
					continue
				}
				uc.logger.Error("GenerateSlots: failed to create slot %s-%s: %v", start, end, err)
				return fmt.Errorf("%w: failed to create slot: %v", ErrInternal, err)
			}

			created++
			start = end
		}

		// Итоговый список читаем заново: существующие + созданные,
		// упорядоченные по времени начала
		slots, err := uc.slotRepo.ListByFacilityAndDate(txCtx, req.FacilityID, req.Date)
		if err != nil {
			uc.logger.Error("GenerateSlots: failed to list resulting slots: %v", err)
			return fmt.Errorf("%w: failed to list resulting slots: %v", ErrInternal, err)
		}

		result = &Response{
			FacilityID:   req.FacilityID,
			Date:         req.Date,
			CreatedCount: created,
			SkippedCount: skipped,
			Slots:        make([]SlotInfo, 0, len(slots)),
		}
		for _, slot := range slots {
			result.Slots = append(result.Slots, SlotInfo{
				ID:        slot.ID,
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
				Status:    string(slot.Status),
				Color:     slot.Color,
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GenerateSlots: facility=%d, date=%s: created=%d, skipped=%d",
		req.FacilityID, req.Date.Format(domain.DateFormat), result.CreatedCount, result.SkippedCount)
	return result, nil
}

func windowKey(start, end string) string {
	return start + "-" + end
}
