package confirm_booking

import (
	"time"

	"github.com/m04kA/TSZH-FacilityService/pkg/types"
)

// Request модель запроса на бронирование слота
type Request struct {
	ResidentID int64 // ID жителя
	TimeSlotID int64 // ID слота
	FacilityID int64 // ID объекта (опциональная перекрестная проверка, 0 - не задан)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID           int64            // ID бронирования
	ResidentID   int64            // ID жителя
	FacilityID   int64            // ID объекта
	TimeSlotID   int64            // ID слота
	FacilityName string           // Название объекта (денормализовано)
	BookingDate  time.Time        // Дата бронирования
	StartTime    types.TimeString // Время начала
	EndTime      types.TimeString // Время конца
	Status       string           // Статус бронирования

	CreatedAt time.Time // Время создания
}
