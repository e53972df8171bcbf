package generate_slots

import (
	"time"

	"github.com/m04kA/TSZH-FacilityService/pkg/types"
)

// Request модель запроса на генерацию слотов
type Request struct {
	FacilityID int64            // ID объекта
	Date       time.Time        // Дата (без времени)
	Start      types.TimeString // Начало диапазона генерации (например, "07:00")
	End        types.TimeString // Конец диапазона генерации (например, "21:00")
}

// SlotInfo слот в ответе генератора
type SlotInfo struct {
	ID        int64            // ID слота
	StartTime types.TimeString // Время начала
	EndTime   types.TimeString // Время конца
	Status    string           // Статус слота
	Color     string           // Цвет для UI
}

// Response модель ответа генератора слотов
type Response struct {
	FacilityID   int64      // ID объекта
	Date         time.Time  // Дата генерации
	CreatedCount int        // Сколько слотов создано
	SkippedCount int        // Сколько слотов уже существовало
	Slots        []SlotInfo // Итоговый список слотов, по времени начала
}
