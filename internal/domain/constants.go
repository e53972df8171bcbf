package domain

// Операционное окно и параметры слотов
const (
	// OperatingDayStart начало операционного дня (раньше слоты не создаются)
	OperatingDayStart = "07:00"

	// OperatingDayEnd конец операционного дня (позже слоты не создаются)
	OperatingDayEnd = "21:00"

	// SlotDurationMinutes фиксированная длительность слота (2 часа)
	SlotDurationMinutes = 120
)

// Политика отмены и прочие бизнес-константы
const (
	// CancellationNoticeHours минимальное время до начала слота,
	// в течение которого житель ещё может отменить бронирование сам
	CancellationNoticeHours = 24

	// ActivationTokenTTLHours срок жизни токена активации аккаунта жителя
	ActivationTokenTTLHours = 24

	// TwoFactorCodeTTLMinutes срок жизни 2FA-кода администратора
	TwoFactorCodeTTLMinutes = 5

	MaxCancellationReasonLength = 500
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
