package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed        = errors.New("validation failed")
	ErrVenueNameRequired       = errors.New("venue name is required")
	ErrVenueInvalidPriority    = errors.New("venue priority cannot be negative")
	ErrVenueInvalidPrice       = errors.New("venue price per hour cannot be negative")
	ErrNoRegistrations         = errors.New("competition has no registrations")
	ErrNothingToDraw           = errors.New("all registrations are already assigned to groups")
	ErrPhotoUploadUnavailable  = errors.New("photo storage is not configured")
	ErrUnsupportedPhotoContent = errors.New("unsupported photo content type")

	// Ошибки политики бронирования. Каждая прерывает только текущую
	// попытку, никакой записи при отказе не происходит.
	ErrBookingInvalidTimeRange = errors.New("booking end time must be after start time")
	ErrBookingTooSoon          = errors.New("booking does not meet the venue's minimum advance notice")
	ErrBookingTooFar           = errors.New("booking start exceeds the venue's future-date limit")
	ErrBookingLimitReached     = errors.New("user has reached the venue's active booking limit")
	ErrVenueUnavailable        = errors.New("venue is already booked for the requested time")

	// Ошибки, специфичные для сущностей
	ErrCompetitionNotFound = errors.New("competition not found")
	ErrVenueNotFound       = errors.New("venue not found")
)
