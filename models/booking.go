package models

import "time"

// BookingStatus соответствует ENUM booking_status в БД.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCanceled  BookingStatus = "canceled"
)

// Booking - бронирование площадки пользователем. Интервал хранится как
// полуинтервал [StartTime, EndTime): бронирования, соприкасающиеся
// границами, не пересекаются.
type Booking struct {
	ID         int           `json:"id" db:"id"`
	Reference  string        `json:"reference" db:"reference"`
	VenueID    int           `json:"venue_id" db:"venue_id"`
	UserID     int           `json:"user_id" db:"user_id"`
	StartTime  time.Time     `json:"start_time" db:"start_time"`
	EndTime    time.Time     `json:"end_time" db:"end_time"`
	Status     BookingStatus `json:"status" db:"status"`
	TotalPrice float64       `json:"total_price" db:"total_price"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
}

// Active сообщает, учитывается ли бронирование в лимите активных:
// не отменено и ещё не началось.
func (b *Booking) Active(now time.Time) bool {
	return b.Status != BookingStatusCanceled && b.StartTime.After(now)
}
