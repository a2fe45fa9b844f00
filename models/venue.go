package models

import "time"

// Venue - площадка для проведения матчей и частных бронирований.
// Priority участвует во взвешенном распределении матчей (вес max(1, priority)),
// остальные лимиты относятся к политике бронирования.
type Venue struct {
	ID              int     `json:"id" db:"id"`
	Name            string  `json:"name" db:"name"`
	Address         *string `json:"address,omitempty" db:"address"`
	Priority        int     `json:"priority" db:"priority"`
	MinAdvanceHours int     `json:"min_advance_hours" db:"min_advance_hours"`
	MaxFutureDays   int     `json:"max_future_days" db:"max_future_days"`
	// MaxActiveBookingsPerUser <= 0 означает отсутствие лимита.
	MaxActiveBookingsPerUser int       `json:"max_active_bookings_per_user" db:"max_active_bookings_per_user"`
	PricePerHour             float64   `json:"price_per_hour" db:"price_per_hour"`
	PhotoKey                 *string   `json:"-" db:"photo_key"`
	PhotoURL                 *string   `json:"photo_url,omitempty" db:"-"`
	CreatedAt                time.Time `json:"created_at" db:"created_at"`
}
