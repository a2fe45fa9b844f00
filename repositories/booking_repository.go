package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/league-system/models"
)

var ErrBookingNotFound = errors.New("booking not found")

type BookingRepository interface {
	Create(ctx context.Context, exec SQLExecutor, booking *models.Booking) error
	// CountActiveForUser считает будущие неотменённые бронирования
	// пользователя на площадке на момент now.
	CountActiveForUser(ctx context.Context, exec SQLExecutor, venueID, userID int, now time.Time) (int, error)
	// ExistsOverlapping проверяет пересечение полуинтервалов
	// [start_time, end_time) с неотменёнными бронированиями площадки.
	ExistsOverlapping(ctx context.Context, exec SQLExecutor, venueID int, start, end time.Time) (bool, error)
	ListByVenue(ctx context.Context, venueID int, from, to time.Time) ([]*models.Booking, error)
	ListByUser(ctx context.Context, userID int) ([]*models.Booking, error)
}

type postgresBookingRepository struct {
	db *sql.DB
}

func NewPostgresBookingRepository(db *sql.DB) BookingRepository {
	return &postgresBookingRepository{db: db}
}

func (r *postgresBookingRepository) Create(ctx context.Context, exec SQLExecutor, booking *models.Booking) error {
	query := `
		INSERT INTO bookings
			(reference, venue_id, user_id, start_time, end_time, status, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := exec.QueryRowContext(ctx, query,
		booking.Reference,
		booking.VenueID,
		booking.UserID,
		booking.StartTime,
		booking.EndTime,
		booking.Status,
		booking.TotalPrice,
	).Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert booking for venue %d: %w", booking.VenueID, err)
	}
	return nil
}

func (r *postgresBookingRepository) CountActiveForUser(ctx context.Context, exec SQLExecutor, venueID, userID int, now time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE venue_id = $1
		  AND user_id = $2
		  AND status IN ('pending', 'confirmed')
		  AND start_time > $3`

	var count int
	if err := exec.QueryRowContext(ctx, query, venueID, userID, now).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active bookings for user %d on venue %d: %w", userID, venueID, err)
	}
	return count, nil
}

func (r *postgresBookingRepository) ExistsOverlapping(ctx context.Context, exec SQLExecutor, venueID int, start, end time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM bookings
			WHERE venue_id = $1
			  AND status <> 'canceled'
			  AND start_time < $3
			  AND end_time > $2
		)`

	var exists bool
	if err := exec.QueryRowContext(ctx, query, venueID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check booking overlap on venue %d: %w", venueID, err)
	}
	return exists, nil
}

func (r *postgresBookingRepository) ListByVenue(ctx context.Context, venueID int, from, to time.Time) ([]*models.Booking, error) {
	query := `
		SELECT id, reference, venue_id, user_id, start_time, end_time, status, total_price, created_at
		FROM bookings
		WHERE venue_id = $1
		  AND start_time < $3
		  AND end_time > $2
		ORDER BY start_time ASC`

	rows, err := r.db.QueryContext(ctx, query, venueID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings for venue %d: %w", venueID, err)
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *postgresBookingRepository) ListByUser(ctx context.Context, userID int) ([]*models.Booking, error) {
	query := `
		SELECT id, reference, venue_id, user_id, start_time, end_time, status, total_price, created_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY start_time DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings for user %d: %w", userID, err)
	}
	defer rows.Close()
	return scanBookings(rows)
}

func scanBookings(rows *sql.Rows) ([]*models.Booking, error) {
	bookings := make([]*models.Booking, 0)
	for rows.Next() {
		var booking models.Booking
		if err := rows.Scan(
			&booking.ID,
			&booking.Reference,
			&booking.VenueID,
			&booking.UserID,
			&booking.StartTime,
			&booking.EndTime,
			&booking.Status,
			&booking.TotalPrice,
			&booking.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during booking rows iteration: %w", err)
	}
	return bookings, nil
}
