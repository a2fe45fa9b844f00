package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/league-system/fixtures"
	"github.com/Dosada05/league-system/models"
	"github.com/Dosada05/league-system/repositories"
	"github.com/google/uuid"
)

// Сколько раз повторять serializable-транзакцию бронирования при
// конфликте сериализации, прежде чем вернуть ошибку занятости.
const bookingRetryAttempts = 3

type CreateBookingInput struct {
	VenueID   int       `json:"venue_id"`
	UserID    int       `json:"user_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type BookingService interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error)
	ListVenueBookings(ctx context.Context, venueID int, from, to time.Time) ([]*models.Booking, error)
	ListUserBookings(ctx context.Context, userID int) ([]*models.Booking, error)
}

type bookingService struct {
	db          *sql.DB
	venueRepo   repositories.VenueRepository
	bookingRepo repositories.BookingRepository
	hub         *fixtures.Hub

	// now, transact и runTx подменяются в тестах.
	now      func() time.Time
	transact func(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error
	runTx    func(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error
}

func NewBookingService(
	db *sql.DB,
	venueRepo repositories.VenueRepository,
	bookingRepo repositories.BookingRepository,
	hub *fixtures.Hub,
) BookingService {
	s := &bookingService{
		db:          db,
		venueRepo:   venueRepo,
		bookingRepo: bookingRepo,
		hub:         hub,
		now:         time.Now,
	}
	s.transact = s.transactSerializable
	s.runTx = s.runSerializableTx
	return s
}

// CreateBooking проверяет запрос в фиксированном порядке и при успехе
// создаёт подтверждённое бронирование. Проверка занятости и вставка
// выполняются в одной serializable-транзакции: параллельный запрос на
// пересекающееся окно той же площадки либо увидит вставку, либо получит
// ошибку сериализации и будет повторён уже поверх неё. Ограничение БД на
// пересечение интервалов остаётся второй линией защиты.
func (s *bookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	if !input.EndTime.After(input.StartTime) {
		return nil, ErrBookingInvalidTimeRange
	}

	venue, err := s.venueRepo.GetByID(ctx, input.VenueID)
	if err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to load venue %d: %w", input.VenueID, err)
	}

	now := s.now()
	hoursUntilStart := input.StartTime.Sub(now).Hours()
	if hoursUntilStart < float64(venue.MinAdvanceHours) {
		return nil, fmt.Errorf("%w: at least %d hours of notice required", ErrBookingTooSoon, venue.MinAdvanceHours)
	}
	if hoursUntilStart/24 > float64(venue.MaxFutureDays) {
		return nil, fmt.Errorf("%w: bookings are accepted at most %d days ahead", ErrBookingTooFar, venue.MaxFutureDays)
	}

	booking := &models.Booking{
		Reference:  uuid.NewString(),
		VenueID:    venue.ID,
		UserID:     input.UserID,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		Status:     models.BookingStatusConfirmed,
		TotalPrice: bookingPrice(venue, input.StartTime, input.EndTime),
	}

	err = s.transact(ctx, func(exec repositories.SQLExecutor) error {
		if venue.MaxActiveBookingsPerUser > 0 {
			active, countErr := s.bookingRepo.CountActiveForUser(ctx, exec, venue.ID, input.UserID, now)
			if countErr != nil {
				return countErr
			}
			if active >= venue.MaxActiveBookingsPerUser {
				return fmt.Errorf("%w: limit is %d active bookings", ErrBookingLimitReached, venue.MaxActiveBookingsPerUser)
			}
		}

		taken, overlapErr := s.bookingRepo.ExistsOverlapping(ctx, exec, venue.ID, input.StartTime, input.EndTime)
		if overlapErr != nil {
			return overlapErr
		}
		if taken {
			return ErrVenueUnavailable
		}

		return s.bookingRepo.Create(ctx, exec, booking)
	})
	if err != nil {
		if repositories.IsExclusionViolation(err) {
			return nil, ErrVenueUnavailable
		}
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(venueRoom(venue.ID), fixtures.HubMessage{
			Type:    fixtures.EventBookingConfirmed,
			Payload: booking,
		})
	}
	return booking, nil
}

func (s *bookingService) ListVenueBookings(ctx context.Context, venueID int, from, to time.Time) ([]*models.Booking, error) {
	if _, err := s.venueRepo.GetByID(ctx, venueID); err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	bookings, err := s.bookingRepo.ListByVenue(ctx, venueID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for venue %d: %w", venueID, err)
	}
	return bookings, nil
}

func (s *bookingService) ListUserBookings(ctx context.Context, userID int) ([]*models.Booking, error) {
	bookings, err := s.bookingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for user %d: %w", userID, err)
	}
	return bookings, nil
}

// bookingPrice - цена за час, умноженная на длительность в часах;
// длительность может быть дробной.
func bookingPrice(venue *models.Venue, start, end time.Time) float64 {
	return venue.PricePerHour * end.Sub(start).Hours()
}

func (s *bookingService) transactSerializable(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	var err error
	for attempt := 0; attempt < bookingRetryAttempts; attempt++ {
		err = s.runTx(ctx, fn)
		if err == nil || !repositories.IsSerializationFailure(err) {
			return err
		}
	}
	return err
}

func (s *bookingService) runSerializableTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to begin booking transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking transaction: %w", err)
	}
	return nil
}
