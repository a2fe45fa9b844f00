package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/league-system/models"
)

var ErrVenueNotFound = errors.New("venue not found")

type VenueRepository interface {
	Create(ctx context.Context, venue *models.Venue) error
	GetByID(ctx context.Context, id int) (*models.Venue, error)
	List(ctx context.Context) ([]*models.Venue, error)
	UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error
}

type postgresVenueRepository struct {
	db *sql.DB
}

func NewPostgresVenueRepository(db *sql.DB) VenueRepository {
	return &postgresVenueRepository{db: db}
}

func (r *postgresVenueRepository) Create(ctx context.Context, venue *models.Venue) error {
	query := `
		INSERT INTO venues
			(name, address, priority, min_advance_hours, max_future_days,
			 max_active_bookings_per_user, price_per_hour)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		venue.Name,
		venue.Address,
		venue.Priority,
		venue.MinAdvanceHours,
		venue.MaxFutureDays,
		venue.MaxActiveBookingsPerUser,
		venue.PricePerHour,
	).Scan(&venue.ID, &venue.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert venue %q: %w", venue.Name, err)
	}
	return nil
}

func (r *postgresVenueRepository) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	query := `
		SELECT id, name, address, priority, min_advance_hours, max_future_days,
		       max_active_bookings_per_user, price_per_hour, photo_key, created_at
		FROM venues
		WHERE id = $1`

	venue := &models.Venue{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&venue.ID,
		&venue.Name,
		&venue.Address,
		&venue.Priority,
		&venue.MinAdvanceHours,
		&venue.MaxFutureDays,
		&venue.MaxActiveBookingsPerUser,
		&venue.PricePerHour,
		&venue.PhotoKey,
		&venue.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to scan venue by id %d: %w", id, err)
	}
	return venue, nil
}

func (r *postgresVenueRepository) List(ctx context.Context) ([]*models.Venue, error) {
	query := `
		SELECT id, name, address, priority, min_advance_hours, max_future_days,
		       max_active_bookings_per_user, price_per_hour, photo_key, created_at
		FROM venues
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query venues: %w", err)
	}
	defer rows.Close()

	venues := make([]*models.Venue, 0)
	for rows.Next() {
		var venue models.Venue
		if scanErr := rows.Scan(
			&venue.ID,
			&venue.Name,
			&venue.Address,
			&venue.Priority,
			&venue.MinAdvanceHours,
			&venue.MaxFutureDays,
			&venue.MaxActiveBookingsPerUser,
			&venue.PricePerHour,
			&venue.PhotoKey,
			&venue.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan venue row: %w", scanErr)
		}
		venues = append(venues, &venue)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during venue rows iteration: %w", err)
	}
	return venues, nil
}

func (r *postgresVenueRepository) UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE venues SET photo_key = $1 WHERE id = $2`, photoKey, id)
	if err != nil {
		return fmt.Errorf("failed to update photo key for venue %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrVenueNotFound)
}
