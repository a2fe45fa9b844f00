package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Dosada05/league-system/models"
	"github.com/Dosada05/league-system/repositories"
	"github.com/Dosada05/league-system/storage"
	"github.com/google/uuid"
)

type CreateVenueInput struct {
	Name                     string  `json:"name"`
	Address                  *string `json:"address,omitempty"`
	Priority                 int     `json:"priority"`
	MinAdvanceHours          int     `json:"min_advance_hours"`
	MaxFutureDays            int     `json:"max_future_days"`
	MaxActiveBookingsPerUser int     `json:"max_active_bookings_per_user"`
	PricePerHour             float64 `json:"price_per_hour"`
}

type VenueService interface {
	Create(ctx context.Context, input CreateVenueInput) (*models.Venue, error)
	GetByID(ctx context.Context, id int) (*models.Venue, error)
	List(ctx context.Context) ([]*models.Venue, error)
	UploadPhoto(ctx context.Context, venueID int, contentType string, photo io.Reader) (*models.Venue, error)
}

type venueService struct {
	venueRepo repositories.VenueRepository
	uploader  storage.FileUploader
}

// NewVenueService принимает uploader == nil, если объектное хранилище не
// настроено: тогда загрузка фото отключена, остальное работает.
func NewVenueService(venueRepo repositories.VenueRepository, uploader storage.FileUploader) VenueService {
	return &venueService{venueRepo: venueRepo, uploader: uploader}
}

func (s *venueService) Create(ctx context.Context, input CreateVenueInput) (*models.Venue, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrVenueNameRequired
	}
	if input.Priority < 0 {
		return nil, ErrVenueInvalidPriority
	}
	if input.PricePerHour < 0 {
		return nil, ErrVenueInvalidPrice
	}
	if input.MinAdvanceHours < 0 || input.MaxFutureDays < 0 || input.MaxActiveBookingsPerUser < 0 {
		return nil, fmt.Errorf("%w: booking limits cannot be negative", ErrValidationFailed)
	}

	venue := &models.Venue{
		Name:                     strings.TrimSpace(input.Name),
		Address:                  input.Address,
		Priority:                 input.Priority,
		MinAdvanceHours:          input.MinAdvanceHours,
		MaxFutureDays:            input.MaxFutureDays,
		MaxActiveBookingsPerUser: input.MaxActiveBookingsPerUser,
		PricePerHour:             input.PricePerHour,
	}
	if err := s.venueRepo.Create(ctx, venue); err != nil {
		return nil, err
	}
	return venue, nil
}

func (s *venueService) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	populateVenuePhotoURL(venue, s.uploader)
	return venue, nil
}

func (s *venueService) List(ctx context.Context) ([]*models.Venue, error) {
	venues, err := s.venueRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	populateVenuePhotoURLs(venues, s.uploader)
	return venues, nil
}

func (s *venueService) UploadPhoto(ctx context.Context, venueID int, contentType string, photo io.Reader) (*models.Venue, error) {
	if s.uploader == nil {
		return nil, ErrPhotoUploadUnavailable
	}
	ext := ""
	switch contentType {
	case "image/jpeg":
		ext = "jpg"
	case "image/png":
		ext = "png"
	case "image/webp":
		ext = "webp"
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPhotoContent, contentType)
	}

	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, repositories.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}

	key := fmt.Sprintf("venues/%d/photo-%s.%s", venueID, uuid.NewString(), ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, photo); err != nil {
		return nil, fmt.Errorf("failed to upload venue photo: %w", err)
	}

	oldKey := venue.PhotoKey
	if err := s.venueRepo.UpdatePhotoKey(ctx, venueID, &key); err != nil {
		// запись не обновилась - подчищаем только что загруженный объект
		_ = s.uploader.Delete(ctx, key)
		return nil, err
	}
	if oldKey != nil && *oldKey != "" {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	venue.PhotoKey = &key
	populateVenuePhotoURL(venue, s.uploader)
	return venue, nil
}
