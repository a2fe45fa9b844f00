package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/league-system/models"
	"github.com/Dosada05/league-system/repositories"
	"github.com/Dosada05/league-system/storage"
)

// --- Общие хелперы ---

// runInTx выполняет fn в транзакции с обычной изоляцией. Для
// бронирований используется отдельный serializable-вариант.
func runInTx(ctx context.Context, db *sql.DB, fn func(exec repositories.SQLExecutor) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func competitionRoom(competitionID int) string {
	return fmt.Sprintf("competition_%d", competitionID)
}

func venueRoom(venueID int) string {
	return fmt.Sprintf("venue_%d", venueID)
}

// populateVenuePhotoURL заполняет публичный URL фото по ключу в хранилище.
func populateVenuePhotoURL(venue *models.Venue, uploader storage.FileUploader) {
	if venue == nil || venue.PhotoKey == nil || *venue.PhotoKey == "" || uploader == nil {
		return
	}
	url := uploader.GetPublicURL(*venue.PhotoKey)
	if url != "" {
		venue.PhotoURL = &url
	}
}

func populateVenuePhotoURLs(venues []*models.Venue, uploader storage.FileUploader) {
	for _, venue := range venues {
		populateVenuePhotoURL(venue, uploader)
	}
}
