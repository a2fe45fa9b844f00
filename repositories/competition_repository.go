package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/league-system/models"
)

var ErrCompetitionNotFound = errors.New("competition not found")

type CompetitionRepository interface {
	GetByID(ctx context.Context, id int) (*models.Competition, error)
}

type postgresCompetitionRepository struct {
	db *sql.DB
}

func NewPostgresCompetitionRepository(db *sql.DB) CompetitionRepository {
	return &postgresCompetitionRepository{db: db}
}

func (r *postgresCompetitionRepository) GetByID(ctx context.Context, id int) (*models.Competition, error) {
	query := `
		SELECT id, name, format, start_date, end_date, status, created_at
		FROM competitions
		WHERE id = $1`

	competition := &models.Competition{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&competition.ID,
		&competition.Name,
		&competition.Format,
		&competition.StartDate,
		&competition.EndDate,
		&competition.Status,
		&competition.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("failed to scan competition by id %d: %w", id, err)
	}
	return competition, nil
}
