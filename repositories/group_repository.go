package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/league-system/models"
)

var ErrGroupNotFound = errors.New("group not found")

type GroupRepository interface {
	ListByCompetition(ctx context.Context, competitionID int) ([]*models.Group, error)
	Create(ctx context.Context, group *models.Group) error
}

type postgresGroupRepository struct {
	db *sql.DB
}

func NewPostgresGroupRepository(db *sql.DB) GroupRepository {
	return &postgresGroupRepository{db: db}
}

func (r *postgresGroupRepository) ListByCompetition(ctx context.Context, competitionID int) ([]*models.Group, error) {
	query := `
		SELECT id, competition_id, name
		FROM groups
		WHERE competition_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups for competition %d: %w", competitionID, err)
	}
	defer rows.Close()

	groups := make([]*models.Group, 0)
	for rows.Next() {
		var group models.Group
		if scanErr := rows.Scan(&group.ID, &group.CompetitionID, &group.Name); scanErr != nil {
			return nil, fmt.Errorf("failed to scan group row: %w", scanErr)
		}
		groups = append(groups, &group)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during group rows iteration: %w", err)
	}
	return groups, nil
}

func (r *postgresGroupRepository) Create(ctx context.Context, group *models.Group) error {
	query := `INSERT INTO groups (competition_id, name) VALUES ($1, $2) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, group.CompetitionID, group.Name).Scan(&group.ID); err != nil {
		return fmt.Errorf("failed to insert group %q: %w", group.Name, err)
	}
	return nil
}
