package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/league-system/models"
)

var ErrRegistrationNotFound = errors.New("registration not found")

type RegistrationRepository interface {
	// ListByCompetition возвращает заявки в порядке подачи; withTeams
	// подгружает команды для отображения результатов жеребьёвки.
	ListByCompetition(ctx context.Context, competitionID int, withTeams bool) ([]*models.Registration, error)
	UpdateGroup(ctx context.Context, exec SQLExecutor, registrationID int, groupID *int) error
}

type postgresRegistrationRepository struct {
	db *sql.DB
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

func (r *postgresRegistrationRepository) ListByCompetition(ctx context.Context, competitionID int, withTeams bool) ([]*models.Registration, error) {
	query := `
		SELECT r.id, r.competition_id, r.team_id, r.group_id, r.created_at
		FROM registrations r
		WHERE r.competition_id = $1
		ORDER BY r.id ASC`
	if withTeams {
		query = `
		SELECT r.id, r.competition_id, r.team_id, r.group_id, r.created_at,
		       t.id, t.name, t.created_at
		FROM registrations r
		JOIN teams t ON t.id = r.team_id
		WHERE r.competition_id = $1
		ORDER BY r.id ASC`
	}

	rows, err := r.db.QueryContext(ctx, query, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations for competition %d: %w", competitionID, err)
	}
	defer rows.Close()

	registrations := make([]*models.Registration, 0)
	for rows.Next() {
		var registration models.Registration
		if withTeams {
			var team models.Team
			if scanErr := rows.Scan(
				&registration.ID,
				&registration.CompetitionID,
				&registration.TeamID,
				&registration.GroupID,
				&registration.CreatedAt,
				&team.ID,
				&team.Name,
				&team.CreatedAt,
			); scanErr != nil {
				return nil, fmt.Errorf("failed to scan registration row: %w", scanErr)
			}
			registration.Team = &team
		} else {
			if scanErr := rows.Scan(
				&registration.ID,
				&registration.CompetitionID,
				&registration.TeamID,
				&registration.GroupID,
				&registration.CreatedAt,
			); scanErr != nil {
				return nil, fmt.Errorf("failed to scan registration row: %w", scanErr)
			}
		}
		registrations = append(registrations, &registration)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during registration rows iteration: %w", err)
	}
	return registrations, nil
}

func (r *postgresRegistrationRepository) UpdateGroup(ctx context.Context, exec SQLExecutor, registrationID int, groupID *int) error {
	result, err := exec.ExecContext(ctx, `UPDATE registrations SET group_id = $1 WHERE id = $2`, groupID, registrationID)
	if err != nil {
		return fmt.Errorf("failed to update group for registration %d: %w", registrationID, err)
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}
