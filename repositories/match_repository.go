package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Dosada05/league-system/models"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error
	DeleteByCompetition(ctx context.Context, exec SQLExecutor, competitionID int) (int64, error)
	ListByCompetition(ctx context.Context, competitionID int, roundFilter *int, statusFilter *models.MatchStatus) ([]*models.Match, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error {
	query := `
		INSERT INTO matches
			(competition_id, round, match_number, team_a_id, team_b_id,
			 scheduled_at, venue_id, group_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	for _, match := range matches {
		err := exec.QueryRowContext(ctx, query,
			match.CompetitionID,
			match.Round,
			match.MatchNumber,
			match.TeamAID,
			match.TeamBID,
			match.ScheduledAt,
			match.VenueID,
			match.GroupID,
			match.Status,
		).Scan(&match.ID, &match.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert match (round %d, number %d): %w", match.Round, match.MatchNumber, err)
		}
	}
	return nil
}

// DeleteByCompetition удаляет весь текущий календарь соревнования.
// Вызывается только внутри транзакции пересборки: удаление и вставка
// нового календаря фиксируются вместе.
func (r *postgresMatchRepository) DeleteByCompetition(ctx context.Context, exec SQLExecutor, competitionID int) (int64, error) {
	result, err := exec.ExecContext(ctx, `DELETE FROM matches WHERE competition_id = $1`, competitionID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete matches for competition %d: %w", competitionID, err)
	}
	return result.RowsAffected()
}

func (r *postgresMatchRepository) ListByCompetition(ctx context.Context, competitionID int, roundFilter *int, statusFilter *models.MatchStatus) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, competition_id, round, match_number, team_a_id, team_b_id,
		       scheduled_at, venue_id, group_id, status, created_at
		FROM matches
		WHERE competition_id = $1`)

	args := []interface{}{competitionID}
	placeholderIndex := 2

	if roundFilter != nil {
		queryBuilder.WriteString(" AND round = $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, *roundFilter)
		placeholderIndex++
	}
	if statusFilter != nil {
		queryBuilder.WriteString(" AND status = $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, *statusFilter)
	}

	queryBuilder.WriteString(" ORDER BY round ASC, match_number ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for competition %d: %w", competitionID, err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var match models.Match
		if scanErr := rows.Scan(
			&match.ID,
			&match.CompetitionID,
			&match.Round,
			&match.MatchNumber,
			&match.TeamAID,
			&match.TeamBID,
			&match.ScheduledAt,
			&match.VenueID,
			&match.GroupID,
			&match.Status,
			&match.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, &match)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}
