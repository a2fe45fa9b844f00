package models

import "time"

// MatchStatus соответствует ENUM match_status в БД.
type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	// MatchStatusBye - матч не играется, команда в слоте A проходит дальше автоматически.
	MatchStatusBye MatchStatus = "bye"
	// MatchStatusPendingPreviousRound - заготовка для следующих раундов сетки,
	// участники станут известны после завершения матчей предыдущего раунда.
	MatchStatusPendingPreviousRound MatchStatus = "pending_previous_round"
	MatchStatusCompleted            MatchStatus = "completed"
)

type Match struct {
	ID            int         `json:"id" db:"id"`
	CompetitionID int         `json:"competition_id" db:"competition_id"`
	Round         int         `json:"round" db:"round"`
	MatchNumber   int         `json:"match_number" db:"match_number"`
	TeamAID       *int        `json:"team_a_id,omitempty" db:"team_a_id"`
	TeamBID       *int        `json:"team_b_id,omitempty" db:"team_b_id"`
	ScheduledAt   *time.Time  `json:"scheduled_at,omitempty" db:"scheduled_at"`
	VenueID       *int        `json:"venue_id,omitempty" db:"venue_id"`
	GroupID       *int        `json:"group_id,omitempty" db:"group_id"`
	Status        MatchStatus `json:"status" db:"status"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
}
