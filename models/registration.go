package models

import "time"

// Registration - заявка команды на участие в соревновании.
// GroupID == nil означает, что жеребьёвка по группам ещё не проводилась.
type Registration struct {
	ID            int       `json:"id" db:"id"`
	CompetitionID int       `json:"competition_id" db:"competition_id"`
	TeamID        int       `json:"team_id" db:"team_id"`
	GroupID       *int      `json:"group_id,omitempty" db:"group_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`

	// Опционально подгружаемая команда (для отображения).
	Team *Team `json:"team,omitempty" db:"-"`
}
