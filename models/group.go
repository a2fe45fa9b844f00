package models

// Group - группа внутри соревнования с групповым этапом.
type Group struct {
	ID            int    `json:"id" db:"id"`
	CompetitionID int    `json:"competition_id" db:"competition_id"`
	Name          string `json:"name" db:"name"`
}
