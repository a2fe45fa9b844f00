package models

import "time"

// CompetitionFormat определяет, каким генератором строится календарь.
type CompetitionFormat string

const (
	FormatRoundRobin        CompetitionFormat = "round_robin"
	FormatSingleElimination CompetitionFormat = "single_elimination"
)

type CompetitionStatus string

const (
	CompetitionStatusRegistration CompetitionStatus = "registration"
	CompetitionStatusActive       CompetitionStatus = "active"
	CompetitionStatusCompleted    CompetitionStatus = "completed"
	CompetitionStatusCanceled     CompetitionStatus = "canceled"
)

type Competition struct {
	ID        int               `json:"id" db:"id"`
	Name      string            `json:"name" db:"name"`
	Format    CompetitionFormat `json:"format" db:"format"`
	StartDate time.Time         `json:"start_date" db:"start_date"`
	EndDate   time.Time         `json:"end_date" db:"end_date"`
	Status    CompetitionStatus `json:"status" db:"status"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
}
