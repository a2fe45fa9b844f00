package fixtures

import (
	"errors"
	"fmt"

	"github.com/Dosada05/league-system/models"
)

// Ошибки чистой генерации. Любая из них прерывает построение календаря
// целиком - частичный список матчей наружу не отдаётся.
var (
	ErrInsufficientTeams     = errors.New("not enough teams to generate a fixture (minimum 2 required)")
	ErrInvalidGroupConfig    = errors.New("at least one group is required for a group draw")
	ErrNoVenuesAvailable     = errors.New("no venues available for allocation")
	ErrInvalidScheduleConfig = errors.New("invalid schedule configuration")
)

// Generator строит список матчей по упорядоченному списку команд.
// Реализации чистые: не трогают входной срез и не имеют побочных эффектов.
type Generator interface {
	Generate(teamIDs []int) ([]*models.Match, error)

	Name() string
}

// ForFormat возвращает генератор, соответствующий формату соревнования.
func ForFormat(format models.CompetitionFormat) (Generator, error) {
	switch format {
	case models.FormatRoundRobin:
		return NewRoundRobinGenerator(), nil
	case models.FormatSingleElimination:
		return NewSingleEliminationGenerator(), nil
	default:
		return nil, fmt.Errorf("unsupported competition format %q", format)
	}
}
