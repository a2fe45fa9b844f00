package fixtures

import (
	"fmt"
	"math"

	"github.com/Dosada05/league-system/models"
)

type SingleEliminationGenerator struct{}

func NewSingleEliminationGenerator() Generator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) Name() string {
	return "SingleElimination"
}

// Generate строит сетку на вылет. Размер сетки S - ближайшая степень
// двойки >= n, список дополняется пустыми слотами до S. Первый раунд
// спаривает позицию i с позицией S-1-i; матч с одним пустым слотом
// получает статус bye (команда проходит без игры), матч с двумя пустыми
// слотами не создаётся. Раунды со второго и дальше - заготовки со
// статусом pending_previous_round: участники заполняются отдельным
// шагом записи результатов, здесь они не известны.
func (g *SingleEliminationGenerator) Generate(teamIDs []int) ([]*models.Match, error) {
	n := len(teamIDs)
	if n < 2 {
		return nil, fmt.Errorf("%w: found %d", ErrInsufficientTeams, n)
	}

	numRounds := int(math.Ceil(math.Log2(float64(n))))
	size := 1 << uint(numRounds)

	slots := make([]*int, size)
	for i := range teamIDs {
		id := teamIDs[i]
		slots[i] = &id
	}

	matches := make([]*models.Match, 0, size-1)

	matchNumber := 0
	for i := 0; i < size/2; i++ {
		slotA := slots[i]
		slotB := slots[size-1-i]
		if slotA == nil && slotB == nil {
			// двойной bye, матча нет
			continue
		}

		matchNumber++
		match := &models.Match{
			Round:       1,
			MatchNumber: matchNumber,
			Status:      models.MatchStatusScheduled,
		}
		switch {
		case slotA != nil && slotB != nil:
			match.TeamAID = slotA
			match.TeamBID = slotB
		case slotA != nil:
			match.TeamAID = slotA
			match.Status = models.MatchStatusBye
		default:
			match.TeamAID = slotB
			match.Status = models.MatchStatusBye
		}
		matches = append(matches, match)
	}

	for round := 2; round <= numRounds; round++ {
		matchesInRound := size >> uint(round)
		for i := 1; i <= matchesInRound; i++ {
			matches = append(matches, &models.Match{
				Round:       round,
				MatchNumber: i,
				Status:      models.MatchStatusPendingPreviousRound,
			})
		}
	}

	return matches, nil
}
