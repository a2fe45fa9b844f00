package fixtures

import (
	"fmt"

	"github.com/Dosada05/league-system/models"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() Generator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) Name() string {
	return "RoundRobin"
}

// Generate строит однокруговой календарь методом Бергера: первая позиция
// зафиксирована, остальные сдвигаются по кругу после каждого тура.
// Для нечётного числа команд добавляется пустой слот; пары с ним
// пропускаются (у команды в этот тур выходной).
// На n команд получается ровно n*(n-1)/2 матчей, каждая пара встречается
// один раз.
func (g *RoundRobinGenerator) Generate(teamIDs []int) ([]*models.Match, error) {
	n := len(teamIDs)
	if n < 2 {
		return nil, fmt.Errorf("%w: found %d", ErrInsufficientTeams, n)
	}

	order := make([]*int, 0, n+1)
	for i := range teamIDs {
		id := teamIDs[i]
		order = append(order, &id)
	}
	if n%2 != 0 {
		order = append(order, nil) // слот выходного
	}

	size := len(order)
	rounds := size - 1

	matches := make([]*models.Match, 0, n*(n-1)/2)
	for round := 1; round <= rounds; round++ {
		matchNumber := 0
		for i := 0; i < size/2; i++ {
			teamA := order[i]
			teamB := order[size-1-i]
			if teamA == nil || teamB == nil {
				continue
			}
			matchNumber++
			matches = append(matches, &models.Match{
				Round:       round,
				MatchNumber: matchNumber,
				TeamAID:     teamA,
				TeamBID:     teamB,
				Status:      models.MatchStatusScheduled,
			})
		}
		order = rotated(order)
	}

	return matches, nil
}

// rotated возвращает новый порядок: первая позиция на месте, последняя
// встаёт второй, остальные сдвигаются. Вход не изменяется, чтобы
// генератор оставался ссылочно прозрачным.
func rotated(order []*int) []*int {
	size := len(order)
	next := make([]*int, 0, size)
	next = append(next, order[0], order[size-1])
	next = append(next, order[1:size-1]...)
	return next
}
