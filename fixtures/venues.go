package fixtures

import (
	"math/rand"
	"sort"
	"time"

	"github.com/Dosada05/league-system/models"
)

// AllocationResult - итог распределения площадок. Unassigned содержит
// матчи с датой, для которых все площадки оказались заняты в их окне;
// как и нехватка календаря, это информация для вызывающей стороны, а не
// отказ.
type AllocationResult struct {
	Matches    []*models.Match
	Unassigned []*models.Match
}

func (r *AllocationResult) Shortfall() bool {
	return len(r.Unassigned) > 0
}

// VenueAllocator назначает матчам площадки с учётом взаимного исключения:
// одна площадка не достаётся двум матчам с пересекающимися окнами
// [start, start+игра+пауза).
type VenueAllocator struct {
	rnd *rand.Rand
}

func NewVenueAllocator(rnd *rand.Rand) *VenueAllocator {
	return &VenueAllocator{rnd: rnd}
}

type timeWindow struct {
	start time.Time
	end   time.Time
}

func (w timeWindow) overlaps(other timeWindow) bool {
	return w.start.Before(other.end) && other.start.Before(w.end)
}

// Allocate обходит матчи по порядку и выбирает площадку согласно
// cfg.VenueMode:
//
//   - random: вес площадки max(1, priority), выбор по таблице префиксных
//     сумм и одному броску на матч (расширенный массив по единице на вес
//     не строится). При конфликте кандидаты перебираются по убыванию веса.
//   - balanced: площадка с наименьшим числом назначений, при равенстве -
//     меньший id. При конфликте - следующая по загрузке.
//
// Матчи без даты (не попавшие в окно календаря) пропускаются и остаются
// без площадки. Пустой пул площадок - фатальная ошибка.
func (a *VenueAllocator) Allocate(matches []*models.Match, venues []*models.Venue, cfg ScheduleConfig) (*AllocationResult, error) {
	if len(venues) == 0 {
		return nil, ErrNoVenuesAvailable
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mode := cfg.VenueMode
	if mode == "" {
		mode = VenueModeRandom
	}

	// Таблица префиксных сумм для взвешенного выбора.
	cumulative := make([]int, len(venues))
	total := 0
	for i, venue := range venues {
		weight := venue.Priority
		if weight < 1 {
			weight = 1
		}
		total += weight
		cumulative[i] = total
	}

	// Порядок проб при конфликте в режиме random: по убыванию веса.
	byWeight := make([]*models.Venue, len(venues))
	copy(byWeight, venues)
	sort.SliceStable(byWeight, func(i, j int) bool {
		if byWeight[i].Priority != byWeight[j].Priority {
			return byWeight[i].Priority > byWeight[j].Priority
		}
		return byWeight[i].ID < byWeight[j].ID
	})

	busy := make(map[int][]timeWindow, len(venues))
	usage := make(map[int]int, len(venues))
	var unassigned []*models.Match

	for _, match := range matches {
		if match.ScheduledAt == nil {
			continue
		}
		window := timeWindow{
			start: *match.ScheduledAt,
			end:   match.ScheduledAt.Add(cfg.SlotDuration()),
		}

		var venue *models.Venue
		switch mode {
		case VenueModeBalanced:
			venue = pickLeastUsed(venues, usage, busy, window)
		default:
			venue = a.pickWeighted(venues, cumulative, total, byWeight, busy, window)
		}

		if venue == nil {
			unassigned = append(unassigned, match)
			continue
		}

		venueID := venue.ID
		match.VenueID = &venueID
		busy[venueID] = append(busy[venueID], window)
		usage[venueID]++
	}

	return &AllocationResult{Matches: matches, Unassigned: unassigned}, nil
}

func (a *VenueAllocator) pickWeighted(venues []*models.Venue, cumulative []int, total int, byWeight []*models.Venue, busy map[int][]timeWindow, window timeWindow) *models.Venue {
	draw := a.rnd.Intn(total)
	idx := sort.Search(len(cumulative), func(i int) bool {
		return cumulative[i] > draw
	})
	if venueFree(busy, venues[idx].ID, window) {
		return venues[idx]
	}

	for _, candidate := range byWeight {
		if candidate.ID == venues[idx].ID {
			continue
		}
		if venueFree(busy, candidate.ID, window) {
			return candidate
		}
	}
	return nil
}

func pickLeastUsed(venues []*models.Venue, usage map[int]int, busy map[int][]timeWindow, window timeWindow) *models.Venue {
	byUsage := make([]*models.Venue, len(venues))
	copy(byUsage, venues)
	sort.SliceStable(byUsage, func(i, j int) bool {
		if usage[byUsage[i].ID] != usage[byUsage[j].ID] {
			return usage[byUsage[i].ID] < usage[byUsage[j].ID]
		}
		return byUsage[i].ID < byUsage[j].ID
	})

	for _, candidate := range byUsage {
		if venueFree(busy, candidate.ID, window) {
			return candidate
		}
	}
	return nil
}

func venueFree(busy map[int][]timeWindow, venueID int, window timeWindow) bool {
	for _, taken := range busy[venueID] {
		if window.overlaps(taken) {
			return false
		}
	}
	return true
}
