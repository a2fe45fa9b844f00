package fixtures

import (
	"fmt"
	"sort"
	"time"

	"github.com/Dosada05/league-system/models"
)

// VenueAssignmentMode определяет стратегию распределения площадок.
type VenueAssignmentMode string

const (
	VenueModeRandom   VenueAssignmentMode = "random"
	VenueModeBalanced VenueAssignmentMode = "balanced"
)

// ScheduleConfig - временное окно и правила упаковки матчей по дням.
type ScheduleConfig struct {
	StartDate            time.Time           `json:"start_date"`
	EndDate              time.Time           `json:"end_date"`
	MatchesPerDay        int                 `json:"matches_per_day"`
	MatchDurationMinutes int                 `json:"match_duration_minutes"`
	RestTimeMinutes      int                 `json:"rest_time_minutes"`
	ExcludedWeekdays     []time.Weekday      `json:"excluded_weekdays"`
	VenueMode            VenueAssignmentMode `json:"venue_assignment_mode"`
}

func (c ScheduleConfig) Validate() error {
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidScheduleConfig)
	}
	if dateOnly(c.EndDate).Before(dateOnly(c.StartDate)) {
		return fmt.Errorf("%w: end date %s is before start date %s",
			ErrInvalidScheduleConfig, c.EndDate.Format("2006-01-02"), c.StartDate.Format("2006-01-02"))
	}
	if c.MatchesPerDay <= 0 {
		return fmt.Errorf("%w: matches per day must be positive, got %d", ErrInvalidScheduleConfig, c.MatchesPerDay)
	}
	if c.MatchDurationMinutes <= 0 {
		return fmt.Errorf("%w: match duration must be positive, got %d", ErrInvalidScheduleConfig, c.MatchDurationMinutes)
	}
	if c.RestTimeMinutes < 0 {
		return fmt.Errorf("%w: rest time cannot be negative, got %d", ErrInvalidScheduleConfig, c.RestTimeMinutes)
	}
	for _, day := range c.ExcludedWeekdays {
		if day < time.Sunday || day > time.Saturday {
			return fmt.Errorf("%w: unknown weekday %d", ErrInvalidScheduleConfig, day)
		}
	}
	switch c.VenueMode {
	case VenueModeRandom, VenueModeBalanced, "":
	default:
		return fmt.Errorf("%w: unknown venue assignment mode %q", ErrInvalidScheduleConfig, c.VenueMode)
	}
	return nil
}

// SlotDuration - шаг между стартами матчей одного дня: игра плюс пауза.
func (c ScheduleConfig) SlotDuration() time.Duration {
	return time.Duration(c.MatchDurationMinutes+c.RestTimeMinutes) * time.Minute
}

func (c ScheduleConfig) weekdayExcluded(day time.Weekday) bool {
	for _, excluded := range c.ExcludedWeekdays {
		if day == excluded {
			return true
		}
	}
	return false
}

// ScheduleResult - итог раскладки по календарю. Unplaced не пуст, если
// окно закончилось раньше, чем матчи: это не ошибка, вызывающая сторона
// решает, расширять окно или жить с пробелами.
type ScheduleResult struct {
	Matches  []*models.Match
	Unplaced []*models.Match
}

func (r *ScheduleResult) Shortfall() bool {
	return len(r.Unplaced) > 0
}

type ScheduleAssigner struct{}

func NewScheduleAssigner() *ScheduleAssigner {
	return &ScheduleAssigner{}
}

// Assign проставляет матчам дату и время. Дни идут вперёд от StartDate,
// исключённые дни недели пропускаются, в день помещается не больше
// MatchesPerDay матчей со сдвигом index*(игра+пауза) от времени начала
// дня (берётся из StartDate). Матчи обходятся строго в порядке
// (round, match_number), поэтому матчи первого раунда всегда раньше
// заготовок второго. Цикл завершается на EndDate даже при
// нерасставленных матчах.
func (a *ScheduleAssigner) Assign(matches []*models.Match, cfg ScheduleConfig) (*ScheduleResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ordered := make([]*models.Match, len(matches))
	copy(ordered, matches)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Round != ordered[j].Round {
			return ordered[i].Round < ordered[j].Round
		}
		return ordered[i].MatchNumber < ordered[j].MatchNumber
	})

	lastDay := dateOnly(cfg.EndDate)
	day := cfg.StartDate
	next := 0

	for next < len(ordered) && !dateOnly(day).After(lastDay) {
		if cfg.weekdayExcluded(day.Weekday()) {
			day = day.AddDate(0, 0, 1)
			continue
		}
		for slot := 0; slot < cfg.MatchesPerDay && next < len(ordered); slot++ {
			startAt := day.Add(time.Duration(slot) * cfg.SlotDuration())
			ordered[next].ScheduledAt = &startAt
			next++
		}
		day = day.AddDate(0, 0, 1)
	}

	return &ScheduleResult{
		Matches:  ordered,
		Unplaced: ordered[next:],
	}, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
