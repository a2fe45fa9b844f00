package fixtures

import (
	"math/rand"
	"testing"
	"time"

	"github.com/Dosada05/league-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func venuesForTest() []*models.Venue {
	return []*models.Venue{
		{ID: 1, Name: "Arena North", Priority: 5},
		{ID: 2, Name: "Arena South", Priority: 1},
		{ID: 3, Name: "Arena West", Priority: 3},
	}
}

func matchesWithDates(starts ...time.Time) []*models.Match {
	matches := make([]*models.Match, 0, len(starts))
	for i, start := range starts {
		at := start
		a, b := i*2+1, i*2+2
		matches = append(matches, &models.Match{
			Round:       1,
			MatchNumber: i + 1,
			TeamAID:     &a,
			TeamBID:     &b,
			ScheduledAt: &at,
			Status:      models.MatchStatusScheduled,
		})
	}
	return matches
}

func TestVenueAllocate_EmptyPool(t *testing.T) {
	alloc := NewVenueAllocator(rand.New(rand.NewSource(1)))
	cfg := scheduleConfigForTest()

	_, err := alloc.Allocate(matchesWithDates(cfg.StartDate), nil, cfg)
	require.ErrorIs(t, err, ErrNoVenuesAvailable)
}

func TestVenueAllocate_RandomModeAssignsAll(t *testing.T) {
	alloc := NewVenueAllocator(rand.New(rand.NewSource(17)))
	cfg := scheduleConfigForTest()
	cfg.VenueMode = VenueModeRandom
	base := cfg.StartDate

	matches := matchesWithDates(base, base.Add(2*time.Hour), base.Add(4*time.Hour))
	result, err := alloc.Allocate(matches, venuesForTest(), cfg)
	require.NoError(t, err)
	require.Empty(t, result.Unassigned)
	assert.False(t, result.Shortfall())

	for _, match := range result.Matches {
		require.NotNil(t, match.VenueID)
		assert.Contains(t, []int{1, 2, 3}, *match.VenueID)
	}
}

func TestVenueAllocate_NoOverlapOnSameVenue(t *testing.T) {
	alloc := NewVenueAllocator(rand.New(rand.NewSource(5)))
	cfg := scheduleConfigForTest()
	base := cfg.StartDate

	// Четыре матча в один и тот же момент на три площадки: три получают
	// разные площадки, четвёртый остаётся без назначения.
	matches := matchesWithDates(base, base, base, base)
	result, err := alloc.Allocate(matches, venuesForTest(), cfg)
	require.NoError(t, err)

	require.Len(t, result.Unassigned, 1)
	assert.True(t, result.Shortfall())

	used := map[int]bool{}
	for _, match := range result.Matches {
		if match.VenueID == nil {
			continue
		}
		assert.False(t, used[*match.VenueID], "venue %d assigned twice for the same window", *match.VenueID)
		used[*match.VenueID] = true
	}
	assert.Len(t, used, 3)
}

func TestVenueAllocate_PartialOverlapConflicts(t *testing.T) {
	alloc := NewVenueAllocator(rand.New(rand.NewSource(11)))
	cfg := scheduleConfigForTest() // окно матча 120 минут
	base := cfg.StartDate

	// Старты через час: каждое окно пересекается с соседним.
	matches := matchesWithDates(base, base.Add(time.Hour))
	single := []*models.Venue{{ID: 1, Name: "Only Arena", Priority: 1}}

	result, err := alloc.Allocate(matches, single, cfg)
	require.NoError(t, err)
	require.Len(t, result.Unassigned, 1)
}

func TestVenueAllocate_BackToBackWindowsDoNotConflict(t *testing.T) {
	alloc := NewVenueAllocator(rand.New(rand.NewSource(11)))
	cfg := scheduleConfigForTest()
	base := cfg.StartDate

	// Второй матч стартует ровно в конце окна первого: границы
	// полуинтервалов [start, end) соприкасаются без пересечения.
	matches := matchesWithDates(base, base.Add(cfg.SlotDuration()))
	single := []*models.Venue{{ID: 1, Name: "Only Arena", Priority: 1}}

	result, err := alloc.Allocate(matches, single, cfg)
	require.NoError(t, err)
	require.Empty(t, result.Unassigned)
}

func TestVenueAllocate_BalancedSpreadsUsage(t *testing.T) {
	alloc := NewVenueAllocator(rand.New(rand.NewSource(1)))
	cfg := scheduleConfigForTest()
	cfg.VenueMode = VenueModeBalanced
	base := cfg.StartDate

	starts := make([]time.Time, 0, 6)
	for i := 0; i < 6; i++ {
		starts = append(starts, base.Add(time.Duration(i)*3*time.Hour))
	}
	result, err := alloc.Allocate(matchesWithDates(starts...), venuesForTest(), cfg)
	require.NoError(t, err)
	require.Empty(t, result.Unassigned)

	usage := map[int]int{}
	for _, match := range result.Matches {
		require.NotNil(t, match.VenueID)
		usage[*match.VenueID]++
	}
	// 6 матчей на 3 площадки без конфликтов - ровно по два.
	assert.Equal(t, map[int]int{1: 2, 2: 2, 3: 2}, usage)
}

func TestVenueAllocate_BalancedIsDeterministic(t *testing.T) {
	cfg := scheduleConfigForTest()
	cfg.VenueMode = VenueModeBalanced
	base := cfg.StartDate
	starts := []time.Time{base, base.Add(3 * time.Hour), base.Add(6 * time.Hour)}

	first, err := NewVenueAllocator(rand.New(rand.NewSource(1))).Allocate(matchesWithDates(starts...), venuesForTest(), cfg)
	require.NoError(t, err)
	second, err := NewVenueAllocator(rand.New(rand.NewSource(2))).Allocate(matchesWithDates(starts...), venuesForTest(), cfg)
	require.NoError(t, err)

	for i := range first.Matches {
		require.NotNil(t, first.Matches[i].VenueID)
		require.NotNil(t, second.Matches[i].VenueID)
		assert.Equal(t, *first.Matches[i].VenueID, *second.Matches[i].VenueID)
	}
}

func TestVenueAllocate_SkipsMatchesWithoutDate(t *testing.T) {
	alloc := NewVenueAllocator(rand.New(rand.NewSource(2)))
	cfg := scheduleConfigForTest()

	a, b := 1, 2
	undated := &models.Match{Round: 1, MatchNumber: 1, TeamAID: &a, TeamBID: &b, Status: models.MatchStatusScheduled}
	result, err := alloc.Allocate([]*models.Match{undated}, venuesForTest(), cfg)
	require.NoError(t, err)

	assert.Nil(t, undated.VenueID)
	assert.Empty(t, result.Unassigned)
}
