package services

import (
	"context"
	"math/rand"
	"testing"

	"github.com/Dosada05/league-system/fixtures"
	"github.com/Dosada05/league-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupServiceForTest(
	competitionRepo *fakeCompetitionRepo,
	registrationRepo *fakeRegistrationRepo,
	groupRepo *fakeGroupRepo,
) *groupService {
	return &groupService{
		competitionRepo:  competitionRepo,
		registrationRepo: registrationRepo,
		groupRepo:        groupRepo,
		newRand:          func() *rand.Rand { return rand.New(rand.NewSource(1)) },
		transact:         passthroughTx,
	}
}

func registrationsWithTeams(teams ...string) []*models.Registration {
	registrations := make([]*models.Registration, 0, len(teams))
	for i, name := range teams {
		registrations = append(registrations, &models.Registration{
			ID:     i + 1,
			TeamID: i + 101,
			Team:   &models.Team{ID: i + 101, Name: name},
		})
	}
	return registrations
}

func TestDrawGroups_DistributesAllRegistrations(t *testing.T) {
	competitionRepo := &fakeCompetitionRepo{competitions: map[int]*models.Competition{
		10: {ID: 10, Format: models.FormatRoundRobin},
	}}
	registrationRepo := &fakeRegistrationRepo{
		registrations: registrationsWithTeams("Lions", "Tigers", "Bears", "Wolves", "Eagles"),
	}
	groupRepo := &fakeGroupRepo{groups: []*models.Group{
		{ID: 1, CompetitionID: 10, Name: "A"},
		{ID: 2, CompetitionID: 10, Name: "B"},
	}}
	svc := groupServiceForTest(competitionRepo, registrationRepo, groupRepo)

	result, err := svc.DrawGroups(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, result, 2)

	// 5 заявок на 2 группы: 3+2, все команды размещены.
	total := 0
	names := map[string]bool{}
	for groupName, slots := range result {
		assert.Contains(t, []string{"A", "B"}, groupName)
		total += len(slots)
		for _, slot := range slots {
			assert.NotEmpty(t, slot.TeamName)
			names[slot.TeamName] = true
		}
	}
	assert.Equal(t, 5, total)
	assert.Len(t, names, 5)

	// Каждое назначение сохранено.
	require.Len(t, registrationRepo.groupUpdates, 5)
	for registrationID, groupID := range registrationRepo.groupUpdates {
		require.NotNil(t, groupID, "registration %d", registrationID)
		assert.Contains(t, []int{1, 2}, *groupID)
	}
}

func TestDrawGroups_KeepsExistingAssignments(t *testing.T) {
	competitionRepo := &fakeCompetitionRepo{competitions: map[int]*models.Competition{
		10: {ID: 10},
	}}
	groupA := 1
	registrations := registrationsWithTeams("Lions", "Tigers", "Bears")
	registrations[0].GroupID = &groupA
	registrationRepo := &fakeRegistrationRepo{registrations: registrations}
	groupRepo := &fakeGroupRepo{groups: []*models.Group{
		{ID: 1, CompetitionID: 10, Name: "A"},
		{ID: 2, CompetitionID: 10, Name: "B"},
	}}
	svc := groupServiceForTest(competitionRepo, registrationRepo, groupRepo)

	result, err := svc.DrawGroups(context.Background(), 10)
	require.NoError(t, err)

	// Уже распределённая заявка не пережеребьёвывается.
	assert.NotContains(t, registrationRepo.groupUpdates, registrations[0].ID)
	assert.Len(t, registrationRepo.groupUpdates, 2)

	// Но в итоговом составе группы A она присутствует.
	teamNamesInA := map[string]bool{}
	for _, slot := range result["A"] {
		teamNamesInA[slot.TeamName] = true
	}
	assert.True(t, teamNamesInA["Lions"])
}

func TestDrawGroups_UnknownCompetition(t *testing.T) {
	svc := groupServiceForTest(
		&fakeCompetitionRepo{competitions: map[int]*models.Competition{}},
		&fakeRegistrationRepo{},
		&fakeGroupRepo{},
	)

	_, err := svc.DrawGroups(context.Background(), 404)
	require.ErrorIs(t, err, ErrCompetitionNotFound)
}

func TestDrawGroups_NoGroupsConfigured(t *testing.T) {
	svc := groupServiceForTest(
		&fakeCompetitionRepo{competitions: map[int]*models.Competition{10: {ID: 10}}},
		&fakeRegistrationRepo{registrations: registrationsWithTeams("Lions")},
		&fakeGroupRepo{},
	)

	_, err := svc.DrawGroups(context.Background(), 10)
	require.ErrorIs(t, err, fixtures.ErrInvalidGroupConfig)
}

func TestDrawGroups_NoRegistrations(t *testing.T) {
	svc := groupServiceForTest(
		&fakeCompetitionRepo{competitions: map[int]*models.Competition{10: {ID: 10}}},
		&fakeRegistrationRepo{},
		&fakeGroupRepo{groups: []*models.Group{{ID: 1, CompetitionID: 10, Name: "A"}}},
	)

	_, err := svc.DrawGroups(context.Background(), 10)
	require.ErrorIs(t, err, ErrNoRegistrations)
}

func TestDrawGroups_NothingLeftToDraw(t *testing.T) {
	groupA := 1
	registrations := registrationsWithTeams("Lions", "Tigers")
	registrations[0].GroupID = &groupA
	registrations[1].GroupID = &groupA
	svc := groupServiceForTest(
		&fakeCompetitionRepo{competitions: map[int]*models.Competition{10: {ID: 10}}},
		&fakeRegistrationRepo{registrations: registrations},
		&fakeGroupRepo{groups: []*models.Group{{ID: 1, CompetitionID: 10, Name: "A"}}},
	)

	_, err := svc.DrawGroups(context.Background(), 10)
	require.ErrorIs(t, err, ErrNothingToDraw)
}
