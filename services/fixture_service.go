package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/Dosada05/league-system/fixtures"
	"github.com/Dosada05/league-system/models"
	"github.com/Dosada05/league-system/repositories"
	"golang.org/x/sync/errgroup"
)

// FixtureResult - итог пересборки календаря. Unplaced и Unassigned -
// информация о нехватке окна/площадок, а не ошибка: календарь сохранён,
// вызывающая сторона решает, расширять окно или жить с пробелами.
type FixtureResult struct {
	Matches    []*models.Match `json:"matches"`
	Unplaced   []*models.Match `json:"unplaced,omitempty"`
	Unassigned []*models.Match `json:"unassigned,omitempty"`
	Shortfall  bool            `json:"shortfall"`
}

// FixtureView - календарь соревнования со связанными данными для отображения.
type FixtureView struct {
	Competition *models.Competition `json:"competition"`
	Matches     []*models.Match     `json:"matches"`
	Groups      []*models.Group     `json:"groups"`
	Venues      []*models.Venue     `json:"venues"`
}

type FixtureService interface {
	// GenerateFixture перестраивает календарь соревнования целиком:
	// старые матчи удаляются и новые вставляются в одной транзакции.
	GenerateFixture(ctx context.Context, competitionID int, cfg fixtures.ScheduleConfig) (*FixtureResult, error)
	GetFixture(ctx context.Context, competitionID int) (*FixtureView, error)
}

type fixtureService struct {
	db               *sql.DB
	competitionRepo  repositories.CompetitionRepository
	registrationRepo repositories.RegistrationRepository
	groupRepo        repositories.GroupRepository
	matchRepo        repositories.MatchRepository
	venueRepo        repositories.VenueRepository
	hub              *fixtures.Hub

	// newRand и transact подменяются в тестах.
	newRand  func() *rand.Rand
	transact func(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error
}

func NewFixtureService(
	db *sql.DB,
	competitionRepo repositories.CompetitionRepository,
	registrationRepo repositories.RegistrationRepository,
	groupRepo repositories.GroupRepository,
	matchRepo repositories.MatchRepository,
	venueRepo repositories.VenueRepository,
	hub *fixtures.Hub,
) FixtureService {
	s := &fixtureService{
		db:               db,
		competitionRepo:  competitionRepo,
		registrationRepo: registrationRepo,
		groupRepo:        groupRepo,
		matchRepo:        matchRepo,
		venueRepo:        venueRepo,
		hub:              hub,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
	s.transact = func(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
		return runInTx(ctx, db, fn)
	}
	return s
}

func (s *fixtureService) GenerateFixture(ctx context.Context, competitionID int, cfg fixtures.ScheduleConfig) (*FixtureResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	competition, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompetitionNotFound) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("failed to load competition %d: %w", competitionID, err)
	}

	registrations, err := s.registrationRepo.ListByCompetition(ctx, competitionID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations for competition %d: %w", competitionID, err)
	}
	if len(registrations) == 0 {
		return nil, ErrNoRegistrations
	}

	groups, err := s.groupRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups for competition %d: %w", competitionID, err)
	}

	venues, err := s.venueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}

	generator, err := fixtures.ForFormat(competition.Format)
	if err != nil {
		return nil, err
	}

	rnd := s.newRand()
	allMatches, drawnGroups, err := s.buildMatches(generator, registrations, groups, rnd)
	if err != nil {
		return nil, err
	}
	for _, match := range allMatches {
		match.CompetitionID = competitionID
	}

	// Bye-матчи не играются и календарного слота не занимают.
	playable := make([]*models.Match, 0, len(allMatches))
	for _, match := range allMatches {
		if match.Status != models.MatchStatusBye {
			playable = append(playable, match)
		}
	}

	scheduled, err := fixtures.NewScheduleAssigner().Assign(playable, cfg)
	if err != nil {
		return nil, err
	}

	allocated, err := fixtures.NewVenueAllocator(rnd).Allocate(scheduled.Matches, venues, cfg)
	if err != nil {
		return nil, err
	}

	if err := s.replaceFixture(ctx, competitionID, allMatches, drawnGroups); err != nil {
		return nil, err
	}

	result := &FixtureResult{
		Matches:    allMatches,
		Unplaced:   scheduled.Unplaced,
		Unassigned: allocated.Unassigned,
		Shortfall:  scheduled.Shortfall() || allocated.Shortfall(),
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(competitionRoom(competitionID), fixtures.HubMessage{
			Type:    fixtures.EventFixtureUpdated,
			Payload: result,
		})
	}
	return result, nil
}

// buildMatches строит сырой список матчей: при наличии групп - по
// каждой группе отдельно (с дожеребьёвкой нераспределённых заявок),
// иначе одной общей сеткой. Возвращает также назначения групп,
// сделанные в этом вызове, для сохранения в общей транзакции.
func (s *fixtureService) buildMatches(
	generator fixtures.Generator,
	registrations []*models.Registration,
	groups []*models.Group,
	rnd *rand.Rand,
) ([]*models.Match, map[int]int, error) {
	if len(groups) == 0 {
		teamIDs := make([]int, 0, len(registrations))
		for _, registration := range registrations {
			teamIDs = append(teamIDs, registration.TeamID)
		}
		matches, err := generator.Generate(teamIDs)
		return matches, nil, err
	}

	teamByRegistration := make(map[int]int, len(registrations))
	assigned := make(map[int][]int, len(groups))
	var unassignedIDs []int
	for _, registration := range registrations {
		teamByRegistration[registration.ID] = registration.TeamID
		if registration.GroupID != nil {
			assigned[*registration.GroupID] = append(assigned[*registration.GroupID], registration.ID)
		} else {
			unassignedIDs = append(unassignedIDs, registration.ID)
		}
	}

	drawnGroups := make(map[int]int)
	if len(unassignedIDs) > 0 {
		groupIDs := make([]int, 0, len(groups))
		for _, group := range groups {
			groupIDs = append(groupIDs, group.ID)
		}
		draw, err := fixtures.NewGroupDrawDistributor(rnd).Distribute(unassignedIDs, groupIDs)
		if err != nil {
			return nil, nil, err
		}
		for groupID, registrationIDs := range draw {
			for _, registrationID := range registrationIDs {
				assigned[groupID] = append(assigned[groupID], registrationID)
				drawnGroups[registrationID] = groupID
			}
		}
	}

	var allMatches []*models.Match
	for _, group := range groups {
		registrationIDs := assigned[group.ID]
		teamIDs := make([]int, 0, len(registrationIDs))
		for _, registrationID := range registrationIDs {
			teamIDs = append(teamIDs, teamByRegistration[registrationID])
		}
		if len(teamIDs) < 2 {
			return nil, nil, fmt.Errorf("%w: group %q has %d teams", fixtures.ErrInsufficientTeams, group.Name, len(teamIDs))
		}
		matches, err := generator.Generate(teamIDs)
		if err != nil {
			return nil, nil, err
		}
		groupID := group.ID
		for _, match := range matches {
			match.GroupID = &groupID
		}
		allMatches = append(allMatches, matches...)
	}
	return allMatches, drawnGroups, nil
}

// replaceFixture выполняет атомарную замену календаря: удаление старых
// матчей, сохранение назначений групп этой пересборки и вставка нового
// набора фиксируются одной транзакцией. При откате прежний календарь
// остаётся нетронутым - состояние "наполовину удалено" невозможно.
func (s *fixtureService) replaceFixture(ctx context.Context, competitionID int, matches []*models.Match, drawnGroups map[int]int) error {
	return s.transact(ctx, func(exec repositories.SQLExecutor) error {
		if _, err := s.matchRepo.DeleteByCompetition(ctx, exec, competitionID); err != nil {
			return err
		}
		for registrationID, groupID := range drawnGroups {
			gid := groupID
			if err := s.registrationRepo.UpdateGroup(ctx, exec, registrationID, &gid); err != nil {
				return err
			}
		}
		return s.matchRepo.CreateBatch(ctx, exec, matches)
	})
}

func (s *fixtureService) GetFixture(ctx context.Context, competitionID int) (*FixtureView, error) {
	competition, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompetitionNotFound) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("failed to load competition %d: %w", competitionID, err)
	}

	view := &FixtureView{Competition: competition}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		matches, err := s.matchRepo.ListByCompetition(gCtx, competitionID, nil, nil)
		if err != nil {
			return err
		}
		view.Matches = matches
		return nil
	})
	g.Go(func() error {
		groups, err := s.groupRepo.ListByCompetition(gCtx, competitionID)
		if err != nil {
			return err
		}
		view.Groups = groups
		return nil
	})
	g.Go(func() error {
		venues, err := s.venueRepo.List(gCtx)
		if err != nil {
			return err
		}
		view.Venues = venues
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load fixture data for competition %d: %w", competitionID, err)
	}
	return view, nil
}
