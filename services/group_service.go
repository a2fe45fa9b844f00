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
)

// TeamSlot - элемент результата жеребьёвки для отображения.
type TeamSlot struct {
	TeamID   int    `json:"team_id"`
	TeamName string `json:"team_name"`
}

type GroupService interface {
	// DrawGroups распределяет нераспределённые заявки соревнования по
	// группам и возвращает полный состав групп (имя группы -> команды).
	// Назначения сохраняются одной транзакцией.
	DrawGroups(ctx context.Context, competitionID int) (map[string][]TeamSlot, error)
}

type groupService struct {
	db               *sql.DB
	competitionRepo  repositories.CompetitionRepository
	registrationRepo repositories.RegistrationRepository
	groupRepo        repositories.GroupRepository

	// newRand и transact подменяются в тестах.
	newRand  func() *rand.Rand
	transact func(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error
}

func NewGroupService(
	db *sql.DB,
	competitionRepo repositories.CompetitionRepository,
	registrationRepo repositories.RegistrationRepository,
	groupRepo repositories.GroupRepository,
) GroupService {
	s := &groupService{
		db:               db,
		competitionRepo:  competitionRepo,
		registrationRepo: registrationRepo,
		groupRepo:        groupRepo,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
	s.transact = func(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
		return runInTx(ctx, db, fn)
	}
	return s
}

func (s *groupService) DrawGroups(ctx context.Context, competitionID int) (map[string][]TeamSlot, error) {
	if _, err := s.competitionRepo.GetByID(ctx, competitionID); err != nil {
		if errors.Is(err, repositories.ErrCompetitionNotFound) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("failed to load competition %d: %w", competitionID, err)
	}

	groups, err := s.groupRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups for competition %d: %w", competitionID, err)
	}
	if len(groups) == 0 {
		return nil, fixtures.ErrInvalidGroupConfig
	}

	registrations, err := s.registrationRepo.ListByCompetition(ctx, competitionID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations for competition %d: %w", competitionID, err)
	}
	if len(registrations) == 0 {
		return nil, ErrNoRegistrations
	}

	byRegistration := make(map[int]*models.Registration, len(registrations))
	assigned := make(map[int][]int, len(groups))
	var unassignedIDs []int
	for _, registration := range registrations {
		byRegistration[registration.ID] = registration
		if registration.GroupID != nil {
			assigned[*registration.GroupID] = append(assigned[*registration.GroupID], registration.ID)
		} else {
			unassignedIDs = append(unassignedIDs, registration.ID)
		}
	}
	if len(unassignedIDs) == 0 {
		return nil, ErrNothingToDraw
	}

	groupIDs := make([]int, 0, len(groups))
	for _, group := range groups {
		groupIDs = append(groupIDs, group.ID)
	}

	draw, err := fixtures.NewGroupDrawDistributor(s.newRand()).Distribute(unassignedIDs, groupIDs)
	if err != nil {
		return nil, err
	}

	err = s.transact(ctx, func(exec repositories.SQLExecutor) error {
		for groupID, registrationIDs := range draw {
			gid := groupID
			for _, registrationID := range registrationIDs {
				if err := s.registrationRepo.UpdateGroup(ctx, exec, registrationID, &gid); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist group draw for competition %d: %w", competitionID, err)
	}
	for groupID, registrationIDs := range draw {
		assigned[groupID] = append(assigned[groupID], registrationIDs...)
	}

	result := make(map[string][]TeamSlot, len(groups))
	for _, group := range groups {
		slots := make([]TeamSlot, 0, len(assigned[group.ID]))
		for _, registrationID := range assigned[group.ID] {
			registration := byRegistration[registrationID]
			slot := TeamSlot{TeamID: registration.TeamID}
			if registration.Team != nil {
				slot.TeamName = registration.Team.Name
			}
			slots = append(slots, slot)
		}
		result[group.Name] = slots
	}
	return result, nil
}
