package store

import (
	"fmt"
	"log/slog"

	"github.com/tgienger/pm/internal/models"
)

// InitializeTestData fills each empty collection with a small demo dataset.
// Collections that already hold records are left alone, so repeated calls
// change nothing.
func (s *Store) InitializeTestData() error {
	const op = "store.InitializeTestData"

	now := s.now()

	if len(s.Teams()) == 0 {
		teams := []models.Team{
			{
				ID:          "1",
				Name:        "Frontend Team",
				Description: "Frontend development team",
				Color:       "#FF6B35",
				Members: []models.Member{
					{ID: "1", Name: "Erich", Role: "Lead Developer", Email: "erich@example.com"},
					{ID: "2", Name: "Alice", Role: "UI/UX Designer", Email: "alice@example.com"},
				},
				CreatedAt: now,
			},
			{
				ID:          "2",
				Name:        "Backend Team",
				Description: "Backend development team",
				Color:       "#4ECDC4",
				Members: []models.Member{
					{ID: "3", Name: "Bob", Role: "Backend Developer", Email: "bob@example.com"},
				},
				CreatedAt: now,
			},
		}
		if err := s.save(KeyTeams, teams); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if len(s.Projects()) == 0 {
		projects := []models.Project{
			{
				ID:          "1",
				Name:        "Project Manager App",
				Description: "Application for managing projects",
				TeamID:      "1",
				Status:      models.ProjectActive,
				Priority:    models.PriorityHigh,
				CreatedAt:   now,
			},
			{
				ID:          "2",
				Name:        "API Gateway",
				Description: "API management system",
				TeamID:      "2",
				Status:      models.ProjectPlanning,
				Priority:    models.PriorityMedium,
				CreatedAt:   now,
			},
		}
		if err := s.save(KeyProjects, projects); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if len(s.Tasks()) == 0 {
		tasks := []models.Task{
			{
				ID:          "1",
				Title:       "Build the sign-in component",
				Description: "Create the login and registration forms",
				ProjectID:   "1",
				Status:      models.TaskTodo,
				Priority:    models.PriorityHigh,
				Assignee:    "Erich",
				CreatedAt:   now,
			},
			{
				ID:          "2",
				Title:       "Set up routing",
				Description: "Add navigation between screens",
				ProjectID:   "1",
				Status:      models.TaskInProgress,
				Priority:    models.PriorityMedium,
				Assignee:    "Erich",
				CreatedAt:   now,
			},
			{
				ID:          "3",
				Title:       "Create API endpoints",
				Description: "Implement the REST API for projects",
				ProjectID:   "2",
				Status:      models.TaskDone,
				Priority:    models.PriorityHigh,
				Assignee:    "Bob",
				CreatedAt:   now,
			},
		}
		if err := s.save(KeyTasks, tasks); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	s.log.Info("demo data initialized", slog.String("op", op))
	return nil
}
