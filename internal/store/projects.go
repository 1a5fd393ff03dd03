package store

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/tgienger/pm/internal/models"
)

const unknownProjectLabel = "Unknown project"

func projectID(p models.Project) string { return p.ID }

// Projects returns all projects in insertion order
func (s *Store) Projects() []models.Project {
	return load[models.Project](s, KeyProjects)
}

// AddProject appends a project. ID and CreatedAt are generated unless supplied.
func (s *Store) AddProject(project models.Project) (*models.Project, error) {
	const op = "store.AddProject"

	if project.ID == "" {
		project.ID = s.newID()
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = s.now()
	}

	projects := append(s.Projects(), project)
	if err := s.save(KeyProjects, projects); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Debug("project added", slog.String("op", op), slog.String("project_id", project.ID))
	return &project, nil
}

// UpdateProject merges patch into the project with id. It returns nil when
// no such project exists.
func (s *Store) UpdateProject(id string, patch models.ProjectPatch) (*models.Project, error) {
	const op = "store.UpdateProject"

	projects := s.Projects()
	i := indexByID(projects, id, projectID)
	if i < 0 {
		return nil, nil
	}

	p := &projects[i]
	set(&p.Name, patch.Name)
	set(&p.Description, patch.Description)
	set(&p.TeamID, patch.TeamID)
	set(&p.Status, patch.Status)
	set(&p.Priority, patch.Priority)

	if err := s.save(KeyProjects, projects); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updated := *p
	return &updated, nil
}

// DeleteProject removes the project with id. Its tasks are kept.
func (s *Store) DeleteProject(id string) error {
	const op = "store.DeleteProject"

	projects, removed := without(s.Projects(), id, projectID)
	if !removed {
		return nil
	}
	if err := s.save(KeyProjects, projects); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Debug("project deleted", slog.String("op", op), slog.String("project_id", id))
	return nil
}

// Project looks up a project by id
func (s *Store) Project(id string) (*models.Project, bool) {
	projects := s.Projects()
	i := indexByID(projects, id, projectID)
	if i < 0 {
		return nil, false
	}
	return &projects[i], true
}

// ProjectName resolves a task's project reference, falling back to a
// default label for dangling ids
func (s *Store) ProjectName(id string) string {
	if p, ok := s.Project(id); ok {
		return p.Name
	}
	return unknownProjectLabel
}

// FilterProjects narrows projects to one team (when teamID is non-empty) and
// then to those whose name or description contains query, ignoring case
func (s *Store) FilterProjects(teamID, query string) []models.Project {
	q := strings.ToLower(strings.TrimSpace(query))

	filtered := []models.Project{}
	for _, p := range s.Projects() {
		if teamID != "" && p.TeamID != teamID {
			continue
		}
		if q != "" && !containsFold(p.Name, q) && !containsFold(p.Description, q) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}
