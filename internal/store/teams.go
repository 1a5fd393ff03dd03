package store

import (
	"fmt"
	"log/slog"

	"github.com/tgienger/pm/internal/models"
)

const noTeamLabel = "No team"

func teamID(t models.Team) string { return t.ID }

// Teams returns all teams in insertion order
func (s *Store) Teams() []models.Team {
	return load[models.Team](s, KeyTeams)
}

// AddTeam appends a team. ID and CreatedAt are generated unless supplied.
func (s *Store) AddTeam(team models.Team) (*models.Team, error) {
	const op = "store.AddTeam"

	if team.ID == "" {
		team.ID = s.newID()
	}
	if team.CreatedAt.IsZero() {
		team.CreatedAt = s.now()
	}
	if team.Members == nil {
		team.Members = []models.Member{}
	}

	teams := append(s.Teams(), team)
	if err := s.save(KeyTeams, teams); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Debug("team added", slog.String("op", op), slog.String("team_id", team.ID))
	return &team, nil
}

// UpdateTeam merges patch into the team with id. It returns nil when no
// such team exists.
func (s *Store) UpdateTeam(id string, patch models.TeamPatch) (*models.Team, error) {
	const op = "store.UpdateTeam"

	teams := s.Teams()
	i := indexByID(teams, id, teamID)
	if i < 0 {
		return nil, nil
	}

	t := &teams[i]
	set(&t.Name, patch.Name)
	set(&t.Description, patch.Description)
	set(&t.Color, patch.Color)
	if patch.Members != nil {
		t.Members = patch.Members
	}

	if err := s.save(KeyTeams, teams); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updated := *t
	return &updated, nil
}

// DeleteTeam removes the team with id. Projects referencing it are left
// untouched; TeamName resolves such references to a default label.
func (s *Store) DeleteTeam(id string) error {
	const op = "store.DeleteTeam"

	teams, removed := without(s.Teams(), id, teamID)
	if !removed {
		return nil
	}
	if err := s.save(KeyTeams, teams); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Debug("team deleted", slog.String("op", op), slog.String("team_id", id))
	return nil
}

// Team looks up a team by id
func (s *Store) Team(id string) (*models.Team, bool) {
	teams := s.Teams()
	i := indexByID(teams, id, teamID)
	if i < 0 {
		return nil, false
	}
	return &teams[i], true
}

// TeamName resolves a project's team reference, falling back to a default
// label for empty or dangling ids
func (s *Store) TeamName(id string) string {
	if id == "" {
		return noTeamLabel
	}
	if t, ok := s.Team(id); ok {
		return t.Name
	}
	return noTeamLabel
}
