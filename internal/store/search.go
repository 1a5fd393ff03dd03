package store

import (
	"strings"

	"github.com/tgienger/pm/internal/models"
)

// SearchAll matches query against team and project names, task titles and
// every description, ignoring case. A blank query matches nothing.
func (s *Store) SearchAll(query string) models.SearchResults {
	results := models.SearchResults{
		Teams:    []models.Team{},
		Projects: []models.Project{},
		Tasks:    []models.Task{},
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return results
	}

	for _, t := range s.Teams() {
		if containsFold(t.Name, q) || containsFold(t.Description, q) {
			results.Teams = append(results.Teams, t)
		}
	}
	for _, p := range s.Projects() {
		if containsFold(p.Name, q) || containsFold(p.Description, q) {
			results.Projects = append(results.Projects, p)
		}
	}
	for _, t := range s.Tasks() {
		if containsFold(t.Title, q) || containsFold(t.Description, q) {
			results.Tasks = append(results.Tasks, t)
		}
	}

	return results
}

// containsFold reports whether s contains lowerQuery; lowerQuery must already
// be lower-cased
func containsFold(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}
