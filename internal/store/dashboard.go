package store

import (
	"sort"

	"github.com/tgienger/pm/internal/models"
)

// Stats counts records; a task is pending until it is done
func (s *Store) Stats() models.Stats {
	tasks := s.Tasks()

	pending := 0
	for _, t := range tasks {
		if t.Status != models.TaskDone {
			pending++
		}
	}

	return models.Stats{
		Teams:        len(s.Teams()),
		Projects:     len(s.Projects()),
		Tasks:        len(tasks),
		PendingTasks: pending,
	}
}

// RecentActivity returns up to limit records of any kind, newest first
func (s *Store) RecentActivity(limit int) []models.Activity {
	var feed []models.Activity
	for _, t := range s.Tasks() {
		feed = append(feed, models.Activity{Kind: models.KindTask, ID: t.ID, Title: t.Title, CreatedAt: t.CreatedAt})
	}
	for _, p := range s.Projects() {
		feed = append(feed, models.Activity{Kind: models.KindProject, ID: p.ID, Title: p.Name, CreatedAt: p.CreatedAt})
	}
	for _, t := range s.Teams() {
		feed = append(feed, models.Activity{Kind: models.KindTeam, ID: t.ID, Title: t.Name, CreatedAt: t.CreatedAt})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].CreatedAt.After(feed[j].CreatedAt)
	})

	if limit >= 0 && len(feed) > limit {
		feed = feed[:limit]
	}
	return feed
}

// ProjectProgress counts the done and total tasks of a project
func (s *Store) ProjectProgress(projectID string) (done, total int) {
	for _, t := range s.TasksByProject(projectID) {
		total++
		if t.Status == models.TaskDone {
			done++
		}
	}
	return done, total
}
