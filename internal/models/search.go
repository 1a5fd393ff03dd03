package models

import "time"

// Kind names a record collection
type Kind string

const (
	KindTeam    Kind = "team"
	KindProject Kind = "project"
	KindTask    Kind = "task"
)

// SearchResults holds matches per collection in stored order
type SearchResults struct {
	Teams    []Team    `json:"teams"`
	Projects []Project `json:"projects"`
	Tasks    []Task    `json:"tasks"`
}

// Total returns the number of matches across all collections
func (r SearchResults) Total() int {
	return len(r.Teams) + len(r.Projects) + len(r.Tasks)
}

// Only keeps matches of a single kind. An empty kind keeps everything.
func (r SearchResults) Only(kind Kind) SearchResults {
	switch kind {
	case KindTeam:
		return SearchResults{Teams: r.Teams, Projects: []Project{}, Tasks: []Task{}}
	case KindProject:
		return SearchResults{Teams: []Team{}, Projects: r.Projects, Tasks: []Task{}}
	case KindTask:
		return SearchResults{Teams: []Team{}, Projects: []Project{}, Tasks: r.Tasks}
	}
	return r
}

// Stats summarizes the store for the dashboard
type Stats struct {
	Teams        int
	Projects     int
	Tasks        int
	PendingTasks int
}

// Activity is one entry of the recent-activity feed
type Activity struct {
	Kind      Kind
	ID        string
	Title     string
	CreatedAt time.Time
}
