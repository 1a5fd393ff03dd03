package models

import "time"

// ProjectStatus is the lifecycle stage of a project
type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on-hold"
	ProjectCompleted ProjectStatus = "completed"
)

// ProjectStatuses lists project statuses in display order
var ProjectStatuses = []ProjectStatus{ProjectPlanning, ProjectActive, ProjectOnHold, ProjectCompleted}

// TaskStatus is the board column a task sits in
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in-progress"
	TaskReview     TaskStatus = "review"
	TaskDone       TaskStatus = "done"
)

// TaskStatuses lists board columns left to right
var TaskStatuses = []TaskStatus{TaskTodo, TaskInProgress, TaskReview, TaskDone}

// Priority applies to both projects and tasks
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// User is the signed-in account
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Member is a person listed on a team
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

// Team groups members and owns projects by reference
type Team struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Members     []Member  `json:"members"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Project belongs to a team through TeamID; an empty TeamID means no team
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	TeamID      string        `json:"teamId"`
	Status      ProjectStatus `json:"status"`
	Priority    Priority      `json:"priority"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// Task belongs to a project through ProjectID
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ProjectID   string     `json:"projectId"`
	Status      TaskStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	Assignee    string     `json:"assignee"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// TeamPatch holds the fields to overwrite on a team; nil fields are kept.
// A non-nil empty Members slice clears the member list.
type TeamPatch struct {
	Name        *string
	Description *string
	Color       *string
	Members     []Member
}

// ProjectPatch holds the fields to overwrite on a project; nil fields are kept
type ProjectPatch struct {
	Name        *string
	Description *string
	TeamID      *string
	Status      *ProjectStatus
	Priority    *Priority
}

// TaskPatch holds the fields to overwrite on a task; nil fields are kept
type TaskPatch struct {
	Title       *string
	Description *string
	ProjectID   *string
	Status      *TaskStatus
	Priority    *Priority
	Assignee    *string
}

// Ptr returns a pointer to v, for building patches
func Ptr[T any](v T) *T {
	return &v
}
