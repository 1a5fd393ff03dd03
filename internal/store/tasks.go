package store

import (
	"fmt"
	"log/slog"

	"github.com/tgienger/pm/internal/models"
)

func taskID(t models.Task) string { return t.ID }

// Tasks returns all tasks in insertion order
func (s *Store) Tasks() []models.Task {
	return load[models.Task](s, KeyTasks)
}

// AddTask appends a task. ID and CreatedAt are generated unless supplied and
// Status defaults to todo.
func (s *Store) AddTask(task models.Task) (*models.Task, error) {
	const op = "store.AddTask"

	if task.ID == "" {
		task.ID = s.newID()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = s.now()
	}
	if task.Status == "" {
		task.Status = models.TaskTodo
	}

	tasks := append(s.Tasks(), task)
	if err := s.save(KeyTasks, tasks); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Debug("task added",
		slog.String("op", op),
		slog.String("task_id", task.ID),
		slog.String("project_id", task.ProjectID))
	return &task, nil
}

// UpdateTask merges patch into the task with id. It returns nil when no such
// task exists.
func (s *Store) UpdateTask(id string, patch models.TaskPatch) (*models.Task, error) {
	const op = "store.UpdateTask"

	tasks := s.Tasks()
	i := indexByID(tasks, id, taskID)
	if i < 0 {
		return nil, nil
	}

	t := &tasks[i]
	set(&t.Title, patch.Title)
	set(&t.Description, patch.Description)
	set(&t.ProjectID, patch.ProjectID)
	set(&t.Status, patch.Status)
	set(&t.Priority, patch.Priority)
	set(&t.Assignee, patch.Assignee)

	if err := s.save(KeyTasks, tasks); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updated := *t
	return &updated, nil
}

// MoveTask puts a task into another board column
func (s *Store) MoveTask(id string, status models.TaskStatus) (*models.Task, error) {
	return s.UpdateTask(id, models.TaskPatch{Status: &status})
}

// DeleteTask removes the task with id
func (s *Store) DeleteTask(id string) error {
	const op = "store.DeleteTask"

	tasks, removed := without(s.Tasks(), id, taskID)
	if !removed {
		return nil
	}
	if err := s.save(KeyTasks, tasks); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Debug("task deleted", slog.String("op", op), slog.String("task_id", id))
	return nil
}

// TasksByProject returns the tasks referencing projectID, in stored order
func (s *Store) TasksByProject(projectID string) []models.Task {
	return filterTasks(s.Tasks(), func(t models.Task) bool {
		return t.ProjectID == projectID
	})
}

// TasksByStatus returns one board column of a project
func (s *Store) TasksByStatus(projectID string, status models.TaskStatus) []models.Task {
	return filterTasks(s.Tasks(), func(t models.Task) bool {
		return t.ProjectID == projectID && t.Status == status
	})
}

func filterTasks(tasks []models.Task, keep func(models.Task) bool) []models.Task {
	out := []models.Task{}
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
