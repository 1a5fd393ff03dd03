package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/pm/internal/models"
)

func TestInitializeTestDataIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.InitializeTestData())
	teams, projects, tasks := s.Teams(), s.Projects(), s.Tasks()
	assert.Len(t, teams, 2)
	assert.Len(t, projects, 2)
	assert.Len(t, tasks, 3)

	require.NoError(t, s.InitializeTestData())
	assert.Equal(t, teams, s.Teams())
	assert.Equal(t, projects, s.Projects())
	assert.Equal(t, tasks, s.Tasks())
}

func TestInitializeTestDataFillsOnlyEmptyCollections(t *testing.T) {
	s, _ := newTestStore(t)

	team, err := s.AddTeam(models.Team{Name: "Mine"})
	require.NoError(t, err)

	require.NoError(t, s.InitializeTestData())

	assert.Equal(t, []models.Team{*team}, s.Teams())
	assert.Len(t, s.Projects(), 2)
	assert.Len(t, s.Tasks(), 3)
}

func TestStats(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.InitializeTestData())

	assert.Equal(t, models.Stats{Teams: 2, Projects: 2, Tasks: 3, PendingTasks: 2}, s.Stats())
}

func TestRecentActivityNewestFirst(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.AddTeam(models.Team{Name: "first"})
	require.NoError(t, err)
	_, err = s.AddProject(models.Project{Name: "second"})
	require.NoError(t, err)
	_, err = s.AddTask(models.Task{Title: "third", ProjectID: "x"})
	require.NoError(t, err)

	feed := s.RecentActivity(5)
	require.Len(t, feed, 3)
	assert.Equal(t, "third", feed[0].Title)
	assert.Equal(t, models.KindTask, feed[0].Kind)
	assert.Equal(t, "second", feed[1].Title)
	assert.Equal(t, "first", feed[2].Title)

	assert.Len(t, s.RecentActivity(2), 2)
}

func TestProjectProgress(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.InitializeTestData())

	done, total := s.ProjectProgress("1")
	assert.Equal(t, 0, done)
	assert.Equal(t, 2, total)

	done, total = s.ProjectProgress("2")
	assert.Equal(t, 1, done)
	assert.Equal(t, 1, total)

	done, total = s.ProjectProgress("missing")
	assert.Zero(t, done)
	assert.Zero(t, total)
}
