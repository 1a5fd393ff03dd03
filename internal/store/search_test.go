package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/pm/internal/models"
)

func TestSearchAllBlankQueryMatchesNothing(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.InitializeTestData())

	for _, q := range []string{"", "   "} {
		res := s.SearchAll(q)
		assert.Empty(t, res.Teams)
		assert.Empty(t, res.Projects)
		assert.Empty(t, res.Tasks)
		assert.Zero(t, res.Total())
	}
}

func TestSearchAllNoMatches(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.InitializeTestData())

	res := s.SearchAll("zebra")
	assert.Empty(t, res.Teams)
	assert.Empty(t, res.Projects)
	assert.Empty(t, res.Tasks)
}

func TestSearchAllIgnoresCase(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.InitializeTestData())

	upper := s.SearchAll("FRONTEND")
	lower := s.SearchAll("frontend")
	assert.Equal(t, lower, upper)

	require.Len(t, upper.Teams, 1)
	assert.Equal(t, "Frontend Team", upper.Teams[0].Name)
}

func TestSearchAllMatchesDescriptionsAcrossCollections(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.AddTeam(models.Team{Name: "Core", Description: "Owns the API"})
	require.NoError(t, err)
	_, err = s.AddProject(models.Project{Name: "Gateway", Description: "public api"})
	require.NoError(t, err)
	_, err = s.AddProject(models.Project{Name: "Docs"})
	require.NoError(t, err)
	_, err = s.AddTask(models.Task{Title: "Design API", ProjectID: "p"})
	require.NoError(t, err)
	_, err = s.AddTask(models.Task{Title: "Rapid prototyping", ProjectID: "p"})
	require.NoError(t, err)

	res := s.SearchAll("api")
	assert.Len(t, res.Teams, 1)
	assert.Len(t, res.Projects, 1)
	require.Len(t, res.Tasks, 2)
	assert.Equal(t, "Design API", res.Tasks[0].Title)
	assert.Equal(t, "Rapid prototyping", res.Tasks[1].Title)
	assert.Equal(t, 4, res.Total())
}

func TestSearchResultsOnly(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.InitializeTestData())

	res := s.SearchAll("team")
	require.NotZero(t, len(res.Teams))

	teams := res.Only(models.KindTeam)
	assert.Equal(t, res.Teams, teams.Teams)
	assert.Empty(t, teams.Projects)
	assert.Empty(t, teams.Tasks)

	assert.Equal(t, res, res.Only(""))
}
