package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/pm/internal/models"
	"github.com/tgienger/pm/internal/store"
)

func newTestBoard(t *testing.T) (*BoardView, *store.Store, models.Project) {
	t.Helper()

	st := newTestStore(t)
	p, err := st.AddProject(models.Project{Name: "Board"})
	require.NoError(t, err)
	_, err = st.AddTask(models.Task{Title: "first", ProjectID: p.ID})
	require.NoError(t, err)
	_, err = st.AddTask(models.Task{Title: "second", ProjectID: p.ID})
	require.NoError(t, err)

	v := NewBoardView(st, *p)
	drain(v, v.Init())
	return v, st, *p
}

func TestBoardLoadsColumns(t *testing.T) {
	v, _, _ := newTestBoard(t)

	require.Len(t, v.columns, len(models.TaskStatuses))
	assert.Len(t, v.columns[0], 2)
	for _, col := range v.columns[1:] {
		assert.Empty(t, col)
	}
}

func TestBoardMoveTaskFollowsCursor(t *testing.T) {
	v, st, p := newTestBoard(t)

	v.Update(keyMsg(tea.KeyDown))
	_, cmd := v.Update(runes(">"))
	drain(v, cmd)

	assert.Equal(t, 1, v.col)
	task, ok := v.selected()
	require.True(t, ok)
	assert.Equal(t, "second", task.Title)
	assert.Len(t, st.TasksByStatus(p.ID, models.TaskInProgress), 1)

	_, cmd = v.Update(runes("<"))
	drain(v, cmd)
	assert.Equal(t, 0, v.col)
	assert.Empty(t, st.TasksByStatus(p.ID, models.TaskInProgress))
}

func TestBoardMoveStopsAtEdges(t *testing.T) {
	v, st, p := newTestBoard(t)

	_, cmd := v.Update(runes("<"))
	assert.Nil(t, cmd)
	assert.Len(t, st.TasksByStatus(p.ID, models.TaskTodo), 2)
}

func TestBoardNewTaskUsesFocusedColumn(t *testing.T) {
	v, st, p := newTestBoard(t)

	v.Update(keyMsg(tea.KeyRight))
	v.Update(keyMsg(tea.KeyRight))
	v.Update(runes("n"))
	require.True(t, v.Capturing())
	v.editing.fields[0].input.SetValue("reviewed")

	_, cmd := v.Update(keyMsg(ctrlS))
	drain(v, cmd)

	review := st.TasksByStatus(p.ID, models.TaskReview)
	require.Len(t, review, 1)
	assert.Equal(t, "reviewed", review[0].Title)
	assert.Equal(t, models.PriorityMedium, review[0].Priority)
	assert.Len(t, v.columns[2], 1)
}

func TestBoardDeleteTask(t *testing.T) {
	v, st, p := newTestBoard(t)

	v.Update(runes("d"))
	require.NotNil(t, v.confirm)

	_, cmd := v.Update(runes("n"))
	assert.Nil(t, cmd)
	assert.Len(t, st.TasksByProject(p.ID), 2, "declined")

	v.Update(runes("d"))
	_, cmd = v.Update(runes("y"))
	drain(v, cmd)

	tasks := st.TasksByProject(p.ID)
	require.Len(t, tasks, 1)
	assert.Equal(t, "second", tasks[0].Title)
}

func TestBoardEscGoesBack(t *testing.T) {
	v, _, _ := newTestBoard(t)

	_, cmd := v.Update(keyMsg(tea.KeyEsc))
	require.NotNil(t, cmd)
	assert.Equal(t, BackToProjects{}, cmd())
}

func TestBoardOffersTeamMembersAsAssignees(t *testing.T) {
	st := newTestStore(t)
	team, err := st.AddTeam(models.Team{Name: "T", Members: []models.Member{{ID: "m", Name: "Alice"}}})
	require.NoError(t, err)
	p, err := st.AddProject(models.Project{Name: "P", TeamID: team.ID})
	require.NoError(t, err)

	v := NewBoardView(st, *p)
	drain(v, v.Init())
	v.Update(runes("n"))

	assignee := v.editing.fields[4]
	assert.Equal(t, []string{"", "Alice"}, assignee.choices)
	assert.Equal(t, "Unassigned", assignee.labels[0])
}
