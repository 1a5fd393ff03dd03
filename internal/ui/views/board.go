package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/pm/internal/models"
	"github.com/tgienger/pm/internal/store"
	"github.com/tgienger/pm/internal/ui/keys"
	"github.com/tgienger/pm/internal/ui/styles"
)

var columnTitles = map[models.TaskStatus]string{
	models.TaskTodo:       "To do",
	models.TaskInProgress: "In progress",
	models.TaskReview:     "Review",
	models.TaskDone:       "Done",
}

type boardLoadedMsg struct {
	columns   [][]models.Task
	project   *models.Project
	assignees []string
}

// BoardView shows the tasks of one project in status columns
type BoardView struct {
	store   *store.Store
	project models.Project
	styles  *styles.Styles
	keys    keys.KeyMap
	width   int
	height  int

	columns   [][]models.Task
	assignees []string
	col       int
	rows      []int // cursor per column
	followID  string

	editing *form
	editID  string

	confirm *confirmDialog

	showHelpPopup bool
}

func NewBoardView(st *store.Store, project models.Project) *BoardView {
	return &BoardView{
		store:   st,
		project: project,
		styles:  styles.NewStyles(),
		keys:    keys.DefaultKeyMap(),
		columns: make([][]models.Task, len(models.TaskStatuses)),
		rows:    make([]int, len(models.TaskStatuses)),
	}
}

func (v *BoardView) Init() tea.Cmd {
	return v.loadTasks()
}

func (v *BoardView) loadTasks() tea.Cmd {
	st, projectID, teamID := v.store, v.project.ID, v.project.TeamID
	return func() tea.Msg {
		msg := boardLoadedMsg{columns: make([][]models.Task, len(models.TaskStatuses))}
		for i, status := range models.TaskStatuses {
			msg.columns[i] = st.TasksByStatus(projectID, status)
		}
		if p, ok := st.Project(projectID); ok {
			msg.project = p
			teamID = p.TeamID
		}
		if team, ok := st.Team(teamID); ok {
			for _, m := range team.Members {
				msg.assignees = append(msg.assignees, m.Name)
			}
		}
		return msg
	}
}

func (v *BoardView) Capturing() bool { return v.editing != nil }

// Project returns the project shown on the board
func (v *BoardView) Project() models.Project { return v.project }

// selected returns the task under the cursor, if any
func (v *BoardView) selected() (models.Task, bool) {
	tasks := v.columns[v.col]
	if len(tasks) == 0 {
		return models.Task{}, false
	}
	return tasks[v.rows[v.col]], true
}

func (v *BoardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case boardLoadedMsg:
		v.columns = msg.columns
		v.assignees = msg.assignees
		if msg.project != nil {
			v.project = *msg.project
		}
		for i := range v.rows {
			v.rows[i] = clamp(v.rows[i], 0, max(len(v.columns[i])-1, 0))
		}
		v.follow()
		return v, nil

	case tea.KeyMsg:
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}
		if v.confirm != nil {
			return v.updateConfirmDelete(msg)
		}
		if v.editing != nil {
			return v.updateEditing(msg)
		}

		switch {
		case key.Matches(msg, v.keys.Back):
			return v, func() tea.Msg { return BackToProjects{} }
		case key.Matches(msg, v.keys.Help):
			v.showHelpPopup = true
		case key.Matches(msg, v.keys.MoveLeft):
			return v, v.move(-1)
		case key.Matches(msg, v.keys.MoveRight):
			return v, v.move(1)
		case key.Matches(msg, v.keys.Left):
			v.col = (v.col + len(v.columns) - 1) % len(v.columns)
		case key.Matches(msg, v.keys.Right), key.Matches(msg, v.keys.Tab):
			v.col = (v.col + 1) % len(v.columns)
		case key.Matches(msg, v.keys.Up):
			if v.rows[v.col] > 0 {
				v.rows[v.col]--
			}
		case key.Matches(msg, v.keys.Down):
			if v.rows[v.col] < len(v.columns[v.col])-1 {
				v.rows[v.col]++
			}
		case key.Matches(msg, v.keys.New):
			return v, v.openForm(nil)
		case key.Matches(msg, v.keys.Edit), key.Matches(msg, v.keys.Enter):
			if task, ok := v.selected(); ok {
				return v, v.openForm(&task)
			}
		case key.Matches(msg, v.keys.Delete):
			if task, ok := v.selected(); ok {
				v.confirm = &confirmDialog{
					title:  "Delete Task?",
					target: task.ID,
					lines:  []string{fmt.Sprintf("Are you sure you want to delete %q?", task.Title)},
				}
			}
		}
	}
	return v, nil
}

// move shifts the selected task one column over and keeps it selected
func (v *BoardView) move(delta int) tea.Cmd {
	task, ok := v.selected()
	if !ok {
		return nil
	}
	target := v.col + delta
	if target < 0 || target >= len(models.TaskStatuses) {
		return nil
	}

	if _, err := v.store.MoveTask(task.ID, models.TaskStatuses[target]); err != nil {
		return errCmd(err)
	}
	v.followID = task.ID
	return v.loadTasks()
}

// follow puts the cursor on the task that was just moved
func (v *BoardView) follow() {
	if v.followID == "" {
		return
	}
	for i, tasks := range v.columns {
		for j, t := range tasks {
			if t.ID == v.followID {
				v.col, v.rows[i] = i, j
			}
		}
	}
	v.followID = ""
}

func (v *BoardView) openForm(task *models.Task) tea.Cmd {
	t := models.Task{Status: models.TaskStatuses[v.col], Priority: models.PriorityMedium}
	title, submit := "New Task", "Create"
	v.editID = ""
	if task != nil {
		t = *task
		title, submit = "Edit Task", "Save"
		v.editID = task.ID
	}

	assignees := append([]string{""}, v.assignees...)
	if !containsString(assignees, t.Assignee) {
		assignees = append(assignees, t.Assignee)
	}
	labels := make([]string, len(assignees))
	copy(labels, assignees)
	labels[0] = "Unassigned"

	v.editing = newForm(title, submit).
		addInput("title", "Title", "What needs doing?", t.Title, 200).
		addArea("description", "Description", "Optional", t.Description, 1000).
		addChoice("status", "Status", stringsOf(models.TaskStatuses), nil, string(t.Status)).
		addChoice("priority", "Priority", stringsOf(models.Priorities), nil, string(t.Priority)).
		addChoice("assignee", "Assignee", assignees, labels, t.Assignee)
	return v.editing.start()
}

func (v *BoardView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result, cmd := v.editing.update(msg)
	switch result {
	case formCancelled:
		v.editing = nil
		return v, nil
	case formSubmitted:
		return v, v.save()
	}
	return v, cmd
}

func (v *BoardView) save() tea.Cmd {
	f := v.editing
	title := f.value("title")
	if title == "" {
		f.setErrors(map[string]string{"title": "is required"})
		return nil
	}
	description := f.value("description")
	status := models.TaskStatus(f.value("status"))
	priority := models.Priority(f.value("priority"))
	assignee := f.value("assignee")

	v.editing = nil
	if v.editID == "" {
		if _, err := v.store.AddTask(models.Task{
			Title:       title,
			Description: description,
			ProjectID:   v.project.ID,
			Status:      status,
			Priority:    priority,
			Assignee:    assignee,
		}); err != nil {
			return errCmd(err)
		}
		return v.loadTasks()
	}

	updated, err := v.store.UpdateTask(v.editID, models.TaskPatch{
		Title:       &title,
		Description: &description,
		Status:      &status,
		Priority:    &priority,
		Assignee:    &assignee,
	})
	if err != nil {
		return errCmd(err)
	}
	if updated == nil {
		return tea.Batch(v.loadTasks(), statusCmd("Task no longer exists"))
	}
	return v.loadTasks()
}

func (v *BoardView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	answered, yes := confirmAnswer(msg.String())
	if !answered {
		return v, nil
	}
	id := v.confirm.target
	v.confirm = nil
	if !yes {
		return v, nil
	}
	if err := v.store.DeleteTask(id); err != nil {
		return v, errCmd(err)
	}
	return v, v.loadTasks()
}

var boardHelp = []helpEntry{
	{"←/→", "column"},
	{"</>", "move task"},
	{"n", "new"},
	{"e", "edit"},
	{"d", "del"},
	{"esc", "back"},
}

func (v *BoardView) View() string {
	switch {
	case v.showHelpPopup:
		return renderHelpPopup(v.styles, v.width, v.height, boardHelp)
	case v.confirm != nil:
		return v.confirm.view(v.styles, v.width, v.height)
	case v.editing != nil:
		return v.editing.view(v.styles, v.width, v.height)
	}

	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	colWidth := max(contentWidth/len(models.TaskStatuses)-4, 12)

	cols := make([]string, len(models.TaskStatuses))
	for i, status := range models.TaskStatuses {
		cols[i] = v.renderColumn(i, status, colWidth)
	}

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		s.Title.Render(v.project.Name),
		"  ",
		s.Badge.Foreground(styles.ProjectStatusColor(v.project.Status)).Render(string(v.project.Status)),
		s.TitleMuted.Render(v.store.TeamName(v.project.TeamID)),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, cols...),
		renderHelpLine(s, v.width, boardHelp),
	)
	return styles.CenterView(content, v.width, v.height)
}

func (v *BoardView) renderColumn(i int, status models.TaskStatus, width int) string {
	s := v.styles
	tasks := v.columns[i]

	lines := []string{
		s.Title.Render(fmt.Sprintf("%s (%d)", columnTitles[status], len(tasks))),
		"",
	}
	for j, t := range tasks {
		card := s.Card
		if i == v.col && j == v.rows[i] {
			card = s.CardFocus
		}
		meta := s.Badge.Foreground(styles.PriorityColor(t.Priority)).Render(string(t.Priority))
		if t.Assignee != "" {
			meta += s.TitleMuted.Render(t.Assignee)
		}
		lines = append(lines, card.Width(width).Render(t.Title), " "+meta, "")
	}
	if len(tasks) == 0 {
		lines = append(lines, s.TitleMuted.Render("No tasks"))
	}

	col := s.Column
	if i == v.col {
		col = s.ColumnFocus
	}
	return col.Width(width + 2).Height(max(v.height-8, 5)).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
