package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/pm/internal/models"
	"github.com/tgienger/pm/internal/store"
	"github.com/tgienger/pm/internal/ui/keys"
	"github.com/tgienger/pm/internal/ui/styles"
)

type projectItem struct {
	project  models.Project
	teamName string
	done     int
	total    int
}

func (i projectItem) Title() string { return i.project.Name }
func (i projectItem) Description() string {
	desc := fmt.Sprintf("%s • %s priority • %d/%d tasks done",
		i.teamName, i.project.Priority, i.done, i.total)
	if i.project.Description != "" {
		desc += " • " + i.project.Description
	}
	return desc
}
func (i projectItem) FilterValue() string { return i.project.Name }
func (i projectItem) Badge() (string, lipgloss.Color) {
	return string(i.project.Status), styles.ProjectStatusColor(i.project.Status)
}

type projectsLoadedMsg struct {
	teamID string
	query  string
	items  []list.Item
	teams  []models.Team
}

// ProjectListView lists projects, narrowed by team and a text query
type ProjectListView struct {
	store    *store.Store
	list     list.Model
	delegate *rowDelegate
	query    textinput.Model
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int
	loaded   bool

	teams      []models.Team
	teamFilter string // empty means all teams

	editing *form
	editID  string

	confirm *confirmDialog

	showHelpPopup bool
}

func NewProjectListView(st *store.Store) *ProjectListView {
	s := styles.NewStyles()

	query := textinput.New()
	query.Placeholder = "Filter projects..."
	query.CharLimit = 100

	delegate := &rowDelegate{styles: s, width: 80}

	return &ProjectListView{
		store:    st,
		list:     newRowList("Projects", s, delegate),
		delegate: delegate,
		query:    query,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
	}
}

func (v *ProjectListView) Init() tea.Cmd {
	return v.loadProjects()
}

// loadProjects snapshots the filters so the command does not read the view
func (v *ProjectListView) loadProjects() tea.Cmd {
	st, teamID, query := v.store, v.teamFilter, v.query.Value()
	return func() tea.Msg {
		projects := st.FilterProjects(teamID, query)
		items := make([]list.Item, len(projects))
		for i, p := range projects {
			done, total := st.ProjectProgress(p.ID)
			items[i] = projectItem{
				project:  p,
				teamName: st.TeamName(p.TeamID),
				done:     done,
				total:    total,
			}
		}
		return projectsLoadedMsg{teamID: teamID, query: query, items: items, teams: st.Teams()}
	}
}

func (v *ProjectListView) Capturing() bool {
	return v.editing != nil || v.query.Focused()
}

func (v *ProjectListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.query.Width = clamp(contentWidth-20, 10, 40)
		v.list.SetSize(contentWidth-4, msg.Height-8)
		return v, nil

	case projectsLoadedMsg:
		// drop results for filters the user has since changed
		if msg.teamID != v.teamFilter || msg.query != v.query.Value() {
			return v, nil
		}
		v.list.SetItems(msg.items)
		v.teams = msg.teams
		v.loaded = true
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
		if v.query.Focused() {
			return v.updateQuery(msg)
		}

		switch {
		case key.Matches(msg, v.keys.Help):
			v.showHelpPopup = true
			return v, nil
		case msg.String() == "f":
			v.query.Focus()
			return v, textinput.Blink
		case key.Matches(msg, v.keys.Filter):
			v.teamFilter = v.nextTeam()
			return v, v.loadProjects()
		case key.Matches(msg, v.keys.New):
			return v, v.openForm(nil)
		case key.Matches(msg, v.keys.Edit):
			if item, ok := v.list.SelectedItem().(projectItem); ok {
				return v, v.openForm(&item.project)
			}
			return v, nil
		case key.Matches(msg, v.keys.Enter):
			if item, ok := v.list.SelectedItem().(projectItem); ok {
				return v, func() tea.Msg {
					return OpenProject{Project: item.project}
				}
			}
			return v, nil
		case key.Matches(msg, v.keys.Delete):
			if item, ok := v.list.SelectedItem().(projectItem); ok {
				v.confirm = &confirmDialog{
					title:  "Delete Project?",
					target: item.project.ID,
					lines: []string{
						fmt.Sprintf("Are you sure you want to delete %q?", item.project.Name),
						"Its tasks are kept.",
					},
				}
			}
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// nextTeam cycles all teams, then each team in stored order
func (v *ProjectListView) nextTeam() string {
	if len(v.teams) == 0 {
		return ""
	}
	if v.teamFilter == "" {
		return v.teams[0].ID
	}
	for i, t := range v.teams {
		if t.ID == v.teamFilter && i+1 < len(v.teams) {
			return v.teams[i+1].ID
		}
	}
	return ""
}

func (v *ProjectListView) updateQuery(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.query.Reset()
		v.query.Blur()
		return v, v.loadProjects()
	case key.Matches(msg, v.keys.Enter):
		v.query.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.query, cmd = v.query.Update(msg)
	return v, tea.Batch(cmd, v.loadProjects())
}

func (v *ProjectListView) openForm(project *models.Project) tea.Cmd {
	teamIDs := []string{""}
	teamNames := []string{"No team"}
	for _, t := range v.teams {
		teamIDs = append(teamIDs, t.ID)
		teamNames = append(teamNames, t.Name)
	}

	p := models.Project{TeamID: v.teamFilter, Status: models.ProjectPlanning, Priority: models.PriorityMedium}
	title, submit := "New Project", "Create"
	v.editID = ""
	if project != nil {
		p = *project
		title, submit = "Edit Project", "Save"
		v.editID = project.ID
	}

	v.editing = newForm(title, submit).
		addInput("name", "Name", "Project name", p.Name, 100).
		addInput("description", "Description", "Optional", p.Description, 500).
		addChoice("team", "Team", teamIDs, teamNames, p.TeamID).
		addChoice("status", "Status", stringsOf(models.ProjectStatuses), nil, string(p.Status)).
		addChoice("priority", "Priority", stringsOf(models.Priorities), nil, string(p.Priority))
	return v.editing.start()
}

func (v *ProjectListView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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

func (v *ProjectListView) save() tea.Cmd {
	f := v.editing
	name := f.value("name")
	if name == "" {
		f.setErrors(map[string]string{"name": "is required"})
		return nil
	}
	description := f.value("description")
	teamID := f.value("team")
	status := models.ProjectStatus(f.value("status"))
	priority := models.Priority(f.value("priority"))

	if v.editID == "" {
		project, err := v.store.AddProject(models.Project{
			Name:        name,
			Description: description,
			TeamID:      teamID,
			Status:      status,
			Priority:    priority,
		})
		if err != nil {
			return errCmd(err)
		}
		v.editing = nil
		return func() tea.Msg { return OpenProject{Project: *project} }
	}

	updated, err := v.store.UpdateProject(v.editID, models.ProjectPatch{
		Name:        &name,
		Description: &description,
		TeamID:      &teamID,
		Status:      &status,
		Priority:    &priority,
	})
	v.editing = nil
	if err != nil {
		return errCmd(err)
	}
	if updated == nil {
		return tea.Batch(v.loadProjects(), statusCmd("Project no longer exists"))
	}
	return tea.Batch(v.loadProjects(), statusCmd("Project saved"))
}

func (v *ProjectListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	answered, yes := confirmAnswer(msg.String())
	if !answered {
		return v, nil
	}
	id := v.confirm.target
	v.confirm = nil
	if !yes {
		return v, nil
	}
	if err := v.store.DeleteProject(id); err != nil {
		return v, errCmd(err)
	}
	return v, v.loadProjects()
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

var projectHelp = []helpEntry{
	{"↵", "open board"},
	{"n", "new"},
	{"e", "edit"},
	{"d", "del"},
	{"t", "team"},
	{"f", "filter"},
}

func (v *ProjectListView) View() string {
	switch {
	case v.showHelpPopup:
		return renderHelpPopup(v.styles, v.width, v.height, projectHelp)
	case v.confirm != nil:
		return v.confirm.view(v.styles, v.width, v.height)
	case v.editing != nil:
		return v.editing.view(v.styles, v.width, v.height)
	case !v.loaded:
		return v.styles.TitleMuted.Render("Loading...")
	}

	s := v.styles
	team := "All teams"
	if v.teamFilter != "" {
		team = v.store.TeamName(v.teamFilter)
	}
	queryStyle := s.Input
	if v.query.Focused() {
		queryStyle = s.InputFocused
	}
	filterBar := lipgloss.JoinHorizontal(lipgloss.Center,
		queryStyle.Render(v.query.View()),
		"  ",
		s.Badge.Foreground(styles.Current.Secondary).Render(team),
	)

	var body string
	if len(v.list.Items()) == 0 {
		hint := "Press 'n' to create your first project"
		if v.teamFilter != "" || strings.TrimSpace(v.query.Value()) != "" {
			hint = "No projects match the current filter"
		}
		body = lipgloss.Place(styles.ContentWidth(v.width), max(v.height-8, 1),
			lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center,
				s.Title.Render("No Projects"),
				"",
				s.TitleMuted.Render(hint),
			),
		)
	} else {
		body = v.list.View()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		filterBar,
		body,
		renderHelpLine(s, v.width, projectHelp),
	)
	return styles.CenterView(content, v.width, v.height)
}
