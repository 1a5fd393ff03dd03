package views

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/pm/internal/models"
	"github.com/tgienger/pm/internal/store"
	"github.com/tgienger/pm/internal/ui/keys"
	"github.com/tgienger/pm/internal/ui/styles"
)

const recentActivityLimit = 5

type dashboardLoadedMsg struct {
	stats    models.Stats
	activity []models.Activity
	projects []models.Project
}

// DashboardView shows counts, the newest records and quick-add forms
type DashboardView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	user     models.User
	stats    models.Stats
	activity []models.Activity
	projects []models.Project

	// quick add; nil when closed
	quick     *form
	quickKind models.Kind

	now func() time.Time
}

func NewDashboardView(st *store.Store, user models.User) *DashboardView {
	return &DashboardView{
		store:  st,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
		user:   user,
		now:    time.Now,
	}
}

func (v *DashboardView) Init() tea.Cmd {
	return v.load
}

func (v *DashboardView) load() tea.Msg {
	return dashboardLoadedMsg{
		stats:    v.store.Stats(),
		activity: v.store.RecentActivity(recentActivityLimit),
		projects: v.store.Projects(),
	}
}

// Capturing reports whether keystrokes go to a text field
func (v *DashboardView) Capturing() bool { return v.quick != nil }

func (v *DashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case dashboardLoadedMsg:
		v.stats = msg.stats
		v.activity = msg.activity
		v.projects = msg.projects
		return v, nil

	case tea.KeyMsg:
		if v.quick != nil {
			return v.updateQuickAdd(msg)
		}
		switch {
		case key.Matches(msg, v.keys.New):
			if len(v.projects) == 0 {
				return v, func() tea.Msg { return StatusMsg("Create a project first") }
			}
			ids := make([]string, len(v.projects))
			names := make([]string, len(v.projects))
			for i, p := range v.projects {
				ids[i], names[i] = p.ID, p.Name
			}
			v.quickKind = models.KindTask
			v.quick = newForm("Quick task", "Add").
				addInput("title", "Title", "What needs doing?", "", 200).
				addInput("description", "Description", "Optional", "", 500).
				addChoice("project", "Project", ids, names, "")
			return v, v.quick.start()
		case msg.String() == "p":
			v.quickKind = models.KindProject
			v.quick = newForm("Quick project", "Add").
				addInput("name", "Name", "Project name", "", 100).
				addInput("description", "Description", "Optional", "", 500)
			return v, v.quick.start()
		}
	}
	return v, nil
}

func (v *DashboardView) updateQuickAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result, cmd := v.quick.update(msg)
	switch result {
	case formCancelled:
		v.quick = nil
		return v, nil
	case formSubmitted:
		return v, v.saveQuickAdd()
	}
	return v, cmd
}

func (v *DashboardView) saveQuickAdd() tea.Cmd {
	var err error
	switch v.quickKind {
	case models.KindTask:
		title := v.quick.value("title")
		if title == "" {
			v.quick.setErrors(map[string]string{"title": "is required"})
			return nil
		}
		_, err = v.store.AddTask(models.Task{
			Title:       title,
			Description: v.quick.value("description"),
			ProjectID:   v.quick.value("project"),
			Priority:    models.PriorityMedium,
		})
	case models.KindProject:
		name := v.quick.value("name")
		if name == "" {
			v.quick.setErrors(map[string]string{"name": "is required"})
			return nil
		}
		_, err = v.store.AddProject(models.Project{
			Name:        name,
			Description: v.quick.value("description"),
			Status:      models.ProjectPlanning,
			Priority:    models.PriorityMedium,
		})
	}
	if err != nil {
		return errCmd(err)
	}
	v.quick = nil
	return v.load
}

func (v *DashboardView) greeting() string {
	hour := v.now().Hour()
	switch {
	case hour < 12:
		return "Good morning"
	case hour < 18:
		return "Good afternoon"
	}
	return "Good evening"
}

func (v *DashboardView) View() string {
	if v.quick != nil {
		return v.quick.view(v.styles, v.width, v.height)
	}

	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	cardWidth := clamp((contentWidth-8)/4, 12, 22)

	card := func(label string, n int) string {
		return s.Panel.Width(cardWidth).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				s.Title.Render(fmt.Sprintf("%d", n)),
				s.TitleMuted.Render(label),
			),
		)
	}

	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		card("tasks", v.stats.Tasks),
		card("projects", v.stats.Projects),
		card("teams", v.stats.Teams),
		card("pending", v.stats.PendingTasks),
	)

	rows := []string{s.Title.Render("Recent activity"), ""}
	if len(v.activity) == 0 {
		rows = append(rows, s.TitleMuted.Render("Nothing yet"))
	}
	for _, a := range v.activity {
		rows = append(rows, fmt.Sprintf("%s %s %s",
			s.Badge.Foreground(styles.Current.Secondary).Render(string(a.Kind)),
			a.Title,
			s.TitleMuted.Render(a.CreatedAt.Local().Format("Jan 2 15:04")),
		))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(fmt.Sprintf("%s, %s", v.greeting(), v.user.Name)),
		"",
		stats,
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		v.renderHelp(),
	)
	return styles.CenterView(content, v.width, v.height)
}

func (v *DashboardView) renderHelp() string {
	return v.styles.Help.Render(
		fmt.Sprintf("%s new task • %s new project • %s search • %s quit",
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("p"),
			v.styles.HelpKey.Render("/"),
			v.styles.HelpKey.Render("q"),
		),
	)
}
