package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/pm/internal/models"
	"github.com/tgienger/pm/internal/store"
	"github.com/tgienger/pm/internal/ui/keys"
	"github.com/tgienger/pm/internal/ui/styles"
)

// searchScopes cycle with tab; the empty kind searches everything
var searchScopes = []models.Kind{"", models.KindTeam, models.KindProject, models.KindTask}

type searchHit struct {
	kind    models.Kind
	id      string
	title   string
	detail  string
	project *models.Project
}

type searchResultsMsg struct {
	query string
	scope int
	hits  []searchHit
	total int
}

// SearchView runs one query over teams, projects and tasks as the user types
type SearchView struct {
	store  *store.Store
	input  textinput.Model
	styles *styles.Styles
	keys   keys.KeyMap
	width  int
	height int

	scope  int
	hits   []searchHit
	total  int
	cursor int
}

func NewSearchView(st *store.Store) *SearchView {
	input := textinput.New()
	input.Placeholder = "Search teams, projects and tasks..."
	input.CharLimit = 100

	return &SearchView{
		store:  st,
		input:  input,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
	}
}

func (v *SearchView) Init() tea.Cmd {
	v.input.Focus()
	return tea.Batch(textinput.Blink, v.search())
}

func (v *SearchView) Capturing() bool { return v.input.Focused() }

// search snapshots the query and scope for the background command
func (v *SearchView) search() tea.Cmd {
	st, query, scope := v.store, v.input.Value(), v.scope
	return func() tea.Msg {
		results := st.SearchAll(query).Only(searchScopes[scope])

		hits := make([]searchHit, 0, results.Total())
		for _, t := range results.Teams {
			hits = append(hits, searchHit{
				kind:   models.KindTeam,
				id:     t.ID,
				title:  t.Name,
				detail: fmt.Sprintf("%d members", len(t.Members)),
			})
		}
		for _, p := range results.Projects {
			hits = append(hits, searchHit{
				kind:    models.KindProject,
				id:      p.ID,
				title:   p.Name,
				detail:  st.TeamName(p.TeamID),
				project: &p,
			})
		}
		for _, t := range results.Tasks {
			hit := searchHit{
				kind:   models.KindTask,
				id:     t.ID,
				title:  t.Title,
				detail: st.ProjectName(t.ProjectID),
			}
			if p, ok := st.Project(t.ProjectID); ok {
				hit.project = p
			}
			hits = append(hits, hit)
		}
		return searchResultsMsg{query: query, scope: scope, hits: hits, total: results.Total()}
	}
}

func (v *SearchView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.input.Width = clamp(styles.ContentWidth(msg.Width)-10, 10, 60)
		return v, nil

	case searchResultsMsg:
		// drop results of a query or scope the user has moved past
		if msg.query != v.input.Value() || msg.scope != v.scope {
			return v, nil
		}
		v.hits = msg.hits
		v.total = msg.total
		v.cursor = clamp(v.cursor, 0, max(len(v.hits)-1, 0))
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Tab):
			v.scope = (v.scope + 1) % len(searchScopes)
			return v, v.search()
		case key.Matches(msg, v.keys.ShiftTab):
			v.scope = (v.scope + len(searchScopes) - 1) % len(searchScopes)
			return v, v.search()
		case msg.String() == "up":
			if v.cursor > 0 {
				v.cursor--
			}
			return v, nil
		case msg.String() == "down":
			if v.cursor < len(v.hits)-1 {
				v.cursor++
			}
			return v, nil
		case key.Matches(msg, v.keys.Enter):
			return v, v.open()
		case key.Matches(msg, v.keys.Back):
			if v.input.Focused() {
				v.input.Blur()
				return v, nil
			}
		}

		if !v.input.Focused() {
			if msg.String() == "i" {
				v.input.Focus()
				return v, textinput.Blink
			}
			return v, nil
		}

		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, tea.Batch(cmd, v.search())
	}
	return v, nil
}

// open jumps to the record under the cursor
func (v *SearchView) open() tea.Cmd {
	if len(v.hits) == 0 {
		return nil
	}
	hit := v.hits[v.cursor]
	switch {
	case hit.kind == models.KindTeam:
		return func() tea.Msg { return ShowTeams{} }
	case hit.project != nil:
		project := *hit.project
		return func() tea.Msg { return OpenProject{Project: project} }
	}
	return statusCmd("The task's project no longer exists")
}

func (v *SearchView) View() string {
	s := v.styles

	tabs := make([]string, len(searchScopes))
	for i, scope := range searchScopes {
		label := "All"
		switch scope {
		case models.KindTeam:
			label = "Teams"
		case models.KindProject:
			label = "Projects"
		case models.KindTask:
			label = "Tasks"
		}
		if i == v.scope {
			tabs[i] = s.TabActive.Render(label)
		} else {
			tabs[i] = s.Tab.Render(label)
		}
	}

	inputStyle := s.Input
	if v.input.Focused() {
		inputStyle = s.InputFocused
	}

	rows := []string{
		s.Title.Render("Search"),
		"",
		inputStyle.Render(v.input.View()),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		"",
	}

	switch {
	case v.input.Value() == "":
		rows = append(rows, s.TitleMuted.Render("Type to search"))
	case len(v.hits) == 0:
		rows = append(rows, s.TitleMuted.Render("No results"))
	default:
		rows = append(rows, s.TitleMuted.Render(fmt.Sprintf("%d results", v.total)), "")
		width := max(styles.ContentWidth(v.width)-4, 20)
		limit := max(v.height-14, 3)
		start := 0
		if v.cursor >= limit {
			start = v.cursor - limit + 1
		}
		for i := start; i < len(v.hits) && i < start+limit; i++ {
			hit := v.hits[i]
			style := s.ListItem
			if i == v.cursor {
				style = s.ListSelected
			}
			rows = append(rows, style.Width(width).Render(
				s.Badge.Foreground(styles.Current.Secondary).Render(string(hit.kind))+
					hit.title+"  "+s.TitleMuted.Render(hit.detail),
			))
		}
	}

	rows = append(rows, renderHelpLine(s, v.width, []helpEntry{
		{"tab", "scope"},
		{"↑/↓", "select"},
		{"↵", "open"},
		{"esc", "leave input"},
	}))

	return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left, rows...), v.width, v.height)
}
