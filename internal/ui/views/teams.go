package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/tgienger/pm/internal/models"
	"github.com/tgienger/pm/internal/store"
	"github.com/tgienger/pm/internal/ui/keys"
	"github.com/tgienger/pm/internal/ui/styles"
)

// teamColors are offered when creating a team
var teamColors = []string{"#FF6B35", "#4ECDC4", "#45B7D1", "#96CEB4", "#F7B731", "#A55EEA"}

type teamItem struct {
	team models.Team
}

func (i teamItem) Title() string { return i.team.Name }
func (i teamItem) Description() string {
	members := fmt.Sprintf("%d members", len(i.team.Members))
	if i.team.Description == "" {
		return members
	}
	return members + " • " + i.team.Description
}
func (i teamItem) FilterValue() string { return i.team.Name }
func (i teamItem) Badge() (string, lipgloss.Color) {
	return "●", lipgloss.Color(i.team.Color)
}

type teamsLoadedMsg struct {
	teams []models.Team
}

// TeamListView lists teams and edits them with their members
type TeamListView struct {
	store    *store.Store
	list     list.Model
	delegate *rowDelegate
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int
	loaded   bool

	// editing is nil unless the form is open; editID is empty when creating
	editing *form
	editID  string
	members []models.Member

	confirm *confirmDialog

	showHelpPopup bool
}

func NewTeamListView(st *store.Store) *TeamListView {
	s := styles.NewStyles()
	delegate := &rowDelegate{styles: s, width: 80}
	return &TeamListView{
		store:    st,
		list:     newRowList("Teams", s, delegate),
		delegate: delegate,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
	}
}

func (v *TeamListView) Init() tea.Cmd {
	return v.loadTeams
}

func (v *TeamListView) loadTeams() tea.Msg {
	return teamsLoadedMsg{teams: v.store.Teams()}
}

func (v *TeamListView) Capturing() bool { return v.editing != nil }

func (v *TeamListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, msg.Height-6)
		return v, nil

	case teamsLoadedMsg:
		items := make([]list.Item, len(msg.teams))
		for i, t := range msg.teams {
			items[i] = teamItem{team: t}
		}
		v.list.SetItems(items)
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

		switch {
		case key.Matches(msg, v.keys.Help):
			v.showHelpPopup = true
			return v, nil
		case key.Matches(msg, v.keys.New):
			return v, v.openForm(nil)
		case key.Matches(msg, v.keys.Edit), key.Matches(msg, v.keys.Enter):
			if item, ok := v.list.SelectedItem().(teamItem); ok {
				return v, v.openForm(&item.team)
			}
			return v, nil
		case key.Matches(msg, v.keys.Delete):
			if item, ok := v.list.SelectedItem().(teamItem); ok {
				v.confirm = &confirmDialog{
					title:  "Delete Team?",
					target: item.team.ID,
					lines: []string{
						fmt.Sprintf("Are you sure you want to delete %q?", item.team.Name),
						"Its projects stay and show as having no team.",
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

func (v *TeamListView) openForm(team *models.Team) tea.Cmd {
	if team == nil {
		v.editID = ""
		v.members = nil
		v.editing = newForm("New Team", "Create").
			addInput("name", "Name", "Team name", "", 100).
			addInput("description", "Description", "Optional", "", 300).
			addChoice("color", "Color", teamColors, nil, teamColors[0]).
			addInput("members", "Members", "Name/Role/email; ...", "", 1000)
		return v.editing.start()
	}

	colors := teamColors
	if !containsString(colors, team.Color) && team.Color != "" {
		colors = append(append([]string{}, teamColors...), team.Color)
	}
	v.editID = team.ID
	v.members = team.Members
	v.editing = newForm("Edit Team", "Save").
		addInput("name", "Name", "Team name", team.Name, 100).
		addInput("description", "Description", "Optional", team.Description, 300).
		addChoice("color", "Color", colors, nil, team.Color).
		addInput("members", "Members", "Name/Role/email; ...", formatMembers(team.Members), 1000)
	return v.editing.start()
}

func (v *TeamListView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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

func (v *TeamListView) save() tea.Cmd {
	f := v.editing
	name := f.value("name")
	if name == "" {
		f.setErrors(map[string]string{"name": "is required"})
		return nil
	}
	description := f.value("description")
	color := f.value("color")
	members := parseMembers(f.value("members"), v.members, uuid.NewString)

	if v.editID == "" {
		if _, err := v.store.AddTeam(models.Team{
			Name:        name,
			Description: description,
			Color:       color,
			Members:     members,
		}); err != nil {
			return errCmd(err)
		}
		v.editing = nil
		return tea.Batch(v.loadTeams, statusCmd("Team created"))
	}

	updated, err := v.store.UpdateTeam(v.editID, models.TeamPatch{
		Name:        &name,
		Description: &description,
		Color:       &color,
		Members:     members,
	})
	v.editing = nil
	if err != nil {
		return errCmd(err)
	}
	if updated == nil {
		return tea.Batch(v.loadTeams, statusCmd("Team no longer exists"))
	}
	return tea.Batch(v.loadTeams, statusCmd("Team saved"))
}

func (v *TeamListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	answered, yes := confirmAnswer(msg.String())
	if !answered {
		return v, nil
	}
	id := v.confirm.target
	v.confirm = nil
	if !yes {
		return v, nil
	}
	if err := v.store.DeleteTeam(id); err != nil {
		return v, errCmd(err)
	}
	return v, v.loadTeams
}

// parseMembers reads "Name/Role/email" entries separated by semicolons.
// A backslash escapes a separator inside a field. When an entry has more
// than three unescaped parts the email is taken from the right and the
// middle parts form the role. Members whose name matches a previous member
// keep that member's ID.
func parseMembers(text string, previous []models.Member, newID func() string) []models.Member {
	members := []models.Member{}
	for _, entry := range splitUnescaped(text, ';') {
		parts := splitUnescaped(entry, '/')
		for i := range parts {
			parts[i] = memberEscaper.unescape(strings.TrimSpace(parts[i]))
		}
		if parts[0] == "" {
			continue
		}

		m := models.Member{Name: parts[0]}
		switch rest := parts[1:]; {
		case len(rest) == 1:
			m.Role = rest[0]
		case len(rest) > 1:
			m.Role = strings.Join(rest[:len(rest)-1], "/")
			m.Email = rest[len(rest)-1]
		}

		m.ID = newID()
		for _, p := range previous {
			if strings.EqualFold(p.Name, m.Name) {
				m.ID = p.ID
				break
			}
		}
		members = append(members, m)
	}
	return members
}

func formatMembers(members []models.Member) string {
	entries := make([]string, len(members))
	for i, m := range members {
		fields := []string{
			memberEscaper.escape(m.Name),
			memberEscaper.escape(m.Role),
			memberEscaper.escape(m.Email),
		}
		entries[i] = strings.TrimRight(strings.Join(fields, "/"), "/")
	}
	return strings.Join(entries, "; ")
}

type escaper struct {
	esc, unesc *strings.Replacer
}

var memberEscaper = escaper{
	esc:   strings.NewReplacer(`\`, `\\`, "/", `\/`, ";", `\;`),
	unesc: strings.NewReplacer(`\\`, `\`, `\/`, "/", `\;`, ";"),
}

func (e escaper) escape(s string) string   { return e.esc.Replace(s) }
func (e escaper) unescape(s string) string { return e.unesc.Replace(s) }

// splitUnescaped splits s on sep, skipping separators preceded by a
// backslash. Escapes are kept so a later split still sees them.
func splitUnescaped(s string, sep byte) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case sep:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg(text) }
}

var teamHelp = []helpEntry{
	{"↵/e", "edit team"},
	{"n", "new team"},
	{"d", "delete team"},
	{"q", "quit"},
}

func (v *TeamListView) View() string {
	switch {
	case v.showHelpPopup:
		return renderHelpPopup(v.styles, v.width, v.height, teamHelp)
	case v.confirm != nil:
		return v.confirm.view(v.styles, v.width, v.height)
	case v.editing != nil:
		return v.editing.view(v.styles, v.width, v.height)
	case !v.loaded:
		return v.styles.TitleMuted.Render("Loading...")
	}

	if len(v.list.Items()) == 0 {
		s := v.styles
		content := lipgloss.JoinVertical(lipgloss.Center,
			s.Title.Render("No Teams"),
			"",
			s.TitleMuted.Render("Press 'n' to create your first team"),
			"",
			s.ButtonPrimary.Render(" New Team "),
		)
		centered := lipgloss.Place(styles.ContentWidth(v.width), v.height,
			lipgloss.Center, lipgloss.Center,
			content,
		)
		return styles.CenterView(centered, v.width, v.height)
	}

	content := v.list.View() + "\n" + renderHelpLine(v.styles, v.width, teamHelp)
	return styles.CenterView(content, v.width, v.height)
}
