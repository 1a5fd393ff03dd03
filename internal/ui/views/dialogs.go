package views

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/pm/internal/ui/styles"
)

// row is a list entry with a colored badge next to its title
type row interface {
	list.DefaultItem
	Badge() (string, lipgloss.Color)
}

type rowDelegate struct {
	styles *styles.Styles
	width  int
}

func (d *rowDelegate) Height() int                             { return 2 }
func (d *rowDelegate) Spacing() int                            { return 1 }
func (d *rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d *rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	r, ok := item.(row)
	if !ok {
		return
	}

	width := max(d.width-4, 20)

	titleStyle := d.styles.ListItem.Width(width)
	descStyle := d.styles.ListItem.Foreground(styles.Current.ForegroundDim).Width(width)
	if index == m.Index() {
		titleStyle = d.styles.ListSelected.Width(width)
		descStyle = d.styles.ListSelected.Foreground(styles.Current.ForegroundDim).Width(width)
	}

	title := r.Title()
	if badge, color := r.Badge(); badge != "" {
		title = d.styles.Badge.Foreground(color).Render(badge) + title
	}

	fmt.Fprintf(w, "%s\n%s", titleStyle.Render(title), descStyle.Render(r.Description()))
}

func newRowList(title string, s *styles.Styles, delegate *rowDelegate) list.Model {
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = s.Title
	// quitting is decided by the app, not the list
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	return l
}

// confirmDialog asks a yes/no question about a single record
type confirmDialog struct {
	title  string
	lines  []string
	target string
}

func (c *confirmDialog) view(s *styles.Styles, width, height int) string {
	rows := []string{s.Title.Foreground(styles.Current.Error).Render(c.title), ""}
	for _, l := range c.lines {
		rows = append(rows, s.TitleMuted.Render(l))
	}
	rows = append(rows, "",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(styles.ContentWidth(width), height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, rows...),
	)
	return styles.CenterView(centered, width, height)
}

// confirmAnswer reports whether key answers the dialog and with what
func confirmAnswer(key string) (answered, yes bool) {
	switch key {
	case "y", "Y":
		return true, true
	case "n", "N", "esc":
		return true, false
	}
	return false, false
}

type helpEntry struct {
	key  string
	desc string
}

func renderHelpPopup(s *styles.Styles, width, height int, entries []helpEntry) string {
	rows := []string{s.Title.Render("Keyboard Shortcuts"), ""}
	for _, e := range entries {
		rows = append(rows, s.HelpKey.Render(fmt.Sprintf("%-7s", e.key))+e.desc)
	}
	rows = append(rows, "", s.TitleMuted.Render("Press any key to close"))

	centered := lipgloss.Place(styles.ContentWidth(width), height,
		lipgloss.Center, lipgloss.Center,
		s.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)),
	)
	return styles.CenterView(centered, width, height)
}

// renderHelpLine shows the short help, or a hint to open the popup when narrow
func renderHelpLine(s *styles.Styles, width int, entries []helpEntry) string {
	contentWidth := styles.ContentWidth(width)
	if contentWidth > 0 && contentWidth < 50 {
		return s.Help.Render(s.HelpKey.Render("?") + " help")
	}
	line := ""
	for i, e := range entries {
		if i > 0 {
			line += " • "
		}
		line += s.HelpKey.Render(e.key) + " " + e.desc
	}
	return s.Help.Render(line)
}
