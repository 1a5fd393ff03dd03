package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/pm/internal/ui/keys"
	"github.com/tgienger/pm/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// field is a text input, a multi-line area when area is set, or, when
// choices is set, a value cycled with left/right
type field struct {
	name    string
	label   string
	input   textinput.Model
	area    *textarea.Model
	choices []string
	labels  []string
	choice  int
}

func (f *field) isChoice() bool { return f.choices != nil }

func (f *field) text() string {
	if f.area != nil {
		return f.area.Value()
	}
	return f.input.Value()
}

// form is a vertical stack of fields followed by a submit button.
// Focus index len(fields) is the button.
type form struct {
	title  string
	submit string
	fields []*field
	focus  int
	errs   map[string]string
	err    string
	keys   keys.KeyMap
}

type formResult int

const (
	formEditing formResult = iota
	formSubmitted
	formCancelled
)

func newForm(title, submit string) *form {
	return &form{title: title, submit: submit, keys: keys.DefaultKeyMap()}
}

func (f *form) addInput(name, label, placeholder, value string, limit int) *form {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.SetValue(value)
	f.fields = append(f.fields, &field{name: name, label: label, input: in})
	return f
}

func (f *form) addSecret(name, label, placeholder string) *form {
	f.addInput(name, label, placeholder, "", 100)
	last := f.fields[len(f.fields)-1]
	last.input.EchoMode = textinput.EchoPassword
	last.input.EchoCharacter = '•'
	return f
}

// addArea adds a multi-line field; enter inserts a newline there
func (f *form) addArea(name, label, placeholder, value string, limit int) *form {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.CharLimit = limit
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(44)
	ta.SetValue(value)
	f.fields = append(f.fields, &field{name: name, label: label, area: &ta})
	return f
}

// addChoice adds a cycling field; labels may be nil to display the raw values
func (f *form) addChoice(name, label string, choices, labels []string, selected string) *form {
	if labels == nil {
		labels = choices
	}
	idx := 0
	for i, c := range choices {
		if c == selected {
			idx = i
		}
	}
	f.fields = append(f.fields, &field{name: name, label: label, choices: choices, labels: labels, choice: idx})
	return f
}

func (f *form) value(name string) string {
	for _, fl := range f.fields {
		if fl.name != name {
			continue
		}
		if fl.isChoice() {
			return fl.choices[fl.choice]
		}
		return strings.TrimSpace(fl.text())
	}
	return ""
}

// rawValue returns the untrimmed input, for passwords
func (f *form) rawValue(name string) string {
	for _, fl := range f.fields {
		if fl.name == name {
			return fl.text()
		}
	}
	return ""
}

func (f *form) setErrors(errs map[string]string) {
	f.errs = errs
}

func (f *form) start() tea.Cmd {
	f.focus = 0
	f.errs = nil
	f.err = ""
	f.updateFocus()
	return textinput.Blink
}

func (f *form) updateFocus() {
	for i, fl := range f.fields {
		switch {
		case fl.isChoice():
		case fl.area != nil && i == f.focus:
			fl.area.Focus()
		case fl.area != nil:
			fl.area.Blur()
		case i == f.focus:
			fl.input.Focus()
		default:
			fl.input.Blur()
		}
	}
}

func (f *form) update(msg tea.KeyMsg) (formResult, tea.Cmd) {
	n := len(f.fields) + 1

	switch {
	case key.Matches(msg, f.keys.Back):
		return formCancelled, nil

	case key.Matches(msg, f.keys.Save):
		return formSubmitted, nil

	case f.onArea() && msg.String() != "tab" && msg.String() != "shift+tab":
		var cmd tea.Cmd
		*f.fields[f.focus].area, cmd = f.fields[f.focus].area.Update(msg)
		return formEditing, cmd

	case key.Matches(msg, f.keys.ShiftTab), msg.String() == "up":
		f.focus = (f.focus + n - 1) % n
		f.updateFocus()
		return formEditing, nil

	case key.Matches(msg, f.keys.Tab), msg.String() == "down":
		f.focus = (f.focus + 1) % n
		f.updateFocus()
		return formEditing, nil

	case key.Matches(msg, f.keys.Enter):
		if f.focus == len(f.fields) {
			return formSubmitted, nil
		}
		f.focus++
		f.updateFocus()
		return formEditing, nil
	}

	if f.focus >= len(f.fields) {
		return formEditing, nil
	}

	fl := f.fields[f.focus]
	if fl.isChoice() {
		switch msg.String() {
		case "left", "h":
			fl.choice = (fl.choice + len(fl.choices) - 1) % len(fl.choices)
		case "right", "l", " ":
			fl.choice = (fl.choice + 1) % len(fl.choices)
		}
		return formEditing, nil
	}

	var cmd tea.Cmd
	fl.input, cmd = fl.input.Update(msg)
	return formEditing, cmd
}

func (f *form) onArea() bool {
	return f.focus < len(f.fields) && f.fields[f.focus].area != nil
}

func (f *form) view(s *styles.Styles, width, height int) string {
	contentWidth := styles.ContentWidth(width)
	inputWidth := clamp(contentWidth-6, 20, 50)

	rows := []string{s.Title.Render(f.title), ""}
	for i, fl := range f.fields {
		style := s.Input
		if i == f.focus {
			style = s.InputFocused
		}

		rows = append(rows, fl.label+":")
		switch {
		case fl.isChoice():
			rows = append(rows, style.Width(inputWidth).Render("◂ "+fl.labels[fl.choice]+" ▸"))
		case fl.area != nil:
			rows = append(rows, style.Width(inputWidth).Render(fl.area.View()))
		default:
			rows = append(rows, style.Width(inputWidth).Render(fl.input.View()))
		}
		if msg, ok := f.errs[fl.name]; ok {
			rows = append(rows, s.FieldError.Render(fmt.Sprintf("%s %s", fl.label, msg)))
		}
	}

	btn := s.Button
	if f.focus == len(f.fields) {
		btn = s.ButtonFocused
	}
	rows = append(rows, "", btn.Render(" "+f.submit+" "))
	if f.err != "" {
		rows = append(rows, "", s.FieldError.Render(f.err))
	}
	rows = append(rows, "", s.TitleMuted.Render("Tab: next • ←/→: change option • Ctrl+S: save • Esc: cancel"))

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, width, height)
}
