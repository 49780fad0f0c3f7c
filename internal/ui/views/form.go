package views

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/tboard/internal/forms"
	"github.com/tgienger/tboard/internal/ui/keys"
	"github.com/tgienger/tboard/internal/ui/styles"
)

type fieldKind int

const (
	textField fieldKind = iota
	areaField
	choiceField
	multiField
)

type option struct {
	value  string
	label  string
	swatch lipgloss.Color
}

type field struct {
	key     string
	label   string
	kind    fieldKind
	input   textinput.Model
	area    textarea.Model
	options []option
	cursor  int
	picked  map[string]bool
}

func (f *field) blur() {
	f.input.Blur()
	f.area.Blur()
}

func (f *field) focus() tea.Cmd {
	switch f.kind {
	case textField:
		return f.input.Focus()
	case areaField:
		return f.area.Focus()
	}
	return nil
}

// formCancelled is emitted when a form is closed without saving
type formCancelled struct{}

// Form edits one entity. It validates on submit and emits the request built
// by its submit func as a message; it never writes to a store.
type Form struct {
	title  string
	fields []*field
	focus  int // len(fields) is the save button
	errs   *forms.ValidationError
	submit func(*Form) (tea.Msg, error)
	styles *styles.Styles
	keys   keys.KeyMap
	width  int
}

func newForm(s *styles.Styles, title string, submit func(*Form) (tea.Msg, error)) *Form {
	return &Form{
		title:  title,
		submit: submit,
		styles: s,
		keys:   keys.DefaultKeyMap(),
		width:  50,
	}
}

func (f *Form) addText(name, label, placeholder, value string) {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 200
	in.SetValue(value)
	f.fields = append(f.fields, &field{key: name, label: label, kind: textField, input: in})
}

func (f *Form) addArea(name, label, placeholder, value string) {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.CharLimit = 1000
	ta.SetWidth(f.width)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.SetValue(value)
	f.fields = append(f.fields, &field{key: name, label: label, kind: areaField, area: ta})
}

func (f *Form) addChoice(name, label string, opts []option, value string) {
	fl := &field{key: name, label: label, kind: choiceField, options: opts}
	for i, o := range opts {
		if o.value == value {
			fl.cursor = i
		}
	}
	f.fields = append(f.fields, fl)
}

func (f *Form) addMulti(name, label string, opts []option, picked []string) {
	fl := &field{key: name, label: label, kind: multiField, options: opts, picked: map[string]bool{}}
	for _, id := range picked {
		fl.picked[id] = true
	}
	f.fields = append(f.fields, fl)
}

func (f *Form) lookup(name string) *field {
	for _, fl := range f.fields {
		if fl.key == name {
			return fl
		}
	}
	return nil
}

// value returns the text or the selected choice of a field
func (f *Form) value(name string) string {
	fl := f.lookup(name)
	if fl == nil {
		return ""
	}
	switch fl.kind {
	case textField:
		return fl.input.Value()
	case areaField:
		return fl.area.Value()
	case choiceField:
		if len(fl.options) == 0 {
			return ""
		}
		return fl.options[fl.cursor].value
	}
	return ""
}

// values returns the picked options of a multi-select, in option order
func (f *Form) values(name string) []string {
	out := []string{}
	fl := f.lookup(name)
	if fl == nil {
		return out
	}
	for _, o := range fl.options {
		if fl.picked[o.value] {
			out = append(out, o.value)
		}
	}
	return out
}

// set replaces the text of a text field or area
func (f *Form) set(name, value string) {
	fl := f.lookup(name)
	if fl == nil {
		return
	}
	switch fl.kind {
	case textField:
		fl.input.SetValue(value)
	case areaField:
		fl.area.SetValue(value)
	}
}

// SetWidth sizes the inputs
func (f *Form) SetWidth(w int) {
	f.width = w
	for _, fl := range f.fields {
		fl.input.Width = w - 4
		fl.area.SetWidth(w - 2)
	}
}

// Init focuses the first field
func (f *Form) Init() tea.Cmd {
	return f.setFocus(0)
}

func (f *Form) setFocus(i int) tea.Cmd {
	n := len(f.fields) + 1
	f.focus = (i%n + n) % n
	for _, fl := range f.fields {
		fl.blur()
	}
	if f.focus < len(f.fields) {
		return f.fields[f.focus].focus()
	}
	return nil
}

func (f *Form) current() *field {
	if f.focus < len(f.fields) {
		return f.fields[f.focus]
	}
	return nil
}

// Update handles keys while the form is open
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.forward(msg)
	}

	fl := f.current()
	switch {
	case key.Matches(km, f.keys.Back):
		return func() tea.Msg { return formCancelled{} }

	case key.Matches(km, f.keys.Save):
		return f.Submit()

	case key.Matches(km, f.keys.Tab):
		return f.setFocus(f.focus + 1)

	case key.Matches(km, f.keys.ShiftTab):
		return f.setFocus(f.focus - 1)

	case key.Matches(km, f.keys.Enter):
		if fl == nil {
			return f.Submit()
		}
		switch fl.kind {
		case multiField:
			fl.toggle()
			return nil
		case areaField:
			// newlines
		default:
			return f.setFocus(f.focus + 1)
		}
	}

	if fl != nil {
		switch fl.kind {
		case choiceField:
			switch {
			case key.Matches(km, f.keys.Left), key.Matches(km, f.keys.Up):
				fl.cursor = (fl.cursor - 1 + len(fl.options)) % max(len(fl.options), 1)
			case key.Matches(km, f.keys.Right), key.Matches(km, f.keys.Down), key.Matches(km, f.keys.Toggle):
				fl.cursor = (fl.cursor + 1) % max(len(fl.options), 1)
			}
			return nil
		case multiField:
			switch {
			case key.Matches(km, f.keys.Up):
				if fl.cursor > 0 {
					fl.cursor--
				}
			case key.Matches(km, f.keys.Down):
				if fl.cursor < len(fl.options)-1 {
					fl.cursor++
				}
			case key.Matches(km, f.keys.Toggle):
				fl.toggle()
			}
			return nil
		}
	}
	return f.forward(msg)
}

func (f *Form) forward(msg tea.Msg) tea.Cmd {
	fl := f.current()
	if fl == nil {
		return nil
	}
	var cmd tea.Cmd
	switch fl.kind {
	case textField:
		fl.input, cmd = fl.input.Update(msg)
	case areaField:
		fl.area, cmd = fl.area.Update(msg)
	}
	return cmd
}

func (fl *field) toggle() {
	if fl.cursor >= len(fl.options) {
		return
	}
	id := fl.options[fl.cursor].value
	fl.picked[id] = !fl.picked[id]
}

// Submit validates the form. Invalid fields are kept for rendering and no
// command is returned.
func (f *Form) Submit() tea.Cmd {
	msg, err := f.submit(f)
	if err != nil {
		var verr *forms.ValidationError
		if errors.As(err, &verr) {
			f.errs = verr
		}
		return nil
	}
	f.errs = nil
	return func() tea.Msg { return msg }
}

// View renders the form
func (f *Form) View() string {
	s := f.styles
	rows := []string{s.Title.Render(f.title), ""}

	for i, fl := range f.fields {
		box := s.Input
		if i == f.focus {
			box = s.InputFocused
		}
		rows = append(rows, s.Label.Render(fl.label+":"))

		var body string
		switch fl.kind {
		case textField:
			body = box.Width(f.width).Render(fl.input.View())
		case areaField:
			body = box.Render(fl.area.View())
		case choiceField:
			body = box.Width(f.width).Render(fl.renderChoice())
		case multiField:
			body = box.Width(f.width).Render(fl.renderMulti(s, i == f.focus))
		}
		rows = append(rows, body)

		if msg := f.errs.For(fl.key); msg != "" {
			rows = append(rows, s.Error.Render(msg))
		}
	}

	btn := s.Button
	if f.focus == len(f.fields) {
		btn = s.ButtonFocused
	}
	rows = append(rows,
		"",
		btn.Render(" Save "),
		"",
		s.TitleMuted.Render("Tab: next • ←→: choose • Space: toggle • Ctrl+S: save • Esc: cancel"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (fl *field) renderChoice() string {
	if len(fl.options) == 0 {
		return ""
	}
	o := fl.options[fl.cursor]
	label := o.label
	if o.swatch != "" {
		label = lipgloss.NewStyle().Foreground(o.swatch).Render("●") + " " + label
	}
	return "◀ " + label + " ▶"
}

func (fl *field) renderMulti(s *styles.Styles, focused bool) string {
	if len(fl.options) == 0 {
		return s.TitleMuted.Render("Nothing to choose from")
	}
	items := make([]string, 0, len(fl.options))
	for i, o := range fl.options {
		checkbox := "[ ]"
		if fl.picked[o.value] {
			checkbox = "[x]"
		}
		text := checkbox + " "
		if o.swatch != "" {
			text += lipgloss.NewStyle().Foreground(o.swatch).Render("●") + " "
		}
		text += o.label

		if focused && i == fl.cursor {
			items = append(items, s.ListSelected.Render(text))
		} else {
			items = append(items, s.ListItem.Render(text))
		}
	}
	return strings.Join(items, "\n")
}

// paletteOptions lists the colour palette as choices
func paletteOptions() []option {
	opts := make([]option, len(styles.PaletteNames))
	for i, name := range styles.PaletteNames {
		opts[i] = option{value: name, label: name, swatch: styles.Palette[name]}
	}
	return opts
}
