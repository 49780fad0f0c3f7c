package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding used by the views
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Enter    key.Binding
	Back     key.Binding
	Quit     key.Binding
	New      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Tab      key.Binding
	ShiftTab key.Binding
	Save     key.Binding
	Toggle   key.Binding
	Grab     key.Binding
	Filter   key.Binding
	Help     key.Binding

	// Navigation between top-level screens
	GoProjects key.Binding
	GoUsers    key.Binding
	GoTags     key.Binding
	GoSettings key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("↵", "select")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		ShiftTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous")),
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Grab:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		Filter:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),

		GoProjects: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "projects")),
		GoUsers:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "users")),
		GoTags:     key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "tags")),
		GoSettings: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "settings")),
	}
}
