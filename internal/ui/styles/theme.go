package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme represents a color scheme for the application
type Theme struct {
	Name string

	// Base colors
	Background    lipgloss.Color
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// UI element colors
	Border      lipgloss.Color
	BorderFocus lipgloss.Color
	Selection   lipgloss.Color
	Cursor      lipgloss.Color
}

// TokyoNight is the default color theme
var TokyoNight = Theme{
	Name: "Tokyo Night",

	Background:    lipgloss.Color("#1a1b26"),
	Foreground:    lipgloss.Color("#c0caf5"),
	ForegroundDim: lipgloss.Color("#565f89"),

	Primary:   lipgloss.Color("#7aa2f7"),
	Secondary: lipgloss.Color("#bb9af7"),
	Accent:    lipgloss.Color("#7dcfff"),

	Success: lipgloss.Color("#9ece6a"),
	Warning: lipgloss.Color("#e0af68"),
	Error:   lipgloss.Color("#f7768e"),
	Info:    lipgloss.Color("#7aa2f7"),

	Border:      lipgloss.Color("#3b4261"),
	BorderFocus: lipgloss.Color("#7aa2f7"),
	Selection:   lipgloss.Color("#33467c"),
	Cursor:      lipgloss.Color("#c0caf5"),
}

// Current holds the active theme
var Current = TokyoNight

// Palette maps the colour names stored on projects and tags to hex values
var Palette = map[string]lipgloss.Color{
	"red":    lipgloss.Color("#f7768e"),
	"orange": lipgloss.Color("#ff9e64"),
	"amber":  lipgloss.Color("#e0af68"),
	"yellow": lipgloss.Color("#f4d35e"),
	"lime":   lipgloss.Color("#b9f27c"),
	"green":  lipgloss.Color("#9ece6a"),
	"teal":   lipgloss.Color("#1abc9c"),
	"sky":    lipgloss.Color("#7dcfff"),
	"blue":   lipgloss.Color("#7aa2f7"),
	"purple": lipgloss.Color("#9d7cd8"),
	"violet": lipgloss.Color("#bb9af7"),
	"pink":   lipgloss.Color("#ff79c6"),
	"rose":   lipgloss.Color("#ff5f87"),
	"slate":  lipgloss.Color("#737aa2"),
	"gray":   lipgloss.Color("#565f89"),
	"black":  lipgloss.Color("#414868"),
}

// PaletteNames lists the palette in picker order
var PaletteNames = []string{
	"red", "orange", "amber", "yellow", "lime", "green", "teal", "sky",
	"blue", "purple", "violet", "pink", "rose", "slate", "gray", "black",
}

// ColorFor resolves a palette name, falling back to the dim foreground
func ColorFor(name string) lipgloss.Color {
	if c, ok := Palette[name]; ok {
		return c
	}
	return Current.ForegroundDim
}

// Blend mixes from into to; t=0 yields from and t=1 yields to
func Blend(from, to lipgloss.Color, t float64) lipgloss.Color {
	a, err := colorful.Hex(string(from))
	if err != nil {
		return to
	}
	b, err := colorful.Hex(string(to))
	if err != nil {
		return to
	}
	if t <= 0 {
		return from
	}
	if t >= 1 {
		return to
	}
	return lipgloss.Color(a.BlendLab(b, t).Clamped().Hex())
}

// MaxWidth is the maximum content width for the app (classic terminal width)
const MaxWidth = 80

// ContentWidth returns the actual content width to use (min of terminal width and MaxWidth)
func ContentWidth(terminalWidth int) int {
	if terminalWidth > MaxWidth {
		return MaxWidth
	}
	return terminalWidth
}

// CenterView wraps content and centers it horizontally if terminal is wider than MaxWidth
func CenterView(content string, terminalWidth, terminalHeight int) string {
	if terminalWidth <= MaxWidth {
		return content
	}
	return lipgloss.Place(terminalWidth, terminalHeight,
		lipgloss.Center, lipgloss.Top,
		content,
	)
}

// Styles holds all the pre-computed styles for the UI
type Styles struct {
	// Titles
	Title      lipgloss.Style
	TitleMuted lipgloss.Style

	// Lists
	List         lipgloss.Style
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style

	// Filter bar
	FilterBar lipgloss.Style

	// Buttons
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ButtonPrimary lipgloss.Style

	// Tags
	Tag lipgloss.Style

	// Task card content
	TaskTitle    lipgloss.Style
	TaskPriority lipgloss.Style

	// Input fields
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Help text
	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Board
	Tab          lipgloss.Style
	TabActive    lipgloss.Style
	ColumnTitle  lipgloss.Style
	ColumnActive lipgloss.Style // title of the column under a drag
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardGrabbed  lipgloss.Style
	Indicator    lipgloss.Style
	DropZone     lipgloss.Style
	DropZoneHot  lipgloss.Style

	// Forms
	Label lipgloss.Style
	Error lipgloss.Style
}

// NewStyles creates styles based on the current theme
func NewStyles() *Styles {
	t := Current

	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		TitleMuted: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		List: lipgloss.NewStyle().
			Padding(1, 2),

		ListItem: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 2),

		ListSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(0, 2).
			Bold(true),

		FilterBar: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),

		Button: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2),

		ButtonFocused: lipgloss.NewStyle().
			Foreground(t.Primary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 2).
			Bold(true),

		ButtonPrimary: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Padding(0, 2).
			Bold(true),

		Tag: lipgloss.NewStyle().
			Padding(0, 1).
			MarginRight(1),

		TaskTitle: lipgloss.NewStyle().
			Foreground(t.Foreground),

		TaskPriority: lipgloss.NewStyle().
			Foreground(t.Warning).
			Bold(true),

		Input: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(1, 2),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		Tab: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(0, 2),

		TabActive: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Padding(0, 2).
			Bold(true),

		ColumnTitle: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Bold(true),

		ColumnActive: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Background(t.Selection).
			Bold(true),

		Card: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		CardSelected: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1),

		CardGrabbed: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Border(lipgloss.NormalBorder()).
			BorderForeground(t.Warning).
			Padding(0, 1),

		Indicator: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),

		DropZone: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Align(lipgloss.Center),

		DropZoneHot: lipgloss.NewStyle().
			Foreground(t.Error).
			Border(lipgloss.ThickBorder()).
			BorderForeground(t.Error).
			Align(lipgloss.Center).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		Error: lipgloss.NewStyle().
			Foreground(t.Error),
	}
}
