package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/tboard/internal/board"
	"github.com/tgienger/tboard/internal/models"
	"github.com/tgienger/tboard/internal/ui/styles"
)

// Board geometry, in terminal cells. Every slot is one indicator row
// followed by one card.
const (
	cardHeight   = 4 // border, title, meta, border
	slotHeight   = cardHeight + 1
	boardTop     = 5 // title, tabs, blank, column title, rule
	dropZoneRows = 3
	helpRows     = 3
	columnGap    = 1
)

type columnLayout struct {
	status     models.Status
	left       int
	width      int
	ids        []string // every card of the column, in order
	offset     int      // index of the first visible card
	shown      []string
	indicators []board.Indicator
}

type boardLayout struct {
	columns []columnLayout
	cards   board.Snapshot
	visible int // cards per column that fit on screen
	zoneTop int
}

func (l boardLayout) column(status models.Status) (columnLayout, bool) {
	for _, c := range l.columns {
		if c.status == status {
			return c, true
		}
	}
	return columnLayout{}, false
}

// columnAt hit-tests the column area
func (l boardLayout) columnAt(x, y int) (columnLayout, bool) {
	if y < boardTop-2 || y >= l.zoneTop {
		return columnLayout{}, false
	}
	for _, c := range l.columns {
		if x >= c.left && x < c.left+c.width {
			return c, true
		}
	}
	return columnLayout{}, false
}

// cardAt hit-tests the visible cards
func (l boardLayout) cardAt(x, y int) (string, bool) {
	c, ok := l.columnAt(x, y)
	if !ok {
		return "", false
	}
	for _, id := range c.shown {
		box := l.cards[id]
		top := int(box.Top)
		if y >= top && y < top+cardHeight {
			return id, true
		}
	}
	return "", false
}

func (l boardLayout) inDropZone(y int) bool {
	return y >= l.zoneTop && y < l.zoneTop+dropZoneRows
}

// computeLayout places every card. offsets holds the scroll position of each
// column and is clamped in place.
func computeLayout(tasks []models.PopulatedTask, width, height int, offsets map[models.Status]int) boardLayout {
	n := len(models.BoardColumns)
	colWidth := max((width-(n-1)*columnGap)/n, 16)
	visible := max((height-boardTop-1-dropZoneRows-helpRows)/slotHeight, 1)

	l := boardLayout{
		cards:   board.Snapshot{},
		visible: visible,
		zoneTop: boardTop + visible*slotHeight + 1,
	}

	for i, status := range models.BoardColumns {
		c := columnLayout{status: status, left: i * (colWidth + columnGap), width: colWidth}
		for _, t := range tasks {
			if t.Status == status {
				c.ids = append(c.ids, t.ID)
			}
		}

		c.offset = clamp(offsets[status], 0, max(len(c.ids)-visible, 0))
		offsets[status] = c.offset
		end := min(c.offset+visible, len(c.ids))
		c.shown = c.ids[c.offset:end]

		c.indicators = board.ColumnIndicators(status, c.shown, boardTop, slotHeight)
		if end < len(c.ids) {
			// trailing indicator sits before the first card below the fold
			c.indicators[len(c.indicators)-1].Before = c.ids[end]
		}
		for k, id := range c.shown {
			l.cards[id] = board.Box{Top: float64(boardTop + k*slotHeight + 1), Left: float64(c.left)}
		}
		l.columns = append(l.columns, c)
	}
	return l
}

func (v *BoardView) renderBoard() string {
	s := v.styles
	l := v.layout
	now := v.deps.now()

	byID := make(map[string]models.PopulatedTask, len(v.tasks))
	for _, t := range v.tasks {
		byID[t.ID] = t
	}

	cols := make([]string, 0, len(l.columns))
	for ci, c := range l.columns {
		titleStyle := v.columnTitleStyle(c.status)
		title := fmt.Sprintf("%s (%d)", c.status.Label(), len(c.ids))
		if c.offset > 0 {
			title += fmt.Sprintf(" ↑%d", c.offset)
		}
		if hidden := len(c.ids) - c.offset - len(c.shown); hidden > 0 {
			title += fmt.Sprintf(" ↓%d", hidden)
		}

		rows := []string{
			titleStyle.Width(c.width).Render(lipgloss.NewStyle().MaxWidth(c.width).Render(title)),
			s.TitleMuted.Render(strings.Repeat("─", c.width)),
		}
		for _, id := range c.shown {
			rows = append(rows, v.renderIndicator(c, id))
			rows = append(rows, v.renderCard(byID[id], c.width, ci == v.col && v.selectedID() == id, now))
		}
		rows = append(rows, v.renderIndicator(c, c.indicators[len(c.indicators)-1].Before))

		body := lipgloss.JoinVertical(lipgloss.Left, rows...)
		cols = append(cols, lipgloss.NewStyle().
			Width(c.width).
			Height(2+l.visible*slotHeight+1).
			MaxHeight(2+l.visible*slotHeight+1).
			Render(body))
	}

	gap := strings.Repeat(" ", columnGap)
	joined := make([]string, 0, 2*len(cols))
	for i, c := range cols {
		if i > 0 {
			joined = append(joined, gap)
		}
		joined = append(joined, c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, joined...)
}

// columnTitleStyle highlights the column a card is being dragged over
func (v *BoardView) columnTitleStyle(status models.Status) lipgloss.Style {
	if v.drag.active() && v.drag.column == status {
		return v.styles.ColumnActive
	}
	return v.styles.ColumnTitle
}

func (v *BoardView) renderIndicator(c columnLayout, before string) string {
	if v.drag.active() && v.drag.column == c.status && v.drag.before == before {
		return v.styles.Indicator.Render(strings.Repeat("━", c.width))
	}
	return strings.Repeat(" ", c.width)
}

func (v *BoardView) renderCard(t models.PopulatedTask, width int, selected bool, now time.Time) string {
	s := v.styles
	inner := max(width-4, 4)
	clip := lipgloss.NewStyle().MaxWidth(inner)

	style := s.Card
	if selected {
		style = s.CardSelected
	}
	if v.drag.active() && v.drag.taskID == t.ID {
		style = s.CardGrabbed
	}

	title := t.Title
	if v.anim != nil {
		if d, ok := v.anim.Offset(t.ID, now); ok {
			style = style.BorderForeground(styles.Blend(styles.Current.Accent, styles.Current.Border, v.anim.Progress(now)))
			title = direction(d) + " " + title
		}
	}

	meta := []string{s.TaskPriority.Render(priorityMark(t.Priority))}
	for _, tag := range t.Tags {
		meta = append(meta, lipgloss.NewStyle().Foreground(styles.ColorFor(tag.Color)).Render("#"+tag.Name))
	}
	var initials []string
	for _, u := range t.AssignedUsers {
		initials = append(initials, u.Initials())
	}
	if len(initials) > 0 {
		meta = append(meta, s.TitleMuted.Render(strings.Join(initials, ",")))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		clip.Render(s.TaskTitle.Render(title)),
		clip.Render(strings.Join(meta, " ")),
	)
	return style.Width(width - 2).MaxHeight(cardHeight).Render(content)
}

// direction marks where an animating card came from
func direction(d board.Delta) string {
	switch {
	case d.DY > 0:
		return "↑"
	case d.DY < 0:
		return "↓"
	case d.DX > 0:
		return "←"
	default:
		return "→"
	}
}

func priorityMark(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return "!!!"
	case models.PriorityMedium:
		return "!!"
	default:
		return "!"
	}
}

func (v *BoardView) renderDropZone() string {
	style := v.styles.DropZone
	label := "✕ drag here to delete"
	if v.drag.overDelete {
		style = v.styles.DropZoneHot
		label = "✕ release to delete"
	}
	return style.Width(max(v.width-2, 10)).Render(label)
}
