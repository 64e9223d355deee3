package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/gridkit/pkg/engine"
	gerrors "github.com/matzehuels/gridkit/pkg/errors"
	"github.com/matzehuels/gridkit/pkg/grid"
	"github.com/matzehuels/gridkit/pkg/session"
)

// Play styles
var (
	playHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	playActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	playDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	playErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// PlayModel - Keyboard-driven drag and resize
// =============================================================================

// PlayModel is the bubbletea model that drives a grid engine from the
// keyboard. Arrow keys drag the selected item one cell per press and
// shift+arrows resize it; enter commits and esc cancels.
type PlayModel struct {
	Grid      *engine.Grid
	Cursor    int
	CellWidth int
	Commits   int
	Status    string
	Err       error
}

// NewPlayModel creates a play model for g.
func NewPlayModel(g *engine.Grid, cellWidth int) PlayModel {
	return PlayModel{Grid: g, CellWidth: cellWidth}
}

func (m PlayModel) Init() tea.Cmd {
	return nil
}

func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.Err = nil
	switch key.String() {
	case "q", "ctrl+c":
		if m.Grid.Session().Active() {
			m.handle(engine.Event{Phase: engine.PhaseCancel})
		}
		return m, tea.Quit
	case "tab":
		m.step(1)
	case "shift+tab":
		m.step(-1)
	case "left", "h":
		m.drag(-1, 0)
	case "right", "l":
		m.drag(1, 0)
	case "up", "k":
		m.drag(0, -1)
	case "down", "j":
		m.drag(0, 1)
	case "shift+left":
		m.resize(-1, 0)
	case "shift+right":
		m.resize(1, 0)
	case "shift+up":
		m.resize(0, -1)
	case "shift+down":
		m.resize(0, 1)
	case "enter":
		m.stop()
	case "esc":
		if m.Grid.Session().Active() {
			m.handle(engine.Event{Phase: engine.PhaseCancel})
			m.Status = "cancelled"
		}
	}
	return m, nil
}

// step moves the selection. The selection is fixed during an interaction.
func (m *PlayModel) step(d int) {
	n := len(m.Grid.Layout())
	if n == 0 || m.Grid.Session().Active() {
		return
	}
	m.Cursor = ((m.Cursor+d)%n + n) % n
}

// selected returns the id of the active item, or of the item under the cursor.
func (m PlayModel) selected() string {
	if s := m.Grid.Session(); s.Active() {
		return s.ItemID
	}
	l := m.Grid.Layout()
	if m.Cursor >= len(l) {
		return ""
	}
	return l[m.Cursor].ID
}

// cellStep returns the pixel distance between neighboring cells.
func (m PlayModel) cellStep() (dx, dy float64) {
	p := m.Grid.Env().Params
	colWidth := grid.ColumnWidth(p)
	return colWidth + p.Margin.X(), p.RowHeight.Resolve(colWidth) + p.Margin.Y()
}

func (m *PlayModel) drag(cols, rows int) {
	s := m.Grid.Session()
	id := m.selected()
	switch s.Phase {
	case session.PhaseResizing:
		m.Status = "finish the resize first (enter)"
		return
	case session.PhaseIdle:
		if !m.handle(engine.Event{ItemID: id, Kind: engine.KindDrag, Phase: engine.PhaseStart}) {
			return
		}
	}
	dx, dy := m.cellStep()
	m.handle(engine.Event{
		ItemID: id,
		Kind:   engine.KindDrag,
		Phase:  engine.PhaseMove,
		Delta:  engine.Delta{DX: float64(cols) * dx, DY: float64(rows) * dy},
	})
	m.Status = "dragging " + id
}

func (m *PlayModel) resize(cols, rows int) {
	id := m.selected()
	switch m.Grid.Session().Phase {
	case session.PhaseDragging:
		m.Status = "finish the drag first (enter)"
		return
	case session.PhaseIdle:
		if !m.handle(engine.Event{ItemID: id, Kind: engine.KindResize, Phase: engine.PhaseStart, Handle: grid.HandleSE}) {
			return
		}
	}
	dx, dy := m.cellStep()
	size := m.Grid.Session().Size
	m.handle(engine.Event{
		ItemID: id,
		Kind:   engine.KindResize,
		Phase:  engine.PhaseMove,
		Size: engine.Size{
			Width:  max(size.Width+float64(cols)*dx, 0),
			Height: max(size.Height+float64(rows)*dy, 0),
		},
	})
	m.Status = "resizing " + id
}

func (m *PlayModel) stop() {
	s := m.Grid.Session()
	kind := engine.KindDrag
	switch s.Phase {
	case session.PhaseIdle:
		return
	case session.PhaseResizing:
		kind = engine.KindResize
	}
	res, err := m.Grid.Handle(engine.Event{ItemID: s.ItemID, Kind: kind, Phase: engine.PhaseStop})
	if err != nil {
		m.Err = err
		return
	}
	if res.Outcome != nil && res.Outcome.Changed {
		m.Commits++
		m.Status = "committed " + s.ItemID
		return
	}
	m.Status = "no change"
}

// handle forwards ev to the engine and records a failure.
func (m *PlayModel) handle(ev engine.Event) bool {
	if _, err := m.Grid.Handle(ev); err != nil {
		m.Err = err
		return false
	}
	return true
}

func (m PlayModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("gridkit play"))
	b.WriteString("\n")
	b.WriteString(playDimStyle.Render("tab select  ←↑↓→ drag  shift+arrows resize  ⏎ commit  esc cancel  q quit"))
	b.WriteString("\n\n")

	s := m.Grid.Session()
	l := s.Layout()
	pv := preview{cellWidth: m.CellWidth, selected: l.Index(m.selected())}
	if s.Active() {
		pv.placeholder = s.Placeholder
	}
	board := pv.render(l, m.Grid.Env().Options.Cols)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", m.itemTable(l)))
	b.WriteString("\n\n")

	phase := playDimStyle.Render(s.Phase.String())
	if s.Active() {
		phase = playActiveStyle.Render(s.Phase.String())
	}
	b.WriteString(fmt.Sprintf("  %s  %s", phase, playDimStyle.Render(m.Status)))
	if m.Err != nil {
		b.WriteString("\n  " + playErrorStyle.Render(iconError+" "+gerrors.UserMessage(m.Err)))
	}
	b.WriteString("\n")
	return b.String()
}

// itemTable lists the items with their placement.
func (m PlayModel) itemTable(l grid.Layout) string {
	sel := m.selected()
	rows := make([][]string, 0, len(l))
	for _, it := range l {
		cursor := "  "
		if it.ID == sel {
			cursor = "▸ "
		}
		flag := ""
		if it.Static {
			flag = "static"
		}
		rows = append(rows, []string{cursor, it.ID,
			fmt.Sprint(it.X), fmt.Sprint(it.Y), fmt.Sprint(it.W), fmt.Sprint(it.H), flag})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Item", "X", "Y", "W", "H", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return playHeaderStyle
			}
			if row < len(l) && l[row].ID == sel {
				return playActiveStyle
			}
			if row < len(l) && l[row].Static {
				return styleStatic
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
