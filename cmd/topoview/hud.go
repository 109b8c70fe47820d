package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/taigrr/topoview/pkg/pick"
	"github.com/taigrr/topoview/pkg/viewport"
)

// hud draws text overlays on top of the rendered scene: a status bar, a key
// help line, and a tooltip for the hovered element. It prints directly over
// the displayed frame, in terminal cells.
type hud struct {
	name         string
	nodes, edges int

	visible   bool
	selection pick.Result

	fps       float64
	fpsFrames int
	fpsTime   time.Time

	barStyle     lipgloss.Style
	helpStyle    lipgloss.Style
	tooltipStyle lipgloss.Style
	selectStyle  lipgloss.Style
}

func newHUD(name string, nodes, edges int) *hud {
	return &hud{
		name:    name,
		nodes:   nodes,
		edges:   edges,
		visible: true,
		fpsTime: time.Now(),
		barStyle: lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Padding(0, 1),
		helpStyle: lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1),
		tooltipStyle: lipgloss.NewStyle().
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1),
		selectStyle: lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("214")).
			Padding(0, 1),
	}
}

func (h *hud) SetSelection(res pick.Result) { h.selection = res }

func (h *hud) toggleVisible() { h.visible = !h.visible }

// UpdateFPS samples the frame rate over one-second windows.
func (h *hud) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

func moveTo(row, col int) string {
	return fmt.Sprintf("\x1b[%d;%dH", row, col)
}

const clearLine = "\x1b[2K"

// Render draws the overlays for one frame. Rows and columns are 1-based in
// the escape sequences; mouse coordinates come in 0-based.
func (h *hud) Render(width, height, mouseX, mouseY int, hover viewport.HoverInfo, hoverOK bool) {
	// Top and bottom rows are always cleared so toggling the HUD off
	// leaves no residue.
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	if h.visible {
		title := fmt.Sprintf("%s · %d nodes · %d links", h.name, h.nodes, h.edges)
		fmt.Print(moveTo(1, 1) + h.barStyle.Render(title))

		fpsStr := h.barStyle.Render(fmt.Sprintf("%.0f fps", h.fps))
		fmt.Print(moveTo(1, max(width-lipgloss.Width(fpsStr), 1)) + fpsStr)

		help := h.helpStyle.Render("drag: orbit · rclick drag: pan · scroll: zoom · 1-4: views · f: fit · g/x/y/z: toggles · ?: hud · esc: quit")
		fmt.Print(moveTo(height, 1) + help)

		if label := h.selectionLabel(); label != "" {
			sel := h.selectStyle.Render(label)
			fmt.Print(moveTo(height, max(width-lipgloss.Width(sel), 1)) + sel)
		}
	}

	if hoverOK {
		h.renderTooltip(width, height, mouseX, mouseY, hover)
	}
}

func (h *hud) selectionLabel() string {
	switch h.selection.Kind {
	case pick.KindNode:
		return "selected: " + h.selection.Node.Source.Name
	case pick.KindEdge:
		c := h.selection.Edge.Source
		return fmt.Sprintf("selected: link %d-%d", c.SourceID, c.TargetID)
	default:
		return ""
	}
}

func (h *hud) renderTooltip(width, height, mouseX, mouseY int, hover viewport.HoverInfo) {
	lines := []string{hover.Title}
	if hover.Detail != "" {
		lines = append(lines, hover.Detail)
	}
	if m := hover.Metrics; m != nil {
		lines = append(lines,
			fmt.Sprintf("util %.0f%% (%s)", m.UtilizationPercent, tierLabel(m.UtilizationPercent)),
			fmt.Sprintf("%.0f Mbps · %.1f ms · %.1f%% loss", m.ThroughputMbps, m.LatencyMs, m.PacketLossPercent),
		)
	}

	box := h.tooltipStyle.Render(strings.Join(lines, "\n"))
	boxLines := strings.Split(box, "\n")
	boxWidth := lipgloss.Width(box)

	// Offset from the pointer, flipped near the right and bottom edges so
	// the box stays on screen.
	col := mouseX + 3
	if col+boxWidth > width {
		col = max(mouseX-boxWidth-1, 1)
	}
	row := mouseY + 2
	if row+len(boxLines) > height {
		row = max(mouseY-len(boxLines), 2)
	}

	for i, line := range boxLines {
		fmt.Print(moveTo(row+i, col) + line)
	}
}
