package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/givewheel/givewheel/internal/catalog"
	"github.com/givewheel/givewheel/internal/spin"
)

// wheelModel renders the amount dial. While spinning it replays frames
// from a free-running counter; at rest it shows the committed segment.
// The displayed mid-spin value is cosmetic — the final value came from
// the rotation draw at spin start.
type wheelModel struct {
	amounts  []int64
	currency string
	frame    int
	spinning bool
	segment  int // resting segment; -1 before the first spin settles
}

func newWheel(currency string) wheelModel {
	return wheelModel{
		amounts:  catalog.AmountOptions(),
		currency: currency,
		segment:  -1,
	}
}

func (w wheelModel) start() wheelModel {
	w.spinning = true
	w.frame = 0
	return w
}

func (w wheelModel) advance() wheelModel {
	w.frame++
	return w
}

func (w wheelModel) settle(segment int) wheelModel {
	w.spinning = false
	w.segment = spin.FrameIndex(segment, len(w.amounts))
	return w
}

// current is the index under the pointer right now.
func (w wheelModel) current() int {
	if w.spinning {
		return spin.FrameIndex(w.frame, len(w.amounts))
	}
	if w.segment >= 0 {
		return w.segment
	}
	return 0
}

func (w wheelModel) view() string {
	n := len(w.amounts)
	cur := w.current()
	prev := spin.FrameIndex(cur-1, n)
	next := spin.FrameIndex(cur+1, n)

	colors := segmentColors()
	curStyle := lipgloss.NewStyle().Bold(true).Foreground(colors[cur%len(colors)])

	top := faintStyle.Render(fmt.Sprintf("  %s  ", formatAmount(w.currency, w.amounts[prev])))
	mid := pointerStyle.Render("▶ ") + curStyle.Render(formatAmount(w.currency, w.amounts[cur])) + pointerStyle.Render(" ◀")
	bot := faintStyle.Render(fmt.Sprintf("  %s  ", formatAmount(w.currency, w.amounts[next])))

	label := "amount"
	if w.spinning {
		label = "spinning…"
	} else if w.segment < 0 {
		label = "ready"
	}
	box := wheelBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Center, top, mid, bot))
	return lipgloss.JoinVertical(lipgloss.Center, box, helpStyle.Render(label))
}

// formatAmount renders hundredths as a decimal with the currency symbol.
func formatAmount(currency string, cents int64) string {
	return fmt.Sprintf("%s %.2f", currency, float64(cents)/100)
}
