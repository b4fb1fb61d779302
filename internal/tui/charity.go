package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/givewheel/givewheel/internal/catalog"
	"github.com/givewheel/givewheel/internal/spin"
)

// charityModel renders the rolling charity picker. The final charity was
// predetermined when the spin started; cycling is display only.
type charityModel struct {
	charities []catalog.Charity
	frame     int
	spinning  bool
	final     *catalog.Charity
}

func newCharityPicker() charityModel {
	return charityModel{charities: catalog.Charities()}
}

func (c charityModel) start() charityModel {
	c.spinning = true
	c.frame = 0
	c.final = nil
	return c
}

func (c charityModel) advance() charityModel {
	c.frame++
	return c
}

func (c charityModel) settle(ch catalog.Charity) charityModel {
	c.spinning = false
	c.final = &ch
	return c
}

func (c charityModel) view() string {
	if c.spinning {
		cur := c.charities[spin.FrameIndex(c.frame, len(c.charities))]
		return statusStyle.Render("Charity: ") + lipgloss.NewStyle().Foreground(colorInfo).Render(cur.Name)
	}
	if c.final != nil {
		name := lipgloss.NewStyle().Bold(true).Foreground(colorInfo).Render(c.final.Name)
		return statusStyle.Render("Charity: ") + name + "\n" + helpStyle.Render(c.final.Description)
	}
	return statusStyle.Render("Charity: ") + helpStyle.Render("spin to pick one")
}
