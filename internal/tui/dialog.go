package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/givewheel/givewheel/internal/catalog"
)

type dialogPhase string

const (
	dialogWallets    dialogPhase = "wallets"
	dialogProcessing dialogPhase = "processing"
	dialogComplete   dialogPhase = "complete"
	dialogFailed     dialogPhase = "failed"
)

// dialogModel is the donation confirmation modal. It walks
// wallets → processing → complete | failed; failed offers a retry that
// returns to the wallet list.
type dialogModel struct {
	phase       dialogPhase
	charity     catalog.Charity
	amountCents int64
	currency    string
	wallets     []catalog.Wallet
	cursor      int
	wait        spinner.Model
	receipt     string
	errText     string
}

func newDialog(charity catalog.Charity, amountCents int64, currency string, wallets []catalog.Wallet) dialogModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(colorAccent)
	return dialogModel{
		phase:       dialogWallets,
		charity:     charity,
		amountCents: amountCents,
		currency:    currency,
		wallets:     wallets,
		wait:        s,
	}
}

func (d dialogModel) selected() (catalog.Wallet, bool) {
	if len(d.wallets) == 0 || d.cursor < 0 || d.cursor >= len(d.wallets) {
		return catalog.Wallet{}, false
	}
	return d.wallets[d.cursor], true
}

func (d dialogModel) view() string {
	header := titleStyle.Render("Confirm donation") + "\n" +
		fmt.Sprintf("%s to %s", formatAmount(d.currency, d.amountCents), d.charity.Name) + "\n" +
		helpStyle.Render(d.charity.Address)

	var body string
	switch d.phase {
	case dialogProcessing:
		body = d.wait.View() + " sending donation…"
	case dialogComplete:
		body = successStyle.Render("Donation sent!") + "\n" +
			"Receipt: " + lipgloss.NewStyle().Foreground(colorInfo).Render(d.receipt) + "\n\n" +
			helpStyle.Render("[enter] Close")
	case dialogFailed:
		body = errorStyle.Render("Donation failed: "+d.errText) + "\n\n" +
			helpStyle.Render("[r] Retry  [esc] Close")
	default:
		if len(d.wallets) == 0 {
			body = errorStyle.Render("No wallets available") + "\n\n" + helpStyle.Render("[esc] Close")
			break
		}
		var b strings.Builder
		b.WriteString("Pick a wallet\n")
		for i, w := range d.wallets {
			marker := "  "
			name := w.Name
			if i == d.cursor {
				marker = pointerStyle.Render("▶ ")
				name = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(w.Color)).Render(w.Name)
			}
			b.WriteString(fmt.Sprintf("%s%s %s\n", marker, w.Icon, name))
		}
		b.WriteString("\n" + helpStyle.Render("[enter] Donate  [esc] Cancel"))
		body = b.String()
	}

	return dialogStyle.Render(header + "\n\n" + body)
}
