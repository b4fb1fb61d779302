package tui

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/givewheel/givewheel/internal/catalog"
	"github.com/givewheel/givewheel/internal/config"
	"github.com/givewheel/givewheel/internal/database/repository"
	"github.com/givewheel/givewheel/internal/event"
	"github.com/givewheel/givewheel/internal/service"
	"github.com/givewheel/givewheel/internal/spin"
	"github.com/givewheel/givewheel/internal/wallet"
)

// App is the root orchestrator. It owns the spin session exclusively; the
// wheel and charity widgets receive immutable inputs and everything async
// reports back through messages tagged with the session id.
type App struct {
	ctx      context.Context
	cfg      config.Config
	repos    Repos
	services Services
	gateway  wallet.Gateway
	events   event.Emitter
	rng      *rand.Rand

	state   appState
	screen  screen
	session *spin.Session
	amount  *int64
	charity *catalog.Charity
	receipt string

	wheel      wheelModel
	picker     charityModel
	dialog     dialogModel
	showDialog bool

	history []repository.Donation
	totals  []repository.CharityTotal

	status     string
	keys       keyMap
	dialogKeys dialogKeyMap
	width      int
	height     int
}

type Repos struct {
	Donations *repository.DonationRepo
	Charities *repository.CharityRepo
}

type Services struct {
	Donation    *service.DonationService
	Maintenance *service.MaintenanceService
}

type appState string

const (
	stateIdle       appState = "idle"
	stateSpinning   appState = "spinning"
	stateRevealed   appState = "revealed"
	stateConfirming appState = "confirming"
)

type screen string

const (
	screenWheel   screen = "wheel"
	screenHistory screen = "history"
)

func New(ctx context.Context, cfg config.Config, repos Repos, services Services, gateway wallet.Gateway, events event.Emitter, rng *rand.Rand) *App {
	if events == nil {
		events = event.Nop()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &App{
		ctx:      ctx,
		cfg:      cfg,
		repos:    repos,
		services: services,
		gateway:  gateway,
		events:   events,
		rng:      rng,
		state:    stateIdle,
		screen:   screenWheel,
		wheel:    newWheel(cfg.UI.CurrencySymbol),
		picker:   newCharityPicker(),
		keys:     newKeyMap(),
		dialogKeys: dialogKeyMap{
			keyMap: newKeyMap(),
		},
	}
}

func (a *App) Init() tea.Cmd {
	return a.loadHistory()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		return a, nil
	case tea.KeyMsg:
		if a.showDialog {
			return a.handleDialogKey(m)
		}
		if a.screen == screenHistory {
			return a.handleHistoryKey(m)
		}
		return a.handleMainKey(m)
	case wheelTickMsg:
		if !a.currentSession(m.session) || !a.wheel.spinning {
			return a, nil
		}
		a.wheel = a.wheel.advance()
		return a, a.wheelTickCmd()
	case charityTickMsg:
		if !a.currentSession(m.session) || !a.picker.spinning {
			return a, nil
		}
		a.picker = a.picker.advance()
		return a, a.charityTickCmd()
	case wheelSettledMsg:
		if !a.currentSession(m.session) {
			return a, nil
		}
		amount := m.amount
		a.amount = &amount
		a.wheel = a.wheel.settle(m.segment)
		a.maybeReveal()
		return a, nil
	case charitySettledMsg:
		if !a.currentSession(m.session) {
			return a, nil
		}
		charity := m.charity
		a.charity = &charity
		a.picker = a.picker.settle(charity)
		a.maybeReveal()
		return a, nil
	case donationDoneMsg:
		// a result arriving after dismissal (or after a new spin began)
		// belongs to a dead session and must have no visible effect
		if !a.currentSession(m.session) || !a.showDialog {
			return a, nil
		}
		if m.err != nil {
			a.dialog.phase = dialogFailed
			a.dialog.errText = m.err.Error()
			return a, nil
		}
		a.receipt = m.receipt.TxHash
		a.dialog.phase = dialogComplete
		a.dialog.receipt = m.receipt.TxHash
		return a, a.loadHistory()
	case spinner.TickMsg:
		if a.showDialog && a.dialog.phase == dialogProcessing {
			var cmd tea.Cmd
			a.dialog.wait, cmd = a.dialog.wait.Update(m)
			return a, cmd
		}
		return a, nil
	case historyMsg:
		a.history = m.rows
		a.totals = m.totals
		return a, nil
	case statusMsg:
		a.status = string(m)
		return a, nil
	case errMsg:
		a.status = "error: " + m.Error()
		return a, nil
	}
	return a, nil
}

// ---------------------------------------------------------------------------
// Key handlers
// ---------------------------------------------------------------------------

func (a *App) handleMainKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case " ", "enter":
		return a.startSpin()
	case "h":
		if a.state == stateIdle {
			a.screen = screenHistory
			return a, a.loadHistory()
		}
	}
	return a, nil
}

func (a *App) handleHistoryKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "esc", "h":
		a.screen = screenWheel
		a.status = ""
	case "x":
		if a.services.Maintenance == nil {
			return a, nil
		}
		return a, a.resetCmd()
	}
	return a, nil
}

func (a *App) handleDialogKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	}
	switch a.dialog.phase {
	case dialogWallets:
		switch m.String() {
		case "esc":
			return a, a.dismissDialog()
		case "up", "k":
			if a.dialog.cursor > 0 {
				a.dialog.cursor--
			}
		case "down", "j":
			if a.dialog.cursor < len(a.dialog.wallets)-1 {
				a.dialog.cursor++
			}
		case "enter":
			if _, ok := a.dialog.selected(); !ok {
				return a, nil
			}
			a.dialog.phase = dialogProcessing
			return a, tea.Batch(a.submitCmd(), a.dialog.wait.Tick)
		}
	case dialogProcessing:
		// dismissal here abandons the attempt; the session guard
		// swallows the result if it resolves later
		if m.String() == "esc" {
			return a, a.dismissDialog()
		}
	case dialogComplete:
		switch m.String() {
		case "enter", "esc":
			return a, a.dismissDialog()
		}
	case dialogFailed:
		switch m.String() {
		case "r", "enter":
			a.dialog.phase = dialogWallets
			a.dialog.errText = ""
		case "esc":
			return a, a.dismissDialog()
		}
	}
	return a, nil
}

// ---------------------------------------------------------------------------
// Spin lifecycle
// ---------------------------------------------------------------------------

// startSpin begins a new cycle. Re-entry while a spin is in flight or a
// dialog is open is a strict no-op: nothing about the current state moves.
func (a *App) startSpin() (tea.Model, tea.Cmd) {
	if a.state != stateIdle || a.showDialog {
		return a, nil
	}

	s := spin.NewSession(a.rng)
	a.session = &s
	a.amount = nil
	a.charity = nil
	a.receipt = ""
	a.status = ""
	a.wheel = a.wheel.start()
	a.picker = a.picker.start()
	a.state = stateSpinning
	a.events.Transition(string(stateIdle), string(stateSpinning), map[string]any{"session": s.ID})

	return a, tea.Batch(
		a.wheelTickCmd(),
		a.charityTickCmd(),
		a.wheelSettleCmd(),
		a.charitySettleCmd(),
	)
}

// maybeReveal advances spinning → revealed → confirming once both
// selectors have settled, in either order.
func (a *App) maybeReveal() {
	if a.state != stateSpinning || a.amount == nil || a.charity == nil {
		return
	}
	sessionID := a.session.ID
	a.state = stateRevealed
	a.events.Transition(string(stateSpinning), string(stateRevealed), map[string]any{
		"session": sessionID,
		"amount":  *a.amount,
		"charity": a.charity.ID,
	})

	// the dialog opens as soon as both values are present
	a.dialog = newDialog(*a.charity, *a.amount, a.cfg.UI.CurrencySymbol, a.availableWallets())
	a.showDialog = true
	a.state = stateConfirming
	a.events.Transition(string(stateRevealed), string(stateConfirming), map[string]any{"session": sessionID})
}

// dismissDialog ends the session and returns to idle, clearing every
// ephemeral field.
func (a *App) dismissDialog() tea.Cmd {
	from := string(a.state)
	a.showDialog = false
	a.session = nil
	a.amount = nil
	a.charity = nil
	a.receipt = ""
	a.state = stateIdle
	a.events.Transition(from, string(stateIdle), nil)
	return a.loadHistory()
}

func (a *App) currentSession(id string) bool {
	return a.session != nil && a.session.ID == id
}

func (a *App) availableWallets() []catalog.Wallet {
	all := catalog.Wallets()
	if a.gateway == nil {
		return all
	}
	out := make([]catalog.Wallet, 0, len(all))
	for _, w := range all {
		if a.gateway.Available(w.ID) {
			out = append(out, w)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

func (a *App) wheelTickCmd() tea.Cmd {
	id := a.session.ID
	return tea.Tick(a.cfg.Spin.WheelTick(), func(time.Time) tea.Msg {
		return wheelTickMsg{session: id}
	})
}

func (a *App) charityTickCmd() tea.Cmd {
	id := a.session.ID
	return tea.Tick(a.cfg.Spin.CharityTick(), func(time.Time) tea.Msg {
		return charityTickMsg{session: id}
	})
}

func (a *App) wheelSettleCmd() tea.Cmd {
	id := a.session.ID
	res := a.session.Result
	return tea.Tick(a.cfg.Spin.WheelSettle(), func(time.Time) tea.Msg {
		return wheelSettledMsg{session: id, segment: res.Segment, amount: res.Amount}
	})
}

func (a *App) charitySettleCmd() tea.Cmd {
	id := a.session.ID
	res := a.session.Result
	return tea.Tick(a.cfg.Spin.Duration(), func(time.Time) tea.Msg {
		return charitySettledMsg{session: id, charity: res.Charity}
	})
}

func (a *App) submitCmd() tea.Cmd {
	id := a.session.ID
	w, _ := a.dialog.selected()
	charity := a.dialog.charity
	amount := a.dialog.amountCents
	svc := a.services.Donation
	return func() tea.Msg {
		if svc == nil {
			return donationDoneMsg{session: id, err: fmt.Errorf("donation service not configured")}
		}
		rec, err := svc.Submit(a.ctx, w.ID, charity, amount)
		return donationDoneMsg{session: id, receipt: rec, err: err}
	}
}

func (a *App) loadHistory() tea.Cmd {
	repo := a.repos.Donations
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		rows, err := repo.List(a.ctx, 25)
		if err != nil {
			return errMsg{err}
		}
		totals, err := repo.TotalByCharity(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return historyMsg{rows: rows, totals: totals}
	}
}

func (a *App) resetCmd() tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.services.Maintenance.Reset(a.ctx); err != nil {
				return errMsg{err}
			}
			return statusMsg("history cleared")
		},
		a.loadHistory(),
	)
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (a *App) View() string {
	var body string
	switch a.screen {
	case screenHistory:
		body = a.renderHistory()
	default:
		body = a.renderWheel()
	}

	if a.showDialog {
		modal := a.dialog.view()
		if a.width > 0 && a.height > 0 {
			return overlayCenter(body, modal, a.width, a.height)
		}
		return body + "\n\n" + modal
	}
	return body
}

func (a *App) renderWheel() string {
	title := titleStyle.Render("GiveWheel") + statusStyle.Render("  spin once, give once")
	body := title + "\n\n" + a.wheel.view() + "\n\n" + a.picker.view()

	if a.receipt != "" {
		body += "\n" + successStyle.Render("receipt: "+a.receipt)
	}
	if a.status != "" {
		body += "\n" + statusStyle.Render(a.status)
	}
	body += "\n\n" + renderFooter(a.footerBindings())
	return body
}

func (a *App) footerBindings() []key.Binding {
	if a.showDialog {
		return a.dialogKeys.ShortHelp()
	}
	return a.keys.ShortHelp()
}

func (a *App) renderHistory() string {
	title := titleStyle.Render("Donation history")
	out := title + "\n"
	if len(a.history) == 0 {
		out += helpStyle.Render("(nothing donated yet)") + "\n"
	}
	for _, d := range a.history {
		name := d.CharityID
		if c, ok := catalog.CharityByID(d.CharityID); ok {
			name = c.Name
		}
		out += fmt.Sprintf("%s  %-28s %10s  %s\n",
			d.CreatedAt.Format("2006-01-02 15:04"),
			name,
			formatAmount(a.cfg.UI.CurrencySymbol, d.AmountCents),
			helpStyle.Render(shortHash(d.TxHash)))
	}
	if len(a.totals) > 0 {
		out += "\n" + lipgloss.NewStyle().Bold(true).Render("Totals") + "\n"
		for _, t := range a.totals {
			name := t.CharityID
			if c, ok := catalog.CharityByID(t.CharityID); ok {
				name = c.Name
			}
			out += fmt.Sprintf("  %-28s %10s  (%d)\n", name, formatAmount(a.cfg.UI.CurrencySymbol, t.TotalCents), t.Count)
		}
	}
	if a.status != "" {
		out += "\n" + statusStyle.Render(a.status)
	}
	out += "\n" + helpStyle.Render("[esc] Back  [x] Clear history  [q] Quit")
	return out
}

func shortHash(h string) string {
	if len(h) <= 12 {
		return h
	}
	return h[:6] + "…" + h[len(h)-6:]
}

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

type wheelTickMsg struct{ session string }

type charityTickMsg struct{ session string }

type wheelSettledMsg struct {
	session string
	segment int
	amount  int64
}

type charitySettledMsg struct {
	session string
	charity catalog.Charity
}

type donationDoneMsg struct {
	session string
	receipt wallet.Receipt
	err     error
}

type historyMsg struct {
	rows   []repository.Donation
	totals []repository.CharityTotal
}

type statusMsg string

type errMsg struct{ error }
