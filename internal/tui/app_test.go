package tui

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/givewheel/givewheel/internal/catalog"
	"github.com/givewheel/givewheel/internal/config"
	"github.com/givewheel/givewheel/internal/event"
	"github.com/givewheel/givewheel/internal/service"
	"github.com/givewheel/givewheel/internal/wallet"
)

func testConfig() config.Config {
	return config.Config{
		Spin:     config.SpinConfig{DurationMS: 4000, WheelSettleMS: 3900, WheelTickMS: 125, CharityTickMS: 100},
		Donation: config.DonationConfig{DelayMS: 0},
		UI:       config.UIConfig{CurrencySymbol: "Ξ"},
	}
}

func newTestApp(gw *wallet.MockGateway) *App {
	if gw == nil {
		gw = &wallet.MockGateway{}
	}
	svc := &service.DonationService{Gateway: gw, Events: event.Nop()}
	return New(context.Background(), testConfig(), Repos{}, Services{Donation: svc}, gw, event.Nop(), rand.New(rand.NewSource(1)))
}

func keySpace() tea.Msg { return tea.KeyMsg{Type: tea.KeySpace} }
func keyEnter() tea.Msg { return tea.KeyMsg{Type: tea.KeyEnter} }
func keyEsc() tea.Msg   { return tea.KeyMsg{Type: tea.KeyEsc} }
func keyRune(r string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

// driveToDialog runs a full spin cycle with a chosen outcome, delivering
// the settle messages the timers would have produced.
func driveToDialog(t *testing.T, a *App, amount int64, charityID string) {
	t.Helper()
	a.Update(keySpace())
	if a.session == nil {
		t.Fatal("spin did not start")
	}
	id := a.session.ID
	charity, ok := catalog.CharityByID(charityID)
	if !ok {
		t.Fatalf("unknown charity %q", charityID)
	}
	segment := -1
	for i, v := range catalog.AmountOptions() {
		if v == amount {
			segment = i
		}
	}
	if segment < 0 {
		t.Fatalf("amount %d not in the fixed set", amount)
	}
	a.Update(wheelSettledMsg{session: id, segment: segment, amount: amount})
	a.Update(charitySettledMsg{session: id, charity: charity})
	if !a.showDialog {
		t.Fatal("dialog should be open after both selectors settle")
	}
}

func TestStartSpinCommitsOutcome(t *testing.T) {
	a := newTestApp(nil)
	_, cmd := a.Update(keySpace())
	if a.state != stateSpinning {
		t.Fatalf("state = %s, want spinning", a.state)
	}
	if a.session == nil {
		t.Fatal("no session after spin start")
	}
	if cmd == nil {
		t.Fatal("spin start must schedule timers")
	}
	if a.amount != nil || a.charity != nil || a.receipt != "" {
		t.Fatal("ephemeral fields must be clear at spin start")
	}

	res := a.session.Result
	inAmounts := false
	for _, v := range catalog.AmountOptions() {
		if v == res.Amount {
			inAmounts = true
		}
	}
	if !inAmounts {
		t.Fatalf("pre-drawn amount %d outside the fixed set", res.Amount)
	}
	if _, ok := catalog.CharityByID(res.Charity.ID); !ok {
		t.Fatalf("pre-drawn charity %q outside the fixed list", res.Charity.ID)
	}
}

func TestSpinGuardIsIdempotent(t *testing.T) {
	a := newTestApp(nil)
	a.Update(keySpace())
	id := a.session.ID
	frame := a.wheel.frame

	_, cmd := a.Update(keySpace())
	if cmd != nil {
		t.Fatal("second trigger must not schedule anything")
	}
	if a.session.ID != id {
		t.Fatal("second trigger replaced the session")
	}
	if a.state != stateSpinning || a.wheel.frame != frame {
		t.Fatal("second trigger changed state")
	}
}

func TestRevealToleratesEitherOrder(t *testing.T) {
	orders := []string{"wheel-first", "charity-first"}
	for _, order := range orders {
		t.Run(order, func(t *testing.T) {
			a := newTestApp(nil)
			a.Update(keySpace())
			id := a.session.ID
			res := a.session.Result

			wheelMsg := wheelSettledMsg{session: id, segment: res.Segment, amount: res.Amount}
			charityMsg := charitySettledMsg{session: id, charity: res.Charity}

			if order == "wheel-first" {
				a.Update(wheelMsg)
			} else {
				a.Update(charityMsg)
			}
			if a.showDialog {
				t.Fatal("dialog must not open with only one selector settled")
			}
			if a.state != stateSpinning {
				t.Fatalf("state = %s before both settle, want spinning", a.state)
			}

			if order == "wheel-first" {
				a.Update(charityMsg)
			} else {
				a.Update(wheelMsg)
			}
			if !a.showDialog || a.state != stateConfirming {
				t.Fatalf("dialog open = %v state = %s, want confirming dialog", a.showDialog, a.state)
			}
			if a.amount == nil || *a.amount != res.Amount {
				t.Fatal("amount not taken from the committed result")
			}
			if a.charity == nil || a.charity.ID != res.Charity.ID {
				t.Fatal("charity not taken from the committed result")
			}
		})
	}
}

func TestFullCycleStaysInDomain(t *testing.T) {
	a := newTestApp(nil)
	a.Update(keySpace())
	id := a.session.ID
	res := a.session.Result

	// equivalent of ~4000ms elapsing: both completion timers fire
	a.Update(wheelSettledMsg{session: id, segment: res.Segment, amount: res.Amount})
	a.Update(charitySettledMsg{session: id, charity: res.Charity})

	allowed := map[int64]bool{5: true, 10: true, 25: true, 50: true, 100: true, 200: true, 500: true, 1000: true}
	if a.amount == nil || !allowed[*a.amount] {
		t.Fatalf("resolved amount %v outside {0.05,0.10,0.25,0.50,1.00,2.00,5.00,10.00}", a.amount)
	}
	if a.charity == nil {
		t.Fatal("no charity resolved")
	}
	if _, ok := catalog.CharityByID(a.charity.ID); !ok {
		t.Fatalf("resolved charity %q unknown", a.charity.ID)
	}
	if !a.showDialog {
		t.Fatal("dialog should be open after a full cycle")
	}
}

func TestStaleTimersAreNoOps(t *testing.T) {
	a := newTestApp(nil)

	// cycle one, dismissed
	driveToDialog(t, a, 100, "water-org")
	oldID := "stale-session"
	a.Update(keyEsc())

	// cycle two in flight
	a.Update(keySpace())
	newID := a.session.ID
	frame := a.wheel.frame

	a.Update(wheelTickMsg{session: oldID})
	if a.wheel.frame != frame {
		t.Fatal("stale tick advanced the wheel")
	}
	a.Update(wheelSettledMsg{session: oldID, segment: 0, amount: 5})
	if a.amount != nil {
		t.Fatal("stale settle resolved an amount for the wrong session")
	}
	a.Update(charitySettledMsg{session: oldID, charity: catalog.Charities()[0]})
	if a.charity != nil || a.showDialog {
		t.Fatal("stale settle opened the dialog")
	}
	if a.session.ID != newID || a.state != stateSpinning {
		t.Fatal("stale messages disturbed the active session")
	}
}

func TestTicksStopAfterSettle(t *testing.T) {
	a := newTestApp(nil)
	a.Update(keySpace())
	id := a.session.ID

	a.Update(wheelTickMsg{session: id})
	a.Update(wheelTickMsg{session: id})
	if a.wheel.frame != 2 {
		t.Fatalf("wheel frame = %d, want 2", a.wheel.frame)
	}

	a.Update(wheelSettledMsg{session: id, segment: 3, amount: 50})
	frame := a.wheel.frame
	_, cmd := a.Update(wheelTickMsg{session: id})
	if cmd != nil {
		t.Fatal("tick after settle must not reschedule")
	}
	if a.wheel.frame != frame {
		t.Fatal("tick after settle advanced the wheel")
	}
}

func TestSubmissionShowsReceipt(t *testing.T) {
	a := newTestApp(nil)
	driveToDialog(t, a, 100, "water-org")

	// metamask is first in the wallet list
	if w, ok := a.dialog.selected(); !ok || w.ID != "metamask" {
		t.Fatalf("expected metamask preselected, got %+v", w)
	}
	a.Update(keyEnter())
	if a.dialog.phase != dialogProcessing {
		t.Fatalf("phase = %s, want processing", a.dialog.phase)
	}

	// resolve the async submission
	msg := a.submitCmd()()
	done, ok := msg.(donationDoneMsg)
	if !ok {
		t.Fatalf("submit produced %T", msg)
	}
	if done.err != nil {
		t.Fatalf("submit failed: %v", done.err)
	}
	a.Update(done)

	if a.dialog.phase != dialogComplete {
		t.Fatalf("phase = %s, want complete", a.dialog.phase)
	}
	if !wallet.ValidReceipt(a.receipt) {
		t.Fatalf("receipt %q is not 64 hex chars", a.receipt)
	}
	if !strings.Contains(a.View(), a.receipt) {
		t.Fatal("completed view should show the receipt")
	}
}

func TestSubmissionFailureOffersRetry(t *testing.T) {
	a := newTestApp(&wallet.MockGateway{FailWith: wallet.ErrRejected})
	driveToDialog(t, a, 100, "water-org")

	a.Update(keyEnter())
	msg := a.submitCmd()()
	a.Update(msg)

	if a.dialog.phase != dialogFailed {
		t.Fatalf("phase = %s, want failed", a.dialog.phase)
	}
	view := a.View()
	if !strings.Contains(view, "Donation failed") || !strings.Contains(view, "Retry") {
		t.Fatal("failed view should show the error and a retry control")
	}

	a.Update(keyRune("r"))
	if a.dialog.phase != dialogWallets {
		t.Fatalf("phase = %s after retry, want wallets", a.dialog.phase)
	}
	if !strings.Contains(a.View(), "Pick a wallet") {
		t.Fatal("retry should return to the wallet list")
	}
}

func TestDismissalResetsToIdle(t *testing.T) {
	a := newTestApp(nil)
	driveToDialog(t, a, 100, "water-org")

	a.Update(keyEsc())
	if a.state != stateIdle {
		t.Fatalf("state = %s, want idle", a.state)
	}
	if a.showDialog || a.session != nil || a.amount != nil || a.charity != nil || a.receipt != "" {
		t.Fatal("dismissal must clear all session fields")
	}
}

func TestLateDonationResultAfterDismissIgnored(t *testing.T) {
	a := newTestApp(nil)
	driveToDialog(t, a, 100, "water-org")

	a.Update(keyEnter())
	id := a.dialog.charity.ID // sanity: dialog holds the charity
	if id != "water-org" {
		t.Fatalf("dialog charity = %s", id)
	}
	cmd := a.submitCmd()

	a.Update(keyEsc()) // dismiss mid-flight

	msg := cmd() // the pending operation resolves afterwards
	a.Update(msg)
	if a.state != stateIdle || a.showDialog || a.receipt != "" {
		t.Fatal("late donation result must have no visible effect")
	}
}

func TestStrictGatewayFiltersWallets(t *testing.T) {
	gw := &wallet.MockGateway{Strict: true, ProviderEnv: "GIVEWHEEL_TUI_TEST_PROVIDER"}
	t.Setenv("GIVEWHEEL_TUI_TEST_PROVIDER", "")
	a := newTestApp(gw)
	driveToDialog(t, a, 100, "water-org")

	for _, w := range a.dialog.wallets {
		if w.ID == "metamask" {
			t.Fatal("metamask should be filtered out without an injected provider")
		}
	}
	if len(a.dialog.wallets) != len(catalog.Wallets())-1 {
		t.Fatalf("expected the other wallets to remain, got %d", len(a.dialog.wallets))
	}
}

func TestHistoryScreenToggle(t *testing.T) {
	a := newTestApp(nil)
	a.Update(keyRune("h"))
	if a.screen != screenHistory {
		t.Fatal("h should open the history screen when idle")
	}
	if !strings.Contains(a.View(), "Donation history") {
		t.Fatal("history view missing title")
	}
	a.Update(keyEsc())
	if a.screen != screenWheel {
		t.Fatal("esc should return to the wheel")
	}

	// history is unreachable mid-spin
	a.Update(keySpace())
	a.Update(keyRune("h"))
	if a.screen != screenWheel {
		t.Fatal("history must not open while spinning")
	}
}

func TestDialogOverlaysWheelView(t *testing.T) {
	a := newTestApp(nil)
	a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	driveToDialog(t, a, 100, "water-org")

	view := a.View()
	if !strings.Contains(view, "Confirm donation") {
		t.Fatal("composited view should contain the dialog")
	}
}
