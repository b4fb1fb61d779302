// Package event is the observability seam for the orchestrator: one event
// per state transition, one per completed donation. The TUI never logs to
// the terminal it is drawing on, so the zerolog sink appends JSON lines to
// a file instead.
package event

import (
	"os"

	"github.com/rs/zerolog"
)

// Emitter receives lifecycle events from the orchestrator.
type Emitter interface {
	Transition(from, to string, fields map[string]any)
	Donation(charityID, walletID string, amountCents int64, txHash string)
}

type nop struct{}

func (nop) Transition(string, string, map[string]any) {}
func (nop) Donation(string, string, int64, string)    {}

// Nop returns an emitter that discards everything. Used in tests and as a
// fallback when the log file cannot be opened.
func Nop() Emitter { return nop{} }

// Log writes events as JSON lines via zerolog.
type Log struct {
	log zerolog.Logger
}

// NewLog opens (or creates) path for appending and returns a Log emitter.
func NewLog(path string) (*Log, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &Log{log: zerolog.New(f).With().Timestamp().Logger()}, nil
}

// NewLogger wraps an existing zerolog logger, mainly for tests.
func NewLogger(l zerolog.Logger) *Log { return &Log{log: l} }

func (l *Log) Transition(from, to string, fields map[string]any) {
	ev := l.log.Info().Str("event", "transition").Str("from", from).Str("to", to)
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Send()
}

func (l *Log) Donation(charityID, walletID string, amountCents int64, txHash string) {
	l.log.Info().
		Str("event", "donation").
		Str("charity", charityID).
		Str("wallet", walletID).
		Int64("amount", amountCents).
		Str("tx_hash", txHash).
		Send()
}
