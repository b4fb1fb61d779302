// Package wallet defines the external collaborators behind the
// confirmation dialog: a capability check and a donation submission. The
// only implementation here is a mock that fabricates receipts after a
// delay; a real chain integration would satisfy the same interface.
package wallet

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"os"
	"time"
)

// ErrRejected is what the mock returns when a failure is armed. It stands
// in for a user rejecting the transaction in their wallet.
var ErrRejected = errors.New("wallet rejected the transaction")

// Receipt is the result of a successful submission.
type Receipt struct {
	TxHash string // 64 lowercase hex characters
}

// Gateway is the wallet integration boundary. Both methods are single-shot
// per call; callers do not retry automatically.
type Gateway interface {
	// Available reports whether the wallet can be offered to the user.
	Available(walletID string) bool
	// Send submits a donation and returns a receipt. The mock honors ctx
	// cancellation during its simulated network delay.
	Send(ctx context.Context, walletID, address string, amountCents int64) (Receipt, error)
}

// MockGateway simulates a wallet provider. The zero value is usable: every
// wallet is available and Send succeeds immediately.
type MockGateway struct {
	// Delay is the simulated network latency before Send resolves.
	Delay time.Duration
	// ProviderEnv names the env var that stands in for a browser-injected
	// provider. Only consulted for metamask, and only in Strict mode.
	ProviderEnv string
	Strict      bool
	// FailWith, when set, makes every Send return this error.
	FailWith error
}

var _ Gateway = (*MockGateway)(nil)

// Available defaults to true. In strict mode metamask requires the
// provider env var to be set, mirroring the injected-provider check a
// browser wallet would do.
func (g *MockGateway) Available(walletID string) bool {
	if g.Strict && walletID == "metamask" {
		return g.ProviderEnv != "" && os.Getenv(g.ProviderEnv) != ""
	}
	return true
}

// Send waits out the configured delay and returns a freshly generated
// receipt, or the armed failure.
func (g *MockGateway) Send(ctx context.Context, walletID, address string, amountCents int64) (Receipt, error) {
	if g.Delay > 0 {
		timer := time.NewTimer(g.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Receipt{}, ctx.Err()
		case <-timer.C:
		}
	}
	if g.FailWith != nil {
		return Receipt{}, g.FailWith
	}
	hash, err := randomTxHash()
	if err != nil {
		return Receipt{}, err
	}
	return Receipt{TxHash: hash}, nil
}

func randomTxHash() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// ValidReceipt reports whether s has the expected 64-hex-character shape.
func ValidReceipt(s string) bool {
	if len(s) != 64 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		default:
			return false
		}
	}
	return true
}
