package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/givewheel/givewheel/internal/catalog"
	"github.com/givewheel/givewheel/internal/database/repository"
	"github.com/givewheel/givewheel/internal/event"
	"github.com/givewheel/givewheel/internal/wallet"
)

// DonationService runs one donation attempt end to end: submit through the
// wallet gateway, validate the receipt shape, record the row, emit the
// event. No retry and no timeout policy wraps the gateway call.
type DonationService struct {
	Gateway   wallet.Gateway
	Donations *repository.DonationRepo
	Events    event.Emitter
}

// Submit sends amountCents to charity through the wallet identified by
// walletID and returns the receipt. The donation is only recorded after
// the gateway reports success.
func (s *DonationService) Submit(ctx context.Context, walletID string, charity catalog.Charity, amountCents int64) (wallet.Receipt, error) {
	if s.Gateway == nil {
		return wallet.Receipt{}, fmt.Errorf("donation: gateway not configured")
	}

	rec, err := s.Gateway.Send(ctx, walletID, charity.Address, amountCents)
	if err != nil {
		return wallet.Receipt{}, err
	}
	if !wallet.ValidReceipt(rec.TxHash) {
		return wallet.Receipt{}, fmt.Errorf("donation: malformed receipt %q", rec.TxHash)
	}

	if s.Donations != nil {
		d := repository.Donation{
			ID:          uuid.NewString(),
			CharityID:   charity.ID,
			WalletID:    walletID,
			AmountCents: amountCents,
			TxHash:      rec.TxHash,
		}
		if err := s.Donations.Insert(ctx, d); err != nil {
			return wallet.Receipt{}, fmt.Errorf("record donation: %w", err)
		}
	}

	if s.Events != nil {
		s.Events.Donation(charity.ID, walletID, amountCents, rec.TxHash)
	}
	return rec, nil
}
