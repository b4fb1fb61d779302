package repository

import "time"

// Charity represents a charity row, mirrored from the static catalog.
type Charity struct {
	ID          string
	Name        string
	Description string
	Address     string
	Image       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Donation represents one completed donation.
type Donation struct {
	ID          string
	CharityID   string
	WalletID    string
	AmountCents int64
	TxHash      string
	CreatedAt   time.Time
}

// CharityTotal aggregates donations per charity for the history view.
type CharityTotal struct {
	CharityID  string
	Count      int
	TotalCents int64
}
