package repository

import (
	"context"
	"database/sql"
)

// DonationRepo handles donation history rows.
type DonationRepo struct {
	db *sql.DB
}

func NewDonationRepo(db *sql.DB) *DonationRepo { return &DonationRepo{db: db} }

func (r *DonationRepo) Insert(ctx context.Context, d Donation) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO donations(id, charity_id, wallet_id, amount, tx_hash, created_at)
	VALUES(?, ?, ?, ?, ?, CURRENT_TIMESTAMP);
	`, d.ID, d.CharityID, d.WalletID, d.AmountCents, d.TxHash)
	return err
}

// List returns donations newest first, capped at limit (0 = no cap).
func (r *DonationRepo) List(ctx context.Context, limit int) ([]Donation, error) {
	query := `SELECT id, charity_id, wallet_id, amount, tx_hash, created_at FROM donations ORDER BY created_at DESC, id DESC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Donation
	for rows.Next() {
		var d Donation
		if err := rows.Scan(&d.ID, &d.CharityID, &d.WalletID, &d.AmountCents, &d.TxHash, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// TotalByCharity returns per-charity donation totals, largest first.
func (r *DonationRepo) TotalByCharity(ctx context.Context) ([]CharityTotal, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT charity_id, COUNT(*), SUM(amount) as total
	FROM donations
	GROUP BY charity_id
	ORDER BY total DESC;
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CharityTotal
	for rows.Next() {
		var ct CharityTotal
		if err := rows.Scan(&ct.CharityID, &ct.Count, &ct.TotalCents); err != nil {
			return nil, err
		}
		out = append(out, ct)
	}
	return out, rows.Err()
}

func (r *DonationRepo) Get(ctx context.Context, id string) (*Donation, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, charity_id, wallet_id, amount, tx_hash, created_at FROM donations WHERE id = ?`, id)
	var d Donation
	if err := row.Scan(&d.ID, &d.CharityID, &d.WalletID, &d.AmountCents, &d.TxHash, &d.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}
