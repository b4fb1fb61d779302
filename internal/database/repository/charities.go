package repository

import (
	"context"
	"database/sql"
)

// CharityRepo handles charity rows.
type CharityRepo struct {
	db *sql.DB
}

func NewCharityRepo(db *sql.DB) *CharityRepo { return &CharityRepo{db: db} }

func (r *CharityRepo) Upsert(ctx context.Context, c Charity) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO charities(id, name, description, address, image, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name, description=excluded.description,
	 address=excluded.address, image=excluded.image, updated_at=CURRENT_TIMESTAMP;
	`, c.ID, c.Name, c.Description, c.Address, c.Image)
	return err
}

func (r *CharityRepo) List(ctx context.Context) ([]Charity, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description, address, image, created_at, updated_at FROM charities ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Charity
	for rows.Next() {
		var c Charity
		var image sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Address, &image, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		if image.Valid {
			c.Image = &image.String
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CharityRepo) Get(ctx context.Context, id string) (*Charity, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, description, address, image, created_at, updated_at FROM charities WHERE id = ?`, id)
	var c Charity
	var image sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Address, &image, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if image.Valid {
		c.Image = &image.String
	}
	return &c, nil
}
