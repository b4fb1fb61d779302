package database

import (
	"context"
	"database/sql"

	"github.com/givewheel/givewheel/internal/catalog"
	"github.com/givewheel/givewheel/internal/database/repository"
)

// SeedCharities mirrors the static charity catalog into the database so
// donation rows have something to reference. It is idempotent and safe to
// run on every startup.
func SeedCharities(ctx context.Context, db *sql.DB) error {
	repo := repository.NewCharityRepo(db)
	for _, c := range catalog.Charities() {
		row := repository.Charity{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Address:     c.Address,
		}
		if c.Image != "" {
			img := c.Image
			row.Image = &img
		}
		if err := repo.Upsert(ctx, row); err != nil {
			return err
		}
	}
	return nil
}
