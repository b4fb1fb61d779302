package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/givewheel/givewheel/internal/config"
	"github.com/givewheel/givewheel/internal/database"
	"github.com/givewheel/givewheel/internal/database/repository"
	"github.com/givewheel/givewheel/internal/event"
	"github.com/givewheel/givewheel/internal/service"
	"github.com/givewheel/givewheel/internal/tui"
	"github.com/givewheel/givewheel/internal/wallet"
)

func main() {
	demoFail := flag.Bool("demo-fail", false, "make every donation attempt fail (for trying the retry flow)")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if err := database.SeedCharities(ctx, db); err != nil {
		log.Fatalf("seed charities: %v", err)
	}

	// repositories
	donationRepo := repository.NewDonationRepo(db)
	charityRepo := repository.NewCharityRepo(db)

	// event log; a broken sink should never block the app
	events := event.Emitter(event.Nop())
	if cfg.Log.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.Path), 0o755); err == nil {
			if l, err := event.NewLog(cfg.Log.Path); err == nil {
				events = l
			} else {
				log.Printf("warn: event log disabled: %v", err)
			}
		}
	}

	gateway := &wallet.MockGateway{
		Delay:       cfg.Donation.Delay(),
		ProviderEnv: cfg.Wallet.ProviderEnv,
		Strict:      cfg.Wallet.Strict,
	}
	if *demoFail {
		gateway.FailWith = wallet.ErrRejected
	}

	donations := &service.DonationService{Gateway: gateway, Donations: donationRepo, Events: events}
	maintenance := &service.MaintenanceService{DB: db}

	p := tea.NewProgram(tui.New(ctx, cfg,
		tui.Repos{Donations: donationRepo, Charities: charityRepo},
		tui.Services{Donation: donations, Maintenance: maintenance},
		gateway, events, nil,
	), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
