package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"outreach/internal/config"
	"outreach/internal/credentials"
	"outreach/internal/domain"
	"outreach/internal/logging"
	"outreach/internal/store/pg"
	"outreach/internal/util"
)

// Seeds the debtor directory and, when provided, the channel credential
// rows. Safe to rerun: everything is upserted.
func main() {
	_ = godotenv.Load()

	cfg := config.LoadSeeder()
	logging.Init("seeder", cfg.LogFormat, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		slog.Error("seeder db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	store := pg.New(db)

	debtors := []domain.Recipient{
		{Phone: "+1234567890", Name: "John Smith", AmountOwed: 1250},
		{Phone: "+1987654321", Name: "Jane Doe", AmountOwed: 890},
	}
	for _, r := range debtors {
		r.Phone = util.NormalizePhone(r.Phone)
		if err := store.UpsertRecipient(ctx, r); err != nil {
			slog.Error("seed debtor failed", "phone", r.Phone, "err", err)
			os.Exit(1)
		}
	}
	slog.Info("seeded debtors", "count", len(debtors))

	now := util.NowUTC()
	if cfg.WhatsAppAccessToken != "" {
		err := store.SetConfig(ctx, credentials.KeyWhatsApp, credentials.WhatsAppConfig{
			AccessToken: cfg.WhatsAppAccessToken,
		}, now)
		if err != nil {
			slog.Error("seed whatsapp config failed", "err", err)
			os.Exit(1)
		}
		slog.Info("seeded whatsapp config")
	}
	if cfg.TwilioAccountSID != "" {
		err := store.SetConfig(ctx, credentials.KeyTwilio, credentials.TwilioConfig{
			AccountSID:  cfg.TwilioAccountSID,
			AuthToken:   cfg.TwilioAuthToken,
			PhoneNumber: cfg.TwilioPhoneNumber,
		}, now)
		if err != nil {
			slog.Error("seed twilio config failed", "err", err)
			os.Exit(1)
		}
		slog.Info("seeded twilio config")
	}
}
