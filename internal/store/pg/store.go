package pg

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"outreach/internal/credentials"
	"outreach/internal/domain"
)

// Store backs the credential provider and the debtor directory with
// Postgres. Channel configs live in a key/value table with the same
// lifecycle as the original browser-local storage: written by the
// configuration flow, read lazily at launch, and treated as empty when
// missing or unparseable.
type Store struct {
	DB *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Store { return &Store{DB: db} }

func (s *Store) WhatsApp(ctx context.Context) (credentials.WhatsAppConfig, error) {
	var cfg credentials.WhatsAppConfig
	raw, err := s.configValue(ctx, credentials.KeyWhatsApp)
	if err != nil {
		return credentials.WhatsAppConfig{}, err
	}
	// Unparseable rows read as empty config; absence is reported by the
	// presence check at launch, not here.
	_ = json.Unmarshal(raw, &cfg)
	return cfg, nil
}

func (s *Store) Twilio(ctx context.Context) (credentials.TwilioConfig, error) {
	var cfg credentials.TwilioConfig
	raw, err := s.configValue(ctx, credentials.KeyTwilio)
	if err != nil {
		return credentials.TwilioConfig{}, err
	}
	_ = json.Unmarshal(raw, &cfg)
	return cfg, nil
}

func (s *Store) configValue(ctx context.Context, key string) ([]byte, error) {
	row := s.DB.QueryRow(ctx, `SELECT value_json FROM channel_configs WHERE key=$1`, key)
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return raw, nil
}

// SetConfig upserts a channel config row. Used by the seeder and the
// configuration flow.
func (s *Store) SetConfig(ctx context.Context, key string, value any, now time.Time) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(ctx, `
		INSERT INTO channel_configs (key, value_json, updated_at)
		VALUES ($1,$2,$3)
		ON CONFLICT (key) DO UPDATE SET value_json=EXCLUDED.value_json, updated_at=EXCLUDED.updated_at
	`, key, b, now)
	return err
}

func (s *Store) List(ctx context.Context) ([]domain.Recipient, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT phone, name, amount_owed FROM debtors ORDER BY phone
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Recipient
	for rows.Next() {
		var r domain.Recipient
		if err := rows.Scan(&r.Phone, &r.Name, &r.AmountOwed); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) UpsertRecipient(ctx context.Context, r domain.Recipient) error {
	_, err := s.DB.Exec(ctx, `
		INSERT INTO debtors (phone, name, amount_owed)
		VALUES ($1,$2,$3)
		ON CONFLICT (phone) DO UPDATE SET name=EXCLUDED.name, amount_owed=EXCLUDED.amount_owed
	`, r.Phone, r.Name, r.AmountOwed)
	return err
}
