package credentials

import "context"

// Storage keys, one per configured channel. These mirror the keys the
// configuration flow writes.
const (
	KeyWhatsApp = "whatsapp_config"
	KeyTwilio   = "twilio_config"
)

type WhatsAppConfig struct {
	AccessToken   string `json:"accessToken"`
	PhoneNumberID string `json:"phoneNumberId,omitempty"`
}

// Present reports whether the config carries enough to authenticate.
func (c WhatsAppConfig) Present() bool { return c.AccessToken != "" }

type TwilioConfig struct {
	AccountSID  string `json:"accountSid"`
	AuthToken   string `json:"authToken"`
	PhoneNumber string `json:"phoneNumber"`
}

func (c TwilioConfig) Present() bool { return c.AccountSID != "" && c.AuthToken != "" }

// Provider is the explicit configuration dependency injected into the
// dispatcher. Lookups happen just-in-time at launch; implementations
// return a zero-value config (never an error) for missing or
// unparseable entries, so absence surfaces only at the presence check.
type Provider interface {
	WhatsApp(ctx context.Context) (WhatsAppConfig, error)
	Twilio(ctx context.Context) (TwilioConfig, error)
}

// Static is an in-memory Provider for tests and local development.
type Static struct {
	WhatsAppCfg WhatsAppConfig
	TwilioCfg   TwilioConfig
}

func (s *Static) WhatsApp(ctx context.Context) (WhatsAppConfig, error) {
	return s.WhatsAppCfg, nil
}

func (s *Static) Twilio(ctx context.Context) (TwilioConfig, error) {
	return s.TwilioCfg, nil
}
