package config

import "github.com/kelseyhightower/envconfig"

type APIConfig struct {
	DBDSN       string `envconfig:"DB_DSN" required:"true"`
	Port        string `envconfig:"PORT" default:"8080"`
	MetricsPort string `envconfig:"METRICS_PORT" default:"9090"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"json"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	DBPoolMaxConns        int32  `envconfig:"DB_POOL_MAX_CONNS" default:"4"`
	DBPoolMinConns        int32  `envconfig:"DB_POOL_MIN_CONNS" default:"0"`
	DBPoolMaxConnLifetime string `envconfig:"DB_POOL_MAX_CONN_LIFETIME"`
	DBPoolMaxConnIdleTime string `envconfig:"DB_POOL_MAX_CONN_IDLE_TIME"`

	// Debtor directory source: "static" serves the demo list,
	// "postgres" reads the debtors table.
	RecipientSource string `envconfig:"RECIPIENT_SOURCE" default:"static"`

	// Provider pacing (per pod). Bulk sends issue one HTTP call per
	// recipient against the provider APIs.
	ProviderRPS   float64 `envconfig:"PROVIDER_RPS" default:"5"`
	ProviderBurst int     `envconfig:"PROVIDER_BURST" default:"10"`

	// WhatsApp Business API
	WhatsAppBaseURL       string `envconfig:"WHATSAPP_BASE_URL" default:"https://graph.facebook.com"`
	WhatsAppPhoneNumberID string `envconfig:"WHATSAPP_PHONE_NUMBER_ID"`

	// Twilio
	TwilioBaseURL string `envconfig:"TWILIO_BASE_URL" default:"https://api.twilio.com"`

	// Optional SQS notice fan-out. When unset, campaign notices go to
	// the log only.
	AWSRegion          string `envconfig:"AWS_REGION"`
	NoticeQueueURL     string `envconfig:"NOTICE_QUEUE_URL"`
	LocalstackEndpoint string `envconfig:"LOCALSTACK_ENDPOINT"`
}

type SeederConfig struct {
	DBDSN     string `envconfig:"DB_DSN" required:"true"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	// Credentials seeded into the channel_configs table.
	WhatsAppAccessToken string `envconfig:"SEED_WHATSAPP_ACCESS_TOKEN"`
	TwilioAccountSID    string `envconfig:"SEED_TWILIO_ACCOUNT_SID"`
	TwilioAuthToken     string `envconfig:"SEED_TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber   string `envconfig:"SEED_TWILIO_PHONE_NUMBER"`
}

func LoadAPI() APIConfig {
	var cfg APIConfig
	if err := envconfig.Process("", &cfg); err != nil {
		panic(err)
	}
	return cfg
}

func LoadSeeder() SeederConfig {
	var cfg SeederConfig
	if err := envconfig.Process("", &cfg); err != nil {
		panic(err)
	}
	return cfg
}
