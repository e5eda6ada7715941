package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"outreach/internal/awsutil"
	"outreach/internal/config"
	"outreach/internal/dispatch"
	"outreach/internal/httpserver"
	"outreach/internal/logging"
	"outreach/internal/notify"
	"outreach/internal/observability"
	"outreach/internal/providers/twilio"
	"outreach/internal/providers/whatsapp"
	sqsqueue "outreach/internal/queue/sqs"
	"outreach/internal/recipients"
	"outreach/internal/store/pg"
	"outreach/internal/util"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadAPI()
	logging.Init("api", cfg.LogFormat, cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := pg.NewPool(ctx, cfg.DBDSN, pg.PoolOptions{
		MaxConns:        cfg.DBPoolMaxConns,
		MinConns:        cfg.DBPoolMinConns,
		MaxConnLifetime: cfg.DBPoolMaxConnLifetime,
		MaxConnIdleTime: cfg.DBPoolMaxConnIdleTime,
	})
	if err != nil {
		slog.Error("api db connect failed", "err", err)
		os.Exit(1)
	}

	observability.Register(prometheus.DefaultRegisterer)

	store := pg.New(db)

	var recipientProvider recipients.Provider = &recipients.Static{}
	if cfg.RecipientSource == "postgres" {
		recipientProvider = store
	}

	var sink notify.Sink = &notify.Log{}
	if cfg.NoticeQueueURL != "" {
		sqsClient, err := awsutil.NewSQSClient(ctx, cfg.AWSRegion, cfg.LocalstackEndpoint)
		if err != nil {
			slog.Error("api sqs client init failed", "err", err)
			os.Exit(1)
		}
		sink = notify.Fanout{
			&notify.Log{},
			&sqsqueue.NoticePublisher{SQS: sqsClient, QueueURL: cfg.NoticeQueueURL},
		}
	}

	wa := &whatsapp.Client{
		HTTP:          &http.Client{Timeout: 8 * time.Second},
		BaseURL:       cfg.WhatsAppBaseURL,
		PhoneNumberID: cfg.WhatsAppPhoneNumberID,
		Limiter:       rate.NewLimiter(rate.Limit(cfg.ProviderRPS), cfg.ProviderBurst),
	}
	tw := &twilio.Client{
		HTTP:    &http.Client{Timeout: 8 * time.Second},
		BaseURL: cfg.TwilioBaseURL,
		Limiter: rate.NewLimiter(rate.Limit(cfg.ProviderRPS), cfg.ProviderBurst),
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "providers",
		MaxRequests: 3,
		Timeout:     20 * time.Second,
		ReadyToTrip: func(c gobreaker.Counts) bool { return c.ConsecutiveFailures >= 10 },
	})

	dispatcher := &dispatch.Dispatcher{
		Recipients:  recipientProvider,
		Credentials: store,
		WhatsApp:    wa,
		SMS:         tw,
		Sink:        sink,
		Breaker:     cb,
		IDGen:       util.NewCampaignID,
	}

	s := httpserver.New()
	api := &httpserver.API{Dispatcher: dispatcher}
	api.Register(s.Mux)

	s.Mux.HandleFunc("/healthz", httpserver.Healthz())
	s.Mux.HandleFunc("/readyz", httpserver.Readyz(2*time.Second, func(ctx context.Context) error {
		return db.Ping(ctx)
	}))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httpserver.Logging(s.Mux),
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		slog.Info("api shutdown", "signal", sig.String())
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("api listening", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("api server failed", "err", err)
		os.Exit(1)
	}

	db.Close()
}
