package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"outreach/internal/credentials"
	"outreach/internal/domain"
	"outreach/internal/notify"
	"outreach/internal/observability"
	"outreach/internal/providers/twilio"
	"outreach/internal/providers/whatsapp"
	"outreach/internal/recipients"
	"outreach/internal/template"
)

// WhatsAppSender and SMSSender are the channel client contracts the
// dispatcher depends on. Both throw on transport or auth failure.
type WhatsAppSender interface {
	SendBulk(ctx context.Context, msgs []whatsapp.Message, accessToken string) ([]domain.DispatchResult, error)
}

type SMSSender interface {
	SendBulk(ctx context.Context, msgs []twilio.Message, accountSID, authToken string) ([]domain.DispatchResult, error)
}

// Dispatcher turns a campaign draft into one batch of provider sends.
// A launch runs idle -> validating -> sending -> {launched|failed} and
// is terminal on the first attempt: no retry, no partial-success
// tracking, no persistence of in-flight state.
type Dispatcher struct {
	Recipients  recipients.Provider
	Credentials credentials.Provider
	WhatsApp    WhatsAppSender
	SMS         SMSSender
	Sink        notify.Sink

	// Breaker wraps the whole batch call; an open breaker fails the
	// launch like any other provider error.
	Breaker *gobreaker.CircuitBreaker
	IDGen   func() string
}

// Launch validates the draft, checks channel credentials just-in-time,
// builds one payload per recipient and submits them as a single batch.
// Any error from the batch aborts the whole campaign.
//
// Email and voice campaigns have no bulk-send path in this flow; they
// complete with a zero-message summary.
func (d *Dispatcher) Launch(ctx context.Context, c domain.Campaign) (*domain.DispatchSummary, error) {
	campaignID := d.IDGen()
	logger := slog.With("campaign_id", campaignID, "channel", string(c.Channel), "state", string(domain.StateValidating))

	if missing := c.MissingFields(); len(missing) > 0 {
		observability.LaunchBlocked.WithLabelValues("validation").Inc()
		d.notice(ctx, "Missing Information", "Please fill in campaign name and message", notify.SeverityError)
		return nil, &domain.ValidationError{Fields: missing}
	}
	if !c.Channel.Valid() {
		observability.LaunchBlocked.WithLabelValues("validation").Inc()
		d.notice(ctx, "Missing Information", "Unknown campaign channel: "+string(c.Channel), notify.SeverityError)
		return nil, &domain.ValidationError{Fields: []string{"channel"}}
	}
	if c.ScheduledAt != nil {
		// Captured on the draft but not acted upon; there is no scheduler.
		logger.Warn("scheduled date ignored, dispatching immediately", "scheduled_at", c.ScheduledAt)
	}

	// The audience filter selection never reaches this point: dispatch
	// always targets the full directory. See DESIGN.md.
	recips, err := d.Recipients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recipients: %w", err)
	}

	logger = logger.With("state", string(domain.StateSending))
	logger.Info("dispatching campaign", "name", c.Name, "recipients", len(recips))

	start := time.Now()
	attempted, results, err := d.sendBatch(ctx, c, recips)
	if err != nil {
		var blocked *domain.ConfigurationError
		if errors.As(err, &blocked) {
			observability.LaunchBlocked.WithLabelValues("configuration").Inc()
			d.notice(ctx, "Campaign Failed", blocked.Error(), notify.SeverityError)
			return nil, blocked
		}
		observability.Launches.WithLabelValues(string(c.Channel), "failed").Inc()
		d.notice(ctx, "Campaign Failed", err.Error(), notify.SeverityError)
		logger.Error("campaign dispatch failed", "state", string(domain.StateFailed), "err", err)
		return nil, &domain.DispatchError{Channel: c.Channel, Err: err}
	}
	observability.DispatchLatency.WithLabelValues(string(c.Channel)).Observe(time.Since(start).Seconds())
	observability.Launches.WithLabelValues(string(c.Channel), "launched").Inc()
	observability.MessagesSent.WithLabelValues(string(c.Channel)).Add(float64(len(results)))

	summary := &domain.DispatchSummary{
		CampaignID:    campaignID,
		Channel:       c.Channel,
		State:         domain.StateLaunched,
		Attempted:     attempted,
		Sent:          len(results),
		EstimatedCost: c.Channel.CostPerMessage() * float64(len(results)),
		Results:       results,
	}
	d.notice(ctx, "Campaign Launched", fmt.Sprintf("Successfully sent %d messages", summary.Sent), notify.SeverityInfo)
	logger.Info("campaign launched", "state", string(domain.StateLaunched), "sent", summary.Sent)
	return summary, nil
}

// sendBatch checks credentials for the channel, builds the payloads and
// performs the single batch call. A *domain.ConfigurationError return
// means no network call was attempted.
func (d *Dispatcher) sendBatch(ctx context.Context, c domain.Campaign, recips []domain.Recipient) (attempted int, results []domain.DispatchResult, err error) {
	switch c.Channel {
	case domain.ChannelWhatsApp:
		cfg, err := d.Credentials.WhatsApp(ctx)
		if err != nil {
			return 0, nil, fmt.Errorf("read whatsapp config: %w", err)
		}
		if !cfg.Present() {
			return 0, nil, &domain.ConfigurationError{Channel: domain.ChannelWhatsApp}
		}
		msgs := make([]whatsapp.Message, 0, len(recips))
		for _, r := range recips {
			msgs = append(msgs, whatsapp.NewText(r.Phone, template.Interpolate(c.Body, r)))
		}
		results, err := d.throughBreaker(func() ([]domain.DispatchResult, error) {
			return d.WhatsApp.SendBulk(ctx, msgs, cfg.AccessToken)
		})
		observability.ProviderSend.WithLabelValues("whatsapp", sendResult(err)).Inc()
		return len(msgs), results, err

	case domain.ChannelSMS:
		cfg, err := d.Credentials.Twilio(ctx)
		if err != nil {
			return 0, nil, fmt.Errorf("read twilio config: %w", err)
		}
		if !cfg.Present() {
			return 0, nil, &domain.ConfigurationError{Channel: domain.ChannelSMS}
		}
		msgs := make([]twilio.Message, 0, len(recips))
		for _, r := range recips {
			msgs = append(msgs, twilio.Message{
				To:   r.Phone,
				Body: template.Interpolate(c.Body, r),
				From: cfg.PhoneNumber,
			})
		}
		results, err := d.throughBreaker(func() ([]domain.DispatchResult, error) {
			return d.SMS.SendBulk(ctx, msgs, cfg.AccountSID, cfg.AuthToken)
		})
		observability.ProviderSend.WithLabelValues("twilio", sendResult(err)).Inc()
		return len(msgs), results, err
	}

	// email, voice: external collaborators without a bulk path here.
	return 0, nil, nil
}

func sendResult(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (d *Dispatcher) throughBreaker(call func() ([]domain.DispatchResult, error)) ([]domain.DispatchResult, error) {
	if d.Breaker == nil {
		return call()
	}
	v, err := d.Breaker.Execute(func() (any, error) {
		return call()
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.DispatchResult), nil
}

func (d *Dispatcher) notice(ctx context.Context, title, description string, sev notify.Severity) {
	if d.Sink == nil {
		return
	}
	d.Sink.Notify(ctx, notify.Notice{Title: title, Description: description, Severity: sev})
}
