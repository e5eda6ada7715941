package dispatch

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"outreach/internal/credentials"
	"outreach/internal/domain"
	"outreach/internal/notify"
	"outreach/internal/providers/twilio"
	"outreach/internal/providers/whatsapp"
	"outreach/internal/recipients"
)

type fakeWhatsApp struct {
	calls  int
	msgs   []whatsapp.Message
	token  string
	result []domain.DispatchResult
	err    error
}

func (f *fakeWhatsApp) SendBulk(ctx context.Context, msgs []whatsapp.Message, accessToken string) ([]domain.DispatchResult, error) {
	f.calls++
	f.msgs = msgs
	f.token = accessToken
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeSMS struct {
	calls      int
	msgs       []twilio.Message
	accountSID string
	authToken  string
	result     []domain.DispatchResult
	err        error
}

func (f *fakeSMS) SendBulk(ctx context.Context, msgs []twilio.Message, accountSID, authToken string) ([]domain.DispatchResult, error) {
	f.calls++
	f.msgs = msgs
	f.accountSID = accountSID
	f.authToken = authToken
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type sinkRecorder struct {
	notices []notify.Notice
}

func (s *sinkRecorder) Notify(ctx context.Context, n notify.Notice) {
	s.notices = append(s.notices, n)
}

func (s *sinkRecorder) last(t *testing.T) notify.Notice {
	t.Helper()
	if len(s.notices) == 0 {
		t.Fatal("expected at least one notice")
	}
	return s.notices[len(s.notices)-1]
}

func newDispatcher(wa *fakeWhatsApp, sms *fakeSMS, creds credentials.Provider, sink notify.Sink) *Dispatcher {
	return &Dispatcher{
		Recipients:  &recipients.Static{},
		Credentials: creds,
		WhatsApp:    wa,
		SMS:         sms,
		Sink:        sink,
		IDGen:       func() string { return "cmp_test" },
	}
}

func TestLaunchEmptyNameFailsValidation(t *testing.T) {
	wa := &fakeWhatsApp{}
	sms := &fakeSMS{}
	sink := &sinkRecorder{}
	d := newDispatcher(wa, sms, &credentials.Static{}, sink)

	_, err := d.Launch(context.Background(), domain.Campaign{
		Channel: domain.ChannelWhatsApp,
		Body:    "Hi {name}",
	})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("got %v, want ValidationError", err)
	}
	if len(ve.Fields) != 1 || ve.Fields[0] != "name" {
		t.Fatalf("got fields %v, want [name]", ve.Fields)
	}
	if wa.calls != 0 || sms.calls != 0 {
		t.Fatalf("channel clients invoked: wa=%d sms=%d", wa.calls, sms.calls)
	}
	if n := sink.last(t); n.Severity != notify.SeverityError {
		t.Fatalf("got severity %q, want error", n.Severity)
	}
}

func TestLaunchEmptyBodyFailsValidation(t *testing.T) {
	wa := &fakeWhatsApp{}
	d := newDispatcher(wa, &fakeSMS{}, &credentials.Static{}, &sinkRecorder{})

	_, err := d.Launch(context.Background(), domain.Campaign{
		Name:    "January Reminder",
		Channel: domain.ChannelWhatsApp,
	})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("got %v, want ValidationError", err)
	}
	if len(ve.Fields) != 1 || ve.Fields[0] != "body" {
		t.Fatalf("got fields %v, want [body]", ve.Fields)
	}
	if wa.calls != 0 {
		t.Fatal("whatsapp client invoked before validation passed")
	}
}

func TestLaunchMissingWhatsAppConfig(t *testing.T) {
	wa := &fakeWhatsApp{}
	sink := &sinkRecorder{}
	d := newDispatcher(wa, &fakeSMS{}, &credentials.Static{}, sink)

	_, err := d.Launch(context.Background(), domain.Campaign{
		Name:    "January Reminder",
		Channel: domain.ChannelWhatsApp,
		Body:    "Hi {name}, you owe {amount}",
	})

	var ce *domain.ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("got %v, want ConfigurationError", err)
	}
	if err.Error() != "WhatsApp configuration missing" {
		t.Fatalf("got %q, want %q", err.Error(), "WhatsApp configuration missing")
	}
	if wa.calls != 0 {
		t.Fatal("whatsapp client invoked despite missing credentials")
	}
}

func TestLaunchMissingTwilioConfig(t *testing.T) {
	sms := &fakeSMS{}
	d := newDispatcher(&fakeWhatsApp{}, sms, &credentials.Static{}, &sinkRecorder{})

	_, err := d.Launch(context.Background(), domain.Campaign{
		Name:    "January Reminder",
		Channel: domain.ChannelSMS,
		Body:    "Hi {name}",
	})

	var ce *domain.ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("got %v, want ConfigurationError", err)
	}
	if err.Error() != "SMS configuration missing" {
		t.Fatalf("got %q, want %q", err.Error(), "SMS configuration missing")
	}
	if sms.calls != 0 {
		t.Fatal("sms client invoked despite missing credentials")
	}
}

func TestLaunchSMSBatch(t *testing.T) {
	sms := &fakeSMS{result: []domain.DispatchResult{
		{To: "+1234567890", ProviderMsgID: "SM1", Status: "queued"},
		{To: "+1987654321", ProviderMsgID: "SM2", Status: "queued"},
	}}
	creds := &credentials.Static{TwilioCfg: credentials.TwilioConfig{
		AccountSID:  "AC123",
		AuthToken:   "secret",
		PhoneNumber: "+15550001111",
	}}
	sink := &sinkRecorder{}
	d := newDispatcher(&fakeWhatsApp{}, sms, creds, sink)

	summary, err := d.Launch(context.Background(), domain.Campaign{
		Name:    "January Reminder",
		Channel: domain.ChannelSMS,
		Body:    "Hi {name}, you owe {amount}",
	})
	if err != nil {
		t.Fatalf("launch: %v", err)
	}

	if sms.calls != 1 {
		t.Fatalf("got %d batch calls, want 1", sms.calls)
	}
	if len(sms.msgs) != 2 {
		t.Fatalf("got %d payloads, want 2", len(sms.msgs))
	}
	if sms.msgs[0].Body != "Hi John Smith, you owe 1250" {
		t.Fatalf("payload 0 body: %q", sms.msgs[0].Body)
	}
	if sms.msgs[1].Body != "Hi Jane Doe, you owe 890" {
		t.Fatalf("payload 1 body: %q", sms.msgs[1].Body)
	}
	for i, m := range sms.msgs {
		if m.From != "+15550001111" {
			t.Fatalf("payload %d from: %q, want configured sender", i, m.From)
		}
	}
	if sms.accountSID != "AC123" || sms.authToken != "secret" {
		t.Fatalf("credentials not forwarded: sid=%q token=%q", sms.accountSID, sms.authToken)
	}

	if summary.State != domain.StateLaunched {
		t.Fatalf("got state %q, want launched", summary.State)
	}
	if summary.Attempted != 2 || summary.Sent != 2 {
		t.Fatalf("got attempted=%d sent=%d, want 2/2", summary.Attempted, summary.Sent)
	}
	if math.Abs(summary.EstimatedCost-0.04) > 1e-9 {
		t.Fatalf("got cost %v, want 0.04", summary.EstimatedCost)
	}
	n := sink.last(t)
	if n.Title != "Campaign Launched" || !strings.Contains(n.Description, "2 messages") {
		t.Fatalf("unexpected notice: %+v", n)
	}
}

func TestLaunchWhatsAppBatchPayloadShape(t *testing.T) {
	wa := &fakeWhatsApp{result: []domain.DispatchResult{
		{To: "+1234567890", ProviderMsgID: "wamid.1", Status: "accepted"},
		{To: "+1987654321", ProviderMsgID: "wamid.2", Status: "accepted"},
	}}
	creds := &credentials.Static{WhatsAppCfg: credentials.WhatsAppConfig{AccessToken: "tok"}}
	d := newDispatcher(wa, &fakeSMS{}, creds, &sinkRecorder{})

	summary, err := d.Launch(context.Background(), domain.Campaign{
		Name:    "January Reminder",
		Channel: domain.ChannelWhatsApp,
		Body:    "Hi {name}, you owe {amount}",
	})
	if err != nil {
		t.Fatalf("launch: %v", err)
	}

	if wa.calls != 1 {
		t.Fatalf("got %d batch calls, want 1", wa.calls)
	}
	if wa.token != "tok" {
		t.Fatalf("access token not forwarded: %q", wa.token)
	}
	if len(wa.msgs) != 2 {
		t.Fatalf("got %d payloads, want 2", len(wa.msgs))
	}
	if wa.msgs[0].To != "+1234567890" || wa.msgs[0].Type != "text" {
		t.Fatalf("payload 0: %+v", wa.msgs[0])
	}
	if wa.msgs[0].Text.Body != "Hi John Smith, you owe 1250" {
		t.Fatalf("payload 0 text: %q", wa.msgs[0].Text.Body)
	}
	if summary.Sent != 2 {
		t.Fatalf("got sent=%d, want 2", summary.Sent)
	}
}

func TestLaunchProviderErrorAbortsWholeCampaign(t *testing.T) {
	sms := &fakeSMS{err: errors.New("Authenticate")}
	creds := &credentials.Static{TwilioCfg: credentials.TwilioConfig{
		AccountSID: "AC123", AuthToken: "secret", PhoneNumber: "+15550001111",
	}}
	sink := &sinkRecorder{}
	d := newDispatcher(&fakeWhatsApp{}, sms, creds, sink)

	summary, err := d.Launch(context.Background(), domain.Campaign{
		Name:    "January Reminder",
		Channel: domain.ChannelSMS,
		Body:    "Hi {name}",
	})

	var de *domain.DispatchError
	if !errors.As(err, &de) {
		t.Fatalf("got %v, want DispatchError", err)
	}
	// Provider message surfaced verbatim.
	if err.Error() != "Authenticate" {
		t.Fatalf("got %q, want provider message passed through", err.Error())
	}
	// All-or-nothing: no partial summary survives a failed batch.
	if summary != nil {
		t.Fatalf("got summary %+v, want nil", summary)
	}
	n := sink.last(t)
	if n.Title != "Campaign Failed" || n.Description != "Authenticate" {
		t.Fatalf("unexpected notice: %+v", n)
	}
}

func TestLaunchEmailHasNoBulkPath(t *testing.T) {
	wa := &fakeWhatsApp{}
	sms := &fakeSMS{}
	sink := &sinkRecorder{}
	d := newDispatcher(wa, sms, &credentials.Static{}, sink)

	summary, err := d.Launch(context.Background(), domain.Campaign{
		Name:    "January Reminder",
		Channel: domain.ChannelEmail,
		Body:    "Dear {name}",
	})
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	if summary.Attempted != 0 || summary.Sent != 0 {
		t.Fatalf("got attempted=%d sent=%d, want 0/0", summary.Attempted, summary.Sent)
	}
	if wa.calls != 0 || sms.calls != 0 {
		t.Fatal("no channel client should be invoked for email")
	}
	if n := sink.last(t); !strings.Contains(n.Description, "0 messages") {
		t.Fatalf("unexpected notice: %+v", n)
	}
}

func TestLaunchUnknownChannelFailsValidation(t *testing.T) {
	d := newDispatcher(&fakeWhatsApp{}, &fakeSMS{}, &credentials.Static{}, &sinkRecorder{})

	_, err := d.Launch(context.Background(), domain.Campaign{
		Name:    "January Reminder",
		Channel: "pigeon",
		Body:    "Hi {name}",
	})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("got %v, want ValidationError", err)
	}
}
