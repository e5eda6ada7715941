package domain

import "time"

type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelSMS      Channel = "sms"
	ChannelEmail    Channel = "email"
	ChannelVoice    Channel = "voice"
)

func (c Channel) Valid() bool {
	switch c {
	case ChannelWhatsApp, ChannelSMS, ChannelEmail, ChannelVoice:
		return true
	}
	return false
}

// DisplayName is the operator-facing channel name, used in error and
// notification text.
func (c Channel) DisplayName() string {
	switch c {
	case ChannelWhatsApp:
		return "WhatsApp"
	case ChannelSMS:
		return "SMS"
	case ChannelEmail:
		return "Email"
	case ChannelVoice:
		return "Voice"
	}
	return string(c)
}

// CostPerMessage is the estimated provider cost in USD shown on the
// review step. Display only; billing is not reconciled here.
func (c Channel) CostPerMessage() float64 {
	switch c {
	case ChannelWhatsApp:
		return 0.05
	case ChannelSMS:
		return 0.02
	case ChannelEmail:
		return 0.001
	case ChannelVoice:
		return 0.15
	}
	return 0
}

// Campaign is a draft of one outbound-messaging task over a single
// channel. Drafts live only for the duration of a launch request; there
// is no campaign store.
type Campaign struct {
	Name       string  `json:"name"`
	Channel    Channel `json:"channel"`
	TemplateID string  `json:"templateId,omitempty"`
	Body       string  `json:"body"`

	// ScheduledAt is captured from the draft but never consumed: no
	// scheduler exists and dispatch is always immediate.
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
}

// MissingFields reports which required fields are empty, in a fixed order.
func (c Campaign) MissingFields() []string {
	var missing []string
	if c.Name == "" {
		missing = append(missing, "name")
	}
	if c.Body == "" {
		missing = append(missing, "body")
	}
	return missing
}

type MessageTemplate struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	Body        string   `json:"body"`
	Variables   []string `json:"variables"`
}

type Recipient struct {
	Phone      string  `json:"phone"`
	Name       string  `json:"name"`
	AmountOwed float64 `json:"amountOwed"`
}

type AudienceFilter struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type LaunchState string

const (
	StateIdle       LaunchState = "idle"
	StateValidating LaunchState = "validating"
	StateSending    LaunchState = "sending"
	StateLaunched   LaunchState = "launched"
	StateFailed     LaunchState = "failed"
)

// DispatchResult is one provider outcome per recipient.
type DispatchResult struct {
	To            string `json:"to"`
	ProviderMsgID string `json:"providerMsgId,omitempty"`
	Status        string `json:"status"`
}

// DispatchSummary is the campaign-level outcome of a launch. A summary
// exists only when every send in the batch succeeded; any provider
// error aborts the whole launch with no partial record.
type DispatchSummary struct {
	CampaignID    string           `json:"campaignId"`
	Channel       Channel          `json:"channel"`
	State         LaunchState      `json:"state"`
	Attempted     int              `json:"attempted"`
	Sent          int              `json:"sent"`
	EstimatedCost float64          `json:"estimatedCost"`
	Results       []DispatchResult `json:"results,omitempty"`
}
