package template

import (
	"strconv"

	"outreach/internal/domain"
)

// Per-channel catalogs are fixed at build time. Voice campaigns have no
// pre-authored bodies, so the voice channel resolves to nothing and the
// operator writes the script by hand.
var catalogs = map[domain.Channel][]domain.MessageTemplate{
	domain.ChannelWhatsApp: {
		{
			ID:          "payment_reminder",
			DisplayName: "Payment Reminder",
			Body:        "Hi {name}, this is a friendly reminder about your outstanding balance of ${amount}. Reply to this message to discuss payment options.",
			Variables:   []string{"name", "amount"},
		},
		{
			ID:          "overdue_notice",
			DisplayName: "Overdue Notice",
			Body:        "Hi {name}, your balance of ${amount} is now overdue. Please contact us today to avoid further action.",
			Variables:   []string{"name", "amount"},
		},
		{
			ID:          "payment_plan_offer",
			DisplayName: "Payment Plan Offer",
			Body:        "Hi {name}, we can help you resolve your balance of ${amount} with a flexible payment plan. Reply YES to learn more.",
			Variables:   []string{"name", "amount"},
		},
	},
	domain.ChannelSMS: {
		{
			ID:          "payment_reminder",
			DisplayName: "Payment Reminder",
			Body:        "Hi {name}, reminder: your balance of ${amount} is outstanding. Call us to arrange payment.",
			Variables:   []string{"name", "amount"},
		},
		{
			ID:          "overdue_notice",
			DisplayName: "Overdue Notice",
			Body:        "{name}, your account balance of ${amount} requires immediate attention. Please call our office.",
			Variables:   []string{"name", "amount"},
		},
	},
	domain.ChannelEmail: {
		{
			ID:          "payment_reminder",
			DisplayName: "Payment Reminder",
			Body:        "Dear {name}, this is a reminder about your outstanding balance of ${amount}. Please contact us to arrange payment.",
			Variables:   []string{"name", "amount"},
		},
		{
			ID:          "overdue_notice",
			DisplayName: "Overdue Notice",
			Body:        "Your account balance of ${amount} requires immediate attention. Please call our office to discuss payment options.",
			Variables:   []string{"amount"},
		},
		{
			ID:          "payment_plan_offer",
			DisplayName: "Payment Plan Offer",
			Body:        "We're here to help you resolve your balance of ${amount}. Contact us to set up a payment plan.",
			Variables:   []string{"amount"},
		},
	},
}

// ForChannel returns the template list for a channel. The slice is
// shared; callers must not mutate it.
func ForChannel(ch domain.Channel) []domain.MessageTemplate {
	return catalogs[ch]
}

// Resolve looks up a template by its position in the channel catalog.
// templateIndex arrives as a string straight from the selection control;
// non-numeric, negative or out-of-range values resolve to nil and the
// caller keeps its current body unchanged.
func Resolve(ch domain.Channel, templateIndex string) *domain.MessageTemplate {
	list := catalogs[ch]
	i, err := strconv.Atoi(templateIndex)
	if err != nil || i < 0 || i >= len(list) {
		return nil
	}
	t := list[i]
	return &t
}
