package recipients

import (
	"context"

	"outreach/internal/domain"
)

// Provider abstracts the debtor directory so the fixed demo list can be
// swapped for a real store without touching the dispatcher.
type Provider interface {
	List(ctx context.Context) ([]domain.Recipient, error)
}

// Static serves a fixed in-memory recipient list. The zero value serves
// the demo debtor pair.
type Static struct {
	Recipients []domain.Recipient
}

var demoRecipients = []domain.Recipient{
	{Phone: "+1234567890", Name: "John Smith", AmountOwed: 1250},
	{Phone: "+1987654321", Name: "Jane Doe", AmountOwed: 890},
}

func (s *Static) List(ctx context.Context) ([]domain.Recipient, error) {
	if len(s.Recipients) == 0 {
		return demoRecipients, nil
	}
	return s.Recipients, nil
}
