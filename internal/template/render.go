package template

import (
	"strings"

	"outreach/internal/domain"
	"outreach/internal/util"
)

// Interpolate substitutes the first occurrence of {name} and {amount}
// in the body with the recipient's fields. Only the first occurrence of
// each placeholder is replaced; repeated placeholders stay as written.
// That single-replace behavior is a documented limitation of the flow,
// not a general templating engine. Absent placeholders are no-ops.
func Interpolate(body string, r domain.Recipient) string {
	out := strings.Replace(body, "{name}", r.Name, 1)
	out = strings.Replace(out, "{amount}", util.FormatAmount(r.AmountOwed), 1)
	return out
}

// Preview renders a body against a fixed sample recipient with a
// currency-formatted amount, matching what the review step shows.
func Preview(body string) string {
	out := strings.Replace(body, "{name}", "John Smith", 1)
	out = strings.Replace(out, "{amount}", "$1,250.00", 1)
	return out
}
