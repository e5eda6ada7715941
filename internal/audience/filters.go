package audience

import "outreach/internal/domain"

// ReachAll is the sentinel reach for an empty filter selection: the
// campaign targets every recipient, which is not the same as zero.
const ReachAll = -1

// Filters is the fixed quick-filter catalog. Counts are precomputed
// match counts over the debtor directory.
var Filters = []domain.AudienceFilter{
	{ID: "overdue", Label: "Overdue Payments", Count: 145},
	{ID: "high-amount", Label: "High Amount (>$1000)", Count: 89},
	{ID: "no-contact", Label: "No Recent Contact", Count: 67},
	{ID: "payment-plan", Label: "In Payment Plan", Count: 34},
}

// ComputeReach resolves a set of selected filter ids into a target
// audience size. Counts are summed naively: overlapping filters
// double-count recipients, which is accepted behavior. The result is
// display only and does not gate dispatch.
func ComputeReach(catalog []domain.AudienceFilter, selectedIDs []string) int {
	if len(selectedIDs) == 0 {
		return ReachAll
	}
	selected := make(map[string]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = true
	}
	sum := 0
	for _, f := range catalog {
		if selected[f.ID] {
			sum += f.Count
		}
	}
	return sum
}
