package message

import "pr-review-reminder/pkg/models"

// BadgeMode selects which matched urgency tiers are rendered
type BadgeMode string

const (
	// BadgesAll renders every matched tier, least urgent first
	BadgesAll BadgeMode = "all"
	// BadgesHighest renders only the most urgent matched tier
	BadgesHighest BadgeMode = "highest"
)

// Tier is one urgency level. Urgent tiers add a call-to-action line.
type Tier struct {
	Label  string
	Urgent bool
}

// Tiers is an urgency table ordered from least to most urgent
type Tiers []Tier

// DefaultTiers is the D-n deadline convention: D-3 is three days before the
// review deadline, D-0 is due today
func DefaultTiers() Tiers {
	return Tiers{
		{Label: "D-3"},
		{Label: "D-2"},
		{Label: "D-1"},
		{Label: "D-0", Urgent: true},
	}
}

// NewTiers builds a table from labels ordered least to most urgent, marking
// the labels listed in urgent
func NewTiers(labels, urgent []string) Tiers {
	isUrgent := make(map[string]bool, len(urgent))
	for _, u := range urgent {
		isUrgent[u] = true
	}

	tiers := make(Tiers, 0, len(labels))
	for _, l := range labels {
		tiers = append(tiers, Tier{Label: l, Urgent: isUrgent[l]})
	}
	return tiers
}

// Match returns the tiers the pull request carries, in table order. In
// BadgesHighest mode only the most urgent one is returned.
func (t Tiers) Match(pr models.PullRequest, mode BadgeMode) []Tier {
	var matched []Tier
	for _, tier := range t {
		if pr.HasLabel(tier.Label) {
			matched = append(matched, tier)
		}
	}
	if mode == BadgesHighest && len(matched) > 1 {
		return matched[len(matched)-1:]
	}
	return matched
}
