package scanner

import (
	"strings"
)

// Classifier decides whether a message looks like a subscription or
// recurring-payment notification.
type Classifier struct {
	rules *Ruleset

	subscriptionKeywords []string
	recurringIndicators  []string
	exclusionPatterns    []string
}

// NewClassifier creates a classifier over the given rules
func NewClassifier(rules *Ruleset) *Classifier {
	return &Classifier{
		rules:                rules,
		subscriptionKeywords: lowerAll(rules.SubscriptionKeywords),
		recurringIndicators:  lowerAll(rules.RecurringIndicators),
		exclusionPatterns:    lowerAll(rules.ExclusionPatterns),
	}
}

// IsCandidate reports whether the normalized text passes the
// subscription-likelihood check. Exclusion patterns and bulk-newsletter
// sender domains reject before any inclusion signal is considered. A
// message is admitted when either keyword tier matches: broad billing
// vocabulary, or explicit recurrence phrasing for receipts that lack
// classic subscription wording.
func (c *Classifier) IsCandidate(text, senderAddress string) bool {
	if c.IsExcluded(text) {
		return false
	}
	if c.IsNewsletterSender(senderAddress) {
		return false
	}
	return containsAny(text, c.subscriptionKeywords) ||
		containsAny(text, c.recurringIndicators)
}

// IsExcluded reports whether text contains a promotional/newsletter phrase
func (c *Classifier) IsExcluded(text string) bool {
	return containsAny(text, c.exclusionPatterns)
}

// IsNewsletterSender reports whether the sender belongs to a known
// bulk-newsletter domain
func (c *Classifier) IsNewsletterSender(senderAddress string) bool {
	return containsAny(strings.ToLower(senderAddress), c.rules.NewsletterDomains)
}

// HasRecurringIndicator reports whether text carries explicit
// recurring-billing phrasing. This is scored separately from the candidate
// check because it is a stronger correctness signal than the broad tier.
func (c *Classifier) HasRecurringIndicator(text string) bool {
	return containsAny(text, c.recurringIndicators)
}

// IsTrial reports whether trial-indicating language is present
func (c *Classifier) IsTrial(text string) bool {
	return containsAny(text, c.rules.TrialTerms)
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func lowerAll(terms []string) []string {
	out := make([]string, len(terms))
	for i, term := range terms {
		out[i] = strings.ToLower(term)
	}
	return out
}
