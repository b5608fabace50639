package scanner

import (
	"fmt"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/khalidmt90/subnav/internal/registry"
)

// For any combination of extraction signals, the confidence score stays
// within 50 and 100.
func TestProperty_ConfidenceBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("score_within_bounds", prop.ForAll(
		func(amount, date, merchant, recurring, known bool) bool {
			score := Score(Signals{
				AmountFound:        amount,
				DateFound:          date,
				MerchantFound:      merchant,
				RecurringIndicator: recurring,
				MerchantKnown:      known,
			})
			return score >= baseConfidence && score <= 100
		},
		gen.Bool(), gen.Bool(), gen.Bool(), gen.Bool(), gen.Bool(),
	))

	properties.Property("score_monotone_in_signals", prop.ForAll(
		func(date, merchant, recurring, known bool) bool {
			without := Score(Signals{DateFound: date, MerchantFound: merchant, RecurringIndicator: recurring, MerchantKnown: known})
			with := Score(Signals{AmountFound: true, DateFound: date, MerchantFound: merchant, RecurringIndicator: recurring, MerchantKnown: known})
			return with >= without
		},
		gen.Bool(), gen.Bool(), gen.Bool(), gen.Bool(),
	))

	properties.TestingRun(t)
}

// For any message, parsing twice yields identical results: the pipeline
// keeps no state between messages.
func TestProperty_ParseIsDeterministic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	p := newTestParser(now)

	properties.Property("parse_twice_same_result", prop.ForAll(
		func(merchant string, amount int, hasKeyword bool) bool {
			body := fmt.Sprintf("receipt from %s", merchant)
			if hasKeyword {
				body = fmt.Sprintf("your subscription receipt from %s, total: %d.00", merchant, amount)
			}
			msg := Message{
				From:    fmt.Sprintf("%s <billing@%s.com>", merchant, merchant),
				Subject: "Receipt",
				Body:    body,
			}

			first, okFirst := p.Parse(msg)
			second, okSecond := p.Parse(msg)
			if okFirst != okSecond {
				return false
			}
			return first == second
		},
		gen.RegexMatch(`[a-z]{3,12}`),
		gen.IntRange(1, 9999),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// For any parsed message, an extracted amount lies strictly between 0 and
// 10000, and a missing amount is reported as exactly 0.
func TestProperty_AmountRange(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("extracted_amount_in_range", prop.ForAll(
		func(text string) bool {
			amount, found := extractAmount(text)
			if found {
				return amount > 0 && amount < 10000
			}
			return amount == 0
		},
		gen.AnyString(),
	))

	properties.Property("valid_charge_always_found", prop.ForAll(
		func(whole int, cents int) bool {
			text := fmt.Sprintf("you will be charged sar %d.%02d monthly", whole, cents)
			amount, found := extractAmount(text)
			if !found {
				return false
			}
			want := float64(whole) + float64(cents)/100
			return amount > want-0.001 && amount < want+0.001
		},
		gen.IntRange(1, 9999),
		gen.IntRange(0, 99),
	))

	properties.TestingRun(t)
}

// For any message without a usable date, the renewal estimate is exactly
// 30 days after the reference time.
func TestProperty_RenewalFallback(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	reg := registry.Default()
	rules := DefaultRuleset()

	properties.Property("dateless_message_gets_30_day_estimate", prop.ForAll(
		func(daysOffset int) bool {
			now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, daysOffset)
			p := NewParser(reg, rules)
			p.now = func() time.Time { return now }

			sub, ok := p.Parse(Message{
				From:    "Netflix <info@netflix.com>",
				Subject: "Your Netflix subscription",
				Body:    "your subscription has been renewed, thank you",
			})
			if !ok {
				return false
			}
			return sub.RenewalDate.Equal(now.Add(30 * 24 * time.Hour))
		},
		gen.IntRange(-365, 365),
	))

	properties.TestingRun(t)
}

// For any text, exclusion patterns override every inclusion signal.
func TestProperty_ExclusionPrecedence(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	rules := DefaultRuleset()
	c := NewClassifier(rules)

	keywordGen := gen.OneConstOf(
		"subscription renewal", "payment received", "invoice", "اشتراك",
	)
	exclusionGen := gen.OneConstOf(
		"newsletter", "limited time offer", "flash sale", "weekly update", "عرض خاص",
	)

	properties.Property("excluded_text_never_candidate", prop.ForAll(
		func(keyword, exclusion string) bool {
			text := fmt.Sprintf("your %s is ready, %s inside", keyword, exclusion)
			return !c.IsCandidate(text, "billing@example.com")
		},
		keywordGen,
		exclusionGen,
	))

	properties.Property("keyword_alone_is_candidate", prop.ForAll(
		func(keyword string) bool {
			text := fmt.Sprintf("your %s is ready", keyword)
			return c.IsCandidate(text, "billing@example.com")
		},
		keywordGen,
	))

	properties.TestingRun(t)
}
