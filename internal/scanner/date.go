package scanner

import (
	"regexp"
	"strings"
	"time"
)

// Date tokens paired with renewal-context keywords, tried in order. A bare
// date with no nearby renewal phrasing is ignored; invoices quote many
// unrelated dates.
var renewalDatePatterns = []*regexp.Regexp{
	// Numeric date after a renewal keyword
	regexp.MustCompile(`(?i)(?:renew|renewal|next billing|due|expires?|next charge).*?(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
	// Numeric date before a renewal keyword
	regexp.MustCompile(`(?i)(\d{1,2}[/-]\d{1,2}[/-]\d{2,4}).*?(?:renew|renewal|billing|due|expires?)`),
	regexp.MustCompile(`(?i)(?:on|date|until):\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
	// ISO form
	regexp.MustCompile(`(?i)(?:renew|renewal|next billing|due|expires?|next charge).*?(\d{4}-\d{2}-\d{2})`),
	// Month-name forms: "January 15, 2024", "15 Jan 2024"
	regexp.MustCompile(`(?i)(?:renew|renewal|next billing|due|expires?|next charge).*?(\w+\s+\d{1,2},?\s+\d{4})`),
	regexp.MustCompile(`(?i)(\w+\s+\d{1,2},?\s+\d{4}).*?(?:renew|renewal|billing|due|expires?)`),
	regexp.MustCompile(`(?i)(\d{1,2}\s+\w+\s+\d{4}).*?(?:renew|renewal|billing|due|expires?)`),
	// "Your next payment is on ..."
	regexp.MustCompile(`(?i)(?:next payment|next charge|will (?:be )?charged?).*?(?:on|is)\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
	regexp.MustCompile(`(?i)(?:next payment|next charge|will (?:be )?charged?).*?(?:on|is)\s*(\w+\s+\d{1,2},?\s+\d{4})`),
}

// Date layouts accepted for a matched token. Numeric forms are day-first.
var renewalDateLayouts = []string{
	"2006-01-02",
	"2/1/2006", "2-1-2006",
	"2/1/06", "2-1-06",
	"January 2, 2006", "January 2 2006",
	"Jan 2, 2006", "Jan 2 2006",
	"2 January 2006", "2 Jan 2006",
}

// extractRenewalDate returns the first renewal date found near a renewal
// keyword. The date must fall within one year back and two years ahead of
// now; already-renewed subscriptions and annual plans stay in range while
// corrupted dates fall out. Returns false when nothing usable is found;
// the caller substitutes a 30-day estimate.
func extractRenewalDate(text string, now time.Time) (time.Time, bool) {
	oneYearAgo := now.AddDate(-1, 0, 0)
	twoYearsAhead := now.AddDate(2, 0, 0)

	for _, pattern := range renewalDatePatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		date, ok := parseDateToken(match[1])
		if !ok {
			continue
		}
		if date.After(oneYearAgo) && date.Before(twoYearsAhead) {
			return date, true
		}
	}

	return time.Time{}, false
}

func parseDateToken(token string) (time.Time, bool) {
	// Extraction text is lowercased; time.Parse wants "Jan", not "jan"
	token = titleCaseWords(strings.TrimSpace(token))
	for _, layout := range renewalDateLayouts {
		if date, err := time.Parse(layout, token); err == nil {
			return date, true
		}
	}
	return time.Time{}, false
}
