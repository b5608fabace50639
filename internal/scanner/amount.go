package scanner

import (
	"regexp"
	"strconv"
	"strings"
)

// Charged amounts above this are assumed to be corrupted or non-price
// numbers (order IDs, phone fragments), not subscription fees.
const maxAmount = 10000

// Currency and contextual amount patterns, tried in order. Group 1 captures
// the numeric value. Currency-specific forms come first; generic contextual
// forms recover amounts next to billing verbs.
var amountPatterns = []*regexp.Regexp{
	// Saudi riyal
	regexp.MustCompile(`(?i)(?:sar|sr|﷼)\s*(\d+(?:[.,]\d{2})?)`),
	regexp.MustCompile(`(?i)(\d+(?:[.,]\d{2})?)\s*(?:sar|sr|﷼|riyal)`),
	// US dollar
	regexp.MustCompile(`\$\s*(\d+(?:[.,]\d{2})?)`),
	regexp.MustCompile(`(?i)(\d+(?:[.,]\d{2})?)\s*(?:usd|dollars?)`),
	// Euro
	regexp.MustCompile(`€\s*(\d+(?:[.,]\d{2})?)`),
	regexp.MustCompile(`(?i)(\d+(?:[.,]\d{2})?)\s*(?:eur|euros?)`),
	// British pound
	regexp.MustCompile(`£\s*(\d+(?:[.,]\d{2})?)`),
	regexp.MustCompile(`(?i)(\d+(?:[.,]\d{2})?)\s*(?:gbp|pounds?)`),
	// Generic amounts with billing context
	regexp.MustCompile(`(?i)(?:total|amount|price|charge|charged|subscription):\s*[\$€£﷼]?\s*(\d+(?:[.,]\d{2})?)`),
	regexp.MustCompile(`(?i)(?:pay|paid|paying|billed)\s*[\$€£﷼]?\s*(\d+(?:[.,]\d{2})?)`),
	regexp.MustCompile(`(?i)(?:you were charged|you paid|payment of)\s*[\$€£﷼]?\s*(\d+(?:[.,]\d{2})?)`),
	// Recurring phrasing
	regexp.MustCompile(`(?i)(\d+(?:[.,]\d{2})?)\s*(?:per month|/month|monthly|per year|/year|annually)`),
	// Invoice/receipt phrasing
	regexp.MustCompile(`(?i)(?:invoice|receipt|bill).*?[\$€£﷼]\s*(\d+(?:[.,]\d{2})?)`),
	regexp.MustCompile(`(?i)[\$€£﷼]\s*(\d+(?:[.,]\d{2})?)\s*(?:will be|has been|was)\s*(?:charged|billed)`),
	// Arabic amounts
	regexp.MustCompile(`(?i)(?:مبلغ|قيمة|رسوم|خصم|تحصيل)\s*:?\s*(\d+(?:[.,]\d{2})?)\s*(?:ريال|ر\.س|SAR)?`),
	regexp.MustCompile(`(\d+(?:[.,]\d{2})?)\s*(?:ريال|ر\.س)`),
}

// extractAmount returns the first charged amount found in text. Both `.`
// and `,` are accepted as the decimal separator. A match must parse to a
// value strictly between 0 and 10000; anything else is skipped. Returns
// false when no amount is found, which is expected for many receipts, not
// an error.
func extractAmount(text string) (float64, bool) {
	for _, pattern := range amountPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		raw := strings.ReplaceAll(match[1], ",", ".")
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if amount > 0 && amount < maxAmount {
			return amount, true
		}
	}
	return 0, false
}
