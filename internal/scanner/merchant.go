package scanner

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/khalidmt90/subnav/internal/registry"
)

// Subject templates that name the merchant directly, ordered by
// specificity. Group 1 captures the candidate name.
var receiptSubjectPatterns = []*regexp.Regexp{
	// "[Acme] payment receipt"
	regexp.MustCompile(`(?i)^\[([A-Za-z][A-Za-z0-9]+(?:\s+[A-Za-z][A-Za-z0-9]+){0,2})\]\s+(?:payment|receipt|invoice|billing|subscription)`),
	// "Acme payment receipt", "Acme subscription"
	regexp.MustCompile(`(?i)^([A-Za-z][A-Za-z0-9]+(?:\s+[A-Za-z][A-Za-z0-9]+){0,2})\s+(?:payment receipt|receipt for|invoice for|subscription|billing)`),
	// "Receipt from Acme", "subscription to Acme"
	regexp.MustCompile(`(?i)(?:payment receipt for|receipt from|invoice from|subscription to)\s+([A-Za-z][A-Za-z0-9]+(?:\s+[A-Za-z][A-Za-z0-9]+){0,2})`),
	// "Your Acme subscription"
	regexp.MustCompile(`(?i)(?:your|the)\s+([A-Za-z][A-Za-z0-9]+(?:\s+[A-Za-z][A-Za-z0-9]+){0,2})\s+(?:subscription|membership|plan|receipt|invoice|payment)`),
	// Arabic: "اشتراك <name>" and "<name> اشتراك"
	regexp.MustCompile(`(?:اشتراك|تجديد|فاتورة|إيصال)\s+(.{2,30}?)(?:\s+[-–|]|\s*$)`),
	regexp.MustCompile(`(.{2,30}?)\s+(?:اشتراك|تجديد|فاتورة|إيصال)`),
}

// Words a receipt template may capture that are not merchant names
var genericSubjectWords = map[string]bool{
	"payment": true, "receipt": true, "invoice": true, "billing": true,
	"notification": true, "your": true, "the": true, "this": true, "that": true,
	"new": true, "free": true, "trial": true, "update": true, "confirm": true,
	"confirmation": true, "reminder": true, "alert": true,
	"welcome": true, "thank": true, "thanks": true, "dear": true, "hi": true, "hello": true,
	"اشتراك": true, "تجديد": true, "فاتورة": true, "إيصال": true,
	"دفع": true, "سداد": true, "اشتراكك": true,
}

// Role mailbox names that carry no merchant identity
var genericSenderNames = map[string]bool{
	"noreply": true, "no-reply": true, "billing": true, "support": true,
	"info": true, "admin": true, "help": true,
	"team": true, "service": true, "notification": true, "notifications": true,
	"alert": true, "alerts": true,
	"mail": true, "email": true, "donotreply": true, "do-not-reply": true,
	"mailer": true, "postmaster": true,
	"billing team": true, "support team": true, "customer service": true,
	"customer support": true,
}

// Consumer mail providers whose domains never identify a merchant
var genericMailDomains = map[string]bool{
	"gmail": true, "yahoo": true, "hotmail": true, "outlook": true,
	"mail": true, "email": true,
	"googlemail": true, "icloud": true, "protonmail": true, "aol": true, "live": true,
}

var (
	senderDisplayNamePattern = regexp.MustCompile(`^"?([^"<]+?)"?\s*<`)
	senderDomainPattern      = regexp.MustCompile(`@([a-zA-Z0-9-]+)\.`)
)

// Merchant is the result of merchant-name extraction
type Merchant struct {
	Name  string
	Entry *registry.Entry // nil when the name was derived heuristically
}

// Known reports whether the merchant matched the curated registry
func (m Merchant) Known() bool {
	return m.Entry != nil
}

// extractMerchant attributes a message to a merchant. Attempts run in
// reliability order, first success wins: registry match on the sender
// address, registry match on the subject, receipt-template extraction from
// the subject, the sender's display name, and finally the sender's domain.
// Returns false when every attempt fails; such messages cannot be
// attributed and are discarded by the caller.
func extractMerchant(reg *registry.Registry, from, subject string) (Merchant, bool) {
	// Paid services self-identify in their sending domain
	if entry := reg.Match(from, true); entry != nil {
		return Merchant{Name: entry.DisplayName(), Entry: entry}, true
	}
	if entry := reg.Match(subject, false); entry != nil {
		return Merchant{Name: entry.DisplayName(), Entry: entry}, true
	}

	for _, pattern := range receiptSubjectPatterns {
		match := pattern.FindStringSubmatch(subject)
		if match == nil {
			continue
		}
		name := strings.TrimSpace(match[1])
		if utf8.RuneCountInString(name) >= 2 && !genericSubjectWords[strings.ToLower(name)] {
			return Merchant{Name: name}, true
		}
	}

	if name := extractSenderName(from); name != "" {
		return Merchant{Name: name}, true
	}

	return Merchant{}, false
}

// extractSenderName derives a display name from the From header, e.g.
// `KARZOUN <noreply@karzoun.com>` yields "Karzoun". Role names like
// "Billing Team" are skipped in favor of the domain.
func extractSenderName(from string) string {
	if match := senderDisplayNamePattern.FindStringSubmatch(from); match != nil {
		displayName := strings.TrimSpace(match[1])
		if utf8.RuneCountInString(displayName) >= 2 && !genericSenderNames[strings.ToLower(displayName)] {
			return titleCaseWords(displayName)
		}
	}

	// Fallback: second-level domain, "noreply@karzoun.com" -> "Karzoun"
	if match := senderDomainPattern.FindStringSubmatch(from); match != nil {
		domain := strings.ToLower(match[1])
		if !genericMailDomains[domain] && len(domain) >= 3 {
			return strings.ToUpper(domain[:1]) + domain[1:]
		}
	}

	return ""
}

func titleCaseWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if r == utf8.RuneError {
			continue
		}
		words[i] = strings.ToUpper(string(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}
