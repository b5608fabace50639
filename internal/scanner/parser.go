// Package scanner implements the email-to-subscription extraction engine:
// a text classifier, merchant/amount/date extractors and a confidence
// scorer, combined by Parser into one pipeline. Extraction is heuristic
// and best-effort; the pipeline is pure, so the same message always yields
// the same result.
package scanner

import (
	"strings"
	"time"

	"github.com/khalidmt90/subnav/internal/database/models"
	"github.com/khalidmt90/subnav/internal/registry"
)

// Fields used when the merchant is absent from the curated registry
const (
	defaultLogoColor = "#5B6CF8"
	defaultCategory  = models.CategoryOther
)

// renewalFallback is assumed when no renewal date is found in the text;
// every subscription card must show some estimate.
const renewalFallback = 30 * 24 * time.Hour

const snippetMaxLen = 200

// Message is the content of one email handed to the parser. The transport
// owns fetching and decoding; the parser only reads text.
type Message struct {
	From    string
	Subject string
	Snippet string
	Body    string
}

// Subscription is one extracted subscription candidate
type Subscription struct {
	Name         string          `json:"name"`
	Merchant     string          `json:"merchant"`
	Amount       float64         `json:"amount"` // 0 means unknown
	RenewalDate  time.Time       `json:"renewalDate"`
	Category     models.Category `json:"category"`
	LogoColor    string          `json:"logoColor"`
	EmailFrom    string          `json:"emailFrom"`
	EmailSubject string          `json:"emailSubject"`
	EmailSnippet string          `json:"emailSnippet"`
	Confidence   int             `json:"confidence"`
	IsTrial      bool            `json:"isTrial"`
}

// MerchantKey returns the lowercase merchant name used for deduplication
func (s *Subscription) MerchantKey() string {
	return strings.ToLower(s.Merchant)
}

// Parser runs the full extraction pipeline over single messages
type Parser struct {
	registry   *registry.Registry
	classifier *Classifier
	now        func() time.Time
}

// NewParser creates a parser over the given registry and rules
func NewParser(reg *registry.Registry, rules *Ruleset) *Parser {
	return &Parser{
		registry:   reg,
		classifier: NewClassifier(rules),
		now:        time.Now,
	}
}

// Classifier exposes the parser's classifier, used by the orchestrator to
// build search queries from the same rules.
func (p *Parser) Classifier() *Classifier {
	return p.classifier
}

// Parse classifies a message and, if it looks like a subscription
// notification attributable to a merchant, extracts a subscription
// candidate. Returns false for messages that are rejected or cannot be
// attributed; that is the expected common case, not an error.
func (p *Parser) Parse(msg Message) (Subscription, bool) {
	text := normalizeText(msg)

	if !p.classifier.IsCandidate(text, msg.From) {
		return Subscription{}, false
	}

	merchant, ok := extractMerchant(p.registry, msg.From, msg.Subject)
	if !ok {
		return Subscription{}, false
	}

	amount, amountFound := extractAmount(text)

	now := p.now()
	renewalDate, dateFound := extractRenewalDate(text, now)
	if !dateFound {
		renewalDate = now.Add(renewalFallback)
	}

	category := defaultCategory
	color := defaultLogoColor
	if merchant.Known() {
		category = merchant.Entry.Category
		color = merchant.Entry.Color
	}

	confidence := Score(Signals{
		AmountFound:        amountFound,
		DateFound:          dateFound,
		MerchantFound:      true,
		RecurringIndicator: p.classifier.HasRecurringIndicator(text),
		MerchantKnown:      merchant.Known(),
	})

	return Subscription{
		Name:         merchant.Name,
		Merchant:     merchant.Name,
		Amount:       amount,
		RenewalDate:  renewalDate,
		Category:     category,
		LogoColor:    color,
		EmailFrom:    msg.From,
		EmailSubject: msg.Subject,
		EmailSnippet: truncate(msg.Snippet, snippetMaxLen),
		Confidence:   confidence,
		IsTrial:      p.classifier.IsTrial(text),
	}, true
}

// normalizeText produces the lowercased subject+snippet+body text used by
// the classifier and extractors
func normalizeText(msg Message) string {
	return strings.ToLower(msg.Subject + " " + msg.Snippet + " " + msg.Body)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
