package scanner

// Signals records which independent extraction signals succeeded for one
// message.
type Signals struct {
	AmountFound        bool
	DateFound          bool
	MerchantFound      bool
	RecurringIndicator bool
	MerchantKnown      bool
}

// Confidence weights. Registry membership and explicit recurrence phrasing
// are the strongest correctness signals; bare merchant presence, true for
// virtually every attributed message, contributes least.
const (
	baseConfidence     = 50
	amountWeight       = 15
	dateWeight         = 10
	merchantWeight     = 5
	recurringWeight    = 15
	knownMerchantWeight = 10
)

// Score combines extraction signals into a 0-100 confidence value
func Score(s Signals) int {
	confidence := baseConfidence
	if s.AmountFound {
		confidence += amountWeight
	}
	if s.DateFound {
		confidence += dateWeight
	}
	if s.MerchantFound {
		confidence += merchantWeight
	}
	if s.RecurringIndicator {
		confidence += recurringWeight
	}
	if s.MerchantKnown {
		confidence += knownMerchantWeight
	}
	if confidence > 100 {
		confidence = 100
	}
	return confidence
}
