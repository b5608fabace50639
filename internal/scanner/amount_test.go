package scanner

import "testing"

func TestExtractAmount(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		want  float64
		found bool
	}{
		{"sar prefix", "you will be charged sar 21.99 monthly", 21.99, true},
		{"sar suffix", "the plan costs 39 sar per month", 39, true},
		{"riyal word", "total 55.00 riyal", 55, true},
		{"arabic riyal", "تم خصم 99 ريال", 99, true},
		{"dollar symbol", "your payment of $9.99 was received", 9.99, true},
		{"usd suffix", "billed 14.99 usd", 14.99, true},
		{"euro symbol", "€7.50 will be charged", 7.50, true},
		{"pound symbol", "receipt total £3.99", 3.99, true},
		{"comma decimal", "you paid 9,99 eur", 9.99, true},
		{"contextual total", "total: 120.00 for your plan", 120, true},
		{"per month phrasing", "your plan is 29.99 per month", 29.99, true},
		{"zero rejected", "amount: 0.00", 0, false},
		{"over limit rejected", "total: 15000", 0, false},
		{"no amount", "your subscription has been renewed", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, found := extractAmount(tc.text)
			if found != tc.found {
				t.Fatalf("found = %v, want %v", found, tc.found)
			}
			if found && got != tc.want {
				t.Errorf("amount = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestExtractAmount_FirstPatternWins(t *testing.T) {
	// SAR patterns are tried before USD, whatever the text order
	got, found := extractAmount("charged $5.00 and sar 21.99 this month")
	if !found || got != 21.99 {
		t.Errorf("amount = %v (found=%v), want 21.99 from the SAR pattern", got, found)
	}
}
