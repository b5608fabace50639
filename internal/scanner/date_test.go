package scanner

import (
	"testing"
	"time"
)

func TestExtractRenewalDate(t *testing.T) {
	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		text  string
		want  time.Time
		found bool
	}{
		{
			"day first numeric after keyword",
			"your subscription renews on 15/03/2025",
			time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), true,
		},
		{
			"ambiguous numeric read day first",
			"next billing date 01/03/2025",
			time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), true,
		},
		{
			"iso form",
			"renewal scheduled for 2025-06-30",
			time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), true,
		},
		{
			"lowercased month name",
			"will renew on january 15, 2026",
			time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), true,
		},
		{
			"day month-name year",
			"15 march 2025 is your renewal date",
			time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), true,
		},
		{
			"two digit year",
			"expires 05/04/25",
			time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC), true,
		},
		{
			"date without renewal context ignored",
			"order placed on the 15th, reference 12/03/2025 attached",
			time.Time{}, false,
		},
		{
			"too far in the past",
			"renewal was 01/01/2020",
			time.Time{}, false,
		},
		{
			"too far in the future",
			"renews 01/01/2030",
			time.Time{}, false,
		},
		{
			"no date",
			"your subscription has been renewed",
			time.Time{}, false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, found := extractRenewalDate(tc.text, now)
			if found != tc.found {
				t.Fatalf("found = %v, want %v", found, tc.found)
			}
			if found && !got.Equal(tc.want) {
				t.Errorf("date = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestExtractRenewalDate_RangeIsExclusive(t *testing.T) {
	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	// Exactly one year back and exactly two years ahead are out of range
	if _, found := extractRenewalDate("renews on 01/02/2024", now); found {
		t.Error("date exactly one year back must be rejected")
	}
	if _, found := extractRenewalDate("renews on 01/02/2027", now); found {
		t.Error("date exactly two years ahead must be rejected")
	}
	// One day inside either bound is accepted
	if _, found := extractRenewalDate("renews on 02/02/2024", now); !found {
		t.Error("date one day inside the lower bound must be accepted")
	}
	if _, found := extractRenewalDate("renews on 31/01/2027", now); !found {
		t.Error("date one day inside the upper bound must be accepted")
	}
}
