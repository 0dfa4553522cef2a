package history

import (
	"math"
	"testing"
)

func TestLondonPeriodsAreContiguous(t *testing.T) {
	periods := LondonPeriods()
	if len(periods) != 5 {
		t.Fatalf("expected 5 periods, got %d", len(periods))
	}

	for i, p := range periods {
		if p.EndYear-p.StartYear != 5 {
			t.Errorf("period %d spans %d years, expected 5", i, p.EndYear-p.StartYear)
		}
		if i > 0 {
			previous := periods[i-1]
			if p.StartYear != previous.EndYear {
				t.Errorf("period %d starts at %d, expected %d", i, p.StartYear, previous.EndYear)
			}
			if p.StartPrice != previous.EndPrice {
				t.Errorf("period %d starts at price %v, expected %v", i, p.StartPrice, previous.EndPrice)
			}
		}
	}
}

// The published return column must agree with the prices it summarizes.
func TestPublishedReturnsMatchPrices(t *testing.T) {
	for _, p := range LondonPeriods() {
		derived := AnnualizedReturn(p.StartPrice, p.EndPrice, p.EndYear-p.StartYear)
		if math.Abs(derived-p.AnnualizedReturnPct) > 0.06 {
			t.Errorf("period %d-%d: derived return %.3f disagrees with published %.1f",
				p.StartYear, p.EndYear, derived, p.AnnualizedReturnPct)
		}
	}
}

func TestAnnualizedReturn(t *testing.T) {
	tests := []struct {
		name     string
		start    float64
		end      float64
		years    int
		expected float64
	}{
		{"Flat", 100000, 100000, 5, 0},
		{"Doubling in ten", 100000, 200000, 10, 7.1773},
		{"Decline", 531000, 486000, 5, -1.7555},
		{"Zero start", 0, 100000, 5, 0},
		{"Zero years", 100000, 200000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AnnualizedReturn(tt.start, tt.end, tt.years)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("AnnualizedReturn(%v, %v, %v) = %v, expected %v",
					tt.start, tt.end, tt.years, result, tt.expected)
			}
		})
	}
}

func TestLondonPeriodsReturnsCopy(t *testing.T) {
	first := LondonPeriods()
	first[0].StartPrice = 1

	second := LondonPeriods()
	if second[0].StartPrice == 1 {
		t.Errorf("mutating the returned slice changed the package data")
	}
}
