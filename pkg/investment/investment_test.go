package investment

import (
	"math"
	"testing"
)

func TestCompoundLumpSum(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		rate     float64
		years    int
		expected float64
	}{
		{"Deposit at five percent", 100000, 5.0, 5, 127628.16},
		{"Zero rate", 100000, 0, 5, 100000},
		{"Zero years", 100000, 5.0, 0, 100000},
		{"Zero amount", 0, 5.0, 5, 0},
		{"Negative rate shrinks", 100000, -5.0, 1, 95000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CompoundLumpSum(tt.amount, tt.rate, tt.years)
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("CompoundLumpSum(%v, %v, %v) = %v, expected %v",
					tt.amount, tt.rate, tt.years, result, tt.expected)
			}
		})
	}
}

func TestMonthlyDifferential(t *testing.T) {
	tests := []struct {
		name       string
		payment    float64
		rent       float64
		rentGrowth float64
		altRate    float64
		years      int
		expected   float64
	}{
		{"No growth no return is plain arithmetic", 2000, 1500, 0, 0, 2, 12000},
		{"Cheaper rent builds a surplus", 2708.6905049027355, 2250, 2.0, 5.0, 5, 25369.04},
		{"Dearer rent goes negative", 1500, 2000, 0, 0, 1, -6000},
		{"Shortfall compounds as borrowing", 1000, 2000, 0, 12.0, 1, -12809.33},
		{"Zero years", 2000, 1500, 2.0, 5.0, 0, 0},
		{"Equal payment and rent", 2000, 2000, 0, 5.0, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MonthlyDifferential(tt.payment, tt.rent, tt.rentGrowth, tt.altRate, tt.years)
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("MonthlyDifferential = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestRenterNetWorth(t *testing.T) {
	result := RenterNetWorth(100000, 2708.6905049027355, 2250, 2.0, 5.0, 5)
	expected := 152997.20
	if math.Abs(result-expected) > 0.01 {
		t.Errorf("RenterNetWorth = %v, expected %v", result, expected)
	}

	// With no deposit and rent above the payment the renter position is the
	// negative differential alone.
	result = RenterNetWorth(0, 1500, 2000, 0, 0, 1)
	if math.Abs(result-(-6000)) > 0.01 {
		t.Errorf("RenterNetWorth = %v, expected -6000", result)
	}
}
