package output

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/sarandavies/london-house-buying/internal/breakeven"
	"github.com/sarandavies/london-house-buying/internal/engine"
	"github.com/sarandavies/london-house-buying/pkg/history"
	"github.com/sarandavies/london-house-buying/pkg/mortgage"
	"github.com/sarandavies/london-house-buying/pkg/scenario"
)

func sampleResult() engine.Result {
	roi := 59.27
	internalRate := 10.68
	rentUnrecoverable := 62448.48
	return engine.Result{
		Scenario:             scenario.Base,
		Mode:                 engine.ModeInvestedNetWorth,
		AdjustedInterestRate: 4.25,
		AdjustedAppreciation: 2.6,
		LoanAmount:           500000,
		MonthlyPayment:       2708.69,
		TotalInterest:        99947.10,
		MonthsSimulated:      60,
		Costs: engine.CostBundle{
			StampDuty:       20000,
			TransactionFees: 15000,
			Maintenance:     30000,
		},
		Sale: engine.SaleOutcome{
			SaleValue:          682162.83,
			SaleFees:           20464.89,
			RemainingPrincipal: 437425.67,
			GrossProceeds:      224272.28,
		},
		TotalRentPaid:       140509.08,
		FinalMonthlyRent:    2435.47,
		AverageMonthlyRent:  2341.82,
		BuyingUnrecoverable: 164947.10,
		RentUnrecoverable:   &rentUnrecoverable,
		NetCashAfterBuying:  -103249.15,
		BuyerNetWorth:       159272.28,
		RenterNetWorth:      152997.20,
		ROI:                 &roi,
		IRR:                 &internalRate,
		Differential:        6275.09,
	}
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe failed: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func TestPrettyFormat(t *testing.T) {
	output := captureStdout(t, func() {
		PrettyFormat([]engine.Result{sampleResult()})
	})

	expected := []string{
		"--- Scenario base (investedNetWorth comparison) ---",
		"£2,708.69",
		"£20,000.00",
		"£682,162.83",
		"£140,509.08",
		"4.25%",
		"buying comes out ahead by £6,275.09",
	}
	for _, fragment := range expected {
		if !strings.Contains(output, fragment) {
			t.Errorf("PrettyFormat missing %q in output:\n%s", fragment, output)
		}
	}
}

func TestPrettyFormatNegativeDifferential(t *testing.T) {
	result := sampleResult()
	result.Differential = -43724.91

	output := captureStdout(t, func() {
		PrettyFormat([]engine.Result{result})
	})

	if !strings.Contains(output, "renting comes out ahead by £43,724.91") {
		t.Errorf("PrettyFormat missing renting verdict in output:\n%s", output)
	}
}

func TestPrettyFormatUndefinedMetrics(t *testing.T) {
	result := sampleResult()
	result.ROI = nil
	result.IRR = nil
	result.RentUnrecoverable = nil

	output := captureStdout(t, func() {
		PrettyFormat([]engine.Result{result})
	})

	if strings.Count(output, "n/a") != 3 {
		t.Errorf("expected three n/a metrics in output:\n%s", output)
	}
}

func TestPrettyFormatWarnings(t *testing.T) {
	result := sampleResult()
	result.Warnings = []string{"sale year 30 is beyond the 25 year loan term"}

	output := captureStdout(t, func() {
		PrettyFormat([]engine.Result{result})
	})

	if !strings.Contains(output, "sale year 30 is beyond the 25 year loan term") {
		t.Errorf("PrettyFormat missing warning in output:\n%s", output)
	}
}

func TestPrettyFormatEmptyResults(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("PrettyFormat panicked with empty results: %v", r)
		}
	}()

	_ = captureStdout(t, func() {
		PrettyFormat([]engine.Result{})
	})
}

func TestCsvFormat(t *testing.T) {
	second := sampleResult()
	second.Scenario = scenario.StructuralRepairs
	second.Differential = -43724.91

	output := captureStdout(t, func() {
		CsvFormat([]engine.Result{sampleResult(), second})
	})

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 3 {
		t.Fatalf("CsvFormat should produce 3 lines (header + 2 data), got %d", len(lines))
	}

	header := lines[0]
	for _, column := range []string{`"scenario"`, `"monthlyPayment"`, `"stampDuty"`, `"roi"`, `"irr"`, `"differential"`} {
		if !strings.Contains(header, column) {
			t.Errorf("CsvFormat header missing %s", column)
		}
	}

	dataContent := strings.Join(lines[1:], "\n")
	for _, element := range []string{`"base"`, `"structuralRepairs"`, `"2708.69"`, `"20000.00"`, `"6275.09"`, `"-43724.91"`} {
		if !strings.Contains(dataContent, element) {
			t.Errorf("CsvFormat data missing %s", element)
		}
	}
}

func TestCsvFormatUndefinedMetricsAreEmpty(t *testing.T) {
	result := sampleResult()
	result.ROI = nil
	result.IRR = nil

	output := captureStdout(t, func() {
		CsvFormat([]engine.Result{result})
	})

	if !strings.Contains(output, `"",""`) {
		t.Errorf("CsvFormat should emit empty quoted fields for undefined metrics:\n%s", output)
	}
}

func TestPrettySchedule(t *testing.T) {
	rows := []mortgage.Row{
		{Month: 1, Payment: 2708.69, Interest: 1770.83, Principal: 937.86, Remaining: 499062.14},
		{Month: 2, Payment: 2708.69, Interest: 1767.51, Principal: 941.18, Remaining: 498120.96},
	}

	output := captureStdout(t, func() {
		PrettySchedule(rows)
	})

	for _, fragment := range []string{"Month | Payment", "499,062.14", "1,770.83"} {
		if !strings.Contains(output, fragment) {
			t.Errorf("PrettySchedule missing %q in output:\n%s", fragment, output)
		}
	}
}

func TestCsvSchedule(t *testing.T) {
	rows := []mortgage.Row{
		{Month: 1, Payment: 2708.69, Interest: 1770.83, Principal: 937.86, Remaining: 499062.14},
	}

	output := captureStdout(t, func() {
		CsvSchedule(rows)
	})

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 2 {
		t.Fatalf("CsvSchedule should produce 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], `"month","payment"`) {
		t.Errorf("CsvSchedule header malformed: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"499062.14"`) {
		t.Errorf("CsvSchedule data malformed: %s", lines[1])
	}
}

func TestPrettyHistory(t *testing.T) {
	output := captureStdout(t, func() {
		PrettyHistory(history.LondonPeriods())
	})

	for _, fragment := range []string{"2000 - 2005", "Annualized", "%"} {
		if !strings.Contains(output, fragment) {
			t.Errorf("PrettyHistory missing %q in output:\n%s", fragment, output)
		}
	}
}

func TestCsvHistory(t *testing.T) {
	output := captureStdout(t, func() {
		CsvHistory(history.LondonPeriods())
	})

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != len(history.LondonPeriods())+1 {
		t.Fatalf("CsvHistory should produce %d lines, got %d", len(history.LondonPeriods())+1, len(lines))
	}
	if !strings.Contains(lines[0], `"startYear","endYear"`) {
		t.Errorf("CsvHistory header malformed: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"2000","2005"`) {
		t.Errorf("CsvHistory first data row malformed: %s", lines[1])
	}
}

func TestPrettyBreakeven(t *testing.T) {
	output := captureStdout(t, func() {
		PrettyBreakeven(breakeven.Solution{Rate: 1.8342, Differential: 0, Iterations: 31, Converged: true})
	})

	for _, fragment := range []string{"Break-even appreciation", "1.83%", "31 iterations"} {
		if !strings.Contains(output, fragment) {
			t.Errorf("PrettyBreakeven missing %q in output:\n%s", fragment, output)
		}
	}
}

func TestPrettyBreakevenUnconverged(t *testing.T) {
	output := captureStdout(t, func() {
		PrettyBreakeven(breakeven.Solution{Rate: 15, Differential: 82044.17, Converged: false})
	})

	if !strings.Contains(output, "no level point within bounds") {
		t.Errorf("PrettyBreakeven should report the missing level point:\n%s", output)
	}
	if !strings.Contains(output, "£82,044.17") {
		t.Errorf("PrettyBreakeven should report the closest differential:\n%s", output)
	}
}

func TestVerdict(t *testing.T) {
	tests := []struct {
		name         string
		differential float64
		expected     string
	}{
		{"Buying ahead", 6275.09, "buying comes out ahead by £6,275.09"},
		{"Renting ahead", -100.50, "renting comes out ahead by £100.50"},
		{"Dead level", 0, "buying and renting come out level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := verdict(tt.differential); got != tt.expected {
				t.Errorf("verdict(%v) = %q, expected %q", tt.differential, got, tt.expected)
			}
		})
	}
}
