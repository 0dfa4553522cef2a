package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/sarandavies/london-house-buying/internal/engine"
	"github.com/sarandavies/london-house-buying/pkg/scenario"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache(0)

	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss on empty cache")
	}

	if err := c.Set("key", "value"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, ok := c.Get("key")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if got != "value" {
		t.Errorf("Get = %q, expected %q", got, "value")
	}

	if err := c.Set("key", "replaced"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, _ = c.Get("key")
	if got != "replaced" {
		t.Errorf("Get after overwrite = %q, expected %q", got, "replaced")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(time.Millisecond)

	if err := c.Set("key", "value"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("key"); ok {
		t.Error("expected entry to expire")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry should be removed on access, Len = %d", c.Len())
	}
}

func TestMemoryCacheZeroTTLNeverExpires(t *testing.T) {
	c := NewMemoryCache(0)

	if err := c.Set("key", "value"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("key"); !ok {
		t.Error("zero-TTL entry should not expire")
	}
}

func TestDisabledCache(t *testing.T) {
	c := Disabled{}

	if err := c.Set("key", "value"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, ok := c.Get("key"); ok {
		t.Error("disabled cache should always miss")
	}
}

func TestNewSelectsBackend(t *testing.T) {
	tests := []struct {
		name      string
		backend   string
		expectErr bool
	}{
		{"Memory", "memory", false},
		{"Empty defaults to memory", "", false},
		{"None", "none", false},
		{"Redis", "redis", false},
		{"Case insensitive", "MEMORY", false},
		{"Unknown", "memcached", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(nil, Config{Backend: tt.backend, RedisAddress: "localhost:6379"})
			if tt.expectErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if c == nil {
				t.Fatal("New returned nil cache")
			}
		})
	}
}

func TestKeyIsStable(t *testing.T) {
	input := engine.Input{
		Property: engine.LoanParameters{HousePrice: 600000, Deposit: 100000, AnnualInterestRate: 4.25, TermYears: 25},
		Market:   engine.MarketParameters{SaleYear: 5, AppreciationRate: 2.6, AltInvestmentRate: 5.0},
		Scenario: scenario.Base,
		Mode:     engine.ModeInvestedNetWorth,
	}

	first := Key(input)
	second := Key(input)
	if first == "" {
		t.Fatal("Key returned empty digest")
	}
	if first != second {
		t.Errorf("identical inputs produced different keys: %s vs %s", first, second)
	}
	if !strings.HasPrefix(first, "evaluate:") {
		t.Errorf("key %q missing namespace prefix", first)
	}

	input.Property.Deposit = 150000
	if changed := Key(input); changed == first {
		t.Error("different inputs should produce different keys")
	}
}
