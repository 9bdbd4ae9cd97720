package services

import (
	"testing"
)

func TestEstimateUsefulLifeKeywordMatch(t *testing.T) {
	tests := []struct {
		description string
		unitCost    float64
		wantYears   int
	}{
		{"Laptop Computer Dell Latitude 3420", 42000, 5},
		{"Executive Office Chair, leather", 4800, 10},
		{"Steel Filing Cabinet 4-drawer", 7500, 10},
		{"Split-type Aircon 1.5HP", 32000, 5},
		{"Motorcycle, Honda XRM 125", 68000, 9}, // 7 + high-cost bump
		{"Portable Generator 5kVA", 55000, 12},  // 10 + high-cost bump
	}

	for _, tc := range tests {
		got := EstimateUsefulLife(tc.description, tc.unitCost)
		if got.Years != tc.wantYears {
			t.Errorf("%q: years = %d, want %d", tc.description, got.Years, tc.wantYears)
		}
		if got.Confidence != ConfidenceHigh {
			t.Errorf("%q: confidence = %s, want high", tc.description, got.Confidence)
		}
	}
}

func TestEstimateUsefulLifeCaseInsensitive(t *testing.T) {
	got := EstimateUsefulLife("LAPTOP ACER ASPIRE", 30000)
	if got.Years != 5 || got.Confidence != ConfidenceHigh {
		t.Errorf("uppercase description not matched: %+v", got)
	}
}

func TestEstimateUsefulLifeCostBrackets(t *testing.T) {
	expensive := EstimateUsefulLife("Specialized apparatus", 120000)
	if expensive.Years != 10 || expensive.Confidence != ConfidenceMedium {
		t.Errorf("expensive unknown item: %+v", expensive)
	}

	midrange := EstimateUsefulLife("Specialized apparatus", 12000)
	if midrange.Years != 5 || midrange.Confidence != ConfidenceMedium {
		t.Errorf("midrange unknown item: %+v", midrange)
	}

	cheap := EstimateUsefulLife("Specialized apparatus", 800)
	if cheap.Years != 3 || cheap.Confidence != ConfidenceLow {
		t.Errorf("cheap unknown item: %+v", cheap)
	}
}

func TestEstimateUsefulLifeDeterministic(t *testing.T) {
	first := EstimateUsefulLife("Printer Epson L3210", 9500)
	for i := 0; i < 5; i++ {
		again := EstimateUsefulLife("Printer Epson L3210", 9500)
		if again != first {
			t.Fatalf("estimate changed between runs: %+v vs %+v", first, again)
		}
	}
}
