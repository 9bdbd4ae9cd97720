package models

import (
	"testing"
)

func TestValueCategoryFor(t *testing.T) {
	if got := ValueCategoryFor(4999.99); got != CategorySmallValue {
		t.Errorf("below threshold: %s", got)
	}
	if got := ValueCategoryFor(HighValueThreshold); got != CategorySmallValue {
		t.Errorf("at threshold must stay small value: %s", got)
	}
	if got := ValueCategoryFor(5000.01); got != CategoryHighValue {
		t.Errorf("above threshold: %s", got)
	}
}

func TestNumberPrefixes(t *testing.T) {
	if PropertyNoPrefix(CategorySmallValue) != "SPLV" {
		t.Error("small value property prefix")
	}
	if PropertyNoPrefix(CategoryHighValue) != "SPHV" {
		t.Error("high value property prefix")
	}
	if SlipNoPrefix(CategorySmallValue) != "ICS-SPLV" {
		t.Error("small value slip prefix")
	}
	if SlipNoPrefix(CategoryHighValue) != "ICS-SPHV" {
		t.Error("high value slip prefix")
	}
}
