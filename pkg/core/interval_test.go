package core

import (
	"math"
	"testing"
)

func TestInterval_ContainsAndSurrounds(t *testing.T) {
	interval := NewInterval(1, 2)

	tests := []struct {
		name      string
		x         float64
		contains  bool
		surrounds bool
	}{
		{"below", 0.5, false, false},
		{"lower bound", 1, true, false},
		{"inside", 1.5, true, true},
		{"upper bound", 2, false, false},
		{"above", 3, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := interval.Contains(tt.x); got != tt.contains {
				t.Errorf("Contains(%f): expected %v, got %v", tt.x, tt.contains, got)
			}
			if got := interval.Surrounds(tt.x); got != tt.surrounds {
				t.Errorf("Surrounds(%f): expected %v, got %v", tt.x, tt.surrounds, got)
			}
		})
	}
}

func TestInterval_Empty(t *testing.T) {
	if !EmptyInterval.IsEmpty() {
		t.Error("EmptyInterval should be empty")
	}
	if UniverseInterval.IsEmpty() {
		t.Error("UniverseInterval should not be empty")
	}
	if EmptyInterval.Contains(0) {
		t.Error("EmptyInterval should contain nothing")
	}

	a := NewInterval(-1, 4)
	if got := a.Union(EmptyInterval); got != a {
		t.Errorf("Union with empty should be identity, got %v", got)
	}
}

func TestInterval_Expand(t *testing.T) {
	expanded := NewInterval(0, 0).Expand(0.5)
	if math.Abs(expanded.Min+0.25) > 1e-12 || math.Abs(expanded.Max-0.25) > 1e-12 {
		t.Errorf("Expected [-0.25, 0.25], got %v", expanded)
	}
	if math.Abs(expanded.Size()-0.5) > 1e-12 {
		t.Errorf("Expected size 0.5, got %f", expanded.Size())
	}
}

func TestInterval_Clamp(t *testing.T) {
	interval := NewInterval(0, 0.999)
	if interval.Clamp(-1) != 0 || interval.Clamp(2) != 0.999 || interval.Clamp(0.5) != 0.5 {
		t.Error("Clamp returned unexpected values")
	}
}
