package core

import (
	"math"
	"testing"
)

func TestIsFinite(t *testing.T) {
	tests := []struct {
		x    float64
		want bool
	}{
		{0, true},
		{-250, true},
		{math.Inf(1), false},
		{math.Inf(-1), false},
		{math.NaN(), false},
	}
	for _, tt := range tests {
		if got := IsFinite(tt.x); got != tt.want {
			t.Fatalf("IsFinite(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestLinearPowerToDB(t *testing.T) {
	if got := LinearPowerToDB(100); math.Abs(got-20) > 1e-12 {
		t.Fatalf("LinearPowerToDB(100) = %v, want 20", got)
	}
	if got := LinearPowerToDB(0); !math.IsInf(got, -1) {
		t.Fatalf("LinearPowerToDB(0) = %v, want -Inf", got)
	}
	if got := LinearPowerToDB(-1); !math.IsNaN(got) {
		t.Fatalf("LinearPowerToDB(-1) = %v, want NaN", got)
	}
}
