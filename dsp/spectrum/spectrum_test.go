package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-modscope/internal/testutil"
)

func TestAmplitudeReadsSineAmplitude(t *testing.T) {
	tests := []struct {
		name string
		n    int
		freq float64
		amp  float64
	}{
		{"even length", 250, 10, 1},
		{"odd length", 101, 7, 2.5},
		{"power of two", 256, 32, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sr := float64(tt.n)
			x := testutil.DeterministicSine(tt.freq, sr, tt.amp, tt.n)
			got, err := Amplitude(x)
			if err != nil {
				t.Fatalf("Amplitude() error = %v", err)
			}
			if len(got) != tt.n/2+1 {
				t.Fatalf("len = %d, want %d", len(got), tt.n/2+1)
			}
			bin := int(tt.freq / BinWidth(tt.n, sr))
			testutil.RequireNear(t, "peak", got[bin], tt.amp, 1e-9)
			for k, v := range got {
				if k != bin && v > 1e-9 {
					t.Fatalf("bin %d = %v, want ~0", k, v)
				}
			}
		})
	}
}

func TestAmplitudeDCAndNyquist(t *testing.T) {
	x := make([]float64, 8)
	for i := range x {
		x[i] = 0.5 + 0.25*math.Cos(math.Pi*float64(i))
	}
	got, err := Amplitude(x)
	if err != nil {
		t.Fatalf("Amplitude() error = %v", err)
	}
	testutil.RequireNear(t, "dc", got[0], 0.5, 1e-12)
	testutil.RequireNear(t, "nyquist", got[4], 0.25, 1e-12)
}

func TestAmplitudeEmpty(t *testing.T) {
	if _, err := Amplitude(nil); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("err = %v, want ErrEmptyInput", err)
	}
}

func TestAmplitudeToneAcrossLengths(t *testing.T) {
	for _, n := range []int{40, 80, 160, 200, 320, 400, 640, 800, 1000, 1280, 1536, 1600, 1920, 2000} {
		x := testutil.DeterministicSine(10, float64(n), 1, n)
		got, err := Amplitude(x)
		if err != nil {
			t.Fatalf("n=%d: Amplitude() error = %v", n, err)
		}
		testutil.RequireNear(t, "bin 10", got[10], 1, 1e-9)
		for k, v := range got {
			if k != 10 && v > 1e-9 {
				t.Fatalf("n=%d: bin %d = %v, want ~0", n, k, v)
			}
		}
	}
}

func TestGoertzelMatchesAmplitude(t *testing.T) {
	x := testutil.DeterministicNoise(4, 1, 60)
	got, err := Amplitude(x)
	if err != nil {
		t.Fatalf("Amplitude() error = %v", err)
	}
	for k := 1; k < len(x)/2; k++ {
		g, err := NewGoertzel(float64(k), float64(len(x)))
		if err != nil {
			t.Fatalf("NewGoertzel(%d) error = %v", k, err)
		}
		g.ProcessBlock(x)
		testutil.RequireNear(t, "magnitude", got[k], 2*math.Sqrt(g.Power())/float64(len(x)), 1e-9)
	}
}

func TestBinWidth(t *testing.T) {
	testutil.RequireNear(t, "width", BinWidth(250, 250), 1, 0)
	testutil.RequireNear(t, "width", BinWidth(500, 250), 0.5, 0)
	if BinWidth(0, 250) != 0 {
		t.Fatal("BinWidth(0) should be 0")
	}
}
