package snr

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-modscope/internal/testutil"
)

func TestGammas(t *testing.T) {
	g := Gammas()
	if len(g) != 101 {
		t.Fatalf("len = %d, want 101", len(g))
	}
	if g[0] != 0 || g[100] != 10 {
		t.Fatalf("range = [%v, %v], want [0, 10]", g[0], g[100])
	}
	for i := 1; i < len(g); i++ {
		testutil.RequireNear(t, "step", g[i]-g[i-1], 0.1, 1e-12)
	}
}

func TestSNRdB(t *testing.T) {
	testutil.RequireNear(t, "SNRdB(1, 0)", SNRdB(1, 0), 70, 1e-9)
	testutil.RequireNear(t, "SNRdB(10, 1)", SNRdB(10, 1), 10*math.Log10(10/(1+1e-7)), 1e-12)
	if got := SNRdB(0, 1); !math.IsInf(got, -1) {
		t.Fatalf("SNRdB(0, 1) = %v, want -Inf", got)
	}
}

func TestSweepShape(t *testing.T) {
	x := testutil.DeterministicSine(5, 250, 1, 250)
	c, err := NewSweeper(WithSeed(1)).Sweep(x)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	if c.Len() != 101 || len(c.SNR) != 101 {
		t.Fatalf("curve length = %d/%d, want 101", c.Len(), len(c.SNR))
	}
	testutil.RequireNear(t, "SignalPower", c.SignalPower, 0.5, 1e-12)

	// Noiseless point is bounded by the floor, not infinite.
	testutil.RequireNear(t, "SNR[0]", c.SNR[0], 10*math.Log10(0.5/1e-7), 1e-9)
	testutil.RequireFinite(t, c.SNR)
}

func TestSweepTracksNoisePower(t *testing.T) {
	x := testutil.DeterministicSine(5, 250, 1, 4000)
	c, err := NewSweeper(WithSeed(9)).Sweep(x)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	// With unit noise variance, SNR(gamma) ~ 10*log10(P/gamma^2).
	for _, i := range []int{10, 50, 100} {
		gamma := c.Gamma[i]
		want := 10 * math.Log10(0.5/(gamma*gamma))
		if math.Abs(c.SNR[i]-want) > 0.5 {
			t.Fatalf("gamma=%v: SNR = %v dB, want ~%v dB", gamma, c.SNR[i], want)
		}
	}
	if c.SNR[100] >= c.SNR[10] {
		t.Fatalf("SNR should fall with gamma: %v >= %v", c.SNR[100], c.SNR[10])
	}
}

func TestSweepSeeded(t *testing.T) {
	x := testutil.DeterministicSine(3, 100, 1, 100)
	a, err := NewSweeper(WithSeed(5)).Sweep(x)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	b, err := NewSweeper(WithSeed(5)).Sweep(x)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, a.SNR, b.SNR, 0)
}

func TestSweepRedrawsNoise(t *testing.T) {
	x := testutil.DeterministicSine(3, 100, 1, 100)
	sw := NewSweeper()
	a, err := sw.Sweep(x)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	b, err := sw.Sweep(x)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	same := true
	for i := 1; i < a.Len(); i++ {
		if a.SNR[i] != b.SNR[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected consecutive sweeps to draw different noise")
	}
	if a.SNR[0] != b.SNR[0] {
		t.Fatalf("noiseless point should be identical: %v vs %v", a.SNR[0], b.SNR[0])
	}
}

func TestWithGammas(t *testing.T) {
	sw := NewSweeper(WithSeed(2), WithGammas([]float64{0, 1}))
	c, err := sw.Sweep([]float64{1, -1, 1, -1})
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}
	if got := NewSweeper(WithGammas(nil)).Gammas(); len(got) != GammaSteps {
		t.Fatalf("empty WithGammas should keep defaults, got %d", len(got))
	}
}

func TestSweepEmpty(t *testing.T) {
	if _, err := NewSweeper().Sweep(nil); !errors.Is(err, ErrEmptySignal) {
		t.Fatalf("error = %v, want ErrEmptySignal", err)
	}
}
