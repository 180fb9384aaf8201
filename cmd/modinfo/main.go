// Command modinfo prints time-domain, spectral and envelope statistics of
// every modulated signal.
//
// Usage:
//
//	modinfo [flags] [scheme ...]
//
// Without arguments it prints a row for every scheme.
//
// Examples:
//
//	modinfo
//	modinfo am fm pm
//	modinfo --fs 1000 --fc 50 ssb
//	modinfo --list
package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-modscope/dsp/analytic"
	"github.com/cwbudde/algo-modscope/dsp/modulation"
	"github.com/cwbudde/algo-modscope/dsp/spectrum"
	"github.com/cwbudde/algo-modscope/internal/app"
	"github.com/cwbudde/algo-modscope/internal/compute"
	"github.com/cwbudde/algo-modscope/measure/snr"
	frequencystats "github.com/cwbudde/algo-modscope/stats/frequency"
	timestats "github.com/cwbudde/algo-modscope/stats/time"
)

// gamma indices reported in the table: 0, 1 and 10
var reportGammas = []int{0, 10, 100}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("modinfo", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	list := fs.BoolP("list", "l", false, "list available scheme names")
	seed := fs.Uint64("seed", 1, "noise seed for the SNR columns")

	defaults := app.Values(modulation.DefaultParams())
	texts := make(map[string]*string)
	for _, f := range app.Fields() {
		texts[f.Key] = fs.String(f.Key, defaults[f.Key], f.Label)
	}
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: modinfo [flags] [scheme ...]\n\n")
		fmt.Fprintf(stderr, "Prints time-domain statistics and SNR of the modulated signals.\n")
		fmt.Fprintf(stderr, "Without arguments, prints every scheme.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  modinfo am fm\n")
		fmt.Fprintf(stderr, "  modinfo --fs 1000 --fc 50 ssb\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 1
	}

	if *list {
		for _, s := range modulation.Schemes() {
			fmt.Fprintln(stdout, s)
		}
		return 0
	}

	schemes, err := resolveSchemes(fs.Args())
	if err != nil {
		fmt.Fprintf(stderr, "error: %v (use --list to see available)\n", err)
		return 1
	}

	values := make(map[string]string, len(texts))
	for k, v := range texts {
		values[k] = *v
	}
	params, err := app.ParseForm(values)
	if err != nil {
		if title, msg, ok := app.Dialog(err); ok {
			fmt.Fprintf(stderr, "%s: %s\n", title, msg)
		} else {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 1
	}

	sweeper := snr.NewSweeper(snr.WithSeed(*seed))
	sigs, err := compute.New(compute.WithSweeper(sweeper)).Synthesize(params)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if err := printAnalysis(stdout, params, sigs, schemes, sweeper); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func resolveSchemes(names []string) ([]modulation.Scheme, error) {
	if len(names) == 0 {
		return modulation.Schemes(), nil
	}
	out := make([]modulation.Scheme, 0, len(names))
	for _, name := range names {
		s, err := modulation.ParseScheme(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func printAnalysis(w io.Writer, p modulation.Params, sigs *modulation.Signals, schemes []modulation.Scheme, sw *snr.Sweeper) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Scheme\tLength\tRMS\tPeak\tCrest [dB]\tZero Xings\tPeak [Hz]\tCentroid [Hz]\tLSB\tUSB\tEnv Depth\tSNR g=0 [dB]\tSNR g=1 [dB]\tSNR g=10 [dB]\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "------\t------\t---\t----\t----------\t----------\t---------\t-------------\t---\t---\t---------\t------------\t------------\t-------------\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, s := range schemes {
		x, err := sigs.Select(s)
		if err != nil {
			return err
		}
		st := timestats.Calculate(x)
		curve, err := sw.Sweep(x)
		if err != nil {
			return fmt.Errorf("%s: %w", s, err)
		}
		amp, err := spectrum.Amplitude(x)
		if err != nil {
			return fmt.Errorf("%s: %w", s, err)
		}
		fst := frequencystats.Calculate(amp, spectrum.BinWidth(len(x), p.SampleRate))
		depth, err := envelopeDepth(x)
		if err != nil {
			return fmt.Errorf("%s: %w", s, err)
		}

		if _, err := fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\t%.2f\t%d",
			s,
			humanize.Comma(int64(st.Length)),
			st.RMS,
			st.Peak,
			st.CrestFactor_dB,
			st.ZeroCrossings,
		); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
		if _, err := fmt.Fprintf(tw, "\t%.2f\t%.2f\t%s\t%s\t%.2f",
			fst.PeakFreq,
			fst.Centroid,
			sideband(x, math.Abs(p.CarrierFreq-p.MessageFreq), p.SampleRate),
			sideband(x, p.CarrierFreq+p.MessageFreq, p.SampleRate),
			depth,
		); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
		for _, i := range reportGammas {
			if _, err := fmt.Fprintf(tw, "\t%.2f", curve.SNR[i]); err != nil {
				return fmt.Errorf("writing row: %w", err)
			}
		}
		if _, err := fmt.Fprintln(tw); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	return tw.Flush()
}

// sideband formats the tone amplitude of x at freq, or "-" when freq is
// outside 0..Nyquist.
func sideband(x []float64, freq, sampleRate float64) string {
	a, err := spectrum.ToneAmplitude(x, freq, sampleRate)
	if err != nil {
		return "-"
	}
	return fmt.Sprintf("%.3f", a)
}

// envelopeDepth returns (max-min)/(max+min) of the analytic envelope of x,
// the modulation index of an AM signal. A zero envelope yields 0.
func envelopeDepth(x []float64) (float64, error) {
	env, err := analytic.Envelope(x)
	if err != nil {
		return 0, err
	}
	lo, hi := env[0], env[0]
	for _, v := range env[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi+lo == 0 {
		return 0, nil
	}
	return (hi - lo) / (hi + lo), nil
}
