// Package app binds the scope's input form to the computation pipeline and
// holds the figure currently on display.
package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-modscope/dsp/core"
	"github.com/cwbudde/algo-modscope/dsp/modulation"
)

// User-facing text of the invalid-input dialog.
const (
	InvalidInputTitle   = "Error"
	InvalidInputMessage = "Invalid input! Please enter numeric values."
)

// ErrInvalidInput is wrapped by every *InputError.
var ErrInvalidInput = errors.New("app: invalid input")

// InputError reports a form field that did not parse as a finite number.
type InputError struct {
	Field string // field key
	Text  string // text as submitted
	Err   error  // parse failure, nil when the field was missing or non-finite
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("app: invalid input for %s %q: %v", e.Field, e.Text, e.Err)
	}
	return fmt.Sprintf("app: invalid input for %s %q", e.Field, e.Text)
}

// Unwrap exposes ErrInvalidInput and the parse cause.
func (e *InputError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidInput}
	}
	return []error{ErrInvalidInput, e.Err}
}

// Title is the dialog title.
func (e *InputError) Title() string { return InvalidInputTitle }

// Message is the dialog body.
func (e *InputError) Message() string { return InvalidInputMessage }

// Field keys, also used as HTML input names and CLI flag names.
const (
	KeySampleRate       = "fs"
	KeyCarrierFreq      = "fc"
	KeyCarrierAmplitude = "ac"
	KeyMessageFreq      = "fm"
	KeyMessageAmplitude = "am"
	KeyFMDeviation      = "kf"
	KeyPMDeviation      = "kp"
	KeyAMIndex          = "mu"
)

// Field describes one numeric input.
type Field struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Default string `json:"default"`
}

type binding struct {
	key   string
	label string
	ptr   func(*modulation.Params) *float64
}

var bindings = []binding{
	{KeySampleRate, "Sampling Freq", func(p *modulation.Params) *float64 { return &p.SampleRate }},
	{KeyCarrierFreq, "Carrier Freq", func(p *modulation.Params) *float64 { return &p.CarrierFreq }},
	{KeyCarrierAmplitude, "Carrier Amplitude", func(p *modulation.Params) *float64 { return &p.CarrierAmplitude }},
	{KeyMessageFreq, "Message Freq", func(p *modulation.Params) *float64 { return &p.MessageFreq }},
	{KeyMessageAmplitude, "Message Amplitude", func(p *modulation.Params) *float64 { return &p.MessageAmplitude }},
	{KeyFMDeviation, "FM Kf", func(p *modulation.Params) *float64 { return &p.FMDeviation }},
	{KeyPMDeviation, "PM Kp", func(p *modulation.Params) *float64 { return &p.PMDeviation }},
	{KeyAMIndex, "AM Mu", func(p *modulation.Params) *float64 { return &p.AMIndex }},
}

// Fields returns the eight inputs in display order with default text.
func Fields() []Field {
	return FieldsFor(modulation.DefaultParams())
}

// FieldsFor is Fields with defaults taken from p.
func FieldsFor(p modulation.Params) []Field {
	out := make([]Field, len(bindings))
	for i, b := range bindings {
		out[i] = Field{Key: b.key, Label: b.label, Default: FormatValue(*b.ptr(&p))}
	}
	return out
}

// Values renders p as form text keyed by field.
func Values(p modulation.Params) map[string]string {
	out := make(map[string]string, len(bindings))
	for _, b := range bindings {
		out[b.key] = FormatValue(*b.ptr(&p))
	}
	return out
}

// FormatValue renders v in the shortest form that parses back to v.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ParseForm parses every field of values. Surrounding spaces are ignored.
// Empty, missing, non-numeric and non-finite entries yield *InputError for
// the first offending field in display order.
func ParseForm(values map[string]string) (modulation.Params, error) {
	var p modulation.Params
	for _, b := range bindings {
		raw, ok := values[b.key]
		if !ok {
			return modulation.Params{}, &InputError{Field: b.key}
		}
		text := strings.TrimSpace(raw)
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return modulation.Params{}, &InputError{Field: b.key, Text: raw, Err: err}
		}
		if !core.IsFinite(v) {
			return modulation.Params{}, &InputError{Field: b.key, Text: raw}
		}
		*b.ptr(&p) = v
	}
	return p, nil
}
