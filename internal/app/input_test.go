package app

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-modscope/dsp/modulation"
)

func TestFieldsOrderAndDefaults(t *testing.T) {
	fields := Fields()
	require.Len(t, fields, 8)

	wantLabels := []string{
		"Sampling Freq", "Carrier Freq", "Carrier Amplitude", "Message Freq",
		"Message Amplitude", "FM Kf", "PM Kp", "AM Mu",
	}
	wantDefaults := []string{"250", "10", "1", "5", "1", "10", "1", "0.5"}
	for i, f := range fields {
		assert.Equal(t, wantLabels[i], f.Label)
		assert.Equal(t, wantDefaults[i], f.Default)
	}
}

func TestParseFormDefaults(t *testing.T) {
	p, err := ParseForm(Values(modulation.DefaultParams()))
	require.NoError(t, err)
	assert.Equal(t, modulation.DefaultParams(), p)
}

func TestParseFormTrimsSpaces(t *testing.T) {
	values := Values(modulation.DefaultParams())
	values[KeyCarrierFreq] = "  12.5\t"
	values[KeyAMIndex] = " 1e-1 "

	p, err := ParseForm(values)
	require.NoError(t, err)
	assert.Equal(t, 12.5, p.CarrierFreq)
	assert.Equal(t, 0.1, p.AMIndex)
}

func TestParseFormRejects(t *testing.T) {
	tests := map[string]string{
		"letters":  "abc",
		"empty":    "",
		"blank":    "   ",
		"nan":      "NaN",
		"inf":      "inf",
		"neg inf":  "-Inf",
		"trailing": "10Hz",
		"comma":    "0,5",
	}
	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			values := Values(modulation.DefaultParams())
			values[KeyMessageFreq] = text

			_, err := ParseForm(values)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)

			var inErr *InputError
			require.ErrorAs(t, err, &inErr)
			assert.Equal(t, KeyMessageFreq, inErr.Field)
			assert.Equal(t, text, inErr.Text)
			assert.Equal(t, "Error", inErr.Title())
			assert.Equal(t, "Invalid input! Please enter numeric values.", inErr.Message())
		})
	}
}

func TestParseFormMissingField(t *testing.T) {
	values := Values(modulation.DefaultParams())
	delete(values, KeyPMDeviation)

	_, err := ParseForm(values)
	var inErr *InputError
	require.ErrorAs(t, err, &inErr)
	assert.Equal(t, KeyPMDeviation, inErr.Field)
	assert.Nil(t, inErr.Err)
}

func TestParseFormReportsFirstBadField(t *testing.T) {
	values := Values(modulation.DefaultParams())
	values[KeyCarrierAmplitude] = "x"
	values[KeyAMIndex] = "y"

	_, err := ParseForm(values)
	var inErr *InputError
	require.ErrorAs(t, err, &inErr)
	assert.Equal(t, KeyCarrierAmplitude, inErr.Field)
}

func TestInputErrorUnwrapsCause(t *testing.T) {
	values := Values(modulation.DefaultParams())
	values[KeySampleRate] = "abc"

	_, err := ParseForm(values)
	assert.True(t, errors.Is(err, strconv.ErrSyntax))
	assert.Contains(t, err.Error(), `"abc"`)
}

func TestParseFormAcceptsNonPositiveSampleRate(t *testing.T) {
	values := Values(modulation.DefaultParams())
	values[KeySampleRate] = "0"

	p, err := ParseForm(values)
	require.NoError(t, err)
	assert.Zero(t, p.SampleRate)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "250", FormatValue(250))
	assert.Equal(t, "0.5", FormatValue(0.5))
	assert.Equal(t, "1e+21", FormatValue(1e21))
}
