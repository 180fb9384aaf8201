package modulation

import (
	"fmt"
	"strings"
)

// Scheme identifies a modulated waveform.
type Scheme int

// Schemes in selector order.
const (
	SchemeDSB Scheme = iota
	SchemeVSB
	SchemeSSB
	SchemeLSSB
	SchemeUSSB
	SchemeAM
	SchemeFM
	SchemePM
)

var schemeNames = [...]string{
	SchemeDSB:  "DSB",
	SchemeVSB:  "VSB",
	SchemeSSB:  "SSB",
	SchemeLSSB: "LSSB",
	SchemeUSSB: "USSB",
	SchemeAM:   "AM",
	SchemeFM:   "FM",
	SchemePM:   "PM",
}

// Schemes returns every scheme in selector order.
func Schemes() []Scheme {
	out := make([]Scheme, len(schemeNames))
	for i := range out {
		out[i] = Scheme(i)
	}
	return out
}

// String returns the short scheme name, e.g. "LSSB".
func (s Scheme) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
	return schemeNames[s]
}

// Valid reports whether s is one of the defined schemes.
func (s Scheme) Valid() bool {
	return s >= 0 && int(s) < len(schemeNames)
}

// ParseScheme resolves a scheme name. Matching ignores case and surrounding
// whitespace.
func ParseScheme(name string) (Scheme, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, n := range schemeNames {
		if n == name {
			return Scheme(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Scheme) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownScheme, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scheme) UnmarshalText(text []byte) error {
	v, err := ParseScheme(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
