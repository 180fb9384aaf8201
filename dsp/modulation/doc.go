// Package modulation synthesizes textbook analog modulation waveforms over a
// one-second observation window.
//
// All functions are closed-form evaluations over an explicit time base:
//
//	message  m(t) = Am*sin(2*pi*Fm*t)
//	carrier  c(t) = Ac*sin(2*pi*Fc*t)
//	AM       Ac*(1 + Mu*m(t))*cos(2*pi*Fc*t)
//	DSB      m(t)*c(t)
//	FM       sin(2*pi*Fc*t + 2*pi*Kf*cumsum(m)/Fs)
//	PM       sin(2*pi*Fc*t + Kp*m(t))
//	VSB      m(t)*c(t) + m^(t)*c^(t)
//	SSB      m(t)*cos(2*pi*Fc*t) - m^(t)*sin(2*pi*Fc*t)
//
// where x^ denotes the quadrature (Hilbert) component computed by package
// analytic. FM integrates the message with a discrete running sum that is
// local to one call.
//
// LSSB and USSB gate the SSB waveform with complementary unit steps around
// 2*pi*Fc*t = pi/2; the step is 0 at the threshold, so the two never overlap.
//
// [Synthesize] evaluates everything for a [Params] set and returns a
// [Signals] value from which [Signals.Select] picks the waveform for a
// [Scheme].
package modulation
