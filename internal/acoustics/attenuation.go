package acoustics

import "math"

// AtmosphericConditions parameterizes the air-attenuation model (spec
// §4.U). Validate rejects negative humidity or nonpositive absolute
// temperature (spec §7's configuration-error rule); it is not called on
// construction, and AirAttenuation does not call it.
type AtmosphericConditions struct {
	TemperatureC float64 // degrees Celsius
	HumidityPct  float64 // relative humidity, percent
	PressurePa   float64 // atmospheric pressure, Pa
}

// DefaultAtmosphere matches the original implementation's defaults: 20°C,
// 40% relative humidity, 101325 Pa.
func DefaultAtmosphere() AtmosphericConditions {
	return AtmosphericConditions{TemperatureC: 20, HumidityPct: 40, PressurePa: 101325}
}

// Validate enforces spec §7's configuration-error rule.
func (a AtmosphericConditions) Validate() error {
	if a.HumidityPct < 0 {
		return ErrNegativeHumidity
	}
	if a.TemperatureC+273.15 <= 0 {
		return ErrNonPositiveTemperature
	}
	return nil
}

// AirAttenuation computes the ISO-9613-style dB/m attenuation at frequency
// f under the given atmospheric conditions (spec §4.U).
func AirAttenuation(f float64, a AtmosphericConditions) float64 {
	t := a.TemperatureC + 273.15
	const t0 = 293.15
	const t01 = 273.16
	const ps0 = 1.01325e5
	ps := a.PressurePa

	cSat := -6.8346*math.Pow(t01/t, 1.261) + 4.6151
	rhoSat := math.Pow(10, cSat)
	h := (rhoSat * a.HumidityPct * ps0) / ps

	frn := (ps / ps0) * math.Sqrt(t0/t) *
		(9.0 + 280.0*h*math.Exp(-4.17*(math.Cbrt(t0/t)-1.0)))
	fro := (ps / ps0) * (24.0 + (4.04e4*h*(0.02+h))/(0.391+h))

	alpha := f * f * (1.84e-11/((math.Sqrt(t0/t)*ps)/ps0) +
		math.Pow(t0/t, -2.5)*
			((0.1068*math.Exp(-3352.0/t)*frn)/(f*f+frn*frn)+
				(0.01278*math.Exp(-2239.1/t)*fro)/(f*f+fro*fro)))

	return (20.0 * alpha) / math.Log(10)
}

// AirAttenuationVec applies AirAttenuation element-wise over a frequency
// vector (spec §4.U vectorized form).
func AirAttenuationVec(freqs []float64, a AtmosphericConditions) []float64 {
	out := make([]float64, len(freqs))
	for i, f := range freqs {
		out[i] = AirAttenuation(f, a)
	}
	return out
}
