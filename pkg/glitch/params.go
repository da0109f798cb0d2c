package glitch

import (
	"fmt"
)

// Parameter ranges. Values outside these fail validation.
const (
	MaxShiftIntensity = 50
	MaxShiftAngle     = 90
	MinBandWidth      = 1
	MaxBandWidth      = 10
	MinQuality        = 1
	MaxQuality        = 95
)

// ParameterError reports a parameter outside its documented range.
type ParameterError struct {
	Param  string
	Value  string
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("glitch: parameter %s=%s: %s", e.Param, e.Value, e.Reason)
}

func paramErr(param string, value interface{}, reason string) *ParameterError {
	return &ParameterError{Param: param, Value: fmt.Sprint(value), Reason: reason}
}

// Params is the full knob set of one transform. The zero value is not
// usable; start from DefaultParams or a preset.
type Params struct {
	// ShiftIntensity is the displacement magnitude in pixels, 0..50.
	ShiftIntensity int
	// ShiftAngle is the displacement direction in degrees, -90..90.
	ShiftAngle float64
	// BandWidth is the number of rows per band, 1..10.
	BandWidth int
	// Probability is the fraction of bands affected, 0..1.
	Probability float64
	// Quality drives the recompression pass, 1..95. Lower means more damage.
	Quality int
}

func DefaultParams() Params {
	return Params{
		ShiftIntensity: 10,
		ShiftAngle:     0,
		BandWidth:      3,
		Probability:    0.8,
		Quality:        30,
	}
}

func (p Params) Validate() error {
	if p.ShiftIntensity < 0 || p.ShiftIntensity > MaxShiftIntensity {
		return paramErr("shift_intensity", p.ShiftIntensity, fmt.Sprintf("must be 0..%d", MaxShiftIntensity))
	}
	if p.ShiftAngle < -MaxShiftAngle || p.ShiftAngle > MaxShiftAngle {
		return paramErr("shift_angle", p.ShiftAngle, fmt.Sprintf("must be -%d..%d", MaxShiftAngle, MaxShiftAngle))
	}
	if p.BandWidth < MinBandWidth || p.BandWidth > MaxBandWidth {
		return paramErr("band_width", p.BandWidth, fmt.Sprintf("must be %d..%d", MinBandWidth, MaxBandWidth))
	}
	if p.Probability < 0 || p.Probability > 1 {
		return paramErr("probability", p.Probability, "must be 0..1")
	}
	if p.Quality < MinQuality || p.Quality > MaxQuality {
		return paramErr("quality", p.Quality, fmt.Sprintf("must be %d..%d", MinQuality, MaxQuality))
	}
	return nil
}

// Presets match the styles shipped with the original tool.
var presets = map[string]Params{
	"subtle": {
		ShiftIntensity: 5,
		ShiftAngle:     0,
		BandWidth:      1,
		Probability:    0.3,
		Quality:        70,
	},
	"vhs": {
		ShiftIntensity: 15,
		ShiftAngle:     10,
		BandWidth:      3,
		Probability:    0.6,
		Quality:        40,
	},
	"datamosh": {
		ShiftIntensity: 25,
		ShiftAngle:     30,
		BandWidth:      5,
		Probability:    0.8,
		Quality:        20,
	},
	"extreme": {
		ShiftIntensity: 40,
		ShiftAngle:     -45,
		BandWidth:      8,
		Probability:    0.9,
		Quality:        10,
	},
}

// Preset returns a named parameter set, or false for an unknown name.
func Preset(name string) (Params, bool) {
	p, ok := presets[name]
	return p, ok
}

// PresetNames lists the known preset names.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
