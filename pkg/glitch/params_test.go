package glitch

import (
	"errors"
	"testing"
)

func TestDefaultParamsValid(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestPresetsValid(t *testing.T) {
	for _, name := range PresetNames() {
		p, ok := Preset(name)
		if !ok {
			t.Fatalf("preset %q missing", name)
		}
		if err := p.Validate(); err != nil {
			t.Fatalf("preset %q invalid: %v", name, err)
		}
	}
}

func TestPresetUnknown(t *testing.T) {
	if _, ok := Preset("nope"); ok {
		t.Fatal("unknown preset reported as known")
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(p *Params)
		param  string
	}{
		{"shift too high", func(p *Params) { p.ShiftIntensity = 51 }, "shift_intensity"},
		{"shift negative", func(p *Params) { p.ShiftIntensity = -1 }, "shift_intensity"},
		{"angle too high", func(p *Params) { p.ShiftAngle = 91 }, "shift_angle"},
		{"angle too low", func(p *Params) { p.ShiftAngle = -91 }, "shift_angle"},
		{"band width zero", func(p *Params) { p.BandWidth = 0 }, "band_width"},
		{"band width too high", func(p *Params) { p.BandWidth = 11 }, "band_width"},
		{"probability too high", func(p *Params) { p.Probability = 1.5 }, "probability"},
		{"probability negative", func(p *Params) { p.Probability = -0.1 }, "probability"},
		{"quality zero", func(p *Params) { p.Quality = 0 }, "quality"},
		{"quality too high", func(p *Params) { p.Quality = 96 }, "quality"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := DefaultParams()
			c.mutate(&p)

			var pe *ParameterError
			if err := p.Validate(); !errors.As(err, &pe) {
				t.Fatalf("want ParameterError, got %v", err)
			} else if pe.Param != c.param {
				t.Fatalf("param = %q, want %q", pe.Param, c.param)
			}
		})
	}
}

func TestValidateBoundaries(t *testing.T) {
	p := DefaultParams()
	p.ShiftIntensity = 0
	p.Probability = 0
	p.Quality = 1
	p.BandWidth = 1
	p.ShiftAngle = -90
	if err := p.Validate(); err != nil {
		t.Fatal(err)
	}

	p.ShiftIntensity = 50
	p.Probability = 1
	p.Quality = 95
	p.BandWidth = 10
	p.ShiftAngle = 90
	if err := p.Validate(); err != nil {
		t.Fatal(err)
	}
}
