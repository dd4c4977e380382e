package config

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

var (
	h   = math.Sqrt2 / 2
	c30 = math.Sqrt(3) / 2
)

var pwmServo = []float64{1100, 1500, 1900}

var Presets = map[string]*Config{
	"rov6": {
		Name: "rov6",
		Motors: []MotorConfig{
			{Name: "fr", Position: []float64{h, h, 0}, Direction: []float64{-h, h, 0}, PWM: pwmServo},
			{Name: "fl", Position: []float64{-h, h, 0}, Direction: []float64{h, h, 0}, PWM: pwmServo},
			{Name: "bl", Position: []float64{-h, -h, 0}, Direction: []float64{h, -h, 0}, PWM: pwmServo},
			{Name: "br", Position: []float64{h, -h, 0}, Direction: []float64{-h, -h, 0}, PWM: pwmServo},
			{Name: "fu", Position: []float64{0, 1, 0}, Direction: []float64{0, 0, 1}, PWM: pwmServo},
			{Name: "bu", Position: []float64{0, -1, 0}, Direction: []float64{0, 0, 1}, PWM: pwmServo},
		},
	},
	"xdrive": {
		Name: "xdrive",
		Motors: []MotorConfig{
			{Name: "fr", Position: []float64{h, h, 0}, Direction: []float64{-h, h, 0}},
			{Name: "fl", Position: []float64{-h, h, 0}, Direction: []float64{-h, -h, 0}},
			{Name: "bl", Position: []float64{-h, -h, 0}, Direction: []float64{h, -h, 0}},
			{Name: "br", Position: []float64{h, -h, 0}, Direction: []float64{h, h, 0}},
		},
	},
	"kiwi": {
		Name: "kiwi",
		Motors: []MotorConfig{
			{Name: "front", Position: []float64{0, 1, 0}, Direction: []float64{-1, 0, 0}},
			{Name: "left", Position: []float64{-c30, -0.5, 0}, Direction: []float64{0.5, -c30, 0}},
			{Name: "right", Position: []float64{c30, -0.5, 0}, Direction: []float64{0.5, c30, 0}},
		},
	},
}

// GetPreset returns a copy of the named preset so callers may edit it.
func GetPreset(name string) (*Config, error) {
	preset, ok := Presets[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPreset, "%q", name)
	}
	cfg := &Config{Name: preset.Name, Motors: make([]MotorConfig, len(preset.Motors))}
	for i, m := range preset.Motors {
		cfg.Motors[i] = MotorConfig{
			Name:      m.Name,
			Inverted:  m.Inverted,
			Position:  append([]float64(nil), m.Position...),
			Direction: append([]float64(nil), m.Direction...),
			PWM:       append([]float64(nil), m.PWM...),
		}
	}
	if preset.Orientation != nil {
		o := *preset.Orientation
		cfg.Orientation = &o
	}
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
