package config

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r3"

	"github.com/san-kum/holodrive/internal/drivetrain"
	"github.com/san-kum/holodrive/internal/motor"
	"github.com/san-kum/holodrive/internal/vecmath"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Name != DefaultName {
		t.Errorf("expected name %s, got %s", DefaultName, cfg.Name)
	}
	if len(cfg.Motors) != 6 {
		t.Errorf("expected 6 motors, got %d", len(cfg.Motors))
	}
	if cfg.OrientationVector() != drivetrain.Reference {
		t.Errorf("expected reference orientation, got %v", cfg.OrientationVector())
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
name: pair
orientation:
  pitch: 0
  roll: 0
  yaw: 3.141592653589793
motors:
  - name: left
    position: [-1, 0, 0]
    direction: [0, 2, 0]
    pwm: [1000, 1500, 1800]
  - name: right
    inverted: true
    position: [1, 0, 0]
    direction: [0, 1, 0]
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}

	dt, err := cfg.Build(nil)
	if err != nil {
		t.Fatal(err)
	}
	if dt.Len() != 2 {
		t.Fatalf("expected 2 motors, got %d", dt.Len())
	}
	if !near(dt.Orientation().Z, math.Pi) {
		t.Errorf("expected yaw pi, got %f", dt.Orientation().Z)
	}

	left, _ := dt.MotorByName("left")
	if left.Direction() != (r3.Vector{Y: 1}) {
		t.Errorf("expected normalized direction, got %v", left.Direction())
	}
	if left.Bounds() != (motor.Bounds{Reverse: 1000, Stop: 1500, Forward: 1800}) {
		t.Errorf("unexpected bounds %+v", left.Bounds())
	}

	right, _ := dt.MotorByName("right")
	if right.Bounds() != motor.DefaultBounds {
		t.Errorf("expected default bounds, got %+v", right.Bounds())
	}
	if right.Direction() != (r3.Vector{Y: -1}) {
		t.Errorf("expected inverted direction, got %v", right.Direction())
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("motors: [")); err == nil {
		t.Error("expected yaml error")
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name  string
		motor MotorConfig
		err   error
	}{
		{"short direction", MotorConfig{Name: "a", Position: []float64{1, 0, 0}, Direction: []float64{1, 0}}, motor.ErrInvalidDirectionLength},
		{"short position", MotorConfig{Name: "a", Position: []float64{1}, Direction: []float64{1, 0, 0}}, vecmath.ErrInvalidLength},
		{"zero direction", MotorConfig{Name: "a", Position: []float64{1, 0, 0}, Direction: []float64{0, 0, 0}}, vecmath.ErrDivisionByZero},
		{"bad pwm", MotorConfig{Name: "a", Position: []float64{1, 0, 0}, Direction: []float64{1, 0, 0}, PWM: []float64{1, 2}}, ErrInvalidBounds},
	}

	for _, tt := range tests {
		cfg := &Config{Name: "bad", Motors: []MotorConfig{tt.motor}}
		_, err := cfg.Build(nil)
		if !errors.Is(err, tt.err) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.err, err)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rig.yaml")
	cfg := DefaultConfig()
	cfg.Orientation = &OrientationConfig{Yaw: 1.25}

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Name != cfg.Name || len(loaded.Motors) != len(cfg.Motors) {
		t.Fatalf("loaded %+v", loaded)
	}
	if loaded.Orientation == nil || loaded.Orientation.Yaw != 1.25 {
		t.Errorf("expected yaw 1.25, got %+v", loaded.Orientation)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFromDrivetrain(t *testing.T) {
	dt := drivetrain.New()
	if _, err := dt.AddMotor("inv", r3.Vector{X: 1}, r3.Vector{Y: 1}, true, motor.DefaultBounds); err != nil {
		t.Fatal(err)
	}

	cfg := FromDrivetrain("one", dt)
	if got := cfg.Motors[0].Direction; got[1] != 1 {
		t.Errorf("expected un-inverted direction, got %v", got)
	}

	rebuilt, err := cfg.Build(nil)
	if err != nil {
		t.Fatal(err)
	}
	m, _ := rebuilt.MotorByIndex(0)
	if m.Direction() != (r3.Vector{Y: -1}) || !m.Inverted() {
		t.Errorf("rebuilt motor differs: %v inverted=%v", m.Direction(), m.Inverted())
	}
}

func TestGetPreset(t *testing.T) {
	cfg, err := GetPreset("rov6")
	if err != nil {
		t.Fatal(err)
	}
	dt, err := cfg.Build(nil)
	if err != nil {
		t.Fatal(err)
	}

	h := math.Sqrt2 / 2
	vels, err := dt.MotorVels(r3.Vector{X: h, Y: h}, r3.Vector{}, false)
	if err != nil {
		t.Fatal(err)
	}
	expected := []float64{0, 1, 0, -1, 0, 0}
	for i := range expected {
		if !near(vels[i], expected[i]) {
			t.Errorf("motor %d: expected %f, got %f", i, expected[i], vels[i])
		}
	}

	cfg.Motors[0].Position[0] = 42
	fresh, _ := GetPreset("rov6")
	if fresh.Motors[0].Position[0] == 42 {
		t.Error("preset was mutated through a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	_, err := GetPreset("nonexistent")
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	expected := []string{"kiwi", "rov6", "xdrive"}
	if len(presets) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, presets)
	}
	for i := range expected {
		if presets[i] != expected[i] {
			t.Errorf("expected %v, got %v", expected, presets)
		}
	}
}

func TestPresetsSpinInPlace(t *testing.T) {
	for _, name := range []string{"xdrive", "kiwi"} {
		cfg, _ := GetPreset(name)
		dt, err := cfg.Build(nil)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		vels, err := dt.MotorVels(r3.Vector{}, r3.Vector{Z: 1}, false)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		for i, v := range vels {
			if !near(v, 1) {
				t.Errorf("%s motor %d: expected 1, got %f", name, i, v)
			}
		}
	}
}
