package devices

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MaxAxes максимальное число осей, которое поддерживает контроллер
const MaxAxes = 6

// Profile описывает конфигурацию симулируемого оборудования
type Profile struct {
	Motion   MotionProfile   `yaml:"motion"`
	Source   SourceProfile   `yaml:"source"`
	Detector DetectorProfile `yaml:"detector"`
}

type AxisProfile struct {
	Name string  `yaml:"name"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
}

type MotionProfile struct {
	Axes          []AxisProfile `yaml:"axes"`
	MoveLatencyMs int           `yaml:"move_latency_ms"`
	RefLatencyMs  int           `yaml:"ref_latency_ms"`
	Temperature   float64       `yaml:"temperature"`
}

type SourceProfile struct {
	MaxVoltageKV int  `yaml:"max_voltage_kv"`
	MaxCurrentUA int  `yaml:"max_current_ua"`
	WarmUpMs     int  `yaml:"warmup_ms"`
	RampUpMs     int  `yaml:"rampup_ms"`
	StartCold    bool `yaml:"start_cold"`
}

type DetectorProfile struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	BitDepth int `yaml:"bit_depth"`
	FPS      int `yaml:"fps"`
	MaxGain  int `yaml:"max_gain"`
}

// DefaultProfile возвращает профиль стенда по умолчанию: 4 оси, детектор 640x480x16
func DefaultProfile() *Profile {
	return &Profile{
		Motion: MotionProfile{
			Axes: []AxisProfile{
				{Name: "X", Min: -200, Max: 200},
				{Name: "Y", Min: -200, Max: 200},
				{Name: "Z", Min: 0, Max: 500},
				{Name: "R", Min: -360, Max: 360},
			},
			MoveLatencyMs: 50,
			RefLatencyMs:  100,
			Temperature:   24.5,
		},
		Source: SourceProfile{
			MaxVoltageKV: 160,
			MaxCurrentUA: 1000,
			WarmUpMs:     200,
			RampUpMs:     50,
			StartCold:    true,
		},
		Detector: DetectorProfile{
			Width:    640,
			Height:   480,
			BitDepth: 16,
			FPS:      10,
			MaxGain:  7,
		},
	}
}

// LoadProfile читает YAML-профиль. Пустой путь означает профиль по умолчанию.
// Отсутствующие в файле поля берутся из профиля по умолчанию.
func LoadProfile(path string) (*Profile, error) {
	p := DefaultProfile()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read device profile %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse device profile %q: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("device profile %q: %w", path, err)
	}
	return p, nil
}

// Validate проверяет профиль и не изменяет его.
func (p *Profile) Validate() error {
	n := len(p.Motion.Axes)
	if n == 0 || n > MaxAxes {
		return fmt.Errorf("motion: axis count must be in 1..%d, got %d", MaxAxes, n)
	}
	names := make(map[string]struct{}, n)
	for i, ax := range p.Motion.Axes {
		if ax.Name == "" {
			return fmt.Errorf("motion: axis %d has no name", i)
		}
		if _, dup := names[ax.Name]; dup {
			return fmt.Errorf("motion: duplicate axis name %q", ax.Name)
		}
		names[ax.Name] = struct{}{}
		if ax.Min >= ax.Max {
			return fmt.Errorf("motion: axis %q: min %.3f must be below max %.3f", ax.Name, ax.Min, ax.Max)
		}
	}
	if p.Source.MaxVoltageKV <= 0 || p.Source.MaxCurrentUA <= 0 {
		return fmt.Errorf("source: voltage and current limits must be positive")
	}
	d := p.Detector
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("detector: invalid image size %dx%d", d.Width, d.Height)
	}
	if d.BitDepth <= 0 || d.BitDepth > 32 {
		return fmt.Errorf("detector: invalid bit depth %d", d.BitDepth)
	}
	if d.FPS <= 0 {
		return fmt.Errorf("detector: fps must be positive")
	}
	return nil
}
