package levelwalk

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/gekko3d/levelwalk/camera"
)

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// AssetsConfig picks the level source: BaseURL when set, otherwise Dir.
type AssetsConfig struct {
	BaseURL string        `yaml:"base_url"`
	Dir     string        `yaml:"dir"`
	Level   string        `yaml:"level"`
	Timeout time.Duration `yaml:"timeout"`
	Workers int           `yaml:"workers"`
}

type KeysConfig struct {
	Forward string `yaml:"forward"`
	Back    string `yaml:"back"`
	Left    string `yaml:"left"`
	Right   string `yaml:"right"`
	Jump    string `yaml:"jump"`
	Crouch  string `yaml:"crouch"`
}

// CameraFileConfig holds angles in degrees; CameraConfig converts them.
type CameraFileConfig struct {
	MouseSensitivity     float32    `yaml:"mouse_sensitivity"`
	MoveSpeed            float32    `yaml:"move_speed"`
	FieldOfView          float32    `yaml:"field_of_view"`
	NearClip             float32    `yaml:"near_clip"`
	FarClip              float32    `yaml:"far_clip"`
	PitchMin             float32    `yaml:"pitch_min"`
	PitchMax             float32    `yaml:"pitch_max"`
	Axis                 string     `yaml:"axis"`
	NormalizeDiagonal    bool       `yaml:"normalize_diagonal"`
	InvertY              bool       `yaml:"invert_y"`
	FrameRateIndependent bool       `yaml:"frame_rate_independent"`
	StartCaptured        bool       `yaml:"start_captured"`
	Keys                 KeysConfig `yaml:"keys"`
}

type LogConfig struct {
	Prefix string `yaml:"prefix"`
	Debug  bool   `yaml:"debug"`
}

// FileConfig is the on-disk configuration.
type FileConfig struct {
	Window   WindowConfig     `yaml:"window"`
	Renderer string           `yaml:"renderer"`
	Demo     bool             `yaml:"demo"`
	Assets   AssetsConfig     `yaml:"assets"`
	Camera   CameraFileConfig `yaml:"camera"`
	Log      LogConfig        `yaml:"log"`
}

func DefaultFileConfig() FileConfig {
	def := camera.DefaultConfig()
	return FileConfig{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "levelwalk",
		},
		Renderer: string(RendererWGPU),
		Assets: AssetsConfig{
			Dir:     "public",
			Timeout: 10 * time.Second,
		},
		Camera: CameraFileConfig{
			MouseSensitivity: def.MouseSensitivity,
			MoveSpeed:        def.MoveSpeed,
			FieldOfView:      mgl32.RadToDeg(def.FieldOfView),
			NearClip:         def.NearClip,
			FarClip:          def.FarClip,
			PitchMin:         mgl32.RadToDeg(def.PitchMin),
			PitchMax:         mgl32.RadToDeg(def.PitchMax),
			Axis:             def.Axis.String(),
			StartCaptured:    true,
			Keys: KeysConfig{
				Forward: "W",
				Back:    "S",
				Left:    "A",
				Right:   "D",
				Jump:    "Space",
				Crouch:  "Control",
			},
		},
		Log: LogConfig{Prefix: "levelwalk"},
	}
}

// LoadConfig reads a YAML file over DefaultFileConfig. An empty path or an
// empty file yields the defaults. Unknown keys are rejected.
func LoadConfig(path string) (FileConfig, error) {
	cfg := DefaultFileConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, &ConfigurationError{Field: "file", Reason: err.Error(), Err: err}
	}
	if err := ParseConfig(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ParseConfig decodes YAML into cfg, keeping values the document omits.
func ParseConfig(data []byte, cfg *FileConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return &ConfigurationError{Field: "file", Reason: err.Error(), Err: err}
	}
	return cfg.Validate()
}

func (c FileConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return &ConfigurationError{
			Field:  "window",
			Reason: fmt.Sprintf("size %dx%d must be positive", c.Window.Width, c.Window.Height),
		}
	}
	if _, err := ParseRendererName(c.Renderer); err != nil {
		return err
	}
	if c.Assets.Timeout < 0 {
		return &ConfigurationError{Field: "assets.timeout", Reason: "must not be negative"}
	}
	_, err := c.CameraConfig()
	return err
}

// CameraConfig converts the camera section, resolving key names and
// degrees, and validates the result.
func (c FileConfig) CameraConfig() (camera.Config, error) {
	fc := c.Camera
	axis, err := camera.ParseAxisConvention(fc.Axis)
	if err != nil {
		return camera.Config{}, &ConfigurationError{Field: "camera.axis", Reason: err.Error(), Err: err}
	}

	cfg := camera.Config{
		MouseSensitivity:     fc.MouseSensitivity,
		MoveSpeed:            fc.MoveSpeed,
		FieldOfView:          mgl32.DegToRad(fc.FieldOfView),
		NearClip:             fc.NearClip,
		FarClip:              fc.FarClip,
		PitchMin:             mgl32.DegToRad(fc.PitchMin),
		PitchMax:             mgl32.DegToRad(fc.PitchMax),
		Axis:                 axis,
		NormalizeDiagonal:    fc.NormalizeDiagonal,
		InvertY:              fc.InvertY,
		FrameRateIndependent: fc.FrameRateIndependent,
	}

	keys := []struct {
		field string
		name  string
		dst   *int
	}{
		{"forward", fc.Keys.Forward, &cfg.Bindings.Forward},
		{"back", fc.Keys.Back, &cfg.Bindings.Back},
		{"left", fc.Keys.Left, &cfg.Bindings.Left},
		{"right", fc.Keys.Right, &cfg.Bindings.Right},
		{"jump", fc.Keys.Jump, &cfg.Bindings.Jump},
		{"crouch", fc.Keys.Crouch, &cfg.Bindings.Crouch},
	}
	for _, k := range keys {
		if k.name == "" {
			*k.dst = camera.Unbound
			continue
		}
		key, ok := KeyByName(k.name)
		if !ok {
			return camera.Config{}, &ConfigurationError{
				Field:  "camera.keys." + k.field,
				Reason: fmt.Sprintf("unknown key %q", k.name),
			}
		}
		*k.dst = key
	}

	if err := cfg.Validate(); err != nil {
		return camera.Config{}, &ConfigurationError{Field: "camera", Reason: err.Error(), Err: err}
	}
	return cfg, nil
}

// NewFetcher builds the fetcher the assets section asks for.
func (c AssetsConfig) NewFetcher() Fetcher {
	if c.BaseURL != "" {
		return NewHTTPFetcher(c.BaseURL, c.Timeout)
	}
	return &DirFetcher{FS: os.DirFS(c.Dir)}
}
