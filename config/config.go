package config

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/saylorsolutions/nain/assert"
	"github.com/saylorsolutions/nain/logging"
	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
	"io"
	"math"
	"os"
	"time"
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

// EnvPrefix is prepended to every environment variable name that [Config.ApplyEnv] reads.
const EnvPrefix = "NAIN_"

// WindowConfig describes the window the sandbox opens.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
}

// Config is the runtime configuration for an application.
type Config struct {
	// Bus is the name of the bus that the window and application share.
	Bus string `yaml:"bus"`
	// Frames limits the number of frames the loop will run. Zero means no limit.
	Frames int `yaml:"frames"`
	// FrameTime is the target duration of a frame. Zero runs frames back to back.
	FrameTime time.Duration  `yaml:"frame_time"`
	Window    WindowConfig   `yaml:"window"`
	Log       logging.Config `yaml:"log"`
}

// Default returns the configuration used when nothing else is specified.
func Default() Config {
	return Config{
		Bus:       "main",
		FrameTime: time.Second / 60,
		Window: WindowConfig{
			Title:  "Nain Engine",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Log: logging.DefaultConfig(),
	}
}

// Decode reads YAML from r over the top of c.
// Fields that aren't present in the document keep their current values.
func (c *Config) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// LoadFile reads the YAML file at path over the top of c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return c.Decode(bytes.NewReader(data))
}

// ApplyEnv overrides fields with values from env, using names like NAIN_BUS and NAIN_WINDOW_WIDTH.
// Values that can't be parsed are ignored.
func (c *Config) ApplyEnv(env Env) {
	c.Bus = env.Val(EnvPrefix+"BUS", c.Bus)
	c.Frames = int(env.Int(EnvPrefix+"FRAMES", int64(c.Frames)))
	c.FrameTime = env.Duration(EnvPrefix+"FRAME_TIME", c.FrameTime)
	c.Window.Title = env.Val(EnvPrefix+"WINDOW_TITLE", c.Window.Title)
	c.Window.Width = envUint32(env, EnvPrefix+"WINDOW_WIDTH", c.Window.Width)
	c.Window.Height = envUint32(env, EnvPrefix+"WINDOW_HEIGHT", c.Window.Height)
	c.Window.VSync = env.Bool(EnvPrefix+"VSYNC", c.Window.VSync)
	c.Log.Level = env.Val(EnvPrefix+"LOG_LEVEL", c.Log.Level)
	c.Log.Format = env.Val(EnvPrefix+"LOG_FORMAT", c.Log.Format)
}

func envUint32(env Env, key string, defaultVal uint32) uint32 {
	val := env.Int(key, -1)
	if val < 0 || val > math.MaxUint32 {
		return defaultVal
	}
	return uint32(val)
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	errs := assert.CollectErrors("; ").
		Check(len(c.Bus) > 0, "%w: bus name is empty", ErrInvalidConfig).
		Check(c.Frames >= 0, "%w: frames must be >= 0, got %d", ErrInvalidConfig, c.Frames).
		Check(c.FrameTime >= 0, "%w: frame time must be >= 0, got %s", ErrInvalidConfig, c.FrameTime).
		Check(c.Window.Width > 0 && c.Window.Height > 0, "%w: window size must be non-zero, got %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	if err := c.Log.Validate(); err != nil {
		errs.Add(fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}
	return errs.Result()
}

// RegisterFlags defines the command line flags read by [Config.ApplyFlags] on fs.
func RegisterFlags(fs *flag.FlagSet) {
	def := Default()
	fs.StringP("config", "c", "", "Path to a YAML configuration file")
	fs.String("bus", def.Bus, "Name of the bus shared by the window and application")
	fs.Int("frames", def.Frames, "Number of frames to run before exiting, 0 runs until the window closes")
	fs.Duration("frame-time", def.FrameTime, "Target duration of each frame")
	fs.String("title", def.Window.Title, "Window title")
	fs.Uint32("width", def.Window.Width, "Window width in pixels")
	fs.Uint32("height", def.Window.Height, "Window height in pixels")
	fs.Bool("vsync", def.Window.VSync, "Enable vertical sync")
	fs.String("log-level", def.Log.Level, "Minimum log level (debug, info, warn, error)")
	fs.String("log-format", def.Log.Format, "Log format (auto, text, json)")
}

// ApplyFlags overrides fields with flags that were explicitly set on the command line.
// Flags left at their defaults don't replace values from a file or the environment.
func (c *Config) ApplyFlags(fs *flag.FlagSet) error {
	var errs []error
	set := func(name string, apply func() error) {
		if !fs.Changed(name) {
			return
		}
		if err := apply(); err != nil {
			errs = append(errs, fmt.Errorf("flag --%s: %w", name, err))
		}
	}
	set("bus", func() (err error) { c.Bus, err = fs.GetString("bus"); return })
	set("frames", func() (err error) { c.Frames, err = fs.GetInt("frames"); return })
	set("frame-time", func() (err error) { c.FrameTime, err = fs.GetDuration("frame-time"); return })
	set("title", func() (err error) { c.Window.Title, err = fs.GetString("title"); return })
	set("width", func() (err error) { c.Window.Width, err = fs.GetUint32("width"); return })
	set("height", func() (err error) { c.Window.Height, err = fs.GetUint32("height"); return })
	set("vsync", func() (err error) { c.Window.VSync, err = fs.GetBool("vsync"); return })
	set("log-level", func() (err error) { c.Log.Level, err = fs.GetString("log-level"); return })
	set("log-format", func() (err error) { c.Log.Format, err = fs.GetString("log-format"); return })
	return errors.Join(errs...)
}

// Load builds a [Config] from defaults, then the file named by the "config" flag if given, then env, then explicitly set flags.
// The result is validated before it's returned.
func Load(fs *flag.FlagSet, env Env) (Config, error) {
	conf := Default()
	if path, err := fs.GetString("config"); err == nil && len(path) > 0 {
		if err := conf.LoadFile(path); err != nil {
			return conf, err
		}
	}
	conf.ApplyEnv(env)
	if err := conf.ApplyFlags(fs); err != nil {
		return conf, err
	}
	return conf, conf.Validate()
}
