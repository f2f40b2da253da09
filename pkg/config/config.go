package config

import (
	"os"
	"path"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/willbeason/fractal-tree/pkg/geometry"
	"github.com/willbeason/fractal-tree/pkg/growth"
	"github.com/willbeason/fractal-tree/pkg/tree"
)

const (
	Name      = "fractal-tree"
	EnvPrefix = "FRACTAL_TREE"
)

// ErrInvalidConfig is returned for settings that cannot produce a drawing.
var ErrInvalidConfig = errors.New("invalid config")

// Display selects where trees are drawn.
type Display string

const (
	DisplayFile     Display = "file"
	DisplayTerminal Display = "terminal"
	DisplayWindow   Display = "window"
)

type Colors struct {
	Trunk      string `mapstructure:"trunk"`
	Leaf       string `mapstructure:"leaf"`
	Background string `mapstructure:"background"`
}

type Log struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

type Config struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`

	Depth   int     `mapstructure:"depth"`
	Angle   float64 `mapstructure:"angle"`
	Animate bool    `mapstructure:"animate"`

	MaxThickness float64 `mapstructure:"max-thickness"`
	LengthUnit   float64 `mapstructure:"length-unit"`
	MinThickness float64 `mapstructure:"min-thickness"`

	Interval time.Duration `mapstructure:"interval"`

	Display Display `mapstructure:"display"`
	Output  string  `mapstructure:"output"`

	Colors Colors `mapstructure:"colors"`
	Log    Log    `mapstructure:"log"`
}

const (
	DefaultWidth        = 900
	DefaultHeight       = 700
	DefaultDepth        = 10
	DefaultAngle        = 30.0
	DefaultMaxThickness = 10.0
	DefaultInterval     = growth.DefaultInterval
	DefaultDisplay      = DisplayFile
	DefaultOutput       = "tree.png"
	DefaultBackground   = "#ffffff"
	DefaultLogLevel     = "info"
)

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("width", DefaultWidth)
	v.SetDefault("height", DefaultHeight)

	v.SetDefault("depth", DefaultDepth)
	v.SetDefault("angle", DefaultAngle)
	v.SetDefault("animate", false)

	v.SetDefault("max-thickness", DefaultMaxThickness)
	v.SetDefault("length-unit", tree.DefaultLengthUnit)
	v.SetDefault("min-thickness", tree.DefaultMinThickness)

	v.SetDefault("interval", DefaultInterval)

	v.SetDefault("display", string(DefaultDisplay))
	v.SetDefault("output", DefaultOutput)

	v.SetDefault("colors.trunk", tree.Brown.Hex())
	v.SetDefault("colors.leaf", tree.ForestGreen.Hex())
	v.SetDefault("colors.background", DefaultBackground)

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.path", "")
}

// Load reads configuration from the defaults, the config file, and the
// environment, in increasing order of precedence. Flags bound to v before
// calling Load take precedence over all of them.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	file := FindFile(cfgFile)
	if _, err := os.Stat(file); file != "" && (cfgFile != "" || err == nil) {
		// Only an explicitly requested file has to exist.
		v.SetConfigFile(file)
		err = v.ReadInConfig()
		if err != nil {
			return Config{}, errors.Wrapf(err, "reading config %s", file)
		}
	}

	var cfg Config
	err := v.Unmarshal(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(err, "decoding config")
	}

	return cfg, cfg.Validate()
}

// FindFile returns the config file to read: the flag if set, else the first
// "*.yaml" in a fractal-tree directory under the XDG config paths, else
// $HOME/.fractal-tree.yaml. It returns "" if no home directory is known.
func FindFile(fromFlag string) string {
	if fromFlag != "" {
		return fromFlag
	}

	var dirs []string
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		dirs = append(dirs, xdgHome)
	}
	if xdgDirs := os.Getenv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		dirs = append(dirs, strings.Split(xdgDirs, ":")...)
	}

	home, err := homedir.Dir()
	if err == nil {
		dirs = append(dirs, path.Join(home, ".config"))
	}

	for _, dir := range dirs {
		if file := findInPath(dir); file != "" {
			return file
		}
	}

	if err != nil {
		return ""
	}
	return path.Join(home, "."+Name+".yaml")
}

func findInPath(dir string) string {
	directory := path.Join(dir, Name)
	entries, err := os.ReadDir(directory)
	if err != nil {
		return ""
	}

	for _, entry := range entries {
		if !entry.IsDir() && path.Ext(entry.Name()) == ".yaml" {
			return path.Join(directory, entry.Name())
		}
	}
	return ""
}

func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Wrapf(ErrInvalidConfig, "canvas must be positive, got %dx%d", c.Width, c.Height)
	case c.Interval <= 0:
		return errors.Wrapf(ErrInvalidConfig, "interval must be positive, got %v", c.Interval)
	case c.MaxThickness < 0:
		return errors.Wrapf(ErrInvalidConfig, "max-thickness must not be negative, got %v", c.MaxThickness)
	case c.MinThickness < 0:
		return errors.Wrapf(ErrInvalidConfig, "min-thickness must not be negative, got %v", c.MinThickness)
	case c.LengthUnit <= 0:
		return errors.Wrapf(ErrInvalidConfig, "length-unit must be positive, got %v", c.LengthUnit)
	}

	switch c.Display {
	case DisplayFile, DisplayTerminal, DisplayWindow:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown display %q", c.Display)
	}

	_, _, _, err := c.Palette()
	return err
}

// Palette parses the configured colors.
func (c Config) Palette() (trunk, leaf, background colorful.Color, err error) {
	for _, p := range []struct {
		name  string
		value string
		dst   *colorful.Color
	}{
		{"colors.trunk", c.Colors.Trunk, &trunk},
		{"colors.leaf", c.Colors.Leaf, &leaf},
		{"colors.background", c.Colors.Background, &background},
	} {
		*p.dst, err = colorful.Hex(p.value)
		if err != nil {
			return trunk, leaf, background, errors.Wrapf(ErrInvalidConfig, "%s: %v", p.name, err)
		}
	}
	return trunk, leaf, background, nil
}

// Parameters returns the generation parameters for a pass at depth.
func (c Config) Parameters(angle float64, depth int) tree.Parameters {
	p := tree.NewParameters(angle, depth, c.MaxThickness)
	p.LengthUnit = c.LengthUnit
	p.MinThickness = c.MinThickness

	trunk, leaf, _, err := c.Palette()
	if err == nil {
		p.Trunk, p.Leaf = trunk, leaf
	}
	return p
}

// Origin is where trees are rooted: the bottom centre of the canvas.
func (c Config) Origin() geometry.XY {
	return geometry.XY{X: float64(c.Width) / 2, Y: float64(c.Height)}
}
