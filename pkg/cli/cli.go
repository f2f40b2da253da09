// Package cli builds the tree command. The desktop window is passed in, so
// everything here can be exercised without a display.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/willbeason/fractal-tree/pkg/config"
	"github.com/willbeason/fractal-tree/pkg/growth"
	"github.com/willbeason/fractal-tree/pkg/render"
	"github.com/willbeason/fractal-tree/pkg/session"
)

const Title = "Fractal Tree Growth"

// ErrNoWindow is returned for --display=window when no window is available.
var ErrNoWindow = errors.New("window display is not available")

// A WindowFunc shows raster in a window until the user closes it. The
// session draws onto raster.
type WindowFunc func(title string, s *session.Session, raster *render.Raster, form *session.Form) error

func Command(openWindow WindowFunc) *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Draw a fractal tree, or animate it growing",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCmd(cmd, v, cfgFile, openWindow)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.fractal-tree.yaml)")
	flags.Int("depth", config.DefaultDepth, "recursion depth of the tree, at least 1")
	flags.Float64("angle", config.DefaultAngle, "angle in degrees between a branch and each of its children")
	flags.Bool("animate", false, "grow the tree from depth 1 up to --depth; requires 0 <= angle <= 90")
	flags.StringP("output", "o", config.DefaultOutput, "file to write when --display=file; animations are written as GIF")
	flags.String("display", string(config.DefaultDisplay), "where to draw: file, terminal or window")
	flags.Int("width", config.DefaultWidth, "canvas width")
	flags.Int("height", config.DefaultHeight, "canvas height")
	flags.Float64("max-thickness", config.DefaultMaxThickness, "extra stroke width of the trunk over the tips")
	flags.Duration("interval", config.DefaultInterval, "time between growth steps")
	flags.String("log-level", config.DefaultLogLevel, "log level")

	bind(v, flags, map[string]string{
		"depth":         "depth",
		"angle":         "angle",
		"animate":       "animate",
		"output":        "output",
		"display":       "display",
		"width":         "width",
		"height":        "height",
		"max-thickness": "max-thickness",
		"interval":      "interval",
		"log.level":     "log-level",
	})

	return cmd
}

func bind(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, flag := range keys {
		err := v.BindPFlag(key, flags.Lookup(flag))
		if err != nil {
			panic(err)
		}
	}
}

func runCmd(cmd *cobra.Command, v *viper.Viper, cfgFile string, openWindow WindowFunc) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}

	log, closeLog, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	log.WithFields(logrus.Fields{
		"display": cfg.Display,
		"depth":   cfg.Depth,
		"angle":   cfg.Angle,
		"animate": cfg.Animate,
	}).Debug("starting")

	switch cfg.Display {
	case config.DisplayTerminal:
		return runTerminal(cmd.Context(), cfg, log)
	case config.DisplayWindow:
		return runWindow(cfg, log, openWindow)
	default:
		return runFile(cfg, log)
	}
}

// newLogger logs to log.path if set, otherwise to w.
func newLogger(cfg config.Config, w io.Writer) (*logrus.Logger, func(), error) {
	log := logrus.New()

	formatter := new(logrus.TextFormatter)
	formatter.DisableTimestamp = true
	log.SetFormatter(formatter)

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, errors.Wrap(err, "log.level")
	}
	log.SetLevel(level)

	switch {
	case cfg.Log.Path != "":
		f, err := os.OpenFile(cfg.Log.Path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "opening log %s", cfg.Log.Path)
		}
		log.SetOutput(f)
		return log, func() { _ = f.Close() }, nil
	case cfg.Display == config.DisplayTerminal:
		// Anything written to the terminal would be drawn over.
		log.SetOutput(io.Discard)
	default:
		log.SetOutput(w)
	}

	return log, func() {}, nil
}

func newSession(cfg config.Config, surface render.Surface, log logrus.FieldLogger, opts ...growth.Option) *session.Session {
	return session.New(surface, session.Options{
		Origin:        cfg.Origin(),
		Template:      cfg.Parameters,
		Log:           log,
		GrowthOptions: opts,
	})
}

func newRaster(cfg config.Config) *render.Raster {
	_, _, background, _ := cfg.Palette()
	return render.NewRaster(cfg.Width, cfg.Height, background)
}

// animationPath is where a growth animation for output is written.
func animationPath(output string) string {
	ext := filepath.Ext(output)
	if strings.EqualFold(ext, ".gif") {
		return output
	}
	return strings.TrimSuffix(output, ext) + ".gif"
}

func runFile(cfg config.Config, log logrus.FieldLogger) error {
	raster := newRaster(cfg)

	if !cfg.Animate {
		s := newSession(cfg, raster, log)
		err := s.DrawOnce(cfg.Depth, cfg.Angle)
		if err != nil {
			return err
		}

		err = raster.WritePNG(cfg.Output)
		if err != nil {
			return err
		}
		log.WithField("path", cfg.Output).Info("wrote tree")
		return nil
	}

	output := animationPath(cfg.Output)

	// Without an interval the growth steps run as fast as they can be drawn.
	anim := render.NewAnimation(raster, cfg.Interval)
	s := newSession(cfg, anim, log)

	err := s.AnimateGrowth(cfg.Depth, cfg.Angle)
	if err != nil {
		return err
	}
	for s.Growth().Tick() {
		if err := s.Err(); err != nil {
			return err
		}
	}

	err = anim.WriteGIF(output)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"path":   output,
		"frames": anim.Frames(),
	}).Info("wrote growth animation")
	return nil
}

func runWindow(cfg config.Config, log logrus.FieldLogger, openWindow WindowFunc) error {
	if openWindow == nil {
		return ErrNoWindow
	}

	raster := newRaster(cfg)
	s := newSession(cfg, raster, log, growth.WithInterval(cfg.Interval))
	defer s.Stop()

	err := start(s, cfg)
	if err != nil {
		return err
	}

	return openWindow(Title, s, raster, session.NewForm(cfg.Depth, cfg.Angle))
}

// start draws the initial frame, or begins growing toward it.
func start(s *session.Session, cfg config.Config) error {
	if cfg.Animate {
		return s.AnimateGrowth(cfg.Depth, cfg.Angle)
	}
	return s.DrawOnce(cfg.Depth, cfg.Angle)
}
