package config

import (
	"flag"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gobuffalo/envy"
	"github.com/halvar-engine/halvar/swapchain"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Title       string
	EngineName  string
	Width       int
	Height      int
	Validation  bool
	PresentMode string
	LogLevel    log.Level
}

func envInt(key string, value int) (int, error) {
	raw := envy.Get(key, "")
	if raw == "" {
		return value, nil
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return value, errors.Wrapf(err, "%s", key)
	}
	return parsed, nil
}

func envBool(key string, value bool) (bool, error) {
	raw := envy.Get(key, "")
	if raw == "" {
		return value, nil
	}

	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return value, errors.Wrapf(err, "%s", key)
	}
	return parsed, nil
}

// Load builds the configuration from defaults, then HALVAR_* environment
// variables (including a .env file), then command line args.
func Load(args []string) (Config, error) {
	width, err := envInt("HALVAR_WIDTH", 800)
	if err != nil {
		return Config{}, err
	}

	height, err := envInt("HALVAR_HEIGHT", 600)
	if err != nil {
		return Config{}, err
	}

	validation, err := envBool("HALVAR_VALIDATION", false)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{EngineName: "Halvar"}
	var logLevel string

	flags := flag.NewFlagSet("halvar", flag.ContinueOnError)
	flags.StringVar(&cfg.Title, "title", envy.Get("HALVAR_TITLE", "Halvar"), "window title")
	flags.IntVar(&cfg.Width, "width", width, "initial window width")
	flags.IntVar(&cfg.Height, "height", height, "initial window height")
	flags.BoolVar(&cfg.Validation, "validation", validation, "enable Khronos validation layers")
	flags.StringVar(&cfg.PresentMode, "present-mode", envy.Get("HALVAR_PRESENT_MODE", "fifo"), "preferred present mode: "+strings.Join(swapchain.PresentModeNames(), ", "))
	flags.StringVar(&logLevel, "log-level", envy.Get("HALVAR_LOG_LEVEL", "info"), "log level")

	if err := flags.Parse(args); err != nil {
		return Config{}, errors.Wrap(err, "parse command line")
	}

	cfg.LogLevel, err = log.ParseLevel(logLevel)
	if err != nil {
		return Config{}, errors.Wrap(err, "log level")
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Newf("invalid window size %dx%d", c.Width, c.Height)
	}

	if _, err := swapchain.ParsePresentMode(c.PresentMode); err != nil {
		return err
	}

	return nil
}
