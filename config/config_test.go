package config_test

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/gobuffalo/envy"
	"github.com/halvar-engine/halvar/config"
	log "github.com/sirupsen/logrus"
)

func setenv(c *qt.C, key, value string) {
	old := envy.Get(key, "")
	envy.Set(key, value)
	c.Cleanup(func() {
		envy.Set(key, old)
	})
}

func TestLoadDefaults(t *testing.T) {
	c := qt.New(t)

	cfg, err := config.Load(nil)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg, qt.DeepEquals, config.Config{
		Title:       "Halvar",
		EngineName:  "Halvar",
		Width:       800,
		Height:      600,
		PresentMode: "fifo",
		LogLevel:    log.InfoLevel,
	})
}

func TestLoadEnvironment(t *testing.T) {
	c := qt.New(t)

	setenv(c, "HALVAR_WIDTH", "1280")
	setenv(c, "HALVAR_VALIDATION", "true")
	setenv(c, "HALVAR_PRESENT_MODE", "mailbox")

	cfg, err := config.Load(nil)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Width, qt.Equals, 1280)
	c.Assert(cfg.Height, qt.Equals, 600)
	c.Assert(cfg.Validation, qt.IsTrue)
	c.Assert(cfg.PresentMode, qt.Equals, "mailbox")
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	c := qt.New(t)

	setenv(c, "HALVAR_WIDTH", "1280")

	cfg, err := config.Load([]string{"-width", "640", "-log-level", "debug", "-title", "Test"})
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Width, qt.Equals, 640)
	c.Assert(cfg.Title, qt.Equals, "Test")
	c.Assert(cfg.LogLevel, qt.Equals, log.DebugLevel)
}

func TestLoadInvalid(t *testing.T) {
	c := qt.New(t)

	_, err := config.Load([]string{"-height", "0"})
	c.Assert(err, qt.ErrorMatches, "invalid window size 800x0")

	_, err = config.Load([]string{"-present-mode", "vsync"})
	c.Assert(err, qt.ErrorMatches, `unknown present mode "vsync"`)

	_, err = config.Load([]string{"-log-level", "loud"})
	c.Assert(err, qt.ErrorMatches, "log level: .*")

	for _, name := range []string{"fifo", "mailbox", "immediate", "fifo-relaxed"} {
		_, err = config.Load([]string{"-present-mode", name})
		c.Check(err, qt.IsNil, qt.Commentf("%s", name))
	}

	setenv(c, "HALVAR_HEIGHT", "tall")
	_, err = config.Load(nil)
	c.Assert(err, qt.ErrorMatches, "HALVAR_HEIGHT: .*")
}
