package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"glasscat/internal/config"
	"glasscat/internal/library"
	"glasscat/internal/logging"
	"glasscat/internal/textutil"
)

type commandContext struct {
	configFlag   *string
	allowMissing *bool
	quiet        *bool

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, allowMissing, quiet *bool) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		allowMissing: allowMissing,
		quiet:        quiet,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = fmt.Errorf("init logger: %w", err)
			return
		}
		if c.quiet != nil && *c.quiet {
			logger = logging.WithLevelOverride(logger, slog.LevelError)
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// loadLibrary loads the merged catalog for commands that need materials.
func (c *commandContext) loadLibrary(cmd *cobra.Command) (*library.Library, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	var opts []library.Option
	if c.allowMissing != nil && *c.allowMissing {
		opts = append(opts, library.AllowMissing())
	}
	lib, err := library.Load(cmd.Context(), cfg, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("load catalogs: %w", err)
	}
	return lib, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	return textutil.Ternary(value, "yes", "no")
}
