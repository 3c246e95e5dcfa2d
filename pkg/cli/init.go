package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/mchmarny/pwcheck/pkg/config"
	urfave "github.com/urfave/cli/v3"
)

const initForceFlagName = "force"

// ErrConfigExists is returned by init when the config file is already present.
var ErrConfigExists = errors.New("config file already exists")

func newInitCmd() *urfave.Command {
	return &urfave.Command{
		Name:  "init",
		Usage: "Write the current settings to the config file",
		UsageText: `pwcheck --format json --hidden init   # save json output and hidden input as defaults
   pwcheck --config ./pw.yaml init --force   # overwrite an existing file`,
		HideHelpCommand: true,
		Action:          cmdInit,
		Flags: []urfave.Flag{
			&urfave.BoolFlag{
				Name:  initForceFlagName,
				Usage: "Overwrite an existing config file",
			},
		},
	}
}

func cmdInit(_ context.Context, cmd *urfave.Command) error {
	cfg := getConfig(cmd)
	if cfg.ConfigPath == "" {
		return errors.New("config path not resolved")
	}

	if _, err := os.Stat(cfg.ConfigPath); err == nil && !cmd.Bool(initForceFlagName) {
		return fmt.Errorf("%w: %s (use --%s to overwrite)", ErrConfigExists, cfg.ConfigPath, initForceFlagName)
	}

	level := cfg.LogLevel
	if cfg.Debug {
		level = "debug"
	}

	c := &config.Config{
		Format:   cfg.Format,
		Hidden:   cfg.Hidden,
		LogLevel: level,
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg.ConfigPath, c); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	slog.Debug("config saved", "path", cfg.ConfigPath)
	fmt.Fprintf(writer(cmd), "Config written to %s\n", cfg.ConfigPath)
	return nil
}
