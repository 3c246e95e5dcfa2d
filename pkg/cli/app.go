package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mchmarny/pwcheck/pkg/config"
	"github.com/mchmarny/pwcheck/pkg/logging"
	urfave "github.com/urfave/cli/v3"
)

const (
	appName      = "pwcheck"
	appConfigKey = "app-config"
)

const (
	debugFlagName      = "debug"
	formatFlagName     = "format"
	hiddenFlagName     = "hidden"
	configPathFlagName = "config"
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""
)

func globalFlags() []urfave.Flag {
	return []urfave.Flag{
		&urfave.BoolFlag{
			Name:  debugFlagName,
			Usage: "Prints verbose logs (optional, default: false)",
		},
		&urfave.StringFlag{
			Name:    formatFlagName,
			Aliases: []string{"o"},
			Usage:   "Output format [text, json, yaml]",
			Value:   config.FormatText,
		},
		&urfave.BoolFlag{
			Name:  hiddenFlagName,
			Usage: "Do not echo passwords typed at the prompt (terminal only)",
		},
		&urfave.StringFlag{
			Name:  configPathFlagName,
			Usage: fmt.Sprintf("Path to the config file (optional, defaults to $HOME/.%s/%s)", appName, config.FileName),
		},
	}
}

// Execute creates and runs the CLI application.
func Execute() {
	initLogging("info")

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

type appConfig struct {
	ConfigPath string
	Format     string
	Hidden     bool
	Debug      bool
	LogLevel   string
}

func getConfig(cmd *urfave.Command) *appConfig {
	if cfg, ok := cmd.Root().Metadata[appConfigKey].(*appConfig); ok {
		return cfg
	}
	return &appConfig{Format: config.FormatText}
}

func newApp() *urfave.Command {
	return &urfave.Command{
		Name:                  appName,
		Version:               fmt.Sprintf("%s (%s - %s)", version, commit, date),
		EnableShellCompletion: true,
		HideHelpCommand:       true,
		Usage:                 "Interactive password strength checker",
		Flags:                 globalFlags(),
		Commands: []*urfave.Command{
			newCheckCmd(),
			newInitCmd(),
		},
		Before: beforeRun,
		Action: cmdInteractive,
	}
}

func beforeRun(ctx context.Context, cmd *urfave.Command) (context.Context, error) {
	path := cmd.String(configPathFlagName)
	if path == "" {
		path = config.DefaultPath(appName)
	}

	fileCfg, err := config.Load(path)
	if err != nil {
		return ctx, fmt.Errorf("loading config: %w", err)
	}

	cfg := &appConfig{
		ConfigPath: path,
		Format:     fileCfg.Format,
		Hidden:     fileCfg.Hidden,
		Debug:      logging.ParseLogLevel(fileCfg.LogLevel) == slog.LevelDebug,
		LogLevel:   fileCfg.LogLevel,
	}

	if cmd.IsSet(formatFlagName) {
		f, err := config.NormalizeFormat(cmd.String(formatFlagName))
		if err != nil {
			return ctx, err
		}
		cfg.Format = f
	}
	if cmd.IsSet(hiddenFlagName) {
		cfg.Hidden = cmd.Bool(hiddenFlagName)
	}
	if cmd.Bool(debugFlagName) {
		cfg.Debug = true
	}

	level := fileCfg.LogLevel
	if cfg.Debug {
		level = "debug"
	}
	initLogging(level)

	slog.Debug("config resolved", "path", cfg.ConfigPath, "format", cfg.Format, "hidden", cfg.Hidden)

	if cmd.Metadata == nil {
		cmd.Metadata = map[string]any{}
	}
	cmd.Metadata[appConfigKey] = cfg
	return ctx, nil
}

func initLogging(level string) {
	logging.SetDefaultCLILogger(level)
}

func reader(cmd *urfave.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}

func writer(cmd *urfave.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func errWriter(cmd *urfave.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
