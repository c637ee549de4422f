package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/lawsimplify/internal/app"
	"github.com/colonyops/lawsimplify/internal/commands"
	"github.com/colonyops/lawsimplify/internal/core/config"
	"github.com/colonyops/lawsimplify/internal/core/logging"
	"github.com/colonyops/lawsimplify/internal/core/styles"
	"github.com/colonyops/lawsimplify/pkg/executil"
	"github.com/colonyops/lawsimplify/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() reads
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func buildInfo() app.BuildInfo {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	return app.BuildInfo{Version: v, Commit: c, Date: d}
}

func build() string {
	b := buildInfo()

	short := b.Commit
	if len(short) > 7 {
		short = short[:7]
	}

	return fmt.Sprintf("%s (%s) %s", b.Version, short, b.Date)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		lsApp     = &app.App{}
	)

	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "lawsimplify",
		Usage:     "Understand legal documents from the terminal",
		UsageText: "lawsimplify [global options] command [command options]",
		Description: `lawsimplify sends legal documents to an analysis service and presents a
plain-language summary, the key clauses and any red flags.

Run 'lawsimplify' with no arguments to open the interactive viewer, where
sections can be translated, read aloud, and discussed in a chat panel.
Run 'lawsimplify analyze <file.pdf>' for a one-shot report.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("LAWSIMPLIFY_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/lawsimplify.log)",
				Sources:     cli.EnvVars("LAWSIMPLIFY_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("LAWSIMPLIFY_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("LAWSIMPLIFY_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "api-url",
				Usage:       "analysis service base URL (overrides api.base_url)",
				Sources:     cli.EnvVars("LAWSIMPLIFY_API_URL"),
				Destination: &flags.APIURL,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; the TUI owns the terminal
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "lawsimplify.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			logger = logger.Hook(logging.ContextHook{})
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			if flags.APIURL != "" {
				cfg.API.BaseURL = flags.APIURL
				if err := cfg.Validate(); err != nil {
					return ctx, fmt.Errorf("invalid --api-url: %w", err)
				}
			}
			flags.Config = cfg

			// Apply configured theme (validation ensures name is valid)
			palette, _ := styles.GetPalette(cfg.TUI.Theme)
			styles.SetTheme(palette)

			built, err := app.New(app.Deps{
				Config:   cfg,
				Executor: &executil.RealExecutor{},
				Logger:   logger,
				Build:    buildInfo(),
			})
			if err != nil {
				return ctx, fmt.Errorf("create app: %w", err)
			}

			// Populate the pre-allocated App (commands already hold a pointer to it)
			*lsApp = *built

			return logging.WithSessionID(ctx, built.SessionID), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if lsApp.Presenter != nil {
				lsApp.Close()
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, lsApp)

	root = commands.NewAnalyzeCmd(flags, lsApp).Register(root)
	root = commands.NewAskCmd(flags, lsApp).Register(root)
	root = commands.NewTranslateCmd(flags, lsApp).Register(root)
	root = commands.NewAudioCmd(flags, lsApp).Register(root)
	root = commands.NewCompareCmd(flags, lsApp).Register(root)
	root = commands.NewDoctorCmd(flags, lsApp).Register(root)
	root = commands.NewConfigCmd(flags).Register(root)

	// Register TUI flags on root command
	root.Flags = append(root.Flags, tuiCmd.Flags()...)

	// Set TUI as default action when no subcommand is provided
	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'lawsimplify --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := root.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
