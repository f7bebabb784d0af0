package main

import (
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rivo/tview"
	"github.com/spf13/cobra"

	"github.com/boolean-maybe/naviri/config"
	"github.com/boolean-maybe/naviri/loaders"
	"github.com/boolean-maybe/naviri/naviri"
	tviewAdapter "github.com/boolean-maybe/naviri/naviri/tview"
)

type rootFlags struct {
	rcPath      string
	dumpRC      bool
	debugMode   bool
	logFilePath string
	logFile     io.Closer
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "naviri [topic...]",
		Short: "Browse Ruby documentation in the terminal",
		Long: `naviri shows the output of ri in a tabbed, hyperlinked viewer.
Each topic given on the command line opens in its own tab.`,
		Example: `  naviri String#split
  naviri Array Hash
  naviri --dump-rc`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// the TUI owns the terminal, so logs never go to stderr
			return flags.setupLogging()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if flags.logFile != nil {
				if err := flags.logFile.Close(); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "failed to close log file:", err)
				}
			}
		},
		RunE: flags.run,
	}

	cmd.Flags().StringVar(&flags.rcPath, "rc", "", "Path to the rc file (default: "+config.Path()+")")
	cmd.Flags().BoolVar(&flags.dumpRC, "dump-rc", false, "Write the effective settings to the rc file and exit")
	cmd.PersistentFlags().BoolVarP(&flags.debugMode, "debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.logFilePath, "log-file", "", "Path to debug log file (only used with --debug)")

	return cmd
}

func (f *rootFlags) run(cmd *cobra.Command, args []string) error {
	rcPath := cmp.Or(strings.TrimSpace(f.rcPath), config.Path())

	settings, err := config.Load(rcPath)
	if err != nil {
		return err
	}

	if f.dumpRC {
		if err := config.Dump(rcPath, settings); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Settings written to %s\n", rcPath)
		return nil
	}

	runner, err := loaders.NewCommand(settings)
	if err != nil {
		return err
	}
	slog.Debug("Documentation command", "template", runner.Template, "platform", config.Platform())

	cache, err := naviri.NewCache(runner, naviri.CacheOptions{Size: settings.CacheSize, ConfigHint: rcPath})
	if err != nil {
		return err
	}

	app := tview.NewApplication()
	browser, err := tviewAdapter.NewBrowser(cmd.Context(), app, tviewAdapter.Options{
		Settings: settings,
		Fetcher:  cache,
		RCPath:   rcPath,
	})
	if err != nil {
		return err
	}

	for i, topic := range args {
		browser.Open(topic, i > 0)
	}

	return browser.Run()
}

// setupLogging discards logs unless --debug is set, in which case they go to
// a text log file.
func (f *rootFlags) setupLogging() error {
	if !f.debugMode {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return nil
	}

	path := cmp.Or(strings.TrimSpace(f.logFilePath), filepath.Join(config.Dir(), "naviri.log"))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	f.logFile = logFile

	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return nil
}
