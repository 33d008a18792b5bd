package main

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/caarlos0/env/v6"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	easy "github.com/t-tomalak/logrus-easy-formatter"

	"github.com/arvendson/loxwalk"
)

// Config is populated from the environment on top of whatever flags set,
// following the same env-first pattern used throughout the rest of the
// ecosystem this CLI borrows its scaffolding from.
type Config struct {
	Verbose bool `env:"LOXWALK_VERBOSE"`
	NoColor bool `env:"LOXWALK_NO_COLOR"`
}

func main() {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, "reading environment config:", err)
		os.Exit(1)
	}

	var verbose, noColor bool

	root := &cobra.Command{
		Use:   "loxwalk [script]",
		Short: "A tree-walking interpreter for Lox",
		Long: heredoc.Doc(`
			loxwalk interprets Lox source.

			Run with no arguments to start an interactive REPL; pass a single
			script path to run it once and exit.
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Verbose {
				verbose = true
			}
			if cfg.NoColor {
				noColor = true
			}

			log := newLogger(verbose)
			reporter := lox.NewStreamReporter(os.Stderr, !noColor)
			runtime := lox.NewRuntime(reporter, log)

			if len(args) == 0 {
				if err := runtime.RunPrompt(); err != nil {
					return err
				}
				return nil
			}

			if _, err := os.Stat(args[0]); err != nil {
				return err
			}

			if err := runtime.RunFile(args[0]); err != nil {
				return err
			}

			if reporter.HadError() || reporter.HadRuntimeError() {
				os.Exit(1)
			}

			return nil
		},
	}

	root.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging to stderr")
	root.Flags().BoolVar(&noColor, "no-color", false, "disable colorized diagnostics")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the operational logger, gated to Warn level unless
// --verbose is set, always writing to stderr so it never interleaves with
// Lox's own stdout.
func newLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.Out = os.Stderr
	log.Formatter = &easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05",
		LogFormat:       "[%lvl%] %time% - %msg%\n",
	}

	log.Level = logrus.WarnLevel
	if verbose {
		log.Level = logrus.DebugLevel
	}

	return log
}
