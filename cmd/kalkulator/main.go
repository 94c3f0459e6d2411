package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/kalkulator/internal/calculation"
	"github.com/rgehrsitz/kalkulator/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	log       = logrus.WithField("module", "cli")
	logLevels = map[string]logrus.Level{
		"debug": logrus.DebugLevel,
		"info":  logrus.InfoLevel,
		"warn":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
	}
)

// globalOptions holds the persistent flags of the root command
type globalOptions struct {
	ratesFile string
	debug     bool
	logLevel  string
}

func (o *globalOptions) setupLogging() error {
	level, ok := logLevels[strings.ToLower(o.logLevel)]
	if !ok {
		return fmt.Errorf("invalid log level %q", o.logLevel)
	}
	if o.debug {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
	return nil
}

// newEngine builds a calculation engine with the --rates overrides applied
func (o *globalOptions) newEngine() (*calculation.CalculationEngine, error) {
	return o.newEngineWithRates(o.ratesFile)
}

func (o *globalOptions) newEngineWithRates(ratesFile string) (*calculation.CalculationEngine, error) {
	registry, err := config.NewInputParser().NewRegistry(ratesFile)
	if err != nil {
		return nil, err
	}
	if ratesFile != "" {
		log.WithField("file", ratesFile).Info("loaded rate table overrides")
	}
	engine := calculation.NewCalculationEngineWithRegistry(registry)
	engine.SetLogger(logrus.WithField("module", "calculation"))
	return engine, nil
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "kalkulator",
		Short: "Polish net salary calculator",
		Long: "Computes the monthly net salary of an employment contract or a B2B contract " +
			"(progressive scale, flat tax, revenue tax) under the 2021 and 2022 tax rules.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setupLogging()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.ratesFile, "rates", "", "YAML file with rate table overrides")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newCalculateCmd(opts),
		newCompareCmd(opts),
		newBreakEvenCmd(opts),
		newWhatIfCmd(opts),
		newValidateCmd(),
		newRatesCmd(opts),
		newServeCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "kalkulator %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Version
	}
	return ""
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
