// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/matcalc/internal/config"
	"github.com/katalvlaran/matcalc/internal/logging"
	"github.com/katalvlaran/matcalc/internal/monitoring"
	"github.com/katalvlaran/matcalc/internal/service"
)

var (
	cfgFile   string
	output    string
	precision int
	logLevel  string
	maxDim    int
)

// app is the state built once per invocation by PersistentPreRunE.
var app struct {
	cfg     *config.Config
	log     *logging.Logger
	metrics *monitoring.Metrics
	calc    *service.Calculator
}

// cliLogLevel is the log level of one-shot commands.
const cliLogLevel = "warn"

var errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

var rootCmd = &cobra.Command{
	Use:   "matcalc",
	Short: "Dense matrix calculator",
	Long: `matcalc performs dense floating-point matrix operations on small
matrices written inline: values separated by ',', rows by ';'.

  matcalc add "1,2;3,4" "5,6;7,8"
  matcalc det "1,2;3,4"
  matcalc inv "2,1,1;1,2,1;1,1,2" -o json
  matcalc scale "1,2;3,4" -- -2

Literals that start with '-' must follow "--".`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd, err)
	}

	return err
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (TOML)")
	pf.StringVarP(&output, "output", "o", "", "output format: table|json|yaml|plain (default from config)")
	pf.IntVarP(&precision, "precision", "p", -1, "decimals in table/plain output (default from config)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error (default from config)")
	pf.IntVar(&maxDim, "max-dim", 0, "largest accepted row/column count (default from config)")
}

// setup loads configuration, applies flag overrides and builds the
// logger and calculator.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output.Format = output
	}
	if flags.Changed("precision") {
		cfg.Output.Precision = precision
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("max-dim") {
		cfg.Limits.MaxDim = maxDim
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	// One-shot commands report errors on stderr themselves; their log
	// stays quiet unless asked for.
	level := cfg.Log.Level
	if cmd != serveCmd && !flags.Changed("log-level") {
		level = cliLogLevel
	}
	log, err := logging.New(logging.Config{Level: level, Development: cfg.Log.Development})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	app.cfg = cfg
	app.log = log
	app.metrics = monitoring.NewMetrics()
	app.calc = service.New(
		service.Limits{MaxDim: cfg.Limits.MaxDim},
		service.WithLogger(log),
		service.WithMetrics(app.metrics),
	)

	return nil
}

func printError(cmd *cobra.Command, err error) {
	fmt.Fprintln(cmd.ErrOrStderr(), errStyle.Render("error:"), err)
}
