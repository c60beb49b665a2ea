package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/hexfsm"
	"github.com/aretw0/hexfsm/internal/config"
	"github.com/aretw0/hexfsm/internal/logging"
	"github.com/aretw0/hexfsm/pkg/labels"
	"github.com/spf13/cobra"
)

// Populated by the root PersistentPreRunE before any subcommand runs.
var (
	cfg    *config.Config
	logger *slog.Logger
)

var (
	flagConfig       string
	flagLogLevel     string
	flagLogFormat    string
	flagStrictChains bool
	flagLabelParser  string
)

var rootCmd = &cobra.Command{
	Use:   "hexfsm",
	Short: "hexfsm converts finite-state machines to and from compact hex records",
	Long: `hexfsm encodes DFA, NFA, Moore and Mealy machines as 5-field hex records
with an optional TOML label file, and decodes them back into readable descriptions.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to hexfsm.toml (default: ./hexfsm.toml or ~/.config/hexfsm/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format: text or json")
	rootCmd.PersistentFlags().BoolVar(&flagStrictChains, "strict-chains", false, "Reject interrupted or unterminated NFA chains when decoding")
	rootCmd.PersistentFlags().StringVar(&flagLabelParser, "label-parser", "", "Label file parser: toml or minimal")
}

// setup loads the configuration, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	loaded, path, exists, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		loaded.Log.Level = flagLogLevel
	}
	if flags.Changed("log-format") {
		loaded.Log.Format = flagLogFormat
	}
	if flags.Changed("strict-chains") {
		loaded.Codec.StrictChains = flagStrictChains
	}
	if flags.Changed("label-parser") {
		loaded.Codec.LabelParser = flagLabelParser
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	l, err := logging.New(loaded.Log.Level, loaded.Log.Format)
	if err != nil {
		return err
	}
	cfg, logger = loaded, l

	if exists {
		logger.Debug("Loaded config", "path", path)
	}
	return nil
}

// newConverter builds a Converter from the active configuration; extra options win.
func newConverter(extra ...hexfsm.Option) (*hexfsm.Converter, error) {
	parser, err := labels.ParserFor(cfg.Codec.LabelParser)
	if err != nil {
		return nil, err
	}
	opts := []hexfsm.Option{
		hexfsm.WithLogger(logger),
		hexfsm.WithLabelParser(parser),
		hexfsm.WithStrictChains(cfg.Codec.StrictChains),
		hexfsm.WithRecordsPerLine(cfg.Codec.RecordsPerLine),
		hexfsm.WithIncludeLabels(cfg.Codec.IncludeLabels),
	}
	return hexfsm.New(append(opts, extra...)...), nil
}
