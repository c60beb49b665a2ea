package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/hexfsm"
	"github.com/aretw0/hexfsm/internal/presentation/tui"
	"github.com/aretw0/hexfsm/pkg/archive"
	"github.com/aretw0/hexfsm/pkg/domain"
	"github.com/aretw0/hexfsm/pkg/labels"
	"github.com/aretw0/hexfsm/pkg/record"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <input>",
	Short: "Summarize a machine and its encoding",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conv, err := newConverter()
		if err != nil {
			return err
		}
		m, err := conv.Load(args[0])
		if err != nil {
			return err
		}
		records, _, err := loadRecords(conv, args[0])
		if err != nil {
			return err
		}

		md := tui.InfoMarkdown(m, records)
		if !tui.IsTerminal(os.Stdout) {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}
		width, _ := cmd.Flags().GetInt("width")
		out, err := tui.NewRenderer(width)(md)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <input>",
	Short: "Report every problem that would stop a machine from encoding",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conv, err := newConverter()
		if err != nil {
			return err
		}
		m, err := conv.Load(args[0])
		if err != nil {
			return err
		}

		problems := domain.Errors(m.ValidateAll())
		if len(problems) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid %s machine (%d states)\n", args[0], m.Kind, len(m.States))
			return nil
		}
		for _, p := range problems {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", args[0], p)
		}
		return fmt.Errorf("%d problem(s) found", len(problems))
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump <input>",
	Short: "Print the records of a machine as an annotated table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conv, err := newConverter()
		if err != nil {
			return err
		}
		records, table, err := loadRecords(conv, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.RecordTable(records, table))
		return nil
	},
}

// loadRecords returns the records of input as stored, encoding descriptions on the fly.
func loadRecords(conv *hexfsm.Converter, input string) ([]record.Record, *labels.Table, error) {
	switch strings.ToLower(filepath.Ext(input)) {
	case hexfsm.ExtArchive:
		contents, err := archive.ReadFile(input)
		if err != nil {
			return nil, nil, err
		}
		return scanWithLabels(conv, contents.Machine, contents.Labels)
	case hexfsm.ExtHex:
		data, err := os.ReadFile(input)
		if err != nil {
			return nil, nil, err
		}
		sidecar, err := os.ReadFile(hexfsm.LabelsSidecar(input))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, err
		}
		return scanWithLabels(conv, data, sidecar)
	}

	m, err := conv.Load(input)
	if err != nil {
		return nil, nil, err
	}
	enc, err := conv.Encode(m)
	if err != nil {
		return nil, nil, err
	}
	return enc.Records, enc.Labels, nil
}

func scanWithLabels(conv *hexfsm.Converter, hex, labelFile []byte) ([]record.Record, *labels.Table, error) {
	records, err := record.Scan(string(hex))
	if err != nil {
		return nil, nil, err
	}
	table, err := conv.ParseLabels(labelFile)
	if err != nil {
		return nil, nil, err
	}
	return records, table, nil
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().Int("width", 100, "Word wrap width for terminal output")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(dumpCmd)
}
