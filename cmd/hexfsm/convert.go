package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/hexfsm"
	"github.com/aretw0/hexfsm/pkg/domain"
	"github.com/aretw0/hexfsm/pkg/interchange"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input>",
	Short: "Convert a machine between formats",
	Long: `Converts a machine between any two supported formats, chosen by file extension:
.fsm archives, .hex record text (labels in a .labels.toml sidecar), and the
.json, .yaml/.yml and .msgpack/.mpk descriptions.

Without -o, descriptions become .fsm archives and encoded forms become .json.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		output, _ := cmd.Flags().GetString("output")
		pretty, _ := cmd.Flags().GetBool("pretty")
		noLabels, _ := cmd.Flags().GetBool("no-labels")

		var extra []hexfsm.Option
		if noLabels {
			extra = append(extra, hexfsm.WithIncludeLabels(false))
		}
		if cmd.Flags().Changed("width") {
			width, _ := cmd.Flags().GetInt("width")
			extra = append(extra, hexfsm.WithRecordsPerLine(width))
		}

		conv, err := newConverter(extra...)
		if err != nil {
			return err
		}

		m, err := conv.Load(input)
		if err != nil {
			return fmt.Errorf("read %s: %w", input, err)
		}

		if output == "" {
			output = hexfsm.DefaultOutput(input)
		}
		if err := conv.Save(m, output, pretty); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}

		logger.Info("Converted machine", "input", input, "output", output, "kind", m.Kind)
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", input, output)
		return nil
	},
}

var encodeCmd = &cobra.Command{
	Use:   "encode <input>",
	Short: "Print the hex records of a machine",
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
		hex, labelFile, err := conv.EncodeText(m)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hex)

		if path, _ := cmd.Flags().GetString("labels"); path != "" {
			if err := os.WriteFile(path, labelFile, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
		}
		return nil
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode <input.hex|input.fsm>",
	Short: "Decode records and print the machine as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conv, err := newConverter()
		if err != nil {
			return err
		}

		labelsPath, _ := cmd.Flags().GetString("labels")
		m, err := loadWithLabels(conv, args[0], labelsPath)
		if err != nil {
			return err
		}

		data, err := interchange.Marshal(m, interchange.JSON(true))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

// loadWithLabels reads a machine; labelsPath, when set, replaces the sidecar of a .hex input.
func loadWithLabels(conv *hexfsm.Converter, input, labelsPath string) (*domain.Machine, error) {
	if labelsPath == "" || !strings.EqualFold(filepath.Ext(input), hexfsm.ExtHex) {
		return conv.Load(input)
	}
	hex, err := os.ReadFile(input)
	if err != nil {
		return nil, err
	}
	labelFile, err := os.ReadFile(labelsPath)
	if err != nil {
		return nil, err
	}
	return conv.DecodeText(string(hex), labelFile)
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringP("output", "o", "", "Output file (format chosen by extension)")
	convertCmd.Flags().Bool("pretty", false, "Indent JSON output")
	convertCmd.Flags().Bool("no-labels", false, "Do not write labels into archives or sidecars")
	convertCmd.Flags().Int("width", 4, "Records per line in .hex output")

	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().String("labels", "", "Also write the label file to this path")

	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().String("labels", "", "Label file for a .hex input (default: its .labels.toml sidecar)")
}
