package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/aretw0/hexfsm/internal/config"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the hexfsm configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a commented sample configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "hexfsm.toml"
		if len(args) == 1 {
			path = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if err := config.CreateSample(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		shown := *cfg
		shown.Store.RedisPassword = mask(shown.Store.RedisPassword)
		shown.Store.EncryptionKey = mask(shown.Store.EncryptionKey)
		if len(shown.Store.FallbackKeys) > 0 {
			shown.Store.FallbackKeys = make([]string, len(cfg.Store.FallbackKeys))
			for i, k := range cfg.Store.FallbackKeys {
				shown.Store.FallbackKeys[i] = mask(k)
			}
		}
		return toml.NewEncoder(cmd.OutOrStdout()).Encode(shown)
	},
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd)
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
}
