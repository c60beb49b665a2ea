package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/hexfsm"
	"github.com/aretw0/hexfsm/internal/adapters/file"
	redisStore "github.com/aretw0/hexfsm/internal/adapters/redis"
	"github.com/aretw0/hexfsm/internal/config"
	"github.com/aretw0/hexfsm/pkg/adapters/memory"
	"github.com/aretw0/hexfsm/pkg/interchange"
	"github.com/aretw0/hexfsm/pkg/persistence/middleware"
	"github.com/aretw0/hexfsm/pkg/ports"
	"github.com/spf13/cobra"
)

// openStore builds the configured MachineStore, sealing archives when a key is set.
// The returned func releases it.
func openStore(c config.Store) (ports.MachineStore, func() error, error) {
	store, closeStore, err := openBackend(c)
	if err != nil {
		return nil, nil, err
	}

	active, fallback, err := c.Keys()
	if err != nil {
		_ = closeStore()
		return nil, nil, err
	}
	if active == nil {
		return store, closeStore, nil
	}

	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    active,
		FallbackKeys: fallback,
	})
	if err != nil {
		_ = closeStore()
		return nil, nil, err
	}
	logger.Debug("Store encryption enabled", "fallback_keys", len(fallback))
	return middleware.Chain(store, mw), closeStore, nil
}

func openBackend(c config.Store) (ports.MachineStore, func() error, error) {
	noop := func() error { return nil }
	switch c.Backend {
	case config.BackendMemory:
		return memory.NewStore(), noop, nil
	case config.BackendFile:
		return file.New(c.Dir), noop, nil
	case config.BackendRedis:
		s := redisStore.New(c.RedisAddr, c.RedisPassword, c.RedisDB,
			redisStore.WithPrefix(c.RedisPrefix),
			redisStore.WithTTL(c.RedisTTL.Duration),
		)
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", c.Backend)
	}
}

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage machines in the configured store",
	Long: `Saves, fetches, lists and deletes machine archives in the store selected by
[store] backend (memory, file or redis). The memory backend only lives as long
as the process, so it is only useful behind "hexfsm serve".`,
}

var storePutCmd = &cobra.Command{
	Use:   "put <name> <input>",
	Short: "Encode a machine and save it under name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, input := args[0], args[1]
		if err := ports.ValidateName(name); err != nil {
			return err
		}
		conv, err := newConverter()
		if err != nil {
			return err
		}
		m, err := conv.Load(input)
		if err != nil {
			return err
		}
		data, err := conv.Pack(m)
		if err != nil {
			return err
		}

		store, closeStore, err := openStore(cfg.Store)
		if err != nil {
			return err
		}
		defer closeStore()

		if err := store.Save(cmd.Context(), name, data); err != nil {
			return err
		}
		logger.Info("Stored machine", "name", name, "backend", cfg.Store.Backend, "bytes", len(data))
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", name)
		return nil
	},
}

var storeGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Fetch a machine; prints JSON unless -o is given",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore(cfg.Store)
		if err != nil {
			return err
		}
		defer closeStore()

		data, err := store.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		if strings.EqualFold(filepath.Ext(output), hexfsm.ExtArchive) {
			return os.WriteFile(output, data, 0o644)
		}

		conv, err := newConverter()
		if err != nil {
			return err
		}
		m, err := conv.Unpack(data)
		if err != nil {
			return err
		}
		if output != "" {
			return conv.Save(m, output, true)
		}
		out, err := interchange.Marshal(m, interchange.JSON(true))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored machine names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore(cfg.Store)
		if err != nil {
			return err
		}
		defer closeStore()

		names, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored machine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := openStore(cfg.Store)
		if err != nil {
			return err
		}
		defer closeStore()

		if err := store.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storePutCmd, storeGetCmd, storeListCmd, storeDeleteCmd)
	storeGetCmd.Flags().StringP("output", "o", "", "Write to a file (format chosen by extension)")
}
