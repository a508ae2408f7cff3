package main

import (
	"fmt"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/pkg/codec"
	"github.com/aretw0/automata/pkg/persistence/middleware"
	"github.com/spf13/cobra"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage automata in the configured store",
	Long:  `Works with the backend chosen by store.backend in the config (memory, file or redis).`,
}

// withBackend opens the configured store around fn.
func withBackend(cmd *cobra.Command, fn func(*config.Config, *cli.Backend) error) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	backend, err := cli.OpenBackend(cmd.Context(), cfg, middleware.NewLoggingMiddleware(logger))
	if err != nil {
		return err
	}
	defer backend.Close()
	return fn(cfg, backend)
}

var storeListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List stored automata",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(cmd, func(_ *config.Config, b *cli.Backend) error {
			names, err := b.Store.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		})
	},
}

var storeGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Print a stored automaton",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(cmd, func(_ *config.Config, b *cli.Backend) error {
			a, err := b.Store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("format")
			format, err := codec.ParseFormat(name)
			if err != nil {
				return err
			}
			data, err := codec.Encode(format, a)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		})
	},
}

var storePutCmd = &cobra.Command{
	Use:   "put <name> <file>",
	Short: "Store an automaton read from a file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := codec.ReadFile(args[1])
		if err != nil {
			return err
		}
		return withBackend(cmd, func(cfg *config.Config, b *cli.Backend) error {
			unlock, err := b.Locker.Lock(cmd.Context(), args[0], cfg.HTTP.LockTTL)
			if err != nil {
				return err
			}
			defer unlock(cmd.Context())

			if err := b.Store.Save(cmd.Context(), args[0], a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored %s (%d states)\n", args[0], a.Len())
			return nil
		})
	},
}

var storeRemoveCmd = &cobra.Command{
	Use:     "rm <name>...",
	Aliases: []string{"delete"},
	Short:   "Remove stored automata",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(cmd, func(_ *config.Config, b *cli.Backend) error {
			for _, name := range args {
				if err := b.Store.Delete(cmd.Context(), name); err != nil {
					return fmt.Errorf("remove %s: %w", name, err)
				}
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storeListCmd, storeGetCmd, storePutCmd, storeRemoveCmd)
	storeGetCmd.Flags().String("format", string(codec.FormatNative), "Output format: native, yaml or jflap")
}

