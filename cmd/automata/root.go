package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/codec"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "automata",
	Short: "Automata builds, validates and inspects deterministic finite automata",
	Long: `Automata runs strings through deterministic finite automata and shows
every step. Automata are read from .afd (JSON), .yaml or JFLAP .jff files,
or from the configured store.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./automata.yaml if present)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().Bool("stored", false, "Treat automaton arguments as names in the configured store")
}

// setup loads the configuration and the logger for cmd.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	logger, err := cli.NewLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// loadAutomaton reads ref as a file path, or as a store name with --stored.
func loadAutomaton(ctx context.Context, cmd *cobra.Command, cfg *config.Config, ref string) (*domain.Automaton, error) {
	if stored, _ := cmd.Flags().GetBool("stored"); !stored {
		return codec.ReadFile(ref)
	}

	backend, err := cli.OpenBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer backend.Close()

	a, err := backend.Store.Load(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", ref, err)
	}
	return a, nil
}

// printMarkdown renders markdown through glamour when stdout is a terminal.
func printMarkdown(cmd *cobra.Command, markdown string) error {
	render := tui.PlainRenderer
	if tui.IsTerminal(os.Stdout) {
		render = tui.NewRenderer()
	}
	out, err := render(markdown)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

// verdictStyle colours verdicts on terminals only.
func verdictStyle() func(string, bool) string {
	if tui.IsTerminal(os.Stdout) {
		return tui.Verdict
	}
	return func(s string, _ bool) string { return s }
}
