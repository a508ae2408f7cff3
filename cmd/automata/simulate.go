package main

import (
	"context"
	"io"
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <automaton> <input>",
	Short: "Step through a validation interactively",
	Long: `Validates the input once and lets you walk the trace:
  n  next step
  p  previous step
  r  back to the first step
  q  quit

On a terminal keys act immediately; otherwise keys are read from stdin.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		a, err := loadAutomaton(cmd.Context(), cmd, cfg, args[0])
		if err != nil {
			return err
		}
		engine, err := cli.NewEngine(cfg, logger, nil)
		if err != nil {
			return err
		}

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		res, err := engine.Validate(sigCtx, a, args[1])
		if err != nil {
			return err
		}

		var out io.Writer = cmd.OutOrStdout()
		if tui.IsTerminal(os.Stdin) {
			fd := int(os.Stdin.Fd())
			state, err := term.MakeRaw(fd)
			if err != nil {
				return err
			}
			defer term.Restore(fd, state)
			out = cli.CRLFWriter{W: out}
			tui.PrintBanner(out)
		}

		sim := cli.NewSimulator(res, out, cli.WithVerdictStyle(verdictStyle()))
		err = sim.Run(sigCtx, cmd.InOrStdin())
		if sig := sigCtx.Signal(); sig != nil {
			cli.PrintSystemMessage(out, "Interrupted at step %d.", sim.Cursor().Index())
		}
		return cli.HandleExecutionError(err)
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
}
