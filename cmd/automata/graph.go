package main

import (
	"fmt"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <automaton>",
	Short: "Export the automaton as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart of the automaton. With --trace the run of that
input is overlaid: visited states, and the state where it ended or got stuck.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		a, err := loadAutomaton(cmd.Context(), cmd, cfg, args[0])
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if cmd.Flags().Changed("trace") {
			in, _ := cmd.Flags().GetString("trace")
			engine, err := cli.NewEngine(cfg, logger, nil)
			if err != nil {
				return err
			}
			res, err := engine.Validate(cmd.Context(), a, in)
			if err != nil {
				return err
			}
			step, _ := cmd.Flags().GetInt("step")
			if step < 0 {
				step = len(res.Trace) - 1
			}
			overlay = graph.OverlayFromTrace(res.Trace, step)
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(a, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("trace", "", "Overlay the run of this input")
	graphCmd.Flags().Int("step", -1, "Overlay up to this step of the run (default: last)")
}
