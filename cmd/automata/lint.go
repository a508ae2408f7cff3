package main

import (
	"fmt"

	"github.com/aretw0/automata/internal/lint"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var lintCmd = &cobra.Command{
	Use:   "lint <automaton>",
	Short: "Check the automaton for structural problems",
	Long: `Reports a missing initial state and duplicate names as errors, and
unreachable states, empty-symbol transitions, incomplete states and a
missing final state as warnings. Exits non-zero only on errors.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup(cmd)
		if err != nil {
			return err
		}
		a, err := loadAutomaton(cmd.Context(), cmd, cfg, args[0])
		if err != nil {
			return err
		}

		report := lint.Check(a)
		out := cmd.OutOrStdout()
		for _, f := range report.Findings {
			line := f.String()
			if f.Severity == lint.SeverityWarning {
				line = tui.Muted(line)
			}
			fmt.Fprintln(out, line)
		}
		if err := report.Err(); err != nil {
			return err
		}
		if report.OK() {
			fmt.Fprintln(out, "Automaton is valid! ✅")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
}
