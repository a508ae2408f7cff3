package main

import (
	"github.com/aretw0/automata/internal/presentation/table"
	"github.com/spf13/cobra"
)

var tableCmd = &cobra.Command{
	Use:   "table <automaton>",
	Short: "Print the transition table",
	Long:  `Prints one row per state and one column per symbol, as Markdown. "-" marks a missing transition.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup(cmd)
		if err != nil {
			return err
		}
		a, err := loadAutomaton(cmd.Context(), cmd, cfg, args[0])
		if err != nil {
			return err
		}
		return printMarkdown(cmd, table.Transitions(a))
	},
}

func init() {
	rootCmd.AddCommand(tableCmd)
}
