package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/internal/presentation/table"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <automaton> <input>...",
	Short: "Run strings through an automaton",
	Long: `Validates each input and prints the verdict followed by the states visited.
A trace that ends in "Error" stopped on a symbol with no transition.`,
	Args: cobra.MinimumNArgs(2),
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

		asJSON, _ := cmd.Flags().GetBool("json")
		quiet, _ := cmd.Flags().GetBool("quiet")
		style := verdictStyle()
		out := cmd.OutOrStdout()

		results := make([]*domain.Result, 0, len(args)-1)
		for _, in := range args[1:] {
			res, err := engine.Validate(cmd.Context(), a, in)
			if err != nil {
				return fmt.Errorf("input %q: %w", in, err)
			}
			results = append(results, res)
		}

		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}

		for i, res := range results {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, style(table.Verdict(res.Input, res.Accepted), res.Accepted))
			if !quiet {
				fmt.Fprint(out, table.Trace(res.Trace, len(res.Trace)-1))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("json", false, "Print results as JSON")
	validateCmd.Flags().BoolP("quiet", "q", false, "Print only the verdicts")
}
