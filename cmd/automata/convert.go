package main

import (
	"fmt"

	"github.com/aretw0/automata/pkg/codec"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Convert between automaton file formats",
	Long: fmt.Sprintf(`Reads <in> and writes <out>, choosing both formats by extension.
Known formats: %v (.afd/.json, .yaml/.yml, .jff/.xml).`, codec.Formats()),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := codec.ReadFile(args[0])
		if err != nil {
			return err
		}
		if err := codec.WriteFile(args[1], a); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d states)\n", args[1], a.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
