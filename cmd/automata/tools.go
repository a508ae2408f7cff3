package main

import (
	"fmt"
	"slices"

	"github.com/aretw0/automata/internal/presentation/table"
	"github.com/aretw0/automata/pkg/language"
	"github.com/spf13/cobra"
)

// maxWords caps how many Kleene words are printed.
const maxWords = 10000

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "String utilities: substrings, prefixes, suffixes, Kleene closures",
}

var substringsCmd = &cobra.Command{
	Use:   "substrings <word>",
	Short: "List the substrings, prefixes and suffixes of a word",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		word := args[0]
		md := table.Words("Substrings", slices.Collect(language.Substrings(word))) + "\n" +
			table.Words("Prefixes", slices.Collect(language.Prefixes(word))) + "\n" +
			table.Words("Suffixes", slices.Collect(language.Suffixes(word)))
		_, err := fmt.Fprint(cmd.OutOrStdout(), md)
		return err
	},
}

var kleeneCmd = &cobra.Command{
	Use:   "kleene <alphabet>",
	Short: "List the Kleene star and plus of an alphabet up to a length",
	Long: `Each distinct non-space character of <alphabet> is one symbol, so "ab",
"a b" and "a,b" differ only in that the last one also contains ",".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		alphabet := language.ParseAlphabet(args[0])
		if len(alphabet) == 0 {
			return fmt.Errorf("alphabet %q has no symbols", args[0])
		}
		maxLen, _ := cmd.Flags().GetInt("max")
		if n := language.Count(len(alphabet), maxLen); n < 0 || n > maxWords {
			return fmt.Errorf("%d symbols up to length %d gives more than %d words; lower --max", len(alphabet), maxLen, maxWords)
		}

		out := cmd.OutOrStdout()
		fmt.Fprint(out, table.Words(fmt.Sprintf("Kleene star up to length %d", maxLen), slices.Collect(language.KleeneStar(alphabet, maxLen))))
		fmt.Fprintln(out)
		fmt.Fprint(out, table.Words(fmt.Sprintf("Kleene plus up to length %d", maxLen), slices.Collect(language.KleenePlus(alphabet, maxLen))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	toolsCmd.AddCommand(substringsCmd, kleeneCmd)
	kleeneCmd.Flags().IntP("max", "n", 3, "Maximum word length")
}
