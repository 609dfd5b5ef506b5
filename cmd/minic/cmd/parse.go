package cmd

import (
	"fmt"
	"os"

	"github.com/minic-lang/minic/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a source file and print the typed AST",
	Long: `Parse a minic source file and print its typed abstract syntax
tree as reconstructed source text. Useful for debugging the parser and
resolver.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", args[0], err)
	}

	prog, err := parser.Parse(string(content))
	if err != nil {
		return reportAndExit(err, string(content))
	}

	for _, decl := range prog.Decls {
		fmt.Println(decl.String())
	}
	return nil
}
