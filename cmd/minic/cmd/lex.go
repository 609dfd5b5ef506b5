package cmd

import (
	"fmt"
	"os"

	"github.com/minic-lang/minic/internal/lexer"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a source file and print the resulting tokens",
	Long: `Tokenize (lex) a minic source file and print the resulting
tokens, one per line. Useful for debugging the scanner.`,
	Args: cobra.ExactArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(_ *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", args[0], err)
	}

	tokens, err := lexer.ScanAll(string(content))
	if err != nil {
		if le, ok := err.(*lexer.LexError); ok {
			fmt.Fprintf(os.Stderr, "Error: (at line %d) %s\n", le.Line, le.Message)
			return fmt.Errorf("lexing failed")
		}
		return err
	}

	for _, tok := range tokens {
		fmt.Printf("%-10s line %d  %q\n", tok.Kind, tok.Line, tok.Lexeme())
	}
	return nil
}
