package cmd

import (
	"fmt"
	"os"

	"github.com/minic-lang/minic/internal/backend/llvmir"
	"github.com/minic-lang/minic/internal/errors"
	"github.com/minic-lang/minic/internal/header"
	"github.com/minic-lang/minic/internal/ir"
	"github.com/minic-lang/minic/internal/parser"
	"github.com/spf13/cobra"
)

// Version information (set by build flags).
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var headerMode bool

var rootCmd = &cobra.Command{
	Use:   "minic <input-file> <output-file>",
	Short: "Front end and IR-lowering compiler for the minic language",
	Long: `minic parses a source file, resolves and type-checks it, and
either lowers it to a target IR module or emits a textual declaration
header, depending on the -h flag (spec §6):

  minic input.mc out.ll       # parse, lower, write the IR module
  minic -h input.mc out.mch   # parse, emit a declaration header

Exit code is 0 on success, non-zero on any lex, parse, or lowering
error.`,
	Args:         cobra.ExactArgs(2),
	RunE:         runCompile,
	Version:      Version,
	SilenceUsage: true,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	// Pre-register "help" without a shorthand so cobra's own
	// InitDefaultHelpFlag (which only adds the flag when Lookup("help")
	// is still nil) never tries to claim "h" for itself — spec §6 wants
	// "h" bound to header mode instead.
	rootCmd.PersistentFlags().Bool("help", false, "help for "+rootCmd.Name())

	rootCmd.Flags().BoolVarP(&headerMode, "header", "h", false, "emit a textual declaration header instead of lowering to IR")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runCompile(cmd *cobra.Command, args []string) error {
	inputPath, outputPath := args[0], args[1]

	src, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inputPath, err)
	}

	prog, err := parser.Parse(string(src))
	if err != nil {
		return reportAndExit(err, string(src))
	}

	if headerMode {
		out := header.Emit(prog)
		if err := os.WriteFile(outputPath, []byte(out), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outputPath, err)
		}
		return nil
	}

	backend := llvmir.New()
	defer backend.Dispose()

	lw := ir.NewLowerer(backend)
	moduleName := inputPath
	if err := lw.LowerProgram(prog, moduleName); err != nil {
		return reportAndExit(err, string(src))
	}

	mod := backend.Module()
	if err := os.WriteFile(outputPath, []byte(mod.String()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	return nil
}

// reportAndExit prints ce in the driver's red-highlighted format (spec
// §7) and returns a plain error so Execute's caller exits non-zero.
func reportAndExit(err error, src string) error {
	ce, ok := err.(*errors.CompilerError)
	if !ok {
		return err
	}
	isTTY := isTerminal(os.Stderr)
	fmt.Fprintln(os.Stderr, ce.FormatWithSource(src, isTTY))
	return fmt.Errorf("compilation failed")
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
