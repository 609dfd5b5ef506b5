// Command minic is the compiler driver (spec §6): it wires the scanner,
// parser, lowering pass, and declaration emitter together behind a
// single cobra-based CLI, matching the teacher's cmd/dwscript layout.
package main

import (
	"fmt"
	"os"

	"github.com/minic-lang/minic/cmd/minic/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
