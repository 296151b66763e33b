package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/ast"
	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a Flux file and dump its AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	program, collector := parser.ParseSource(string(src), path, parserOptions()...)

	fmt.Print(ast.Dump(program))
	if collector.Len() > 0 {
		printDiagnostics(os.Stderr, collector)
	}
	if collector.HasErrors() {
		return fmt.Errorf("%s: parse finished with errors", path)
	}
	return nil
}
