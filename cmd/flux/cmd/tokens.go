package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/lexer"
	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/token"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Dump the token stream of a Flux file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	illegal := 0
	for _, tok := range lexer.NewWithFilename(string(src), path).Tokenize() {
		fmt.Printf("%-16s %-12s %q\n", posStyle.Render(tok.Span.Start.String()), tok.Kind, tok.Lexeme)
		if tok.Kind == token.Illegal {
			illegal++
		}
	}
	if illegal > 0 {
		return fmt.Errorf("%s: %d malformed token(s)", path, illegal)
	}
	return nil
}
