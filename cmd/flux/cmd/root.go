package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/parser"
)

var (
	verbose bool
	trace   bool

	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "flux",
	Short: "Flux language front end",
	Long: `flux is the front end for the Flux language: it tokenizes and
parses Flux sources and reports structured diagnostics.

Commands:
  parse   - parse a file and dump its AST
  check   - parse files and report diagnostics
  tokens  - dump the token stream of a file`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.WarnLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		if trace {
			level = zerolog.TraceLevel
		}
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&trace, "trace", false, "trace every parse rule")
}

// parserOptions wires the zerolog tracer when --trace is set.
func parserOptions() []parser.Option {
	if !trace {
		return nil
	}
	return []parser.Option{parser.WithTracer(parser.NewLogTracer(log))}
}
