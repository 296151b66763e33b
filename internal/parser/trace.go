package parser

import (
	"github.com/rs/zerolog"

	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/token"
)

// Tracer is the injectable side channel for parser instrumentation. The
// parser itself holds no global state; callers that do not care install
// NopTracer and pay nothing.
type Tracer interface {
	// Enter is called when a parse rule begins at the given token.
	Enter(rule string, tok token.Token)
	// Leave is called when the rule ends.
	Leave(rule string)
	// Event reports a one-off occurrence such as an error or a recovery
	// transition.
	Event(kind, detail string, tok token.Token)
}

// NopTracer discards all trace output.
type NopTracer struct{}

func (NopTracer) Enter(string, token.Token)         {}
func (NopTracer) Leave(string)                      {}
func (NopTracer) Event(string, string, token.Token) {}

// LogTracer emits structured trace events through a zerolog logger.
type LogTracer struct {
	log zerolog.Logger
}

// NewLogTracer creates a tracer writing to the given logger.
func NewLogTracer(log zerolog.Logger) *LogTracer {
	return &LogTracer{log: log}
}

func (t *LogTracer) Enter(rule string, tok token.Token) {
	t.log.Trace().
		Str("rule", rule).
		Str("token", tok.Kind.String()).
		Str("pos", tok.Span.Start.String()).
		Msg("enter")
}

func (t *LogTracer) Leave(rule string) {
	t.log.Trace().Str("rule", rule).Msg("leave")
}

func (t *LogTracer) Event(kind, detail string, tok token.Token) {
	t.log.Debug().
		Str("event", kind).
		Str("detail", detail).
		Str("pos", tok.Span.Start.String()).
		Msg("parser event")
}
