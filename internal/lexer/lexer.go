// Package lexer implements the Flux lexical analyzer. It feeds the parser
// an in-memory token slice; malformed input becomes Illegal tokens that the
// parser passes through as diagnostics.
package lexer

import (
	"strconv"
	"strings"

	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/source"
	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/token"
)

// Lexer scans a source string into tokens.
type Lexer struct {
	input    string
	filename string

	position     int  // current byte position
	readPosition int  // next byte position
	ch           byte // current character

	line   int
	column int
}

// New creates a lexer for the given input.
func New(input string) *Lexer {
	return NewWithFilename(input, "")
}

// NewWithFilename creates a lexer that stamps tokens with the filename.
func NewWithFilename(input, filename string) *Lexer {
	l := &Lexer{
		input:    input,
		filename: filename,
		line:     1,
		column:   0,
	}
	l.readChar()
	return l
}

// Tokenize scans the whole input and returns the token slice, always
// terminated by an EOF token.
func (l *Lexer) Tokenize() []token.Token {
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

// readChar reads the next character and advances position.
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++

	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) pos() source.Position {
	return source.Position{
		File:   l.filename,
		Line:   l.line,
		Column: l.column,
		Offset: l.position,
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar()
			l.readChar()
			for l.ch != 0 && !(l.ch == '*' && l.peekChar() == '/') {
				l.readChar()
			}
			if l.ch != 0 {
				l.readChar() // '*'
				l.readChar() // '/'
			}
		default:
			return
		}
	}
}

// NextToken returns the next token in the input.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	start := l.pos()

	switch l.ch {
	case 0:
		return l.make(token.EOF, "", start)
	case '+':
		if l.peekChar() == '+' {
			return l.two(token.Inc, start)
		}
		if l.peekChar() == '=' {
			return l.two(token.PlusAssign, start)
		}
		return l.one(token.Plus, start)
	case '-':
		switch l.peekChar() {
		case '-':
			return l.two(token.Dec, start)
		case '=':
			return l.two(token.MinusAssign, start)
		case '>':
			return l.two(token.Arrow, start)
		}
		return l.one(token.Minus, start)
	case '*':
		switch l.peekChar() {
		case '*':
			return l.two(token.Power, start)
		case '=':
			return l.two(token.StarAssign, start)
		}
		return l.one(token.Star, start)
	case '/':
		if l.peekChar() == '=' {
			return l.two(token.SlashAssign, start)
		}
		return l.one(token.Slash, start)
	case '%':
		if l.peekChar() == '=' {
			return l.two(token.PercentAssign, start)
		}
		return l.one(token.Percent, start)
	case '=':
		if l.peekChar() == '=' {
			return l.two(token.Eq, start)
		}
		return l.one(token.Assign, start)
	case '!':
		if l.peekChar() == '=' {
			return l.two(token.Ne, start)
		}
		return l.one(token.Bang, start)
	case '<':
		if l.peekChar() == '=' {
			return l.two(token.Le, start)
		}
		return l.one(token.Lt, start)
	case '>':
		if l.peekChar() == '=' {
			return l.two(token.Ge, start)
		}
		return l.one(token.Gt, start)
	case '&':
		if l.peekChar() == '&' {
			return l.two(token.AndAnd, start)
		}
		return l.one(token.Amp, start)
	case '|':
		if l.peekChar() == '|' {
			return l.two(token.OrOr, start)
		}
		return l.one(token.Pipe, start)
	case '^':
		return l.one(token.Caret, start)
	case '~':
		return l.one(token.Tilde, start)
	case '(':
		return l.one(token.LParen, start)
	case ')':
		return l.one(token.RParen, start)
	case '{':
		return l.one(token.LBrace, start)
	case '}':
		return l.one(token.RBrace, start)
	case '[':
		return l.one(token.LBracket, start)
	case ']':
		return l.one(token.RBracket, start)
	case ';':
		return l.one(token.Semicolon, start)
	case ',':
		return l.one(token.Comma, start)
	case '.':
		return l.one(token.Dot, start)
	case ':':
		if l.peekChar() == ':' {
			return l.two(token.ColonColon, start)
		}
		return l.one(token.Colon, start)
	case '"':
		return l.readString(start)
	case '\'':
		return l.readCharLiteral(start)
	}

	if isDigit(l.ch) {
		return l.readNumber(start)
	}
	if isLetter(l.ch) {
		return l.readIdentifier(start)
	}

	ch := l.ch
	l.readChar()
	return l.make(token.Illegal, string(ch), start)
}

// one emits a single-character token.
func (l *Lexer) one(kind token.Kind, start source.Position) token.Token {
	lexeme := string(l.ch)
	l.readChar()
	return l.make(kind, lexeme, start)
}

// two emits a two-character token.
func (l *Lexer) two(kind token.Kind, start source.Position) token.Token {
	lexeme := string(l.ch) + string(l.peekChar())
	l.readChar()
	l.readChar()
	return l.make(kind, lexeme, start)
}

func (l *Lexer) make(kind token.Kind, lexeme string, start source.Position) token.Token {
	return token.Token{
		Kind:   kind,
		Lexeme: lexeme,
		Span:   source.Between(start, l.pos()),
	}
}

func (l *Lexer) readIdentifier(start source.Position) token.Token {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	lexeme := l.input[position:l.position]

	tok := l.make(token.LookupKeyword(lexeme), lexeme, start)
	if tok.Kind == token.Bool {
		tok.BoolVal = lexeme == "true"
	}
	return tok
}

func (l *Lexer) readNumber(start source.Position) token.Token {
	position := l.position

	// Hex literals
	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar()
		l.readChar()
		for isHexDigit(l.ch) {
			l.readChar()
		}
		lexeme := l.input[position:l.position]
		value, err := strconv.ParseInt(lexeme, 0, 64)
		if err != nil {
			return l.make(token.Illegal, lexeme, start)
		}
		tok := l.make(token.Int, lexeme, start)
		tok.IntVal = value
		return tok
	}

	isFloat := false
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	// Trailing identifier characters make the literal malformed.
	if isLetter(l.ch) {
		for isLetter(l.ch) || isDigit(l.ch) {
			l.readChar()
		}
		return l.make(token.Illegal, l.input[position:l.position], start)
	}

	lexeme := l.input[position:l.position]
	if isFloat {
		value, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return l.make(token.Illegal, lexeme, start)
		}
		tok := l.make(token.Float, lexeme, start)
		tok.FloatVal = value
		return tok
	}

	value, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return l.make(token.Illegal, lexeme, start)
	}
	tok := l.make(token.Int, lexeme, start)
	tok.IntVal = value
	return tok
}

func (l *Lexer) readString(start source.Position) token.Token {
	l.readChar() // opening quote

	var sb strings.Builder
	for l.ch != '"' {
		if l.ch == 0 || l.ch == '\n' {
			return l.make(token.Illegal, l.input[start.Offset:l.position], start)
		}
		if l.ch == '\\' {
			l.readChar()
			sb.WriteByte(unescape(l.ch))
			l.readChar()
			continue
		}
		sb.WriteByte(l.ch)
		l.readChar()
	}
	l.readChar() // closing quote

	tok := l.make(token.String, l.input[start.Offset:l.position], start)
	tok.StrVal = sb.String()
	return tok
}

func (l *Lexer) readCharLiteral(start source.Position) token.Token {
	l.readChar() // opening quote

	var value byte
	if l.ch == '\\' {
		l.readChar()
		value = unescape(l.ch)
		l.readChar()
	} else if l.ch == 0 || l.ch == '\n' || l.ch == '\'' {
		return l.make(token.Illegal, l.input[start.Offset:l.position], start)
	} else {
		value = l.ch
		l.readChar()
	}

	if l.ch != '\'' {
		return l.make(token.Illegal, l.input[start.Offset:l.position], start)
	}
	l.readChar() // closing quote

	tok := l.make(token.Char, l.input[start.Offset:l.position], start)
	tok.IntVal = int64(value)
	return tok
}

func unescape(ch byte) byte {
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		return ch
	}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}
