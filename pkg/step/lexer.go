package step

import (
	"strconv"
	"strings"

	ifcerrors "github.com/ifcinspect/ifcinspect/internal/errors"
)

var keywords = map[string]bool{
	"ISO-10303-21":     true,
	"HEADER":           true,
	"ENDSEC":           true,
	"DATA":             true,
	"END-ISO-10303-21": true,
}

// Lexer turns raw STEP source bytes into a token stream. It is
// byte-oriented: the source is expected to be 7-bit ASCII with STEP
// Unicode escapes, not presumed UTF-8, though UTF-8-compatible bytes
// pass through untouched outside of escape sequences.
type Lexer struct {
	src    []byte
	offset int
	line   int
}

// NewLexer creates a lexer over src.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src, line: 1}
}

func (l *Lexer) peekByte() (byte, bool) {
	if l.offset >= len(l.src) {
		return 0, false
	}
	return l.src[l.offset], true
}

func (l *Lexer) byteAt(off int) (byte, bool) {
	if off >= len(l.src) {
		return 0, false
	}
	return l.src[off], true
}

func (l *Lexer) advance() byte {
	b := l.src[l.offset]
	l.offset++
	if b == '\n' {
		l.line++
	}
	return b
}

// skipTrivia discards whitespace and nestable STEP comments (/* ... */,
// nestable to depth 1 as specified).
func (l *Lexer) skipTrivia() error {
	for {
		b, ok := l.peekByte()
		if !ok {
			return nil
		}
		switch {
		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
			l.advance()
		case b == '/' && l.peekAhead(1) == '*':
			if err := l.skipComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (l *Lexer) peekAhead(n int) byte {
	b, ok := l.byteAt(l.offset + n)
	if !ok {
		return 0
	}
	return b
}

// skipComment consumes a /* ... */ comment, allowing one level of
// nesting as specified in 4.1.
func (l *Lexer) skipComment() error {
	start := l.offset
	l.advance() // '/'
	l.advance() // '*'
	depth := 1
	for depth > 0 {
		b, ok := l.peekByte()
		if !ok {
			return ifcerrors.InvalidStep(start, "unterminated comment")
		}
		if b == '/' && l.peekAhead(1) == '*' && depth < 2 {
			l.advance()
			l.advance()
			depth++
			continue
		}
		if b == '*' && l.peekAhead(1) == '/' {
			l.advance()
			l.advance()
			depth--
			continue
		}
		l.advance()
	}
	return nil
}

func isIdentByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_'
}

func isWordByte(b byte) bool {
	return isIdentByte(b) || b == '-'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// Next returns the next token in the stream, or a TokEOF token once the
// source is exhausted.
func (l *Lexer) Next() (Token, error) {
	if err := l.skipTrivia(); err != nil {
		return Token{}, err
	}
	start := l.offset
	line := l.line
	b, ok := l.peekByte()
	if !ok {
		return Token{Kind: TokEOF, Offset: start, Line: line}, nil
	}

	switch {
	case b == '#':
		return l.lexHash(start, line)
	case b == '\'':
		return l.lexString(start, line)
	case b == '.' && isEnumStart(l.peekAhead(1)):
		return l.lexEnum(start, line)
	case b == '(' || b == ')' || b == ',' || b == ';' || b == '=' || b == '$' || b == '*':
		l.advance()
		return Token{Kind: TokPunct, Text: string(b), Offset: start, Line: line}, nil
	case b == '-' || b == '+' || isDigit(b):
		return l.lexNumber(start, line)
	case isWordByte(b) && !isDigit(b):
		return l.lexWord(start, line)
	default:
		// Unrecognised byte: skip it rather than fail, matching the
		// parser's general permissiveness outside of well-defined
		// structural errors.
		l.advance()
		return l.Next()
	}
}

func isEnumStart(b byte) bool {
	return (b >= 'A' && b <= 'Z') || b == '_'
}

func (l *Lexer) lexHash(start, line int) (Token, error) {
	l.advance() // '#'
	digStart := l.offset
	for {
		b, ok := l.peekByte()
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
	}
	if l.offset == digStart {
		return Token{}, ifcerrors.InvalidStep(start, "expected digits after '#'")
	}
	n, err := strconv.ParseUint(string(l.src[digStart:l.offset]), 10, 64)
	if err != nil {
		return Token{}, ifcerrors.InvalidStep(start, "invalid entity reference")
	}
	return Token{Kind: TokHash, Int: int64(n), Offset: start, Line: line}, nil
}

func (l *Lexer) lexEnum(start, line int) (Token, error) {
	l.advance() // leading '.'
	wordStart := l.offset
	for {
		b, ok := l.peekByte()
		if !ok || !isIdentByte(b) {
			break
		}
		l.advance()
	}
	word := string(l.src[wordStart:l.offset])
	b, ok := l.peekByte()
	if !ok || b != '.' {
		return Token{}, ifcerrors.InvalidStep(start, "unterminated enumeration literal")
	}
	l.advance() // trailing '.'
	return Token{Kind: TokIdent, Text: word, Offset: start, Line: line, EnumLiteral: true}, nil
}

func (l *Lexer) lexWord(start, line int) (Token, error) {
	for {
		b, ok := l.peekByte()
		if !ok || !isWordByte(b) {
			break
		}
		l.advance()
	}
	word := string(l.src[start:l.offset])
	upper := strings.ToUpper(word)
	if keywords[upper] {
		return Token{Kind: TokKeyword, Text: upper, Offset: start, Line: line}, nil
	}
	return Token{Kind: TokIdent, Text: upper, Offset: start, Line: line}, nil
}

// lexNumber handles both Integer and Real literals, including an
// optional leading sign and exponential form (1.2E3).
func (l *Lexer) lexNumber(start, line int) (Token, error) {
	if b, ok := l.peekByte(); ok && (b == '-' || b == '+') {
		l.advance()
	}
	digStart := l.offset
	for {
		b, ok := l.peekByte()
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
	}
	isReal := false
	if b, ok := l.peekByte(); ok && b == '.' {
		// Distinguish a real literal's decimal point from a field
		// terminator '.'; a digit must have preceded it.
		if l.offset > digStart || start != digStart {
			isReal = true
			l.advance()
			for {
				b, ok := l.peekByte()
				if !ok || !isDigit(b) {
					break
				}
				l.advance()
			}
		}
	}
	if b, ok := l.peekByte(); ok && (b == 'E' || b == 'e') {
		save := l.offset
		l.advance()
		if b2, ok := l.peekByte(); ok && (b2 == '+' || b2 == '-') {
			l.advance()
		}
		expDigStart := l.offset
		for {
			b, ok := l.peekByte()
			if !ok || !isDigit(b) {
				break
			}
			l.advance()
		}
		if l.offset == expDigStart {
			// Not actually an exponent; rewind.
			l.offset = save
		} else {
			isReal = true
		}
	}
	text := string(l.src[start:l.offset])
	if isReal {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, ifcerrors.InvalidStep(start, "invalid real literal")
		}
		return Token{Kind: TokReal, Real: f, Offset: start, Line: line}, nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Token{}, ifcerrors.InvalidStep(start, "invalid integer literal")
	}
	return Token{Kind: TokInteger, Int: n, Offset: start, Line: line}, nil
}
