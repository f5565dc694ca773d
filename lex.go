package kern

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// token is a single lexeme together with the amount of whitespace that
// preceded it.
type token struct {
	kind tokenKind
	// num is the value of a Num token.
	num float64
	// text is the lexeme as a slice of the source.
	text string
	// spacing is the number of whitespace runes immediately before the
	// token. It is 0 for the first token of the input and for tokens
	// adjacent to the previous one.
	spacing int
	// pos is the rune column at which the token starts.
	pos int
}

func (t token) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a number token.
	tokenNum
	// tokenWord is a maximal run of letters and underscores.
	tokenWord
	// tokenSym is any single rune that is not a number, word, or space.
	tokenSym
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenNum:
		return "Num"
	case tokenWord:
		return "Word"
	case tokenSym:
		return "Sym"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// isLetter reports whether r continues a word.
func isLetter(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// isDigit reports whether r continues a number. The lexer scans the maximal
// run and leaves rejecting malformed numbers like 1.2.3 to ParseFloat.
func isDigit(r rune) bool {
	return '0' <= r && r <= '9' || r == '.'
}

type lexer struct {
	src  string
	off  int
	rune int
	p    token
	perr error
}

func lex(src string) *lexer {
	return &lexer{
		src:  src,
		rune: 1,
	}
}

// peek returns the next token without consuming it. The token is memoized so
// that the input is scanned at most once; after a scan error, peek and next
// keep returning the same error.
func (l *lexer) peek() (token, error) {
	if l.p.kind == tokenNone && l.perr == nil {
		l.p, l.perr = l.scan()
	}
	return l.p, l.perr
}

// next consumes and returns the next token. The end of the input is an EOF
// token, which next returns any number of times.
func (l *lexer) next() (token, error) {
	tok, err := l.peek()
	l.p = token{}
	return tok, err
}

// must consumes the memoized token. Panics if there is no memoized token.
func (l *lexer) must() token {
	if l.p.kind == tokenNone {
		panic("kern: must without peek")
	}
	tok := l.p
	l.p = token{}
	return tok
}

// scan lexes one token, counting the whitespace run before it.
func (l *lexer) scan() (token, error) {
	spacing := 0
	for l.off < len(l.src) {
		r, sz := utf8.DecodeRuneInString(l.src[l.off:])
		if !unicode.IsSpace(r) {
			break
		}
		l.off += sz
		l.rune++
		spacing++
	}
	tok := token{spacing: spacing, pos: l.rune}
	if l.off == len(l.src) {
		tok.kind = tokenEOF
		return tok, nil
	}
	r, sz := utf8.DecodeRuneInString(l.src[l.off:])
	switch {
	case isDigit(r):
		tok.text = l.run(isDigit)
		num, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return tok, &LexError{Text: tok.text, Col: tok.pos}
		}
		tok.kind = tokenNum
		tok.num = num
	case isLetter(r):
		tok.text = l.run(isLetter)
		tok.kind = tokenWord
	default:
		tok.text = l.src[l.off : l.off+sz]
		tok.kind = tokenSym
		l.off += sz
		l.rune++
	}
	return tok, nil
}

// run consumes the maximal run of runes in the given class and returns the
// lexeme as a slice of the source.
func (l *lexer) run(class func(rune) bool) string {
	start := l.off
	for l.off < len(l.src) {
		r, sz := utf8.DecodeRuneInString(l.src[l.off:])
		if !class(r) {
			break
		}
		l.off += sz
		l.rune++
	}
	return l.src[start:l.off]
}

// LexError indicates a lexeme that is not a valid token. It implements
// InputError.
type LexError struct {
	// Text is the lexeme that did not scan as a number.
	Text string
	// Col is the rune column at which the lexeme starts.
	Col int
}

func (err *LexError) Error() string {
	return "invalid number token at column " + strconv.Itoa(err.Col) + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}
