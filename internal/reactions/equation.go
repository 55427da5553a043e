package reactions

import (
	"strings"
	"unicode/utf8"
)

type TokenKind int

const (
	Species TokenKind = iota
	State
	Arrow
	Plus
)

// Token is one styled run of an equation.
type Token struct {
	Kind TokenKind
	Text string
}

var (
	states = []string{"(g)", "(l)", "(s)", "(aq)"}
	arrows = []string{"→", "⇌", "←", "↔"}
)

// Tokenize splits an equation into species text, state symbols, arrows and
// plus signs so a renderer can style each.
func Tokenize(eq string) []Token {
	var (
		out []Token
		buf strings.Builder
	)
	flush := func() {
		if buf.Len() > 0 {
			out = append(out, Token{Species, buf.String()})
			buf.Reset()
		}
	}
	for i := 0; i < len(eq); {
		rest := eq[i:]
		if tok, n, ok := special(rest); ok {
			flush()
			out = append(out, tok)
			i += n
			continue
		}
		_, size := utf8.DecodeRuneInString(rest)
		buf.WriteString(rest[:size])
		i += size
	}
	flush()
	return out
}

func special(s string) (Token, int, bool) {
	if strings.HasPrefix(s, "+") {
		return Token{Plus, "+"}, 1, true
	}
	for _, st := range states {
		if strings.HasPrefix(s, st) {
			return Token{State, st}, len(st), true
		}
	}
	for _, a := range arrows {
		if strings.HasPrefix(s, a) {
			return Token{Arrow, a}, len(a), true
		}
	}
	return Token{}, 0, false
}
