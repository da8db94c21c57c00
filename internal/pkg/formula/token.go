package formula

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokIdent
	tokPunct
	tokEOF
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// Operators and punctuation a formula may contain. Anything outside this
// set fails tokenization, which in turn fails validation.
var punctuation = map[string]bool{
	"+": true, "-": true, "*": true, "/": true,
	"(": true, ")": true, ",": true, "?": true, ":": true,
	"<": true, ">": true, "<=": true, ">=": true, "==": true, "!=": true,
	"&&": true, "||": true, "!": true,
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	runes := []rune(input)
	i := 0

	for i < len(runes) {
		r := runes[i]

		if unicode.IsSpace(r) {
			i++
			continue
		}

		if unicode.IsDigit(r) || (r == '.' && i+1 < len(runes) && unicode.IsDigit(runes[i+1])) {
			start := i
			seenDot := false
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				if runes[i] == '.' {
					if seenDot {
						return nil, fmt.Errorf("invalid number at position %d", start)
					}
					seenDot = true
				}
				i++
			}
			tokens = append(tokens, token{kind: tokNumber, text: string(runes[start:i]), pos: start})
			continue
		}

		if unicode.IsLetter(r) || r == '_' {
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			tokens = append(tokens, token{kind: tokIdent, text: string(runes[start:i]), pos: start})
			continue
		}

		// Two-character operators first.
		if i+1 < len(runes) {
			two := string(runes[i : i+2])
			if punctuation[two] {
				tokens = append(tokens, token{kind: tokPunct, text: two, pos: i})
				i += 2
				continue
			}
		}
		one := string(r)
		if punctuation[one] {
			tokens = append(tokens, token{kind: tokPunct, text: one, pos: i})
			i++
			continue
		}

		return nil, fmt.Errorf("unexpected character %q at position %d", r, i)
	}

	tokens = append(tokens, token{kind: tokEOF, pos: len(runes)})
	return tokens, nil
}

// NormalizeKey converts a column header into the variable name it is
// exposed under in formula contexts: lowercased, spaces collapsed to
// underscores, everything else non-alphanumeric stripped.
func NormalizeKey(header string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(header)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('_')
		}
	}
	return b.String()
}
