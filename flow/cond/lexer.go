package cond

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenString
	tokenNumber
	tokenOp     // == != < <= > >=
	tokenAnd    // and
	tokenOr     // or
	tokenNot    // not
	tokenTrue   // true
	tokenFalse  // false
	tokenNull   // null
	tokenLParen // (
	tokenRParen // )
	tokenDot    // .
)

type token struct {
	kind tokenKind
	text string
	num  float64 // valid for tokenNumber
	pos  int
}

// lex splits a guard expression into tokens. Identifiers are bare
// words; keywords (and, or, not, true, false, null) are recognized
// case-sensitively, matching the documented grammar.
func lex(input string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			tokens = append(tokens, token{kind: tokenLParen, text: "(", pos: i})
			i++
		case c == ')':
			tokens = append(tokens, token{kind: tokenRParen, text: ")", pos: i})
			i++
		case c == '.':
			tokens = append(tokens, token{kind: tokenDot, text: ".", pos: i})
			i++
		case c == '=' || c == '!' || c == '<' || c == '>':
			op, n, err := lexOperator(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokenOp, text: op, pos: i})
			i += n
		case c == '\'' || c == '"':
			s, n, err := lexString(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokenString, text: s, pos: i})
			i += n
		case c >= '0' && c <= '9' || c == '-':
			end := i + 1
			for end < len(input) && (input[end] >= '0' && input[end] <= '9' || input[end] == '.') {
				end++
			}
			num, err := strconv.ParseFloat(input[i:end], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid number %q at position %d", input[i:end], i)
			}
			tokens = append(tokens, token{kind: tokenNumber, text: input[i:end], num: num, pos: i})
			i = end
		case isIdentStart(rune(c)):
			end := i + 1
			for end < len(input) && isIdentPart(rune(input[end])) {
				end++
			}
			word := input[i:end]
			tokens = append(tokens, token{kind: keywordKind(word), text: word, pos: i})
			i = end
		default:
			return nil, fmt.Errorf("unexpected character %q at position %d", c, i)
		}
	}
	tokens = append(tokens, token{kind: tokenEOF, pos: len(input)})
	return tokens, nil
}

func lexOperator(input string, i int) (string, int, error) {
	if i+1 < len(input) && input[i+1] == '=' {
		return input[i : i+2], 2, nil
	}
	if input[i] == '<' || input[i] == '>' {
		return input[i : i+1], 1, nil
	}
	return "", 0, fmt.Errorf("unexpected character %q at position %d", input[i], i)
}

// lexString scans a quoted string, honoring backslash escapes for the
// quote character and backslash itself.
func lexString(input string, i int) (string, int, error) {
	quote := input[i]
	var b strings.Builder
	j := i + 1
	for j < len(input) {
		c := input[j]
		if c == '\\' && j+1 < len(input) {
			b.WriteByte(input[j+1])
			j += 2
			continue
		}
		if c == quote {
			return b.String(), j - i + 1, nil
		}
		b.WriteByte(c)
		j++
	}
	return "", 0, fmt.Errorf("unterminated string at position %d", i)
}

func keywordKind(word string) tokenKind {
	switch word {
	case "and":
		return tokenAnd
	case "or":
		return tokenOr
	case "not":
		return tokenNot
	case "true":
		return tokenTrue
	case "false":
		return tokenFalse
	case "null":
		return tokenNull
	}
	return tokenIdent
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
