package command

import (
	"strings"
	"unicode"

	apperrors "github.com/cory-johannsen/dsa/internal/errors"
)

// ParseResult holds the command word and the argument words of one line
// typed at the prompt.
type ParseResult struct {
	// Command is the first word of the input, lowercased.
	Command string
	// Args are the remaining words, unquoted.
	Args []string
}

// Parse splits a prompt line into words. Double or single quotes group
// words, so custom rule elements with spaces bind as one name:
//
//	attack "Langer Dolch" -2
//
// Precondition: none; surrounding whitespace is ignored.
// Postcondition: Returns a ParseResult whose Command is empty for a blank
// line, or an invalid-input error for an unterminated quote.
func Parse(line string) (ParseResult, error) {
	words, err := splitWords(line)
	if err != nil {
		return ParseResult{}, err
	}
	if len(words) == 0 {
		return ParseResult{}, nil
	}
	res := ParseResult{Command: strings.ToLower(words[0])}
	if len(words) > 1 {
		res.Args = words[1:]
	}
	return res, nil
}

// splitWords splits on whitespace outside quotes. A quoted empty string is
// kept as an empty word.
func splitWords(line string) ([]string, error) {
	var (
		words  []string
		cur    strings.Builder
		inWord bool
		quote  rune
	)
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case unicode.IsSpace(r):
			if inWord {
				words = append(words, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if quote != 0 {
		return nil, apperrors.InvalidInput("unterminated %c quote in %q", quote, strings.TrimSpace(line))
	}
	if inWord {
		words = append(words, cur.String())
	}
	return words, nil
}
