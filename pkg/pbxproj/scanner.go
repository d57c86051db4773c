package pbxproj

import (
	"strings"

	"github.com/arthur-debert/pbxpatch/pkg/errors"
)

type tokenKind int

const (
	tokWord tokenKind = iota
	tokString
	tokComment
	tokPunct
)

func (k tokenKind) String() string {
	switch k {
	case tokWord:
		return "word"
	case tokString:
		return "string"
	case tokComment:
		return "comment"
	case tokPunct:
		return "punctuation"
	}
	return "unknown"
}

// token is a lexical unit of the manifest. start and end are byte offsets
// into the source, end exclusive.
type token struct {
	kind  tokenKind
	text  string
	start int
	end   int
}

const punctuation = "{}()=;,"

// tokenize splits src into tokens. Whitespace is dropped; comments are kept
// because object annotations and section markers live in them.
func tokenize(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case isSpace(c):
			i++

		case strings.HasPrefix(src[i:], "/*"):
			j := strings.Index(src[i+2:], "*/")
			if j < 0 {
				return nil, parseError(src, i, "unterminated comment")
			}
			end := i + 2 + j + 2
			toks = append(toks, token{kind: tokComment, text: src[i:end], start: i, end: end})
			i = end

		case strings.HasPrefix(src[i:], "//"):
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				end = len(src)
			} else {
				end += i
			}
			toks = append(toks, token{kind: tokComment, text: src[i:end], start: i, end: end})
			i = end

		case c == '"':
			end, ok := scanString(src, i)
			if !ok {
				return nil, parseError(src, i, "unterminated string")
			}
			toks = append(toks, token{kind: tokString, text: src[i:end], start: i, end: end})
			i = end

		case strings.IndexByte(punctuation, c) >= 0:
			toks = append(toks, token{kind: tokPunct, text: src[i : i+1], start: i, end: i + 1})
			i++

		default:
			j := i
			for j < len(src) && isWordByte(src, j) {
				j++
			}
			toks = append(toks, token{kind: tokWord, text: src[i:j], start: i, end: j})
			i = j
		}
	}
	return toks, nil
}

// scanString returns the offset just past the closing quote of the string
// starting at src[i].
func scanString(src string, i int) (int, bool) {
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case '"':
			return j + 1, true
		}
	}
	return 0, false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isWordByte(src string, j int) bool {
	c := src[j]
	if isSpace(c) || c == '"' || strings.IndexByte(punctuation, c) >= 0 {
		return false
	}
	return !strings.HasPrefix(src[j:], "/*")
}

// checkBalance verifies that braces and parentheses nest properly
func checkBalance(src string, toks []token) error {
	var stack []token
	for _, t := range toks {
		if t.kind != tokPunct {
			continue
		}
		switch t.text {
		case "{", "(":
			stack = append(stack, t)
		case "}", ")":
			want := "{"
			if t.text == ")" {
				want = "("
			}
			if len(stack) == 0 || stack[len(stack)-1].text != want {
				return parseError(src, t.start, "unbalanced %q", t.text)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		return parseError(src, stack[len(stack)-1].start, "unclosed %q", stack[len(stack)-1].text)
	}
	return nil
}

func lineOf(src string, offset int) int {
	return strings.Count(src[:offset], "\n") + 1
}

func parseError(src string, offset int, format string, args ...interface{}) error {
	line := lineOf(src, offset)
	return errors.Newf(errors.ErrManifestParse, format, args...).
		WithDetail("line", line).
		WithDetail("offset", offset)
}

// commentText strips comment delimiters and surrounding whitespace
func commentText(raw string) string {
	if strings.HasPrefix(raw, "/*") {
		raw = strings.TrimSuffix(strings.TrimPrefix(raw, "/*"), "*/")
	} else {
		raw = strings.TrimPrefix(raw, "//")
	}
	return strings.TrimSpace(raw)
}
