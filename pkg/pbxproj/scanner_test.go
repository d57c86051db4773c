package pbxproj

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	src := "// !$*UTF8*$!\n{ A /* x */ = (path/to.swift, \"q \\\" s\"); }"

	toks, err := tokenize(src)
	require.NoError(t, err)

	var kinds []tokenKind
	var texts []string
	for _, tk := range toks {
		kinds = append(kinds, tk.kind)
		texts = append(texts, tk.text)
		assert.Equal(t, tk.text, src[tk.start:tk.end])
	}

	assert.Equal(t, []string{
		"// !$*UTF8*$!", "{", "A", "/* x */", "=", "(", "path/to.swift", ",", `"q \" s"`, ")", ";", "}",
	}, texts)
	assert.Equal(t, tokComment, kinds[0])
	assert.Equal(t, tokString, kinds[8])
}

func TestUnquote(t *testing.T) {
	assert.Equal(t, `a "b" c`, unquote(token{kind: tokString, text: `"a \"b\" c"`}))
	assert.Equal(t, "line\nnext", unquote(token{kind: tokString, text: `"line\nnext"`}))
	assert.Equal(t, "bare", unquote(token{kind: tokWord, text: "bare"}))
}

func TestCommentText(t *testing.T) {
	assert.Equal(t, "Views", commentText("/* Views */"))
	assert.Equal(t, "!$*UTF8*$!", commentText("// !$*UTF8*$!"))
}
