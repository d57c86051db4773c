package lipbalm_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/arthur-debert/pbxpatch/pkg/ui/lipbalm"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lipgloss.SetDefaultRenderer(lipgloss.NewRenderer(io.Discard))
	m.Run()
}

func testRenderer(t *testing.T, profile termenv.Profile) {
	t.Helper()
	var buf bytes.Buffer
	r := lipgloss.NewRenderer(&buf)
	r.SetColorProfile(profile)
	lipbalm.SetDefaultRenderer(r)
}

var testStyles = lipbalm.StyleMap{
	"title": lipgloss.NewStyle().Bold(true),
	"date":  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	"body":  lipgloss.NewStyle().Italic(true),
}

func TestRender(t *testing.T) {
	testRenderer(t, termenv.TrueColor)

	t.Run("template expansion with styling", func(t *testing.T) {
		data := struct{ Title string }{Title: "My Title"}
		result, err := lipbalm.Render(`<title>{{.Title}}</title>`, data, testStyles)
		require.NoError(t, err)
		assert.Equal(t, testStyles["title"].Render("My Title"), result)
	})

	t.Run("several variables", func(t *testing.T) {
		data := struct{ Name, Group string }{Name: "Timer.swift", Group: "Services"}
		result, err := lipbalm.Render(`<title>{{.Name}}</title> in <date>{{.Group}}</date>`, data, testStyles)
		require.NoError(t, err)
		assert.Equal(t, testStyles["title"].Render("Timer.swift")+" in "+testStyles["date"].Render("Services"), result)
	})

	t.Run("escaped values", func(t *testing.T) {
		data := struct{ Name string }{Name: "A&B <1>.swift"}
		result, err := lipbalm.Render(`<body>{{.Name | esc}}</body>`, data, testStyles)
		require.NoError(t, err)
		assert.Equal(t, testStyles["body"].Render("A&B <1>.swift"), result)
	})

	t.Run("invalid template syntax", func(t *testing.T) {
		_, err := lipbalm.Render(`<title>{{.Title</title>`, nil, testStyles)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "template")
	})

	t.Run("execution error", func(t *testing.T) {
		data := struct{ Title string }{Title: "Test"}
		_, err := lipbalm.Render(`<title>{{.Missing}}</title>`, data, testStyles)
		assert.Error(t, err)
	})
}

func TestExpandTags(t *testing.T) {
	t.Run("nested tags", func(t *testing.T) {
		testRenderer(t, termenv.TrueColor)
		result, err := lipbalm.ExpandTags(`<title>Hello <date>2024</date></title>`, testStyles)
		require.NoError(t, err)
		assert.Equal(t, testStyles["title"].Render("Hello "+testStyles["date"].Render("2024")), result)
	})

	t.Run("text around nested tags keeps its order", func(t *testing.T) {
		testRenderer(t, termenv.TrueColor)
		result, err := lipbalm.ExpandTags(`a <title>b <date>c</date> d</title> e`, testStyles)
		require.NoError(t, err)
		want := "a " + testStyles["title"].Render("b "+testStyles["date"].Render("c")+" d") + " e"
		assert.Equal(t, want, result)
	})

	t.Run("unknown tag keeps content", func(t *testing.T) {
		testRenderer(t, termenv.TrueColor)
		result, err := lipbalm.ExpandTags(`<unknown>Text</unknown>`, testStyles)
		require.NoError(t, err)
		assert.Equal(t, "Text", result)
	})

	t.Run("no-format hidden with color", func(t *testing.T) {
		testRenderer(t, termenv.TrueColor)
		result, err := lipbalm.ExpandTags(`<title>Status</title><no-format> (ok)</no-format>`, testStyles)
		require.NoError(t, err)
		assert.Equal(t, testStyles["title"].Render("Status"), result)
	})

	t.Run("no-format shown without color", func(t *testing.T) {
		testRenderer(t, termenv.Ascii)
		result, err := lipbalm.ExpandTags(`<title>Status</title><no-format> (ok)</no-format>`, testStyles)
		require.NoError(t, err)
		assert.Equal(t, "Status (ok)", result)
	})

	t.Run("no styling without color", func(t *testing.T) {
		testRenderer(t, termenv.Ascii)
		result, err := lipbalm.ExpandTags(`<title>Hello</title> <body>OK</body>`, testStyles)
		require.NoError(t, err)
		assert.Equal(t, "Hello OK", result)
		assert.False(t, lipbalm.ColorEnabled())
	})

	t.Run("malformed input returned as is", func(t *testing.T) {
		testRenderer(t, termenv.TrueColor)
		for _, in := range []string{`<title>Unclosed tag`, `<title>A & B</title>`} {
			result, err := lipbalm.ExpandTags(in, testStyles)
			require.NoError(t, err)
			assert.Equal(t, in, result)
		}
	})

	t.Run("empty and plain", func(t *testing.T) {
		result, err := lipbalm.ExpandTags("", testStyles)
		require.NoError(t, err)
		assert.Equal(t, "", result)

		result, err = lipbalm.ExpandTags("plain text\nsecond line", testStyles)
		require.NoError(t, err)
		assert.Equal(t, "plain text\nsecond line", result)
	})
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "<Bold>Hello</Bold> <Italic>World</Italic>", "Hello World"},
		{"nested", "<Header><Bold>Title</Bold> <Italic>Sub</Italic></Header>", "Title Sub"},
		{"empty tag", "<Empty></Empty>Text", "Text"},
		{"newlines", "<A>First</A>\n<B>Second</B>", "First\nSecond"},
		{"no-format", "<Bold>Styled</Bold> <no-format>Plain</no-format>", "Styled Plain"},
		{"self closing", "Before<br/>After", "BeforeAfter"},
		{"invalid", "Not <valid XML", "Not <valid XML"},
		{"entities", "<A>a &amp; b</A>", "a & b"},
		{"spaces", "<tag>  spaced  </tag>", "  spaced  "},
		{"mixed order", "a<B>b<C>c</C>d</B>e", "abcde"},
		{"comments dropped", "<A>x<!-- note -->y</A>", "xy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, lipbalm.StripTags(tt.input))
		})
	}
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "a &amp; b &lt;c&gt;", lipbalm.Escape("a & b <c>"))
	assert.Equal(t, "Timer.swift", lipbalm.Escape("Timer.swift"))
}
