package lipbalm

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/beevik/etree"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// StyleMap maps tag names to styles
type StyleMap map[string]lipgloss.Style

// NoFormatTag marks content that only shows up without color support
const NoFormatTag = "no-format"

const rootTag = "lipbalm-root"

var defaultRenderer = lipgloss.DefaultRenderer()

// SetDefaultRenderer sets the renderer whose color profile decides whether
// styles are applied
func SetDefaultRenderer(r *lipgloss.Renderer) {
	defaultRenderer = r
}

// ColorEnabled reports whether the default renderer supports color
func ColorEnabled() bool {
	return defaultRenderer.ColorProfile() != termenv.Ascii
}

// FuncMap holds the functions available to templates
var FuncMap = template.FuncMap{
	"esc": Escape,
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Escape makes s safe to embed between tags
func Escape(s string) string {
	return escaper.Replace(s)
}

// Render executes tmpl with data and expands the style tags of the result
func Render(tmpl string, data interface{}, styles StyleMap) (string, error) {
	t, err := template.New("lipbalm").Funcs(FuncMap).Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return ExpandTags(buf.String(), styles)
}

// ExpandTags replaces style tags with their rendered content. Input that is
// not well formed is returned as is.
func ExpandTags(input string, styles StyleMap) (string, error) {
	color := ColorEnabled()
	out, ok := walk(input, func(name, content string) string {
		if name == NoFormatTag {
			if color {
				return ""
			}
			return content
		}
		style, found := styles[name]
		if !found || !color {
			return content
		}
		return style.Render(content)
	})
	if !ok {
		return input, nil
	}
	return out, nil
}

// StripTags removes every tag, keeping the text content
func StripTags(input string) string {
	out, ok := walk(input, func(_, content string) string {
		return content
	})
	if !ok {
		return input
	}
	return out
}

// walk parses input as an XML fragment and folds every element through
// apply, innermost first
func walk(input string, apply func(name, content string) string) (string, bool) {
	if input == "" {
		return "", true
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString("<" + rootTag + ">" + input + "</" + rootTag + ">"); err != nil {
		return "", false
	}
	root := doc.Root()
	if root == nil {
		return "", false
	}
	return fold(root, apply), true
}

func fold(el *etree.Element, apply func(name, content string) string) string {
	var b strings.Builder
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			b.WriteString(apply(t.Tag, fold(t, apply)))
		}
	}
	return b.String()
}
