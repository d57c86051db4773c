package output

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/pbxpatch/pkg/types"
	"github.com/arthur-debert/pbxpatch/pkg/ui/lipbalm"
	"github.com/arthur-debert/pbxpatch/pkg/ui/output/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Renderer writes results in one format
type Renderer struct {
	w      io.Writer
	format Format
}

// NewRenderer creates a renderer for w. With color false, style tags are
// reduced to their plain text.
func NewRenderer(w io.Writer, format Format, color bool) (*Renderer, error) {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}

	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	lipbalm.SetDefaultRenderer(r)

	return &Renderer{w: w, format: format}, nil
}

// RenderPatch writes the outcome of an apply or add run
func (r *Renderer) RenderPatch(result *types.PatchResult) error {
	return r.render("patch.tmpl", result)
}

// RenderInspect writes the outcome of a check run
func (r *Renderer) RenderInspect(result *types.InspectResult) error {
	return r.render("inspect.tmpl", result)
}

// RenderMessage writes a single line. msg is lipbalm markup: values must be
// escaped and may be wrapped in style tags. style, if set, wraps the whole line.
// Structured formats get the plain text.
func (r *Renderer) RenderMessage(style, msg string) error {
	switch r.format {
	case FormatJSON, FormatYAML:
		return r.encode(map[string]string{"message": lipbalm.StripTags(msg)})
	}
	if style != "" {
		msg = "<" + style + ">" + msg + "</" + style + ">"
	}
	return r.expand(msg)
}

func (r *Renderer) render(name string, data interface{}) error {
	if r.format != FormatText {
		return r.encode(data)
	}

	tmpl, err := templates.ReadFile("templates/" + name)
	if err != nil {
		return fmt.Errorf("failed to load template %s: %w", name, err)
	}
	out, err := lipbalm.Render(string(tmpl), data, styleMap())
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return r.write(out)
}

func (r *Renderer) expand(text string) error {
	out, err := lipbalm.ExpandTags(text, styleMap())
	if err != nil {
		return err
	}
	return r.write(out)
}

func (r *Renderer) write(out string) error {
	out = strings.TrimLeft(out, "\n")
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err := io.WriteString(r.w, out)
	return err
}

func (r *Renderer) encode(v interface{}) error {
	if r.format == FormatYAML {
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func styleMap() lipbalm.StyleMap {
	return lipbalm.StyleMap(styles.StyleRegistry)
}
