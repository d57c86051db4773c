/*
Package lipbalm is a small template engine for styled terminal output.

It combines text/template with lipgloss styling through XML-like tags:

	styles := lipbalm.StyleMap{
		"title": lipgloss.NewStyle().Bold(true),
	}
	out, err := lipbalm.Render(`<title>{{.Name | esc}}</title>`, data, styles)

  - Render executes a Go template, then expands style tags
  - ExpandTags only expands style tags
  - StripTags removes every tag, leaving plain text

Tag names must match a key of the StyleMap; unknown tags keep their content
unstyled. Values that may contain '&' or '<' must go through the esc template
function, since input that is not well formed is returned unchanged.

The <no-format> tag is only rendered when the terminal has no color support:

	<Success>Added</Success><no-format> (ok)</no-format>

Color support is read from the renderer set with SetDefaultRenderer, whose
termenv profile also follows NO_COLOR.
*/
package lipbalm
