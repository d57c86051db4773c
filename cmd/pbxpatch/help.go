package pbxpatch

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// helpWidth is the wrap width of rendered long help
const helpWidth = 80

// renderMarkdown renders md for the terminal. Output that is not a terminal,
// and any rendering failure, gets md unchanged.
func renderMarkdown(md string, tty bool) string {
	if !tty || md == "" {
		return md
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(helpWidth),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

// initHelpRendering renders the Long text of every command as markdown
// before cobra prints help. The man page generator reads Long directly and
// keeps the plain text.
func initHelpRendering(rootCmd *cobra.Command) {
	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		cmd.Long = renderMarkdown(cmd.Long, stdoutIsTerminal())
		defaultHelp(cmd, args)
	})
}
