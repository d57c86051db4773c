package pbxpatch

import (
	"fmt"
	"os"

	"github.com/arthur-debert/pbxpatch/internal/version"
	"github.com/arthur-debert/pbxpatch/pkg/commands"
	"github.com/arthur-debert/pbxpatch/pkg/config"
	"github.com/arthur-debert/pbxpatch/pkg/logging"
	"github.com/arthur-debert/pbxpatch/pkg/ui/lipbalm"
	"github.com/arthur-debert/pbxpatch/pkg/ui/output"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalFlags holds the persistent flags of the root command
type globalFlags struct {
	verbosity  int
	dryRun     bool
	chdir      string
	configFile string
	manifest   string
	target     string
	strict     bool
	backup     bool
	output     string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "pbxpatch",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			logging.LogCommand(cmd.CommandPath(), args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.BoolVar(&g.dryRun, "dry-run", false, MsgFlagDryRun)
	pf.StringVarP(&g.chdir, "chdir", "C", "", MsgFlagChdir)
	pf.StringVarP(&g.configFile, "config", "c", "", MsgFlagConfig)
	pf.StringVarP(&g.manifest, "manifest", "m", "", MsgFlagManifest)
	pf.StringVarP(&g.target, "target", "t", "", MsgFlagTarget)
	pf.BoolVar(&g.strict, "strict", false, MsgFlagStrict)
	pf.BoolVar(&g.backup, "backup", false, MsgFlagBackup)
	pf.StringVarP(&g.output, "output", "o", "", MsgFlagOutput)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetHelpCommandGroupID("misc")
	rootCmd.SetUsageTemplate(MsgUsageTemplate)
	initHelpRendering(rootCmd)
	rootCmd.SetVersionTemplate(fmt.Sprintf(MsgVersionFormat, version.Version, version.Commit, version.Date))

	rootCmd.AddCommand(newApplyCmd(g))
	rootCmd.AddCommand(newAddCmd(g))
	rootCmd.AddCommand(newCheckCmd(g))
	rootCmd.AddCommand(newInitCmd(g))
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// overrides returns the config keys set explicitly on the command line
func (g *globalFlags) overrides(cmd *cobra.Command) map[string]interface{} {
	flags := cmd.Flags()
	o := map[string]interface{}{}
	if flags.Changed("manifest") {
		o["manifest"] = g.manifest
	}
	if flags.Changed("target") {
		o["target"] = g.target
	}
	if flags.Changed("strict") {
		o["strict"] = g.strict
	}
	if flags.Changed("backup") {
		o["backup"] = g.backup
	}
	if flags.Changed("output") {
		o["output"] = g.output
	}
	return o
}

// openProject loads the configuration of the working directory
func (g *globalFlags) openProject(cmd *cobra.Command) (*commands.Project, error) {
	p, err := commands.Open(commands.OpenOptions{
		Dir:        g.chdir,
		ConfigFile: g.configFile,
		Overrides:  g.overrides(cmd),
	})
	if err != nil {
		return nil, err
	}
	log.Debug().Str("config", p.Config.String()).Msg("Configuration loaded")
	return p, nil
}

// newRenderer creates a renderer on the command's output
func newRenderer(cmd *cobra.Command, format string) (*output.Renderer, error) {
	f, err := output.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return output.NewRenderer(cmd.OutOrStdout(), f, output.ColorEnabled(os.Stdout))
}

func newApplyCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "apply",
		Short:   MsgApplyShort,
		Long:    MsgApplyLong,
		Example: MsgApplyExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := g.openProject(cmd)
			if err != nil {
				return err
			}

			result, err := commands.Apply(commands.ApplyOptions{Project: p, DryRun: g.dryRun})
			if err != nil {
				return err
			}

			r, err := newRenderer(cmd, p.Config.Output)
			if err != nil {
				return err
			}
			return r.RenderPatch(result)
		},
	}
}

func newAddCmd(g *globalFlags) *cobra.Command {
	var group, name, fileType string

	cmd := &cobra.Command{
		Use:     "add <path>...",
		Short:   MsgAddShort,
		Long:    MsgAddLong,
		Example: MsgAddExample,
		Args:    cobra.MinimumNArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := g.openProject(cmd)
			if err != nil {
				return err
			}

			result, err := commands.Add(commands.AddOptions{
				Project:  p,
				Paths:    args,
				Group:    group,
				Name:     name,
				FileType: fileType,
				DryRun:   g.dryRun,
			})
			if err != nil {
				return err
			}

			r, err := newRenderer(cmd, p.Config.Output)
			if err != nil {
				return err
			}
			return r.RenderPatch(result)
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", MsgFlagGroup)
	cmd.Flags().StringVarP(&name, "name", "n", "", MsgFlagName)
	cmd.Flags().StringVar(&fileType, "type", "", MsgFlagType)
	_ = cmd.MarkFlagRequired("group")

	return cmd
}

func newCheckCmd(g *globalFlags) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:     "check [path...]",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		Example: MsgCheckExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && group == "" {
				return fmt.Errorf("--group is required when paths are given")
			}

			p, err := g.openProject(cmd)
			if err != nil {
				return err
			}

			result, err := commands.Check(commands.CheckOptions{Project: p, Paths: args, Group: group})
			if err != nil {
				return err
			}

			r, err := newRenderer(cmd, p.Config.Output)
			if err != nil {
				return err
			}
			return r.RenderInspect(result)
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", MsgFlagGroup)

	return cmd
}

func newInitCmd(g *globalFlags) *cobra.Command {
	var (
		force bool
		files []string
	)

	cmd := &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Example: MsgInitExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := make([]config.FileEntry, 0, len(files))
			for _, f := range files {
				entry, err := config.ParseFileFlag(f)
				if err != nil {
					return err
				}
				entries = append(entries, entry)
			}

			result, err := commands.Init(commands.InitOptions{
				Dir:   g.chdir,
				Force: force,
				Files: entries,
			})
			if err != nil {
				return err
			}

			r, err := newRenderer(cmd, g.output)
			if err != nil {
				return err
			}
			msg := MsgInitWrote
			if result.Replaced {
				msg = MsgInitReplaced
			}
			if err := r.RenderMessage("Success", fmt.Sprintf(msg, lipbalm.Escape(result.Path))); err != nil {
				return err
			}
			if result.Project != "" {
				return r.RenderMessage("Muted", fmt.Sprintf(MsgInitProject, lipbalm.Escape(result.Project)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	cmd.Flags().StringArrayVar(&files, "file", nil, MsgFlagFile)

	return cmd
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
