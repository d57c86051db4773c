package pbxpatch

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Register source files in an Xcode project"
	MsgApplyShort      = "Register the files listed in the project config"
	MsgAddShort        = "Register the given files under a group"
	MsgCheckShort      = "Report which files are missing from the project"
	MsgInitShort       = "Write a starter .pbxpatch.toml"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgInitWrote     = "Wrote <FilePath>%s</FilePath>"
	MsgInitReplaced  = "Replaced <FilePath>%s</FilePath>"
	MsgInitProject   = "Using project <FileName>%s</FileName>"
	MsgVersionFormat = "pbxpatch %s\n  commit: %s\n  built:  %s\n"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun   = "Compute changes without writing the manifest"
	MsgFlagChdir    = "Run as if started in `dir`"
	MsgFlagConfig   = "Project config `file` (default .pbxpatch.toml)"
	MsgFlagManifest = "Path to project.pbxproj"
	MsgFlagTarget   = "Register build files in the Sources phase of this target"
	MsgFlagStrict   = "Fail when a section, group or build phase is missing"
	MsgFlagBackup   = "Copy the previous manifest to <manifest>.bak before writing"
	MsgFlagOutput   = "Output format: text, json or yaml"
	MsgFlagGroup    = "Group the files join"
	MsgFlagName     = "Display name in the project (single path only)"
	MsgFlagType     = "lastKnownFileType, inferred from the extension by default"
	MsgFlagForce    = "Overwrite an existing config file"
	MsgFlagFile     = "Initial file entry as path:group (repeatable)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/apply-long.txt
	msgApplyLongRaw string
	MsgApplyLong    = strings.TrimSpace(msgApplyLongRaw)

	//go:embed msgs/apply-example.txt
	msgApplyExampleRaw string
	MsgApplyExample    = strings.TrimRight(msgApplyExampleRaw, "\n")

	//go:embed msgs/add-long.txt
	msgAddLongRaw string
	MsgAddLong    = strings.TrimSpace(msgAddLongRaw)

	//go:embed msgs/add-example.txt
	msgAddExampleRaw string
	MsgAddExample    = strings.TrimRight(msgAddExampleRaw, "\n")

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)

	//go:embed msgs/check-example.txt
	msgCheckExampleRaw string
	MsgCheckExample    = strings.TrimRight(msgCheckExampleRaw, "\n")

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/init-example.txt
	msgInitExampleRaw string
	MsgInitExample    = strings.TrimRight(msgInitExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
