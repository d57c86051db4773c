package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/pbxpatch/cmd/pbxpatch"
	"github.com/arthur-debert/pbxpatch/pkg/ui/output/styles"
)

func main() {
	rootCmd := pbxpatch.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
