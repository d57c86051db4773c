package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/pbxpatch/cmd/pbxpatch"
	"github.com/arthur-debert/pbxpatch/internal/version"
)

func main() {
	if err := generate(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}

// generate writes the pbxpatch(1) man page to w
func generate(w io.Writer) error {
	header := &doc.GenManHeader{
		Title:   "PBXPATCH",
		Section: "1",
		Source:  "pbxpatch " + version.Version,
		Manual:  "pbxpatch manual",
	}
	return doc.GenMan(pbxpatch.NewRootCmd(), header, w)
}
