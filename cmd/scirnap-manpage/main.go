// scirnap-manpage writes the man pages for the release archives: one page
// per command into the directory given as argument, or the root page to
// stdout.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/scirnap/cmd/scirnap"
	"github.com/arthur-debert/scirnap/internal/version"
)

func main() {
	rootCmd := scirnap.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "SCIRNAP",
		Section: "1",
		Source:  "scirnap " + version.Version,
		Manual:  "scirnap manual",
	}

	var err error
	if len(os.Args) > 1 {
		dir := os.Args[1]
		if err = os.MkdirAll(dir, 0755); err == nil {
			err = doc.GenManTree(rootCmd, header, dir)
		}
	} else {
		err = doc.GenMan(rootCmd, header, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
