package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/scirnap/cmd/scirnap"
	"github.com/arthur-debert/scirnap/pkg/style"
)

func main() {
	rootCmd := scirnap.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.NewPrinter(os.Stderr).Error(err))
		os.Exit(1)
	}
}
