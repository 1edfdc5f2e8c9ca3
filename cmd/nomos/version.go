package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the release version, overridden at build time via -ldflags.
var Version = "0.1.0-dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("nomos %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
