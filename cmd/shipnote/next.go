package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/shipnote/pkg/shipnote"
)

var nextWorkDir string

// nextCmd prints only the computed next version tag, for use in CI.
var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Print the next version tag for today",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := shipnote.DefaultConfig()
		if nextWorkDir != "" {
			cfg.WorkDir = nextWorkDir
		}

		version, err := shipnote.NextVersion(cmd.Context(), cfg)
		if err != nil {
			fatal("Failed to compute next version", err)
		}
		fmt.Println(version.String())
	},
}

func init() {
	nextCmd.Flags().StringVarP(&nextWorkDir, "workdir", "C", "", "Local checkout to read tags from (default .)")
	rootCmd.AddCommand(nextCmd)
}
