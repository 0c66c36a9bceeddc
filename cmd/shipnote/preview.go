package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/shipnote/pkg/shipnote"
)

// previewCmd renders the notes without publishing anything.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the release notes without publishing",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := buildConfig(cmd)
		if err != nil {
			fatal("Failed to load configuration", err)
		}

		plan, err := shipnote.Preview(cmd.Context(), cfg)
		if err != nil {
			fatal("Failed to render release notes", err)
		}

		fmt.Print(plan.Body)
	},
}

func init() {
	addConfigFlags(previewCmd)
	rootCmd.AddCommand(previewCmd)
}
