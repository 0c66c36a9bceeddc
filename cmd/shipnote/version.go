package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/shipnote/pkg/shipnote"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of shipnote",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("shipnote version %s\n", shipnote.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
