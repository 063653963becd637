package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "0.2.0"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Println("quantum", version)
		},
	}
}
