package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fconcat/fconcat/cmd"
	"github.com/fconcat/fconcat/pkg/version"
)

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Print the fconcat version",
	Args:  cmd.DisallowArguments,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(version.String)
	},
}

func init() {
	rootCommand.AddCommand(versionCommand)
}
