package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			version, commit := versionGetter()
			if version == "" {
				version = "dev"
			}
			if commit != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "vigor %s (%s)\n", version, commit)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "vigor %s\n", version)
		},
	}
}
