package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pa11y/sidekick/internal/version"
)

type versionInfo struct {
	Version string `json:"version"`
	Major   int    `json:"major"`
	Minor   int    `json:"minor"`
	Fix     int    `json:"fix"`
	Pre     int    `json:"pre"`
}

func versionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version of sidekickctl",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				return printJSON(
					cmd.OutOrStdout(), versionInfo{
						Version: version.VERSION,
						Major:   version.MAJOR,
						Minor:   version.MINOR,
						Fix:     version.FIX,
						Pre:     version.PRE,
					},
				)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.VERSION)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the version and its segments as JSON")
	return cmd
}
