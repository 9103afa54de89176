package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/driftship/driftship/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(_ *cobra.Command, _ []string) error {
		v := versionInfo.Version
		if v == "" || v == "dev" {
			v = version.Get()
		}
		fmt.Printf("driftship %s (commit %s, built %s)\n", v, versionInfo.Commit, versionInfo.Date)
		return nil
	},
}
