package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"shareflow/internal/logutil"
	"shareflow/internal/probe"
	"shareflow/internal/share"
)

func newPlatformsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "platforms",
		Short: "List share targets and their availability",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logutil.SetVerbose(verboseFlag)

			catalog := share.NewCatalog(probe.Path{})
			if err := catalog.RefreshAvailability(cmd.Context()); err != nil {
				logutil.Warnf("availability refresh incomplete: %v", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PLATFORM\tNAME\tINSTALLED\tAVAILABLE")
			for _, caps := range catalog.AllCapabilities() {
				a := catalog.Availability(caps.Platform)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", caps.Platform, caps.DisplayName, yesNo(a.Installed), yesNo(a.Available))
			}
			return w.Flush()
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
