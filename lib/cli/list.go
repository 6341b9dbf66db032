package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered upgrade scriptlets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, v := range a.registry.Versions() {
				fmt.Fprintln(out, versionStyle.Render(v.Number))
				for i, s := range v.Scriptlets {
					fmt.Fprintf(out, "  %02d %s: %s\n", i+1, s.Name(), s.Message())
				}
			}
			return nil
		},
	}
}
