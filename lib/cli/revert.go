package cli

import (
	"fmt"
	"path/filepath"

	"github.com/go-i2p/pki-upgrade/lib/backup"
	"github.com/go-i2p/pki-upgrade/lib/config"
	"github.com/spf13/cobra"
)

func (a *app) newRevertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "revert DIR",
		Short: "Restore the files saved in a backup directory",
		Long: "Restore the files saved in a backup directory. A relative DIR is\n" +
			"resolved against the backup root, e.g. 10.6.0/01-RemoveNSSDefault/pki-tomcat.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Current()
			dir := args[0]
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(cfg.Backup.Dir, dir)
			}

			m, err := backup.NewStore(a.fs, cfg.Backup.Dir).Restore(dir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, e := range m.Files {
				fmt.Fprintf(out, "%s %s\n", okStyle.Render("restored"), e.Path)
			}
			return nil
		},
	}
}
