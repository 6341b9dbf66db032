package cli

import (
	"github.com/go-i2p/pki-upgrade/lib/backup"
	"github.com/go-i2p/pki-upgrade/lib/config"
	"github.com/go-i2p/pki-upgrade/lib/instance"
	"github.com/go-i2p/pki-upgrade/lib/upgrade"
	"github.com/spf13/cobra"
)

func (a *app) newRunCommand() *cobra.Command {
	var (
		names     []string
		scriptlet string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run upgrade scriptlets against instances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Current()
			instances, err := a.instances(cfg, names)
			if err != nil {
				return err
			}
			if len(instances) == 0 {
				cmd.Println("No instances to upgrade")
				return nil
			}

			u := upgrade.NewUpgrader(a.fs, backup.NewStore(a.fs, cfg.Backup.Dir), a.registry)
			report, runErr := u.Run(cmd.Context(), instances, scriptlet)
			renderReport(cmd.OutOrStdout(), report)
			return runErr
		},
	}
	cmd.Flags().StringSliceVarP(&names, "instance", "i", nil, "instance to upgrade (repeatable, default: all)")
	cmd.Flags().StringVar(&scriptlet, "scriptlet", "", "run only the named scriptlet")
	return cmd
}

func (a *app) instances(cfg *config.Config, names []string) ([]*instance.Instance, error) {
	if len(names) == 0 {
		return instance.Discover(a.fs, cfg.InstancesDir, cfg.SysconfigDir)
	}
	instances := make([]*instance.Instance, 0, len(names))
	for _, name := range names {
		inst, err := instance.New(name, cfg.SysconfigDir)
		if err != nil {
			return nil, err
		}
		instances = append(instances, inst)
	}
	return instances, nil
}
