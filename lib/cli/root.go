package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/pki-upgrade/lib/config"
	"github.com/go-i2p/pki-upgrade/lib/upgrade"
	"github.com/go-i2p/pki-upgrade/lib/upgrade/v10_6_0"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var log = logger.GetGoI2PLogger()

// DefaultRegistry returns every scriptlet shipped with this build.
func DefaultRegistry() *upgrade.Registry {
	return upgrade.NewRegistry(
		upgrade.Version{Number: "10.6.0", Scriptlets: []upgrade.Scriptlet{
			v10_6_0.NewRemoveNSSDefault(),
		}},
	)
}

type app struct {
	fs       afero.Fs
	registry *upgrade.Registry
}

// NewRootCommand builds the command tree working on fs.
func NewRootCommand(fs afero.Fs, registry *upgrade.Registry) *cobra.Command {
	a := &app{fs: fs, registry: registry}

	root := &cobra.Command{
		Use:           "pki-server-upgrade",
		Short:         "Upgrade PKI server instance configuration",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.InitConfig()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&config.CfgFile, "config", "", "config file (default /etc/pki/upgrade.yaml)")
	flags.String("sysconfig-dir", config.Defaults().SysconfigDir, "directory holding instance sysconfig files")
	flags.String("instances-dir", config.Defaults().InstancesDir, "directory holding one directory per instance")
	flags.String("backup-dir", config.Defaults().Backup.Dir, "root directory for backups")
	bindFlag(config.KeySysconfigDir, root, "sysconfig-dir")
	bindFlag(config.KeyInstancesDir, root, "instances-dir")
	bindFlag(config.KeyBackupDir, root, "backup-dir")

	root.AddCommand(a.newRunCommand(), a.newListCommand(), a.newRevertCommand())
	return root
}

func bindFlag(key string, cmd *cobra.Command, name string) {
	if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(name)); err != nil {
		log.WithError(err).WithField("flag", name).Warn("Could not bind flag")
	}
}

// Execute runs the command line against the real filesystem. SIGINT and
// SIGTERM stop the run between two scriptlet invocations.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCommand(afero.NewOsFs(), DefaultRegistry())
	err := root.ExecuteContext(ctx)
	if err != nil {
		root.PrintErrln("Error: " + err.Error())
	}
	return err
}
