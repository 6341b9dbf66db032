package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/pki-upgrade/lib/util"
	"github.com/samber/oops"
	"github.com/spf13/viper"
)

var (
	CfgFile string
	log     = logger.GetGoI2PLogger()
)

const (
	// EnvPrefix prefixes environment overrides.
	EnvPrefix = "PKI_UPGRADE"

	// SystemConfigDir is searched for upgrade.yaml.
	SystemConfigDir = "/etc/pki"

	// UserConfigDirName is searched for upgrade.yaml under the home directory.
	UserConfigDirName = ".pki"
)

// Viper keys.
const (
	KeySysconfigDir = "sysconfig_dir"
	KeyInstancesDir = "instances_dir"
	KeyBackupDir    = "backup.dir"
)

// Config is a snapshot of the resolved configuration.
type Config struct {
	SysconfigDir string
	InstancesDir string
	Backup       BackupConfig
}

// BackupConfig configures the backup store.
type BackupConfig struct {
	Dir string
}

// InitConfig loads defaults, the config file and environment overrides into
// viper.
func InitConfig() error {
	if CfgFile != "" {
		viper.SetConfigFile(CfgFile)
	} else {
		viper.AddConfigPath(SystemConfigDir)
		if home := util.UserHome(); home != "" {
			viper.AddConfigPath(filepath.Join(home, UserConfigDirName))
		}
		viper.SetConfigName("upgrade")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	return handleConfigFile()
}

func setDefaults() {
	d := Defaults()
	viper.SetDefault(KeySysconfigDir, d.SysconfigDir)
	viper.SetDefault(KeyInstancesDir, d.InstancesDir)
	viper.SetDefault(KeyBackupDir, d.Backup.Dir)
}

func handleConfigFile() error {
	err := viper.ReadInConfig()
	if err == nil {
		log.WithField("file", viper.ConfigFileUsed()).Debug("Using config file")
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		log.Debug("No config file found, using defaults")
		return nil
	}
	return oops.In("config").With("file", CfgFile).Wrapf(err, "read config file")
}

// Current returns the configuration currently held by viper.
func Current() *Config {
	return &Config{
		SysconfigDir: viper.GetString(KeySysconfigDir),
		InstancesDir: viper.GetString(KeyInstancesDir),
		Backup: BackupConfig{
			Dir: viper.GetString(KeyBackupDir),
		},
	}
}
