package config

import (
	"github.com/go-i2p/pki-upgrade/lib/backup"
	"github.com/go-i2p/pki-upgrade/lib/instance"
	"github.com/go-i2p/pki-upgrade/lib/sysconfig"
)

// ConfigDefaults contains all default configuration values.
type ConfigDefaults struct {
	// SysconfigDir holds one sysconfig file per instance
	// Default: /etc/sysconfig
	SysconfigDir string

	// InstancesDir is scanned for instances when none are named
	// Default: /var/lib/pki
	InstancesDir string

	Backup BackupDefaults
}

// BackupDefaults contains default values for the backup store
type BackupDefaults struct {
	// Dir is the root of every backup Set
	// Default: /var/log/pki/server/upgrade
	Dir string
}

// Defaults returns the built-in configuration.
func Defaults() ConfigDefaults {
	return ConfigDefaults{
		SysconfigDir: sysconfig.DefaultDir,
		InstancesDir: instance.DefaultInstancesDir,
		Backup: BackupDefaults{
			Dir: backup.DefaultDir,
		},
	}
}
