// Package config provides configuration management for pki-server-upgrade.
//
// # Sources
//
// Values are resolved in this order, later sources winning:
//   - built-in defaults (see Defaults)
//   - a YAML file: the --config flag, or upgrade.yaml from /etc/pki or
//     $HOME/.pki when no flag is given (a missing default file is fine)
//   - PKI_UPGRADE_* environment variables, with dots replaced by
//     underscores, e.g. PKI_UPGRADE_BACKUP_DIR
//   - command-line flags bound by the CLI
//
// # Keys
//
//	sysconfig_dir: /etc/sysconfig           # instance sysconfig files
//	instances_dir: /var/lib/pki              # one directory per instance
//	backup:
//	  dir: /var/log/pki/server/upgrade       # backup Store root
package config
