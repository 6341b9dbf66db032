// Package v10_6_0 holds the upgrade scriptlets introduced in release 10.6.0.
package v10_6_0

import (
	"context"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/pki-upgrade/lib/sysconfig"
	"github.com/go-i2p/pki-upgrade/lib/upgrade"
)

var log = logger.GetGoI2PLogger()

const (
	nssCommentPrefix = "# Default NSS DB type"
	nssDirective     = "NSS_DEFAULT_DB_TYPE"

	// NSSComment replaces the old comment above the directive.
	NSSComment = "# Default NSS DB type is loaded from /usr/share/pki/etc/tomcat.conf\n"
)

// nssRules match by prefix, so the replacement comment matches its own rule
// and is rewritten to itself on a second run.
var nssRules = []sysconfig.Rule{
	{Prefix: nssCommentPrefix, Replacement: NSSComment},
	{Prefix: nssDirective, Drop: true},
}

// RemoveNSSDefault drops NSS_DEFAULT_DB_TYPE from an instance's sysconfig
// file, which now inherits the value from tomcat.conf:
//
//	# BEFORE:
//	# Default NSS DB type
//	NSS_DEFAULT_DB_TYPE=dbm
//	JAVA_HOME=...
//
//	# AFTER:
//	# Default NSS DB type is loaded from /usr/share/pki/etc/tomcat.conf
//	JAVA_HOME=...
type RemoveNSSDefault struct{}

// NewRemoveNSSDefault returns the scriptlet.
func NewRemoveNSSDefault() *RemoveNSSDefault {
	return &RemoveNSSDefault{}
}

// Name returns the scriptlet's registry name.
func (*RemoveNSSDefault) Name() string {
	return "RemoveNSSDefault"
}

// Message returns the one-line description shown before the scriptlet runs.
func (*RemoveNSSDefault) Message() string {
	return "Remove NSS_DEFAULT_DB_TYPE from instance sysconfig"
}

// UpgradeInstance backs up the sysconfig file and then rewrites it. A missing
// or unreadable file fails with sysconfig.ErrFileAccess before the backup; a
// failed backup returns before the file is read.
func (*RemoveNSSDefault) UpgradeInstance(_ context.Context, env *upgrade.Env) error {
	path := env.Instance.SysconfigPath()
	if err := sysconfig.CheckFile(env.Fs, path); err != nil {
		return err
	}
	if err := env.Backup.Backup(path); err != nil {
		return upgrade.BackupError(path, err)
	}

	res, err := sysconfig.RewriteFile(env.Fs, path, nssRules)
	if err != nil {
		return err
	}
	log.WithFields(logger.Fields{
		"instance": env.Instance.Name,
		"removed":  res.Removed,
		"replaced": res.Replaced,
	}).Debug("Removed NSS_DEFAULT_DB_TYPE")
	return nil
}
