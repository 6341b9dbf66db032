package upgrade

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-i2p/pki-upgrade/lib/instance"
	"github.com/samber/oops"
	"github.com/spf13/afero"
)

// ErrBackup marks a failed backup. A scriptlet returns it before touching the
// file it tried to save.
var ErrBackup = errors.New("backup failed")

// CodeBackup is the oops code attached to backup failures.
const CodeBackup = "backup_failed"

// Backuper saves a file before it is modified.
type Backuper interface {
	Backup(path string) error
}

// Env is what a scriptlet may touch during one invocation.
type Env struct {
	Instance *instance.Instance
	Fs       afero.Fs
	Backup   Backuper
}

// Scriptlet is a single upgrade step applied to one instance at a time.
type Scriptlet interface {
	// Name identifies the scriptlet within its version.
	Name() string
	// Message is a one-line description shown to the operator.
	Message() string
	UpgradeInstance(ctx context.Context, env *Env) error
}

// BackupError wraps a failure returned by a Backuper for path.
func BackupError(path string, err error) error {
	return oops.
		In("upgrade").
		Code(CodeBackup).
		With("path", path).
		Wrapf(fmt.Errorf("%w: %w", ErrBackup, err), "backup %s", path)
}
