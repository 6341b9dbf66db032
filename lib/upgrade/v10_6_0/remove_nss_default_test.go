package v10_6_0

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/go-i2p/pki-upgrade/lib/backup"
	"github.com/go-i2p/pki-upgrade/lib/instance"
	"github.com/go-i2p/pki-upgrade/lib/sysconfig"
	"github.com/go-i2p/pki-upgrade/lib/upgrade"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sysconfigPath = "/etc/sysconfig/pki-tomcat"

// recordingBackuper records calls and the file content seen at call time.
type recordingBackuper struct {
	fs    afero.Fs
	calls []string
	seen  []string
	err   error
}

func (r *recordingBackuper) Backup(path string) error {
	r.calls = append(r.calls, path)
	data, _ := afero.ReadFile(r.fs, path)
	r.seen = append(r.seen, string(data))
	return r.err
}

func newEnv(t *testing.T, content string) (*upgrade.Env, *recordingBackuper) {
	t.Helper()
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, sysconfigPath, []byte(content), 0o660))
	inst, err := instance.New("pki-tomcat", sysconfig.DefaultDir)
	require.NoError(t, err)
	b := &recordingBackuper{fs: mem}
	return &upgrade.Env{Instance: inst, Fs: mem, Backup: b}, b
}

func content(t *testing.T, env *upgrade.Env) string {
	t.Helper()
	data, err := afero.ReadFile(env.Fs, sysconfigPath)
	require.NoError(t, err)
	return string(data)
}

func TestRemoveNSSDefaultMetadata(t *testing.T) {
	s := NewRemoveNSSDefault()
	assert.Equal(t, "RemoveNSSDefault", s.Name())
	assert.Equal(t, "Remove NSS_DEFAULT_DB_TYPE from instance sysconfig", s.Message())
}

func TestRemoveNSSDefault(t *testing.T) {
	original := "# Default NSS DB type\nNSS_DEFAULT_DB_TYPE=dbm\nOTHER=value\n"
	env, b := newEnv(t, original)

	require.NoError(t, NewRemoveNSSDefault().UpgradeInstance(context.Background(), env))

	assert.Equal(t, NSSComment+"OTHER=value\n", content(t, env))
	assert.Equal(t, []string{sysconfigPath}, b.calls)
	assert.Equal(t, []string{original}, b.seen, "backup must see the unmodified file")
}

func TestRemoveNSSDefaultNoMatches(t *testing.T) {
	original := "JAVA_HOME=/usr/lib/jvm/jre-1.8.0-openjdk\nTOMCAT_USER=pkiuser\n"
	env, _ := newEnv(t, original)

	require.NoError(t, NewRemoveNSSDefault().UpgradeInstance(context.Background(), env))
	assert.Equal(t, original, content(t, env))
}

func TestRemoveNSSDefaultConsecutiveDirectives(t *testing.T) {
	env, _ := newEnv(t, "A=1\nNSS_DEFAULT_DB_TYPE=dbm\nNSS_DEFAULT_DB_TYPE=sql\nB=2\n")

	require.NoError(t, NewRemoveNSSDefault().UpgradeInstance(context.Background(), env))
	assert.Equal(t, "A=1\nB=2\n", content(t, env))
}

func TestRemoveNSSDefaultTwice(t *testing.T) {
	env, _ := newEnv(t, "# Default NSS DB type\nNSS_DEFAULT_DB_TYPE=dbm\nOTHER=value\n")
	s := NewRemoveNSSDefault()

	require.NoError(t, s.UpgradeInstance(context.Background(), env))
	first := content(t, env)
	require.NoError(t, s.UpgradeInstance(context.Background(), env))
	assert.Equal(t, first, content(t, env))
}

func TestRemoveNSSDefaultBackupFailure(t *testing.T) {
	original := "NSS_DEFAULT_DB_TYPE=dbm\n"
	env, b := newEnv(t, original)
	b.err = errors.New("disk full")

	err := NewRemoveNSSDefault().UpgradeInstance(context.Background(), env)
	require.Error(t, err)
	assert.True(t, errors.Is(err, upgrade.ErrBackup))
	assert.Len(t, b.calls, 1)
	assert.Equal(t, original, content(t, env))
}

func TestRemoveNSSDefaultMissingFile(t *testing.T) {
	mem := afero.NewMemMapFs()
	inst, err := instance.New("pki-tomcat", sysconfig.DefaultDir)
	require.NoError(t, err)
	set := backup.NewStore(mem, backup.DefaultDir).Begin("10.6.0", 1, "RemoveNSSDefault", "pki-tomcat")
	env := &upgrade.Env{Instance: inst, Fs: mem, Backup: set}

	err = NewRemoveNSSDefault().UpgradeInstance(context.Background(), env)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sysconfig.ErrFileAccess))
	assert.False(t, errors.Is(err, upgrade.ErrBackup))
	assert.Empty(t, set.Manifest().Files)
}

func TestRemoveNSSDefaultMissingFileSkipsBackup(t *testing.T) {
	mem := afero.NewMemMapFs()
	inst, err := instance.New("pki-tomcat", sysconfig.DefaultDir)
	require.NoError(t, err)
	b := &recordingBackuper{fs: mem}
	env := &upgrade.Env{Instance: inst, Fs: mem, Backup: b}

	err = NewRemoveNSSDefault().UpgradeInstance(context.Background(), env)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sysconfig.ErrFileAccess))
	assert.Empty(t, b.calls)
}

func TestRemoveNSSDefaultEncodingError(t *testing.T) {
	original := "NSS_DEFAULT_DB_TYPE=dbm\nNAME=\xff\n"
	env, b := newEnv(t, original)

	err := NewRemoveNSSDefault().UpgradeInstance(context.Background(), env)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sysconfig.ErrEncoding))
	assert.Len(t, b.calls, 1)
	assert.Equal(t, original, content(t, env))
}

func TestRemoveNSSDefaultWithBackupStore(t *testing.T) {
	original := "# Default NSS DB type\nNSS_DEFAULT_DB_TYPE=dbm\n"
	env, _ := newEnv(t, original)
	set := backup.NewStore(env.Fs, backup.DefaultDir).Begin("10.6.0", 1, "RemoveNSSDefault", "pki-tomcat")
	env.Backup = set

	require.NoError(t, NewRemoveNSSDefault().UpgradeInstance(context.Background(), env))
	assert.Equal(t, NSSComment, content(t, env))

	saved, err := afero.ReadFile(env.Fs, filepath.Join(set.Dir(), "files", sysconfigPath))
	require.NoError(t, err)
	assert.Equal(t, original, string(saved))
}
