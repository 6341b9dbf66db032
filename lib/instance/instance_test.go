package instance

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	inst, err := New("pki-tomcat", "")
	require.NoError(t, err)
	assert.Equal(t, "/etc/sysconfig/pki-tomcat", inst.SysconfigPath())
	assert.Equal(t, "pki-tomcat", inst.String())

	inst, err = New("pki-ca", "/srv/sysconfig")
	require.NoError(t, err)
	assert.Equal(t, "/srv/sysconfig/pki-ca", inst.SysconfigPath())

	_, err = New("", "")
	assert.Error(t, err)
}

func TestDiscover(t *testing.T) {
	mem := afero.NewMemMapFs()
	for _, dir := range []string{"pki-tomcat", "pki-kra", "orphan"} {
		require.NoError(t, mem.MkdirAll("/var/lib/pki/"+dir, 0o755))
	}
	require.NoError(t, afero.WriteFile(mem, "/var/lib/pki/README", []byte("x"), 0o644))
	require.NoError(t, afero.WriteFile(mem, "/etc/sysconfig/pki-tomcat", []byte("A=1\n"), 0o644))
	require.NoError(t, afero.WriteFile(mem, "/etc/sysconfig/pki-kra", []byte("A=1\n"), 0o644))

	instances, err := Discover(mem, DefaultInstancesDir, "/etc/sysconfig")
	require.NoError(t, err)
	require.Len(t, instances, 2)
	assert.Equal(t, "pki-kra", instances[0].Name)
	assert.Equal(t, "pki-tomcat", instances[1].Name)
}

func TestDiscoverMissingDir(t *testing.T) {
	_, err := Discover(afero.NewMemMapFs(), DefaultInstancesDir, "/etc/sysconfig")
	assert.Error(t, err)
}
