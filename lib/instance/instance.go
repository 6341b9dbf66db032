// Package instance describes the server instances an upgrade runs against.
package instance

import (
	"sort"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/pki-upgrade/lib/sysconfig"
	"github.com/go-i2p/pki-upgrade/lib/util"
	"github.com/samber/oops"
	"github.com/spf13/afero"
)

var log = logger.GetGoI2PLogger()

// DefaultInstancesDir holds one directory per installed instance.
const DefaultInstancesDir = "/var/lib/pki"

// Instance is one installed server instance.
type Instance struct {
	Name         string
	SysconfigDir string
}

// New returns the instance called name whose sysconfig file lives in
// sysconfigDir. The name is trusted apart from being non-empty.
func New(name, sysconfigDir string) (*Instance, error) {
	if name == "" {
		return nil, oops.In("instance").Errorf("instance name is empty")
	}
	if sysconfigDir == "" {
		sysconfigDir = sysconfig.DefaultDir
	}
	return &Instance{Name: name, SysconfigDir: sysconfigDir}, nil
}

// SysconfigPath returns the instance's sysconfig file.
func (i *Instance) SysconfigPath() string {
	return sysconfig.Path(i.SysconfigDir, i.Name)
}

func (i *Instance) String() string {
	return i.Name
}

// Discover returns every directory in instancesDir that has a sysconfig file
// in sysconfigDir, sorted by name. Directories without one are skipped.
func Discover(fs afero.Fs, instancesDir, sysconfigDir string) ([]*Instance, error) {
	entries, err := afero.ReadDir(fs, instancesDir)
	if err != nil {
		return nil, oops.In("instance").With("dir", instancesDir).Wrapf(err, "list instances")
	}

	var instances []*Instance
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		inst, err := New(e.Name(), sysconfigDir)
		if err != nil {
			return nil, err
		}
		if !util.CheckFileExists(fs, inst.SysconfigPath()) {
			log.WithField("instance", inst.Name).Debug("Skipping instance without sysconfig file")
			continue
		}
		instances = append(instances, inst)
	}
	sort.Slice(instances, func(a, b int) bool {
		return instances[a].Name < instances[b].Name
	})
	log.WithField("count", len(instances)).Debug("Discovered instances")
	return instances, nil
}
