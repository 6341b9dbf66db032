package backup

import (
	"os"
	"path/filepath"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ManifestName is the file name of a Set's manifest.
const ManifestName = "manifest.yaml"

// Entry describes one saved file.
type Entry struct {
	Path   string      `yaml:"path"`
	Mode   os.FileMode `yaml:"mode"`
	Size   int64       `yaml:"size"`
	Digest string      `yaml:"blake2b"`
	Time   time.Time   `yaml:"time"`
}

// Manifest lists the files saved by one Set.
type Manifest struct {
	Version   string  `yaml:"version"`
	Scriptlet string  `yaml:"scriptlet"`
	Instance  string  `yaml:"instance"`
	Files     []Entry `yaml:"files"`
}

// find returns the entry saved for path.
func (m *Manifest) find(path string) (Entry, bool) {
	for _, e := range m.Files {
		if e.Path == path {
			return e, true
		}
	}
	return Entry{}, false
}

func writeManifest(fs afero.Fs, dir string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return oops.In("backup").With("dir", dir).Wrapf(err, "encode manifest")
	}
	if err := afero.WriteFile(fs, filepath.Join(dir, ManifestName), data, 0o600); err != nil {
		return oops.In("backup").With("dir", dir).Wrapf(err, "write manifest")
	}
	return nil
}

// LoadManifest reads the manifest of the Set stored in dir.
func LoadManifest(fs afero.Fs, dir string) (*Manifest, error) {
	data, err := afero.ReadFile(fs, filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, oops.In("backup").With("dir", dir).Wrapf(err, "read manifest")
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, oops.In("backup").With("dir", dir).Wrapf(err, "decode manifest")
	}
	return &m, nil
}
