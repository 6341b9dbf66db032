package backup

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
	"github.com/spf13/afero"
	"golang.org/x/crypto/blake2b"
)

// DefaultDir is the default Store root.
const DefaultDir = "/var/log/pki/server/upgrade"

// ErrChecksum is returned by Restore when a saved copy no longer matches the
// digest recorded at backup time.
var ErrChecksum = errors.New("backup checksum mismatch")

// Store creates backup Sets under a root directory.
type Store struct {
	fs   afero.Fs
	root string
	now  func() time.Time
}

// NewStore returns a Store rooted at root on fs.
func NewStore(fs afero.Fs, root string) *Store {
	return &Store{fs: fs, root: root, now: time.Now}
}

// Root returns the Store's root directory.
func (s *Store) Root() string {
	return s.root
}

// Begin opens the Set for one step run against one instance. index is the
// step's 1-based position within its version.
func (s *Store) Begin(version string, index int, scriptlet, instance string) *Set {
	dir := filepath.Join(s.root, version, fmt.Sprintf("%02d-%s", index, scriptlet), instance)
	return &Set{
		store: s,
		dir:   dir,
		manifest: Manifest{
			Version:   version,
			Scriptlet: scriptlet,
			Instance:  instance,
		},
	}
}

// Restore copies every file recorded in the Set stored in dir back to its
// original path.
func (s *Store) Restore(dir string) (*Manifest, error) {
	m, err := LoadManifest(s.fs, dir)
	if err != nil {
		return nil, err
	}
	if err := restore(s.fs, dir, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Set holds the files saved by one step run. Each path is saved at most once.
// When an earlier run already left a manifest in the Set's directory, its
// entries are kept and those files are not saved again, so the directory
// always holds the oldest snapshot.
type Set struct {
	store    *Store
	dir      string
	manifest Manifest
	loaded   bool
}

// Dir returns the directory the Set writes to.
func (b *Set) Dir() string {
	return b.dir
}

// Manifest returns a copy of the Set's manifest.
func (b *Set) Manifest() Manifest {
	m := b.manifest
	m.Files = append([]Entry(nil), b.manifest.Files...)
	return m
}

// Backup saves a copy of the regular file at path. Calling it again for a
// path that is already saved does nothing.
func (b *Set) Backup(path string) error {
	if err := b.load(); err != nil {
		return err
	}
	if _, ok := b.manifest.find(path); ok {
		log.WithField("path", path).Debug("File already backed up")
		return nil
	}

	fs := b.store.fs
	info, err := fs.Stat(path)
	if err != nil {
		return oops.In("backup").With("path", path).Wrapf(err, "stat")
	}
	if !info.Mode().IsRegular() {
		return oops.In("backup").With("path", path).Errorf("not a regular file: %s", path)
	}

	dst := b.copyPath(path)
	if err := fs.MkdirAll(filepath.Dir(dst), 0o700); err != nil {
		return oops.In("backup").With("path", path, "dir", b.dir).Wrapf(err, "create backup directory")
	}
	size, digest, err := copyFile(fs, path, dst, info.Mode().Perm())
	if err != nil {
		return oops.In("backup").With("path", path, "copy", dst).Wrapf(err, "copy")
	}

	b.manifest.Files = append(b.manifest.Files, Entry{
		Path:   path,
		Mode:   info.Mode().Perm(),
		Size:   size,
		Digest: digest,
		Time:   b.store.now().UTC(),
	})
	if err := writeManifest(fs, b.dir, &b.manifest); err != nil {
		b.manifest.Files = b.manifest.Files[:len(b.manifest.Files)-1]
		return err
	}

	log.WithFields(logger.Fields{
		"path":   path,
		"backup": dst,
		"size":   size,
	}).Debug("Backed up file")
	return nil
}

// load merges the manifest left by an earlier run, once.
func (b *Set) load() error {
	if b.loaded {
		return nil
	}
	exists, err := afero.Exists(b.store.fs, filepath.Join(b.dir, ManifestName))
	if err != nil {
		return oops.In("backup").With("dir", b.dir).Wrapf(err, "check manifest")
	}
	if exists {
		prev, err := LoadManifest(b.store.fs, b.dir)
		if err != nil {
			return err
		}
		b.manifest.Files = append(prev.Files, b.manifest.Files...)
		log.WithFields(logger.Fields{
			"dir":   b.dir,
			"files": len(prev.Files),
		}).Debug("Keeping backups from an earlier run")
	}
	b.loaded = true
	return nil
}

// Restore copies every file saved by this Set back to its original path.
func (b *Set) Restore() error {
	if err := b.load(); err != nil {
		return err
	}
	return restore(b.store.fs, b.dir, &b.manifest)
}

func (b *Set) copyPath(path string) string {
	return filepath.Join(b.dir, "files", path)
}

func restore(fs afero.Fs, dir string, m *Manifest) error {
	for _, e := range m.Files {
		src := filepath.Join(dir, "files", e.Path)
		digest, err := digestFile(fs, src)
		if err != nil {
			return oops.In("backup").With("path", e.Path, "copy", src).Wrapf(err, "read backup copy")
		}
		if digest != e.Digest {
			return oops.
				In("backup").
				With("path", e.Path, "want", e.Digest, "got", digest).
				Wrapf(ErrChecksum, "verify %s", src)
		}
		if _, _, err := copyFile(fs, src, e.Path, e.Mode); err != nil {
			return oops.In("backup").With("path", e.Path, "copy", src).Wrapf(err, "restore")
		}
		if err := fs.Chmod(e.Path, e.Mode); err != nil {
			return oops.In("backup").With("path", e.Path).Wrapf(err, "restore mode")
		}
		log.WithField("path", e.Path).Info("Restored file from backup")
	}
	return nil
}

// copyFile copies src to dst and returns the number of bytes copied and
// their hex BLAKE2b-256 digest.
func copyFile(fs afero.Fs, src, dst string, perm os.FileMode) (n int64, digest string, err error) {
	in, err := fs.Open(src)
	if err != nil {
		return 0, "", err
	}
	defer in.Close()

	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return 0, "", err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	h, err := blake2b.New256(nil)
	if err != nil {
		return 0, "", err
	}
	n, err = io.Copy(io.MultiWriter(out, h), in)
	if err != nil {
		return 0, "", err
	}
	return n, hex.EncodeToString(h.Sum(nil)), nil
}

func digestFile(fs afero.Fs, path string) (string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
