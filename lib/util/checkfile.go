package util

import (
	"github.com/spf13/afero"
)

// CheckFileExists reports whether fpath names a regular file on fs.
// Directories, missing paths and stat errors all report false.
func CheckFileExists(fs afero.Fs, fpath string) bool {
	info, err := fs.Stat(fpath)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
