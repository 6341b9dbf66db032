package sysconfig

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
	"github.com/spf13/afero"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// CheckFile verifies that path names an existing regular file. Any other
// outcome fails with ErrFileAccess.
func CheckFile(fs afero.Fs, path string) error {
	info, err := fs.Stat(path)
	if err != nil {
		return fileAccessError(path, "stat", err)
	}
	if !info.Mode().IsRegular() {
		return fileAccessError(path, "stat", oops.Errorf("not a regular file"))
	}
	return nil
}

// ReadLines reads the whole file at path as UTF-8 and splits it after every
// '\n'. Terminators stay attached; a final line without one is kept as is.
func ReadLines(fs afero.Fs, path string) (lines []string, err error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fileAccessError(path, "open", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fileAccessError(path, "close", cerr)
		}
	}()

	r := bufio.NewReader(transform.NewReader(f, encoding.UTF8Validator))
	for {
		line, rerr := r.ReadString('\n')
		if rerr != nil && rerr != io.EOF {
			if errors.Is(rerr, encoding.ErrInvalidUTF8) {
				return nil, encodingError(path, "decode", rerr)
			}
			return nil, fileAccessError(path, "read", rerr)
		}
		if line != "" {
			lines = append(lines, line)
		}
		if rerr == io.EOF {
			return lines, nil
		}
	}
}

// WriteLines replaces the content of the existing file at path with lines.
// The content is validated before the file is opened, so an encoding failure
// leaves the file untouched. The file is truncated in place, which keeps its
// mode and ownership.
func WriteLines(fs afero.Fs, path string, lines []string) (err error) {
	data, _, err := transform.String(encoding.UTF8Validator, strings.Join(lines, ""))
	if err != nil {
		return encodingError(path, "encode", err)
	}

	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return fileAccessError(path, "open", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fileAccessError(path, "close", cerr)
		}
	}()

	if _, err := f.WriteString(data); err != nil {
		return fileAccessError(path, "write", err)
	}
	return nil
}

// RewriteFile applies rules to the file at path. When the rewritten content
// equals the original the write is skipped on purpose: the file already holds
// exactly the bytes a write would produce, and leaving it alone keeps a second
// run from truncating it at all.
func RewriteFile(fs afero.Fs, path string, rules []Rule) (Result, error) {
	lines, err := ReadLines(fs, path)
	if err != nil {
		return Result{}, err
	}

	out, res := Rewrite(lines, rules)
	log.WithFields(logger.Fields{
		"path":     path,
		"lines":    res.Lines,
		"removed":  res.Removed,
		"replaced": res.Replaced,
		"changed":  res.Changed,
	}).Debug("Rewrote sysconfig lines")

	if !res.Changed {
		log.WithField("path", path).Debug("Sysconfig already up to date, skipping write")
		return res, nil
	}
	if err := WriteLines(fs, path, out); err != nil {
		return Result{}, err
	}
	return res, nil
}
