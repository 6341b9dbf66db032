package sysconfig

import (
	"errors"
	"fmt"

	"github.com/samber/oops"
)

var (
	// ErrFileAccess marks a missing file, a permission problem or any other
	// I/O failure while opening, reading or writing a sysconfig file.
	ErrFileAccess = errors.New("sysconfig file access")

	// ErrEncoding marks content that is not valid UTF-8.
	ErrEncoding = errors.New("sysconfig encoding")
)

// Error codes attached to oops errors returned by this package.
const (
	CodeFileAccess = "file_access"
	CodeEncoding   = "encoding"
)

func fileAccessError(path, op string, err error) error {
	return oops.
		In("sysconfig").
		Code(CodeFileAccess).
		With("path", path, "op", op).
		Wrapf(fmt.Errorf("%w: %w", ErrFileAccess, err), "%s %s", op, path)
}

func encodingError(path, op string, err error) error {
	return oops.
		In("sysconfig").
		Code(CodeEncoding).
		With("path", path, "op", op).
		Wrapf(fmt.Errorf("%w: %w", ErrEncoding, err), "%s %s", op, path)
}
