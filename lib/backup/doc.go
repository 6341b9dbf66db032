// Package backup snapshots files before an upgrade step modifies them.
//
// A Store is rooted at a directory such as /var/log/pki/server/upgrade. Each
// step run against one instance opens its own Set:
//
//	<root>/<version>/<index>-<scriptlet>/<instance>/
//	    manifest.yaml
//	    files/<original absolute path>
//
// The manifest records the original path, mode, size and BLAKE2b-256 digest
// of every saved file. Restore verifies each digest before copying a file
// back. Nothing in this package restores automatically.
package backup
