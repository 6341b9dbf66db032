// Package sysconfig rewrites sysconfig-style instance files line by line.
//
// A sysconfig file is a shell-sourceable KEY=value file that sets the
// environment of one server instance, stored as /etc/sysconfig/<instance>.
// This package does not parse that format. It classifies each line by a
// literal, case-sensitive prefix and then copies, replaces or drops it:
//
//	rules := []sysconfig.Rule{
//		{Prefix: "# Default NSS DB type", Replacement: "# loaded elsewhere\n"},
//		{Prefix: "NSS_DEFAULT_DB_TYPE", Drop: true},
//	}
//	res, err := sysconfig.RewriteFile(fs, "/etc/sysconfig/pki-tomcat", rules)
//
// Lines keep their original terminators and relative order. Files are read
// and written as UTF-8; invalid content fails with ErrEncoding and I/O
// failures fail with ErrFileAccess. The new content is built in memory before
// the target is truncated, so a failed read never touches the file.
//
// Callers must serialize rewrites of the same path. There is no locking here.
package sysconfig
