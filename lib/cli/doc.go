// Package cli implements the pki-server-upgrade command tree.
//
//	pki-server-upgrade run [--instance NAME]... [--scriptlet NAME]
//	pki-server-upgrade list
//	pki-server-upgrade revert DIR
//
// run upgrades the named instances, or every instance found under
// instances_dir, and prints one line per scriptlet invocation. revert
// restores the files saved in one backup Set directory.
package cli
