// Package upgrade runs ordered upgrade scriptlets against server instances.
//
// Scriptlets are grouped by the release that introduced them. The Upgrader
// walks versions in registration order, scriptlets in index order and
// instances in the order given, one invocation at a time. Every invocation
// gets its own backup Set, so a scriptlet that backs up the same path twice
// only saves it once. The first failure stops the run; nothing is rolled back
// automatically.
package upgrade
