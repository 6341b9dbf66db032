package util

import (
	"os"
)

// UserHome returns the current user's home directory, or "" when neither
// os.UserHomeDir nor $HOME yield one. Upgrades usually run as root from a
// package scriptlet, where the home directory is optional.
func UserHome() string {
	homeDir, err := os.UserHomeDir()
	if err == nil {
		return homeDir
	}
	if home := os.Getenv("HOME"); home != "" {
		log.WithError(err).Warn("os.UserHomeDir failed, falling back to $HOME")
		return home
	}
	log.WithError(err).Debug("No home directory available")
	return ""
}
