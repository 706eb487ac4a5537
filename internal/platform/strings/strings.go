// Package strings has the string helpers modules use for names and mount points
package strings

import std "strings"

// MustString panics with "<name> is required" when s is blank
func MustString(s, name string) string {
	if std.TrimSpace(s) != "" {
		return s
	}
	panic(name + " is required")
}

// MustPrefix normalizes a mount point like "youtube/" to "/youtube"
// and panics on an empty or root-only path
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}
