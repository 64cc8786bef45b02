// file: internal/matcher/filename.go
// version: 1.0.0
// guid: 8c2d5e1f-3a4b-4c6d-8e9f-0a1b2c3d4e5f

package matcher

import "strings"

// Platform selects which filesystem's filename rules IsValidFilename applies.
type Platform string

const (
	// PlatformWindows rejects the characters Windows forbids in filenames.
	PlatformWindows Platform = "windows"
	// PlatformUnix rejects only the path separator and NUL.
	PlatformUnix Platform = "unix"
)

const windowsReserved = `\/:*?"<>|`

// IsValidFilename reports whether name is syntactically valid for the given
// platform. Unknown platforms are treated as PlatformWindows, the stricter
// rule set.
func IsValidFilename(name string, platform Platform) bool {
	switch platform {
	case PlatformUnix:
		return !strings.ContainsAny(name, "/\x00")
	default:
		return !strings.ContainsAny(name, windowsReserved)
	}
}
