package target

import (
	"net/url"
	"path/filepath"
)

// Normalize converts a compile target into the rooted, cleaned path form used
// as a module URI.
//
// Targets may be file paths or URIs. File paths and file URIs become
// absolute, cleaned paths. Any other URI is returned unchanged for some other
// FileSystem implementation to handle.
func Normalize(target string) string {
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "" && u.Scheme != "file") {
		return target
	}
	if u.Scheme == "file" {
		target = u.Path
	}
	return filepath.Clean(filepath.Join("/", target))
}
