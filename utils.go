package roofserve

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsValidPath validates that a path string is a safe relative file path.
// It checks that the path:
//   - is not empty, ".", or "/"
//   - is relative (does not start with "/")
//   - does not end with "/"
//   - does not contain "." or ".." segments (path traversal)
//   - does not contain "//" (empty segments)
//   - does not contain a backslash
//   - is valid UTF-8
//   - does not contain null bytes, control characters (< 0x20), DEL (0x7f),
//     or whitespace other than a plain space
//
// Returns true if the path is valid, false otherwise.
func IsValidPath(p string) bool {
	if p == "" || p == "/" || p == "." {
		return false
	}

	if p[0] == '/' {
		return false
	}

	if strings.HasSuffix(p, "/") {
		return false
	}

	if strings.Contains(p, "//") {
		return false
	}

	if strings.Contains(p, `\`) {
		return false
	}

	if !utf8.ValidString(p) {
		return false
	}

	for _, segment := range strings.Split(p, "/") {
		if segment == "." || segment == ".." {
			return false
		}
	}

	for _, r := range p {
		if r == ' ' {
			continue
		}
		if r < 0x20 || r == 0x7f || unicode.IsSpace(r) {
			return false
		}
	}

	return true
}
