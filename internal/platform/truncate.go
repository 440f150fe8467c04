package platform

import "strings"

// FixedString returns s as it would read back from a NUL-terminated
// buffer of the given size.
func FixedString(s string, size int) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	if size <= 0 {
		return ""
	}
	if len(s) > size-1 {
		s = s[:size-1]
	}
	return s
}
