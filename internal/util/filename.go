package util

import (
	"strings"
	"unicode/utf8"
)

// maxFilenameBytes leaves 15 bytes of the usual 255 byte limit for suffixes
// such as "_tmp" and for FUSE layers that reserve a few characters.
const maxFilenameBytes = 240

// InvalidFilename is returned by BuildValidFilename for names that are empty
// once trimmed.
const InvalidFilename = "(invalid)"

// BuildValidFilename mutates a name so it is valid on FAT filesystems, which
// are the most restrictive ones downloads may end up on. Invalid characters are
// replaced with '_' and the result is capped at 240 bytes.
func BuildValidFilename(name string) string {
	return truncateBytes(sanitizeFilename(name), maxFilenameBytes)
}

// BuildValidFilenameWithSuffix is BuildValidFilename(name + suffix), except
// that a name too long to fit is shortened in front of the suffix, so the
// suffix always survives.
func BuildValidFilenameWithSuffix(name, suffix string) string {
	full := sanitizeFilename(name + suffix)
	if len(full) <= maxFilenameBytes {
		return full
	}
	suffix = replaceInvalidChars(suffix)
	if len(suffix) >= maxFilenameBytes {
		return truncateBytes(full, maxFilenameBytes)
	}
	return truncateBytes(sanitizeFilename(name), maxFilenameBytes-len(suffix)) + suffix
}

func sanitizeFilename(name string) string {
	name = strings.Trim(name, ". ")
	if name == "" {
		return InvalidFilename
	}
	return replaceInvalidChars(name)
}

func replaceInvalidChars(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))
	for _, c := range name {
		if isValidFatFilenameChar(c) {
			sb.WriteRune(c)
		} else {
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

func isValidFatFilenameChar(c rune) bool {
	if c <= 0x1f {
		return false
	}
	switch c {
	case '"', '*', '/', ':', '<', '>', '?', '\\', '|', 0x7f:
		return false
	}
	return true
}

// truncateBytes cuts s to at most n bytes without splitting a rune.
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
