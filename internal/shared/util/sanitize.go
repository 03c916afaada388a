package util

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode"
)

// SanitizeFileName removes path separators and rejects traversal patterns.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}

// FileExt returns the lower-cased extension of an uploaded file name.
func FileExt(name string) string {
	return strings.ToLower(filepath.Ext(strings.TrimSpace(name)))
}

// AttachmentName keeps letters, digits, space, dot, dash and underscore and
// replaces every other rune with an underscore.
func AttachmentName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return r
		case r == ' ', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, strings.TrimSpace(name))
}
