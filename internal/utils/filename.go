package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// Characters rejected by common filesystems
	reservedChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	runsOfSpace   = regexp.MustCompile(`\s+`)
)

const maxFilenameLen = 200

// SanitizeFilename turns a book title into a safe file name stem.
// Markdown link syntax is neutralised: '#' is dropped and square brackets
// become parentheses. Empty results fall back to "Untitled".
func SanitizeFilename(name string) string {
	name = runsOfSpace.ReplaceAllString(name, " ")
	name = reservedChars.ReplaceAllString(name, "")
	name = strings.ReplaceAll(name, "#", "")
	name = strings.NewReplacer("[", "(", "]", ")").Replace(name)
	name = runsOfSpace.ReplaceAllString(name, " ")
	name = strings.Trim(name, " .")

	if len(name) > maxFilenameLen {
		name = strings.TrimSpace(truncateUTF8(name, maxFilenameLen))
	}
	if name == "" {
		return "Untitled"
	}
	return name
}

// UniqueFilename returns stem+ext, or "stem (n)"+ext for the first n >= 2
// not yet in taken. The chosen name is added to taken.
func UniqueFilename(stem, ext string, taken map[string]bool) string {
	name := stem + ext
	for n := 2; taken[strings.ToLower(name)]; n++ {
		name = fmt.Sprintf("%s (%d)%s", stem, n, ext)
	}
	taken[strings.ToLower(name)] = true
	return name
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !isRuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
