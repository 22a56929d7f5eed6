package console

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Input limits for operator-typed text.
const (
	MaxMessageLength  = 4096
	MaxQuestionLength = 1024
	MaxAnswerLength   = 4096
)

// sanitizeInput removes null bytes, control characters and invalid UTF-8
// from operator input before it reaches a usecase.
func sanitizeInput(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")

	if !utf8.ValidString(s) {
		v := make([]rune, 0, len(s))
		for _, r := range s {
			if r != utf8.RuneError {
				v = append(v, r)
			}
		}
		s = string(v)
	}

	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// truncateInput caps a string at maxLen bytes without splitting a rune.
func truncateInput(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	for maxLen > 0 && !utf8.RuneStart(s[maxLen]) {
		maxLen--
	}
	return s[:maxLen]
}
