package helper

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

// PersonName derives an applicant's display name from an uploaded file
// name: extension stripped, surrounding whitespace trimmed.
func PersonName(filename string) string {
	base := filepath.Base(filename)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimSpace(name)
}

// CleanText collapses whitespace runs and strips common PDF artifacts.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = strings.Join(strings.Fields(text), " ")
	text = strings.ReplaceAll(text, "\x00", "")
	text = strings.ReplaceAll(text, "�", "")
	return strings.TrimSpace(text)
}

// TruncateText shortens text to at most maxLen bytes, cutting at the
// last word boundary and appending an ellipsis. The cut never splits a
// multi-byte rune.
func TruncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	for maxLen > 0 && !utf8.RuneStart(text[maxLen]) {
		maxLen--
	}
	cut := text[:maxLen]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}

// FormatApplicantList renders names for display: "A", "A and B", or
// "A, B, and C".
func FormatApplicantList(names []string) string {
	switch len(names) {
	case 0:
		return "No applicants"
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}

// PrettyPrint dumps a value as indented JSON to stdout.
func PrettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Warn().Msg("Error pretty printing")
	}
	fmt.Println(string(b))
}
