// Package messages renders bilingual (Arabic/Bengali) notification text
// for farm tasks, in Telegram MarkdownV2 and as a JSON feed document.
package messages

import (
	"regexp"
	"strings"
)

// markdownV2Special lists the characters Telegram requires escaping in
// MarkdownV2 text.
var markdownV2Special = []string{
	"_", "*", "[", "]", "(", ")", "~", "`", ">", "#",
	"+", "-", "=", "|", "{", "}", ".", "!",
}

// EscapeMarkdownV2 escapes MarkdownV2 special characters in text.
func EscapeMarkdownV2(text string) string {
	for _, c := range markdownV2Special {
		text = strings.ReplaceAll(text, c, "\\"+c)
	}
	return text
}

var (
	filenameSpaces = regexp.MustCompile(`[()\s]+`)
	filenameUnsafe = regexp.MustCompile(`[^a-z0-9_+-]`)
)

// SafeFilename converts a product name into a safe image file name stem
// (lowercase, underscores, no punctuation).
func SafeFilename(name string) string {
	name = strings.ToLower(name)
	name = filenameSpaces.ReplaceAllString(name, "_")
	return filenameUnsafe.ReplaceAllString(name, "")
}
