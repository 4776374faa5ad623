package textutil

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	// overridePattern matches SSA/ASS override blocks such as {\an8} or {\i1}.
	overridePattern = regexp.MustCompile(`\{[^}]*\}`)
	// tagPattern matches HTML-style tags such as <i> or <font color="...">.
	tagPattern = regexp.MustCompile(`<[^>]*>`)
)

// lineBreakReplacer drops hard and soft line breaks in every notation
// subtitle formats use.
var lineBreakReplacer = strings.NewReplacer(
	`\N`, "",
	`\n`, "",
	`\h`, " ",
	"\r\n", "",
	"\r", "",
	"\n", "",
)

// Strip removes markup and line breaks from subtitle text and returns the
// significant characters in NFC form. Line breaks are not counted as
// characters, so "Hello\nthere" strips to "Hellothere".
func Strip(text string) string {
	if text == "" {
		return ""
	}
	text = overridePattern.ReplaceAllString(text, "")
	text = tagPattern.ReplaceAllString(text, "")
	text = lineBreakReplacer.Replace(text)
	return strings.TrimSpace(norm.NFC.String(text))
}

// StripLines strips each line and joins them, matching Strip on the joined text.
func StripLines(lines []string) string {
	return Strip(strings.Join(lines, "\n"))
}

// CharCount returns the number of code points in text.
func CharCount(text string) int {
	return utf8.RuneCountInString(text)
}
