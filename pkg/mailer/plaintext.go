package mailer

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	answerDirective = regexp.MustCompile(`\[!answer\|(?:\\.|[^\]\\])*\]`)
	buttonDirective = regexp.MustCompile(`\[!button\|((?:\\.|[^\]\\])*)\]\(([^)]*)\)`)
	emphasis        = regexp.MustCompile(`(^|[^\\])[*_]+`)
	escaped         = regexp.MustCompile("\\\\([\\\\`*_\\[\\]<>!~&])")
	blankRuns       = regexp.MustCompile(`\n{3,}`)
	placeholder     = regexp.MustCompile(`\x00([0-9]+)\x00`)
)

// plainText turns an executed markdown template into the text/plain part.
// Answers are dropped since text clients cannot hide them, buttons become
// "Label: url", emphasis markers and EscapeMarkdown escapes are removed.
func plainText(markdown string) string {
	s := answerDirective.ReplaceAllString(markdown, "")

	// URLs are set aside so their underscores survive emphasis removal.
	var links []string
	s = buttonDirective.ReplaceAllStringFunc(s, func(m string) string {
		sub := buttonDirective.FindStringSubmatch(m)
		links = append(links, escaped.ReplaceAllString(sub[1], "$1")+": "+sub[2])
		return "\x00" + strconv.Itoa(len(links)-1) + "\x00"
	})

	s = emphasis.ReplaceAllString(s, "$1")
	s = escaped.ReplaceAllString(s, "$1")
	s = placeholder.ReplaceAllStringFunc(s, func(m string) string {
		i, _ := strconv.Atoi(strings.Trim(m, "\x00"))
		return links[i]
	})
	s = blankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimLeft(s, "\n")
}
