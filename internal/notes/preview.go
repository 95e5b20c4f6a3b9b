package notes

import (
	"regexp"
	"strings"
)

var flowNamePattern = regexp.MustCompile(`(?i)FLOW:\s*([^\n\r]+)`)

// FlowName is the short label of a pasted flow: the text after
// "FLOW:" when present, else the first line cut to 50 characters.
func FlowName(flow string) string {
	if m := flowNamePattern.FindStringSubmatch(flow); m != nil {
		if name := strings.TrimSpace(m[1]); name != "" {
			return name
		}
	}
	first := strings.TrimSpace(strings.SplitN(flow, "\n", 2)[0])
	return Truncate(first, 50)
}

// SummaryPreview is the short label of an agent-assist summary.
func SummaryPreview(summary string) string {
	return Truncate(summary, 30)
}

// Truncate cuts s to max characters and appends "..." when it had to.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
