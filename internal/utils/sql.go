package utils

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// SquishSQL collapses every run of whitespace into a single space and trims
// the result. Multi-line statement templates go through it before execution.
func SquishSQL(sql string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(sql), " ")
}

// StatementVerb returns the leading keywords of a statement, e.g.
// "ALTER TABLE" or "SELECT", for use as a metrics label
func StatementVerb(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "UNKNOWN"
	}

	verb := strings.ToUpper(fields[0])
	switch verb {
	case "CREATE", "DROP", "ALTER", "RECREATE":
		if len(fields) > 1 {
			next := strings.ToUpper(fields[1])
			if next == "UNIQUE" && len(fields) > 2 {
				next = strings.ToUpper(fields[2])
			}
			return verb + " " + next
		}
	}
	return verb
}
