package lint

import (
	"strconv"
	"strings"

	"github.com/lintgate/lintgate/internal/report"
)

// ParseIssues extracts findings from lint tool output in the common
// "file:line:col: message" line format emitted by flake8, ruff,
// golangci-lint, staticcheck and similar tools. Lines that do not match
// are ignored; parsing never affects the run's verdict.
func ParseIssues(data []byte) []report.Issue {
	var issues []report.Issue

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if is, ok := parseIssueLine(line); ok {
			issues = append(issues, is)
		}
	}

	return issues
}

// parseIssueLine parses "file:line[:col]: message" into an Issue.
func parseIssueLine(line string) (report.Issue, bool) {
	parts := strings.SplitN(line, ":", 4)
	if len(parts) < 3 {
		return report.Issue{}, false
	}

	file := parts[0]
	if file == "" {
		return report.Issue{}, false
	}

	row, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || row <= 0 {
		return report.Issue{}, false
	}

	is := report.Issue{File: file, Line: row}

	// Third segment is either a column followed by the message in the
	// fourth, or the message itself.
	if len(parts) == 4 {
		if col, err := strconv.Atoi(strings.TrimSpace(parts[2])); err == nil && col > 0 {
			is.Col = col
			is.Message = strings.TrimSpace(parts[3])
		} else {
			is.Message = strings.TrimSpace(parts[2] + ":" + parts[3])
		}
	} else {
		is.Message = strings.TrimSpace(parts[2])
	}

	if is.Message == "" {
		return report.Issue{}, false
	}

	is.Code, is.Message = splitCode(is.Message)
	return is, true
}

// splitCode peels a leading rule code (e.g. "E501", "F401", "SA1019")
// off the message when present.
func splitCode(msg string) (string, string) {
	code, rest, ok := strings.Cut(msg, " ")
	if !ok || !looksLikeCode(code) {
		return "", msg
	}
	return code, strings.TrimSpace(rest)
}

// looksLikeCode reports whether s is an uppercase-letters-then-digits
// rule identifier.
func looksLikeCode(s string) bool {
	if len(s) < 2 {
		return false
	}
	i := 0
	for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(s) {
		return false
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
