package compare

import (
	"regexp"
	"strconv"
)

var (
	insertionCountExpression = regexp.MustCompile(`(\d+) insertion`)
	deletionCountExpression  = regexp.MustCompile(`(\d+) deletion`)
)

// parseShortstat extracts insertion and deletion counts from git diff
// --shortstat output. Blank output, produced when a side has no changes,
// yields zero counts.
func parseShortstat(shortstatOutput string) SideStats {
	return SideStats{
		Insertions: matchedCount(insertionCountExpression, shortstatOutput),
		Deletions:  matchedCount(deletionCountExpression, shortstatOutput),
	}
}

func matchedCount(expression *regexp.Regexp, output string) int {
	matches := expression.FindStringSubmatch(output)
	if len(matches) != 2 {
		return 0
	}
	count, parseError := strconv.Atoi(matches[1])
	if parseError != nil {
		return 0
	}
	return count
}
