package scan

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	branchHeaderPrefixConstant  = "## "
	branchUpstreamSeparator     = "..."
	unbornBranchMarkerConstant  = "No commits yet on"
	untrackedLinePrefixConstant = "??"
	statusColumnSpaceConstant   = byte(' ')
)

var (
	aheadAnnotationExpression  = regexp.MustCompile(`\[.*ahead (\d+)`)
	behindAnnotationExpression = regexp.MustCompile(`\[.*behind (\d+)`)
)

// parsePorcelainStatus derives a RepositoryState from git status
// --porcelain=v1 -b output. The first line carries the branch header; every
// following line describes one pathname in XY notation.
func parsePorcelainStatus(porcelainOutput string) RepositoryState {
	lines := strings.Split(strings.TrimSpace(porcelainOutput), "\n")

	state := RepositoryState{Branch: parseBranchHeader(lines[0])}
	state.AheadCount = matchedAnnotationCount(aheadAnnotationExpression, lines[0])
	state.BehindCount = matchedAnnotationCount(behindAnnotationExpression, lines[0])

	for _, statusLine := range lines[1:] {
		if len(statusLine) < 2 {
			continue
		}
		if strings.HasPrefix(statusLine, untrackedLinePrefixConstant) {
			state.UntrackedCount++
			continue
		}
		if statusLine[0] != statusColumnSpaceConstant {
			state.StagedCount++
		}
		if statusLine[1] != statusColumnSpaceConstant {
			state.UnstagedCount++
		}
	}

	return state
}

// parseBranchHeader extracts the branch name, keeping the full unborn-branch
// phrase when the repository has no commits yet.
func parseBranchHeader(branchHeaderLine string) string {
	branchName := strings.TrimPrefix(branchHeaderLine, branchHeaderPrefixConstant)
	if strings.Contains(branchName, unbornBranchMarkerConstant) {
		return strings.TrimSpace(branchName)
	}
	if separatorIndex := strings.Index(branchName, branchUpstreamSeparator); separatorIndex >= 0 {
		branchName = branchName[:separatorIndex]
	}
	return strings.TrimSpace(branchName)
}

func matchedAnnotationCount(expression *regexp.Regexp, branchHeaderLine string) int {
	matches := expression.FindStringSubmatch(branchHeaderLine)
	if len(matches) != 2 {
		return 0
	}
	count, parseError := strconv.Atoi(matches[1])
	if parseError != nil {
		return 0
	}
	return count
}
