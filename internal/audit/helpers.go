package audit

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/temirov/repoaudit/internal/gitrepo"
)

const (
	githubHostFragmentConstant       = "github.com"
	azureDevOpsHostFragmentConstant  = "dev.azure.com"
	visualStudioHostFragmentConstant = "visualstudio.com"
	azurePathHintFragmentConstant    = "devops"
	githubPathHintFragmentConstant   = "github"
	originRemoteNameConstant         = "origin"
	activeBranchMarkerConstant       = "*"
	groupKeySegmentSeparatorConstant = "-"
	groupKeySegmentCountConstant     = 4
)

var (
	aheadCountExpression  = regexp.MustCompile(`ahead (\d+)`)
	behindCountExpression = regexp.MustCompile(`behind (\d+)`)
)

// classifyLocation maps the origin fetch URL to a hosting location. When the
// URL matches no known host the repository path is consulted for naming hints
// before settling on LocationOther. A failed remote listing never reaches
// this parser; the caller reports LocationUnknown for it directly.
func classifyLocation(originFetchURL string, repositoryPath string) LocationType {
	loweredURL := strings.ToLower(strings.TrimSpace(originFetchURL))
	switch {
	case strings.Contains(loweredURL, githubHostFragmentConstant):
		return LocationGitHub
	case strings.Contains(loweredURL, azureDevOpsHostFragmentConstant), strings.Contains(loweredURL, visualStudioHostFragmentConstant):
		return LocationAzureDevOps
	}

	loweredPath := strings.ToLower(repositoryPath)
	switch {
	case strings.Contains(loweredPath, azurePathHintFragmentConstant):
		return LocationAzureDevOps
	case strings.Contains(loweredPath, githubPathHintFragmentConstant):
		return LocationGitHub
	default:
		return LocationOther
	}
}

// originFetchURL selects the fetch URL of the origin remote from remote listings.
func originFetchURL(remoteListings []gitrepo.RemoteListing) string {
	for _, remoteListing := range remoteListings {
		if remoteListing.Name == originRemoteNameConstant && remoteListing.Direction == gitrepo.RemoteDirectionFetch {
			return remoteListing.URL
		}
	}
	return ""
}

// parseAheadBehindCounts extracts the ahead and behind counts for the active
// branch from git branch -vv output. Branches without upstream tracking, and
// output without an active branch line, yield zero counts.
func parseAheadBehindCounts(branchTrackingOutput string) (int, int) {
	for _, outputLine := range strings.Split(branchTrackingOutput, "\n") {
		if !strings.HasPrefix(outputLine, activeBranchMarkerConstant) {
			continue
		}
		return matchedCount(aheadCountExpression, outputLine), matchedCount(behindCountExpression, outputLine)
	}
	return 0, 0
}

func matchedCount(expression *regexp.Regexp, line string) int {
	matches := expression.FindStringSubmatch(line)
	if len(matches) != 2 {
		return 0
	}
	count, parseError := strconv.Atoi(matches[1])
	if parseError != nil {
		return 0
	}
	return count
}

// parseCommitTimestamp converts a strict ISO 8601 committer date into a time
// value, yielding the zero time for blank or malformed input.
func parseCommitTimestamp(rawTimestamp string) time.Time {
	trimmedTimestamp := strings.TrimSpace(rawTimestamp)
	if len(trimmedTimestamp) == 0 {
		return time.Time{}
	}
	parsedTimestamp, parseError := time.Parse(time.RFC3339, trimmedTimestamp)
	if parseError != nil {
		return time.Time{}
	}
	return parsedTimestamp
}

// groupKeyForName derives the comparison key used to cluster related
// repository checkouts: the first four hyphen separated name segments,
// case folded.
func groupKeyForName(repositoryName string) string {
	segments := strings.Split(repositoryName, groupKeySegmentSeparatorConstant)
	if len(segments) > groupKeySegmentCountConstant {
		segments = segments[:groupKeySegmentCountConstant]
	}
	return strings.ToLower(strings.Join(segments, groupKeySegmentSeparatorConstant))
}
