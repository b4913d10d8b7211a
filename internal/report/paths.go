package report

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/repoaudit/internal/audit"
)

const (
	homePrefixConstant                = "~"
	pathSegmentSeparatorConstant      = "/"
	truncatedSegmentSuffixConstant    = "..."
	truncatedSegmentRuneLimitConstant = 6
)

// displayPath formats a repository path for the requested display mode. Short
// mode contracts the home directory to ~ and truncates every segment longer
// than the rune limit to its six-rune prefix plus an ellipsis.
func displayPath(repositoryPath string, mode audit.PathDisplayMode, homeDirectory string) string {
	switch mode {
	case audit.PathDisplayNone:
		return ""
	case audit.PathDisplayFull:
		return repositoryPath
	case audit.PathDisplayRelative:
		return homeRelativePath(repositoryPath, homeDirectory)
	default:
		return shortPath(repositoryPath, homeDirectory)
	}
}

func homeRelativePath(repositoryPath string, homeDirectory string) string {
	if len(homeDirectory) == 0 {
		return repositoryPath
	}
	relative, relativeError := filepath.Rel(homeDirectory, repositoryPath)
	if relativeError != nil {
		return repositoryPath
	}
	return homePrefixConstant + pathSegmentSeparatorConstant + relative
}

func shortPath(repositoryPath string, homeDirectory string) string {
	contracted := contractHomeDirectory(repositoryPath, homeDirectory)

	segments := strings.Split(contracted, pathSegmentSeparatorConstant)
	for segmentIndex := range segments {
		segments[segmentIndex] = truncateSegment(segments[segmentIndex])
	}
	return strings.Join(segments, pathSegmentSeparatorConstant)
}

func contractHomeDirectory(repositoryPath string, homeDirectory string) string {
	trimmedHome := strings.TrimRight(homeDirectory, pathSegmentSeparatorConstant)
	if len(trimmedHome) == 0 {
		return repositoryPath
	}
	if repositoryPath == trimmedHome {
		return homePrefixConstant
	}
	if strings.HasPrefix(repositoryPath, trimmedHome+pathSegmentSeparatorConstant) {
		return homePrefixConstant + strings.TrimPrefix(repositoryPath, trimmedHome)
	}
	return repositoryPath
}

func truncateSegment(segment string) string {
	segmentRunes := []rune(segment)
	if len(segmentRunes) <= truncatedSegmentRuneLimitConstant {
		return segment
	}
	return string(segmentRunes[:truncatedSegmentRuneLimitConstant]) + truncatedSegmentSuffixConstant
}

func currentHomeDirectory() string {
	homeDirectory, homeError := os.UserHomeDir()
	if homeError != nil {
		return ""
	}
	return homeDirectory
}
