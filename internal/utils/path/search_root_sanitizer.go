package pathutils

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SearchRootSanitizer normalizes search root inputs consistently across commands.
type SearchRootSanitizer struct {
	homeExpander *HomeExpander
	pruneNested  bool
}

// NewSearchRootSanitizer constructs a sanitizer that expands home shortcuts
// and removes roots nested inside other provided roots.
func NewSearchRootSanitizer() *SearchRootSanitizer {
	return NewSearchRootSanitizerWithExpander(nil, true)
}

// NewSearchRootSanitizerWithExpander constructs a sanitizer using the provided expander.
func NewSearchRootSanitizerWithExpander(homeExpander *HomeExpander, pruneNested bool) *SearchRootSanitizer {
	resolvedExpander := homeExpander
	if resolvedExpander == nil {
		resolvedExpander = NewHomeExpander()
	}
	return &SearchRootSanitizer{homeExpander: resolvedExpander, pruneNested: pruneNested}
}

// Sanitize trims whitespace, expands the user's home directory, and drops
// blank or redundant roots while preserving the original ordering.
func (sanitizer *SearchRootSanitizer) Sanitize(candidateRoots []string) []string {
	if sanitizer == nil {
		return NewSearchRootSanitizer().Sanitize(candidateRoots)
	}

	sanitizedRoots := make([]string, 0, len(candidateRoots))
	for candidateIndex := range candidateRoots {
		trimmedCandidate := strings.TrimSpace(candidateRoots[candidateIndex])
		if len(trimmedCandidate) == 0 {
			continue
		}
		sanitizedRoots = append(sanitizedRoots, sanitizer.homeExpander.Expand(trimmedCandidate))
	}

	if len(sanitizedRoots) == 0 {
		return nil
	}
	if sanitizer.pruneNested {
		return pruneNestedRoots(sanitizedRoots)
	}
	return sanitizedRoots
}

// pruneNestedRoots removes roots covered by a shorter root earlier in the
// canonical ordering, so overlapping inputs do not trigger duplicate walks.
func pruneNestedRoots(candidateRoots []string) []string {
	type rootDetails struct {
		originalIndex int
		value         string
		canonical     string
	}

	details := make([]rootDetails, 0, len(candidateRoots))
	for index := range candidateRoots {
		details = append(details, rootDetails{
			originalIndex: index,
			value:         candidateRoots[index],
			canonical:     canonicalizeRoot(candidateRoots[index]),
		})
	}

	sort.SliceStable(details, func(first int, second int) bool {
		if len(details[first].canonical) == len(details[second].canonical) {
			return details[first].canonical < details[second].canonical
		}
		return len(details[first].canonical) < len(details[second].canonical)
	})

	selected := make([]rootDetails, 0, len(details))
	for _, candidate := range details {
		covered := false
		for _, existing := range selected {
			if isNestedRoot(existing.canonical, candidate.canonical) {
				covered = true
				break
			}
		}
		if !covered {
			selected = append(selected, candidate)
		}
	}

	sort.SliceStable(selected, func(first int, second int) bool {
		return selected[first].originalIndex < selected[second].originalIndex
	})

	pruned := make([]string, 0, len(selected))
	for _, candidate := range selected {
		pruned = append(pruned, candidate.value)
	}
	return pruned
}

func canonicalizeRoot(root string) string {
	cleanedRoot := filepath.Clean(root)
	absoluteRoot, absoluteError := filepath.Abs(cleanedRoot)
	if absoluteError != nil {
		return cleanedRoot
	}
	return filepath.Clean(absoluteRoot)
}

func isNestedRoot(parent string, candidate string) bool {
	if candidate == parent {
		return true
	}
	if len(candidate) <= len(parent) {
		return false
	}
	if !strings.HasPrefix(candidate, parent) {
		return false
	}
	if parent[len(parent)-1] == os.PathSeparator {
		return true
	}
	return candidate[len(parent)] == os.PathSeparator
}
