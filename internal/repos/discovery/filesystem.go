package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

const (
	gitMetadataDirectoryNameConstant   = ".git"
	missingRootWarningTemplateConstant = "directory not found, skipping: %s"
)

// RepositoryRecord identifies a discovered repository by name and location.
type RepositoryRecord struct {
	Name string
	Path string
}

// FilesystemRepositoryDiscoverer locates git repositories on disk.
type FilesystemRepositoryDiscoverer struct{}

// NewFilesystemRepositoryDiscoverer constructs a repository discoverer backed by filepath.WalkDir.
func NewFilesystemRepositoryDiscoverer() *FilesystemRepositoryDiscoverer {
	return &FilesystemRepositoryDiscoverer{}
}

// DiscoverRepositories walks the provided roots and returns one record per
// directory containing a .git entry, never descending into matched
// repositories. Roots that do not exist produce warnings instead of errors so
// a single bad root cannot abort the run.
func (discoverer *FilesystemRepositoryDiscoverer) DiscoverRepositories(roots []string) ([]RepositoryRecord, []string, error) {
	seen := make(map[string]struct{})
	var repositories []RepositoryRecord
	var warnings []string

	for _, root := range roots {
		rootInfo, statError := os.Stat(root)
		if statError != nil || !rootInfo.IsDir() {
			warnings = append(warnings, fmt.Sprintf(missingRootWarningTemplateConstant, root))
			continue
		}

		walkError := filepath.WalkDir(root, func(path string, directoryEntry fs.DirEntry, walkError error) error {
			if walkError != nil {
				return nil
			}

			if !directoryEntry.IsDir() {
				return nil
			}
			if directoryEntry.Name() == gitMetadataDirectoryNameConstant {
				return fs.SkipDir
			}

			// The .git entry may be a directory or a worktree file; either
			// marks the directory itself as a repository, and nothing below
			// it is walked.
			if _, metadataError := os.Stat(filepath.Join(path, gitMetadataDirectoryNameConstant)); metadataError != nil {
				return nil
			}

			if _, alreadySeen := seen[path]; !alreadySeen {
				seen[path] = struct{}{}
				repositories = append(repositories, RepositoryRecord{
					Name: filepath.Base(path),
					Path: path,
				})
			}
			return fs.SkipDir
		})
		if walkError != nil {
			return nil, warnings, walkError
		}
	}

	sort.Slice(repositories, func(first int, second int) bool {
		return repositories[first].Path < repositories[second].Path
	})
	return repositories, warnings, nil
}
