package audit

import "time"

// LocationType classifies where a repository's origin remote is hosted.
type LocationType string

// Location values reported for repositories.
const (
	LocationGitHub      LocationType = "GitHub"
	LocationAzureDevOps LocationType = "Azure DevOps"
	LocationOther       LocationType = "Other"
	LocationUnknown     LocationType = "Unknown"
)

// GroupStatus marks a repository's standing within its name group.
type GroupStatus string

// Group status values assigned during aggregation.
const (
	GroupStatusNone   GroupStatus = ""
	GroupStatusLatest GroupStatus = "latest"
	GroupStatusStale  GroupStatus = "stale"
)

// PathDisplayMode selects how repository paths appear in reports.
type PathDisplayMode string

// Supported path display modes.
const (
	PathDisplayShort    PathDisplayMode = "short"
	PathDisplayFull     PathDisplayMode = "full"
	PathDisplayRelative PathDisplayMode = "relative"
	PathDisplayNone     PathDisplayMode = "none"
)

// CommitDateMode selects whether and how last commit times appear in reports.
type CommitDateMode string

// Supported commit date modes.
const (
	CommitDateHidden   CommitDateMode = "hidden"
	CommitDateDateOnly CommitDateMode = "date"
	CommitDateDateTime CommitDateMode = "datetime"
)

// RepositoryStatus captures everything the audit report shows for one repository.
type RepositoryStatus struct {
	Name            string
	Path            string
	Location        LocationType
	RemoteURL       string
	AheadCount      int
	BehindCount     int
	HasLocalChanges bool
	LastCommitTime  time.Time
	GroupStatus     GroupStatus
}

// RenderOptions carries presentation choices into report renderers.
type RenderOptions struct {
	PathDisplayMode PathDisplayMode
	CommitDateMode  CommitDateMode
}

// CommandOptions captures the configurable parameters for the audit command.
type CommandOptions struct {
	Roots               []string
	Detailed            bool
	HTMLOutput          bool
	PathDisplayMode     PathDisplayMode
	CommitDateMode      CommitDateMode
	CompareRepositories []string
	DebugOutput         bool
	Clock               Clock
}

// Clock abstracts time-dependent functionality for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the standard library.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
