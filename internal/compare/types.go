package compare

// SideStats totals the line changes one repository accumulated since the common ancestor.
type SideStats struct {
	Insertions int
	Deletions  int
}

// TotalChanged returns the combined insertion and deletion count.
func (stats SideStats) TotalChanged() int {
	return stats.Insertions + stats.Deletions
}

// DivergenceResult captures the outcome of comparing two repositories.
type DivergenceResult struct {
	FirstRepositoryPath  string
	SecondRepositoryPath string
	AncestorSummary      string
	FirstStats           SideStats
	SecondStats          SideStats
}
