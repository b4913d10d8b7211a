package audit

// ApplyGroupStatuses tags repositories that share a group key. Groups with a
// single member stay untagged. Within larger groups the timestamped member
// holding the newest commit becomes latest and every other member becomes
// stale; when timestamps tie the lexicographically smallest (name, path) pair
// wins. A member without a commit timestamp can never be latest, and a group
// where no member carries a timestamp stays untagged entirely.
func ApplyGroupStatuses(statuses []RepositoryStatus) {
	groupedIndexes := make(map[string][]int)
	for statusIndex := range statuses {
		groupKey := groupKeyForName(statuses[statusIndex].Name)
		groupedIndexes[groupKey] = append(groupedIndexes[groupKey], statusIndex)
	}

	for _, memberIndexes := range groupedIndexes {
		if len(memberIndexes) < 2 {
			continue
		}

		latestIndex := -1
		for _, memberIndex := range memberIndexes {
			if statuses[memberIndex].LastCommitTime.IsZero() {
				continue
			}
			if latestIndex < 0 || isNewerGroupMember(statuses[memberIndex], statuses[latestIndex]) {
				latestIndex = memberIndex
			}
		}
		if latestIndex < 0 {
			continue
		}

		for _, memberIndex := range memberIndexes {
			if memberIndex == latestIndex {
				statuses[memberIndex].GroupStatus = GroupStatusLatest
			} else {
				statuses[memberIndex].GroupStatus = GroupStatusStale
			}
		}
	}
}

func isNewerGroupMember(candidate RepositoryStatus, current RepositoryStatus) bool {
	if candidate.LastCommitTime.After(current.LastCommitTime) {
		return true
	}
	if current.LastCommitTime.After(candidate.LastCommitTime) {
		return false
	}
	if candidate.Name != current.Name {
		return candidate.Name < current.Name
	}
	return candidate.Path < current.Path
}
