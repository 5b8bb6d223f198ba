package linguahub

// DiffResult represents the difference between two versions of a content
// entity, at fragment granularity.
type DiffResult struct {
	// Added contains fragments that are new in the current version.
	Added []Fragment

	// Removed contains fragments that no longer appear.
	Removed []Fragment

	// Unchanged contains fragments present in both versions.
	Unchanged []Fragment

	// Modified contains fragment pairs occupying the same document-order
	// position with different text, a heuristic for in-place edits.
	Modified []ModifiedFragment
}

// ModifiedFragment is a fragment whose text changed between versions.
type ModifiedFragment struct {
	Old Fragment
	New Fragment
}

// Stats returns summary statistics for the diff.
func (d *DiffResult) Stats() DiffStats {
	return DiffStats{
		Added:     len(d.Added),
		Removed:   len(d.Removed),
		Unchanged: len(d.Unchanged),
		Modified:  len(d.Modified),
	}
}

// DiffStats contains summary statistics for a diff.
type DiffStats struct {
	Added     int
	Removed   int
	Unchanged int
	Modified  int
}

// HasChanges returns true if there are any differences.
func (d *DiffResult) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Modified) > 0
}

// NeedsTranslation returns the fragments that need to be retranslated
// after an edit: new fragments plus the new side of modified ones.
func (d *DiffResult) NeedsTranslation() []Fragment {
	result := make([]Fragment, 0, len(d.Added)+len(d.Modified))
	result = append(result, d.Added...)
	for _, m := range d.Modified {
		result = append(result, m.New)
	}
	return result
}

// DiffFragments compares the fragments of two content versions. An edited
// post invalidates its cached translation; the diff tells the host which
// fragments actually changed so unchanged text can reuse prior work.
func DiffFragments(oldFragments, newFragments []Fragment) *DiffResult {
	result := &DiffResult{}

	oldByHash := make(map[string]Fragment)
	newByHash := make(map[string]Fragment)

	for _, f := range oldFragments {
		oldByHash[HashText(f.Text)] = f
	}
	for _, f := range newFragments {
		newByHash[HashText(f.Text)] = f
	}

	for hash, oldFrag := range oldByHash {
		if _, exists := newByHash[hash]; exists {
			result.Unchanged = append(result.Unchanged, oldFrag)
		} else {
			result.Removed = append(result.Removed, oldFrag)
		}
	}

	for hash, newFrag := range newByHash {
		if _, exists := oldByHash[hash]; !exists {
			result.Added = append(result.Added, newFrag)
		}
	}

	// Pair removed and added fragments at the same document-order position
	// as in-place modifications.
	if len(result.Added) > 0 && len(result.Removed) > 0 {
		matched := make(map[int]bool)
		removedMatched := make(map[int]bool)

		for ri, removed := range result.Removed {
			for ai, added := range result.Added {
				if matched[ai] {
					continue
				}
				if removed.Index == added.Index {
					result.Modified = append(result.Modified, ModifiedFragment{
						Old: removed,
						New: added,
					})
					matched[ai] = true
					removedMatched[ri] = true
					break
				}
			}
		}

		var added []Fragment
		for i, f := range result.Added {
			if !matched[i] {
				added = append(added, f)
			}
		}
		result.Added = added

		var removed []Fragment
		for i, f := range result.Removed {
			if !removedMatched[i] {
				removed = append(removed, f)
			}
		}
		result.Removed = removed
	}

	return result
}
