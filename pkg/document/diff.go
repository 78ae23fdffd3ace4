package document

import (
	"fmt"
	"sort"
	"strings"
)

// ChangeKind classifies a single entry in a ChangeSet.
type ChangeKind string

const (
	// KindAdded marks a path present only in the local document.
	KindAdded ChangeKind = "added"
	// KindRemoved marks a path present only in the remote document.
	KindRemoved ChangeKind = "removed"
	// KindChanged marks a path whose value differs between the two documents.
	KindChanged ChangeKind = "changed"
)

// Change describes a single difference at a document path such as
// "states[2].actions[0].rollover.min_size".
type Change struct {
	Path string
	Kind ChangeKind
	Old  any
	New  any
}

// ChangeSet is the result of comparing two documents. An empty set means the
// documents are semantically equal.
type ChangeSet struct {
	Changes []Change
}

// HasChanges reports whether the comparison found any difference.
func (cs ChangeSet) HasChanges() bool {
	return len(cs.Changes) > 0
}

// String renders the change set as a human-readable, line-per-change summary.
func (cs ChangeSet) String() string {
	if !cs.HasChanges() {
		return "no changes"
	}
	var b strings.Builder
	for _, c := range cs.Changes {
		switch c.Kind {
		case KindAdded:
			fmt.Fprintf(&b, "+ %s: %v\n", c.Path, c.New)
		case KindRemoved:
			fmt.Fprintf(&b, "- %s: %v\n", c.Path, c.Old)
		default:
			fmt.Fprintf(&b, "~ %s: %v -> %v\n", c.Path, c.Old, c.New)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Compare performs a deep, order-insensitive structural comparison between a
// remote document and a local document. Both inputs must already be
// normalized; Compare does no metadata stripping of its own. Mapping key
// order and sequence element order are irrelevant: a permuted sequence is not
// a change. Added entries are those present only locally, removed entries
// those present only remotely.
func Compare(remote, local Document) ChangeSet {
	var cs ChangeSet
	diffMaps("", remote, local, &cs)
	return cs
}

func diffValues(path string, old, new any, cs *ChangeSet) {
	switch ov := old.(type) {
	case map[string]any:
		if nv, ok := new.(map[string]any); ok {
			diffMaps(path, ov, nv, cs)
			return
		}
	case []any:
		if nv, ok := new.([]any); ok {
			diffSlices(path, ov, nv, cs)
			return
		}
	}
	if !scalarEqual(old, new) {
		cs.Changes = append(cs.Changes, Change{Path: path, Kind: KindChanged, Old: old, New: new})
	}
}

func diffMaps(path string, old, new map[string]any, cs *ChangeSet) {
	keys := make([]string, 0, len(old)+len(new))
	seen := make(map[string]bool, len(old)+len(new))
	for k := range old {
		keys = append(keys, k)
		seen[k] = true
	}
	for k := range new {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		child := joinPath(path, k)
		oldVal, inOld := old[k]
		newVal, inNew := new[k]
		switch {
		case inOld && !inNew:
			cs.Changes = append(cs.Changes, Change{Path: child, Kind: KindRemoved, Old: oldVal})
		case !inOld && inNew:
			cs.Changes = append(cs.Changes, Change{Path: child, Kind: KindAdded, New: newVal})
		default:
			diffValues(child, oldVal, newVal, cs)
		}
	}
}

// diffSlices compares sequences order-insensitively. Elements that match any
// element on the other side are discarded; the leftovers are paired in order
// and recursed into so that a single modified element reports the scalar path
// that changed rather than the whole sequence.
func diffSlices(path string, old, new []any, cs *ChangeSet) {
	usedNew := make([]bool, len(new))
	var leftOld []int
	for i, item := range old {
		matched := false
		for j, other := range new {
			if usedNew[j] {
				continue
			}
			if Equal(item, other) {
				usedNew[j] = true
				matched = true
				break
			}
		}
		if !matched {
			leftOld = append(leftOld, i)
		}
	}
	var leftNew []int
	for j := range new {
		if !usedNew[j] {
			leftNew = append(leftNew, j)
		}
	}

	n := len(leftOld)
	if len(leftNew) < n {
		n = len(leftNew)
	}
	for i := 0; i < n; i++ {
		diffValues(fmt.Sprintf("%s[%d]", path, leftOld[i]), old[leftOld[i]], new[leftNew[i]], cs)
	}
	for _, i := range leftOld[n:] {
		cs.Changes = append(cs.Changes, Change{
			Path: fmt.Sprintf("%s[%d]", path, i),
			Kind: KindRemoved,
			Old:  old[i],
		})
	}
	for _, j := range leftNew[n:] {
		cs.Changes = append(cs.Changes, Change{
			Path: fmt.Sprintf("%s[%d]", path, j),
			Kind: KindAdded,
			New:  new[j],
		})
	}
}

func joinPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}
