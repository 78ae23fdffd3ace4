package document

import (
	"strings"
	"testing"
)

func TestCompareIdentical(t *testing.T) {
	doc := Document{
		"description": "hot-warm-delete",
		"default_state": "hot",
		"states": []any{
			map[string]any{"name": "hot", "actions": []any{map[string]any{"rollover": map[string]any{"min_size": "30gb"}}}},
			map[string]any{"name": "delete", "actions": []any{map[string]any{"delete": map[string]any{}}}},
		},
	}
	cs := Compare(doc, Copy(doc))
	if cs.HasChanges() {
		t.Errorf("identical documents reported changes: %v", cs.Changes)
	}
}

func TestComparePermutedSequence(t *testing.T) {
	remote := Document{
		"states": []any{
			map[string]any{"name": "hot"},
			map[string]any{"name": "warm"},
			map[string]any{"name": "delete"},
		},
	}
	local := Document{
		"states": []any{
			map[string]any{"name": "delete"},
			map[string]any{"name": "hot"},
			map[string]any{"name": "warm"},
		},
	}
	cs := Compare(remote, local)
	if cs.HasChanges() {
		t.Errorf("permuted sequence reported changes: %v", cs.Changes)
	}
}

func TestCompareScalarChangeNamesPath(t *testing.T) {
	remote := Document{
		"states": []any{
			map[string]any{"name": "hot", "min_size": "30gb"},
		},
	}
	local := Document{
		"states": []any{
			map[string]any{"name": "hot", "min_size": "50gb"},
		},
	}
	cs := Compare(remote, local)
	if !cs.HasChanges() {
		t.Fatal("scalar change not detected")
	}
	if len(cs.Changes) != 1 {
		t.Fatalf("expected 1 change, got %d: %v", len(cs.Changes), cs.Changes)
	}
	c := cs.Changes[0]
	if c.Kind != KindChanged {
		t.Errorf("expected kind changed, got %s", c.Kind)
	}
	if !strings.Contains(c.Path, "min_size") {
		t.Errorf("change path %q does not name the changed field", c.Path)
	}
	if c.Old != "30gb" || c.New != "50gb" {
		t.Errorf("unexpected old/new: %v / %v", c.Old, c.New)
	}
}

func TestCompareAddedAndRemovedKeys(t *testing.T) {
	remote := Document{"a": 1, "b": 2}
	local := Document{"a": 1, "c": 3}
	cs := Compare(remote, local)

	var added, removed []string
	for _, c := range cs.Changes {
		switch c.Kind {
		case KindAdded:
			added = append(added, c.Path)
		case KindRemoved:
			removed = append(removed, c.Path)
		default:
			t.Errorf("unexpected change kind %s at %s", c.Kind, c.Path)
		}
	}
	if len(added) != 1 || added[0] != "c" {
		t.Errorf("expected added [c], got %v", added)
	}
	if len(removed) != 1 || removed[0] != "b" {
		t.Errorf("expected removed [b], got %v", removed)
	}
}

func TestCompareSequenceLengthMismatch(t *testing.T) {
	remote := Document{"patterns": []any{"logs-*"}}
	local := Document{"patterns": []any{"logs-*", "traces-*"}}
	cs := Compare(remote, local)
	if len(cs.Changes) != 1 {
		t.Fatalf("expected 1 change, got %v", cs.Changes)
	}
	if cs.Changes[0].Kind != KindAdded {
		t.Errorf("expected added element, got %s", cs.Changes[0].Kind)
	}
}

func TestCompareCrossTypeNumbers(t *testing.T) {
	// yaml.v3 decodes 7 as int, encoding/json as float64.
	remote := Document{"priority": float64(7)}
	local := Document{"priority": 7}
	if cs := Compare(remote, local); cs.HasChanges() {
		t.Errorf("equal numbers in different representations reported as change: %v", cs.Changes)
	}
}

func TestCompareTypeChange(t *testing.T) {
	remote := Document{"replicas": 1}
	local := Document{"replicas": "1-all"}
	cs := Compare(remote, local)
	if len(cs.Changes) != 1 || cs.Changes[0].Kind != KindChanged {
		t.Fatalf("expected single changed entry, got %v", cs.Changes)
	}
}

func TestCompareNestedChangeDeepPath(t *testing.T) {
	remote := Document{
		"template": map[string]any{
			"settings": map[string]any{"index": map[string]any{"number_of_shards": 3}},
		},
	}
	local := Document{
		"template": map[string]any{
			"settings": map[string]any{"index": map[string]any{"number_of_shards": 5}},
		},
	}
	cs := Compare(remote, local)
	if len(cs.Changes) != 1 {
		t.Fatalf("expected 1 change, got %v", cs.Changes)
	}
	if got, want := cs.Changes[0].Path, "template.settings.index.number_of_shards"; got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestEqualOrderInsensitiveNested(t *testing.T) {
	a := []any{
		map[string]any{"name": "warm", "actions": []any{"a", "b"}},
		map[string]any{"name": "hot"},
	}
	b := []any{
		map[string]any{"name": "hot"},
		map[string]any{"name": "warm", "actions": []any{"b", "a"}},
	}
	if !Equal(a, b) {
		t.Error("nested permutations should be equal")
	}
}

func TestEqualDistinctMultisets(t *testing.T) {
	if Equal([]any{"a", "a", "b"}, []any{"a", "b", "b"}) {
		t.Error("different multisets reported equal")
	}
}

func TestChangeSetString(t *testing.T) {
	cs := ChangeSet{Changes: []Change{
		{Path: "x", Kind: KindChanged, Old: 1, New: 2},
		{Path: "y", Kind: KindAdded, New: "v"},
		{Path: "z", Kind: KindRemoved, Old: "w"},
	}}
	out := cs.String()
	for _, want := range []string{"~ x: 1 -> 2", "+ y: v", "- z: w"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary %q missing %q", out, want)
		}
	}
	if (ChangeSet{}).String() != "no changes" {
		t.Error("empty change set should render as no changes")
	}
}

func TestCopyIsDeep(t *testing.T) {
	orig := Document{"m": map[string]any{"k": "v"}, "s": []any{1, 2}}
	cp := Copy(orig)
	cp["m"].(map[string]any)["k"] = "other"
	cp["s"].([]any)[0] = 9
	if orig["m"].(map[string]any)["k"] != "v" {
		t.Error("copy shares nested map with original")
	}
	if orig["s"].([]any)[0] != 1 {
		t.Error("copy shares nested slice with original")
	}
}
