// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package registry

// mergeTrees deep-merges overlay on top of base and returns the result as a
// fresh tree. Neither argument is modified.
//
// For every key of overlay: when base already has the key and the overlay
// value is a tree, the two values are merged recursively; otherwise the
// overlay value replaces whatever base held. Shape conflicts therefore always
// resolve to the overlay's shape.
//
// Only the levels on overlay's paths are copied; subtrees of base that
// overlay does not touch are shared with the result. Trees held by a [Store]
// are never modified in place, which keeps that sharing safe; callers get
// deep copies from [Store.Read] and [Store.Config].
func mergeTrees(base, overlay Tree) Tree {
	merged := make(Tree, len(base)+len(overlay))
	for key, value := range base {
		merged[key] = value
	}

	for key, value := range overlay {
		existing, ok := merged[key]
		if ok && value.IsTree() {
			merged[key] = mergeValues(existing, value)
			continue
		}
		merged[key] = value.clone()
	}

	return merged
}

// mergeValues merges overlay on top of base. Only two trees are merged key by
// key; any other combination yields a copy of overlay.
func mergeValues(base, overlay Value) Value {
	if base.IsTree() && overlay.IsTree() {
		return Branch(mergeTrees(base.t, overlay.t))
	}

	return overlay.clone()
}

// branchFor builds the single-branch tree that places value under the given
// key segments, e.g. ["a", "b"] and v give {"a": {"b": v}}.
func branchFor(segments []string, value Value) Tree {
	current := value.clone()
	for i := len(segments) - 1; i > 0; i-- {
		current = Branch(Tree{segments[i]: current})
	}

	return Tree{segments[0]: current}
}
