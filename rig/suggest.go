// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rig

import (
	"slices"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// SuggestionThreshold is the minimum name similarity for [SuggestKeys].
const SuggestionThreshold = 0.6

// SuggestKeys returns the keys of the hierarchy that are most
// similar to key, best first, for "did you mean" messages. Keys of
// the same type rank before others of equal similarity.
func SuggestKeys(h *Hierarchy, key ElementKey, n int) []ElementKey {
	type scored struct {
		key   ElementKey
		score float64
	}
	lev := metrics.NewLevenshtein()
	lev.CaseSensitive = false
	var cands []scored
	for _, k := range h.Keys(ElementTypeAll) {
		if k == key {
			continue
		}
		s := strutil.Similarity(key.Name, k.Name, lev)
		if k.Type == key.Type {
			s += 0.01
		}
		if s >= SuggestionThreshold {
			cands = append(cands, scored{k, s})
		}
	}
	slices.SortStableFunc(cands, func(a, b scored) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		}
		return a.key.Compare(b.key)
	})
	res := make([]ElementKey, 0, min(n, len(cands)))
	for i := 0; i < len(cands) && i < n; i++ {
		res = append(res, cands[i].key)
	}
	return res
}
