// Package inline rewrites Markdown documents so that externally referenced
// sibling images become embedded base64 data URIs, leaving the document
// self-contained and the sibling files removable.
package inline

import (
	"sort"

	"git.home.luguber.info/inful/reportdoc/internal/errors"
)

// edit is a targeted byte-range replacement in the original source.
// End is exclusive; Replacement replaces source[Start:End].
type edit struct {
	Start       int
	End         int
	Replacement []byte
}

// applyEdits applies non-overlapping byte-range edits to source. Edits are
// applied from the end of the file toward the beginning so earlier edits
// cannot invalidate the offsets of later ones.
func applyEdits(source []byte, edits []edit) ([]byte, error) {
	if len(edits) == 0 {
		return source, nil
	}

	sorted := make([]edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start > sorted[j].Start
	})

	for i, e := range sorted {
		if e.Start < 0 || e.End < e.Start || e.End > len(source) {
			return nil, errors.Structure("invalid edit range [%d:%d)", e.Start, e.End)
		}
		if i > 0 && e.End > sorted[i-1].Start {
			return nil, errors.Structure("overlapping edit ranges")
		}
	}

	out := append([]byte(nil), source...)
	for _, e := range sorted {
		next := make([]byte, 0, len(out)-(e.End-e.Start)+len(e.Replacement))
		next = append(next, out[:e.Start]...)
		next = append(next, e.Replacement...)
		next = append(next, out[e.End:]...)
		out = next
	}
	return out, nil
}
