package markdown

import (
	"errors"
	"fmt"
	"sort"
)

// Edit is a targeted byte-range replacement. Start and End are byte offsets
// into the original source, End exclusive; Replacement replaces
// source[Start:End].
type Edit struct {
	Start       int
	End         int
	Replacement []byte
}

// CheckboxEdit records a task-list checkbox whose state was toggled through
// the rendered output. Span covers exactly the `[x]`/`[ ]` marker bytes.
type CheckboxEdit struct {
	Start   int
	End     int
	Checked bool
}

// Edit converts the toggle into the byte-range replacement that splices the
// new marker into the source.
func (c CheckboxEdit) Edit() Edit {
	marker := "[ ]"
	if c.Checked {
		marker = "[x]"
	}
	return Edit{Start: c.Start, End: c.End, Replacement: []byte(marker)}
}

// ApplyCheckboxEdits splices every toggled checkbox marker into source and
// returns the updated content.
func ApplyCheckboxEdits(source []byte, toggles []CheckboxEdit) ([]byte, error) {
	edits := make([]Edit, 0, len(toggles))
	for _, t := range toggles {
		edits = append(edits, t.Edit())
	}
	return ApplyEdits(source, edits)
}

// ApplyEdits applies non-overlapping byte-range edits to source. Edits are
// sorted and applied from the end of the buffer toward the beginning so
// earlier edits do not invalidate later offsets.
func ApplyEdits(source []byte, edits []Edit) ([]byte, error) {
	if len(edits) == 0 {
		return source, nil
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start == sorted[j].Start {
			return sorted[i].End > sorted[j].End
		}
		return sorted[i].Start > sorted[j].Start
	})

	for i, e := range sorted {
		if e.Start < 0 || e.End < e.Start {
			return nil, fmt.Errorf("invalid edit[%d]: bad range [%d,%d)", i, e.Start, e.End)
		}
		if e.End > len(source) {
			return nil, fmt.Errorf("invalid edit[%d]: range out of bounds", i)
		}
		// Sorted by Start descending: each edit must end at or before the
		// previous edit's start.
		if i > 0 && e.End > sorted[i-1].Start {
			return nil, errors.New("invalid edits: overlapping ranges")
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
