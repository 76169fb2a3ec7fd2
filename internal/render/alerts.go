package render

import (
	"regexp"
	"strings"

	"git.home.luguber.info/inful/mdcanvas/internal/ui"
)

// Alert is one block-quote admonition kind. A quote whose first line is
// `[!KIND]` renders with the alert's accent color and an icon/label header
// instead of the plain weakened-quote treatment.
type Alert struct {
	// Kind is the lowercase identifier matched against the [!KIND] marker.
	Kind   string
	Accent ui.Color
	Icon   string
	Label  string
}

// AlertBundle is the set of alert kinds a render call recognizes.
type AlertBundle []Alert

var alertMarkerRe = regexp.MustCompile(`^\[!([A-Za-z]+)\]`)

// Detect matches the first line of a block quote against the bundle. It
// returns the alert and the marker text to strip from the quote body.
func (b AlertBundle) Detect(firstLine string) (Alert, string, bool) {
	m := alertMarkerRe.FindStringSubmatch(strings.TrimSpace(firstLine))
	if m == nil {
		return Alert{}, "", false
	}
	kind := strings.ToLower(m[1])
	for _, a := range b {
		if a.Kind == kind {
			return a, m[0], true
		}
	}
	return Alert{}, "", false
}

// GFMAlerts is the GitHub-flavored admonition set.
func GFMAlerts() AlertBundle {
	return AlertBundle{
		{Kind: "note", Accent: ui.RGB(0x31, 0x6D, 0xCA), Icon: "ℹ", Label: "Note"},
		{Kind: "tip", Accent: ui.RGB(0x34, 0x7D, 0x39), Icon: "💡", Label: "Tip"},
		{Kind: "important", Accent: ui.RGB(0x80, 0x56, 0xD5), Icon: "☝", Label: "Important"},
		{Kind: "warning", Accent: ui.RGB(0x96, 0x6C, 0x2E), Icon: "⚠", Label: "Warning"},
		{Kind: "caution", Accent: ui.RGB(0xC9, 0x3C, 0x37), Icon: "❗", Label: "Caution"},
	}
}
