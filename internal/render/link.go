package render

import "git.home.luguber.info/inful/mdcanvas/internal/ui"

// renderLink emits the accumulated spans as one clickable unit with the link
// treatment: link color and a single underline replace whatever emphasis
// styling accumulated, and per-run line heights are cleared so the unit lays
// out on the surrounding line.
func (r *renderer) renderLink(destination string, spans []ui.Span) {
	if len(spans) == 0 {
		return
	}

	link := r.s.Theme().Link
	for i := range spans {
		spans[i].Format.Color = link
		spans[i].Format.Underline = &ui.Stroke{Width: 1, Color: link}
		spans[i].Format.LineHeight = 0
	}

	resp := r.s.ClickableText(spans...)
	hooked := r.cache.isHooked(destination)

	if resp.Clicked || resp.MiddleClicked {
		if hooked {
			r.cache.linkHooks[destination] = true
		} else {
			r.s.OpenURL(destination)
		}
	}
	if resp.Hovered {
		r.s.SetPointerCursor()
		// Hook destinations never leak their raw target.
		if !hooked {
			r.s.Tooltip(destination)
		}
	}
}
