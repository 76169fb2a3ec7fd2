package render

import "strings"

// ResolveURI applies the image URI scheme rules: explicit or already-schemed
// URIs pass through, absolute paths become file URIs, everything else gets
// the configured implicit scheme prefixed.
func ResolveURI(uri string, o Options) string {
	if o.UseExplicitURIScheme || strings.Contains(uri, "://") || strings.HasPrefix(uri, "data:") {
		return uri
	}
	if strings.HasPrefix(uri, "/") {
		return "file://" + uri
	}
	return o.DefaultImplicitURIScheme + uri
}

func (r *renderer) renderImage(destination, alt string) {
	r.flushText()

	maxWidth := r.s.AvailableWidth()
	if r.o.MaxImageWidth > 0 && r.o.MaxImageWidth < maxWidth {
		maxWidth = r.o.MaxImageWidth
	}

	resp := r.s.ImageFromURI(ResolveURI(destination, r.o), alt, maxWidth)
	if alt != "" && r.o.ShowAltTextOnHover && resp.Hovered {
		r.s.Tooltip(alt)
	}
}
