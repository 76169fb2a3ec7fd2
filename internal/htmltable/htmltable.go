// Package htmltable extracts a structured table from raw `<table>` fragments
// embedded in markdown. CommonMark assigns no semantics to these blocks, so
// this is a best-effort scanner, not a conformant HTML parser: it does not
// handle unescaped '<' inside attribute values or nested tables, and
// unterminated tags fall back to the rest of the string.
package htmltable

import (
	"strings"

	"golang.org/x/net/html"
)

// Table is an ordered set of header rows and body rows of decoded cell text.
// It is produced transiently per HTML block and never cached.
type Table struct {
	Header [][]string
	Rows   [][]string
}

// Parse scans fragment for the first `<table>` element. The second return is
// false when no table is found.
func Parse(fragment string) (Table, bool) {
	lower := strings.ToLower(fragment)

	tableStart := strings.Index(lower, "<table")
	if tableStart < 0 {
		return Table{}, false
	}
	tableEnd := strings.Index(lower, "</table>")
	if tableEnd < 0 || tableEnd <= tableStart {
		return Table{}, false
	}

	openEnd := strings.IndexByte(fragment[tableStart:], '>')
	if openEnd < 0 {
		return Table{}, false
	}
	content := fragment[tableStart+openEnd+1 : tableEnd]
	lowerContent := strings.ToLower(content)

	var header, rows [][]string

	if theadStart := strings.Index(lowerContent, "<thead"); theadStart >= 0 {
		theadOpenEnd := strings.IndexByte(content[theadStart:], '>')
		theadEnd := strings.Index(lowerContent, "</thead>")
		if theadOpenEnd < 0 || theadEnd < 0 {
			return Table{}, false
		}
		header = parseRows(content[theadStart+theadOpenEnd+1 : theadEnd])
	}

	// Body is the <tbody> content if present, everything after </thead>
	// otherwise, or the whole table when neither exists.
	body := content
	if tbodyStart := strings.Index(lowerContent, "<tbody"); tbodyStart >= 0 {
		tbodyOpenEnd := strings.IndexByte(content[tbodyStart:], '>')
		if tbodyOpenEnd < 0 {
			return Table{}, false
		}
		tbodyEnd := strings.Index(lowerContent, "</tbody>")
		if tbodyEnd < 0 {
			tbodyEnd = len(content)
		}
		body = content[tbodyStart+tbodyOpenEnd+1 : tbodyEnd]
	} else if theadEnd := strings.Index(lowerContent, "</thead>"); theadEnd >= 0 {
		body = content[theadEnd+len("</thead>"):]
	}

	bodyRows := parseRows(body)

	if len(header) > 0 {
		rows = bodyRows
	} else if len(bodyRows) > 0 {
		// No <thead>: classify rows. When both cell kinds appear, rows whose
		// <tr> fragment contains a <th> are headers; with a single cell kind
		// the first row is promoted to header.
		hasTH := strings.Contains(lowerContent, "<th")
		hasTD := strings.Contains(lowerContent, "<td")
		if hasTH && hasTD {
			fragments := rowFragments(body)
			for i, cells := range bodyRows {
				if i < len(fragments) && strings.Contains(strings.ToLower(fragments[i]), "<th") {
					header = append(header, cells)
				} else {
					rows = append(rows, cells)
				}
			}
		} else {
			header = bodyRows[:1]
			rows = bodyRows[1:]
		}
	}

	if len(header) == 0 && len(rows) == 0 {
		return Table{}, false
	}
	return Table{Header: header, Rows: rows}, true
}

// parseRows extracts the cells of every `<tr>` in fragment.
func parseRows(fragment string) [][]string {
	var out [][]string
	lower := strings.ToLower(fragment)

	pos := 0
	for pos < len(lower) {
		trOffset := strings.Index(lower[pos:], "<tr")
		if trOffset < 0 {
			break
		}
		trStart := pos + trOffset
		openEnd := strings.IndexByte(lower[trStart:], '>')
		if openEnd < 0 {
			break
		}
		contentStart := trStart + openEnd + 1

		trEnd := len(fragment)
		if end := strings.Index(lower[contentStart:], "</tr>"); end >= 0 {
			trEnd = contentStart + end
		}

		if cells := parseCells(fragment[contentStart:trEnd]); len(cells) > 0 {
			out = append(out, cells)
		}
		pos = trEnd + len("</tr>")
	}

	return out
}

// parseCells extracts the decoded text of every `<td>`/`<th>` in a row.
func parseCells(fragment string) []string {
	var cells []string
	lower := strings.ToLower(fragment)

	pos := 0
	for pos < len(lower) {
		tdPos := strings.Index(lower[pos:], "<td")
		thPos := strings.Index(lower[pos:], "<th")

		var cellStart int
		switch {
		case tdPos >= 0 && thPos >= 0:
			cellStart = pos + min(tdPos, thPos)
		case tdPos >= 0:
			cellStart = pos + tdPos
		case thPos >= 0:
			cellStart = pos + thPos
		default:
			return cells
		}

		closeTag := "</td>"
		if strings.HasPrefix(lower[cellStart:], "<th") {
			closeTag = "</th>"
		}

		openEnd := strings.IndexByte(lower[cellStart:], '>')
		if openEnd < 0 {
			return cells
		}
		contentStart := cellStart + openEnd + 1

		contentEnd := len(fragment)
		if end := strings.Index(lower[contentStart:], closeTag); end >= 0 {
			contentEnd = contentStart + end
		}

		cells = append(cells, strings.TrimSpace(cellText(fragment[contentStart:contentEnd])))
		pos = contentEnd + len(closeTag)
	}

	return cells
}

// rowFragments returns the raw `<tr>...</tr>` source of each row, used to
// classify rows by cell kind when no <thead> is present.
func rowFragments(fragment string) []string {
	var out []string
	lower := strings.ToLower(fragment)

	pos := 0
	for pos < len(lower) {
		offset := strings.Index(lower[pos:], "<tr")
		if offset < 0 {
			break
		}
		start := pos + offset
		end := len(fragment)
		if close := strings.Index(lower[start:], "</tr>"); close >= 0 {
			end = start + close + len("</tr>")
		}
		out = append(out, fragment[start:end])
		pos = end
	}

	return out
}

// cellText strips nested tags and decodes entities by running the HTML
// tokenizer over the cell fragment and keeping only its text tokens.
func cellText(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}
