package main

import (
	"fmt"
	"strings"

	dto "github.com/prometheus/client_model/go"

	"git.home.luguber.info/inful/mdcanvas/internal/ui"
)

// printLayout writes the rendered document as plain text, with markers for
// non-text primitives so the block structure stays visible.
func printLayout(s *ui.Headless) {
	var line strings.Builder
	flush := func() {
		fmt.Println(line.String())
		line.Reset()
	}
	for _, op := range s.Ops {
		switch op.Kind {
		case ui.OpText, ui.OpClickable:
			for _, span := range op.Spans {
				line.WriteString(span.Text)
			}
			flush()
		case ui.OpPaintText:
			line.WriteString(op.Text + " ")
		case ui.OpNewline:
			flush()
		case ui.OpRule:
			fmt.Println(strings.Repeat("─", 40))
		case ui.OpImage:
			fmt.Printf("[diagram %gx%g]\n", op.Size.W, op.Size.H)
		case ui.OpImageURI:
			fmt.Printf("[image %s]\n", op.Text)
		case ui.OpCheckbox:
			mark := " "
			if op.Checked {
				mark = "x"
			}
			line.WriteString("[" + mark + "] ")
		}
	}
	if line.Len() > 0 {
		flush()
	}
}

// printOps dumps every recorded primitive, one per line.
func printOps(s *ui.Headless) {
	for _, op := range s.Ops {
		switch op.Kind {
		case ui.OpText, ui.OpClickable:
			var texts []string
			for _, span := range op.Spans {
				texts = append(texts, fmt.Sprintf("%q", span.Text))
			}
			fmt.Printf("%-10s %s\n", op.Kind, strings.Join(texts, " "))
		case ui.OpButton, ui.OpCheckbox:
			fmt.Printf("%-10s id=%s %q\n", op.Kind, op.ID, op.Text)
		case ui.OpImage:
			fmt.Printf("%-10s tex=%d %gx%g\n", op.Kind, op.Texture, op.Size.W, op.Size.H)
		case ui.OpImageURI:
			fmt.Printf("%-10s %s\n", op.Kind, op.Text)
		case ui.OpPaintText, ui.OpTooltip, ui.OpOpenURL, ui.OpCopyText:
			fmt.Printf("%-10s %q\n", op.Kind, op.Text)
		default:
			fmt.Printf("%-10s\n", op.Kind)
		}
	}
}

func labelString(labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return ""
	}
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
	}
	return "{" + strings.Join(parts, ",") + "}"
}
