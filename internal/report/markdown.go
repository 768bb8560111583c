package report

import (
	"strings"
)

// RenderMarkdown renders the document as Markdown (used for terminal display
// and the .md download).
func RenderMarkdown(doc Document) string {
	var sb strings.Builder

	sb.WriteString("# " + doc.AppName + "\n\n")
	sb.WriteString("## " + doc.Title + "\n")

	for _, s := range doc.Sections {
		sb.WriteString("\n### " + s.Heading + "\n")
		if len(s.Fields) > 0 {
			sb.WriteString("\n")
			for _, f := range s.Fields {
				sb.WriteString("- **" + f.Label + ":** " + f.Value + "\n")
			}
		}
		for _, p := range s.Paragraphs {
			sb.WriteString("\n" + p + "\n")
		}
		for _, l := range s.Lists {
			sb.WriteString("\n#### " + l.Heading + "\n\n")
			for _, item := range l.Items {
				sb.WriteString("- " + item + "\n")
			}
		}
	}
	return sb.String()
}
