package export

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/Dicklesworthstone/radius_viewer/pkg/model"
	"github.com/Dicklesworthstone/radius_viewer/pkg/tokens"
)

// Markdown renders a snapshot as a markdown report: the inputs, then one
// table row per level.
func Markdown(s model.Snapshot, d Document) string {
	var b strings.Builder

	b.WriteString("# Concentric radius report\n\n")
	fmt.Fprintf(&b, "Exported %s (format %s)\n\n", d.Configuration.Timestamp, d.Configuration.Version)

	b.WriteString("## Inputs\n\n")
	b.WriteString("| Control | Token | Value |\n|---|---|---|\n")
	fmt.Fprintf(&b, "| Border radius | `%s` | %s |\n", s.Radius.Name, tokens.Label(s.Radius.Value))
	fmt.Fprintf(&b, "| Padding | `%s` | %s |\n", s.Padding.Name, s.Padding.Px())
	fmt.Fprintf(&b, "| Child padding | `%s` | %s |\n", s.ChildPadding.Name, s.ChildPadding.Px())
	fmt.Fprintf(&b, "| Outer padding | `%s` | %s |\n", s.OuterPadding.Name, s.OuterPadding.Px())
	fmt.Fprintf(&b, "| Size | | %s |\n\n", tokens.Format(s.Config.Size))

	b.WriteString("## Levels\n\n")
	b.WriteString("| Level | Role | Radius | Rule |\n|---|---|---|---|\n")
	rules := map[model.Level]string{
		model.Level4: "radius + outer padding",
		model.Level3: "selected radius",
		model.Level2: "max(0, radius - padding)",
		model.Level1: "max(0, level 2 - child padding)",
	}
	for _, l := range []model.Level{model.Level4, model.Level3, model.Level2, model.Level1} {
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", int(l), l.Title(), tokens.Label(s.RadiusOf(l)), rules[l])
	}
	return b.String()
}

// RenderReport styles markdown for the terminal. style is a glamour
// standard style name ("dark", "light", "notty"); "" or "auto" picks one
// from the terminal background.
func RenderReport(md string, width int, style string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
