package export

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/Dicklesworthstone/radius_viewer/pkg/model"
	"github.com/Dicklesworthstone/radius_viewer/pkg/tokens"
)

var pageTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Concentric radii</title>
<style>
body { font-family: system-ui, sans-serif; background: #f5f5f5; margin: 40px; }
table { border-collapse: collapse; margin-top: 24px; }
td, th { padding: 4px 12px; text-align: left; }
pre { background: #ebebff; padding: 12px; border-radius: 8px; }
</style>
</head>
<body>
<h1>Concentric radii</h1>
{{.SVG}}
<table>
<tr><th>Level</th><th>Role</th><th>Radius</th></tr>
{{range .Rows}}<tr><td>{{.Level}}</td><td>{{.Role}}</td><td>{{.Radius}}</td></tr>
{{end}}</table>
<pre>{{.JSON}}</pre>
</body>
</html>
`))

type pageRow struct {
	Level  int
	Role   string
	Radius string
}

// WriteHTML writes a self-contained page with the inline SVG rendering,
// the level table and the JSON document. It is the index of the preview
// bundle.
func WriteHTML(w io.Writer, s model.Snapshot, d Document) error {
	var svgBuf bytes.Buffer
	if err := WriteSVG(&svgBuf, s); err != nil {
		return err
	}
	js, err := d.EncodeJSON()
	if err != nil {
		return err
	}

	var rows []pageRow
	for _, l := range []model.Level{model.Level4, model.Level3, model.Level2, model.Level1} {
		rows = append(rows, pageRow{Level: int(l), Role: l.Title(), Radius: tokens.Label(s.RadiusOf(l))})
	}

	data := struct {
		SVG  template.HTML
		Rows []pageRow
		JSON string
	}{
		SVG:  template.HTML(svgBuf.String()),
		Rows: rows,
		JSON: string(js),
	}
	if err := pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}
