package webui

import (
	"html/template"

	"github.com/cwbudde/algo-modscope/internal/app"
)

const windowTitle = "Analog Modulation Scope"

type pageField struct {
	app.Field
	Value string
}

type pageOption struct {
	Name     string
	Selected bool
}

type pageData struct {
	Title   string
	Fields  []pageField
	Schemes []pageOption
	Plot    string
	Dialog  *pageDialog
}

type pageDialog struct {
	Title   string
	Message string
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 1em; display: flex; flex-direction: column; gap: 1em; }
form { display: flex; flex-wrap: wrap; gap: 0.5em 1em; align-items: end; }
label { display: flex; flex-direction: column; font-size: 0.9em; }
input { width: 7em; }
img { max-width: 100%; height: auto; border: 1px solid #ccc; }
</style>
</head>
<body>
<form method="post" action="/update">
{{- range .Fields}}
<label>{{.Label}}<input type="text" name="{{.Key}}" value="{{.Value}}"></label>
{{- end}}
<label>Scheme<select name="scheme">
{{- range .Schemes}}
<option value="{{.Name}}"{{if .Selected}} selected{{end}}>{{.Name}}</option>
{{- end}}
</select></label>
<button type="submit">Update Plot</button>
</form>
<img src="{{.Plot}}" alt="modulation plots">
{{- with .Dialog}}
<dialog open>
<h2>{{.Title}}</h2>
<p>{{.Message}}</p>
<form method="dialog"><button>OK</button></form>
</dialog>
{{- end}}
</body>
</html>
`))
