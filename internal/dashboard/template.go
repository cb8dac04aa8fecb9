package dashboard

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Explore audio datasets</title>
<style>
body { font-family: sans-serif; margin: 0; display: flex; }
nav { width: 220px; padding: 1em; background: #f0f2f6; min-height: 100vh; }
nav a { display: block; padding: .25em 0; color: #262730; text-decoration: none; }
nav a.active { font-weight: bold; }
main { flex: 1; padding: 1em; }
table { border-collapse: collapse; }
th { font-size: .9em; padding: .25em; }
td { vertical-align: top; padding: .25em; text-align: center; }
td.label { font-weight: bold; }
.err { color: #b00020; font-size: .85em; max-width: 240px; }
.name { font-size: .75em; color: #555; }
img { max-width: 240px; }
</style>
</head>
<body>
<nav>
<h4>Choose visualization type</h4>
{{range .Menu}}<a href="{{.Href}}"{{if .Active}} class="active"{{end}}>{{.Label}}</a>
{{end}}<hr>
<a href="{{.NamesHref}}">{{if .ShowNames}}Hide file names{{else}}Show file names{{end}}</a>
</nav>
<main>
<h2>{{.Page.Title}}</h2>
{{if .Page.Notice}}<p>{{.Page.Notice}}</p>{{else}}
<p class="name">{{.Page.Files}} files, {{.Page.Excluded}} excluded</p>
<table>
<tr><th>Class</th>{{range .Page.Headers}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr><td class="label">{{.Label}}</td>{{range .Cells}}<td>
{{if $.ShowNames}}{{if .Name}}<div class="name">{{.Name}}</div>{{end}}{{end}}
{{if .Error}}<div class="err">{{.Error}}</div>{{else}}<img src="{{.Src}}" alt="{{.Alt}}">{{end}}
</td>{{end}}</tr>
{{end}}</table>
{{end}}
</main>
</body>
</html>
`))

type menuItem struct {
	Label  string
	Href   string
	Active bool
}

type cellView struct {
	Name  string
	Alt   string
	Src   template.URL
	Error string
}

type rowView struct {
	Label string
	Cells []cellView
}

type pageView struct {
	Page      *Page
	Menu      []menuItem
	Rows      []rowView
	ShowNames bool
	NamesHref string
}
