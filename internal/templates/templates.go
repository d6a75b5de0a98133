package templates

import (
	"embed"
	"html/template"
	"net/http"

	"librarycatalog/package/logger"
)

//go:embed *.html
var files embed.FS

var pages = template.Must(template.ParseFS(files, "*.html"))

// Render writes the named page with the given context values.
func Render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		logger.Log.Error("Can not render template " + name + ": " + err.Error())
	}
}
