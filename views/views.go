package views

import (
	"embed"
	"html/template"
	"io/fs"
	"time"

	"github.com/yeremiapane/intranet-portal/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses every page. Names are the file names ("login.html").
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
}

// Static is the asset tree served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

func FuncMap() template.FuncMap {
	return template.FuncMap{
		"dayLabel": utils.DayLabelFromKey,
		"dateBR": func(t time.Time) string {
			return utils.FormatBR(&t)
		},
		"dateTimeBR": func(t time.Time) string {
			return utils.FormatBRDateTime(&t)
		},
	}
}
