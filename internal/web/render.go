package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"appeal-archive/internal/auth"
	"appeal-archive/internal/flash"
	"appeal-archive/internal/models"
	"appeal-archive/internal/news"
	"appeal-archive/internal/theme"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pages = []string{
	"index.html",
	"types.html",
	"storage.html",
	"appeals.html",
	"news.html",
	"login.html",
	"contacts.html",
	"404.html",
	"admin/news_list.html",
	"admin/news_form.html",
}

var funcs = template.FuncMap{
	// sanitize renders news content, keeping only the allowed markup.
	"sanitize": func(s string) template.HTML { return template.HTML(news.Sanitize(s)) },
	"date": func(d models.Date) string { return d.Format("02.01.2006") },
	"datetime": func(t time.Time) string {
		return t.Local().Format("02.01.2006 15:04")
	},
	"id": func(id int64) string { return strconv.FormatInt(id, 10) },
}

func parseTemplates() (map[string]*template.Template, error) {
	out := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}

// view is what every page template receives.
type view struct {
	Theme         string
	NormalURL     string
	AccessibleURL string
	User          auth.CurrentUser
	Flashes       []flash.Message
	Data          any
}

// render executes the named page inside the layout. Theme persistence and
// flash consumption happen here so every page behaves the same way.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, status int, data any, extra ...flash.Message) {
	t, explicit := theme.Resolve(r)
	if explicit {
		theme.Persist(w, t)
	}

	v := view{
		Theme:         t,
		NormalURL:     withTheme(r.URL, theme.Normal),
		AccessibleURL: withTheme(r.URL, theme.Accessible),
		User:          auth.Current(r.Context()),
		Flashes:       append(s.jar.Pop(w, r), extra...),
		Data:          data,
	}

	tmpl, ok := s.templates[name]
	if !ok {
		s.serverError(w, r, fmt.Errorf("unknown template %s", name))
		return
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", v); err != nil {
		s.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "404.html", http.StatusNotFound, nil)
}

func withTheme(u *url.URL, t string) string {
	q := u.Query()
	q.Set("theme", t)
	next := url.URL{Path: u.Path, RawQuery: q.Encode()}
	return next.String()
}
