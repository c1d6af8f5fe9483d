// Package web serves the archive's HTML pages.
package web

import (
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"appeal-archive/internal/appeals"
	"appeal-archive/internal/auth"
	"appeal-archive/internal/config"
	"appeal-archive/internal/db"
	"appeal-archive/internal/flash"
	"appeal-archive/internal/news"
)

// Deps are the collaborators a Server is built from.
type Deps struct {
	Config   *config.Config
	Log      *logrus.Logger
	Store    *db.Store
	Sessions auth.SessionStore
}

type Server struct {
	cfg       *config.Config
	log       *logrus.Logger
	store     *db.Store
	appeals   *appeals.Service
	news      *news.Service
	gate      *auth.Gate
	jar       *flash.Jar
	limiter   *loginLimiter
	metrics   *metrics
	templates map[string]*template.Template
	handler   http.Handler
}

func New(d Deps) (*Server, error) {
	tmpls, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	sessions := d.Sessions
	if sessions == nil {
		sessions = d.Store
	}

	s := &Server{
		cfg:       d.Config,
		log:       d.Log,
		store:     d.Store,
		appeals:   appeals.NewService(d.Store),
		news:      news.NewService(d.Store),
		gate:      auth.NewGate(d.Store, sessions, d.Config.SessionTTL),
		jar:       flash.NewJar(d.Config.SecretKey),
		limiter:   newLoginLimiter(d.Config.LoginRate, d.Config.LoginBurst),
		metrics:   newMetrics(),
		templates: tmpls,
	}
	s.handler = s.routes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(s.notFound)
	r.Use(s.metrics.labelRoute)

	staticSub, _ := fs.Sub(staticFS, "static")
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))
	r.Handle("/metrics", s.metrics.handler()).Methods(http.MethodGet)

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/types", s.handleTypes).Methods(http.MethodGet)
	r.HandleFunc("/storage", s.handleStorage).Methods(http.MethodGet)
	r.HandleFunc("/news", s.handleNews).Methods(http.MethodGet)
	r.HandleFunc("/contacts", s.handleContacts).Methods(http.MethodGet)
	r.Handle("/appeals", auth.RequireLogin(s.jar)(http.HandlerFunc(s.handleAppeals))).Methods(http.MethodGet)

	r.HandleFunc("/login", s.handleLoginPage).Methods(http.MethodGet)
	r.Handle("/login", s.limiter.limit(http.HandlerFunc(s.handleLogin))).Methods(http.MethodPost)
	r.HandleFunc("/logout", s.handleLogout).Methods(http.MethodGet)

	admin := r.PathPrefix("/admin").Subrouter()
	admin.NotFoundHandler = http.HandlerFunc(s.notFound)
	admin.Use(auth.RequireLogin(s.jar), auth.RequireAdmin(s.jar))
	admin.HandleFunc("/news", s.handleAdminNewsList).Methods(http.MethodGet)
	admin.HandleFunc("/news/create", s.handleAdminNewsForm).Methods(http.MethodGet)
	admin.HandleFunc("/news/create", s.handleAdminNewsCreate).Methods(http.MethodPost)
	admin.HandleFunc("/news/{id:[0-9]+}/edit", s.handleAdminNewsEditForm).Methods(http.MethodGet)
	admin.HandleFunc("/news/{id:[0-9]+}/edit", s.handleAdminNewsUpdate).Methods(http.MethodPost)
	admin.HandleFunc("/news/{id:[0-9]+}/delete", s.handleAdminNewsDelete).Methods(http.MethodPost)

	return s.logRequests(s.metrics.instrument(s.gate.LoadUser(s.log)(r)))
}
