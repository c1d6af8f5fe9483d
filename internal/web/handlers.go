package web

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"appeal-archive/internal/appeals"
	"appeal-archive/internal/auth"
	"appeal-archive/internal/flash"
)

const (
	msgFillAllFields  = "Необходимо заполнить все поля."
	msgBadCredentials = "Неверное имя пользователя или пароль."
	msgLoggedOut      = "Вы успешно вышли из системы."
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	latest, err := s.news.Latest(r.Context(), 3)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, "index.html", http.StatusOK, map[string]any{"LatestNews": latest})
}

func (s *Server) handleTypes(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.ListCategories(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, "types.html", http.StatusOK, map[string]any{"Categories": categories})
}

func (s *Server) handleStorage(w http.ResponseWriter, r *http.Request) {
	byCategory, err := s.store.CategoryStats(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	byYear, err := s.store.YearStats(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, "storage.html", http.StatusOK, map[string]any{
		"CategoryStats": byCategory,
		"YearStats":     byYear,
	})
}

func (s *Server) handleAppeals(w http.ResponseWriter, r *http.Request) {
	listing, err := s.appeals.List(r.Context(), appeals.ParamsFrom(r.URL.Query()))
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, "appeals.html", http.StatusOK, listing)
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	items, err := s.news.List(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, "news.html", http.StatusOK, map[string]any{"NewsList": items})
}

func (s *Server) handleContacts(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "contacts.html", http.StatusOK, nil)
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login.html", http.StatusOK, loginForm(r, ""))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	token, user, err := s.gate.Login(r.Context(), username, password)
	switch {
	case errors.Is(err, auth.ErrMissingCredentials):
		s.render(w, r, "login.html", http.StatusOK, loginForm(r, username),
			flash.Message{Kind: flash.Error, Text: msgFillAllFields})
		return
	case errors.Is(err, auth.ErrInvalidCredentials):
		s.log.WithField("username", username).Info("failed login")
		s.render(w, r, "login.html", http.StatusOK, loginForm(r, username),
			flash.Message{Kind: flash.Error, Text: msgBadCredentials})
		return
	case err != nil:
		s.serverError(w, r, err)
		return
	}

	auth.SetSessionCookie(w, token, s.cfg.SessionTTL)
	s.log.WithField("username", user.Username).Info("login")
	http.Redirect(w, r, safeNext(r.URL.Query().Get("next")), http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if auth.UserFrom(r.Context()) != nil {
		if err := s.gate.Logout(r.Context(), auth.SessionToken(r)); err != nil {
			s.log.WithError(err).Warn("logout")
		}
		auth.ClearSessionCookie(w)
		s.jar.Add(w, r, flash.Message{Kind: flash.Info, Text: msgLoggedOut})
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func loginForm(r *http.Request, username string) map[string]any {
	action := "/login"
	if next := r.URL.Query().Get("next"); next != "" {
		action += "?next=" + url.QueryEscape(next)
	}
	return map[string]any{"Action": action, "Username": username}
}

// safeNext only follows local paths so the login form cannot be used as
// an open redirect.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/appeals"
	}
	return next
}
